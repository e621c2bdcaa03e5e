// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestDraftReport(t *testing.T) {
	s := reviewing(t, 3)
	s = mustReduce(t, s, ToggleSelection{PaperID: "p1"})
	s = mustReduce(t, s, ToggleSelection{PaperID: "p3"})
	s = mustReduce(t, s, ConfirmSelection{})

	now := time.Date(2023, time.November, 20, 15, 4, 5, 0, time.UTC)
	r, err := DraftReport(s, now)
	require.NoError(t, err)

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err, "id should be a UUID")
	assert.Equal(t, "Research on Quantum Computing", r.Title)
	assert.Equal(t, "Quantum Computing", r.Topic)
	assert.Equal(t, "2023-11-20", r.CreatedDate.String())
	assert.Equal(t, 2, r.PaperCount)
	assert.Equal(t, types.StatusInProgress, r.Status)
	assert.Contains(t, r.Summary, "2 selected papers")
}

func TestDraftReportSinglePaper(t *testing.T) {
	s := mustReduce(t, reviewing(t, 2), ToggleSelection{PaperID: "p2"})
	s = mustReduce(t, s, ConfirmSelection{})

	r, err := DraftReport(s, time.Now())
	require.NoError(t, err)
	assert.Contains(t, r.Summary, "1 selected paper.")
}

func TestDraftReportWrongStage(t *testing.T) {
	_, err := DraftReport(reviewing(t, 2), time.Now())
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestDraftReportUniqueIDs(t *testing.T) {
	s := mustReduce(t, reviewing(t, 1), ToggleSelection{PaperID: "p1"})
	s = mustReduce(t, s, ConfirmSelection{})

	a, err := DraftReport(s, time.Now())
	require.NoError(t, err)
	b, err := DraftReport(s, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
