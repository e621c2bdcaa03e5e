// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DraftReport builds the catalog entry for a finished wizard session. The
// report starts in progress; it is the caller's job to add it to a store.
func DraftReport(s State, now time.Time) (types.Report, error) {
	if s.Stage != Summary {
		return types.Report{}, fmt.Errorf("%w: draft report in %s", ErrWrongStage, s.Stage)
	}

	noun := "papers"
	if len(s.Chosen) == 1 {
		noun = "paper"
	}

	now = now.UTC()
	return types.Report{
		ID:          uuid.NewString(),
		Title:       "Research on " + s.Topic,
		Topic:       s.Topic,
		CreatedDate: types.NewDate(now.Year(), now.Month(), now.Day()),
		PaperCount:  len(s.Chosen),
		Status:      types.StatusInProgress,
		Summary:     fmt.Sprintf("Report on %s generated from %d selected %s.", s.Topic, len(s.Chosen), noun),
	}, nil
}
