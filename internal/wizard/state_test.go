// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/internal/discover"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// --- test helpers ---

func samplePapers(n int) []types.Paper {
	papers := make([]types.Paper, n)
	for i := range papers {
		papers[i] = types.Paper{
			ID:      fmt.Sprintf("p%d", i+1),
			Title:   fmt.Sprintf("Paper %d", i+1),
			Authors: []string{fmt.Sprintf("Author %d", i+1)},
			Year:    2023 - i,
		}
	}
	return papers
}

func mustReduce(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, err := Reduce(s, ev)
	require.NoError(t, err, "reducing %T", ev)
	return next
}

// reviewing returns a state in the Reviewing stage holding n candidates p1..pn.
func reviewing(t *testing.T, n int) State {
	t.Helper()
	s := mustReduce(t, Initial(0), SubmitTopic{Topic: "Quantum Computing", MaxResults: n})
	return mustReduce(t, s, DiscoveryCompleted{Papers: samplePapers(n)})
}

// --- Initial ---

func TestInitial(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int
		want       int
	}{
		{"zero uses default", 0, types.DefaultMaxResults},
		{"negative uses default", -3, types.DefaultMaxResults},
		{"in range", 12, 12},
		{"clamped", 99, types.MaxMaxResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Initial(tt.maxResults)
			assert.Equal(t, TopicEntry, s.Stage)
			assert.Equal(t, tt.want, s.MaxResults)
			assert.Empty(t, s.Topic)
			assert.Empty(t, s.Candidates)
			assert.Empty(t, s.Chosen)
			assert.False(t, s.Searching)
		})
	}
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, "topic-entry", TopicEntry.String())
	assert.Equal(t, "reviewing", Reviewing.String())
	assert.Equal(t, "summary", Summary.String())
	assert.Equal(t, "Review & Select Papers", Reviewing.Label())
	assert.Equal(t, "stage(7)", Stage(7).String())
}

func TestStageJSON(t *testing.T) {
	data, err := json.Marshal(State{Stage: Reviewing, MaxResults: 5})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stage":"reviewing"`)

	var s State
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, Reviewing, s.Stage)

	var st Stage
	assert.Error(t, st.UnmarshalText([]byte("done")))
}

// --- SubmitTopic ---

func TestSubmitTopicValidation(t *testing.T) {
	tests := []struct {
		name  string
		event SubmitTopic
	}{
		{"empty", SubmitTopic{Topic: "", MaxResults: 5}},
		{"spaces", SubmitTopic{Topic: "   ", MaxResults: 5}},
		{"tabs and newlines", SubmitTopic{Topic: "\t\n", MaxResults: 5}},
		{"zero results", SubmitTopic{Topic: "AI", MaxResults: 0}},
		{"negative results", SubmitTopic{Topic: "AI", MaxResults: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := Initial(0)
			next, err := Reduce(start, tt.event)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, TopicEntry, next.Stage)
			assert.False(t, next.Searching)
			assert.NotEmpty(t, next.LastError)
			assert.Empty(t, next.Topic)
		})
	}
}

func TestSubmitTopicStartsSearch(t *testing.T) {
	s := Initial(0)
	s.LastError = "Please enter a research topic"

	next := mustReduce(t, s, SubmitTopic{Topic: "  Healthcare AI  ", MaxResults: 7})
	assert.Equal(t, TopicEntry, next.Stage)
	assert.True(t, next.Searching)
	assert.Equal(t, "Healthcare AI", next.Topic)
	assert.Equal(t, 7, next.MaxResults)
	assert.Empty(t, next.LastError)
}

func TestSubmitTopicClampsMaxResults(t *testing.T) {
	next := mustReduce(t, Initial(0), SubmitTopic{Topic: "AI", MaxResults: 500})
	assert.Equal(t, types.MaxMaxResults, next.MaxResults)
}

func TestSubmitTopicWhileSearching(t *testing.T) {
	s := mustReduce(t, Initial(0), SubmitTopic{Topic: "first", MaxResults: 5})
	next, err := Reduce(s, SubmitTopic{Topic: "second", MaxResults: 5})
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
	assert.Equal(t, "first", next.Topic)
	assert.True(t, next.Searching)
}

func TestSubmitTopicInSummary(t *testing.T) {
	s := mustReduce(t, reviewing(t, 2), ToggleSelection{PaperID: "p1"})
	s = mustReduce(t, s, ConfirmSelection{})

	next, err := Reduce(s, SubmitTopic{Topic: "other", MaxResults: 5})
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, Summary, next.Stage)
	assert.Equal(t, "Quantum Computing", next.Topic)
}

// --- DiscoveryCompleted ---

func TestDiscoveryCompletedAdvances(t *testing.T) {
	s := mustReduce(t, Initial(0), SubmitTopic{Topic: "AI", MaxResults: 3})

	papers := samplePapers(8)
	papers[0].Selected = true

	next := mustReduce(t, s, DiscoveryCompleted{Papers: papers})
	assert.Equal(t, Reviewing, next.Stage)
	assert.False(t, next.Searching)
	require.Len(t, next.Candidates, 3)
	for _, p := range next.Candidates {
		assert.False(t, p.Selected)
	}
	assert.True(t, papers[0].Selected, "input batch must not be modified")
}

func TestDiscoveryCompletedFailure(t *testing.T) {
	errBackend := errors.New("backend down")
	s := mustReduce(t, Initial(0), SubmitTopic{Topic: "Blockchain", MaxResults: 5})

	next, err := Reduce(s, DiscoveryCompleted{Err: errBackend})
	assert.ErrorIs(t, err, ErrDiscovery)
	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, TopicEntry, next.Stage)
	assert.Equal(t, "Blockchain", next.Topic, "topic survives a failed search")
	assert.False(t, next.Searching)
	assert.NotEmpty(t, next.LastError)
}

func TestDiscoveryCompletedDuplicateIDs(t *testing.T) {
	s := mustReduce(t, Initial(0), SubmitTopic{Topic: "AI", MaxResults: 5})
	papers := samplePapers(3)
	papers[2].ID = papers[0].ID

	next, err := Reduce(s, DiscoveryCompleted{Papers: papers})
	assert.ErrorIs(t, err, ErrDiscovery)
	assert.Equal(t, TopicEntry, next.Stage)
	assert.Empty(t, next.Candidates)
}

func TestDiscoveryCompletedWithoutSearch(t *testing.T) {
	_, err := Reduce(Initial(0), DiscoveryCompleted{Papers: samplePapers(1)})
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestResearchFromReviewing(t *testing.T) {
	s := mustReduce(t, reviewing(t, 4), ToggleSelection{PaperID: "p2"})

	s = mustReduce(t, s, SubmitTopic{Topic: "Neural Networks", MaxResults: 2})
	assert.Equal(t, Reviewing, s.Stage)
	assert.True(t, s.Searching)

	_, err := Reduce(s, ToggleSelection{PaperID: "p1"})
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
	_, err = Reduce(s, ConfirmSelection{})
	assert.ErrorIs(t, err, ErrAlreadyInProgress)

	failed, err := Reduce(s, DiscoveryCompleted{Err: errors.New("timeout")})
	assert.ErrorIs(t, err, ErrDiscovery)
	assert.Equal(t, Reviewing, failed.Stage)
	assert.Len(t, failed.Candidates, 4, "previous batch survives a failed re-search")

	replaced := mustReduce(t, s, DiscoveryCompleted{Papers: samplePapers(2)})
	assert.Equal(t, Reviewing, replaced.Stage)
	assert.Len(t, replaced.Candidates, 2)
	assert.Zero(t, replaced.SelectedCount())
}

// --- ToggleSelection ---

func TestToggleSelectionInvolution(t *testing.T) {
	s := reviewing(t, 4)

	once := mustReduce(t, s, ToggleSelection{PaperID: "p3"})
	assert.True(t, once.Candidates[2].Selected)
	assert.Equal(t, 1, once.SelectedCount())
	assert.False(t, s.Candidates[2].Selected, "Reduce must not modify its input")

	twice := mustReduce(t, once, ToggleSelection{PaperID: "p3"})
	if diff := cmp.Diff(s, twice); diff != "" {
		t.Errorf("double toggle changed state (-want +got):\n%s", diff)
	}
}

func TestToggleSelectionErrors(t *testing.T) {
	tests := []struct {
		name  string
		state func(t *testing.T) State
		id    string
		want  error
	}{
		{"unknown id", func(t *testing.T) State { return reviewing(t, 3) }, "p9", ErrNotFound},
		{"no candidates", func(t *testing.T) State { return Initial(0) }, "p1", ErrWrongStage},
		{"searching", func(t *testing.T) State {
			return mustReduce(t, Initial(0), SubmitTopic{Topic: "AI", MaxResults: 5})
		}, "p1", ErrAlreadyInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tt.state(t)
			next, err := Reduce(start, ToggleSelection{PaperID: tt.id})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, start.Stage, next.Stage)
			assert.Equal(t, start.Candidates, next.Candidates)
			assert.NotEmpty(t, next.LastError)
		})
	}
}

// --- ConfirmSelection ---

func TestConfirmSelectionEmpty(t *testing.T) {
	next, err := Reduce(reviewing(t, 4), ConfirmSelection{})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, Reviewing, next.Stage)
	assert.Empty(t, next.Chosen)
	assert.Equal(t, msgEmptySelection, next.LastError)
}

func TestConfirmSelectionPreservesOrder(t *testing.T) {
	s := reviewing(t, 4)
	s = mustReduce(t, s, ToggleSelection{PaperID: "p4"})
	s = mustReduce(t, s, ToggleSelection{PaperID: "p2"})

	next := mustReduce(t, s, ConfirmSelection{})
	assert.Equal(t, Summary, next.Stage)
	require.Len(t, next.Chosen, 2)
	assert.Equal(t, "p2", next.Chosen[0].ID)
	assert.Equal(t, "p4", next.Chosen[1].ID)
	assert.Len(t, next.Candidates, 4)
}

func TestConfirmSelectionWrongStage(t *testing.T) {
	_, err := Reduce(Initial(0), ConfirmSelection{})
	assert.ErrorIs(t, err, ErrWrongStage)

	s := mustReduce(t, reviewing(t, 2), ToggleSelection{PaperID: "p1"})
	s = mustReduce(t, s, ConfirmSelection{})
	_, err = Reduce(s, ConfirmSelection{})
	assert.ErrorIs(t, err, ErrWrongStage)
}

// --- Reset ---

func TestResetFromEveryStage(t *testing.T) {
	summary := mustReduce(t, reviewing(t, 3), ToggleSelection{PaperID: "p1"})
	summary = mustReduce(t, summary, ConfirmSelection{})
	summary.LastError = "stale message"

	states := map[string]State{
		"topic entry": Initial(0),
		"searching":   mustReduce(t, Initial(0), SubmitTopic{Topic: "AI", MaxResults: 5}),
		"reviewing":   reviewing(t, 3),
		"summary":     summary,
	}
	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			next := mustReduce(t, s, Reset{})
			if diff := cmp.Diff(Initial(0), next); diff != "" {
				t.Errorf("reset state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// --- properties ---

func TestSubmitTopicProperty(t *testing.T) {
	stub := &discover.Stub{}
	for _, topic := range []string{"AI", "Quantum Computing", "  padded  ", "x"} {
		for n := 1; n <= types.MaxMaxResults; n++ {
			s := mustReduce(t, Initial(0), SubmitTopic{Topic: topic, MaxResults: n})
			papers, err := stub.Discover(context.Background(), s.Topic, s.MaxResults)
			require.NoError(t, err)

			s = mustReduce(t, s, DiscoveryCompleted{Papers: papers})
			assert.Equal(t, Reviewing, s.Stage)
			assert.LessOrEqual(t, len(s.Candidates), n)
		}
	}
}

func TestUnknownEvent(t *testing.T) {
	type bogus struct{ Event }
	_, err := Reduce(Initial(0), bogus{})
	assert.ErrorIs(t, err, ErrWrongStage)
}
