// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wizard implements the research workflow: define a topic, review
// and select discovered papers, then summarize the selection. State
// transitions are a pure function (Reduce); Machine drives it and owns the
// asynchronous paper discovery.
package wizard

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Stage is a step of the research workflow.
type Stage int

const (
	TopicEntry Stage = iota
	Reviewing
	Summary
)

// String returns the machine-readable stage name.
func (s Stage) String() string {
	switch s {
	case TopicEntry:
		return "topic-entry"
	case Reviewing:
		return "reviewing"
	case Summary:
		return "summary"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for _, st := range []Stage{TopicEntry, Reviewing, Summary} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", text)
}

// Label returns the step heading shown to the user.
func (s Stage) Label() string {
	switch s {
	case TopicEntry:
		return "Define Research Topic"
	case Reviewing:
		return "Review & Select Papers"
	case Summary:
		return "Generate Report"
	}
	return s.String()
}

// State is the complete wizard state for one session.
type State struct {
	Stage      Stage         `json:"stage"`
	Topic      string        `json:"topic"`
	MaxResults int           `json:"max_results"`
	Candidates []types.Paper `json:"candidates"`
	Chosen     []types.Paper `json:"chosen"`
	LastError  string        `json:"last_error,omitempty"`

	// Searching is true while a discovery for Topic is outstanding.
	Searching bool `json:"searching"`
}

// Initial returns the starting state. maxResults is clamped to
// [1, types.MaxMaxResults]; zero selects types.DefaultMaxResults.
func Initial(maxResults int) State {
	return State{
		Stage:      TopicEntry,
		MaxResults: types.ClampMaxResults(maxResults),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Candidates = types.ClonePapers(s.Candidates)
	s.Chosen = types.ClonePapers(s.Chosen)
	return s
}

// SelectedCount returns the number of selected candidates.
func (s State) SelectedCount() int {
	n := 0
	for _, p := range s.Candidates {
		if p.Selected {
			n++
		}
	}
	return n
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// SubmitTopic starts a discovery for Topic.
type SubmitTopic struct {
	Topic      string
	MaxResults int
}

// DiscoveryCompleted delivers the outcome of the outstanding discovery.
type DiscoveryCompleted struct {
	Papers []types.Paper
	Err    error
}

// ToggleSelection flips the Selected flag of one candidate.
type ToggleSelection struct {
	PaperID string
}

// ConfirmSelection moves the selected candidates into Chosen.
type ConfirmSelection struct{}

// Reset returns to the initial state. MaxResults is the default for the
// fresh state (zero selects types.DefaultMaxResults).
type Reset struct {
	MaxResults int
}

func (SubmitTopic) event()        {}
func (DiscoveryCompleted) event() {}
func (ToggleSelection) event()    {}
func (ConfirmSelection) event()   {}
func (Reset) event()              {}

// Reduce applies ev to s and returns the next state. On error the returned
// state equals s except that LastError carries a user-facing message. s is
// never modified.
func Reduce(s State, ev Event) (State, error) {
	s = s.Clone()

	switch ev := ev.(type) {
	case SubmitTopic:
		return submitTopic(s, ev)
	case DiscoveryCompleted:
		return discoveryCompleted(s, ev)
	case ToggleSelection:
		return toggleSelection(s, ev)
	case ConfirmSelection:
		return confirmSelection(s)
	case Reset:
		return Initial(ev.MaxResults), nil
	}
	return s, fmt.Errorf("%w: unknown event %T", ErrWrongStage, ev)
}

func fail(s State, msg string, err error) (State, error) {
	s.LastError = msg
	return s, err
}

func submitTopic(s State, ev SubmitTopic) (State, error) {
	if s.Searching {
		return fail(s, msgSearching, ErrAlreadyInProgress)
	}
	if s.Stage == Summary {
		return fail(s, "Start new research before searching again",
			fmt.Errorf("%w: submit topic in %s", ErrWrongStage, s.Stage))
	}

	topic := strings.TrimSpace(ev.Topic)
	if topic == "" {
		return fail(s, msgEmptyTopic, fmt.Errorf("%w: topic is empty", ErrValidation))
	}
	if ev.MaxResults < 1 {
		return fail(s, msgBadMaxResults,
			fmt.Errorf("%w: max results must be at least 1, got %d", ErrValidation, ev.MaxResults))
	}

	s.Topic = topic
	s.MaxResults = min(ev.MaxResults, types.MaxMaxResults)
	s.Searching = true
	s.LastError = ""
	return s, nil
}

func discoveryCompleted(s State, ev DiscoveryCompleted) (State, error) {
	if !s.Searching {
		return s, fmt.Errorf("%w: no discovery outstanding", ErrWrongStage)
	}
	s.Searching = false

	if ev.Err != nil {
		return fail(s, msgSearchFailed, fmt.Errorf("%w: %w", ErrDiscovery, ev.Err))
	}

	papers := types.ClonePapers(ev.Papers)
	if len(papers) > s.MaxResults {
		papers = papers[:s.MaxResults]
	}
	seen := make(map[string]bool, len(papers))
	for i := range papers {
		if seen[papers[i].ID] {
			return fail(s, msgSearchFailed,
				fmt.Errorf("%w: duplicate paper id %q", ErrDiscovery, papers[i].ID))
		}
		seen[papers[i].ID] = true
		papers[i].Selected = false
	}

	s.Candidates = papers
	s.Chosen = nil
	s.Stage = Reviewing
	s.LastError = ""
	return s, nil
}

func toggleSelection(s State, ev ToggleSelection) (State, error) {
	if s.Searching {
		return fail(s, msgSearching, ErrAlreadyInProgress)
	}
	if s.Stage != Reviewing || len(s.Candidates) == 0 {
		return fail(s, "No papers to select",
			fmt.Errorf("%w: toggle selection in %s", ErrWrongStage, s.Stage))
	}

	for i := range s.Candidates {
		if s.Candidates[i].ID == ev.PaperID {
			s.Candidates[i].Selected = !s.Candidates[i].Selected
			s.LastError = ""
			return s, nil
		}
	}
	return fail(s, fmt.Sprintf("Paper %s not found", ev.PaperID),
		fmt.Errorf("%w: %s", ErrNotFound, ev.PaperID))
}

func confirmSelection(s State) (State, error) {
	if s.Searching {
		return fail(s, msgSearching, ErrAlreadyInProgress)
	}
	if s.Stage != Reviewing {
		return fail(s, "Nothing to confirm",
			fmt.Errorf("%w: confirm selection in %s", ErrWrongStage, s.Stage))
	}

	var chosen []types.Paper
	for _, p := range s.Candidates {
		if p.Selected {
			chosen = append(chosen, p)
		}
	}
	if len(chosen) == 0 {
		return fail(s, msgEmptySelection, ErrEmptySelection)
	}

	s.Chosen = types.ClonePapers(chosen)
	s.Stage = Summary
	s.LastError = ""
	return s, nil
}
