// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import "errors"

// Errors returned by Reduce and Machine. Every one of them leaves the
// previous stage, topic, and candidates untouched.
var (
	// ErrValidation reports a blank topic or a non-positive result count.
	ErrValidation = errors.New("validation failed")

	// ErrEmptySelection reports a confirm with no candidate selected.
	ErrEmptySelection = errors.New("no papers selected")

	// ErrNotFound reports a toggle for a paper that is not a candidate.
	ErrNotFound = errors.New("paper not found")

	// ErrDiscovery wraps a failure from the discovery collaborator.
	ErrDiscovery = errors.New("paper discovery failed")

	// ErrAlreadyInProgress reports an event that arrived while a discovery
	// is still outstanding.
	ErrAlreadyInProgress = errors.New("discovery already in progress")

	// ErrWrongStage reports an event the current stage does not accept.
	ErrWrongStage = errors.New("not allowed in current stage")

	// ErrClosed reports use of a Machine after Close.
	ErrClosed = errors.New("wizard closed")
)

// User-facing messages stored in State.LastError.
const (
	msgEmptyTopic     = "Please enter a research topic"
	msgBadMaxResults  = "Maximum papers must be at least 1"
	msgSearchFailed   = "Error searching for papers. Please try again."
	msgEmptySelection = "Please select at least one paper"
	msgSearching      = "A search is already in progress"
)
