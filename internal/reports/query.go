// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reports filters, sorts, and stores the research report catalog.
// DeriveView computes the list a user sees from a Query; Store
// implementations supply the catalog and accept deletions.
package reports

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pdiddy/research-assistant/pkg/types"
)

var (
	// ErrInvalidConfiguration reports an unknown filter, sort key, or direction.
	ErrInvalidConfiguration = errors.New("invalid query configuration")

	// ErrNotFound reports a delete for an id that is not in the catalog.
	ErrNotFound = errors.New("report not found")

	// ErrDuplicateID reports two reports sharing an id.
	ErrDuplicateID = errors.New("duplicate report id")
)

// StatusFilter restricts the view to one report status.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterCompleted  StatusFilter = StatusFilter(types.StatusCompleted)
	FilterInProgress StatusFilter = StatusFilter(types.StatusInProgress)
)

// SortKey selects the report field the view is ordered by.
type SortKey string

const (
	SortDate       SortKey = "date"
	SortTitle      SortKey = "title"
	SortPaperCount SortKey = "papers"
)

// SortDirection orders the view ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// DefaultDirection returns the direction k sorts in when the user has not
// chosen one: newest and largest first, titles A to Z.
func (k SortKey) DefaultDirection() SortDirection {
	if k == SortTitle {
		return Ascending
	}
	return Descending
}

// ParseStatusFilter converts user input into a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterCompleted, FilterInProgress:
		return f, nil
	}
	return "", fmt.Errorf("%w: status filter %q (want all, completed, or in-progress)", ErrInvalidConfiguration, s)
}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortDate, SortTitle, SortPaperCount:
		return k, nil
	}
	return "", fmt.Errorf("%w: sort key %q (want date, title, or papers)", ErrInvalidConfiguration, s)
}

// ParseSortDirection converts user input into a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("%w: sort direction %q (want asc or desc)", ErrInvalidConfiguration, s)
}

// Query describes the view of the catalog the user asked for.
type Query struct {
	SearchTerm    string        `json:"search_term" yaml:"search_term"`
	StatusFilter  StatusFilter  `json:"status_filter" yaml:"status_filter"`
	SortKey       SortKey       `json:"sort_key" yaml:"sort_key"`
	SortDirection SortDirection `json:"sort_direction" yaml:"sort_direction"`
}

// DefaultQuery returns the view shown before the user changes anything:
// every report, newest first.
func DefaultQuery() Query {
	return Query{
		StatusFilter:  FilterAll,
		SortKey:       SortDate,
		SortDirection: Descending,
	}
}

// Validate reports whether every enum field of q holds a known value.
func (q Query) Validate() error {
	switch q.StatusFilter {
	case FilterAll, FilterCompleted, FilterInProgress:
	default:
		return fmt.Errorf("%w: status filter %q", ErrInvalidConfiguration, q.StatusFilter)
	}
	switch q.SortKey {
	case SortDate, SortTitle, SortPaperCount:
	default:
		return fmt.Errorf("%w: sort key %q", ErrInvalidConfiguration, q.SortKey)
	}
	switch q.SortDirection {
	case Ascending, Descending:
	default:
		return fmt.Errorf("%w: sort direction %q", ErrInvalidConfiguration, q.SortDirection)
	}
	return nil
}

// DeriveView returns the reports matching q in q's order. A report matches
// when its title, topic, or summary contains the search term (ignoring
// case) and its status passes the filter. Ties keep their input order.
// The input slice is not modified.
func DeriveView(reports []types.Report, q Query) ([]types.Report, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	term := fold.String(q.SearchTerm)

	view := make([]types.Report, 0, len(reports))
	for _, r := range reports {
		if q.StatusFilter != FilterAll && string(r.Status) != string(q.StatusFilter) {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(r.Title), term) &&
			!strings.Contains(fold.String(r.Topic), term) &&
			!strings.Contains(fold.String(r.Summary), term) {
			continue
		}
		view = append(view, r)
	}

	compare := comparator(q.SortKey)
	invert := q.SortDirection != q.SortKey.DefaultDirection()
	sort.SliceStable(view, func(i, j int) bool {
		c := compare(view[i], view[j])
		if invert {
			c = -c
		}
		return c < 0
	})
	return view, nil
}

// comparator returns the ordering for k in its default direction.
func comparator(k SortKey) func(a, b types.Report) int {
	switch k {
	case SortTitle:
		coll := collate.New(language.English)
		return func(a, b types.Report) int {
			return coll.CompareString(a.Title, b.Title)
		}
	case SortPaperCount:
		return func(a, b types.Report) int {
			return cmp.Compare(b.PaperCount, a.PaperCount)
		}
	default:
		return func(a, b types.Report) int {
			return b.CreatedDate.Compare(a.CreatedDate.Time)
		}
	}
}

// RemoveReport returns a copy of reports without the entry whose ID is id.
// When no entry matches the copy equals the input.
func RemoveReport(reports []types.Report, id string) []types.Report {
	if reports == nil {
		return nil
	}
	out := make([]types.Report, 0, len(reports))
	for _, r := range reports {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// CheckUnique returns ErrDuplicateID if two reports share an id, and an
// error for any report with an empty id or unknown status.
func CheckUnique(reports []types.Report) error {
	seen := make(map[string]bool, len(reports))
	for _, r := range reports {
		if err := checkReport(r); err != nil {
			return err
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

func checkReport(r types.Report) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("report %q has no id", r.Title)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("report %s has unknown status %q", r.ID, r.Status)
	}
	if r.PaperCount < 0 {
		return fmt.Errorf("report %s has negative paper count %d", r.ID, r.PaperCount)
	}
	return nil
}
