// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ReportStatus tracks a report's generation state.
type ReportStatus string

const (
	StatusCompleted  ReportStatus = "completed"
	StatusInProgress ReportStatus = "in-progress"
	StatusFailed     ReportStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusFailed:
		return true
	}
	return false
}

// Label returns the display form of the status ("In Progress").
func (s ReportStatus) Label() string {
	parts := strings.Split(string(s), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// dateFmt is the calendar-date layout used for CreatedDate on the wire.
const dateFmt = "2006-01-02"

// Date is a calendar date without a time-of-day component. It marshals as
// YYYY-MM-DD in both JSON and YAML.
type Date struct {
	time.Time
}

// NewDate returns the Date for year, month, day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateFmt)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the date as a YYYY-MM-DD string. It shadows the
// RFC 3339 encoding promoted from time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// Report is an entry in the research report catalog.
type Report struct {
	// ID is unique within a catalog.
	ID string `json:"id" yaml:"id"`

	// Title is the report title.
	Title string `json:"title" yaml:"title"`

	// Topic is the research topic the report covers.
	Topic string `json:"topic" yaml:"topic"`

	// CreatedDate is the day the report was created.
	CreatedDate Date `json:"created_date" yaml:"created_date"`

	// PaperCount is the number of papers the report draws on.
	PaperCount int `json:"paper_count" yaml:"paper_count"`

	// Status is completed, in-progress, or failed.
	Status ReportStatus `json:"status" yaml:"status"`

	// Summary is a short description of the report.
	Summary string `json:"summary" yaml:"summary"`
}
