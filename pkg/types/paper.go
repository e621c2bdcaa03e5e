// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research assistant.
// Paper is a discovery candidate, Report is a catalog entry, and the config
// types carry wizard and catalog settings.
package types

// Paper is a candidate returned by paper discovery. Selected is the only
// field that changes after the batch is created.
type Paper struct {
	// ID is unique within a discovery batch (e.g. "paper-1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// URL links to the paper PDF or landing page.
	URL string `json:"url" yaml:"url"`

	// Selected marks the paper for inclusion in the report.
	Selected bool `json:"selected" yaml:"selected"`
}

// ClonePapers returns a deep copy of papers so callers can hand out batches
// without sharing author slices.
func ClonePapers(papers []Paper) []Paper {
	if papers == nil {
		return nil
	}
	out := make([]Paper, len(papers))
	for i, p := range papers {
		out[i] = p
		if p.Authors != nil {
			out[i].Authors = append([]string(nil), p.Authors...)
		}
	}
	return out
}
