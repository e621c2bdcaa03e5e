// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reports

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// statusColor mirrors the status chips: green, yellow, red.
func statusColor(s types.ReportStatus) *color.Color {
	switch s {
	case types.StatusCompleted:
		return color.New(color.FgGreen)
	case types.StatusInProgress:
		return color.New(color.FgYellow)
	case types.StatusFailed:
		return color.New(color.FgRed)
	}
	return color.New(color.Reset)
}

// FormatTable writes the view as a human-readable table to w.
func FormatTable(view []types.Report, w io.Writer) {
	if len(view) == 0 {
		fmt.Fprintln(w, "No reports found.")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Topic"),
		bold.Sprint("Date"), bold.Sprint("Papers"), bold.Sprint("Status"))
	for _, r := range view {
		tbl.AddRow(r.ID, r.Title, r.Topic, r.CreatedDate.String(), r.PaperCount,
			statusColor(r.Status).Sprint(r.Status.Label()))
	}
	fmt.Fprintln(w, tbl)
	fmt.Fprintf(w, "\n%d reports\n", len(view))
}

// FormatJSON writes the view as indented JSON to w.
func FormatJSON(view []types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
