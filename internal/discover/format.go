// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const titleWidth = 60

// FormatTable writes candidates as a human-readable table to w. Selected
// papers are marked with an asterisk.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	bold := color.New(color.Bold)
	mark := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.MaxColWidth = titleWidth
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Authors"), bold.Sprint("Year"))
	for _, p := range papers {
		sel := " "
		if p.Selected {
			sel = mark.Sprint("*")
		}
		tbl.AddRow(sel, p.ID, p.Title, formatAuthors(p.Authors), p.Year)
	}
	fmt.Fprintln(w, tbl)
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max-3])) + "..."
}
