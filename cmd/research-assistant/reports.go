// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/reports"
)

var reportsCmd = &cobra.Command{
	Use:   "reports [search term]",
	Short: "List, search, filter, and sort research reports",
	Long: `Reports lists the research report catalog. The search term matches report
titles, topics, and summaries ignoring case. Results can be filtered by
status and sorted by date, title, or paper count.

Deletions with --delete apply to this invocation only; the catalog is not
persisted.`,
	RunE: runReports,
}

func init() {
	reportsCmd.Flags().String("search", "", "search term (alternative to the positional argument)")
	reportsCmd.Flags().String("status", string(reports.FilterAll), "status filter: all, completed, in-progress")
	reportsCmd.Flags().String("sort", string(reports.SortDate), "sort key: date, title, papers")
	reportsCmd.Flags().String("order", "", "sort direction: asc or desc (default depends on --sort)")
	reportsCmd.Flags().StringSlice("delete", nil, "report IDs to delete before listing")
	reportsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, err := reports.Open(cfg.Reports, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	deleteIDs, _ := cmd.Flags().GetStringSlice("delete")
	for _, id := range deleteIDs {
		if err := store.Delete(ctx, strings.TrimSpace(id)); err != nil {
			return err
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("loading reports: %w", err)
	}

	view, err := reports.DeriveView(all, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return reports.FormatJSON(view, out)
	}
	reports.FormatTable(view, out)
	return nil
}

// queryFromFlags validates the query flags at the command boundary.
func queryFromFlags(cmd *cobra.Command, args []string) (reports.Query, error) {
	term, _ := cmd.Flags().GetString("search")
	if term == "" && len(args) > 0 {
		term = strings.Join(args, " ")
	}
	status, _ := cmd.Flags().GetString("status")
	sortKey, _ := cmd.Flags().GetString("sort")
	order, _ := cmd.Flags().GetString("order")

	q := reports.Query{SearchTerm: term}
	var err error
	if q.StatusFilter, err = reports.ParseStatusFilter(status); err != nil {
		return q, err
	}
	if q.SortKey, err = reports.ParseSortKey(sortKey); err != nil {
		return q, err
	}
	q.SortDirection = q.SortKey.DefaultDirection()
	if order != "" {
		if q.SortDirection, err = reports.ParseSortDirection(order); err != nil {
			return q, err
		}
	}
	return q, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
