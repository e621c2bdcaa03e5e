// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/discover"
	"github.com/pdiddy/research-assistant/internal/reports"
	"github.com/pdiddy/research-assistant/internal/wizard"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Discover papers for a topic, select some, and summarize",
	Long: `Research runs the three-step wizard: define a research topic, review and
select the discovered papers, then summarize the selection.

Without --select or --select-all the command stops after listing the
candidates. Use --save to keep the candidates in a query file and --replay
to review them again later without another search.`,
	Args: cobra.ArbitraryArgs,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Int("max-results", types.DefaultMaxResults, "maximum number of papers to retrieve (1-20)")
	researchCmd.Flags().Duration("delay", discover.DefaultStubDelay, "simulated discovery latency")
	researchCmd.Flags().Int("retries", 0, "retry a failed discovery this many times")
	researchCmd.Flags().String("replay", "", "serve candidates from a saved query file")
	researchCmd.Flags().String("save", "", "save the discovered candidates to a query file")
	researchCmd.Flags().StringSlice("select", nil, "paper IDs to select (comma-separated)")
	researchCmd.Flags().Bool("select-all", false, "select every discovered paper")
	researchCmd.Flags().Bool("draft", false, "draft a catalog report from the selection")
	researchCmd.Flags().Bool("json", false, "output as JSON")

	_ = viper.BindPFlag(keyMaxResults, researchCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag(keyDelay, researchCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag(keyRetries, researchCmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag(keyReplayFile, researchCmd.Flags().Lookup("replay"))

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	out := cmd.OutOrStdout()

	topic := strings.Join(args, " ")
	savePath, _ := cmd.Flags().GetString("save")
	selectIDs, _ := cmd.Flags().GetStringSlice("select")
	selectAll, _ := cmd.Flags().GetBool("select-all")
	draft, _ := cmd.Flags().GetBool("draft")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	d, err := discover.FromConfig(cfg.Wizard.Discovery, logger)
	if err != nil {
		return err
	}

	m := wizard.NewMachine(d,
		wizard.WithLogger(logger),
		wizard.WithDefaultMaxResults(cfg.Wizard.MaxResults))
	defer m.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := m.SubmitTopic(topic, cfg.Wizard.MaxResults); err != nil {
		return fmt.Errorf("%s: %w", m.State().LastError, err)
	}
	if !jsonOutput {
		fmt.Fprintf(out, "Searching for papers about %q...\n", strings.TrimSpace(topic))
	}

	s, err := m.Wait(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			m.Reset()
		}
		if s.LastError != "" {
			return fmt.Errorf("%s: %w", s.LastError, err)
		}
		return err
	}

	if savePath != "" {
		if err := discover.WriteQueryFile(savePath, s.Topic, s.MaxResults, s.Candidates); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprintf(out, "Saved %d candidates to %s\n", len(s.Candidates), savePath)
		}
	}

	if !selectAll && len(selectIDs) == 0 {
		if jsonOutput {
			return writeJSON(out, s)
		}
		fmt.Fprintf(out, "Found %d papers about %q\n\n", len(s.Candidates), s.Topic)
		discover.FormatTable(s.Candidates, out)
		fmt.Fprintln(out, "\nSelect papers with --select or --select-all to continue.")
		return nil
	}

	if selectAll {
		selectIDs = selectIDs[:0]
		for _, p := range s.Candidates {
			selectIDs = append(selectIDs, p.ID)
		}
	}
	for _, id := range uniqueIDs(selectIDs) {
		if err := m.ToggleSelection(id); err != nil {
			return err
		}
	}
	if err := m.ConfirmSelection(); err != nil {
		return fmt.Errorf("%s: %w", m.State().LastError, err)
	}
	s = m.State()

	var catalog []types.Report
	if draft {
		if catalog, err = addDraft(ctx, cfg.Reports, s); err != nil {
			return err
		}
	}

	if jsonOutput {
		return writeJSON(out, struct {
			wizard.State
			Reports []types.Report `json:"reports,omitempty"`
		}{s, catalog})
	}
	printSummary(out, s)
	if draft {
		fmt.Fprintln(out)
		reports.FormatTable(catalog, out)
	}
	return nil
}

// addDraft drafts a report from the summary and returns the catalog with
// the draft added.
func addDraft(ctx context.Context, cfg types.ReportsConfig, s wizard.State) ([]types.Report, error) {
	r, err := wizard.DraftReport(s, time.Now())
	if err != nil {
		return nil, err
	}
	store, err := reports.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Add(ctx, r); err != nil {
		return nil, fmt.Errorf("adding draft report: %w", err)
	}
	all, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}
	return reports.DeriveView(all, reports.DefaultQuery())
}

// uniqueIDs trims ids and drops blanks and repeats, keeping first-seen
// order. Toggling an id twice would deselect it.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func printSummary(w io.Writer, s wizard.State) {
	fmt.Fprintf(w, "Research complete! Your report is being generated based on %d selected papers.\n\n", len(s.Chosen))
	fmt.Fprintln(w, "Selected Papers:")
	for _, p := range s.Chosen {
		fmt.Fprintf(w, "  %s\n    %s • %d\n", p.Title, strings.Join(p.Authors, ", "), p.Year)
	}
}
