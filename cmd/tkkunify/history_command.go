package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tkkunify/internal/runlog"
)

type historyRunPayload struct {
	Run    runlog.Run           `json:"run"`
	Issues []runlog.IssueRecord `json:"issues"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded unification runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list run history: %w", err)
			}

			if jsonOutput {
				if runs == nil {
					runs = []runlog.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format(time.DateTime),
					run.DocumentPath,
					strconv.Itoa(run.Entries),
					strconv.Itoa(run.Renames),
					strconv.Itoa(run.Failures),
					strconv.Itoa(run.Issues),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Document", "Entries", "Renames", "Failures", "Issues"},
				rows,
				3, 4, 5, 6,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run list as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run with its residual issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, issues, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				if issues == nil {
					issues = []runlog.IssueRecord{}
				}
				return writeJSON(cmd, historyRunPayload{Run: *run, Issues: issues})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Document: %s\n", run.DocumentPath)
			fmt.Fprintf(out, "Entries:  %d  Renames: %d  Failures: %d  Issues: %d\n",
				run.Entries, run.Renames, run.Failures, run.Issues)

			if len(issues) == 0 {
				fmt.Fprintln(out, "\nNo residual issues")
				return nil
			}
			rows := make([][]string, 0, len(issues))
			for _, issue := range issues {
				where := issue.EntryID
				if issue.File != "" {
					where = issue.File
				}
				rows = append(rows, []string{issue.Kind, where, issue.Value})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Where", "Id"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run as JSON")
	return cmd
}

func openHistory(ctx *commandContext) (*runlog.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("run history is disabled in the configuration")
	}
	store, err := runlog.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return store, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
