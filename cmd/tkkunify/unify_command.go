package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tkkunify/internal/logging"
	"tkkunify/internal/runlog"
	"tkkunify/internal/textcritics"
	"tkkunify/internal/unify"
)

type unifyPayload struct {
	RunID    string               `json:"run_id,omitempty"`
	Document string               `json:"document"`
	Entries  int                  `json:"entries"`
	Renames  int                  `json:"renames"`
	Failures []unify.BlockFailure `json:"failures"`
	Issues   []unify.Issue        `json:"issues"`
}

func newUnifyCommand(ctx *commandContext) *cobra.Command {
	var documentFlag string
	var svgDirFlag string
	var prefixFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "unify",
		Short: "Rewrite group ids in the document and its SVG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			documentPath, err := resolvePathSetting(documentFlag, cfg.Paths.Document, "document", "paths.document", "--document")
			if err != nil {
				return err
			}
			svgDir, err := resolvePathSetting(svgDirFlag, cfg.Paths.SVGDir, "SVG directory", "paths.svg_dir", "--svg-dir")
			if err != nil {
				return err
			}
			prefix := strings.TrimSpace(prefixFlag)
			if prefix == "" {
				prefix = cfg.Unify.Prefix
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another tkkunify run is already in progress")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			if jsonOutput {
				logger = logging.Discard()
			}

			doc, err := loadDocument(documentPath)
			if err != nil {
				return err
			}
			store, err := unify.OpenDir(svgDir)
			if err != nil {
				return fmt.Errorf("open SVG directory %s: %w", svgDir, err)
			}

			started := time.Now().UTC()
			unifier := unify.New(store, prefix, logger.With("component", "unify"))
			res, err := unifier.Run(doc)
			if err != nil {
				return fmt.Errorf("unify run: %w", err)
			}
			if err := os.WriteFile(documentPath, doc.Render(), 0o644); err != nil {
				return fmt.Errorf("write document %s: %w", documentPath, err)
			}

			runID := ""
			if cfg.History.Enabled {
				runID, err = recordRun(cmd, cfg.History.Path, documentPath, started, res)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, unifyPayload{
					RunID:    runID,
					Document: documentPath,
					Entries:  res.Entries,
					Renames:  res.Renames,
					Failures: failureSlice(res.Failures),
					Issues:   issueSlice(res.Issues),
				})
			}

			out := cmd.OutOrStdout()
			renderRunReport(out, res, shouldColorize(out))
			if runID != "" {
				fmt.Fprintf(out, "\nRecorded as run %s\n", runID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&documentFlag, "document", "", "Path to the textcritics JSON document")
	cmd.Flags().StringVar(&svgDirFlag, "svg-dir", "", "Directory containing the SVG files")
	cmd.Flags().StringVar(&prefixFlag, "prefix", "", "Canonical id prefix (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")
	return cmd
}

func loadDocument(path string) (*textcritics.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", unify.ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	doc, err := textcritics.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return doc, nil
}

func recordRun(cmd *cobra.Command, historyPath, documentPath string, started time.Time, res *unify.Result) (string, error) {
	store, err := runlog.Open(historyPath)
	if err != nil {
		return "", fmt.Errorf("open run history: %w", err)
	}
	defer store.Close()

	run := runlog.Run{
		ID:           uuid.NewString(),
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
		DocumentPath: documentPath,
		Entries:      res.Entries,
		Renames:      res.Renames,
		Failures:     len(res.Failures),
		Issues:       len(res.Issues),
	}
	if err := store.Record(cmd.Context(), run, res.Issues); err != nil {
		return "", fmt.Errorf("record run history: %w", err)
	}
	return run.ID, nil
}

func resolvePathSetting(flagValue, configValue, what, configKey, flagName string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	return "", fmt.Errorf("%s path is not set; configure %s or pass %s", what, configKey, flagName)
}

func failureSlice(failures []unify.BlockFailure) []unify.BlockFailure {
	if failures == nil {
		return []unify.BlockFailure{}
	}
	return failures
}

func issueSlice(issues []unify.Issue) []unify.Issue {
	if issues == nil {
		return []unify.Issue{}
	}
	return issues
}
