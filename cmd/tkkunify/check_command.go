package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tkkunify/internal/unify"
)

type checkPayload struct {
	Document string        `json:"document"`
	Files    int           `json:"files"`
	Issues   []unify.Issue `json:"issues"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var documentFlag string
	var svgDirFlag string
	var prefixFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify document and markup ids without modifying anything",
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

			doc, err := loadDocument(documentPath)
			if err != nil {
				return err
			}
			store, err := unify.OpenDir(svgDir)
			if err != nil {
				return fmt.Errorf("open SVG directory %s: %w", svgDir, err)
			}

			files := make(map[string]string)
			for _, name := range store.List() {
				text, err := store.Read(name)
				if err != nil {
					return fmt.Errorf("read markup file %s: %w", name, err)
				}
				files[name] = text
			}

			issues := unify.Validate(doc, prefix, files)

			if jsonOutput {
				if err := writeJSON(cmd, checkPayload{
					Document: documentPath,
					Files:    len(files),
					Issues:   issueSlice(issues),
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				renderCheckReport(out, issues, shouldColorize(out))
			}

			if len(issues) > 0 {
				return fmt.Errorf("found %d unreconciled ids", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&documentFlag, "document", "", "Path to the textcritics JSON document")
	cmd.Flags().StringVar(&svgDirFlag, "svg-dir", "", "Directory containing the SVG files")
	cmd.Flags().StringVar(&prefixFlag, "prefix", "", "Canonical id prefix (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the check report as JSON")
	return cmd
}
