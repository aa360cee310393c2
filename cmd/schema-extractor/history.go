// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/schema-extractor/internal/manifest"
	"github.com/pdiddy/schema-extractor/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show extraction runs recorded in the manifest",
	Long: `History lists extraction runs recorded with --manifest, newest first,
with the schemas each run wrote and the names it could not find.

Use --export with yaml or json to write the full history to a file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to show (default 20)")
	historyCmd.Flags().String("schema", "", "only runs that wrote this schema")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("export", "", "export history to a file: yaml or json")
	historyCmd.Flags().String("export-path", "", "export destination (default: manifest path with .yaml/.json)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := manifestConfig()
	if !cfg.Enabled() {
		return fmt.Errorf("no manifest configured: pass --manifest or set manifest in the config file")
	}

	store, err := manifest.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	schema, _ := cmd.Flags().GetString("schema")
	opts := manifest.QueryOptions{Schema: schema, MaxRuns: limit}
	ctx := context.Background()
	w := cmd.OutOrStdout()

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		path, _ := cmd.Flags().GetString("export-path")
		if path == "" {
			path = strings.TrimSuffix(cfg.Path, ".db") + "." + format
		}
		switch format {
		case "yaml":
			err = store.ExportYAML(ctx, path, opts)
		case "json":
			err = store.ExportJSON(ctx, path, opts)
		default:
			return fmt.Errorf("unknown export format %q (use yaml or json)", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported to %s\n", path)
		return nil
	}

	runs, err := store.Runs(ctx, opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	return formatHistory(cmd, runs)
}

func formatHistory(cmd *cobra.Command, runs []types.ExtractionRun) error {
	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-9s  %-7s  %s\n", "Run", "Started", "Extracted", "Missing", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-9d  %-7d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), len(r.Schemas), len(r.Missing), r.OutputDir)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}
