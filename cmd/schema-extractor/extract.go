// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schema-extractor/internal/extract"
	"github.com/pdiddy/schema-extractor/internal/manifest"
	"github.com/pdiddy/schema-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [schemas...]",
	Short: "Extract schema definitions to JSON Schema files",
	Long: `Extract loads the swagger document once, converts each requested
definition to JSON Schema draft-07, and writes it to
<output-dir>/<snake_case_name>.json. Names missing from the document are
reported as warnings and skipped.

Without --schemas, positional names, or --all, a built-in list of common
Mastodon API objects is extracted.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("output-dir", types.DefaultOutputDir, "output directory for JSON Schema files")
	extractCmd.Flags().StringSlice("schemas", nil, "schema names to extract (default: common Mastodon API objects)")
	extractCmd.Flags().Bool("all", false, "extract every definition in the document")

	_ = viper.BindPFlag("output_dir", extractCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("schemas", extractCmd.Flags().Lookup("schemas"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	cfg := types.ExtractionConfig{
		SwaggerPath: viper.GetString("swagger"),
		OutputDir:   viper.GetString("output_dir"),
		Schemas:     append(viper.GetStringSlice("schemas"), args...),
		All:         all,
	}

	if err := extract.CheckSource(cfg.SwaggerPath); err != nil {
		return err
	}

	started := time.Now()
	summary, err := extract.Run(cfg, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}

	mcfg := manifestConfig()
	if !mcfg.Enabled() {
		return nil
	}
	return recordRun(cmd, mcfg, types.ExtractionRun{
		Source:    cfg.SwaggerPath,
		OutputDir: cfg.OutputDir,
		StartedAt: started,
		Schemas:   summary.Extracted,
		Missing:   summary.Missing,
	})
}

func recordRun(cmd *cobra.Command, cfg types.ManifestConfig, run types.ExtractionRun) error {
	ctx := context.Background()
	store, err := manifest.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run.ID, err = store.Record(ctx, run)
	if err != nil {
		return err
	}

	changed, err := store.Changed(ctx, run)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(changed) == 0 {
		fmt.Fprintln(w, "No schema changes since the previous run")
	} else {
		fmt.Fprintf(w, "Changed since the previous run: %s\n", strings.Join(changed, ", "))
	}
	log.WithField("run", run.ID).Debugf("recorded run in %s", store.Path())
	return nil
}
