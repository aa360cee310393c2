// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schema-extractor/internal/document"
	"github.com/pdiddy/schema-extractor/internal/extract"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the definitions available in the swagger document",
	Long: `List prints every name in the document's definitions table with the
file name extract would write for it. Names in the default extraction
list are marked with "*".`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	src := viper.GetString("swagger")
	if err := extract.CheckSource(src); err != nil {
		return err
	}
	doc, err := document.Load(src)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	names := extract.AllSchemaNames(doc)
	for _, name := range names {
		mark := " "
		if slices.Contains(extract.DefaultSchemaNames, name) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-32s %s.json\n", mark, name, extract.OutputName(name))
	}
	fmt.Fprintf(w, "\n%d definitions\n", len(names))
	return nil
}
