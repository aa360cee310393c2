// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the schema-extractor CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schema-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log carries warnings and debug output to stderr.
var log = logrus.New()

// rootCmd is the base command for the schema-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "schema-extractor",
	Short: "Extract JSON Schemas from a Swagger definitions file",
	Long: `schema-extractor reads a Swagger/OpenAPI definitions document (such as
GoToSocial's swagger.yaml), converts selected schema definitions to
JSON Schema draft-07, and writes one <snake_case_name>.json file per
schema for use in validation tests.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(cmd.ErrOrStderr())
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./schema-extractor.yaml or ~/.config/schema-extractor/config.yaml)")
	rootCmd.PersistentFlags().String("swagger", types.DefaultSwaggerPath, "path to swagger.yaml file")
	rootCmd.PersistentFlags().String("manifest", "", "SQLite manifest database recording extraction runs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("swagger", rootCmd.PersistentFlags().Lookup("swagger"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
}

// initConfig reads an optional YAML config file. Settings come only from
// flags and that file; the environment is not consulted.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schema-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schema-extractor"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Warn("could not read config file")
		}
	}
}

// manifestConfig builds the manifest settings from flags and config.
func manifestConfig() types.ManifestConfig {
	return types.ManifestConfig{
		Path:    viper.GetString("manifest"),
		MaxRuns: viper.GetInt("max_runs"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
