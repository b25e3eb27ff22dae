// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. It searches
// PubMed and reports papers with at least one author affiliated with a
// pharmaceutical or biotech company.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	appName          = "get-papers-list"
	envPrefix        = "PHARMA_PAPERS"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = appName + "/0.1"
)

var (
	// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is built in PersistentPreRunE once --debug is known.
	logger = zap.NewNop()
)

// rootCmd searches PubMed for QUERY and writes the report.
var rootCmd = &cobra.Command{
	Use:   appName + " QUERY",
	Short: "Find PubMed papers with pharmaceutical or biotech authors",
	Long: `get-papers-list searches PubMed with a query in PubMed syntax, fetches
the matching records, and reports the papers that have at least one author
affiliated with a pharmaceutical or biotech company.

The report is CSV on standard output unless --file is given. The output
format follows --format or the file extension (csv, json, yaml, xlsx, db).

Affiliations are classified with a keyword heuristic; results are
best-effort.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = log

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return fmt.Errorf("reading secrets directory %s: %w", secrets.DefaultDir, err)
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print debug information during execution")

	rootCmd.Flags().StringP("file", "f", "", "write the results to this file instead of standard output")
	rootCmd.Flags().String("format", "", "output format: csv, json, yaml, xlsx, sqlite (default: from file extension, else csv)")
	rootCmd.Flags().Int("max-results", pubmed.DefaultMaxResults, "maximum number of PubMed IDs to fetch")
	rootCmd.Flags().Int("batch-size", pubmed.DefaultBatchSize, "number of records per fetch request")
	rootCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	bindFlags(map[string]string{
		"debug":               "debug",
		"report.path":         "file",
		"report.format":       "format",
		"fetcher.max_results": "max-results",
		"fetcher.batch_size":  "batch-size",
		"fetcher.timeout":     "timeout",
	})
}

// bindFlags binds viper keys to flags so flags override config and env.
func bindFlags(keys map[string]string) {
	for key, name := range keys {
		f := rootCmd.Flags().Lookup(name)
		if f == nil {
			f = rootCmd.PersistentFlags().Lookup(name)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func initConfig() {
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
