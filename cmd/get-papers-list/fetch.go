// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/internal/secrets"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

func runFetch(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	defer log.Sync()

	fcfg := fetcherConfig()
	secrets.Apply(&fcfg, loadedSecrets)
	rcfg := reportConfig()

	client := pubmed.NewClient(&http.Client{Timeout: fcfg.Timeout}, fcfg, log)
	open := func() (report.Sink, error) {
		return report.Open(rcfg, os.Stdout, runID)
	}

	sum, err := pipeline.Run(cmd.Context(), args[0], client, client, open, runID, log)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return err
	}

	log.Debug("run complete",
		zap.Int("found", sum.Found),
		zap.Int("fetched", sum.Fetched),
		zap.Int("reported", sum.Reported),
	)
	if rcfg.Path != "" {
		log.Debug("results saved", zap.String("path", rcfg.Path))
	}
	return nil
}

// fetcherConfig reads the record-source settings from flags, config file,
// and PHARMA_PAPERS_FETCHER_* environment variables.
func fetcherConfig() types.FetcherConfig {
	return types.FetcherConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("fetcher.timeout"),
			UserAgent:  stringOr(viper.GetString("fetcher.user_agent"), defaultUserAgent),
			MaxRetries: viper.GetInt("fetcher.max_retries"),
		},
		MaxResults:        viper.GetInt("fetcher.max_results"),
		BatchSize:         viper.GetInt("fetcher.batch_size"),
		RequestsPerSecond: viper.GetFloat64("fetcher.requests_per_second"),
		APIKey:            viper.GetString("fetcher.api_key"),
		Email:             viper.GetString("fetcher.email"),
		Tool:              viper.GetString("fetcher.tool"),
	}
}

// reportConfig reads the report settings.
func reportConfig() types.ReportConfig {
	return types.ReportConfig{
		Format: types.ReportFormat(viper.GetString("report.format")),
		Path:   viper.GetString("report.path"),
	}
}

func stringOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
