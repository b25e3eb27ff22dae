// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 5xx responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FetcherConfig holds settings for the PubMed record source.
type FetcherConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults caps the number of IDs requested from ESearch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// BatchSize is the number of IDs per EFetch request (default 20).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// RequestsPerSecond paces E-utilities calls. Zero selects 3/s, or 10/s
	// when APIKey is set.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// APIKey is an optional NCBI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email and Tool identify the caller to NCBI.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`
}

// ReportFormat selects the report sink.
type ReportFormat string

const (
	FormatCSV    ReportFormat = "csv"
	FormatJSON   ReportFormat = "json"
	FormatYAML   ReportFormat = "yaml"
	FormatXLSX   ReportFormat = "xlsx"
	FormatSQLite ReportFormat = "sqlite"
)

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// Format selects the sink. Empty means infer from Path, falling back to CSV.
	Format ReportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Path is the output file. Empty means standard output.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}
