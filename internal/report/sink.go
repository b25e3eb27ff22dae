// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// ErrUnknownFormat is returned for a format name no sink implements.
var ErrUnknownFormat = errors.New("unknown report format")

// Sink accepts the report rows and serializes them. Write is called once
// per run; an empty slice still produces a well-formed, header-only report.
type Sink interface {
	Write(rows []Row) error
	Close() error
}

// ResolveFormat returns the configured format, or infers one from the
// output path's extension. Anything unrecognized falls back to CSV.
func ResolveFormat(cfg types.ReportConfig) (types.ReportFormat, error) {
	if cfg.Format != "" {
		f := types.ReportFormat(strings.ToLower(string(cfg.Format)))
		switch f {
		case types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatXLSX, types.FormatSQLite:
			return f, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".json":
		return types.FormatJSON, nil
	case ".yaml", ".yml":
		return types.FormatYAML, nil
	case ".xlsx":
		return types.FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return types.FormatSQLite, nil
	default:
		return types.FormatCSV, nil
	}
}

// Open creates the sink selected by cfg. With an empty Path the report goes
// to stdout; SQLite requires a file.
func Open(cfg types.ReportConfig, stdout io.Writer, runID string) (Sink, error) {
	format, err := ResolveFormat(cfg)
	if err != nil {
		return nil, err
	}

	if format == types.FormatSQLite {
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite report needs an output file")
		}
		return OpenSQLite(cfg.Path, runID)
	}

	w := stdout
	var f *os.File
	if cfg.Path != "" {
		f, err = os.Create(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("creating report file: %w", err)
		}
		w = f
	}

	var s Sink
	switch format {
	case types.FormatJSON:
		s = &JSONSink{w: w}
	case types.FormatYAML:
		s = &YAMLSink{w: w}
	case types.FormatXLSX:
		s = &XLSXSink{w: w}
	default:
		s = &CSVSink{w: w}
	}
	if f == nil {
		return s, nil
	}
	return &fileSink{Sink: s, f: f}, nil
}

// fileSink closes the underlying file after the wrapped sink.
type fileSink struct {
	Sink
	f *os.File
}

func (s *fileSink) Close() error {
	err := s.Sink.Close()
	if cerr := s.f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing report file: %w", cerr)
	}
	return err
}

// CSVSink writes a header row followed by one row per paper.
type CSVSink struct {
	w io.Writer
}

// NewCSVSink returns a CSV sink writing to w.
func NewCSVSink(w io.Writer) *CSVSink { return &CSVSink{w: w} }

func (s *CSVSink) Write(rows []Row) error {
	cw := csv.NewWriter(s.w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.PubmedID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error { return nil }

// JSONSink writes the rows as an indented JSON array.
type JSONSink struct {
	w io.Writer
}

func (s *JSONSink) Write(rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

func (s *JSONSink) Close() error { return nil }

// YAMLSink writes the rows as a YAML sequence.
type YAMLSink struct {
	w io.Writer
}

func (s *YAMLSink) Write(rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := yaml.NewEncoder(s.w)
	defer enc.Close()
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return nil
}

func (s *YAMLSink) Close() error { return nil }
