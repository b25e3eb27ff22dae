// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the record source, extraction, filtering, and the
// report sink into a single run: search → fetch → extract → filter → write.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Searcher resolves a query to record identifiers.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Source returns raw records for identifiers. Identifiers it cannot resolve
// are skipped rather than reported as errors.
type Source interface {
	Fetch(ctx context.Context, ids []string) ([]types.RawPaper, error)
}

// SinkOpener creates the report sink. Run calls it only once the records
// are in hand, so a failed search or fetch leaves no partial output behind.
type SinkOpener func() (report.Sink, error)

// Summary reports what one run did.
type Summary struct {
	RunID     string
	Found     int // identifiers returned by the search
	Fetched   int // raw records returned by the source
	Extracted int // records with a usable identifier
	Reported  int // papers with at least one non-academic author
}

// Run executes the pipeline for query and writes the report to the sink
// returned by open. An empty result is not an error: the sink still receives
// an empty row list and writes a header-only report. Sink failures are
// returned.
func Run(ctx context.Context, query string, searcher Searcher, source Source, open SinkOpener, runID string, log *zap.Logger) (sum Summary, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	sum.RunID = runID

	ids, err := searcher.Search(ctx, query)
	if err != nil {
		return sum, fmt.Errorf("searching: %w", err)
	}
	sum.Found = len(ids)

	raws, err := source.Fetch(ctx, ids)
	if err != nil {
		return sum, fmt.Errorf("fetching records: %w", err)
	}
	sum.Fetched = len(raws)

	papers := extract.Papers(raws)
	sum.Extracted = len(papers)
	if dropped := len(raws) - len(papers); dropped > 0 {
		log.Debug("dropped records without an identifier", zap.Int("dropped", dropped))
	}

	rows := report.Rows(papers)
	sum.Reported = len(rows)
	log.Debug("filtered papers with pharmaceutical/biotech authors",
		zap.Int("papers", sum.Extracted),
		zap.Int("kept", sum.Reported),
	)

	sink, err := open()
	if err != nil {
		return sum, fmt.Errorf("opening report: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing report: %w", cerr)
		}
	}()

	if err := sink.Write(rows); err != nil {
		return sum, fmt.Errorf("writing report: %w", err)
	}
	return sum, nil
}
