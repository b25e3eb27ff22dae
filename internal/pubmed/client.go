// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed is the record source for the pipeline: it searches PubMed
// through the NCBI E-utilities ESearch endpoint and fetches full records in
// batches through EFetch, mapping the XML into types.RawPaper values.
//
// All requests share one rate limiter (3 requests per second, or 10 with an
// API key) and are retried on HTTP 429 and 5xx.
package pubmed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/pharma-papers/internal/httputil"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// eutilsBase is the E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	DefaultMaxResults = 100
	DefaultBatchSize  = 20
	DefaultTool       = "get-papers-list"

	// NCBI allows 3 requests per second without a key and 10 with one.
	anonymousRate = 3.0
	keyedRate     = 10.0
)

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = errors.New("query is empty")

// Client talks to PubMed. It is safe for concurrent use; the shared limiter
// keeps the combined request rate within NCBI's limits.
type Client struct {
	cfg  types.FetcherConfig
	doer *httputil.Doer
	log  *zap.Logger
}

// NewClient returns a Client with defaults applied to cfg. A nil logger
// discards log output.
func NewClient(hc *http.Client, cfg types.FetcherConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = anonymousRate
		if cfg.APIKey != "" {
			cfg.RequestsPerSecond = keyedRate
		}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	return &Client{
		cfg:  cfg,
		doer: httputil.NewDoer(hc, limiter, cfg.MaxRetries, log),
		log:  log,
	}
}

// Config returns the effective configuration after defaults.
func (c *Client) Config() types.FetcherConfig { return c.cfg }

// Search runs an ESearch query and returns up to MaxResults PubMed IDs in
// relevance order. IDs are returned as text, exactly as PubMed sent them.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	c.log.Debug("searching PubMed", zap.String("query", query))

	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", c.cfg.MaxResults))
	params.Set("usehistory", "y")

	resp, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("PubMed search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed search returned HTTP %d", resp.StatusCode)
	}

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing PubMed search response: %w", err)
	}
	if er.Result.Error != "" {
		return nil, fmt.Errorf("PubMed search: %s", er.Result.Error)
	}

	c.log.Debug("search complete",
		zap.Int("found", len(er.Result.IDList)),
		zap.String("total", er.Result.Count),
	)
	return er.Result.IDList, nil
}

// Fetch retrieves the records for ids in batches of BatchSize. A batch that
// fails is logged and skipped so the remaining batches still run; IDs that
// PubMed cannot resolve are simply absent from the result. Fetch returns an
// error only when ctx is done.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]types.RawPaper, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	c.log.Debug("fetching paper details", zap.Int("papers", len(ids)))

	size := c.cfg.BatchSize
	batches := (len(ids) + size - 1) / size

	var all []types.RawPaper
	for i := 0; i < len(ids); i += size {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		end := min(i+size, len(ids))
		batch := ids[i:end]
		n := i/size + 1

		papers, err := c.fetchBatch(ctx, batch)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return all, ctxErr
			}
			c.log.Warn("skipping batch",
				zap.Int("batch", n),
				zap.Int("batches", batches),
				zap.Error(err),
			)
			continue
		}
		all = append(all, papers...)
		c.log.Debug("processed batch",
			zap.Int("batch", n),
			zap.Int("batches", batches),
			zap.Int("records", len(papers)),
		)
	}
	return all, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []string) ([]types.RawPaper, error) {
	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	resp, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("PubMed fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed fetch returned HTTP %d", resp.StatusCode)
	}

	return ParseArticleSet(resp.Body)
}

func (c *Client) baseParams() url.Values {
	params := url.Values{"db": {"pubmed"}}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	reqURL := eutilsBase + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	return c.doer.Do(ctx, req)
}

// ESearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}
