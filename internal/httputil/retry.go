// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides paced, retrying HTTP request helpers.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 and 5xx responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// Doer issues paced requests with retries. The zero value is not usable;
// build one with NewDoer.
type Doer struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	log        *zap.Logger
}

// NewDoer returns a Doer. A nil limiter disables pacing; maxRetries <= 0
// selects the default (5); a nil logger discards log output.
func NewDoer(client *http.Client, limiter *rate.Limiter, maxRetries int, log *zap.Logger) *Doer {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Doer{client: client, limiter: limiter, maxRetries: maxRetries, log: log}
}

// Do executes req, waiting on the limiter before every attempt, and retries
// on HTTP 429 or 5xx with exponential backoff: RetryBaseDelay, then double
// each attempt.
//
// On each retryable status the body is drained and closed before sleeping.
// If the context is cancelled while waiting, Do returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect it.
func (d *Doer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := d.client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= d.maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		d.log.Warn("retrying request",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", d.maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
