// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// --- mocks ---

type mockSearcher struct {
	ids []string
	err error
}

func (m *mockSearcher) Search(_ context.Context, _ string) ([]string, error) {
	return m.ids, m.err
}

type mockSource struct {
	papers []types.RawPaper
	err    error
	gotIDs []string
}

func (m *mockSource) Fetch(_ context.Context, ids []string) ([]types.RawPaper, error) {
	m.gotIDs = ids
	return m.papers, m.err
}

type failingSink struct{}

func (failingSink) Write([]report.Row) error { return errors.New("disk full") }
func (failingSink) Close() error             { return nil }

func csvTo(buf *bytes.Buffer) SinkOpener {
	return func() (report.Sink, error) { return report.NewCSVSink(buf), nil }
}

const header = "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email\n"

func TestRun(t *testing.T) {
	searcher := &mockSearcher{ids: []string{"1", "2", "3"}}
	source := &mockSource{papers: []types.RawPaper{
		{ID: "1", Title: "Academic only", Authors: []types.RawAuthor{
			{LastName: "Smith", ForeName: "John", Affiliation: "Harvard University"},
		}},
		{ID: "2", Title: "Industry", Year: "2024", Authors: []types.RawAuthor{
			{LastName: "Smith", ForeName: "John", Affiliation: "MIT"},
			{LastName: "Doe", ForeName: "Jane", Affiliation: "Acme Pharma Inc, email: jane@acme.com"},
		}},
		{Title: "no identifier"},
	}}

	var buf bytes.Buffer
	sum, err := Run(context.Background(), "q", searcher, source, csvTo(&buf), "run-1", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, source.gotIDs)
	assert.Equal(t, Summary{RunID: "run-1", Found: 3, Fetched: 3, Extracted: 2, Reported: 1}, sum)
	assert.Equal(t, header+`2,Industry,2024,"Doe, Jane",Acme Pharma Inc,jane@acme.com`+"\n", buf.String())
}

func TestRun_NoResultsWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Run(context.Background(), "q", &mockSearcher{}, &mockSource{}, csvTo(&buf), "run", nil)
	require.NoError(t, err)
	assert.Zero(t, sum.Reported)
	assert.Equal(t, header, buf.String())
}

func TestRun_SearchError(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), "q", &mockSearcher{err: errors.New("boom")}, &mockSource{}, csvTo(&buf), "run", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching")
	assert.Empty(t, buf.String())
}

func TestRun_FetchError(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), "q", &mockSearcher{ids: []string{"1"}},
		&mockSource{err: context.Canceled}, csvTo(&buf), "run", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SinkErrorPropagates(t *testing.T) {
	_, err := Run(context.Background(), "q", &mockSearcher{}, &mockSource{}, func() (report.Sink, error) { return failingSink{}, nil }, "run", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "disk full"))
}

func TestRun_SinkNotOpenedOnFetchFailure(t *testing.T) {
	opened := false
	open := func() (report.Sink, error) {
		opened = true
		return failingSink{}, nil
	}
	_, err := Run(context.Background(), "q", &mockSearcher{ids: []string{"1"}},
		&mockSource{err: errors.New("network down")}, open, "run", nil)
	require.Error(t, err)
	assert.False(t, opened)
}

func TestRun_OpenError(t *testing.T) {
	open := func() (report.Sink, error) { return nil, errors.New("permission denied") }
	_, err := Run(context.Background(), "q", &mockSearcher{}, &mockSource{}, open, "run", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening report")
}
