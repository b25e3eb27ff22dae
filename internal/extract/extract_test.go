// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func TestPaper_MixedAuthors(t *testing.T) {
	raw := types.RawPaper{
		ID:    "38012345",
		Title: "A study of things",
		Year:  "2024",
		Month: "Jan",
		Authors: []types.RawAuthor{
			{LastName: "Smith", ForeName: "John", Affiliation: "MIT"},
			{LastName: "Doe", ForeName: "Jane", Affiliation: "Acme Pharma Inc, email: jane@acme.com"},
		},
	}

	p, ok := Paper(raw)
	require.True(t, ok)

	assert.Equal(t, "38012345", p.ID)
	assert.Equal(t, "2024-Jan", p.PublicationDate)

	na := p.NonAcademicAuthors()
	require.Len(t, na, 1)
	assert.Equal(t, "Doe, Jane", na[0].Name)
	assert.Equal(t, []string{"Acme Pharma Inc"}, p.CompanyAffiliations())
	assert.Equal(t, "jane@acme.com", p.CorrespondingAuthorEmail())

	assert.False(t, p.Authors[0].IsCorresponding)
	assert.True(t, p.Authors[1].IsCorresponding)
}

func TestPaper_NoIdentifierIsDropped(t *testing.T) {
	_, ok := Paper(types.RawPaper{Title: "Orphan"})
	assert.False(t, ok)

	_, ok = Paper(types.RawPaper{ID: "   "})
	assert.False(t, ok)
}

func TestPaper_IdentifierIsOpaque(t *testing.T) {
	p, ok := Paper(types.RawPaper{ID: "000123"})
	require.True(t, ok)
	assert.Equal(t, "000123", p.ID)
}

func TestPaper_Defaults(t *testing.T) {
	p, ok := Paper(types.RawPaper{ID: "1"})
	require.True(t, ok)
	assert.Equal(t, types.UnknownTitle, p.Title)
	assert.Equal(t, types.UnknownDate, p.PublicationDate)
	assert.Empty(t, p.Authors)
	assert.Empty(t, p.CorrespondingAuthorEmail())
}

func TestPaper_FirstAuthorCorrespondingWithoutEmails(t *testing.T) {
	p, ok := Paper(types.RawPaper{
		ID: "2",
		Authors: []types.RawAuthor{
			{LastName: "Alpha", ForeName: "A"},
			{LastName: "Beta", ForeName: "B", Affiliation: "Acme Biotech, Cambridge, MA"},
		},
	})
	require.True(t, ok)
	require.Len(t, p.Authors, 2)
	assert.True(t, p.Authors[0].IsCorresponding)
	assert.False(t, p.Authors[1].IsCorresponding)
	assert.Empty(t, p.CorrespondingAuthorEmail())
}

func TestPaper_UpstreamCorrespondingFlagKept(t *testing.T) {
	p, ok := Paper(types.RawPaper{
		ID: "3",
		Authors: []types.RawAuthor{
			{LastName: "Alpha", Affiliation: "Acme Inc, a@acme.com"},
			{LastName: "Beta", Affiliation: "Beta Labs, b@beta.com", Corresponding: true},
		},
	})
	require.True(t, ok)
	assert.False(t, p.Authors[0].IsCorresponding)
	assert.True(t, p.Authors[1].IsCorresponding)
	assert.Equal(t, "b@beta.com", p.CorrespondingAuthorEmail())
}

func TestPaper_EmptyNamesSkipped(t *testing.T) {
	p, ok := Paper(types.RawPaper{
		ID: "4",
		Authors: []types.RawAuthor{
			{LastName: " ", ForeName: ""},
			{LastName: "Gamma", ForeName: "G"},
		},
	})
	require.True(t, ok)
	require.Len(t, p.Authors, 1)
	assert.Equal(t, "Gamma, G", p.Authors[0].Name)
	assert.True(t, p.Authors[0].IsCorresponding)
}

func TestPapers_DropsUnusableAndKeepsOrder(t *testing.T) {
	papers := Papers([]types.RawPaper{
		{ID: "a"},
		{Title: "no id"},
		{ID: "b"},
	})
	require.Len(t, papers, 2)
	assert.Equal(t, "a", papers[0].ID)
	assert.Equal(t, "b", papers[1].ID)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		last, fore, want string
	}{
		{"Smith", "John", "Smith, John"},
		{"Smith", "", "Smith"},
		{"", "John", "John"},
		{"", "", ""},
		{" Smith ", " John ", "Smith, John"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayName(tt.last, tt.fore), "DisplayName(%q, %q)", tt.last, tt.fore)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Acme Inc. Electronic address: j.doe-1@acme.co.uk.", "j.doe-1@acme.co.uk"},
		{"first@a.com; second@b.com", "first@a.com"},
		{"no address here", ""},
		{"", ""},
		{"broken@nodot", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.text), "Email(%q)", tt.text)
	}
}

func TestPublicationDate(t *testing.T) {
	assert.Equal(t, "2023-Mar-05", PublicationDate("2023", "Mar", "05"))
	assert.Equal(t, "2023", PublicationDate("2023", "", ""))
	assert.Equal(t, "Mar-05", PublicationDate("", "Mar", "05"))
	assert.Equal(t, types.UnknownDate, PublicationDate("", " ", ""))
}

func TestAuthor_CompanyOnlyWhenNonAcademic(t *testing.T) {
	a, ok := Author(types.RawAuthor{LastName: "X", Affiliation: "Harvard University, Acme Inc"})
	require.True(t, ok)
	assert.False(t, a.IsNonAcademic)
	assert.Empty(t, a.Company)

	a, ok = Author(types.RawAuthor{LastName: "Y", Affiliation: "Acme Biotech, Cambridge, MA"})
	require.True(t, ok)
	assert.True(t, a.IsNonAcademic)
	assert.Equal(t, "Acme Biotech", a.Company)
}
