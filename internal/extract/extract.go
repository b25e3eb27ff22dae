// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw paper records from a record source into
// classified types.Paper values. Each author's affiliation is run through
// the classifier, an email is pulled out of the affiliation text, and a
// corresponding author is inferred when the source flagged none.
//
// Extraction never fails loudly: a record without an identifier is dropped
// and every other missing field falls back to a documented default.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// emailPattern matches local@domain.tld with word, dot and dash characters.
var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// Papers extracts every usable record in order, dropping records that lack
// an identifier.
func Papers(raws []types.RawPaper) []types.Paper {
	out := make([]types.Paper, 0, len(raws))
	for _, raw := range raws {
		if p, ok := Paper(raw); ok {
			out = append(out, p)
		}
	}
	return out
}

// Paper extracts one record. It returns false when the record has no usable
// identifier.
func Paper(raw types.RawPaper) (types.Paper, bool) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return types.Paper{}, false
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = types.UnknownTitle
	}

	authors := make([]types.Author, 0, len(raw.Authors))
	for _, ra := range raw.Authors {
		if a, ok := Author(ra); ok {
			authors = append(authors, a)
		}
	}
	inferCorresponding(authors)

	return types.Paper{
		ID:              id,
		Title:           title,
		PublicationDate: PublicationDate(raw.Year, raw.Month, raw.Day),
		Authors:         authors,
	}, true
}

// Author builds and classifies one author. It returns false when both name
// parts are empty.
func Author(ra types.RawAuthor) (types.Author, bool) {
	name := DisplayName(ra.LastName, ra.ForeName)
	if name == "" {
		return types.Author{}, false
	}

	c := classify.Classify(ra.Affiliation)
	a := types.Author{
		Name:            name,
		Affiliation:     ra.Affiliation,
		Email:           Email(ra.Affiliation),
		IsCorresponding: ra.Corresponding,
		IsNonAcademic:   c.NonAcademic,
	}
	if c.NonAcademic {
		a.Company = c.Company
	}
	return a, true
}

// DisplayName joins name parts as "Last, Fore". A missing part leaves no
// stray separator: "Smith" or "John" rather than "Smith, " or ", John".
func DisplayName(last, fore string) string {
	name := strings.TrimSpace(last) + ", " + strings.TrimSpace(fore)
	return strings.Trim(name, ", ")
}

// Email returns the first email address in text, or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// PublicationDate joins the non-empty date parts with "-", or returns
// types.UnknownDate when there are none.
func PublicationDate(year, month, day string) string {
	var parts []string
	for _, p := range []string{year, month, day} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return types.UnknownDate
	}
	return strings.Join(parts, "-")
}

// inferCorresponding marks a corresponding author when none is flagged:
// the first author with an email, otherwise the first author.
func inferCorresponding(authors []types.Author) {
	if len(authors) == 0 {
		return
	}
	for _, a := range authors {
		if a.IsCorresponding {
			return
		}
	}
	for i := range authors {
		if authors[i].Email != "" {
			authors[i].IsCorresponding = true
			return
		}
	}
	authors[0].IsCorresponding = true
}
