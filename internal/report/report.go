// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report filters classified papers down to those with at least one
// non-academic author, flattens them into rows, and writes the rows to a sink
// (CSV, JSON, YAML, XLSX, or SQLite).
package report

import (
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// listSep joins multi-valued cells.
const listSep = "; "

// Header is the fixed column order of every tabular sink.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Row is one output line of the report.
type Row struct {
	PubmedID           string `json:"pubmed_id" yaml:"pubmed_id"`
	Title              string `json:"title" yaml:"title"`
	PublicationDate    string `json:"publication_date" yaml:"publication_date"`
	NonAcademicAuthors string `json:"non_academic_authors" yaml:"non_academic_authors"`
	Companies          string `json:"company_affiliations" yaml:"company_affiliations"`
	CorrespondingEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}

// Record returns the row's cells in Header order.
func (r Row) Record() []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		r.NonAcademicAuthors,
		r.Companies,
		r.CorrespondingEmail,
	}
}

// Filter keeps the papers that have at least one non-academic author,
// preserving their relative order.
func Filter(papers []types.Paper) []types.Paper {
	var out []types.Paper
	for _, p := range papers {
		if p.HasNonAcademicAuthor() {
			out = append(out, p)
		}
	}
	return out
}

// ToRow flattens one paper. Author names follow the paper's author order;
// the company list has set semantics.
func ToRow(p types.Paper) Row {
	var names []string
	for _, a := range p.NonAcademicAuthors() {
		names = append(names, a.Name)
	}
	return Row{
		PubmedID:           p.ID,
		Title:              p.Title,
		PublicationDate:    p.PublicationDate,
		NonAcademicAuthors: strings.Join(names, listSep),
		Companies:          strings.Join(p.CompanyAffiliations(), listSep),
		CorrespondingEmail: p.CorrespondingAuthorEmail(),
	}
}

// Rows filters papers and flattens the survivors.
func Rows(papers []types.Paper) []Row {
	kept := Filter(papers)
	rows := make([]Row, len(kept))
	for i, p := range kept {
		rows[i] = ToRow(p)
	}
	return rows
}
