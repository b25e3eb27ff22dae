// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline:
// raw records as delivered by a record source, and the classified Paper and
// Author values produced by extraction.
package types

// Defaults used when a raw record lacks a title or publication date.
const (
	UnknownTitle = "Unknown Title"
	UnknownDate  = "Unknown Date"
)

// Author is one classified author of a paper.
type Author struct {
	// Name is the display name, normally "Last, First".
	Name string `json:"name" yaml:"name"`

	// Affiliation is the free-text affiliation as supplied by the source.
	// Empty means the source had none.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the first email address found inside Affiliation.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// IsCorresponding marks the corresponding author.
	IsCorresponding bool `json:"is_corresponding" yaml:"is_corresponding"`

	// IsNonAcademic is true when the affiliation looks like a company.
	IsNonAcademic bool `json:"is_non_academic" yaml:"is_non_academic"`

	// Company is the extracted company name. Only set when IsNonAcademic.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
}

// Paper holds the metadata and classified authors of one PubMed record.
type Paper struct {
	// ID is the PubMed identifier. It is opaque text and never parsed as a number.
	ID string `json:"id" yaml:"id"`

	// Title is the article title, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// PublicationDate joins the available Year, Month and Day with "-",
	// or is UnknownDate. It is not validated.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

// NonAcademicAuthors returns the authors classified as non-academic, in order.
func (p Paper) NonAcademicAuthors() []Author {
	var out []Author
	for _, a := range p.Authors {
		if a.IsNonAcademic {
			out = append(out, a)
		}
	}
	return out
}

// HasNonAcademicAuthor reports whether at least one author is non-academic.
func (p Paper) HasNonAcademicAuthor() bool {
	for _, a := range p.Authors {
		if a.IsNonAcademic {
			return true
		}
	}
	return false
}

// CompanyAffiliations returns the unique, non-empty company names of the
// non-academic authors. Callers must treat the result as a set; it is
// returned in first-seen order only so output is stable.
func (p Paper) CompanyAffiliations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range p.NonAcademicAuthors() {
		if a.Company == "" || seen[a.Company] {
			continue
		}
		seen[a.Company] = true
		out = append(out, a.Company)
	}
	return out
}

// CorrespondingAuthorEmail returns the email of the first corresponding
// author that has one, or "".
func (p Paper) CorrespondingAuthorEmail() string {
	for _, a := range p.Authors {
		if a.IsCorresponding && a.Email != "" {
			return a.Email
		}
	}
	return ""
}

// RawAuthor is an author entry as delivered by a record source, before
// classification.
type RawAuthor struct {
	LastName    string `json:"last_name" yaml:"last_name"`
	ForeName    string `json:"fore_name" yaml:"fore_name"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Corresponding is the upstream corresponding-author marker. Sources
	// that carry no such marker leave it false.
	Corresponding bool `json:"corresponding,omitempty" yaml:"corresponding,omitempty"`
}

// RawPaper is one paper record as delivered by a record source. Any field
// may be empty; extraction fills defaults or drops the record.
type RawPaper struct {
	ID      string      `json:"id" yaml:"id"`
	Title   string      `json:"title" yaml:"title"`
	Year    string      `json:"year,omitempty" yaml:"year,omitempty"`
	Month   string      `json:"month,omitempty" yaml:"month,omitempty"`
	Day     string      `json:"day,omitempty" yaml:"day,omitempty"`
	Authors []RawAuthor `json:"authors" yaml:"authors"`
}
