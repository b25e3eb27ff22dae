// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// ParseArticleSet decodes an EFetch PubmedArticleSet document. Articles are
// mapped as-is; deciding which records are usable is left to extraction.
func ParseArticleSet(r io.Reader) ([]types.RawPaper, error) {
	var set articleSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}

	papers := make([]types.RawPaper, 0, len(set.Articles))
	for _, a := range set.Articles {
		papers = append(papers, a.raw())
	}
	return papers, nil
}

// EFetch XML structures. Only the elements the report needs are mapped.
type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID    string     `xml:"MedlineCitation>PMID"`
	Title   markupText `xml:"MedlineCitation>Article>ArticleTitle"`
	PubDate pubDate    `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`
	Authors []author   `xml:"MedlineCitation>Article>AuthorList>Author"`
}

type pubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type author struct {
	LastName     string   `xml:"LastName"`
	ForeName     string   `xml:"ForeName"`
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
	ValidYN      string   `xml:"ValidYN,attr"`
	EqualContrib string   `xml:"EqualContrib,attr"`
}

func (a pubmedArticle) raw() types.RawPaper {
	p := types.RawPaper{
		ID:    strings.TrimSpace(a.PMID),
		Title: a.Title.String(),
		Year:  strings.TrimSpace(a.PubDate.Year),
		Month: strings.TrimSpace(a.PubDate.Month),
		Day:   strings.TrimSpace(a.PubDate.Day),
	}
	for _, au := range a.Authors {
		ra := types.RawAuthor{
			LastName: strings.TrimSpace(au.LastName),
			ForeName: strings.TrimSpace(au.ForeName),
			// PubMed has no explicit corresponding-author element; a valid
			// author flagged as an equal contributor is taken as the marker.
			Corresponding: au.ValidYN == "Y" && au.EqualContrib == "Y",
		}
		if len(au.Affiliations) > 0 {
			ra.Affiliation = strings.TrimSpace(au.Affiliations[0])
		}
		p.Authors = append(p.Authors, ra)
	}
	return p
}

// markupText collects all character data of an element, including text
// nested in inline markup such as <i> or <sup>.
type markupText struct {
	text string
}

func (m *markupText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	m.text = strings.Join(strings.Fields(b.String()), " ")
	return nil
}

func (m markupText) String() string { return m.text }
