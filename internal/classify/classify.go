// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a free-text author affiliation names a
// company rather than an academic, clinical, or government institution, and
// extracts a plausible company name from it.
//
// The heuristic is keyword based and best-effort. Rules are applied in a
// fixed order and the first applicable one wins:
//
//  1. empty affiliation: academic
//  2. any academic marker: academic, even if a company token is present
//  3. a company identifier matched as a word, optionally after one other word
//  4. a biotech or pharma keyword anywhere
//  5. any comma: the text before the first comma is taken as the company
//  6. otherwise: academic
//
// All functions are pure and safe for concurrent use.
package classify

import (
	"regexp"
	"strings"
)

// Rule identifies which step of the heuristic produced a Result.
type Rule string

const (
	RuleEmpty      Rule = "empty"
	RuleAcademic   Rule = "academic-marker"
	RuleIdentifier Rule = "company-identifier"
	RuleKeyword    Rule = "biotech-keyword"
	RuleComma      Rule = "comma-fallback"
	RuleNoMatch    Rule = "no-match"
)

// Result is the classifier output for one affiliation.
type Result struct {
	// NonAcademic is true when the affiliation looks like a company.
	NonAcademic bool

	// Company is the extracted company name in original case. Empty unless
	// NonAcademic is true.
	Company string

	// Rule records the step that decided the result.
	Rule Rule
}

// AcademicMarkers are lower-case substrings that mark an affiliation as
// academic, clinical, or governmental.
var AcademicMarkers = []string{
	"university", "college", "institute", "school", "academia",
	"hospital", "clinic", "medical center", "center for", "laboratory of",
	"national", "federal", "ministry", "department of health",
}

// CompanyIdentifiers are legal-form and industry tokens, tried in order.
var CompanyIdentifiers = []string{
	"inc", "llc", "ltd", "corp", "corporation", "pharmaceuticals",
	"pharma", "biotech", "biosciences", "therapeutics", "biopharmaceuticals",
	"laboratories", "labs", "gmbh", "sa", "ag", "bv", "co.",
}

// BiotechKeywords are matched as plain substrings when no identifier matched.
var BiotechKeywords = []string{
	"bioscience", "pharmaceuticals", "pharma", "biotech", "therapeutics", "biopharma",
}

// segmentTrimSet is stripped from both ends of an extracted company name.
const segmentTrimSet = ".,;:()-"

var (
	identifierPatterns = compileIdentifiers(CompanyIdentifiers)
	whitespaceRun      = regexp.MustCompile(`\s+`)
)

// compileIdentifiers builds one case-insensitive pattern per identifier that
// matches "Acme Inc" (word, whitespace, token) or "Acmeinc" (token glued to
// the end of a word).
func compileIdentifiers(ids []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(ids))
	for i, id := range ids {
		q := regexp.QuoteMeta(id)
		out[i] = regexp.MustCompile(`(?i)\b\w+\s+` + q + `\b|\b\w+` + q + `\b`)
	}
	return out
}

// Classify applies the heuristic to one affiliation string.
func Classify(affiliation string) Result {
	if strings.TrimSpace(affiliation) == "" {
		return Result{Rule: RuleEmpty}
	}

	if IsAcademic(affiliation) {
		return Result{Rule: RuleAcademic}
	}

	for _, re := range identifierPatterns {
		if loc := re.FindStringIndex(affiliation); loc != nil {
			return Result{
				NonAcademic: true,
				Company:     Segment(affiliation, loc[0]),
				Rule:        RuleIdentifier,
			}
		}
	}

	lower := strings.ToLower(affiliation)
	for _, kw := range BiotechKeywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		if idx := indexFold(affiliation, kw); idx >= 0 {
			return Result{
				NonAcademic: true,
				Company:     Segment(affiliation, idx),
				Rule:        RuleKeyword,
			}
		}
	}

	if head, _, found := strings.Cut(affiliation, ","); found {
		return Result{
			NonAcademic: true,
			Company:     strings.TrimSpace(head),
			Rule:        RuleComma,
		}
	}

	return Result{Rule: RuleNoMatch}
}

// IsAcademic reports whether the affiliation contains any academic marker.
func IsAcademic(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, m := range AcademicMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Segment returns the comma-delimited segment of text that contains byte
// offset at, with whitespace runs collapsed and surrounding punctuation
// trimmed. Case is preserved.
func Segment(text string, at int) string {
	if at < 0 || at > len(text) {
		return ""
	}
	start := strings.LastIndex(text[:at], ",") + 1
	end := len(text)
	if i := strings.Index(text[at:], ","); i >= 0 {
		end = at + i
	}

	seg := strings.TrimSpace(text[start:end])
	seg = whitespaceRun.ReplaceAllString(seg, " ")
	return strings.Trim(seg, segmentTrimSet)
}

// indexFold returns the byte offset in s of the first case-insensitive
// occurrence of the lower-case needle, or -1. Offsets refer to s itself, so
// they stay valid when lower-casing would change byte lengths.
func indexFold(s, needle string) int {
	for i := range s {
		if strings.HasPrefix(strings.ToLower(s[i:]), needle) {
			return i
		}
	}
	return -1
}
