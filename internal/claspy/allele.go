// Package claspy compares STR genetic profiles against a reference
// collection of known cell line profiles and ranks the candidates by
// allele-sharing similarity.
package claspy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// alleleKind discriminates the three forms an observed allele value can take.
type alleleKind int

const (
	alleleMissing alleleKind = iota
	alleleNumeric
	alleleLabel
)

// repeatCount matches integer and fractional repeat counts like "12" and "9.3"
var repeatCount = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Allele is one observed value for an STR marker: a repeat count (possibly
// fractional, e.g. 9.3 for TH01), a sex-marker label ("X" or "Y"), or missing.
// Numeric values are normalized on parse, so "9.30" and "9.3" are the same
// allele. A missing value matches nothing, not even another missing value.
type Allele struct {
	kind  alleleKind
	count float64
	label string
}

// NumericAllele returns an allele with a repeat-count value.
func NumericAllele(count float64) Allele {
	return Allele{kind: alleleNumeric, count: count}
}

// LabelAllele returns an allele with a string-typed value, eg an X/Y
// Amelogenin call.
func LabelAllele(label string) Allele {
	return Allele{kind: alleleLabel, label: label}
}

// MissingAllele returns the absent value. Absence of a value is distinct
// from absence of the marker itself.
func MissingAllele() Allele {
	return Allele{}
}

// ParseAllele converts a single allele token to its normalized value. An
// empty token is a missing value. Tokens other than repeat counts and the
// X/Y sex-marker labels are rejected.
func ParseAllele(token string) (Allele, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return MissingAllele(), nil
	}
	if token == "X" || token == "Y" {
		return LabelAllele(token), nil
	}
	if !repeatCount.MatchString(token) {
		return Allele{}, fmt.Errorf("unexpected allele '%s'", token)
	}
	count, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Allele{}, fmt.Errorf("unexpected allele '%s'", token)
	}
	return NumericAllele(count), nil
}

// Missing returns whether this is the absent value.
func (a Allele) Missing() bool {
	return a.kind == alleleMissing
}

// Matches reports whether two observed values are the same allele. Numeric
// values compare numerically, labels compare by exact text, and a numeric
// value never matches a label. Missing values match nothing, so a
// missing-missing pairing contributes zero evidence rather than a match.
func (a Allele) Matches(b Allele) bool {
	if a.kind != b.kind || a.kind == alleleMissing {
		return false
	}
	if a.kind == alleleNumeric {
		return a.count == b.count
	}
	return a.label == b.label
}

// String renders the normalized value: "12", "9.3", "X". Missing values
// render as an empty string.
func (a Allele) String() string {
	switch a.kind {
	case alleleNumeric:
		return strconv.FormatFloat(a.count, 'f', -1, 64)
	case alleleLabel:
		return a.label
	}
	return ""
}

// less orders alleles for display: repeat counts numerically, then labels
// lexically.
func (a Allele) less(b Allele) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	if a.kind == alleleNumeric {
		return a.count < b.count
	}
	return a.label < b.label
}
