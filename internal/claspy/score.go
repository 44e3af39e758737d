package claspy

import (
	"fmt"
)

// Algorithm selects the similarity formula, with Q = allele values observed
// in the query, R = allele values observed in the reference, and S = shared
// allele values over markers present in both profiles.
//
// The Tanabe algorithm is described in doi:10.11418/jtca1981.18.4_329; the
// query and reference algorithms in doi:10.1073/pnas.121616198.
type Algorithm string

const (
	// AlgorithmQuery scores S/Q
	AlgorithmQuery Algorithm = "query"

	// AlgorithmReference scores S/R
	AlgorithmReference Algorithm = "reference"

	// AlgorithmTanabe scores 2S/(Q+R)
	AlgorithmTanabe Algorithm = "tanabe"
)

// Mode selects which markers participate in scoring when one profile has
// allele data the other lacks.
type Mode string

const (
	// ModeIntersect scores only markers present in both profiles. A marker
	// present in just one profile is not comparable and contributes to
	// neither numerator nor denominator
	ModeIntersect Mode = "intersect"

	// ModeQuery scores every query marker, even those missing from the
	// reference
	ModeQuery Mode = "query"

	// ModeReference scores every reference marker, even those missing from
	// the query
	ModeReference Mode = "reference"
)

// ScoreOptions configures a single profile-pair comparison.
type ScoreOptions struct {
	Algorithm Algorithm
	Mode      Mode

	// include the Amelogenin sex marker in scoring; excluded by default
	IncludeAmel bool
}

// DefaultScoreOptions scores shared alleles against the query's observed
// alleles over markers present in both profiles.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{Algorithm: AlgorithmQuery, Mode: ModeIntersect}
}

// Score compares a query profile against one reference profile and returns
// the comparison triple consumed by ranking and reporting. Scoring is a pure
// function of the two profiles; candidates can be scored in any order or in
// parallel.
//
// A denominator of zero means the pair carries no comparable allele data.
// That yields a score of exactly 0, never an error or a NaN, and the
// candidate still appears in ranked output.
func Score(query, reference *Profile, opts ScoreOptions) (Comparison, error) {
	switch opts.Algorithm {
	case AlgorithmTanabe, AlgorithmQuery, AlgorithmReference:
	default:
		return Comparison{}, fmt.Errorf("unsupported scoring algorithm '%s'", opts.Algorithm)
	}
	markers, err := markersForScoring(query, reference, opts)
	if err != nil {
		return Comparison{}, err
	}
	result := Comparison{
		Sample:    query.Sample(),
		Reference: reference,
	}
	for _, marker := range markers {
		queryCall, inQuery := query.Call(marker)
		referenceCall, inReference := reference.Call(marker)
		if inQuery {
			result.QueryAlleles += queryCall.Observed()
		}
		if inReference {
			result.ReferenceAlleles += referenceCall.Observed()
		}
		if inQuery && inReference {
			result.SharedMarkers++
			result.SharedAlleles += queryCall.SharedAlleles(referenceCall)
		}
	}
	numerator, denominator := 0, 0
	switch opts.Algorithm {
	case AlgorithmTanabe:
		numerator = 2 * result.SharedAlleles
		denominator = result.QueryAlleles + result.ReferenceAlleles
	case AlgorithmQuery:
		numerator = result.SharedAlleles
		denominator = result.QueryAlleles
	case AlgorithmReference:
		numerator = result.SharedAlleles
		denominator = result.ReferenceAlleles
	}
	if denominator > 0 {
		result.Score = float64(numerator) / float64(denominator)
	}
	return result, nil
}

// markersForScoring resolves the marker set the mode calls for, dropping
// Amelogenin unless requested.
func markersForScoring(query, reference *Profile, opts ScoreOptions) ([]string, error) {
	var markers []string
	switch opts.Mode {
	case ModeIntersect:
		for _, marker := range query.Markers() {
			if reference.HasMarker(marker) {
				markers = append(markers, marker)
			}
		}
	case ModeQuery:
		markers = query.Markers()
	case ModeReference:
		markers = reference.Markers()
	default:
		return nil, fmt.Errorf("unsupported scoring mode '%s'", opts.Mode)
	}
	if opts.IncludeAmel {
		return markers, nil
	}
	kept := markers[:0]
	for _, marker := range markers {
		if marker != Amelogenin {
			kept = append(kept, marker)
		}
	}
	return kept, nil
}
