package claspy

import (
	"fmt"
	"log"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"
)

// stderr is for warning the user (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// IndeterminatePolicy decides what a ranking run does when the query's
// species cannot be inferred from its markers.
type IndeterminatePolicy string

const (
	// WarnAndIncludeAll logs a warning and proceeds in degraded mode,
	// scoring the query against references of every species
	WarnAndIncludeAll IndeterminatePolicy = "warn-and-include-all"

	// Abort fails the run instead of proceeding without a species filter
	Abort IndeterminatePolicy = "abort"
)

// RankOptions configures a full ranking run.
type RankOptions struct {
	ScoreOptions

	// score only references of the query's inferred species
	RestrictSpecies bool

	// fallback when species inference fails
	OnIndeterminate IndeterminatePolicy

	// worker goroutines for candidate scoring; <=1 scores serially
	Threads int
}

// DefaultRankOptions restricts candidates to the inferred species and warns,
// rather than aborting, when inference fails.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		ScoreOptions:    DefaultScoreOptions(),
		RestrictSpecies: true,
		OnIndeterminate: WarnAndIncludeAll,
	}
}

// Rank scores the query against every candidate reference profile and
// returns the full ordered result list, highest confidence first. Candidates
// are filtered to the query's inferred species first, each survivor is
// scored, and the results are ordered by score with ties broken by shared
// allele count and then by original candidate order. Ordering is
// deterministic: the same inputs always produce the same output, whether
// scoring runs serially or on a worker pool.
//
// A candidate that fails to score aborts the whole ranking; silently
// dropping it would mask systematic data problems. Truncating or filtering
// the returned list is the reporting layer's concern.
func Rank(query *Profile, candidates []*Profile, opts RankOptions) ([]Comparison, error) {
	if opts.RestrictSpecies {
		filtered, err := filterSpecies(query, candidates, opts.OnIndeterminate)
		if err != nil {
			return nil, err
		}
		candidates = filtered
	}
	results, err := scoreAll(query, candidates, opts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].SharedAlleles > results[j].SharedAlleles
	})
	return results, nil
}

// filterSpecies narrows candidates to the query's inferred species. An
// indeterminate species either aborts the run or, under WarnAndIncludeAll,
// leaves the candidate list untouched so the run proceeds degraded.
func filterSpecies(query *Profile, candidates []*Profile, policy IndeterminatePolicy) ([]*Profile, error) {
	taxid, err := InferSpecies(query)
	if err != nil {
		switch policy {
		case WarnAndIncludeAll:
			stderr.Printf("[claspy] WARNING: %v; scoring against references of all species", err)
			return candidates, nil
		case Abort:
			return nil, err
		default:
			return nil, fmt.Errorf("unsupported indeterminate-species policy '%s'", policy)
		}
	}
	matched := make([]*Profile, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.TaxidMatch(taxid) {
			matched = append(matched, candidate)
		}
	}
	return matched, nil
}

// scoreAll scores every candidate, serially or on a bounded worker pool.
// Results land in candidate order either way.
func scoreAll(query *Profile, candidates []*Profile, opts RankOptions) ([]Comparison, error) {
	results := make([]Comparison, len(candidates))
	if opts.Threads <= 1 {
		for i, candidate := range candidates {
			result, err := Score(query, candidate, opts.ScoreOptions)
			if err != nil {
				return nil, fmt.Errorf("scoring '%s' against '%s': %w", query.Sample(), candidate.Sample(), err)
			}
			results[i] = result
		}
		return results, nil
	}
	var group errgroup.Group
	group.SetLimit(opts.Threads)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			result, err := Score(query, candidate, opts.ScoreOptions)
			if err != nil {
				return fmt.Errorf("scoring '%s' against '%s': %w", query.Sample(), candidate.Sample(), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
