package claspy

import (
	"testing"
)

func Test_Score_sharedMarkers(t *testing.T) {
	query := mustProfile(t, "sample1",
		[2]string{"CSF1PO", "12,13"},
		[2]string{"TH01", "9,9.3"},
	)
	reference := mustReference(t, "HeLa", "ATCC", []int{TaxidHuman},
		[2]string{"CSF1PO", "12,13"},
		[2]string{"TH01", "9,9.3"},
		[2]string{"vWA", "17,18"},
	)

	result, err := Score(query, reference, DefaultScoreOptions())
	if err != nil {
		t.Fatalf("Score(): %v", err)
	}
	if result.SharedMarkers != 2 {
		t.Errorf("SharedMarkers = %d, want 2", result.SharedMarkers)
	}
	if result.SharedAlleles != 4 {
		t.Errorf("SharedAlleles = %d, want 4", result.SharedAlleles)
	}
	if result.QueryAlleles != 4 {
		t.Errorf("QueryAlleles = %d, want 4", result.QueryAlleles)
	}
	if result.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", result.Score)
	}
}

func Test_Score_algorithms(t *testing.T) {
	// query matches 3 of its 4 alleles; the reference carries 6 alleles over
	// its own markers, 4 over the shared ones
	query := mustProfile(t, "sample1",
		[2]string{"CSF1PO", "12,13"},
		[2]string{"TH01", "9,9.3"},
	)
	reference := mustReference(t, "HeLa", "ATCC", []int{TaxidHuman},
		[2]string{"CSF1PO", "12,13"},
		[2]string{"TH01", "9,8"},
		[2]string{"vWA", "17,18"},
	)

	tests := []struct {
		name string
		opts ScoreOptions
		want float64
	}{
		{"query intersect", ScoreOptions{Algorithm: AlgorithmQuery, Mode: ModeIntersect}, 3.0 / 4.0},
		{"reference intersect", ScoreOptions{Algorithm: AlgorithmReference, Mode: ModeIntersect}, 3.0 / 4.0},
		{"tanabe intersect", ScoreOptions{Algorithm: AlgorithmTanabe, Mode: ModeIntersect}, 6.0 / 8.0},
		{"query mode counts only query markers", ScoreOptions{Algorithm: AlgorithmQuery, Mode: ModeQuery}, 3.0 / 4.0},
		{"reference mode widens the denominator", ScoreOptions{Algorithm: AlgorithmReference, Mode: ModeReference}, 3.0 / 6.0},
		{"tanabe reference mode", ScoreOptions{Algorithm: AlgorithmTanabe, Mode: ModeReference}, 6.0 / 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Score(query, reference, tt.opts)
			if err != nil {
				t.Fatalf("Score(): %v", err)
			}
			if result.Score != tt.want {
				t.Errorf("Score = %v, want %v", result.Score, tt.want)
			}
		})
	}
}

func Test_Score_zeroComparableData(t *testing.T) {
	// the query's only marker carries no observed values, so there is no
	// comparable data; the score is exactly 0, not an error and not a NaN
	empty, err := NewCall()
	if err != nil {
		t.Fatalf("NewCall(): %v", err)
	}
	query, err := NewProfile("sample1", []Observation{{Marker: "TH01", Call: empty}})
	if err != nil {
		t.Fatalf("NewProfile(): %v", err)
	}
	reference := mustReference(t, "HeLa", "ATCC", []int{TaxidHuman},
		[2]string{"TH01", "7"},
		[2]string{"vWA", "17,18"},
	)

	result, err := Score(query, reference, DefaultScoreOptions())
	if err != nil {
		t.Fatalf("Score(): %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %v, want exactly 0", result.Score)
	}
	if result.QueryAlleles != 0 {
		t.Errorf("QueryAlleles = %d, want 0", result.QueryAlleles)
	}

	// no shared markers at all zeroes every algorithm's denominator
	disjoint := mustReference(t, "K-562", "DSMZ", []int{TaxidHuman},
		[2]string{"vWA", "17,18"},
	)
	for _, algorithm := range []Algorithm{AlgorithmTanabe, AlgorithmQuery, AlgorithmReference} {
		result, err := Score(query, disjoint, ScoreOptions{Algorithm: algorithm, Mode: ModeIntersect})
		if err != nil {
			t.Fatalf("Score(%s): %v", algorithm, err)
		}
		if result.Score != 0 {
			t.Errorf("Score(%s) = %v, want exactly 0", algorithm, result.Score)
		}
	}
}

func Test_Score_amelogenin(t *testing.T) {
	query := mustProfile(t, "sample1",
		[2]string{"Amelogenin", "X,Y"},
		[2]string{"TH01", "9,9.3"},
	)
	reference := mustReference(t, "HeLa", "ATCC", []int{TaxidHuman},
		[2]string{"Amelogenin", "X"},
		[2]string{"TH01", "9,9.3"},
	)

	// excluded by default: only TH01 is scored
	result, err := Score(query, reference, DefaultScoreOptions())
	if err != nil {
		t.Fatalf("Score(): %v", err)
	}
	if result.SharedMarkers != 1 || result.Score != 1.0 {
		t.Errorf("default Score = %v over %d markers, want 1.0 over 1", result.Score, result.SharedMarkers)
	}

	// included on request: the half-matching X,Y call drags the score down
	opts := DefaultScoreOptions()
	opts.IncludeAmel = true
	result, err = Score(query, reference, opts)
	if err != nil {
		t.Fatalf("Score(): %v", err)
	}
	if result.SharedMarkers != 2 {
		t.Errorf("SharedMarkers = %d, want 2", result.SharedMarkers)
	}
	if result.Score != 3.0/4.0 {
		t.Errorf("Score = %v, want 0.75", result.Score)
	}
}

func Test_Score_badOptions(t *testing.T) {
	query := mustProfile(t, "sample1", [2]string{"TH01", "8"})
	reference := mustReference(t, "HeLa", "ATCC", []int{TaxidHuman}, [2]string{"TH01", "8"})

	if _, err := Score(query, reference, ScoreOptions{Algorithm: "jaccard", Mode: ModeIntersect}); err == nil {
		t.Error("Score() with unknown algorithm: expected error, got none")
	}
	if _, err := Score(query, reference, ScoreOptions{Algorithm: AlgorithmTanabe, Mode: "union"}); err == nil {
		t.Error("Score() with unknown mode: expected error, got none")
	}
}
