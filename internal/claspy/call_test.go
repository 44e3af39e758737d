package claspy

import (
	"testing"
)

// mustCall parses a comma separated allele string or fails the test.
func mustCall(t *testing.T, alleles string) Call {
	t.Helper()
	call, err := ParseCall(alleles)
	if err != nil {
		t.Fatalf("ParseCall(%q): %v", alleles, err)
	}
	return call
}

func Test_Call_SharedAlleles(t *testing.T) {
	tests := []struct {
		name  string
		query string
		refr  string
		want  int
	}{
		{"identical heterozygous", "12,13", "12,13", 2},
		{"permuted heterozygous", "12,13", "13,12", 2},
		{"one shared value", "12,13", "13,14", 1},
		{"no shared values", "12,13", "14,15", 0},
		{"fractional repeat normalized", "9,9.3", "9.30,9", 2},
		{"homozygous against heterozygous", "12,12", "12,13", 1},
		{"single against pair", "13", "12,13", 1},
		{"sex markers", "X,Y", "Y,X", 2},
		{"sex marker partial", "X,Y", "X", 1},
		{"numeric never matches label", "12", "X", 0},
		{"empty call shares nothing", "", "12,13", 0},
		{"both empty shares nothing", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := mustCall(t, tt.query)
			refr := mustCall(t, tt.refr)
			if got := query.SharedAlleles(refr); got != tt.want {
				t.Errorf("SharedAlleles() = %d, want %d", got, tt.want)
			}
			if got := refr.SharedAlleles(query); got != tt.want {
				t.Errorf("SharedAlleles() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_NewCall_invariants(t *testing.T) {
	// a third observed value violates the diploid data model
	_, err := NewCall(NumericAllele(11), NumericAllele(12), NumericAllele(13))
	if err == nil {
		t.Fatal("NewCall() with three values: expected error, got none")
	}

	// missing values and duplicates do not count toward the limit
	call, err := NewCall(NumericAllele(12), MissingAllele(), NumericAllele(12), NumericAllele(13))
	if err != nil {
		t.Fatalf("NewCall(): %v", err)
	}
	if got := call.Observed(); got != 2 {
		t.Errorf("Observed() = %d, want 2", got)
	}
}

func Test_Call_Observed(t *testing.T) {
	tests := []struct {
		alleles string
		want    int
	}{
		{"12,13", 2},
		{"12,12", 1},
		{"12", 1},
		{"", 0},
	}
	for _, tt := range tests {
		if got := mustCall(t, tt.alleles).Observed(); got != tt.want {
			t.Errorf("ParseCall(%q).Observed() = %d, want %d", tt.alleles, got, tt.want)
		}
	}
}

func Test_Call_String(t *testing.T) {
	tests := []struct {
		alleles string
		want    string
	}{
		{"13,12", "12,13"},
		{"9.30,9", "9,9.3"},
		{"Y,X", "X,Y"},
		{"12, 13", "12,13"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := mustCall(t, tt.alleles).String(); got != tt.want {
			t.Errorf("ParseCall(%q).String() = %q, want %q", tt.alleles, got, tt.want)
		}
	}
}
