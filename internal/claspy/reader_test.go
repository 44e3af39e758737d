package claspy

import (
	"reflect"
	"strings"
	"testing"
)

func Test_readProfiles(t *testing.T) {
	table := `Sample,Marker,Allele1,Allele2
sample1,CSF1PO,13,14
sample1,D5S818,13,
sample1,th01,8,
sample2,TH01,6,9.3
sample2,TPOX,8,11
`
	profiles, err := readProfiles(strings.NewReader(table))
	if err != nil {
		t.Fatalf("readProfiles(): %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("readProfiles() returned %d profiles, want 2", len(profiles))
	}

	first := profiles[0]
	if got := first.Sample(); got != "sample1" {
		t.Errorf("Sample() = %q, want sample1", got)
	}
	wantMarkers := []string{"CSF1PO", "D5S818", "TH01"}
	if got := first.Markers(); !reflect.DeepEqual(got, wantMarkers) {
		t.Errorf("Markers() = %v, want %v", got, wantMarkers)
	}
	call, _ := first.Call("TH01")
	if got := call.String(); got != "8" {
		t.Errorf("Call(TH01) = %q, want 8", got)
	}

	second := profiles[1]
	if got := second.Sample(); got != "sample2" {
		t.Errorf("Sample() = %q, want sample2", got)
	}
	call, _ = second.Call("TH01")
	if got := call.String(); got != "6,9.3" {
		t.Errorf("Call(TH01) = %q, want 6,9.3", got)
	}
}

func Test_readProfiles_tabSeparated(t *testing.T) {
	table := "Sample\tMarker\tAllele1\tAllele2\nsample1\tCSF1PO\t13\t14\n"
	profiles, err := readProfiles(strings.NewReader(table))
	if err != nil {
		t.Fatalf("readProfiles(): %v", err)
	}
	if len(profiles) != 1 || profiles[0].Len() != 1 {
		t.Fatalf("readProfiles() = %d profiles, want 1 with 1 marker", len(profiles))
	}
	call, _ := profiles[0].Call("CSF1PO")
	if got := call.String(); got != "13,14" {
		t.Errorf("Call(CSF1PO) = %q, want 13,14", got)
	}
}

func Test_readProfiles_errors(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		message string
	}{
		{
			"missing required column",
			"Sample,Locus,Allele1\nsample1,TH01,8\n",
			"expected column 'Marker' missing",
		},
		{
			"too many allele columns",
			"Sample,Marker,Allele1,Allele2,Allele3,Allele4,Allele5,Allele6,Allele7,Allele8,Allele9,Allele10,Allele11\n",
			"found 11 allele columns",
		},
		{
			"invalid allele header",
			"Sample,Marker,Allele1,AlleleX\nsample1,TH01,8,9\n",
			"invalid table header 'AlleleX'",
		},
		{
			"unrecognized marker names",
			"Sample,Marker,Allele1\nsample1,BOGUS1,8\nsample1,BOGUS2,9\n",
			"invalid marker name(s): BOGUS1, BOGUS2",
		},
		{
			"duplicate marker",
			"Sample,Marker,Allele1\nsample1,TH01,8\nsample1,TH01,9\n",
			"duplicate marker 'TH01'",
		},
		{
			"unparseable allele",
			"Sample,Marker,Allele1\nsample1,TH01,eight\n",
			"unexpected allele 'eight'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readProfiles(strings.NewReader(tt.table))
			if err == nil {
				t.Fatal("readProfiles(): expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("readProfiles() error = %q, want it to contain %q", err, tt.message)
			}
		})
	}
}
