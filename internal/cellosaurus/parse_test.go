package cellosaurus

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bioforensics/claspy/internal/claspy"
)

const flatFile = `----------------------
Cellosaurus release 99
----------------------
ID   HeLa
AC   CVCL_0030
SY   Hela; He La
OX   NCBI_TaxID=9606; ! Homo sapiens (Human)
ST   Source(s): ATCC; ECACC
ST   Amelogenin: X
ST   CSF1PO: 9,10
ST   TH01: 7 (ATCC)
ST   TH01: 7,9.3 (ECACC)
ST   D5S818: Not_detected
//
ID   NoSTRData
AC   CVCL_9999
OX   NCBI_TaxID=10090; ! Mus musculus (Mouse)
//
`

func Test_Parse(t *testing.T) {
	db, err := Parse(strings.NewReader(flatFile))
	if err != nil {
		t.Fatalf("Parse(): %v", err)
	}
	if len(db) != 2 {
		t.Fatalf("Parse() returned %d profiles, want 2 (one per HeLa source)", len(db))
	}

	atcc := db[0]
	wantMeta := claspy.Meta{
		Identifier: "HeLa",
		Accession:  "CVCL_0030",
		Synonyms:   "Hela; He La",
		Source:     "ATCC",
		TaxIDs:     []int{9606},
		Organisms:  []string{"Homo sapiens (Human)"},
	}
	if got := atcc.Meta(); !reflect.DeepEqual(got, wantMeta) {
		t.Errorf("Meta() = %+v, want %+v", got, wantMeta)
	}
	wantMarkers := []string{"Amelogenin", "CSF1PO", "TH01"}
	if got := atcc.Markers(); !reflect.DeepEqual(got, wantMarkers) {
		t.Errorf("Markers() = %v, want %v", got, wantMarkers)
	}
	call, _ := atcc.Call("TH01")
	if got := call.String(); got != "7" {
		t.Errorf("ATCC Call(TH01) = %q, want 7", got)
	}

	ecacc := db[1]
	if got := ecacc.Meta().Source; got != "ECACC" {
		t.Errorf("Meta().Source = %q, want ECACC", got)
	}
	call, _ = ecacc.Call("TH01")
	if got := call.String(); got != "7,9.3" {
		t.Errorf("ECACC Call(TH01) = %q, want 7,9.3", got)
	}
	call, _ = ecacc.Call("CSF1PO")
	if got := call.String(); got != "9,10" {
		t.Errorf("ECACC Call(CSF1PO) = %q, want 9,10", got)
	}
	if ecacc.HasMarker("D5S818") {
		t.Error("HasMarker(D5S818) = true for a Not_detected marker")
	}
}

func Test_Parse_badLines(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"malformed species line", "ID   X\nOX   taxid 9606\n//\n"},
		{"malformed source line", "ID   X\nST   Source(s) ATCC\n//\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.block)); err == nil {
				t.Error("Parse(): expected error, got none")
			}
		})
	}
}
