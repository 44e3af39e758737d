package claspy

import (
	"fmt"
	"sort"
	"strings"
)

// Amelogenin is the sex determination marker. It is excluded from scoring
// by default (see ScoreOptions.IncludeAmel) but still counts toward species
// inference.
const Amelogenin = "Amelogenin"

// TaxidHuman, TaxidMouse and TaxidDog are the NCBI taxids of the species
// with a recognized STR marker panel.
const (
	TaxidHuman = 9606
	TaxidMouse = 10090
	TaxidDog   = 9615
)

// panels maps each species to the markers conventionally assayed for it.
// STR panels are species specific, so a query profile's species can be
// recovered from the markers it contains.
var panels = map[int][]string{
	TaxidHuman: {
		"Amelogenin", "CSF1PO", "D10S1248", "D12S391", "D13S317", "D16S539",
		"D17S1301", "D18S51", "D19S433", "D1S1656", "D20S482", "D21S11",
		"D22S1045", "D2S1338", "D2S441", "D3S1358", "D4S2408", "D5S818",
		"D6S1043", "D7S820", "D8S1179", "D9S1122", "DXS10074", "DXS101",
		"DXS10103", "DXS10135", "DXS7132", "DXS7423", "DXS8378", "DYF387S1",
		"DYS19", "DYS385a-b", "DYS389I", "DYS389II", "DYS390", "DYS391",
		"DYS392", "DYS437", "DYS438", "DYS439", "DYS448", "DYS460", "DYS481",
		"DYS505", "DYS522", "DYS533", "DYS549", "DYS570", "DYS576", "DYS612",
		"DYS635", "DYS643", "F13A01", "F13B", "FESFPS", "FGA", "HPRTB", "LPL",
		"Penta C", "Penta D", "Penta E", "SE33", "TH01", "TPOX", "Y-GATA-H4",
		"vWA",
	},
	TaxidMouse: {
		"Mouse STR 1-1", "Mouse STR 1-2", "Mouse STR 2-1", "Mouse STR 3-2",
		"Mouse STR 4-2", "Mouse STR 5-5", "Mouse STR 6-4", "Mouse STR 6-7",
		"Mouse STR 7-1", "Mouse STR 8-1", "Mouse STR 9-2", "Mouse STR 11-2",
		"Mouse STR 12-1", "Mouse STR 13-1", "Mouse STR 15-3", "Mouse STR 17-2",
		"Mouse STR 18-3", "Mouse STR 19-2", "Mouse STR X-1",
	},
	TaxidDog: {
		"Dog FHC2010", "Dog FHC2054", "Dog FHC2079", "Dog PEZ1", "Dog PEZ3",
		"Dog PEZ5", "Dog PEZ6", "Dog PEZ8", "Dog PEZ12", "Dog PEZ20",
	},
}

// speciesByTaxid names each recognized species for warnings and reports.
var speciesByTaxid = map[int]string{
	TaxidHuman: "human",
	TaxidMouse: "mouse",
	TaxidDog:   "dog",
}

// canonical maps the normalized form of every panel marker name back to its
// canonical spelling and species.
var canonical = map[string]struct {
	name  string
	taxid int
}{}

func init() {
	for taxid, names := range panels {
		for _, name := range names {
			canonical[normalizeName(name)] = struct {
				name  string
				taxid int
			}{name, taxid}
		}
	}
}

// normalizeName strips spaces and case so marker names can be matched
// against the vocabulary regardless of input formatting.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// StandardizeName maps a marker name to its canonical spelling and the
// species whose panel it belongs to. ok is false for names outside the
// recognized vocabulary.
func StandardizeName(name string) (marker string, taxid int, ok bool) {
	entry, ok := canonical[normalizeName(name)]
	if !ok {
		return "", 0, false
	}
	return entry.name, entry.taxid, true
}

// SpeciesName returns the organism name for a recognized taxid.
func SpeciesName(taxid int) string {
	if name, ok := speciesByTaxid[taxid]; ok {
		return name
	}
	return fmt.Sprintf("taxid %d", taxid)
}

// ErrIndeterminateSpecies is returned by InferSpecies when the query's
// markers do not clearly match one species panel. Callers decide whether to
// proceed against all species or abort (see RankOptions.OnIndeterminate).
type ErrIndeterminateSpecies struct {
	Sample string
	Reason string
}

func (e *ErrIndeterminateSpecies) Error() string {
	return fmt.Sprintf("cannot infer species for sample '%s': %s", e.Sample, e.Reason)
}

// InferSpecies derives the species of a query profile from the markers it
// contains: the species whose panel overlaps the most query markers wins.
// Inference is indeterminate when no panel marker appears in the query, when
// two panels tie, or when the best panel covers fewer than half the query's
// markers. The query's species is always inferred rather than declared by
// the user, so a mislabeled query cannot be scored against the wrong
// species' references.
func InferSpecies(p *Profile) (int, error) {
	markers := p.Markers()
	if len(markers) == 0 {
		return 0, &ErrIndeterminateSpecies{Sample: p.Sample(), Reason: "profile contains no markers"}
	}
	overlap := make(map[int]int)
	for _, marker := range markers {
		if _, taxid, ok := StandardizeName(marker); ok {
			overlap[taxid]++
		}
	}
	best, bestCount, tied := 0, 0, false
	for taxid, count := range overlap {
		switch {
		case count > bestCount:
			best, bestCount, tied = taxid, count, false
		case count == bestCount:
			tied = true
		}
	}
	if bestCount == 0 {
		return 0, &ErrIndeterminateSpecies{Sample: p.Sample(), Reason: "no marker matches a known species panel"}
	}
	if tied {
		names := make([]string, 0, len(overlap))
		for taxid, count := range overlap {
			if count == bestCount {
				names = append(names, SpeciesName(taxid))
			}
		}
		sort.Strings(names)
		reason := fmt.Sprintf("markers match multiple species panels equally well (%s)", strings.Join(names, ", "))
		return 0, &ErrIndeterminateSpecies{Sample: p.Sample(), Reason: reason}
	}
	if bestCount*2 < len(markers) {
		reason := fmt.Sprintf("only %d of %d markers belong to the %s panel", bestCount, len(markers), SpeciesName(best))
		return 0, &ErrIndeterminateSpecies{Sample: p.Sample(), Reason: reason}
	}
	return best, nil
}
