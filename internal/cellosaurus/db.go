package cellosaurus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bioforensics/claspy/internal/claspy"
)

// DB is the reference collection: one profile per cell line and source,
// fully materialized in memory. It is built once (by Load or the convert
// functions) and only read afterwards.
type DB []*claspy.Profile

// DefaultPath is where the converted database is installed.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cellosaurus.json"
	}
	return filepath.Join(home, ".claspy", "cellosaurus.json")
}

// Load reads a converted database from the JSON store at path, or from the
// default install path when path is empty.
func Load(path string) (DB, error) {
	if path == "" {
		path = DefaultPath()
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading database: %w (run 'claspy db' to install it)", err)
	}
	db, err := fromJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("loading database '%s': %w", path, err)
	}
	return db, nil
}

// Search ranks every same-species reference in the database against the
// query. The full ordered result list is returned; truncation and score
// floors are reporting concerns.
func (db DB) Search(query *claspy.Profile, opts claspy.RankOptions) ([]claspy.Comparison, error) {
	return claspy.Rank(query, db, opts)
}

// Save writes the database to a JSON store at path.
func (db DB) Save(path string) error {
	records := make([]record, len(db))
	for i, profile := range db {
		records[i] = newRecord(profile)
	}
	payload, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0644)
}

// ConvertFromPath parses a local copy of the Cellosaurus flat file into a
// database.
func ConvertFromPath(path string) (DB, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	return Parse(handle)
}

// record is the JSON layout of one stored profile, matching the shape
// {"meta": {...}, "alleles": {"CSF1PO": "11,12", ...}}.
type record struct {
	Meta    recordMeta        `json:"meta"`
	Alleles map[string]string `json:"alleles"`
}

type recordMeta struct {
	Identifier string    `json:"identifier"`
	Accession  string    `json:"accession,omitempty"`
	Synonyms   string    `json:"synonyms,omitempty"`
	Source     string    `json:"source"`
	TaxIDs     intOrList `json:"taxid"`
	Organisms  oneOrList `json:"organism"`
}

func newRecord(profile *claspy.Profile) record {
	meta := profile.Meta()
	alleles := make(map[string]string, profile.Len())
	for _, marker := range profile.Markers() {
		call, _ := profile.Call(marker)
		alleles[marker] = call.String()
	}
	return record{
		Meta: recordMeta{
			Identifier: meta.Identifier,
			Accession:  meta.Accession,
			Synonyms:   meta.Synonyms,
			Source:     meta.Source,
			TaxIDs:     intOrList(meta.TaxIDs),
			Organisms:  oneOrList(meta.Organisms),
		},
		Alleles: alleles,
	}
}

func fromJSON(payload []byte) (DB, error) {
	var records []record
	if err := json.Unmarshal(payload, &records); err != nil {
		// a store holding a single record is also accepted
		var single record
		if err2 := json.Unmarshal(payload, &single); err2 != nil {
			return nil, err
		}
		records = []record{single}
	}
	db := make(DB, 0, len(records))
	for _, rec := range records {
		profile, err := buildProfile(claspy.Meta{
			Identifier: rec.Meta.Identifier,
			Accession:  rec.Meta.Accession,
			Synonyms:   rec.Meta.Synonyms,
			Source:     rec.Meta.Source,
			TaxIDs:     []int(rec.Meta.TaxIDs),
			Organisms:  []string(rec.Meta.Organisms),
		}, rec.Alleles)
		if err != nil {
			return nil, err
		}
		db = append(db, profile)
	}
	return db, nil
}

// buildProfile standardizes marker names and parses allele strings into a
// reference profile. Markers outside the known vocabulary and calls with
// more than two alleles are data-quality findings in the published data;
// they are warned about and skipped rather than failing the whole import.
func buildProfile(meta claspy.Meta, alleles map[string]string) (*claspy.Profile, error) {
	markers := make([]string, 0, len(alleles))
	for marker := range alleles {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	observations := make([]claspy.Observation, 0, len(markers))
	for _, name := range markers {
		marker, _, ok := claspy.StandardizeName(name)
		if !ok {
			stderr.Printf("[CellosaurusDB] WARNING: cell line %s: unrecognized marker '%s' skipped", meta.Identifier, name)
			continue
		}
		call, err := claspy.ParseCall(alleles[name])
		if err != nil {
			stderr.Printf("[CellosaurusDB] WARNING: cell line %s, marker '%s': %v; skipped", meta.Identifier, marker, err)
			continue
		}
		observations = append(observations, claspy.Observation{Marker: marker, Call: call})
	}
	return claspy.NewReferenceProfile(meta, observations)
}

// intOrList unmarshals either a bare integer or a list of integers; single
// element lists marshal back to the bare form.
type intOrList []int

func (l *intOrList) UnmarshalJSON(data []byte) error {
	var one int
	if err := json.Unmarshal(data, &one); err == nil {
		*l = intOrList{one}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = intOrList(many)
	return nil
}

func (l intOrList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]int(l))
}

// oneOrList is the string twin of intOrList.
type oneOrList []string

func (l *oneOrList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = oneOrList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = oneOrList(many)
	return nil
}

func (l oneOrList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}
