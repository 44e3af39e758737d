package claspy

import (
	"fmt"
)

// Meta is the descriptive metadata carried by a reference profile: where the
// profile came from and which cell line and species it belongs to. Query
// profiles carry only a sample name.
type Meta struct {
	// cell line identifier, ex: "HeLa"
	Identifier string

	// Cellosaurus accession, ex: "CVCL_0030"
	Accession string

	// cell line synonyms as published
	Synonyms string

	// repository that reported this profile, ex: "ATCC"
	Source string

	// NCBI taxids of the species of origin. Hybrid lines carry more than one
	TaxIDs []int

	// organism names matching TaxIDs
	Organisms []string
}

// Observation pairs a canonical marker name with its allele call.
type Observation struct {
	Marker string
	Call   Call
}

// Profile is the full set of marker observations for one sample. Marker
// names arriving here are assumed canonical (see markers.go). A profile is
// built once from validated input and not mutated afterwards.
type Profile struct {
	sample  string
	meta    Meta
	markers []string
	calls   map[string]Call
}

// NewProfile builds a profile from validated observations, preserving their
// order. A duplicate marker within one profile is a data error.
func NewProfile(sample string, observations []Observation) (*Profile, error) {
	p := &Profile{
		sample:  sample,
		markers: make([]string, 0, len(observations)),
		calls:   make(map[string]Call, len(observations)),
	}
	for _, obs := range observations {
		if _, ok := p.calls[obs.Marker]; ok {
			return nil, fmt.Errorf("sample '%s': duplicate marker '%s'", sample, obs.Marker)
		}
		p.markers = append(p.markers, obs.Marker)
		p.calls[obs.Marker] = obs.Call
	}
	return p, nil
}

// NewReferenceProfile builds a reference profile; the cell line identifier
// doubles as the sample name.
func NewReferenceProfile(meta Meta, observations []Observation) (*Profile, error) {
	p, err := NewProfile(meta.Identifier, observations)
	if err != nil {
		return nil, err
	}
	p.meta = meta
	return p, nil
}

// Sample is the name this profile was loaded under.
func (p *Profile) Sample() string {
	return p.sample
}

// Meta returns the reference metadata; zero-valued for query profiles.
func (p *Profile) Meta() Meta {
	return p.meta
}

// Markers lists the marker names present, in the order they were loaded.
func (p *Profile) Markers() []string {
	markers := make([]string, len(p.markers))
	copy(markers, p.markers)
	return markers
}

// Call looks up the allele call for a marker. The second return is false
// when the marker is absent from this profile, which is a different thing
// from a present marker whose values are missing.
func (p *Profile) Call(marker string) (Call, bool) {
	call, ok := p.calls[marker]
	return call, ok
}

// HasMarker reports whether the marker was observed in this profile.
func (p *Profile) HasMarker(marker string) bool {
	_, ok := p.calls[marker]
	return ok
}

// Len is the number of markers in the profile.
func (p *Profile) Len() int {
	return len(p.markers)
}

// TaxidMatch reports whether this profile belongs to the given species.
// Hybrid cell lines match any of their taxids.
func (p *Profile) TaxidMatch(taxid int) bool {
	for _, id := range p.meta.TaxIDs {
		if id == taxid {
			return true
		}
	}
	return false
}
