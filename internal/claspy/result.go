package claspy

// Comparison is the scored outcome of matching one query profile against one
// reference profile. Comparisons are created fresh per query run and handed
// whole to the reporting layer.
type Comparison struct {
	// query sample name
	Sample string

	// the reference profile that was scored
	Reference *Profile

	// similarity score in [0, 1]; exactly 0 when no comparable data exists
	Score float64

	// total allele values shared across markers present in both profiles;
	// the tie-break metric
	SharedAlleles int

	// markers present in both profiles
	SharedMarkers int

	// allele values observed in the query over the scored markers; the
	// comparability denominator of the query algorithm
	QueryAlleles int

	// allele values observed in the reference over the scored markers
	ReferenceAlleles int
}
