package claspy

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxAlleleColumns bounds the AlleleN columns accepted in a query table.
// Diploid profiles need two; anything past ten is a malformed header.
const maxAlleleColumns = 10

// ReadProfiles loads query profiles from a CSV or TSV table at path. The
// table needs Sample, Marker, and Allele1..AlleleN columns, one row per
// marker; rows are grouped into one profile per sample, in order of first
// appearance. Marker names are standardized against the known vocabulary
// and rejected loudly when unrecognized.
func ReadProfiles(path string) ([]*Profile, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	profiles, err := readProfiles(handle)
	if err != nil {
		return nil, fmt.Errorf("reading query '%s': %w", path, err)
	}
	return profiles, nil
}

func readProfiles(r io.Reader) ([]*Profile, error) {
	buffered := bufio.NewReader(r)
	separator, err := sniffSeparator(buffered)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(buffered)
	reader.Comma = separator
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty query table")
	}
	columns, alleleCount, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	// group rows by sample, keeping first-appearance order
	var samples []string
	rowsBySample := make(map[string][][]string)
	for _, row := range rows[1:] {
		sample := row[columns["Sample"]]
		if _, ok := rowsBySample[sample]; !ok {
			samples = append(samples, sample)
		}
		rowsBySample[sample] = append(rowsBySample[sample], row)
	}

	profiles := make([]*Profile, 0, len(samples))
	for _, sample := range samples {
		profile, err := buildProfile(sample, rowsBySample[sample], columns, alleleCount)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// sniffSeparator peeks at the header line to decide between TSV and CSV.
func sniffSeparator(r *bufio.Reader) (rune, error) {
	header, err := r.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, err
	}
	if i := strings.IndexByte(string(header), '\n'); i >= 0 {
		header = header[:i]
	}
	if strings.ContainsRune(string(header), '\t') {
		return '\t', nil
	}
	return ',', nil
}

// parseHeader indexes the header columns and counts the AlleleN columns.
func parseHeader(header []string) (map[string]int, int, error) {
	columns := make(map[string]int, len(header))
	alleleCount := 0
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[name] = i
		if !strings.HasPrefix(name, "Allele") {
			continue
		}
		number, err := strconv.Atoi(name[len("Allele"):])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid table header '%s'", name)
		}
		if number > alleleCount {
			alleleCount = number
		}
	}
	if alleleCount > maxAlleleColumns {
		return nil, 0, fmt.Errorf("found %d allele columns, well above expected limit", alleleCount)
	}
	for _, required := range []string{"Sample", "Marker", "Allele1"} {
		if _, ok := columns[required]; !ok {
			return nil, 0, fmt.Errorf("expected column '%s' missing", required)
		}
	}
	return columns, alleleCount, nil
}

// buildProfile turns one sample's rows into a Profile, standardizing marker
// names and parsing allele values. All unrecognized marker names for the
// sample are reported together.
func buildProfile(sample string, rows [][]string, columns map[string]int, alleleCount int) (*Profile, error) {
	var observations []Observation
	var invalid []string
	for _, row := range rows {
		name := row[columns["Marker"]]
		marker, _, ok := StandardizeName(name)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		values := make([]Allele, 0, alleleCount)
		for n := 1; n <= alleleCount; n++ {
			column, ok := columns[fmt.Sprintf("Allele%d", n)]
			if !ok || column >= len(row) {
				continue
			}
			value, err := ParseAllele(row[column])
			if err != nil {
				return nil, fmt.Errorf("sample '%s', marker '%s': %w", sample, marker, err)
			}
			values = append(values, value)
		}
		call, err := NewCall(values...)
		if err != nil {
			return nil, fmt.Errorf("sample '%s', marker '%s': %w", sample, marker, err)
		}
		observations = append(observations, Observation{Marker: marker, Call: call})
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid marker name(s): %s", strings.Join(invalid, ", "))
	}
	return NewProfile(sample, observations)
}
