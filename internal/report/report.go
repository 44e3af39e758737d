// Package report renders ranked search results: a terminal summary with the
// top candidates, and a full CSV report with per-marker allele detail.
// Score floors and hit caps are applied here, downstream of ranking.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/bioforensics/claspy/internal/claspy"
)

// Options filters which ranked candidates get reported.
type Options struct {
	// drop cell lines whose best score is below this floor
	MinScore float64

	// report at most this many cell lines; <=0 disables the cap
	MaxHits int
}

// CellLine collects the scored profiles of a single cell line. Databases
// often carry several profiles per line, one per reporting repository; they
// are reported together under the line's identifier.
type CellLine struct {
	identifier string
	hits       []claspy.Comparison
}

// Identifier is the cell line name the hits share.
func (l *CellLine) Identifier() string {
	return l.identifier
}

// Best is the highest ranked hit for this cell line.
func (l *CellLine) Best() claspy.Comparison {
	return l.hits[0]
}

// Worst is the lowest ranked hit for this cell line.
func (l *CellLine) Worst() claspy.Comparison {
	return l.hits[len(l.hits)-1]
}

// Report is the reportable view of one query's ranked results.
type Report struct {
	query *claspy.Profile
	lines []*CellLine
}

// New groups ranked comparisons by cell line and applies the reporting
// filters. The input order is the Ranker's, so grouping by first appearance
// keeps cell lines ordered by their best hit.
func New(query *claspy.Profile, results []claspy.Comparison, opts Options) *Report {
	byLine := make(map[string]*CellLine)
	var ordered []*CellLine
	for _, result := range results {
		identifier := result.Reference.Meta().Identifier
		line, ok := byLine[identifier]
		if !ok {
			line = &CellLine{identifier: identifier}
			byLine[identifier] = line
			ordered = append(ordered, line)
		}
		line.hits = append(line.hits, result)
	}
	var kept []*CellLine
	for _, line := range ordered {
		if opts.MaxHits > 0 && len(kept) >= opts.MaxHits {
			break
		}
		if line.Best().Score < opts.MinScore {
			break
		}
		kept = append(kept, line)
	}
	return &Report{query: query, lines: kept}
}

// Lines returns the reported cell lines, best first.
func (r *Report) Lines() []*CellLine {
	return r.lines
}

// WriteSummary renders this report's top candidates as an aligned table.
func (r *Report) WriteSummary(w io.Writer) error {
	return WriteSummary(w, r)
}

// WriteSummary renders one summary table covering several reports (one per
// query sample): one row per cell line with its best score, shared allele
// count, and source.
func WriteSummary(w io.Writer, reports ...*Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Sample\tCellLine\tScore\tSharedAlleles\tSource")
	for _, r := range reports {
		for _, line := range r.lines {
			best := line.Best()
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%d\t%s\n",
				best.Sample, line.Identifier(), best.Score, best.SharedAlleles, best.Reference.Meta().Source)
		}
	}
	return tw.Flush()
}

// WriteFull writes this report's full CSV, with per-marker allele columns
// for the query and the best and worst profile of each reported cell line.
func (r *Report) WriteFull(w io.Writer) error {
	return WriteCSV(w, r)
}

// WriteCSV writes one CSV document covering several reports, with allele
// columns spanning every marker any of them observed.
func WriteCSV(w io.Writer, reports ...*Report) error {
	markers := reportedMarkers(reports)
	out := csv.NewWriter(w)
	header := []string{"Sample", "CellLine", "Status", "Score", "SharedAlleles", "Source"}
	header = append(header, markers...)
	if err := out.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		for _, row := range r.rows(markers) {
			if err := out.Write(row); err != nil {
				return err
			}
		}
	}
	out.Flush()
	return out.Error()
}

// reportedMarkers is every marker observed in a query or a reported
// reference profile, sorted for a stable column order.
func reportedMarkers(reports []*Report) []string {
	seen := make(map[string]bool)
	for _, r := range reports {
		for _, marker := range r.query.Markers() {
			seen[marker] = true
		}
		for _, line := range r.lines {
			for _, hit := range line.hits {
				for _, marker := range hit.Reference.Markers() {
					seen[marker] = true
				}
			}
		}
	}
	markers := make([]string, 0, len(seen))
	for marker := range seen {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	return markers
}

func (r *Report) rows(markers []string) [][]string {
	rows := [][]string{queryRow(r.query, markers)}
	for _, line := range r.lines {
		status := "best"
		if len(line.hits) == 1 {
			status = "only"
		}
		rows = append(rows, hitRow(line.Best(), status, markers))
		if len(line.hits) > 1 {
			rows = append(rows, hitRow(line.Worst(), "worst", markers))
		}
	}
	return rows
}

func queryRow(query *claspy.Profile, markers []string) []string {
	row := []string{query.Sample(), query.Sample(), "query", "", "", ""}
	return append(row, markerAlleles(query, markers)...)
}

func hitRow(hit claspy.Comparison, status string, markers []string) []string {
	row := []string{
		hit.Sample,
		hit.Reference.Meta().Identifier,
		status,
		strconv.FormatFloat(hit.Score, 'f', -1, 64),
		strconv.Itoa(hit.SharedAlleles),
		hit.Reference.Meta().Source,
	}
	return append(row, markerAlleles(hit.Reference, markers)...)
}

// markerAlleles renders a profile's call at each reported marker, empty when
// the marker is absent from the profile.
func markerAlleles(profile *claspy.Profile, markers []string) []string {
	cells := make([]string, len(markers))
	for i, marker := range markers {
		if call, ok := profile.Call(marker); ok {
			cells[i] = call.String()
		}
	}
	return cells
}
