// Package cellosaurus fetches the Cellosaurus cell line knowledgebase,
// extracts its STR profiles, and manages the local JSON store the search
// command loads its reference profiles from.
package cellosaurus

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/bioforensics/claspy/internal/claspy"
)

// stderr is for import progress and data-quality warnings
var stderr = log.New(os.Stderr, "", 0)

var (
	oxLine     = regexp.MustCompile(`^OX   NCBI_TaxID=(\d+); ! ([^\n]+)`)
	sourceLine = regexp.MustCompile(`^ST   Source\(s\): ([^\n]+)`)
	alleleLine = regexp.MustCompile(`^ST   ([^:]+): ([\dXY,\. ]+)(.+)?`)
)

// Parse reads the Cellosaurus flat file (cellosaurus.txt) and returns one
// reference profile per cell line and reporting repository. Records without
// STR data yield no profiles.
func Parse(r io.Reader) (DB, error) {
	var db DB
	records := 0
	err := parseBlocks(r, func(block []string) error {
		records++
		entry, err := parseEntry(block)
		if err != nil {
			return err
		}
		profiles, err := entry.profiles()
		if err != nil {
			return err
		}
		db = append(db, profiles...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	stderr.Printf("[CellosaurusDB] parsed %d database records", records)
	stderr.Printf("[CellosaurusDB] parsed %d distinct cell line STR profiles", len(db))
	return db, nil
}

// parseBlocks splits the flat file into per cell line record blocks. The
// header above the first "ID" line is skipped; records end at "//".
func parseBlocks(r io.Reader, visit func(block []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	inRecord := false
	var block []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inRecord {
			if strings.HasPrefix(line, "ID") {
				inRecord = true
				block = append(block, line)
			}
			continue
		}
		if line == "//" {
			if err := visit(block); err != nil {
				return err
			}
			block = nil
			continue
		}
		block = append(block, line)
	}
	return scanner.Err()
}

// entry is one parsed Cellosaurus record: cell line metadata plus the STR
// alleles reported by each source repository.
type entry struct {
	identifier string
	accession  string
	synonyms   string
	taxids     []int
	organisms  []string
	sources    []string
	alleles    map[string]map[string]string // source -> marker -> allele string
}

var metaAttributes = map[string]string{
	"ID": "identifier",
	"AC": "accession",
	"SY": "synonyms",
}

func parseEntry(block []string) (*entry, error) {
	e := &entry{alleles: make(map[string]map[string]string)}
	for _, line := range block {
		if err := e.parseMeta(line); err != nil {
			return nil, err
		}
		if err := e.parseSources(line); err != nil {
			return nil, err
		}
		if err := e.parseAlleles(line); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *entry) parseMeta(line string) error {
	key, value, found := strings.Cut(line, "   ")
	if found {
		switch metaAttributes[key] {
		case "identifier":
			e.identifier = strings.TrimSpace(value)
		case "accession":
			e.accession = strings.TrimSpace(value)
		case "synonyms":
			e.synonyms = strings.TrimSpace(value)
		}
	}
	if strings.HasPrefix(line, "OX") {
		match := oxLine.FindStringSubmatch(line)
		if match == nil {
			return fmt.Errorf("cannot parse species of origin: %s", line)
		}
		taxid, err := strconv.Atoi(match[1])
		if err != nil {
			return fmt.Errorf("cannot parse species of origin: %s", line)
		}
		e.taxids = append(e.taxids, taxid)
		e.organisms = append(e.organisms, match[2])
	}
	return nil
}

func (e *entry) parseSources(line string) error {
	if !strings.HasPrefix(line, "ST") || !strings.Contains(line, "Source") {
		return nil
	}
	match := sourceLine.FindStringSubmatch(line)
	if match == nil {
		return fmt.Errorf("could not parse sources: %s", line)
	}
	for _, source := range strings.Split(match[1], "; ") {
		if _, ok := e.alleles[source]; !ok {
			e.sources = append(e.sources, source)
			e.alleles[source] = make(map[string]string)
		}
	}
	return nil
}

func (e *entry) parseAlleles(line string) error {
	if !strings.HasPrefix(line, "ST") || strings.Contains(line, "Source") || strings.Contains(line, "Not_detected") {
		return nil
	}
	match := alleleLine.FindStringSubmatch(line)
	if match == nil {
		return fmt.Errorf("could not parse STR profile data: %s", line)
	}
	marker, alleles, sources := match[1], strings.TrimSpace(match[2]), match[3]
	if sources == "" {
		// unqualified allele line applies to every source
		for _, markerAlleles := range e.alleles {
			markerAlleles[marker] = alleles
		}
		return nil
	}
	sources = strings.NewReplacer("(", "", ")", "").Replace(sources)
	for _, source := range strings.Split(strings.TrimSpace(sources), "; ") {
		markerAlleles, ok := e.alleles[source]
		if !ok {
			stderr.Printf("[CellosaurusDB] WARNING: Source '%s' not defined for cell line %s", source, e.identifier)
			continue
		}
		markerAlleles[marker] = alleles
	}
	return nil
}

// profiles builds one reference profile per source that reported alleles for
// this cell line.
func (e *entry) profiles() ([]*claspy.Profile, error) {
	meta := claspy.Meta{
		Identifier: e.identifier,
		Accession:  e.accession,
		Synonyms:   e.synonyms,
		TaxIDs:     e.taxids,
		Organisms:  e.organisms,
	}
	var profiles []*claspy.Profile
	for _, source := range e.sources {
		if len(e.alleles[source]) == 0 {
			continue
		}
		sourceMeta := meta
		sourceMeta.Source = source
		profile, err := buildProfile(sourceMeta, e.alleles[source])
		if err != nil {
			return nil, fmt.Errorf("cell line %s (%s): %w", e.identifier, source, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
