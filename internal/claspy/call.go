package claspy

import (
	"fmt"
	"strings"
)

// Call is the allele call for one marker in one sample: at most two observed
// values. Cell lines are expected to be diploid, so a call with three or
// more values violates the data model and is rejected at construction.
type Call struct {
	first  Allele
	second Allele
}

// NewCall builds a call from the given values, dropping missing values and
// collapsing a homozygous duplicate pair down to a single value.
func NewCall(values ...Allele) (Call, error) {
	observed := make([]Allele, 0, len(values))
	for _, value := range values {
		if value.Missing() {
			continue
		}
		duplicate := false
		for _, seen := range observed {
			if seen.Matches(value) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			observed = append(observed, value)
		}
	}
	if len(observed) > 2 {
		return Call{}, fmt.Errorf("marker call carries %d allele values, at most 2 expected", len(observed))
	}
	call := Call{}
	if len(observed) > 0 {
		call.first = observed[0]
	}
	if len(observed) > 1 {
		call.second = observed[1]
		if call.second.less(call.first) {
			call.first, call.second = call.second, call.first
		}
	}
	return call, nil
}

// ParseCall parses a comma separated allele string like "11,12.2" or "X,Y"
// into a call.
func ParseCall(alleles string) (Call, error) {
	tokens := strings.Split(strings.ReplaceAll(alleles, " ", ""), ",")
	values := make([]Allele, 0, len(tokens))
	for _, token := range tokens {
		value, err := ParseAllele(token)
		if err != nil {
			return Call{}, err
		}
		values = append(values, value)
	}
	return NewCall(values...)
}

// Observed is the number of values actually observed in this call: 0, 1, or
// 2. This is the call's contribution to a scoring denominator.
func (c Call) Observed() (count int) {
	if !c.first.Missing() {
		count++
	}
	if !c.second.Missing() {
		count++
	}
	return count
}

// Values returns the observed allele values in display order.
func (c Call) Values() []Allele {
	values := make([]Allele, 0, 2)
	if !c.first.Missing() {
		values = append(values, c.first)
	}
	if !c.second.Missing() {
		values = append(values, c.second)
	}
	return values
}

// SharedAlleles counts how many allele values two calls for the same marker
// have in common: 0, 1, or 2. The count is the maximum-cardinality pairing
// between the two value sets, with each value used at most once per side, so
// heterozygous calls match regardless of the order their alleles were
// recorded in. With at most two values per side the pairing reduces to the
// better of the straight and crossed alignments.
func (c Call) SharedAlleles(other Call) int {
	straight := pair(c.first, other.first) + pair(c.second, other.second)
	crossed := pair(c.first, other.second) + pair(c.second, other.first)
	if crossed > straight {
		return crossed
	}
	return straight
}

func pair(a, b Allele) int {
	if a.Matches(b) {
		return 1
	}
	return 0
}

// String renders the call as its sorted comma separated values, eg "12,13".
func (c Call) String() string {
	values := c.Values()
	tokens := make([]string, len(values))
	for i, value := range values {
		tokens[i] = value.String()
	}
	return strings.Join(tokens, ",")
}
