package relevance

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchTier classifies how a term appears in a text: not at all, as a bare
// substring (half weight), or as a whole word (full weight).
type MatchTier int

const (
	NoMatch MatchTier = iota
	PartialMatch
	ExactMatch
)

// matchTerm reports the tier for one term against an already-lowercased
// text. The exact tier wins; the substring tier is only consulted when the
// boundary test fails.
func matchTerm(text, term string) MatchTier {
	if wordPatterns[term].MatchString(text) {
		return ExactMatch
	}
	if strings.Contains(text, term) {
		return PartialMatch
	}
	return NoMatch
}

var (
	workerProbe    = regexp.MustCompile(`\bworkers?\b`)
	peasantProbe   = regexp.MustCompile(`\bpeasants?\b`)
	insurgentProbe = regexp.MustCompile(`\binsurgents?\b`)
	congressProbe  = regexp.MustCompile(`\bcongress\b`)
	warProbe       = regexp.MustCompile(`\bwar\b`)
)

// Score computes the relevance score for an event text along with an
// ordered trace of every contribution, for diagnostics.
//
// Locations are scored only after some other category has matched: a text
// that mentions Moscow and nothing else stays at zero. The closing rules
// reward telling co-occurrences (workers + peasants, congress + either) and
// penalize bare "war" mentions that matched nothing substantive.
func Score(text string) (float64, []string) {
	lowered := strings.ToLower(text)

	var score float64
	var trace []string
	hasNonLocationMatch := false

	for _, cat := range taxonomy {
		if cat.Name == locationsCategory {
			continue
		}
		contribution, entries := scoreCategory(lowered, cat)
		if contribution > 0 {
			hasNonLocationMatch = true
		}
		score += contribution
		trace = append(trace, entries...)
	}

	if hasNonLocationMatch {
		for _, cat := range taxonomy {
			if cat.Name != locationsCategory {
				continue
			}
			contribution, entries := scoreCategory(lowered, cat)
			score += contribution
			trace = append(trace, entries...)
		}
	}

	hasWorkers := workerProbe.MatchString(lowered)
	hasPeasants := peasantProbe.MatchString(lowered)
	hasInsurgents := insurgentProbe.MatchString(lowered)

	groupCount := 0
	for _, present := range []bool{hasWorkers, hasPeasants, hasInsurgents} {
		if present {
			groupCount++
		}
	}
	if groupCount >= 2 {
		score += 2
		trace = append(trace, "combined terms bonus +2")
	}
	if congressProbe.MatchString(lowered) && groupCount >= 1 {
		score += 1
		trace = append(trace, "congress bonus +1")
	}

	if warProbe.MatchString(lowered) && !hasNonLocationMatch {
		score -= 2
		if score < 0 {
			score = 0
		}
		trace = append(trace, "war without context penalty -2")
	}

	return score, trace
}

func scoreCategory(lowered string, cat Category) (float64, []string) {
	var contribution float64
	var entries []string
	for _, term := range cat.Terms {
		switch matchTerm(lowered, term) {
		case ExactMatch:
			contribution += cat.Weight
			entries = append(entries, fmt.Sprintf("%s:%s exact +%g", cat.Name, term, cat.Weight))
		case PartialMatch:
			contribution += cat.Weight / 2
			entries = append(entries, fmt.Sprintf("%s:%s partial +%g", cat.Name, term, cat.Weight/2))
		}
	}
	return contribution, entries
}
