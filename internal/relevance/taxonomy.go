package relevance

import (
	"regexp"
	"strings"
)

// Category groups keywords that share one relevance weight. Term order is
// part of the contract: trace entries follow taxonomy order.
type Category struct {
	Name   string
	Weight float64
	Terms  []string
}

const locationsCategory = "locations"

// taxonomy is the process-wide keyword table. Terms may overlap across
// categories ("soviet" vs "soviet union"); each term contributes
// independently. Locations sit last and are gated by the scorer: they never
// qualify an event on their own.
var taxonomy = []Category{
	{
		Name:   "core",
		Weight: 3,
		Terms: []string{
			"communist", "communism", "bolshevik", "marxist", "marxism",
			"soviet", "comintern", "proletariat",
		},
	},
	{
		Name:   "leaders",
		Weight: 2,
		Terms: []string{
			"marx", "lenin", "stalin", "mao", "trotsky", "khrushchev",
			"brezhnev", "engels", "castro", "tito", "ho chi minh",
		},
	},
	{
		Name:   "institutions",
		Weight: 2,
		Terms: []string{
			"politburo", "kgb", "red army", "gulag", "warsaw pact",
			"communist party", "comecon", "stasi",
		},
	},
	{
		Name:   "events",
		Weight: 2,
		Terms: []string{
			"revolution", "uprising", "five-year plan", "collectivization",
			"cultural revolution", "great leap forward",
		},
	},
	{
		Name:   "related",
		Weight: 1,
		Terms: []string{
			"socialist", "socialism", "collective", "comrade",
			"iron curtain", "eastern bloc", "cold war", "partisan",
		},
	},
	{
		Name:   locationsCategory,
		Weight: 1,
		Terms: []string{
			"russia", "ussr", "soviet union", "moscow", "petrograd",
			"leningrad", "china", "beijing", "cuba", "havana",
			"east germany", "yugoslavia", "north korea", "vietnam",
		},
	},
}

// wordPatterns holds one compiled boundary matcher per term. The pattern
// tolerates a trailing plural "s" so "bolsheviks" still counts as an exact
// hit for "bolshevik".
var wordPatterns = buildWordPatterns()

func buildWordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, cat := range taxonomy {
		for _, term := range cat.Terms {
			if _, ok := patterns[term]; ok {
				continue
			}
			patterns[term] = compileWordPattern(term)
		}
	}
	return patterns
}

func compileWordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `s?\b`)
}
