// Package promptgen turns a filtered historical event into a text-to-image
// prompt. Classification here is deliberately looser than the relevance
// scorer: plain substring checks are fine because this stage only shapes
// style, it never decides whether an event is shown.
package promptgen

import "strings"

// HistoricalContext carries the stylistic attributes derived from one event.
// Stateless; recomputed per call, never cached.
type HistoricalContext struct {
	Era              string
	Style            string
	Atmosphere       string
	Location         string
	Subjects         []string
	TechnicalDetails []string
}

type eraBucket struct {
	before int // exclusive upper bound; 0 means unbounded
	era    string
	style  string
}

// eraBuckets are contiguous half-open year ranges keyed to the dominant
// imaging technology of the period. The final bucket is unbounded.
var eraBuckets = []eraBucket{
	{1839, "pre-photography era", "oil painting, historical artwork, detailed illustration"},
	{1880, "early photography", "daguerreotype, sepia toned, vintage photograph"},
	{1900, "Victorian era photography", "black and white photograph, cabinet card style, formal composition"},
	{1930, "early 20th century", "vintage photograph, silver gelatin print style"},
	{1950, "mid-20th century", "documentary photography, press photo style"},
	{1970, "post-war era", "journalistic photography, film grain, high contrast"},
	{1990, "late 20th century", "photojournalism, 35mm film look"},
	{0, "modern era", "digital photography, high resolution"},
}

// locationKeywords is scanned in order; the first hit wins, so list order is
// part of the contract.
var locationKeywords = []string{
	"palace", "battlefield", "city", "street", "parliament", "square", "factory",
	"rural", "urban", "industrial", "government building", "protest site",
}

const defaultLocation = "historical setting"

type subjectTrigger struct {
	cues     []string
	subjects []string
}

// subjectTriggers are independent: every trigger whose cue appears
// contributes its phrase group, in this order.
var subjectTriggers = []subjectTrigger{
	{[]string{"war", "battle"}, []string{"soldiers", "military equipment", "battlefield scenes"}},
	{[]string{"protest", "revolution"}, []string{"protesters", "crowds", "banners", "revolutionary symbols"}},
	{[]string{"leader", "minister"}, []string{"political figures", "officials", "formal attire"}},
	{[]string{"worker", "labor"}, []string{"workers", "industrial equipment", "factory settings"}},
}

var defaultSubjects = []string{"historical figures", "period-appropriate clothing"}

type atmosphereTrigger struct {
	cues       []string
	atmosphere string
}

// atmosphereTriggers are exclusive by precedence: only the first match
// applies. This asymmetry with subjects (which accumulate) is intentional.
var atmosphereTriggers = []atmosphereTrigger{
	{[]string{"victory", "celebration"}, "triumphant, energetic"},
	{[]string{"defeat", "death"}, "somber, dramatic"},
	{[]string{"protest", "uprising"}, "tense, dramatic, revolutionary"},
	{[]string{"meeting", "conference"}, "formal, serious, diplomatic"},
}

const defaultAtmosphere = "historical, documentary"

var technicalDetails = []string{
	"highly detailed",
	"sharp focus",
	"historical accuracy",
	"period-appropriate lighting",
	"authentic details",
	"masterful composition",
}

// Classify derives era, style, location, subjects and atmosphere for an
// event description and year. Deterministic: identical inputs always yield
// an identical context.
func Classify(description string, year int) HistoricalContext {
	lowered := strings.ToLower(description)

	era, style := classifyEra(year)

	location := defaultLocation
	for _, keyword := range locationKeywords {
		if strings.Contains(lowered, keyword) {
			location = keyword
			break
		}
	}

	var subjects []string
	for _, trigger := range subjectTriggers {
		if containsAny(lowered, trigger.cues) {
			subjects = append(subjects, trigger.subjects...)
		}
	}
	if len(subjects) == 0 {
		subjects = append(subjects, defaultSubjects...)
	}

	atmosphere := defaultAtmosphere
	for _, trigger := range atmosphereTriggers {
		if containsAny(lowered, trigger.cues) {
			atmosphere = trigger.atmosphere
			break
		}
	}

	return HistoricalContext{
		Era:              era,
		Style:            style,
		Atmosphere:       atmosphere,
		Location:         location,
		Subjects:         subjects,
		TechnicalDetails: append([]string(nil), technicalDetails...),
	}
}

func classifyEra(year int) (era, style string) {
	for _, bucket := range eraBuckets {
		if bucket.before == 0 || year < bucket.before {
			return bucket.era, bucket.style
		}
	}
	// Unreachable: the last bucket is unbounded.
	last := eraBuckets[len(eraBuckets)-1]
	return last.era, last.style
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
