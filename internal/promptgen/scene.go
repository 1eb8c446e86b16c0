package promptgen

import (
	"fmt"
	"strings"

	"github.com/sandevgo/kommissar/internal/core"
)

// sceneContext is the flat keyword harvest behind the alternate prompt
// mode: instead of classifying into fixed buckets it collects every cue the
// description happens to contain.
type sceneContext struct {
	subjects   []string
	actions    []string
	locations  []string
	timePeriod string
	atmosphere []string
}

var (
	sceneSubjects = []string{
		"soldiers", "workers", "protesters", "leaders",
		"civilians", "military", "politicians", "revolutionaries",
		"crowd", "people", "army", "officials", "troops",
		"men", "women", "children", "citizens",
	}
	sceneActions = []string{
		"marching", "protesting", "speaking", "fighting",
		"gathering", "celebrating", "meeting", "signing",
		"demonstrating", "assembling", "standing", "walking",
		"killed", "massacred", "attacking", "defending",
		"fleeing", "resisting", "confronting", "debating",
	}
	sceneLocations = []string{
		"soviet union", "russia", "moscow", "kremlin",
		"china", "beijing", "eastern europe", "berlin",
		"street", "square", "building", "palace", "romania",
		"city", "town", "village", "countryside", "battlefield",
	}
	sceneAtmospheres = []string{
		"historical", "dramatic", "tense", "tragic",
		"powerful", "solemn", "dark", "momentous",
		"significant", "important", "serious", "grim",
		"authentic", "raw", "emotional", "intense",
	}
)

func extractSceneContext(event core.HistoricalEvent) sceneContext {
	lowered := strings.ToLower(event.Description)

	var timePeriod string
	switch {
	case event.Year < 1900:
		timePeriod = "vintage sepia-toned photograph from the 19th century, historical documentation"
	case event.Year < 1950:
		timePeriod = "black and white historical photograph from the early 20th century, documentary style"
	default:
		timePeriod = "historical documentary photograph, photojournalistic style"
	}

	return sceneContext{
		subjects:   matching(lowered, sceneSubjects),
		actions:    matching(lowered, sceneActions),
		locations:  matching(lowered, sceneLocations),
		timePeriod: timePeriod,
		atmosphere: matching(lowered, sceneAtmospheres),
	}
}

func matching(text string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

// ScenePrompt is the alternate, flatter prompt builder: one comma-joined
// SDXL prompt assembled from harvested cues, with an empty negative prompt.
func ScenePrompt(event core.HistoricalEvent) core.StabilityPrompt {
	context := extractSceneContext(event)

	parts := []string{
		fmt.Sprintf("%s, showing a historical scene from %d", context.timePeriod, event.Year),
	}
	if len(context.locations) > 0 {
		parts = append(parts, fmt.Sprintf("set in %s", strings.Join(context.locations, " and ")))
	}
	if len(context.subjects) > 0 {
		parts = append(parts, fmt.Sprintf("depicting %s", strings.Join(context.subjects, ", ")))
	} else {
		parts = append(parts, "depicting people")
	}
	if len(context.actions) > 0 {
		parts = append(parts, fmt.Sprintf("who are %s", strings.Join(context.actions, " and ")))
	}
	if len(context.atmosphere) > 0 {
		parts = append(parts, fmt.Sprintf("conveying a %s atmosphere", strings.Join(context.atmosphere, ", ")))
	}
	parts = append(parts,
		"ultra detailed photograph",
		"masterful composition",
		"8k resolution",
		"professional lighting",
		"historically accurate details",
		"cinematic quality",
		"award-winning photojournalism",
		"dramatic lighting",
		"high contrast",
		"film grain",
		"shot on Leica",
	)

	return core.StabilityPrompt{
		Prompt:         strings.Join(parts, ", "),
		NegativePrompt: "",
	}
}
