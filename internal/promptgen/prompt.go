package promptgen

import (
	"fmt"
	"strings"

	"github.com/sandevgo/kommissar/internal/core"
)

// negativeElements is constant regardless of input. The pre-color exclusion
// is applied even for modern-era events; adapting it per era was considered
// and rejected to keep the negative prompt a fixed quantity.
var negativeElements = []string{
	"no anachronistic elements",
	"no modern technology or clothing",
	"no artificial poses",
	"no digital artifacts",
	"no watermarks",
	"no text overlays",
	"no color in pre-color photography eras",
	"historically accurate",
}

// Synthesize builds the structured prompt pair for one event. Pure function
// of (description, year): no randomness, so fixtures are reproducible.
func Synthesize(description string, year int) core.StabilityPrompt {
	context := Classify(description, year)

	parts := []string{
		fmt.Sprintf("%s depicting %s", context.Era, description),
		fmt.Sprintf("Style: %s", context.Style),
		fmt.Sprintf("Setting: %s", context.Location),
		fmt.Sprintf("Featuring: %s", strings.Join(context.Subjects, ", ")),
		fmt.Sprintf("Atmosphere: %s", context.Atmosphere),
		fmt.Sprintf("Technical requirements: %s", strings.Join(context.TechnicalDetails, ", ")),
	}

	return core.StabilityPrompt{
		Prompt:         strings.Join(parts, ". "),
		NegativePrompt: strings.Join(negativeElements, ", "),
	}
}
