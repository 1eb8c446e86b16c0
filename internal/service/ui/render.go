package ui

import (
	"fmt"
	"strings"

	"github.com/sandevgo/kommissar/internal/service/digest"
)

// RenderDigest formats a digest snapshot for the terminal. Image payloads
// are data URIs, so only their size is shown.
func RenderDigest(state digest.State) string {
	var b strings.Builder

	if state.LoadError != "" {
		b.WriteString(ErrorStyle.Render("load failed: "+state.LoadError) + "\n")
		return b.String()
	}

	for _, es := range state.Events {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			YearStyle.Render(fmt.Sprintf("%d", es.Event.Year)),
			es.Event.Description,
		))
		switch {
		case es.Status == digest.StatusError:
			b.WriteString("      " + ErrorStyle.Render("image: "+es.Error) + "\n")
		case es.Event.ImageURL != "":
			b.WriteString("      " + StatusStyle.Render(fmt.Sprintf("image: %d bytes (data URI)", len(es.Event.ImageURL))) + "\n")
		default:
			b.WriteString("      " + StatusStyle.Render("image: "+es.Status.String()) + "\n")
		}
	}
	return b.String()
}
