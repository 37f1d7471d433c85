package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Attribute is one per-element data attribute read by AOS itself.
type Attribute struct {
	Name    string
	Example string
	Summary string
}

var Attributes = []Attribute{
	{"data-aos", "fade-up", "Animation effect to apply. See the effect list below."},
	{"data-aos-delay", "200", "Delay for this element only (ms)."},
	{"data-aos-duration", "1000", "Duration for this element (ms). Overrides the global duration."},
	{"data-aos-offset", "300", "Trigger offset for this element (px). Overrides the global offset."},
	{"data-aos-easing", "ease-in-sine", "Easing for this element, e.g. ease, ease-in, ease-out, ease-in-sine."},
	{"data-aos-anchor", ".hero-section", "Compute the scroll position from another element instead of this one."},
	{"data-aos-anchor-placement", "top-bottom", "Which edge of the anchor triggers, e.g. top-bottom, center-bottom, bottom-bottom."},
	{"data-aos-once", "true", "Animate this element only once. Overrides the global once option."},
}

// Effects are the values accepted by data-aos, grouped by family.
var Effects = [][]string{
	{"fade-up", "fade-down", "fade-left", "fade-right", "fade-up-left", "fade-up-right", "fade-down-left", "fade-down-right"},
	{"zoom-in", "zoom-in-up", "zoom-in-down", "zoom-in-right", "zoom-in-left", "zoom-out", "zoom-out-up", "zoom-out-down", "zoom-out-right", "zoom-out-left"},
	{"flip-left", "flip-right", "flip-up", "flip-down"},
}

// ReferenceMarkdown documents the attributes authors can put on elements.
func ReferenceMarkdown() string {
	var b strings.Builder
	b.WriteString("# AOS data attributes\n\n")
	b.WriteString("Set these directly on blocks or elements. They are read by AOS in the browser and override the global options.\n\n")
	b.WriteString("| Attribute | Example | Description |\n|---|---|---|\n")
	for _, a := range Attributes {
		b.WriteString(fmt.Sprintf("| `%s` | `%s` | %s |\n", a.Name, a.Example, a.Summary))
	}
	b.WriteString("\n## Effects\n\n")
	for _, group := range Effects {
		quoted := make([]string, len(group))
		for i, e := range group {
			quoted[i] = "`" + e + "`"
		}
		b.WriteString("- " + strings.Join(quoted, ", ") + "\n")
	}
	b.WriteString("\nExample: `data-aos=\"fade-up\" data-aos-delay=\"200\"`\n")
	return b.String()
}

// RenderReference renders the reference for a terminal of the given width.
// If rendering fails the raw markdown is returned.
func RenderReference(width int) string {
	md := ReferenceMarkdown()
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
