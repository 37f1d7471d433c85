package text

import (
	"strings"
	"testing"
)

func TestReferenceMarkdownListsEveryAttribute(t *testing.T) {
	md := ReferenceMarkdown()
	for _, a := range Attributes {
		if !strings.Contains(md, "`"+a.Name+"`") {
			t.Fatalf("reference missing %s", a.Name)
		}
	}
	for _, group := range Effects {
		for _, e := range group {
			if !strings.Contains(md, "`"+e+"`") {
				t.Fatalf("reference missing effect %s", e)
			}
		}
	}
}

func TestRenderReferenceProducesText(t *testing.T) {
	out := RenderReference(120)
	if !strings.Contains(out, "flip-down") {
		t.Fatalf("rendered reference lost content:\n%s", out)
	}
}
