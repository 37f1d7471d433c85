package assets

import (
	"strings"
	"testing"

	"github.com/DaanHessen/aos-loader/internal/resolver"
	"github.com/DaanHessen/aos-loader/internal/settings"
)

func TestApplyRendersPlan(t *testing.T) {
	plan, ok := resolver.Assets{}.Resolve(settings.Defaults(), false)
	if !ok {
		t.Fatal("expected plan")
	}
	q := NewQueue()
	if err := q.Apply(plan); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	var b strings.Builder
	if err := q.Render(&b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()

	link := `<link rel="stylesheet" id="aos-css-css" href="https://cdn.jsdelivr.net/npm/aos@2.3.4/dist/aos.css?ver=2.3.4" media="all">`
	script := `<script src="https://cdn.jsdelivr.net/npm/aos@2.3.4/dist/aos.js?ver=2.3.4" id="aos-js-js"></script>`
	for _, want := range []string{link, script, `AOS.init({"duration":1000});`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, link) > strings.Index(out, script) {
		t.Fatalf("styles must precede scripts:\n%s", out)
	}
	if strings.Index(out, script) > strings.Index(out, "aos-js-js-after") {
		t.Fatalf("inline init must follow the library script:\n%s", out)
	}
}

func TestEnqueueReplacesHandle(t *testing.T) {
	q := NewQueue()
	q.EnqueueScript("x", "/a.js", "")
	if err := q.AddInline("x", "one()"); err != nil {
		t.Fatalf("AddInline: %v", err)
	}
	q.EnqueueScript("x", "/b.js", "1")
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
	var b strings.Builder
	_ = q.Render(&b)
	out := b.String()
	if strings.Contains(out, "/a.js") || !strings.Contains(out, "/b.js?ver=1") {
		t.Fatalf("handle not replaced:\n%s", out)
	}
	if !strings.Contains(out, "one()") {
		t.Fatalf("inline body lost on replace:\n%s", out)
	}
}

func TestAddInlineUnknownHandle(t *testing.T) {
	if err := NewQueue().AddInline("missing", "x()"); err == nil {
		t.Fatal("expected error for unknown handle")
	}
}

func TestInlineCannotCloseScript(t *testing.T) {
	q := NewQueue()
	q.EnqueueScript("x", "/a.js", "")
	_ = q.AddInline("x", `var s = "</script><b>";`)
	var b strings.Builder
	_ = q.Render(&b)
	if strings.Count(b.String(), "</script>") != 2 {
		t.Fatalf("inline body escaped its element:\n%s", b.String())
	}
}
