package settings

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Input is untrusted form data keyed by field key. Unticked checkboxes are
// absent, as a browser would submit them.
type Input map[string]string

var textPolicy = bluemonday.StrictPolicy()

// Text strips markup and collapses whitespace. The result is plain text:
// entities present in the input are kept literally and none are added, so
// Text(Text(s)) == Text(s).
func Text(s string) string {
	clean := textPolicy.Sanitize(strings.ReplaceAll(s, "&", "&amp;"))
	return strings.Join(strings.Fields(html.UnescapeString(clean)), " ")
}

// Sanitize builds a complete record from form input. It never fails: values
// it cannot use fall back to the default (source, duration) or to unset
// (offset, delay). The record is always rebuilt from Defaults, never patched.
func Sanitize(in Input) Settings {
	out := Defaults()

	if src, ok := ParseSource(in[KeySource]); ok {
		out.Source = src
	}

	// Clearing duration restores the default instead of omitting it.
	if v, ok := ParseInt(in[KeyDuration]); ok && v >= 0 {
		out.Duration = IntOf(v)
	}

	out.Easing = Text(in[KeyEasing])

	if v, ok := ParseInt(in[KeyOffset]); ok {
		out.Offset = IntOf(v)
	}
	if v, ok := ParseInt(in[KeyDelay]); ok && v >= 0 {
		out.Delay = IntOf(v)
	}

	out.Once = Truthy(in[KeyOnce])
	out.Mirror = Truthy(in[KeyMirror])
	out.DisableMobile = Truthy(in[KeyDisableMobile])
	return out
}

// ParseInput reads key=value pairs as given on the command line. Unknown keys
// are rejected so typos do not silently reset a field.
func ParseInput(pairs []string) (Input, error) {
	known := make(map[string]bool, len(AllKeys))
	for _, k := range AllKeys {
		known[k] = true
	}
	in := Input{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		k = strings.TrimSpace(k)
		if !known[k] {
			return nil, fmt.Errorf("unknown setting %q", k)
		}
		in[k] = v
	}
	return in, nil
}
