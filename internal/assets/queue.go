// Package assets collects the style and script tags a page render needs and
// renders them as HTML.
package assets

import (
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/DaanHessen/aos-loader/internal/resolver"
)

// Handles used for the AOS library.
const (
	StyleHandle  = "aos-css"
	ScriptHandle = "aos-js"
)

type asset struct {
	Handle  string
	URL     string
	Version string
	Inline  []string
}

// Queue keeps registrations in insertion order. Registering a handle twice
// replaces the earlier entry in place.
type Queue struct {
	styles  []asset
	scripts []asset
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) EnqueueStyle(handle, src, version string) {
	q.styles = upsert(q.styles, asset{Handle: handle, URL: src, Version: version})
}

func (q *Queue) EnqueueScript(handle, src, version string) {
	q.scripts = upsert(q.scripts, asset{Handle: handle, URL: src, Version: version})
}

// AddInline appends body after the script registered as handle.
func (q *Queue) AddInline(handle, body string) error {
	for i := range q.scripts {
		if q.scripts[i].Handle == handle {
			q.scripts[i].Inline = append(q.scripts[i].Inline, body)
			return nil
		}
	}
	return errors.Errorf("assets: no script registered as %q", handle)
}

// Apply registers a resolved plan under the AOS handles.
func (q *Queue) Apply(p resolver.Plan) error {
	q.EnqueueStyle(StyleHandle, p.StyleURL, p.Version)
	q.EnqueueScript(ScriptHandle, p.ScriptURL, p.Version)
	return q.AddInline(ScriptHandle, p.Inline)
}

// Len is the number of registered assets.
func (q *Queue) Len() int { return len(q.styles) + len(q.scripts) }

func upsert(list []asset, a asset) []asset {
	for i := range list {
		if list[i].Handle == a.Handle {
			a.Inline = list[i].Inline
			list[i] = a
			return list
		}
	}
	return append(list, a)
}

// Render writes styles first, then each script followed by its inline bodies.
func (q *Queue) Render(w io.Writer) error {
	var b strings.Builder
	for _, s := range q.styles {
		b.WriteString(`<link rel="stylesheet" id="` + html.EscapeString(s.Handle) + `-css" href="` +
			html.EscapeString(versioned(s.URL, s.Version)) + `" media="all">` + "\n")
	}
	for _, s := range q.scripts {
		b.WriteString(`<script src="` + html.EscapeString(versioned(s.URL, s.Version)) + `" id="` +
			html.EscapeString(s.Handle) + `-js"></script>` + "\n")
		for _, body := range s.Inline {
			b.WriteString(`<script id="` + html.EscapeString(s.Handle) + `-js-after">` + "\n" +
				scriptSafe(body) + "\n</script>\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "assets: render")
}

// versioned appends the ver query the way cache-busting loaders do.
func versioned(src, version string) string {
	if version == "" {
		return src
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	q := u.Query()
	q.Set("ver", version)
	u.RawQuery = q.Encode()
	return u.String()
}

// scriptSafe keeps an inline body from terminating its own script element.
func scriptSafe(body string) string {
	return strings.ReplaceAll(body, "</", `<\/`)
}
