package resolver

import (
	"fmt"
	"strings"

	"github.com/DaanHessen/aos-loader/internal/settings"
)

// DefaultLibVersion is the AOS release served from both sources.
const DefaultLibVersion = "2.3.4"

const cdnBase = "https://cdn.jsdelivr.net/npm/aos@"

// Assets locates the library files for each source.
type Assets struct {
	Version   string
	LocalBase string // URL prefix of the local copy, e.g. "/static/aos-loader/"
}

// LibVersion is the configured library version, or DefaultLibVersion.
func (a Assets) LibVersion() string {
	if a.Version == "" {
		return DefaultLibVersion
	}
	return a.Version
}

// URLs returns the style and script locations for src.
func (a Assets) URLs(src settings.Source) (style, script string) {
	if src == settings.SourceLocal {
		base := strings.TrimRight(a.LocalBase, "/") + "/"
		return base + "assets/css/aos.css", base + "assets/js/aos.js"
	}
	base := cdnBase + a.LibVersion() + "/dist/"
	return base + "aos.css", base + "aos.js"
}

// Plan is everything the asset loader needs for one render.
type Plan struct {
	Source    settings.Source
	StyleURL  string
	ScriptURL string
	Version   string
	Options   InitOptions
	Inline    string
}

// Resolve returns the render plan, or false when AOS must not be loaded for
// this client. Nothing else is computed in that case.
func (a Assets) Resolve(s settings.Settings, isMobile bool) (Plan, bool) {
	if !ShouldLoad(s, isMobile) {
		return Plan{}, false
	}
	src := ChooseSource(s)
	style, script := a.URLs(src)
	opts := BuildInitOptions(s)
	return Plan{
		Source:    src,
		StyleURL:  style,
		ScriptURL: script,
		Version:   a.LibVersion(),
		Options:   opts,
		Inline:    InlineScript(Serialize(opts)),
	}, true
}

// InlineScript wraps the init call so it runs after DOM parsing and is
// skipped when the library failed to load.
func InlineScript(optionsJSON string) string {
	return fmt.Sprintf(`document.addEventListener('DOMContentLoaded', function() {
	if (typeof AOS !== 'undefined') {
		AOS.init(%s);
	}
});`, optionsJSON)
}
