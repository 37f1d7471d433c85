package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/aos-loader/internal/assets"
	"github.com/DaanHessen/aos-loader/internal/resolver"
	"github.com/DaanHessen/aos-loader/internal/settings"
	"github.com/DaanHessen/aos-loader/internal/store"
	"github.com/DaanHessen/aos-loader/internal/text"
	"github.com/DaanHessen/aos-loader/internal/util"
)

const (
	viewForm      = "form"
	viewPreview   = "preview"
	viewReference = "reference"
)

type fieldKind int

const (
	kindSource fieldKind = iota
	kindFlag
	kindNumber
	kindText
)

type field struct {
	key   string
	label string
	kind  fieldKind
	hint  string
}

var fields = []field{
	{settings.KeySource, "Script source", kindSource, "CDN (jsDelivr) or the copy served by this site."},
	{settings.KeyDisableMobile, "Disable on mobile", kindFlag, "Do not load AOS at all for mobile visitors."},
	{settings.KeyDuration, "duration (ms)", kindNumber, "Leave empty for the 1000ms default. Suggested 50-3000 in steps of 50."},
	{settings.KeyEasing, "easing", kindText, "e.g. ease-out-cubic. Empty uses the library default."},
	{settings.KeyOffset, "offset (px)", kindNumber, "How far into the viewport an element must be. Empty omits it."},
	{settings.KeyDelay, "delay (ms)", kindNumber, "Global delay; data-aos-delay on an element wins. Empty omits it."},
	{settings.KeyOnce, "once", kindFlag, "Animate only the first time an element scrolls in."},
	{settings.KeyMirror, "mirror", kindFlag, "Animate out again while scrolling past."},
}

type model struct {
	ctx     context.Context
	store   *store.SettingsStore
	assets  resolver.Assets
	version string

	saved  settings.Settings
	form   settings.Input
	dirty  bool
	cursor int
	view   string
	status string
	failed bool

	theme  string
	styles styles
	width  int
	height int
}

func initialModel(ctx context.Context, st *store.SettingsStore, cfg util.Config, version string) model {
	m := model{
		ctx:     ctx,
		store:   st,
		assets:  cfg.Assets(),
		version: version,
		view:    viewForm,
		theme:   cfg.Theme,
	}
	m.styles = stylesFor(paletteFor(m.theme))
	m.reload()
	return m
}

// reload replaces the edit buffer with the stored record.
func (m *model) reload() bool {
	s, err := m.store.Read(m.ctx)
	if err != nil {
		m.setStatus("Load failed: "+err.Error(), true)
	}
	m.saved = s
	m.form = s.Form()
	m.dirty = false
	return err == nil
}

func (m *model) save() {
	clean, err := m.store.SanitizeAndWrite(m.ctx, m.form)
	if err != nil {
		m.setStatus("Save failed: "+err.Error(), true)
		return
	}
	m.saved = clean
	m.form = clean.Form()
	m.dirty = false
	m.setStatus("Settings saved.", false)
}

func (m *model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m *model) current() field { return fields[m.cursor] }

func (m *model) move(step int) {
	m.cursor = (m.cursor + step) % len(fields)
	if m.cursor < 0 {
		m.cursor += len(fields)
	}
}

// activate toggles a checkbox or cycles the source radio.
func (m *model) activate() {
	f := m.current()
	switch f.kind {
	case kindFlag:
		if settings.Truthy(m.form[f.key]) {
			delete(m.form, f.key)
		} else {
			m.form[f.key] = "1"
		}
	case kindSource:
		src, ok := settings.ParseSource(m.form[f.key])
		if !ok {
			src = settings.SourceRemote
		}
		m.form[f.key] = string(src.Next())
	default:
		return
	}
	m.dirty = true
}

func (m *model) typeRunes(rs []rune) {
	f := m.current()
	var b strings.Builder
	for _, r := range rs {
		if f.kind == kindNumber && !strings.ContainsRune("0123456789-", r) {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return
	}
	m.form[f.key] += b.String()
	m.dirty = true
}

func (m *model) backspace() {
	f := m.current()
	v := []rune(m.form[f.key])
	if len(v) == 0 {
		return
	}
	m.form[f.key] = string(v[:len(v)-1])
	m.dirty = true
}

func (m *model) editable() bool {
	k := m.current().kind
	return k == kindNumber || k == kindText
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view != viewForm {
			switch k {
			case "esc", "q", "ctrl+p", "f1":
				m.view = viewForm
			}
			return m, nil
		}
		switch k {
		case "up", "shift+tab":
			m.move(-1)
			return m, nil
		case "down", "tab":
			m.move(1)
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+r":
			if m.reload() {
				m.setStatus("Changes discarded.", false)
			}
			return m, nil
		case "ctrl+p":
			m.view = viewPreview
			return m, nil
		case "f1":
			m.view = viewReference
			return m, nil
		case "ctrl+t":
			m.theme = nextThemeName(m.theme, 1)
			m.styles = stylesFor(paletteFor(m.theme))
			return m, nil
		case "esc":
			return m, tea.Quit
		}
		if m.editable() {
			switch msg.Type {
			case tea.KeyRunes, tea.KeySpace:
				m.typeRunes(msg.Runes)
			case tea.KeyBackspace:
				m.backspace()
			case tea.KeyCtrlU:
				m.form[m.current().key] = ""
				m.dirty = true
			}
			return m, nil
		}
		switch k {
		case " ", "enter", "x":
			m.activate()
		case "?":
			m.view = viewReference
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.view {
	case viewPreview:
		return m.renderPreview()
	case viewReference:
		return text.RenderReference(m.width) + "\n" + m.styles.bar.Render("[Esc] back")
	default:
		return m.renderForm()
	}
}

func (m model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("AOS Loader Settings") + "\n")
	b.WriteString(m.styles.hint.Render(fmt.Sprintf("AOS library %s • aosloader %s", m.assets.LibVersion(), m.version)) + "\n\n")
	for i, f := range fields {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.cursor.Render("> ")
		}
		b.WriteString(marker + m.styles.label.Render(f.label) + " " + m.renderValue(f, i == m.cursor) + "\n")
		if i == m.cursor {
			b.WriteString("    " + m.styles.hint.Render(f.hint) + "\n")
		}
	}
	box := m.styles.box
	if m.width > 10 {
		box = box.Width(min(m.width-2, 90))
	}
	out := box.Render(b.String()) + "\n"
	out += m.renderStatus() + "\n"
	out += m.styles.bar.Render("[↑/↓] move  [Space] toggle  [Ctrl+S] save  [Ctrl+R] discard  [Ctrl+P] preview  [F1] attributes  [Ctrl+T] theme  [Esc] quit")
	return out
}

func (m model) renderValue(f field, focused bool) string {
	v := m.form[f.key]
	switch f.kind {
	case kindSource:
		src, ok := settings.ParseSource(v)
		if !ok {
			src = settings.SourceRemote
		}
		parts := make([]string, 0, len(settings.AllSources))
		for _, s := range settings.AllSources {
			mark := "( )"
			if s == src {
				mark = "(•)"
			}
			parts = append(parts, mark+" "+string(s))
		}
		return m.styles.value.Render(strings.Join(parts, "  "))
	case kindFlag:
		if settings.Truthy(v) {
			return m.styles.value.Render("[x]")
		}
		return m.styles.value.Render("[ ]")
	default:
		shown := v
		if focused {
			shown += "█"
		} else if shown == "" {
			return m.styles.hint.Render("(empty)")
		}
		return m.styles.value.Render(shown)
	}
}

func (m model) renderStatus() string {
	switch {
	case m.status != "" && m.failed:
		return m.styles.warn.Render(m.status)
	case m.dirty:
		return m.styles.warn.Render("Unsaved changes.")
	case m.status != "":
		return m.styles.ok.Render(m.status)
	}
	return ""
}

// renderPreview shows what a page render would emit with the form as it
// would be saved right now.
func (m model) renderPreview() string {
	pending := settings.Sanitize(m.form)
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Render preview") + "\n\n")
	b.WriteString("AOS.init(" + resolver.Serialize(resolver.BuildInitOptions(pending)) + ")\n\n")
	plan, ok := m.assets.Resolve(pending, false)
	if ok {
		q := assets.NewQueue()
		if err := q.Apply(plan); err == nil {
			var tags strings.Builder
			_ = q.Render(&tags)
			b.WriteString(m.styles.hint.Render("Desktop visitors:") + "\n" + tags.String() + "\n")
		}
	}
	if resolver.ShouldLoad(pending, true) {
		b.WriteString(m.styles.hint.Render("Mobile visitors: same as desktop.") + "\n")
	} else {
		b.WriteString(m.styles.hint.Render("Mobile visitors: AOS is not loaded.") + "\n")
	}
	return m.styles.box.Render(b.String()) + "\n" + m.styles.bar.Render("[Esc] back")
}
