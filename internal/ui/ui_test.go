package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/aos-loader/internal/settings"
	"github.com/DaanHessen/aos-loader/internal/store"
	"github.com/DaanHessen/aos-loader/internal/util"
)

func testModel(t *testing.T) (model, *store.SettingsStore) {
	t.Helper()
	st := store.NewSettingsStore(store.NewMemoryOptions(), util.DefaultOptionKey)
	cfg := util.DefaultConfig()
	cfg.Memory = true
	return initialModel(context.Background(), st, cfg, "test"), st
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyClear = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func cursorTo(t *testing.T, m model, key string) model {
	t.Helper()
	for i := 0; i < len(fields); i++ {
		if m.current().key == key {
			return m
		}
		m = press(m, keyDown)
	}
	t.Fatalf("field %s not reachable", key)
	return m
}

func TestInitialModelLoadsDefaults(t *testing.T) {
	m, _ := testModel(t)
	if m.form[settings.KeyDuration] != "1000" || m.form[settings.KeySource] != "remote" {
		t.Fatalf("form = %v", m.form)
	}
	if m.dirty {
		t.Fatal("fresh form should not be dirty")
	}
}

func TestEditAndSave(t *testing.T) {
	m, st := testModel(t)
	m = cursorTo(t, m, settings.KeySource)
	m = press(m, keySpace)
	m = cursorTo(t, m, settings.KeyDuration)
	m = press(m, keyClear, runes("6a0"), runes("0"))
	m = cursorTo(t, m, settings.KeyEasing)
	m = press(m, runes("ease-out-cubicX"), keyBack)
	m = cursorTo(t, m, settings.KeyOnce)
	m = press(m, keySpace)
	if !m.dirty {
		t.Fatal("edits should mark the form dirty")
	}
	m = press(m, keySave)
	if m.dirty || m.failed {
		t.Fatalf("save failed: %q", m.status)
	}

	got, err := st.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := settings.Settings{
		Source:   settings.SourceLocal,
		Duration: settings.IntOf(600),
		Easing:   "ease-out-cubic",
		Once:     true,
	}
	if got != want {
		t.Fatalf("stored %+v, want %+v", got, want)
	}
}

func TestClearedDurationSavesDefault(t *testing.T) {
	m, st := testModel(t)
	m = cursorTo(t, m, settings.KeyDuration)
	m = press(m, keyClear, keySave)
	got, _ := st.Read(context.Background())
	if got.Duration != settings.IntOf(settings.DefaultDuration) {
		t.Fatalf("duration = %s", got.Duration)
	}
	if m.form[settings.KeyDuration] != "1000" {
		t.Fatalf("form should show the default after save, got %q", m.form[settings.KeyDuration])
	}
}

func TestNavigationWraps(t *testing.T) {
	m, _ := testModel(t)
	m = press(m, keyUp)
	if m.cursor != len(fields)-1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m = press(m, keyDown)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
}

func TestDiscardRestoresStored(t *testing.T) {
	m, _ := testModel(t)
	m = cursorTo(t, m, settings.KeyMirror)
	m = press(m, keySpace, tea.KeyMsg{Type: tea.KeyCtrlR})
	if settings.Truthy(m.form[settings.KeyMirror]) || m.dirty {
		t.Fatalf("discard did not restore: %v", m.form)
	}
}

func TestPreviewAndReferenceViews(t *testing.T) {
	m, _ := testModel(t)
	m = cursorTo(t, m, settings.KeyDisableMobile)
	m = press(m, keySpace, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.view != viewPreview {
		t.Fatalf("view = %s", m.view)
	}
	out := m.View()
	if !strings.Contains(out, `AOS.init({"duration":1000})`) {
		t.Fatalf("preview missing init call:\n%s", out)
	}
	if !strings.Contains(out, "AOS is not loaded") {
		t.Fatalf("preview should report the mobile short-circuit:\n%s", out)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewForm {
		t.Fatalf("esc should return to the form, view = %s", m.view)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.view != viewReference {
		t.Fatalf("view = %s", m.view)
	}
}

func TestThemeCycles(t *testing.T) {
	m, _ := testModel(t)
	before := m.theme
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme == before {
		t.Fatal("theme did not change")
	}
	if nextThemeName("catppuccin", -1) != "solarized_dark" {
		t.Fatalf("nextThemeName wrap = %s", nextThemeName("catppuccin", -1))
	}
}

func TestLetterShortcutsOnlyOutsideTextFields(t *testing.T) {
	m, _ := testModel(t)
	m = cursorTo(t, m, settings.KeyEasing)
	next, cmd := m.Update(runes("q"))
	m = next.(model)
	if cmd != nil {
		t.Fatal("q in a text field must not quit")
	}
	m = press(m, runes("?"))
	if m.form[settings.KeyEasing] != "q?" || m.view != viewForm {
		t.Fatalf("easing = %q view = %s, want typed text on the form", m.form[settings.KeyEasing], m.view)
	}

	m = cursorTo(t, m, settings.KeyOnce)
	m = press(m, runes("?"))
	if m.view != viewReference {
		t.Fatalf("? on a checkbox should open the reference, view = %s", m.view)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q on a checkbox should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q on a checkbox should return tea.Quit")
	}
}
