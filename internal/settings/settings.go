// Package settings holds the AOS loader options record: defaults, the
// read-time merge over a persisted record, and the write-time sanitizer.
package settings

import (
	"encoding/json"
	"strings"
)

// DefaultDuration is the animation duration (ms) used when none is stored.
const DefaultDuration = 1000

// Settings is the persisted options record. Every field always carries a
// value; "not configured" is expressed by an unset Int or an empty Easing.
type Settings struct {
	Source        Source `json:"source"`
	Duration      Int    `json:"duration"`
	Easing        string `json:"easing"`
	Offset        Int    `json:"offset"`
	Delay         Int    `json:"delay"`
	Once          bool   `json:"once"`
	Mirror        bool   `json:"mirror"`
	DisableMobile bool   `json:"disable_mobile"`
}

// Defaults returns the record used for missing keys.
func Defaults() Settings {
	return Settings{
		Source:   SourceRemote,
		Duration: IntOf(DefaultDuration),
	}
}

// Record is the persisted shape: one raw JSON value per field key. Keys may be
// missing and values may use the legacy string forms.
type Record map[string]json.RawMessage

// Encode converts s to its persisted shape.
func Encode(s Settings) Record {
	return Record{
		KeySource:        raw(string(s.Source)),
		KeyDuration:      raw(s.Duration),
		KeyEasing:        raw(s.Easing),
		KeyOffset:        raw(s.Offset),
		KeyDelay:         raw(s.Delay),
		KeyOnce:          raw(s.Once),
		KeyMirror:        raw(s.Mirror),
		KeyDisableMobile: raw(s.DisableMobile),
	}
}

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}

// Merge lays saved over Defaults. Stored values win; missing keys and values
// that cannot be decoded keep the default. Merge never fails, and
// Merge(Encode(Merge(r))) == Merge(r).
func Merge(saved Record) Settings {
	s := Defaults()
	if v, ok := saved[KeySource]; ok {
		var str string
		if json.Unmarshal(v, &str) == nil {
			if src, ok := ParseSource(str); ok {
				s.Source = src
			}
		}
	}
	mergeInt(saved, KeyDuration, &s.Duration)
	mergeInt(saved, KeyOffset, &s.Offset)
	mergeInt(saved, KeyDelay, &s.Delay)
	if v, ok := saved[KeyEasing]; ok {
		var str string
		if json.Unmarshal(v, &str) == nil {
			s.Easing = Text(str)
		}
	}
	mergeFlag(saved, KeyOnce, &s.Once)
	mergeFlag(saved, KeyMirror, &s.Mirror)
	mergeFlag(saved, KeyDisableMobile, &s.DisableMobile)
	return s
}

func mergeInt(saved Record, key string, dst *Int) {
	v, ok := saved[key]
	if !ok {
		return
	}
	var i Int
	if err := json.Unmarshal(v, &i); err == nil {
		*dst = i
	}
}

// mergeFlag accepts JSON booleans, the legacy "1"/"" strings and numbers.
func mergeFlag(saved Record, key string, dst *bool) {
	v, ok := saved[key]
	if !ok {
		return
	}
	var b bool
	if json.Unmarshal(v, &b) == nil {
		*dst = b
		return
	}
	var str string
	if json.Unmarshal(v, &str) == nil {
		*dst = Truthy(str)
		return
	}
	var n float64
	if json.Unmarshal(v, &n) == nil {
		*dst = n != 0
	}
}

// Form returns the record as form field text, the inverse of Sanitize for
// every value Sanitize can produce.
func (s Settings) Form() Input {
	in := Input{
		KeySource:   string(s.Source),
		KeyDuration: s.Duration.String(),
		KeyEasing:   s.Easing,
		KeyOffset:   s.Offset.String(),
		KeyDelay:    s.Delay.String(),
	}
	for key, on := range map[string]bool{KeyOnce: s.Once, KeyMirror: s.Mirror, KeyDisableMobile: s.DisableMobile} {
		if on {
			in[key] = "1"
		}
	}
	return in
}

// Summary is a one-line description used by the CLI.
func (s Settings) Summary() string {
	parts := []string{
		"source=" + string(s.Source),
		"duration=" + orDash(s.Duration.String()),
		"easing=" + orDash(s.Easing),
		"offset=" + orDash(s.Offset.String()),
		"delay=" + orDash(s.Delay.String()),
		"once=" + onOff(s.Once),
		"mirror=" + onOff(s.Mirror),
		"disable_mobile=" + onOff(s.DisableMobile),
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
