// Package resolver turns a Settings record into what one page render needs:
// whether to load AOS at all, which asset source to use, and the options
// passed to AOS.init.
package resolver

import (
	"bytes"
	"encoding/json"

	"github.com/DaanHessen/aos-loader/internal/settings"
)

// InitOptions is the argument of AOS.init. Field order fixes the key order of
// the serialized object.
type InitOptions struct {
	Duration *int   `json:"duration,omitempty"`
	Easing   string `json:"easing,omitempty"`
	Offset   *int   `json:"offset,omitempty"`
	Delay    *int   `json:"delay,omitempty"`
	Once     bool   `json:"once,omitempty"`
	Mirror   bool   `json:"mirror,omitempty"`
}

// Empty reports whether no option would be forwarded.
func (o InitOptions) Empty() bool { return o == InitOptions{} }

// ShouldLoad is false only when mobile is disabled and the client is mobile.
func ShouldLoad(s settings.Settings, isMobile bool) bool {
	return !(s.DisableMobile && isMobile)
}

func ChooseSource(s settings.Settings) settings.Source { return s.Source }

// BuildInitOptions keeps only the fields that hold a real value.
func BuildInitOptions(s settings.Settings) InitOptions {
	var o InitOptions
	o.Duration = intPtr(s.Duration)
	if easing := settings.Text(s.Easing); easing != "" {
		o.Easing = easing
	}
	o.Offset = intPtr(s.Offset)
	o.Delay = intPtr(s.Delay)
	o.Once = s.Once
	o.Mirror = s.Mirror
	return o
}

func intPtr(i settings.Int) *int {
	v, ok := i.Get()
	if !ok {
		return nil
	}
	return &v
}

// Serialize renders o as a JSON object. An empty InitOptions renders as {}.
// The output is HTML-escaped so it can be embedded in an inline script.
func Serialize(o InitOptions) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return "{}"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
