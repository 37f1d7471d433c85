package settings

import "strings"

// Source selects where the AOS assets are served from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

var AllSources = []Source{SourceRemote, SourceLocal}

// ParseSource accepts the two source names plus the legacy "cdn" spelling.
func ParseSource(s string) (Source, bool) {
	switch strings.TrimSpace(s) {
	case string(SourceRemote), "cdn":
		return SourceRemote, true
	case string(SourceLocal):
		return SourceLocal, true
	}
	return "", false
}

// Next cycles remote -> local -> remote.
func (s Source) Next() Source {
	if s == SourceLocal {
		return SourceRemote
	}
	return SourceLocal
}

// Field keys, shared by the persisted record and form input.
const (
	KeySource        = "source"
	KeyDuration      = "duration"
	KeyEasing        = "easing"
	KeyOffset        = "offset"
	KeyDelay         = "delay"
	KeyOnce          = "once"
	KeyMirror        = "mirror"
	KeyDisableMobile = "disable_mobile"
)

var AllKeys = []string{KeySource, KeyDisableMobile, KeyDuration, KeyEasing, KeyOffset, KeyDelay, KeyOnce, KeyMirror}
