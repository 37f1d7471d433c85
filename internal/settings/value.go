package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int is an optional integer that keeps "unset" apart from an explicit zero.
// The zero value is unset.
type Int struct {
	v  int
	ok bool
}

func IntOf(v int) Int { return Int{v: v, ok: true} }

// Unset returns the empty Int.
func Unset() Int { return Int{} }

func (i Int) IsSet() bool      { return i.ok }
func (i Int) Get() (int, bool) { return i.v, i.ok }

// Or returns the value, or fallback when unset.
func (i Int) Or(fallback int) int {
	if i.ok {
		return i.v
	}
	return fallback
}

// String renders the value for form fields; unset renders as "".
func (i Int) String() string {
	if !i.ok {
		return ""
	}
	return strconv.Itoa(i.v)
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.ok {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(i.v), 10), nil
}

// UnmarshalJSON reads null, numbers, and the legacy string forms ("" and
// "1000"). A string that is not a number decodes as unset.
func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*i = Int{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, ok := ParseInt(s); ok {
			*i = IntOf(v)
		} else {
			*i = Int{}
		}
		return nil
	}
	v, ok := ParseInt(string(b))
	if !ok {
		return fmt.Errorf("settings: cannot decode %s as integer", b)
	}
	*i = IntOf(v)
	return nil
}

// ParseInt coerces form text to an integer. Decimal input is truncated;
// anything else, including values outside ±MaxInt32, is reported as not a
// number.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v > math.MaxInt32 || v < -math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Truthy reports whether form text explicitly signals "on".
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
