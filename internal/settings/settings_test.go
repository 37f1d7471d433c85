package settings

import (
	"encoding/json"
	"testing"
)

func TestMergeEmptyRecordYieldsDefaults(t *testing.T) {
	got := Merge(nil)
	if got != Defaults() {
		t.Fatalf("Merge(nil) = %+v, want defaults", got)
	}
	if got.Source != SourceRemote {
		t.Fatalf("default source = %q", got.Source)
	}
	if v, ok := got.Duration.Get(); !ok || v != DefaultDuration {
		t.Fatalf("default duration = %v/%v", v, ok)
	}
	if got.Offset.IsSet() || got.Delay.IsSet() || got.Easing != "" {
		t.Fatalf("optional fields should be unset: %+v", got)
	}
}

func TestMergeStoredValuesWin(t *testing.T) {
	rec := Record{
		KeySource:   json.RawMessage(`"local"`),
		KeyDuration: json.RawMessage(`null`),
		KeyOffset:   json.RawMessage(`0`),
		KeyOnce:     json.RawMessage(`true`),
	}
	got := Merge(rec)
	if got.Source != SourceLocal {
		t.Fatalf("source = %q", got.Source)
	}
	if got.Duration.IsSet() {
		t.Fatalf("stored null duration must stay unset, got %s", got.Duration)
	}
	if v, ok := got.Offset.Get(); !ok || v != 0 {
		t.Fatalf("explicit zero offset lost: %v/%v", v, ok)
	}
	if !got.Once || got.Mirror {
		t.Fatalf("flags = once:%v mirror:%v", got.Once, got.Mirror)
	}
}

func TestMergeLegacyStringRecord(t *testing.T) {
	var rec Record
	legacy := `{"source":"cdn","duration":"1000","easing":"ease-in","offset":"","delay":"200","once":"1","mirror":"","disable_mobile":"1"}`
	if err := json.Unmarshal([]byte(legacy), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := Merge(rec)
	want := Settings{
		Source:        SourceRemote,
		Duration:      IntOf(1000),
		Easing:        "ease-in",
		Delay:         IntOf(200),
		Once:          true,
		DisableMobile: true,
	}
	if got != want {
		t.Fatalf("Merge(legacy) = %+v, want %+v", got, want)
	}
}

func TestMergeIgnoresUndecodableValues(t *testing.T) {
	rec := Record{
		KeySource:   json.RawMessage(`"ftp"`),
		KeyDuration: json.RawMessage(`{"x":1}`),
		KeyEasing:   json.RawMessage(`42`),
		KeyMirror:   json.RawMessage(`[1]`),
	}
	if got := Merge(rec); got != Defaults() {
		t.Fatalf("undecodable values should fall back to defaults, got %+v", got)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	records := []Record{
		nil,
		Encode(Defaults()),
		Encode(Settings{Source: SourceLocal, Easing: "ease", Offset: IntOf(-40), Delay: IntOf(0), Mirror: true}),
		{KeyDuration: json.RawMessage(`"abc"`), KeyOnce: json.RawMessage(`"1"`)},
	}
	for i, rec := range records {
		once := Merge(rec)
		twice := Merge(Encode(once))
		if once != twice {
			t.Fatalf("case %d: merge not idempotent: %+v vs %+v", i, once, twice)
		}
	}
}

func TestEncodeUsesNullForUnset(t *testing.T) {
	rec := Encode(Defaults())
	if string(rec[KeyOffset]) != "null" || string(rec[KeyDelay]) != "null" {
		t.Fatalf("unset ints should encode as null: offset=%s delay=%s", rec[KeyOffset], rec[KeyDelay])
	}
	if string(rec[KeyDuration]) != "1000" {
		t.Fatalf("duration encoded as %s", rec[KeyDuration])
	}
}

func TestSummary(t *testing.T) {
	want := "source=remote duration=1000 easing=- offset=- delay=- once=off mirror=off disable_mobile=off"
	if got := Defaults().Summary(); got != want {
		t.Fatalf("Summary() = %q", got)
	}
}
