package timer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSnapshotRollsTimestamp(t *testing.T) {
	state := DefaultState(1234.5)
	state.OldTimestamp = floatPtr(1000)
	snap, err := state.Snapshot()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.OldTimestamp != "1234.5" {
		t.Errorf("Expected old_timestamp to carry new_timestamp, got %q", snap.OldTimestamp)
	}
	if snap.FullText != "5m" || snap.ShortText != "5m" || snap.Label != "timer:" {
		t.Errorf("Unexpected text fields: %+v", snap)
	}
	if snap.ErrorDuration != "" || snap.ErrorMessage != "" {
		t.Errorf("Expected empty overlay fields, got %+v", snap)
	}
}

func TestSnapshotErrorMode(t *testing.T) {
	state := AddError(DefaultState(0), newError(ErrBadValue, "invalid input: ?"), 0)
	state.ErrorDuration = floatPtr(3.25)
	snap, err := state.Snapshot()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.FullText != "invalid input: ?(3.2)" && snap.FullText != "invalid input: ?(3.3)" {
		t.Errorf("Unexpected full_text %q", snap.FullText)
	}
	if snap.Color != errorColor || snap.Background != errorBackground {
		t.Errorf("Expected error colors, got %q on %q", snap.Color, snap.Background)
	}
	if snap.ErrorDuration != "3.25" || snap.ShortText != "invalid input: ?" {
		t.Errorf("Unexpected overlay fields: %+v", snap)
	}
}

func TestSnapshotOrErrorFoldsTemplateFailure(t *testing.T) {
	state := DefaultState(7)
	state.TextFormat = "{bogus}"
	next, snap := SnapshotOrError(state, 8)
	if !next.HasError() {
		t.Fatal("Expected overlay for a bad template")
	}
	if !strings.HasPrefix(snap.FullText, `bad key "bogus"(5.0)`) {
		t.Errorf("Unexpected full_text %q", snap.FullText)
	}
	if snap.OldTimestamp != "8" {
		t.Errorf("Expected overlay timestamp 8, got %q", snap.OldTimestamp)
	}
}

func TestSnapshotRoundTripsThroughLoadState(t *testing.T) {
	state := DefaultState(50)
	state.TimerState = StatePaused
	state.ElapsedTime = 12.25
	state.StartTime = 90
	state.TimerName = "eggs"
	state.ColorOption = ColorRedOnNegatives
	state.Font = "mono"

	snap, err := state.Snapshot()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, snap); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	mapping := map[string]string{}
	for _, key := range ConfigKeys {
		if value, ok := raw[key]; ok {
			mapping[key] = fmt.Sprint(value)
		}
	}

	loaded, err := LoadState(mapping, 51)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if loaded.TimerState != StatePaused || loaded.ElapsedTime != 12.25 || loaded.StartTime != 90 {
		t.Errorf("Clock fields lost: %+v", loaded)
	}
	if loaded.TimerName != "eggs" || loaded.ColorOption != ColorRedOnNegatives || loaded.Font != "mono" {
		t.Errorf("Config fields lost: %+v", loaded)
	}
	if loaded.OldTimestamp == nil || *loaded.OldTimestamp != 50 {
		t.Errorf("Expected old_timestamp 50, got %v", loaded.OldTimestamp)
	}
	if loaded.HasError() {
		t.Error("Expected no overlay after round trip")
	}
}

func TestWriteJSONKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, Snapshot{FullText: "<span color='#BB0A21'>x</span>"}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "<span color='#BB0A21'>") {
		t.Errorf("Expected unescaped markup, got %s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Errorf("Expected one newline-terminated object, got %q", buf.String())
	}
}
