package timer

import (
	"errors"
	"strings"
	"testing"
)

func TestAddErrorDurations(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		duration float64
	}{
		{name: "domain error", err: newError(ErrBadFormat, "bad key %q", "x"), message: `bad key "x"`, duration: 5},
		{name: "wrapped domain error", err: errors.Join(newError(ErrBadValue, "invalid input: y")), message: "invalid input: y", duration: 5},
		{name: "external error", err: errors.New("exit status 1"), message: "exit status 1", duration: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := AddError(DefaultState(1), tt.err, 42)
			if state.ErrorMessage != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, state.ErrorMessage)
			}
			if state.ErrorDuration == nil || *state.ErrorDuration != tt.duration {
				t.Errorf("Expected duration %v, got %v", tt.duration, state.ErrorDuration)
			}
			if state.NewTimestamp != 42 {
				t.Errorf("Expected new_timestamp stamped at injection, got %v", state.NewTimestamp)
			}
		})
	}
}

func TestAddErrorTruncatesShortMessage(t *testing.T) {
	long := strings.Repeat("abcdefghij", 6)
	state := AddError(DefaultState(0), errors.New(long), 0)
	if state.ErrorMessage != long {
		t.Errorf("Expected full message kept")
	}
	if state.ShortErrorMessage != long[:40] {
		t.Errorf("Expected 40 character short message, got %q", state.ShortErrorMessage)
	}

	short := AddError(DefaultState(0), errors.New("tiny"), 0)
	if short.ShortErrorMessage != "tiny" {
		t.Errorf("Expected untouched short message, got %q", short.ShortErrorMessage)
	}
}

func TestAddErrorReplacesOverlay(t *testing.T) {
	state := AddError(DefaultState(0), errors.New("first"), 0)
	state = AddError(state, newError(ErrBadValue, "second"), 1)
	if state.ErrorMessage != "second" || *state.ErrorDuration != 5 {
		t.Errorf("Expected newest overlay, got %q for %v", state.ErrorMessage, *state.ErrorDuration)
	}
}

func TestAddErrorNil(t *testing.T) {
	state := DefaultState(3)
	if AddError(state, nil, 9) != state {
		t.Error("Expected nil error to leave State unchanged")
	}
}

func TestOverlayDecaysAcrossTicks(t *testing.T) {
	state := AddError(DefaultState(0), newError(ErrBadValue, "boom"), 0)
	state = TickPipeline.Apply(state)
	for now := 1.0; now <= 4; now++ {
		state.NewTimestamp = now
		state = TickPipeline.Apply(state)
		if !state.HasError() {
			t.Fatalf("Expected overlay still active at %v", now)
		}
	}
	state.NewTimestamp = 5
	state = TickPipeline.Apply(state)
	if state.HasError() {
		t.Errorf("Expected overlay cleared after 5s, got %v", *state.ErrorDuration)
	}
}
