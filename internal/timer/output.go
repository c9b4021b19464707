// JSON snapshot shape and writer.
package timer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

const (
	errorColor      = "#ffffff"
	errorBackground = "#ff0000"
)

// Snapshot is the serialized State. Its keys are fed back as the configuration mapping
// of the next invocation, so optional fields are always written; empty means unset.
type Snapshot struct {
	FullText          string `json:"full_text"`
	ShortText         string `json:"short_text"`
	Color             string `json:"color,omitempty"`
	Background        string `json:"background,omitempty"`
	Label             string `json:"label"`
	StartTime         int    `json:"start_time"`
	ElapsedTime       string `json:"elapsed_time"`
	Increments        int    `json:"increments"`
	TimerState        string `json:"timer_state"`
	TimerName         string `json:"timer_name"`
	TextFormat        string `json:"text_format"`
	ColorOption       string `json:"color_option"`
	Font              string `json:"font"`
	AlarmCommand      string `json:"alarm_command"`
	ReadInputCommand  string `json:"read_input_command"`
	RunningLabel      string `json:"running_label"`
	StoppedLabel      string `json:"stopped_label"`
	PausedLabel       string `json:"paused_label"`
	OldTimestamp      string `json:"old_timestamp"`
	ErrorMessage      string `json:"error_message"`
	ShortErrorMessage string `json:"short_error_message"`
	ErrorDuration     string `json:"error_duration"`
}

// Snapshot serializes s. old_timestamp carries the new timestamp on purpose: it becomes
// the previous instant of the next invocation.
func (s State) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		Label:            s.Label(),
		StartTime:        s.StartTime,
		ElapsedTime:      formatFloat(s.ElapsedTime),
		Increments:       s.Increments,
		TimerState:       string(s.TimerState),
		TimerName:        s.TimerName,
		TextFormat:       s.TextFormat,
		ColorOption:      string(s.ColorOption),
		Font:             s.Font,
		AlarmCommand:     s.AlarmCommand,
		ReadInputCommand: s.ReadInputCommand,
		RunningLabel:     s.RunningLabel,
		StoppedLabel:     s.StoppedLabel,
		PausedLabel:      s.PausedLabel,
		OldTimestamp:     formatFloat(s.NewTimestamp),
	}

	if s.HasError() {
		snap.FullText = fmt.Sprintf("%s(%s)", s.ErrorMessage, strconv.FormatFloat(*s.ErrorDuration, 'f', 1, 64))
		snap.ShortText = s.ShortErrorMessage
		snap.Color = errorColor
		snap.Background = errorBackground
		snap.ErrorMessage = s.ErrorMessage
		snap.ShortErrorMessage = s.ShortErrorMessage
		snap.ErrorDuration = formatFloat(*s.ErrorDuration)
		return snap, nil
	}

	decoration, err := s.FullText()
	if err != nil {
		return Snapshot{}, err
	}
	snap.FullText = decoration.Text
	snap.ShortText = decoration.Text
	snap.Color = decoration.Color
	snap.Background = decoration.Background
	return snap, nil
}

// SnapshotOrError serializes s, falling back to an overlay if the text template fails.
// The overlay path never formats, so the second attempt cannot fail.
func SnapshotOrError(s State, now float64) (State, Snapshot) {
	snap, err := s.Snapshot()
	if err == nil {
		return s, snap
	}
	s = AddError(s, err, now)
	snap, _ = s.Snapshot()
	return s, snap
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
