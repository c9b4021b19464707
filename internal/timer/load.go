// Purpose: Build a validated State from an untyped key→string configuration mapping.
// Exports: LoadState, ConfigKeys.
// Role: Entry point of every invocation; the mapping comes from config file, env, and flags.
// Invariants: All fields are parsed before the State is assembled, so a bad key never
// partially applies.
// Notes: Absent keys take defaults; empty nullable floats read as unset.
package timer

import (
	"math"
	"strconv"
	"strings"
)

// ConfigKeys lists every key LoadState reads. The environment is filtered by it.
var ConfigKeys = []string{
	"text_format",
	"timer_name",
	"start_time",
	"elapsed_time",
	"old_timestamp",
	"increments",
	"timer_state",
	"button",
	"color_option",
	"colorize",
	"font",
	"alarm_command",
	"read_input_command",
	"running_label",
	"stopped_label",
	"paused_label",
	"error_message",
	"short_error_message",
	"error_duration",
}

func getString(mapping map[string]string, key, def string) string {
	if value, ok := mapping[key]; ok {
		return value
	}
	return def
}

func getInt(mapping map[string]string, key string, def int) (int, error) {
	raw, ok := mapping[key]
	if !ok {
		return def, nil
	}
	raw = strings.TrimSpace(raw)
	if !isDigits(raw) {
		return 0, newError(ErrBadInteger, "%s=%q not an int", key, raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newError(ErrBadInteger, "%s=%q out of range", key, raw)
	}
	return n, nil
}

func parseFloat(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newError(ErrBadFloat, "%s=%q not a float", key, raw)
	}
	return v, nil
}

func getFloat(mapping map[string]string, key string, def float64) (float64, error) {
	raw, ok := mapping[key]
	if !ok {
		return def, nil
	}
	return parseFloat(key, raw)
}

func getFloatOrNil(mapping map[string]string, key string) (*float64, error) {
	raw, ok := mapping[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseFloat(key, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func getEnum[T ~string](mapping map[string]string, key string, def T, parse func(string) (T, error)) (T, error) {
	raw, ok := mapping[key]
	if !ok {
		return def, nil
	}
	return parse(raw)
}

// LoadState parses mapping into a State stamped with now as its new timestamp.
func LoadState(mapping map[string]string, now float64) (State, error) {
	state := DefaultState(now)

	startTime, err := getInt(mapping, "start_time", defaultStartTime)
	if err != nil {
		return State{}, err
	}
	increments, err := getInt(mapping, "increments", defaultIncrements)
	if err != nil {
		return State{}, err
	}
	elapsed, err := getFloat(mapping, "elapsed_time", 0)
	if err != nil {
		return State{}, err
	}
	oldTimestamp, err := getFloatOrNil(mapping, "old_timestamp")
	if err != nil {
		return State{}, err
	}
	errorDuration, err := getFloatOrNil(mapping, "error_duration")
	if err != nil {
		return State{}, err
	}
	timerState, err := getEnum(mapping, "timer_state", StateStopped, ParseTimerState)
	if err != nil {
		return State{}, err
	}
	button, err := getEnum(mapping, "button", ButtonNone, ParseButton)
	if err != nil {
		return State{}, err
	}
	colorKey := "colorize"
	if _, ok := mapping["color_option"]; ok {
		colorKey = "color_option"
	}
	colorOption, err := getEnum(mapping, colorKey, ColorNever, ParseColorOption)
	if err != nil {
		return State{}, err
	}

	state.TextFormat = getString(mapping, "text_format", defaultTextFormat)
	state.TimerName = getString(mapping, "timer_name", defaultTimerName)
	state.RunningLabel = getString(mapping, "running_label", defaultRunningLabel)
	state.StoppedLabel = getString(mapping, "stopped_label", defaultStoppedLabel)
	state.PausedLabel = getString(mapping, "paused_label", defaultPausedLabel)
	state.Font = getString(mapping, "font", "")
	state.AlarmCommand = getString(mapping, "alarm_command", "")
	state.ReadInputCommand = getString(mapping, "read_input_command", "")
	state.ColorOption = colorOption
	state.StartTime = startTime
	state.Increments = increments
	state.ElapsedTime = math.Max(elapsed, 0)
	state.TimerState = timerState
	state.Button = button
	state.OldTimestamp = oldTimestamp

	if errorDuration != nil && *errorDuration > 0 {
		state.ErrorMessage = getString(mapping, "error_message", "")
		state.ShortErrorMessage = getString(mapping, "short_error_message", "")
		state.ErrorDuration = errorDuration
	}
	return state, nil
}
