// Purpose: Parse and apply the free-text reply of the read_input_command.
// Exports: InputKind, Input, ParseInput, ApplyInput.
// Role: Backs the middle-click action via the executor.
// Invariants: ApplyInput leaves start_time >= 0; a rejected Input leaves State unchanged.
// Notes: Grammar, one line of command stdout:
//
//	""                 no-op
//	key=value          set an allow-listed free-text property
//	color_option=name  switch the color palette
//	+<time> / -<time>  add to / subtract from start_time
//	<time>             set start_time and reset elapsed time
//
// <time> is bare seconds, a clock pattern (1:02:03), or a pretty pattern (1h2m3s).
package timer

import (
	"strings"
)

type InputKind string

const (
	InputVoid           InputKind = "void"
	InputTimeSet        InputKind = "time_set"
	InputTimeAddition   InputKind = "time_addition"
	InputTimeReduction  InputKind = "time_reduction"
	InputSetProperty    InputKind = "set_property"
	InputSetColorOption InputKind = "set_color_option"
)

// Input is a parsed line. Seconds is set for time kinds; Key/Value for property kinds.
type Input struct {
	Kind    InputKind
	Seconds int
	Key     string
	Value   string
}

var settableProperties = map[string]struct{}{
	"timer_name":         {},
	"text_format":        {},
	"font":               {},
	"alarm_command":      {},
	"read_input_command": {},
	"running_label":      {},
	"stopped_label":      {},
	"paused_label":       {},
}

func ParseInput(raw string) (Input, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Input{Kind: InputVoid}, nil
	}
	if key, value, ok := strings.Cut(text, "="); ok {
		if _, allowed := settableProperties[key]; allowed {
			return Input{Kind: InputSetProperty, Key: key, Value: value}, nil
		}
		if key == "color_option" {
			return Input{Kind: InputSetColorOption, Key: key, Value: value}, nil
		}
		return Input{}, newError(ErrBadPropertyPattern, "unknown property: %s", key)
	}
	if rest, ok := strings.CutPrefix(text, "+"); ok {
		return parseRelative(rest, InputTimeAddition)
	}
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		return parseRelative(rest, InputTimeReduction)
	}
	return parseTimeSet(text)
}

func parseRelative(text string, kind InputKind) (Input, error) {
	input, err := ParseInput(text)
	if err != nil || input.Kind != InputTimeSet {
		return Input{}, newError(ErrBadTimePattern, "%s is not a time pattern", text)
	}
	input.Kind = kind
	return input, nil
}

func parseTimeSet(text string) (Input, error) {
	var (
		seconds int
		err     error
	)
	switch {
	case clockTimeRegex.MatchString(text):
		seconds, err = ClockToSeconds(text)
	case prettyTimeRegex.MatchString(text):
		seconds, err = PrettyToSeconds(text)
	case isDigits(text):
		seconds, err = atoiTime(text, ErrBadTimePattern)
	default:
		return Input{}, newError(ErrBadValue, "invalid input: %s", text)
	}
	if err != nil {
		return Input{}, err
	}
	return Input{Kind: InputTimeSet, Seconds: seconds}, nil
}

// ApplyInput commits a parsed Input. text_format is dry-run formatted first.
func ApplyInput(state State, input Input) (State, error) {
	switch input.Kind {
	case InputVoid:
		return state, nil
	case InputTimeSet:
		state.StartTime = max(input.Seconds, 0)
		state.ElapsedTime = 0
	case InputTimeAddition:
		state.StartTime = saturatingAdd(state.StartTime, input.Seconds)
	case InputTimeReduction:
		state.StartTime = max(state.StartTime-input.Seconds, 0)
	case InputSetColorOption:
		option, err := ParseColorOption(input.Value)
		if err != nil {
			return state, err
		}
		state.ColorOption = option
	case InputSetProperty:
		return setProperty(state, input.Key, input.Value)
	default:
		return state, newError(ErrBadValue, "unrecognized input %s", input.Kind)
	}
	return state, nil
}

func setProperty(state State, key, value string) (State, error) {
	switch key {
	case "timer_name":
		state.TimerName = value
	case "text_format":
		if _, err := state.Format(value); err != nil {
			return state, err
		}
		state.TextFormat = value
	case "font":
		state.Font = value
	case "alarm_command":
		state.AlarmCommand = value
	case "read_input_command":
		state.ReadInputCommand = value
	case "running_label":
		state.RunningLabel = value
	case "stopped_label":
		state.StoppedLabel = value
	case "paused_label":
		state.PausedLabel = value
	default:
		return state, newError(ErrBadPropertyPattern, "unknown property: %s", key)
	}
	return state, nil
}
