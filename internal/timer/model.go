// Purpose: Core domain enums, the error taxonomy, and CLI option types.
// Exports: Button, TimerState, ColorOption and their parsers; Err* sentinels; Error; GlobalOptions.
// Role: Leaf vocabulary shared by every other file in the package.
// Invariants: Every sentinel wraps ErrBadValue or ErrBadFormat so errors.Is can classify it.
// Notes: Parsers trim and lowercase their input; ParseButton also takes the button name.
package timer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Button string

const (
	ButtonNone       Button = ""
	ButtonLeft       Button = "1"
	ButtonMiddle     Button = "2"
	ButtonRight      Button = "3"
	ButtonScrollUp   Button = "4"
	ButtonScrollDown Button = "5"
)

var buttonNames = map[Button]string{
	ButtonNone:       "none",
	ButtonLeft:       "left",
	ButtonMiddle:     "middle",
	ButtonRight:      "right",
	ButtonScrollUp:   "scroll_up",
	ButtonScrollDown: "scroll_down",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return string(b)
}

// ParseButton accepts either the i3bar button number or the lowercase name.
func ParseButton(value string) (Button, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	for button, name := range buttonNames {
		if value == string(button) || value == name {
			return button, nil
		}
	}
	return ButtonNone, badEnum(value, "Button")
}

type TimerState string

const (
	StateStopped TimerState = "stopped"
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
)

func ParseTimerState(value string) (TimerState, error) {
	switch TimerState(strings.TrimSpace(strings.ToLower(value))) {
	case StateStopped:
		return StateStopped, nil
	case StateRunning:
		return StateRunning, nil
	case StatePaused:
		return StatePaused, nil
	default:
		return "", badEnum(value, "TimerState")
	}
}

type ColorOption string

const (
	ColorNever                 ColorOption = "never"
	ColorColorful              ColorOption = "colorful"
	ColorColorfulOnNegatives   ColorOption = "colorful_on_negatives"
	ColorRedOnNegatives        ColorOption = "red_on_negatives"
	ColorPulsatingTrafficLight ColorOption = "pulsating_traffic_light"
	ColorRainbowRoad           ColorOption = "rainbow_road"
	ColorBackgroundRainbowRoad ColorOption = "background_rainbow_road"
)

var colorOptions = []ColorOption{
	ColorNever,
	ColorColorful,
	ColorColorfulOnNegatives,
	ColorRedOnNegatives,
	ColorPulsatingTrafficLight,
	ColorRainbowRoad,
	ColorBackgroundRainbowRoad,
}

func ParseColorOption(value string) (ColorOption, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	for _, option := range colorOptions {
		if value == string(option) {
			return option, nil
		}
	}
	return "", badEnum(value, "ColorOption")
}

// Error taxonomy. Children wrap their parent so errors.Is(ErrBadInteger, ErrBadValue) holds.
var (
	ErrBadValue           = errors.New("bad value")
	ErrBadFormat          = errors.New("bad format")
	ErrBadTimePattern     = fmt.Errorf("bad time pattern: %w", ErrBadValue)
	ErrBadPropertyPattern = fmt.Errorf("bad property pattern: %w", ErrBadValue)
	ErrBadPrettyTime      = fmt.Errorf("bad pretty time: %w", ErrBadTimePattern)
	ErrBadClockTime       = fmt.Errorf("bad clock time: %w", ErrBadTimePattern)
	ErrBadInteger         = fmt.Errorf("bad integer: %w", ErrBadValue)
	ErrBadFloat           = fmt.Errorf("bad float: %w", ErrBadValue)
	ErrBadEnum            = fmt.Errorf("bad enum: %w", ErrBadValue)
	ErrBadColor           = fmt.Errorf("bad color: %w", ErrBadValue)
)

// Error is raised by the timer's own validation. Message is kept short because it is
// displayed in the status bar.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func badEnum(raw, enumName string) *Error {
	return newError(ErrBadEnum, "%q is not a %s", raw, enumName)
}

// GlobalOptions carries flags shared by every subcommand.
type GlobalOptions struct {
	ConfigPath     string
	Overrides      []string
	LogFile        string
	Verbose        bool
	CommandTimeout time.Duration
	TickInterval   time.Duration
}

const (
	DefaultCommandTimeout = 5 * time.Second
	DefaultTickInterval   = 100 * time.Millisecond
)
