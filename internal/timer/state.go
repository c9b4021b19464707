// Purpose: Define the immutable timer State and its derived views.
// Exports: State, DefaultState, and read-only accessors.
// Role: Leaf value threaded through the reducer once per invocation.
// Invariants: ElapsedTime >= 0, StartTime >= 0; ErrorDuration is nil or > 0.
// Notes: Transitions return copies; pointer fields are never written through.
package timer

import "fmt"

// State is one timer's configuration plus transient status. Pass it by value.
type State struct {
	TextFormat       string
	TimerName        string
	RunningLabel     string
	StoppedLabel     string
	PausedLabel      string
	Font             string
	AlarmCommand     string
	ReadInputCommand string
	ColorOption      ColorOption

	StartTime   int
	ElapsedTime float64
	Increments  int
	TimerState  TimerState

	OldTimestamp *float64
	NewTimestamp float64

	ExecuteAlertCommand     bool
	ExecuteReadInputCommand bool
	Button                  Button

	ErrorMessage      string
	ShortErrorMessage string
	ErrorDuration     *float64
}

const (
	defaultTextFormat   = "{remaining_time:pretty}"
	defaultTimerName    = "timer"
	defaultStartTime    = 300
	defaultIncrements   = 60
	defaultRunningLabel = "running:"
	defaultStoppedLabel = "timer:"
	defaultPausedLabel  = "paused:"
)

// DefaultState is the State an empty configuration mapping produces.
func DefaultState(now float64) State {
	return State{
		TextFormat:   defaultTextFormat,
		TimerName:    defaultTimerName,
		RunningLabel: defaultRunningLabel,
		StoppedLabel: defaultStoppedLabel,
		PausedLabel:  defaultPausedLabel,
		ColorOption:  ColorNever,
		StartTime:    defaultStartTime,
		Increments:   defaultIncrements,
		TimerState:   StateStopped,
		NewTimestamp: now,
		Button:       ButtonNone,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// Label is the prefix shown for the current timer state.
func (s State) Label() string {
	switch s.TimerState {
	case StateRunning:
		return s.RunningLabel
	case StatePaused:
		return s.PausedLabel
	default:
		return s.StoppedLabel
	}
}

func (s State) Remaining() float64 {
	return float64(s.StartTime) - s.ElapsedTime
}

// HasError reports whether the error overlay is active.
func (s State) HasError() bool {
	return s.ErrorDuration != nil
}

func (s State) clearError() State {
	s.ErrorMessage = ""
	s.ShortErrorMessage = ""
	s.ErrorDuration = nil
	return s
}

// Format expands a text template against this State's clock values.
func (s State) Format(text string) (string, error) {
	return expandTemplate(text, templateValues{
		elapsed:   s.ElapsedTime,
		start:     s.StartTime,
		remaining: s.Remaining(),
		timerName: s.TimerName,
	})
}

func (s State) AlarmCommandLine() (string, error) {
	return s.Format(s.AlarmCommand)
}

func (s State) ReadInputCommandLine() (string, error) {
	return s.Format(s.ReadInputCommand)
}

// FullText is the formatted text with color decoration and font applied.
func (s State) FullText() (Decoration, error) {
	text, err := s.Format(s.TextFormat)
	if err != nil {
		return Decoration{}, err
	}
	decoration := Colorize(text, s.ColorOption, s.ElapsedTime, s.Remaining())
	if s.Font != "" {
		decoration.Text = setFont(decoration.Text, s.Font)
	}
	return decoration, nil
}

func setFont(text, font string) string {
	return fmt.Sprintf("<span font_family='%s'>%s</span>", font, text)
}
