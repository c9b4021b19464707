// Purpose: Turn errors into the timed overlay shown in place of the timer text.
// Exports: AddError.
// Role: Called wherever a failure must surface in the block rather than abort it.
// Invariants: Domain errors show for 5s, anything else for 7s; the short text fits 40 cells.
// Notes: AddError stamps NewTimestamp so the overlay decays from the moment it was raised.
package timer

import (
	"errors"

	"github.com/mattn/go-runewidth"
)

const (
	domainErrorDuration   = 5.0
	externalErrorDuration = 7.0
	shortErrorWidth       = 40
)

// AddError replaces any active overlay with one describing err. Domain errors carry a
// prepared message and show for less time than external failures.
func AddError(state State, err error, now float64) State {
	if err == nil {
		return state
	}
	message := err.Error()
	duration := externalErrorDuration
	var timerErr *Error
	if errors.As(err, &timerErr) {
		message = timerErr.Message
		duration = domainErrorDuration
	}
	state.ErrorMessage = message
	state.ShortErrorMessage = runewidth.Truncate(message, shortErrorWidth, "")
	state.ErrorDuration = floatPtr(duration)
	state.NewTimestamp = now
	return state
}
