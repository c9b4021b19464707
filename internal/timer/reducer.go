// Purpose: Pure state transitions applied as ordered pipelines.
// Exports: Step, Pipeline, ClickPipeline, TickPipeline, Reduce.
// Role: The only place timer semantics live; no I/O and no wall-clock reads.
// Invariants: Click steps run middle, right, left, scroll-down, scroll-up, then reset.
// Tick steps run elapsed advance, error decay, then timestamp rollover.
// Notes: Each click step checks Button itself, so at most one acts per invocation.
package timer

import "math"

// Step is a single pure transition.
type Step func(State) State

// Pipeline applies its steps left to right.
type Pipeline []Step

func (p Pipeline) Apply(state State) State {
	for _, step := range p {
		state = step(state)
	}
	return state
}

var ClickPipeline = Pipeline{
	handleMiddleClick,
	handleRightClick,
	handleLeftClick,
	handleScrollDown,
	handleScrollUp,
	resetTransientState,
}

var TickPipeline = Pipeline{
	advanceElapsedTime,
	consumeErrorTime,
	rolloverTimestamp,
}

// Reduce runs the click pipeline when a button event is present, the tick pipeline otherwise.
func Reduce(state State) State {
	if state.Button != ButtonNone {
		return ClickPipeline.Apply(state)
	}
	return TickPipeline.Apply(state)
}

func handleMiddleClick(state State) State {
	if state.Button != ButtonMiddle || state.ReadInputCommand == "" {
		return state
	}
	state.ExecuteReadInputCommand = true
	return state
}

func handleRightClick(state State) State {
	if state.Button != ButtonRight {
		return state
	}
	state.TimerState = StateStopped
	state.ElapsedTime = 0
	return state
}

func handleLeftClick(state State) State {
	if state.Button != ButtonLeft {
		return state
	}
	if state.TimerState == StateRunning {
		state.TimerState = StatePaused
	} else {
		state.TimerState = StateRunning
	}
	return state
}

func handleScrollDown(state State) State {
	if state.Button != ButtonScrollDown {
		return state
	}
	state.StartTime = max(state.StartTime-state.Increments, 0)
	return state
}

func handleScrollUp(state State) State {
	if state.Button != ButtonScrollUp {
		return state
	}
	state.StartTime = saturatingAdd(state.StartTime, state.Increments)
	return state
}

func resetTransientState(state State) State {
	state.Button = ButtonNone
	state.ExecuteAlertCommand = false
	return state
}

func delta(state State) float64 {
	return state.NewTimestamp - *state.OldTimestamp
}

// advanceElapsedTime arms the alert only on the tick that crosses start_time.
func advanceElapsedTime(state State) State {
	if state.TimerState != StateRunning || state.OldTimestamp == nil {
		return state
	}
	newElapsed := math.Max(state.ElapsedTime+delta(state), 0)
	startTime := float64(state.StartTime)
	state.ExecuteAlertCommand = state.ElapsedTime < startTime && newElapsed >= startTime
	state.ElapsedTime = newElapsed
	return state
}

func consumeErrorTime(state State) State {
	if state.ErrorDuration == nil || state.OldTimestamp == nil {
		return state
	}
	remaining := *state.ErrorDuration - delta(state)
	if remaining > 0 {
		state.ErrorDuration = floatPtr(remaining)
		return state
	}
	return state.clearError()
}

func rolloverTimestamp(state State) State {
	state.OldTimestamp = floatPtr(state.NewTimestamp)
	return state
}
