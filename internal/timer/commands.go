// Command implementations behind the cobra layer: block, persist, preview.
//
// i3blocks runs `i3timer block` once per interval and once per click, exporting the
// previous output keys as environment variables:
//
//	[timer]
//	command=i3timer block
//	interval=1
//	format=json
//
// The block command always prints exactly one JSON object, even when the configuration
// is malformed; failures become the error overlay instead of an exit status.
package timer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Env carries the process collaborators so commands can be driven from tests.
type Env struct {
	Lookup func(string) (string, bool)
	In     io.Reader
	Out    io.Writer
	Runner Runner
	Clock  Clock
	Logger *slog.Logger
}

// DefaultEnv wires the real process environment.
func DefaultEnv(opts GlobalOptions, logger *slog.Logger) Env {
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return Env{
		Lookup: os.LookupEnv,
		In:     os.Stdin,
		Out:    os.Stdout,
		Runner: ShellRunner{Timeout: timeout},
		Clock:  SystemClock{},
		Logger: logger,
	}
}

func (env Env) logger() *slog.Logger {
	if env.Logger == nil {
		return slog.Default()
	}
	return env.Logger
}

// loadState builds the invocation's State. On failure it returns the default State
// carrying an overlay for the error. Buttons i3bar sends that the timer has no action
// for (horizontal scroll, back, forward) are dropped so the run becomes a tick.
func loadState(opts GlobalOptions, env Env) State {
	now := env.Clock.Now()
	mapping, err := BuildMapping(opts, env.Lookup)
	if err != nil {
		env.logger().Error("build config mapping", "err", err)
		return AddError(DefaultState(now), err, env.Clock.Now())
	}
	if raw, ok := mapping["button"]; ok {
		if _, err := ParseButton(raw); err != nil {
			env.logger().Warn("ignoring unsupported button", "button", raw)
			delete(mapping, "button")
		}
	}
	env.logger().Debug("loaded mapping", "mapping", mapping)
	state, err := LoadState(mapping, now)
	if err != nil {
		env.logger().Error("load state", "err", err)
		return AddError(DefaultState(now), err, env.Clock.Now())
	}
	return state
}

func panicError(r any, env Env) error {
	err := fmt.Errorf("internal error: %v", r)
	env.logger().Error("recovered panic", "err", err)
	return err
}

func recoverInto(state *State, env Env) {
	if r := recover(); r != nil {
		*state = AddError(*state, panicError(r, env), env.Clock.Now())
	}
}

func reduceOnce(ctx context.Context, opts GlobalOptions, env Env) (state State) {
	state = DefaultState(env.Clock.Now())
	defer recoverInto(&state, env)

	state = loadState(opts, env)
	state = Reduce(state)
	return NewExecutor(env.Runner, env.Clock, env.logger()).Run(ctx, state)
}

// blockSnapshot reduces and renders one invocation. A panic anywhere in either step
// still yields a snapshot, carrying the overlay.
func blockSnapshot(ctx context.Context, opts GlobalOptions, env Env) (snap Snapshot) {
	var state State
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if state == (State{}) {
			state = DefaultState(env.Clock.Now())
		}
		state = AddError(state, panicError(r, env), env.Clock.Now())
		snap, _ = state.Snapshot()
	}()

	state = reduceOnce(ctx, opts, env)
	_, snap = SnapshotOrError(state, env.Clock.Now())
	return snap
}

// RunBlock performs one i3blocks invocation.
func RunBlock(ctx context.Context, opts GlobalOptions, env Env) error {
	snap := blockSnapshot(ctx, opts, env)
	env.logger().Debug("snapshot", "full_text", snap.FullText, "timer_state", snap.TimerState)
	return writeJSON(env.Out, snap)
}

// RunPersist keeps one State in memory, ticking every opts.TickInterval and reading click
// events from env.In (i3blocks interval=persist).
func RunPersist(ctx context.Context, opts GlobalOptions, env Env) error {
	state := reduceOnce(ctx, opts, env)
	executor := NewExecutor(env.Runner, env.Clock, env.logger())
	timer := NewTimer(state, executor, env.Clock, env.logger(), opts.TickInterval)
	return timer.Run(ctx, env.In, env.Out)
}
