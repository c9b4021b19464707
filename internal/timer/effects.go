// Purpose: Execute the side effects requested by reducer flags and fold failures back in.
// Exports: Clock, Runner, ShellRunner, Effects, Split, Outcome, Executor.
// Role: Boundary between the pure reducer and external commands.
// Invariants: Flags are cleared before any command runs; the alarm is never retried;
// no failure escapes Run; it becomes an overlay instead.
// Notes: Perform does the I/O without touching State so callers may hold no lock while it runs.
package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// outputWaitDelay bounds how long Output waits on pipes after the process group is killed.
const outputWaitDelay = 500 * time.Millisecond

// Clock returns wall-clock seconds since the Unix epoch.
type Clock interface {
	Now() float64
}

type SystemClock struct{}

func (SystemClock) Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Runner invokes shell command lines.
type Runner interface {
	// Start launches command and returns without waiting for it.
	Start(ctx context.Context, command string) error
	// Output runs command to completion and returns its stdout.
	Output(ctx context.Context, command string) (string, error)
}

// ShellRunner runs commands through sh -c. Timeout bounds Output; zero means no bound.
type ShellRunner struct {
	Timeout time.Duration
}

func (r ShellRunner) Start(_ context.Context, command string) error {
	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("alarm_command: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (r ShellRunner) Output(ctx context.Context, command string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	// sh gets its own process group so cancellation also reaches pipeline members
	// that would otherwise keep stdout open.
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = outputWaitDelay
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("read_input_command timed out after %s", r.Timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				return "", fmt.Errorf("read_input_command: %s", stderr)
			}
		}
		return "", fmt.Errorf("read_input_command: %w", err)
	}
	return string(out), nil
}

// Effects are the side-effect requests taken off a State.
type Effects struct {
	Alarm     bool
	ReadInput bool
}

func (fx Effects) Any() bool {
	return fx.Alarm || fx.ReadInput
}

// Split clears both request flags and returns them separately.
func Split(state State) (State, Effects) {
	fx := Effects{Alarm: state.ExecuteAlertCommand, ReadInput: state.ExecuteReadInputCommand}
	state.ExecuteAlertCommand = false
	state.ExecuteReadInputCommand = false
	return state, fx
}

// Outcome is the result of external work, to be applied to the latest State.
type Outcome struct {
	Input *Input
	Err   error
}

// Apply commits the outcome: the parsed input first, then any error as an overlay.
func (o Outcome) Apply(state State, now float64) State {
	if o.Input != nil {
		next, err := ApplyInput(state, *o.Input)
		if err != nil {
			return AddError(state, err, now)
		}
		state = next
	}
	if o.Err != nil {
		return AddError(state, o.Err, now)
	}
	return state
}

type Executor struct {
	runner Runner
	clock  Clock
	logger *slog.Logger
}

func NewExecutor(runner Runner, clock Clock, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{runner: runner, clock: clock, logger: logger}
}

// Run splits the flags off state, performs them, and applies the outcome.
func (e *Executor) Run(ctx context.Context, state State) State {
	state, fx := Split(state)
	if !fx.Any() {
		return state
	}
	return e.Perform(ctx, state, fx).Apply(state, e.clock.Now())
}

// Perform runs the requested commands against a read-only view of state.
func (e *Executor) Perform(ctx context.Context, state State, fx Effects) Outcome {
	var outcome Outcome
	if fx.Alarm && state.AlarmCommand != "" {
		if err := e.startAlarm(ctx, state); err != nil {
			e.logger.Error("alarm command failed", "err", err)
			outcome.Err = err
		}
	}
	if fx.ReadInput && state.ReadInputCommand != "" {
		input, err := e.readInput(ctx, state)
		if err != nil {
			e.logger.Error("read input failed", "err", err)
			outcome.Err = err
		} else {
			outcome.Input = &input
		}
	}
	return outcome
}

func (e *Executor) startAlarm(ctx context.Context, state State) error {
	command, err := state.AlarmCommandLine()
	if err != nil {
		return err
	}
	e.logger.Debug("starting alarm", "command", command)
	return e.runner.Start(ctx, command)
}

func (e *Executor) readInput(ctx context.Context, state State) (Input, error) {
	command, err := state.ReadInputCommandLine()
	if err != nil {
		return Input{}, err
	}
	e.logger.Debug("reading input", "command", command)
	raw, err := e.runner.Output(ctx, command)
	if err != nil {
		return Input{}, err
	}
	input, err := ParseInput(raw)
	if err != nil {
		return Input{}, err
	}
	e.logger.Debug("parsed input", "kind", input.Kind)
	return input, nil
}
