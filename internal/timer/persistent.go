// Purpose: Long-lived variant that ticks on an interval and listens for clicks on stdin.
// Exports: Timer, NewTimer, ParseClick.
// Role: Owner of the one shared State; both activities go through its lock.
// Invariants: Every read-modify-write of the State holds mu and runs a full pure
// transition; external commands run only after mu is released.
// Notes: Errors from effects are re-applied to the latest State in a second locked update.
package timer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type Timer struct {
	mu       sync.Mutex
	state    State
	executor *Executor
	clock    Clock
	logger   *slog.Logger
	interval time.Duration
}

func NewTimer(state State, executor *Executor, clock Clock, logger *slog.Logger, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Timer{
		state:    state,
		executor: executor,
		clock:    clock,
		logger:   logger,
		interval: interval,
	}
}

// State returns the current snapshot value.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) update(fn func(State) State) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = fn(t.state)
	return t.state
}

// transition runs pipeline under the lock and returns the effects it requested along
// with the State they should read.
func (t *Timer) transition(prepare func(State) State, pipeline Pipeline) (State, Effects) {
	var fx Effects
	view := t.update(func(s State) State {
		s, fx = Split(pipeline.Apply(prepare(s)))
		return s
	})
	return view, fx
}

func (t *Timer) perform(ctx context.Context, view State, fx Effects) {
	if !fx.Any() {
		return
	}
	outcome := t.executor.Perform(ctx, view, fx)
	if outcome.Input == nil && outcome.Err == nil {
		return
	}
	t.update(func(s State) State {
		return outcome.Apply(s, t.clock.Now())
	})
}

// Tick advances the clock to now.
func (t *Timer) Tick(ctx context.Context) {
	now := t.clock.Now()
	view, fx := t.transition(func(s State) State {
		s.NewTimestamp = now
		return s
	}, TickPipeline)
	t.perform(ctx, view, fx)
}

// Click applies a button event.
func (t *Timer) Click(ctx context.Context, button Button) {
	view, fx := t.transition(func(s State) State {
		s.Button = button
		return s
	}, ClickPipeline)
	t.perform(ctx, view, fx)
}

// Fail shows err as an overlay.
func (t *Timer) Fail(err error) {
	t.logger.Error("persistent timer error", "err", err)
	t.update(func(s State) State {
		return AddError(s, err, t.clock.Now())
	})
}

// Snapshot serializes the current State, folding template errors into an overlay.
func (t *Timer) Snapshot() Snapshot {
	var snap Snapshot
	t.update(func(s State) State {
		s, snap = SnapshotOrError(s, t.clock.Now())
		return s
	})
	return snap
}

// ParseClick decodes one line of the i3bar click stream. Lines may carry the
// stream's leading "[" or "," separators. ok is false for lines with no event.
func ParseClick(line string) (button Button, ok bool, err error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "[")
	line = strings.TrimSpace(strings.TrimPrefix(line, ","))
	if line == "" {
		return ButtonNone, false, nil
	}
	decoder := json.NewDecoder(bytes.NewBufferString(line))
	decoder.UseNumber()
	var event map[string]any
	if err := decoder.Decode(&event); err != nil {
		return ButtonNone, false, fmt.Errorf("click event: %w", err)
	}
	raw, present := event["button"]
	if !present || raw == nil {
		return ButtonNone, false, nil
	}
	button, err = ParseButton(fmt.Sprint(raw))
	if err != nil {
		return ButtonNone, false, err
	}
	return button, button != ButtonNone, nil
}

func (t *Timer) listen(ctx context.Context, clicks io.Reader, refresh chan<- struct{}) {
	scanner := bufio.NewScanner(clicks)
	for scanner.Scan() {
		button, ok, err := ParseClick(scanner.Text())
		switch {
		case err != nil:
			t.Fail(err)
		case ok:
			t.logger.Debug("clicked", "button", button)
			t.Click(ctx, button)
		default:
			continue
		}
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
	if err := scanner.Err(); err != nil {
		t.logger.Error("click stream failed", "err", err)
		return
	}
	t.logger.Debug("click stream closed")
}

// Run prints a snapshot line per tick and after every click until ctx is done.
func (t *Timer) Run(ctx context.Context, clicks io.Reader, out io.Writer) error {
	refresh := make(chan struct{}, 1)
	if clicks != nil {
		go t.listen(ctx, clicks, refresh)
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if err := writeJSON(out, t.Snapshot()); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.Tick(ctx)
		case <-refresh:
		}
	}
}
