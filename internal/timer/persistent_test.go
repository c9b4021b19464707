package timer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimer(state State, runner *fakeRunner, clock *fakeClock) *Timer {
	return NewTimer(state, NewExecutor(runner, clock, nil), clock, nil, 10*time.Millisecond)
}

func TestParseClick(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		button Button
		ok     bool
	}{
		{name: "stream header", line: "[", ok: false},
		{name: "blank", line: "", ok: false},
		{name: "first event", line: `{"name":"timer","button":1,"x":10}`, button: ButtonLeft, ok: true},
		{name: "later event", line: `,{"name":"timer","button":3}`, button: ButtonRight, ok: true},
		{name: "header and event", line: `[{"button":5}`, button: ButtonScrollDown, ok: true},
		{name: "string button", line: `{"button":"2"}`, button: ButtonMiddle, ok: true},
		{name: "no button", line: `{"name":"timer"}`, ok: false},
		{name: "button zero", line: `{"button":""}`, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			button, ok, err := ParseClick(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.button, button)
		})
	}
}

func TestParseClickErrors(t *testing.T) {
	_, _, err := ParseClick(`{"button":`)
	assert.Error(t, err)

	_, _, err = ParseClick(`{"button":9}`)
	assert.True(t, errors.Is(err, ErrBadEnum))
}

func TestTimerTickAdvancesAndAlarms(t *testing.T) {
	runner := &fakeRunner{}
	clock := &fakeClock{now: 100}
	state := DefaultState(100)
	state.StartTime = 2
	state.AlarmCommand = "beep"
	state.TimerState = StateRunning
	timer := newTestTimer(state, runner, clock)
	ctx := context.Background()

	timer.Tick(ctx)
	assert.Equal(t, 0.0, timer.State().ElapsedTime)

	for range 3 {
		clock.Advance(1)
		timer.Tick(ctx)
	}
	assert.Equal(t, 3.0, timer.State().ElapsedTime)
	assert.Equal(t, []string{"beep"}, runner.Started())
	assert.False(t, timer.State().ExecuteAlertCommand)
}

func TestTimerClick(t *testing.T) {
	runner := &fakeRunner{output: "color_option=rainbow_road"}
	clock := &fakeClock{now: 0}
	state := DefaultState(0)
	state.ReadInputCommand = "menu"
	timer := newTestTimer(state, runner, clock)
	ctx := context.Background()

	timer.Click(ctx, ButtonLeft)
	assert.Equal(t, StateRunning, timer.State().TimerState)

	timer.Click(ctx, ButtonScrollUp)
	assert.Equal(t, 360, timer.State().StartTime)

	timer.Click(ctx, ButtonMiddle)
	assert.Equal(t, ColorRainbowRoad, timer.State().ColorOption)
	assert.Equal(t, []string{"menu"}, runner.Outputs())

	timer.Click(ctx, ButtonRight)
	got := timer.State()
	assert.Equal(t, StateStopped, got.TimerState)
	assert.Equal(t, ButtonNone, got.Button)
}

func TestTimerClickKeepsProgressMadeDuringInput(t *testing.T) {
	runner := &fakeRunner{output: "+1m"}
	clock := &fakeClock{now: 0}
	state := DefaultState(0)
	state.ReadInputCommand = "menu"
	timer := newTestTimer(state, runner, clock)

	timer.Tick(context.Background())
	timer.Click(context.Background(), ButtonMiddle)
	assert.Equal(t, 360, timer.State().StartTime)
}

func TestTimerFailAndDecay(t *testing.T) {
	clock := &fakeClock{now: 0}
	timer := newTestTimer(DefaultState(0), &fakeRunner{}, clock)
	ctx := context.Background()

	timer.Tick(ctx)
	timer.Fail(newError(ErrBadValue, "boom"))
	require.True(t, timer.State().HasError())

	snap := timer.Snapshot()
	assert.Equal(t, "boom(5.0)", snap.FullText)

	clock.Advance(6)
	timer.Tick(ctx)
	assert.False(t, timer.State().HasError())
}

func TestTimerSnapshotFoldsTemplateError(t *testing.T) {
	state := DefaultState(0)
	state.TextFormat = "{nope}"
	timer := newTestTimer(state, &fakeRunner{}, &fakeClock{})

	snap := timer.Snapshot()
	assert.Equal(t, errorBackground, snap.Background)
	assert.True(t, timer.State().HasError())
}

func TestTimerRun(t *testing.T) {
	clock := &fakeClock{now: 0}
	timer := newTestTimer(DefaultState(0), &fakeRunner{}, clock)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	clicks := strings.NewReader("[\n{\"name\":\"timer\",\"button\":1}\n,{\"button\":4}\n")
	var out bytes.Buffer
	require.NoError(t, timer.Run(ctx, clicks, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var snap Snapshot
		require.NoError(t, json.Unmarshal([]byte(line), &snap), line)
	}

	final := timer.State()
	assert.Equal(t, StateRunning, final.TimerState)
	assert.Equal(t, 360, final.StartTime)
}

func TestTimerRunWithoutClicks(t *testing.T) {
	timer := newTestTimer(DefaultState(0), &fakeRunner{}, &fakeClock{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, timer.Run(ctx, nil, &out))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestTimerRunWriteError(t *testing.T) {
	timer := newTestTimer(DefaultState(0), &fakeRunner{}, &fakeClock{})
	err := timer.Run(context.Background(), nil, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}
