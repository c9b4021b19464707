package timer

import (
	"context"
	"sync"
)

type fakeClock struct {
	mu  sync.Mutex
	now float64
}

func (c *fakeClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
}

type fakeRunner struct {
	mu       sync.Mutex
	started  []string
	outputs  []string
	startErr error
	output   string
	outErr   error
}

func (r *fakeRunner) Start(_ context.Context, command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, command)
	return r.startErr
}

func (r *fakeRunner) Output(_ context.Context, command string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = append(r.outputs, command)
	return r.output, r.outErr
}

func (r *fakeRunner) Started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.started...)
}

func (r *fakeRunner) Outputs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outputs...)
}
