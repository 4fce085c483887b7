package testutil

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Response is a canned transport reply.
type Response struct {
	Body string
	Err  error
}

// Call records one request seen by MockTransport.
type Call struct {
	URL    string
	APIKey string
	At     time.Time
}

// MockTransport is a mock implementation of the fetcher.Transport interface for testing.
// Replies are matched by the first registered substring found in the URL.
type MockTransport struct {
	// GetFunc, when set, overrides the canned replies.
	GetFunc func(ctx context.Context, url, apiKey string) (string, error)
	// Clock stamps recorded calls; defaults to the wall clock.
	Clock *FakeClock
	// Latency advances Clock after each call, simulating a slow upstream.
	Latency time.Duration

	mu        sync.Mutex
	patterns  []string
	responses map[string]Response
	calls     []Call
}

// NewMockTransport creates a transport with no canned replies.
func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]Response)}
}

// On registers the reply for URLs containing pattern.
func (m *MockTransport) On(pattern string, resp Response) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.responses[pattern]; !exists {
		m.patterns = append(m.patterns, pattern)
	}
	m.responses[pattern] = resp
	return m
}

// Get implements the fetcher.Transport interface
func (m *MockTransport) Get(ctx context.Context, url, apiKey string) (string, error) {
	m.mu.Lock()
	at := time.Now()
	if m.Clock != nil {
		at = m.Clock.Now()
	}
	m.calls = append(m.calls, Call{URL: url, APIKey: apiKey, At: at})

	var resp Response
	matched := false
	for _, p := range m.patterns {
		if strings.Contains(url, p) {
			resp = m.responses[p]
			matched = true
			break
		}
	}
	getFunc := m.GetFunc
	if m.Clock != nil && m.Latency > 0 {
		m.Clock.Advance(m.Latency)
	}
	m.mu.Unlock()

	if getFunc != nil {
		return getFunc(ctx, url, apiKey)
	}
	if !matched {
		return "", nil
	}
	return resp.Body, resp.Err
}

// Calls returns the requests seen so far, in order.
func (m *MockTransport) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock stopped at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current simulated time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakePacer paces against a FakeClock the way ratelimit.Pacer paces
// against the wall clock: the first Wait returns at once and every later
// Wait advances the clock until Interval has passed since both the previous
// Wait and the previous Done.
type FakePacer struct {
	Clock    *FakeClock
	Interval time.Duration

	mu    sync.Mutex
	waits int
	dones int
	next  time.Time
}

// Wait implements the coordinator.Pacer interface
func (p *FakePacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.Clock.Now()
	if p.waits > 0 && now.Before(p.next) {
		p.Clock.Advance(p.next.Sub(now))
		now = p.next
	}
	p.waits++
	p.next = now.Add(p.Interval)
	return nil
}

// Done implements the coordinator.Pacer interface
func (p *FakePacer) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dones++
	if next := p.Clock.Now().Add(p.Interval); next.After(p.next) {
		p.next = next
	}
}

// Waits returns how many times Wait was called.
func (p *FakePacer) Waits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}

// Dones returns how many times Done was called.
func (p *FakePacer) Dones() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dones
}
