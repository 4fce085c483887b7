package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"horoscopefetcher/internal/astropredict"
	"horoscopefetcher/internal/fetcher"
	"horoscopefetcher/internal/interpreter"
	"horoscopefetcher/internal/ratelimit"
)

// Pacer spaces out the requests of one cycle. Wait blocks before a request;
// Done is called once its response has been received.
type Pacer interface {
	Wait(ctx context.Context) error
	Done()
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRequestDelay sets the minimum spacing between request starts.
// Values below ratelimit.MinInterval are raised to it.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.newPacer = func() Pacer { return ratelimit.NewPacer(d) }
	}
}

// WithPacerFactory replaces the pacer built for each cycle.
func WithPacerFactory(f func() Pacer) Option {
	return func(c *Coordinator) {
		c.newPacer = f
	}
}

// Coordinator runs fetch cycles: the horoscope, lucky number and lucky
// color requests for one sign, strictly in that order.
type Coordinator struct {
	transport fetcher.Transport
	baseURL   string
	newPacer  func() Pacer
}

// New creates a new Coordinator issuing requests through transport against
// baseURL.
func New(transport fetcher.Transport, baseURL string, opts ...Option) *Coordinator {
	c := &Coordinator{
		transport: transport,
		baseURL:   baseURL,
		newPacer:  func() Pacer { return ratelimit.NewPacer(ratelimit.MinInterval) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one fetch cycle for sign and always returns a complete
// Outcome. Failures are recorded per slot and never abort the cycle.
// Once a call reports quota exhaustion, the remaining slots are filled
// with fetcher.TextQuotaSkipped without touching the network.
//
// sign must already be lower case and apiKey must be usable; see
// app.Service for the checks performed before a cycle.
func (c *Coordinator) Run(ctx context.Context, sign, apiKey string, observer Observer) Outcome {
	out := emptyOutcome(uuid.NewString(), sign)
	logger := slog.With("cycle_id", out.CycleID, "sign", sign)
	pacer := c.newPacer()

	logger.Info("fetch cycle started")

	for _, category := range fetcher.Categories {
		var res fetcher.Result

		if out.QuotaExhausted {
			logger.Info("skipping request after quota exhaustion", "category", category)
			res = fetcher.QuotaSkipped(category)
		} else {
			observer.emit(Event{Kind: CategoryStarted, CycleID: out.CycleID, Category: category})
			res = c.fetch(ctx, logger, pacer, sign, apiKey, category)
			if res.IsQuotaExceeded() {
				out.QuotaExhausted = true
			}
		}

		out.set(res)
		observer.emit(Event{Kind: CategoryCompleted, CycleID: out.CycleID, Category: category, Result: res})
	}

	logger.Info("fetch cycle finished", "quota_exhausted", out.QuotaExhausted)
	observer.emit(Event{Kind: CycleFinished, CycleID: out.CycleID, Outcome: out})

	return out
}

// fetch performs one paced request and interprets it.
func (c *Coordinator) fetch(ctx context.Context, logger *slog.Logger, pacer Pacer, sign, apiKey string, category fetcher.Category) (res fetcher.Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("request handling panicked", "category", category, "panic", r)
			res = fetcher.Failed(category, fetcher.TextParsingError)
		}
	}()

	if err := pacer.Wait(ctx); err != nil {
		logger.Warn("wait before request aborted", "category", category, "error", err)
		return interpreter.ClassifyTransportError(category, fetcher.NewNetworkError(err))
	}
	defer pacer.Done()

	rawURL, err := astropredict.BuildURL(c.baseURL, sign, category)
	if err != nil {
		return interpreter.ClassifyTransportError(category, fmt.Errorf("build url: %w", err))
	}

	logger.Debug("requesting", "category", category, "url", rawURL)

	body, err := c.transport.Get(ctx, rawURL, apiKey)
	if err != nil {
		return interpreter.ClassifyTransportError(category, err)
	}

	return interpreter.Interpret(body, category)
}
