package coordinator

import "horoscopefetcher/internal/fetcher"

// EventKind identifies a step of a fetch cycle.
type EventKind int

const (
	// CategoryStarted is emitted before a category's pacing wait and request.
	CategoryStarted EventKind = iota
	// CategoryCompleted carries the final result of a category, including
	// slots skipped because of quota exhaustion.
	CategoryCompleted
	// CycleFinished carries the complete outcome.
	CycleFinished
)

func (k EventKind) String() string {
	switch k {
	case CategoryStarted:
		return "category_started"
	case CategoryCompleted:
		return "category_completed"
	case CycleFinished:
		return "cycle_finished"
	}
	return "unknown"
}

// Event is one step of a fetch cycle, delivered to an Observer.
type Event struct {
	Kind     EventKind
	CycleID  string
	Category fetcher.Category
	Result   fetcher.Result
	Outcome  Outcome
}

// Observer receives cycle events synchronously, in order, on the goroutine
// running the cycle. A nil Observer is ignored.
type Observer func(Event)

func (o Observer) emit(e Event) {
	if o != nil {
		o(e)
	}
}
