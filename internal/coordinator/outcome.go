package coordinator

import "horoscopefetcher/internal/fetcher"

// Outcome aggregates the three results of one fetch cycle.
// A new Outcome is built for every cycle and is not shared between cycles.
type Outcome struct {
	// CycleID correlates log lines of one cycle.
	CycleID string
	Sign    string

	Horoscope fetcher.Result
	Number    fetcher.Result
	Color     fetcher.Result

	// QuotaExhausted is set once any call of the cycle reports quota
	// exhaustion.
	QuotaExhausted bool

	// NotConfigured is set when the cycle never ran because no usable API
	// key was available.
	NotConfigured bool
}

// Result returns the slot for category.
func (o Outcome) Result(category fetcher.Category) fetcher.Result {
	switch category {
	case fetcher.CategoryHoroscope:
		return o.Horoscope
	case fetcher.CategoryNumber:
		return o.Number
	case fetcher.CategoryColor:
		return o.Color
	}
	return fetcher.Result{Category: category}
}

// Results returns all slots in request order.
func (o Outcome) Results() []fetcher.Result {
	return []fetcher.Result{o.Horoscope, o.Number, o.Color}
}

func (o *Outcome) set(r fetcher.Result) {
	switch r.Category {
	case fetcher.CategoryHoroscope:
		o.Horoscope = r
	case fetcher.CategoryNumber:
		o.Number = r
	case fetcher.CategoryColor:
		o.Color = r
	}
}

func emptyOutcome(cycleID, sign string) Outcome {
	return Outcome{
		CycleID:   cycleID,
		Sign:      sign,
		Horoscope: fetcher.Result{Category: fetcher.CategoryHoroscope},
		Number:    fetcher.Result{Category: fetcher.CategoryNumber},
		Color:     fetcher.Result{Category: fetcher.CategoryColor},
	}
}

// NotConfigured returns the outcome reported instead of running a cycle
// when no usable API key is available. No slot succeeded.
func NotConfigured(sign string) Outcome {
	o := emptyOutcome("", sign)
	o.NotConfigured = true
	return o
}
