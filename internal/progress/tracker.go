package progress

import (
	"time"
)

const (
	rateHistorySize = 10 // Keep last 10 rate measurements for averaging
)

// Operation tracks how fast a batch advances and when it should finish
type Operation struct {
	Name         string
	StartTime    time.Time
	LastUpdate   time.Time
	LastCurrent  int64
	LastTotal    int64
	ProgressRate float64 // items per second
	RateHistory  []float64
	EstimatedETA time.Time

	now func() time.Time
}

// Start begins tracking a new operation
func Start(name string) *Operation {
	return startAt(name, time.Now)
}

func startAt(name string, now func() time.Time) *Operation {
	t := now()
	return &Operation{
		Name:        name,
		StartTime:   t,
		LastUpdate:  t,
		RateHistory: make([]float64, 0, rateHistorySize),
		now:         now,
	}
}

// Update records that current of total items are done
func (o *Operation) Update(current, total int64) {
	now := o.now()

	// Rate is measured against the start for the first item
	timeDiff := now.Sub(o.LastUpdate).Seconds()
	if timeDiff > 0 && current > o.LastCurrent {
		currentRate := float64(current-o.LastCurrent) / timeDiff

		if len(o.RateHistory) >= rateHistorySize {
			o.RateHistory = o.RateHistory[1:]
		}
		o.RateHistory = append(o.RateHistory, currentRate)

		var totalRate float64
		for _, rate := range o.RateHistory {
			totalRate += rate
		}
		o.ProgressRate = totalRate / float64(len(o.RateHistory))

		if o.ProgressRate > 0 {
			remainingItems := float64(total - current)
			remainingSeconds := remainingItems / o.ProgressRate
			o.EstimatedETA = now.Add(time.Duration(remainingSeconds * float64(time.Second)))
		}
	}

	o.LastUpdate = now
	o.LastCurrent = current
	o.LastTotal = total
}

// Remaining returns the estimated time left, or false before the first
// measurement
func (o *Operation) Remaining() (time.Duration, bool) {
	if o.EstimatedETA.IsZero() {
		return 0, false
	}
	remaining := o.EstimatedETA.Sub(o.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining.Round(time.Second), true
}

// Elapsed returns the time since Start
func (o *Operation) Elapsed() time.Duration {
	return o.now().Sub(o.StartTime)
}
