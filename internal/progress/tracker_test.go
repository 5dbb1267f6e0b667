package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestStart(t *testing.T) {
	op := Start("clone")

	assert.Equal(t, "clone", op.Name)
	assert.False(t, op.StartTime.IsZero())
	assert.Empty(t, op.RateHistory)

	_, ok := op.Remaining()
	assert.False(t, ok, "no estimate before the first update")
}

func TestOperationUpdate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	op := startAt("clone", clock.now)

	clock.advance(10 * time.Second)
	op.Update(1, 4)

	assert.InDelta(t, 0.1, op.ProgressRate, 1e-9)
	remaining, ok := op.Remaining()
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, remaining)

	clock.advance(30 * time.Second)
	op.Update(2, 4)

	// average of 0.1 and 1/30
	assert.InDelta(t, (0.1+1.0/30)/2, op.ProgressRate, 1e-9)
	assert.Len(t, op.RateHistory, 2)
	assert.Equal(t, int64(2), op.LastCurrent)
	assert.Equal(t, int64(4), op.LastTotal)
	assert.Equal(t, 40*time.Second, op.Elapsed())
}

func TestOperationUpdateSkipsWhenNoProgress(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	op := startAt("clone", clock.now)

	clock.advance(time.Second)
	op.Update(0, 4)
	assert.Empty(t, op.RateHistory)
	assert.Zero(t, op.ProgressRate)
}

func TestOperationRateHistoryBounded(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	op := startAt("clone", clock.now)

	for i := int64(1); i <= rateHistorySize+5; i++ {
		clock.advance(time.Second)
		op.Update(i, 100)
	}

	assert.Len(t, op.RateHistory, rateHistorySize)
	assert.InDelta(t, 1.0, op.ProgressRate, 1e-9)
}

func TestRemainingNeverNegative(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	op := startAt("clone", clock.now)

	clock.advance(time.Second)
	op.Update(1, 2)
	clock.advance(time.Hour)

	remaining, ok := op.Remaining()
	assert.True(t, ok)
	assert.Zero(t, remaining)
}
