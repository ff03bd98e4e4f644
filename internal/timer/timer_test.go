package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfter_FiresOnceAtDueTime(t *testing.T) {
	s := NewScheduler()
	calls := 0
	h := s.After(300*time.Millisecond, func() { calls++ })

	s.Advance(299 * time.Millisecond)
	assert.Equal(t, 0, calls)
	assert.True(t, h.Pending())

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, h.Pending())

	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestCancel_PreventsFiring(t *testing.T) {
	s := NewScheduler()
	fired := false
	h := s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(50 * time.Millisecond)
	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	s.Advance(time.Second)

	assert.False(t, fired)
	assert.Equal(t, 0, s.Len())
}

func TestCancel_AfterFireIsNoop(t *testing.T) {
	s := NewScheduler()
	h := s.After(0, func() {})
	s.Advance(0)
	assert.False(t, h.Pending())
	assert.False(t, h.Cancel())
}

func TestAdvance_FiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAdvance_EarlierActionCancelsLater(t *testing.T) {
	s := NewScheduler()
	var later Handle
	fired := false
	s.After(10*time.Millisecond, func() { later.Cancel() })
	later = s.After(20*time.Millisecond, func() { fired = true })

	s.Advance(time.Second)
	assert.False(t, fired)
}

func TestAdvance_RescheduleFromCallbackWaitsForNextAdvance(t *testing.T) {
	s := NewScheduler()
	n := 0
	s.After(0, func() {
		n++
		s.After(0, func() { n++ })
	})
	s.Advance(0)
	assert.Equal(t, 1, n)
	s.Advance(0)
	assert.Equal(t, 2, n)
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	assert.False(t, h.Pending())
	assert.False(t, h.Cancel())
}
