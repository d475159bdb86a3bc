package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_AfterFunc(t *testing.T) {
	start := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("fires once the deadline is reached", func(t *testing.T) {
		clock := &MockClock{FixedNow: start}
		fired := 0
		clock.AfterFunc(3*time.Second, func() { fired++ })

		clock.Advance(2 * time.Second)
		assert.Equal(t, 0, fired)
		assert.Equal(t, 1, clock.Pending())

		clock.Advance(time.Second)
		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, clock.Pending())

		clock.Advance(time.Hour)
		assert.Equal(t, 1, fired)
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		clock := &MockClock{FixedNow: start}
		fired := false
		timer := clock.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		clock.Advance(time.Minute)
		assert.False(t, fired)
	})

	t.Run("due timers run earliest first", func(t *testing.T) {
		clock := &MockClock{FixedNow: start}
		var order []int
		clock.AfterFunc(2*time.Second, func() { order = append(order, 2) })
		clock.AfterFunc(time.Second, func() { order = append(order, 1) })

		clock.Advance(5 * time.Second)
		assert.Equal(t, []int{1, 2}, order)
		assert.Equal(t, start.Add(5*time.Second), clock.Now())
	})
}
