package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/movingblock-sim/clock"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
)

func TestClockStep(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3598, Total: 3, Interval: 1})
	assert.Equal(t, "00:59:58", c.String())
	assert.False(t, c.Finished())
	c.Next()
	c.Next()
	assert.Equal(t, "01:00:00", c.String())
	assert.False(t, c.Finished())
	c.Next()
	assert.True(t, c.Finished())

	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 0, m)
	assert.InDelta(t, 1., s, 1e-9)
}
