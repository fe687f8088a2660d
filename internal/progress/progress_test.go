package progress

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick(t *testing.T) {
	var produced, remaining atomic.Int64
	remaining.Store(500)
	r := New(&produced, &remaining, 3, 36000)

	produced.Store(100)
	s := r.Tick()
	assert.Equal(t, 300, s.Speed)
	assert.Equal(t, 300, s.Average)
	assert.Equal(t, 120*time.Second, s.ETA)
	assert.Equal(t, int64(1500), s.Remaining)
	assert.Zero(t, produced.Load())

	produced.Store(300)
	s = r.Tick()
	assert.Equal(t, 900, s.Speed)
	assert.Equal(t, 600, s.Average)
	assert.Equal(t, 60*time.Second, s.ETA)
}

func TestTickWindow(t *testing.T) {
	var produced atomic.Int64
	r := New(&produced, nil, 1, 100)
	for i := 0; i < window; i++ {
		produced.Store(10)
		r.Tick()
	}
	// the oldest 10 falls out once a new sample arrives
	produced.Store(110)
	s := r.Tick()
	assert.Len(t, r.speeds, window)
	assert.Equal(t, 20, s.Average)
	assert.Zero(t, s.Remaining)
}

func TestTickIdle(t *testing.T) {
	var produced atomic.Int64
	r := New(&produced, nil, 3, 100)
	s := r.Tick()
	assert.Zero(t, s.Average)
	assert.Zero(t, s.ETA)

	var out bytes.Buffer
	r.Out = &out
	r.Report(s)
	assert.Contains(t, out.String(), "eta=unknown")
}

func TestReportGroupsDigits(t *testing.T) {
	var produced atomic.Int64
	produced.Store(1200)
	r := New(&produced, nil, 1, 3_600_000)
	var out bytes.Buffer
	r.Out = &out
	r.Report(r.Tick())
	assert.Contains(t, out.String(), "speed=1,200/s")
	assert.Contains(t, out.String(), "eta=0.8h")
}

func TestRunStopsOnCancel(t *testing.T) {
	var produced atomic.Int64
	r := New(&produced, nil, 1, 10)
	r.Interval = 5 * time.Millisecond
	var out bytes.Buffer
	r.Out = &out

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
}
