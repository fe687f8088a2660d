// Package progress periodically reports search throughput and an ETA.
package progress

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// window is how many samples the rolling average covers.
const window = 10

// Sample is one reporting tick.
type Sample struct {
	Speed     int           // builds per second over the last interval
	Average   int           // mean of the last window speeds
	ETA       time.Duration // total over Average; zero while Average is zero
	Remaining int64         // builds not yet handed out
}

// Reporter turns the searcher's counters into [progress] lines.
type Reporter struct {
	produced    *atomic.Int64
	remaining   *atomic.Int64
	coefficient int
	total       int64

	Interval time.Duration
	Out      io.Writer
	Printer  *message.Printer

	speeds []int
}

// New builds a reporter. produced is read and reset on every tick; each unit
// of it stands for coefficient builds. total is the full build count.
func New(produced, remaining *atomic.Int64, coefficient int, total int64) *Reporter {
	return &Reporter{
		produced:    produced,
		remaining:   remaining,
		coefficient: coefficient,
		total:       total,
		Interval:    time.Second,
		Out:         os.Stderr,
		Printer:     message.NewPrinter(language.English),
		speeds:      make([]int, 0, window),
	}
}

// Tick drains the produced counter and updates the rolling average.
func (r *Reporter) Tick() Sample {
	n := r.produced.Swap(0)
	secs := r.Interval.Seconds()
	if secs <= 0 {
		secs = 1
	}
	speed := int(float64(n*int64(r.coefficient)) / secs)

	if len(r.speeds) == window {
		r.speeds = append(r.speeds[:0], r.speeds[1:]...)
	}
	r.speeds = append(r.speeds, speed)

	sum := 0
	for _, s := range r.speeds {
		sum += s
	}
	s := Sample{Speed: speed, Average: sum / len(r.speeds)}
	if s.Average > 0 {
		s.ETA = time.Duration(r.total/int64(s.Average)) * time.Second
	}
	if r.remaining != nil {
		s.Remaining = r.remaining.Load() * int64(r.coefficient)
	}
	return s
}

// Report writes one sample.
func (r *Reporter) Report(s Sample) {
	eta := "unknown"
	if s.Average > 0 {
		eta = r.Printer.Sprintf("%.1fh", s.ETA.Hours())
	}
	r.Printer.Fprintf(r.Out, "[progress] speed=%d/s avg=%d/s eta=%s remaining=%d\n",
		s.Speed, s.Average, eta, s.Remaining)
}

// Run ticks every Interval until ctx ends. It always returns nil so it can
// sit in an errgroup next to the search.
func (r *Reporter) Run(ctx context.Context) error {
	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Report(r.Tick())
		}
	}
}
