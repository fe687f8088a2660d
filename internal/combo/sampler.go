package combo

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// DefaultSegmentSize is the sampling granularity used when none is configured.
const DefaultSegmentSize = 1000

type segment struct {
	next int // next value to hand out
	end  int // exclusive
}

// Sampler hands out every integer in [0, max] exactly once. The range is cut
// into fixed-size segments; segments are picked at random, values inside a
// segment come out in order. A short trailing segment is served after all
// full segments are exhausted.
//
// Next is safe for concurrent use.
type Sampler struct {
	mu      sync.Mutex
	rng     *rand.Rand
	full    []segment
	current int // index into full, -1 when a new segment must be picked
	tail    segment

	produced  *atomic.Int64
	remaining *atomic.Int64
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithProduced attaches a counter incremented once per value handed out.
func WithProduced(c *atomic.Int64) SamplerOption {
	return func(s *Sampler) { s.produced = c }
}

// WithRemaining attaches a counter decremented once per value handed out.
func WithRemaining(c *atomic.Int64) SamplerOption {
	return func(s *Sampler) { s.remaining = c }
}

// WithRand replaces the default randomly seeded source (used by tests).
func WithRand(r *rand.Rand) SamplerOption {
	return func(s *Sampler) { s.rng = r }
}

// NewSampler builds a sampler over [0, max]. A negative max yields an empty
// sampler; a non-positive segmentSize falls back to DefaultSegmentSize.
func NewSampler(max, segmentSize int, opts ...SamplerOption) *Sampler {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	s := &Sampler{current: -1}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	n := max + 1
	if n <= 0 {
		return s
	}
	count := n / segmentSize
	s.full = make([]segment, count)
	for i := range s.full {
		s.full[i] = segment{next: i * segmentSize, end: (i + 1) * segmentSize}
	}
	s.tail = segment{next: count * segmentSize, end: n}
	return s
}

// Next returns the next value, or false once the range is exhausted.
func (s *Sampler) Next() (int, bool) {
	s.mu.Lock()
	v, ok := s.pull()
	s.mu.Unlock()

	if ok {
		if s.produced != nil {
			s.produced.Add(1)
		}
		if s.remaining != nil {
			s.remaining.Add(-1)
		}
	}
	return v, ok
}

func (s *Sampler) pull() (int, bool) {
	if len(s.full) > 0 {
		if s.current < 0 {
			s.current = s.rng.IntN(len(s.full))
		}
		seg := &s.full[s.current]
		v := seg.next
		seg.next++
		if seg.next == seg.end {
			// swap-remove
			last := len(s.full) - 1
			s.full[s.current] = s.full[last]
			s.full = s.full[:last]
			s.current = -1
		}
		return v, true
	}
	if s.tail.next < s.tail.end {
		v := s.tail.next
		s.tail.next++
		return v, true
	}
	return 0, false
}
