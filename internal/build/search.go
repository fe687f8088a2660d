package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"build-optimizer/internal/combo"
	"build-optimizer/internal/config"
	"build-optimizer/internal/item"
)

// Result is one feasible build as handed to sinks.
type Result struct {
	URL    string        `json:"url"`
	Code   string        `json:"code"`
	Items  [Slots]string `json:"items"` // combination slot layout
	Weapon string        `json:"weapon"`
	Status Status        `json:"status"`
}

// Sink receives feasible builds. Searcher serializes calls, so sinks need not
// be safe for concurrent use.
type Sink interface {
	SaveBuild(ctx context.Context, r Result) error
}

// Pools holds the resolved candidates per slot.
type Pools struct {
	Helmets     []*item.Apparel
	Chestplates []*item.Apparel
	Leggings    []*item.Apparel
	Boots       []*item.Apparel
	Rings       []*item.Apparel
	Bracelets   []*item.Apparel
	Necklaces   []*item.Apparel
	Weapon      *item.Weapon

	// RingPairs are the unordered ring pairs, duplicates allowed.
	RingPairs [][2]*item.Apparel
}

// ResolvePools looks every configured name up in db. All unknown names are
// reported together.
func ResolvePools(db *item.Database, c config.Items) (*Pools, error) {
	p := &Pools{}
	var errs []error
	resolve := func(dst *[]*item.Apparel, t item.Type, names []string) {
		got, err := db.Apparels(t, names)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = got
	}
	resolve(&p.Helmets, item.TypeHelmet, c.Helmets)
	resolve(&p.Chestplates, item.TypeChestplate, c.ChestPlates)
	resolve(&p.Leggings, item.TypeLeggings, c.Leggings)
	resolve(&p.Boots, item.TypeBoots, c.Boots)
	resolve(&p.Rings, item.TypeRing, c.Rings)
	resolve(&p.Bracelets, item.TypeBracelet, c.Bracelets)
	resolve(&p.Necklaces, item.TypeNecklace, c.Necklaces)

	w, err := db.Weapon(c.Weapon)
	if err != nil {
		errs = append(errs, err)
	}
	p.Weapon = w
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, pair := range combo.MultisetCombinations(len(p.Rings), 2) {
		p.RingPairs = append(p.RingPairs, [2]*item.Apparel{p.Rings[pair[0]], p.Rings[pair[1]]})
	}
	return p, nil
}

// nonRing returns the six independently chosen slots in combination order.
func (p *Pools) nonRing() [][]*item.Apparel {
	return [][]*item.Apparel{p.Helmets, p.Chestplates, p.Leggings, p.Boots, p.Bracelets, p.Necklaces}
}

// NonRingTotal is the size of the index space the driver walks.
func (p *Pools) NonRingTotal() int { return combo.TotalCombinations(p.nonRing()) }

// Total is the number of builds, ring pairs included.
func (p *Pools) Total() int { return p.NonRingTotal() * len(p.RingPairs) }

// Summary describes a finished run.
type Summary struct {
	Total     int64         `json:"total"`
	Evaluated int64         `json:"evaluated"`
	Feasible  int64         `json:"feasible"`
	Best      []Result      `json:"best"`
	Elapsed   time.Duration `json:"elapsed"`
	// Stopped is set when max_results ended the run early.
	Stopped bool `json:"stopped"`
}

// Searcher walks every combination of Pools and emits feasible builds.
type Searcher struct {
	Pools *Pools
	Eval  *Evaluator
	Sinks []Sink

	Level       int
	SegmentSize int
	Workers     int
	Seed        *uint64
	MaxResults  int
	KeepBest    int
	URLPrefix   string
	URLSuffix   string
	LogBuilds   bool

	// Log receives [search] lines; nil means os.Stderr.
	Log io.Writer

	// Produced counts non-ring combinations handed out. The progress reporter
	// reads and resets it.
	Produced atomic.Int64
	// Remaining counts non-ring combinations not yet handed out.
	Remaining atomic.Int64

	mu       sync.Mutex
	best     []Result
	feasible int64
	sinkErr  error
}

// NewSearcher wires a searcher from a validated config.
func NewSearcher(c config.Config, p *Pools, sinks ...Sink) *Searcher {
	return &Searcher{
		Pools:       p,
		Eval:        NewEvaluator(c, p.Weapon),
		Sinks:       sinks,
		Level:       c.Player.Level,
		SegmentSize: c.Search.SegmentSize,
		Workers:     c.Search.Workers,
		Seed:        c.Search.Seed,
		MaxResults:  c.Search.MaxResults,
		KeepBest:    10,
		URLPrefix:   c.Output.URLPrefix,
		URLSuffix:   c.Output.URLSuffix,
		LogBuilds:   c.Output.LogBuilds,
	}
}

func (s *Searcher) logw() io.Writer {
	if s.Log != nil {
		return s.Log
	}
	return os.Stderr
}

// RingCoefficient is how many builds each non-ring combination expands to.
func (s *Searcher) RingCoefficient() int { return len(s.Pools.RingPairs) }

// Run searches until every combination is evaluated, MaxResults builds were
// found, a sink fails, or ctx ends. The summary is valid in every case.
func (s *Searcher) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	total := s.Pools.Total()
	s.Remaining.Store(int64(s.Pools.NonRingTotal()))
	fmt.Fprintf(s.logw(), "[search] total=%d ring_pairs=%d workers=%d solver=%s\n",
		total, s.RingCoefficient(), s.Workers, s.Eval.Solver)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var evaluated atomic.Int64
	opts := []combo.DriverOption{
		combo.WithSegmentSize(s.SegmentSize),
		combo.WithWorkers(s.Workers),
		combo.WithProgress(&s.Produced),
		combo.WithRemainingCounter(&s.Remaining),
	}
	if s.Seed != nil {
		opts = append(opts, combo.WithSeed(*s.Seed))
	}

	err := combo.ForEachCombination(runCtx, s.Pools.nonRing(), func(tuple []*item.Apparel) {
		var c Combination
		copy(c[SlotHelmet:], tuple)
		for _, pair := range s.Pools.RingPairs {
			if runCtx.Err() != nil {
				return
			}
			c[SlotRing0], c[SlotRing1] = pair[0], pair[1]
			evaluated.Add(1)
			st, ok := s.Eval.Evaluate(&c)
			if !ok {
				continue
			}
			if !s.emit(runCtx, s.result(&c, st)) {
				cancel()
				return
			}
		}
	}, opts...)

	s.mu.Lock()
	sum := Summary{
		Total:     int64(total),
		Evaluated: evaluated.Load(),
		Feasible:  s.feasible,
		Best:      slices.Clone(s.best),
		Elapsed:   time.Since(start),
		Stopped:   s.MaxResults > 0 && s.feasible >= int64(s.MaxResults),
	}
	sinkErr := s.sinkErr
	s.mu.Unlock()

	fmt.Fprintf(s.logw(), "[done] evaluated=%d feasible=%d elapsed=%s\n",
		sum.Evaluated, sum.Feasible, sum.Elapsed.Round(time.Millisecond))

	switch {
	case sinkErr != nil:
		return sum, sinkErr
	case ctx.Err() != nil:
		return sum, ctx.Err()
	case err != nil && !errors.Is(err, context.Canceled):
		return sum, err
	}
	return sum, nil
}

func (s *Searcher) result(c *Combination, st Status) Result {
	code := EncodeBuild(c.ShareIDs(), s.Level, s.Pools.Weapon.ID, st.SkillPoint.Original)
	return Result{
		URL:    s.URLPrefix + code + s.URLSuffix,
		Code:   code,
		Items:  c.Names(),
		Weapon: s.Pools.Weapon.Name,
		Status: st,
	}
}

// emit records r and reports whether the search should go on.
func (s *Searcher) emit(ctx context.Context, r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sinkErr != nil {
		return false
	}
	if s.MaxResults > 0 && s.feasible >= int64(s.MaxResults) {
		return false
	}
	s.feasible++
	s.keep(r)

	if s.LogBuilds {
		fmt.Fprintf(s.logw(), "%s\n%s\n", r.URL, r.Status)
	}
	for _, sink := range s.Sinks {
		if err := sink.SaveBuild(ctx, r); err != nil {
			s.sinkErr = fmt.Errorf("save build: %w", err)
			return false
		}
	}
	return s.MaxResults == 0 || s.feasible < int64(s.MaxResults)
}

// keep inserts r into the best list: fewest assigned points first, then
// highest effective health.
func (s *Searcher) keep(r Result) {
	if s.KeepBest <= 0 {
		return
	}
	i, _ := slices.BinarySearchFunc(s.best, r, compareResults)
	if i >= s.KeepBest {
		return
	}
	s.best = slices.Insert(s.best, i, r)
	if len(s.best) > s.KeepBest {
		s.best = s.best[:s.KeepBest]
	}
}

func compareResults(a, b Result) int {
	if d := a.Status.SkillPoint.Assigned.Sum() - b.Status.SkillPoint.Assigned.Sum(); d != 0 {
		return d
	}
	return b.Status.MaxEHP - a.Status.MaxEHP
}
