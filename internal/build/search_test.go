package build

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (m *memorySink) SaveBuild(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, r)
	return nil
}

func newFixtureSearcher(t *testing.T, budget int, sinks ...Sink) (*Searcher, *bytes.Buffer) {
	t.Helper()
	cfg := fixtureConfig()
	cfg.Player.AvailablePoint = budget
	seed := uint64(7)
	cfg.Search.Seed = &seed
	p, err := ResolvePools(loadDB(t), cfg.Items)
	require.NoError(t, err)
	s := NewSearcher(cfg, p, sinks...)
	var log bytes.Buffer
	s.Log = &log
	return s, &log
}

func TestSearchFindsFeasibleBuilds(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		budget int
		want   int64
	}{
		{budget: 50, want: 4},
		{budget: 200, want: 6},
		{budget: 40, want: 0},
	} {
		sink := &memorySink{}
		s, log := newFixtureSearcher(t, tc.budget, sink)
		sum, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(6), sum.Total)
		assert.Equal(t, int64(6), sum.Evaluated)
		assert.Equal(t, tc.want, sum.Feasible, "budget %d", tc.budget)
		assert.Len(t, sink.results, int(tc.want))
		assert.False(t, sum.Stopped)
		assert.Zero(t, s.Remaining.Load())
		assert.Contains(t, log.String(), "[search] total=6")
	}
}

func TestSearchBestOrdering(t *testing.T) {
	s, _ := newFixtureSearcher(t, 200)
	s.KeepBest = 3
	sum, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sum.Best, 3)

	// Cap with two Water Rings needs 44, then Cap DW 47, then Visor WW 49.
	assert.Equal(t, 44, sum.Best[0].Status.SkillPoint.Assigned.Sum())
	assert.Equal(t, 47, sum.Best[1].Status.SkillPoint.Assigned.Sum())
	assert.Equal(t, 49, sum.Best[2].Status.SkillPoint.Assigned.Sum())
	assert.Equal(t, "Aquamarine Cap", sum.Best[0].Items[SlotHelmet])
	assert.Equal(t, [2]string{"Water Ring", "Water Ring"}, [2]string{sum.Best[0].Items[SlotRing0], sum.Best[0].Items[SlotRing1]})
	assert.Equal(t, "Frost Wand", sum.Best[0].Weapon)
}

func TestSearchResultURL(t *testing.T) {
	sink := &memorySink{}
	s, _ := newFixtureSearcher(t, 200, sink)
	s.URLPrefix = "https://example.test/#"
	s.URLSuffix = "?x"
	_, err := s.Run(context.Background())
	require.NoError(t, err)
	for _, r := range sink.results {
		assert.True(t, strings.HasPrefix(r.URL, "https://example.test/#8_"), r.URL)
		assert.True(t, strings.HasSuffix(r.URL, r.Code+"?x"), r.URL)
		assert.Len(t, r.Code, 2+8*3+3+5*2+2)
	}
}

func TestSearchMaxResults(t *testing.T) {
	sink := &memorySink{}
	s, _ := newFixtureSearcher(t, 200, sink)
	s.MaxResults = 2
	sum, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.Stopped)
	assert.Equal(t, int64(2), sum.Feasible)
	assert.Len(t, sink.results, 2)
}

func TestSearchSinkError(t *testing.T) {
	boom := errors.New("disk full")
	s, _ := newFixtureSearcher(t, 200, &memorySink{err: boom})
	sum, err := s.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), sum.Feasible)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := newFixtureSearcher(t, 200)
	sum, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Feasible)
}

func TestSearchLogBuilds(t *testing.T) {
	s, log := newFixtureSearcher(t, 50)
	s.LogBuilds = true
	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(log.String(), "max_ehp:"))
}
