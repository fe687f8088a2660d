package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"build-optimizer/internal/build"
	"build-optimizer/internal/config"
	"build-optimizer/internal/export"
	"build-optimizer/internal/item"
	"build-optimizer/internal/progress"
	"build-optimizer/internal/store"
)

// runSearch resolves the pools, opens the configured sinks and runs the
// search next to the progress reporter. The summary is valid even when an
// error is returned.
func runSearch(ctx context.Context, cfg config.Config, db *item.Database, w io.Writer) (sum build.Summary, err error) {
	log := &lockedWriter{w: w}
	pools, err := build.ResolvePools(db, cfg.Items)
	if err != nil {
		return build.Summary{}, fmt.Errorf("resolve items: %w", err)
	}
	fmt.Fprintf(log, "[pools] helmets=%d chest_plates=%d leggings=%d boots=%d rings=%d bracelets=%d necklaces=%d ring_pairs=%d\n",
		len(pools.Helmets), len(pools.Chestplates), len(pools.Leggings), len(pools.Boots),
		len(pools.Rings), len(pools.Bracelets), len(pools.Necklaces), len(pools.RingPairs))

	var sinks []build.Sink
	if cfg.Output.DBPath != "" {
		st, openErr := store.Open(ctx, cfg.Output.DBPath)
		if openErr != nil {
			return build.Summary{}, openErr
		}
		defer func() { err = errors.Join(err, st.Close()) }()
		sinks = append(sinks, st)
	}
	if cfg.Output.XLSXPath != "" {
		xs := export.NewXLSXSink(cfg.Output.XLSXPath)
		defer func() {
			if cerr := xs.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("write xlsx: %w", cerr))
			}
		}()
		sinks = append(sinks, xs)
	}

	s := build.NewSearcher(cfg, pools, sinks...)
	s.Log = log
	s.KeepBest = keepBest

	rep := progress.New(&s.Produced, &s.Remaining, s.RingCoefficient(), int64(pools.Total()))
	rep.Out = log

	g, gctx := errgroup.WithContext(ctx)
	repCtx, stopReporter := context.WithCancel(gctx)
	defer stopReporter()
	g.Go(func() error { return rep.Run(repCtx) })
	g.Go(func() error {
		defer stopReporter()
		var runErr error
		sum, runErr = s.Run(gctx)
		return runErr
	})
	err = g.Wait()
	return sum, err
}

// lockedWriter lets the searcher and the reporter share one log.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
