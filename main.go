//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"build-optimizer/internal/build"
)

// RunOutput is the JSON form of a finished run.
type RunOutput struct {
	Date      string         `json:"date"`
	Workers   int            `json:"workers"`
	Solver    string         `json:"solver"`
	Total     int64          `json:"total"`
	Evaluated int64          `json:"evaluated"`
	Feasible  int64          `json:"feasible"`
	Stopped   bool           `json:"stopped"`
	TimeMs    int64          `json:"timeMs"`
	Best      []build.Result `json:"best"`
}

const usage = `Usage: build-optimizer <config.yaml> <items.json>

Positional arguments:
  config.yaml   Search configuration (candidate items, player, thresholds)
  items.json    Items database

Environment:
  BUILD_OPTIMIZER_WORKERS, BUILD_OPTIMIZER_SEGMENT_SIZE, BUILD_OPTIMIZER_SOLVER,
  BUILD_OPTIMIZER_DB_PATH, BUILD_OPTIMIZER_XLSX_PATH override the config file.

Flags:
`

func main() {
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Print every feasible build to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	Verbose = *verbose

	cfg, db, err := LoadInputs(args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := runSearch(ctx, cfg, db, logw())
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		out := RunOutput{
			Date:      time.Now().UTC().Format(time.RFC3339),
			Workers:   runtime.NumCPU(),
			Solver:    cfg.Search.Solver,
			Total:     sum.Total,
			Evaluated: sum.Evaluated,
			Feasible:  sum.Feasible,
			Stopped:   sum.Stopped,
			TimeMs:    sum.Elapsed.Milliseconds(),
			Best:      sum.Best,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
	} else {
		printTable(os.Stdout, sum)
		if len(sum.Best) > 0 {
			fmt.Println(FormatResult(sum.Best[0]))
		}
	}
	if interrupted {
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(130)
	}
}
