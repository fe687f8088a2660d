package main

import (
	"fmt"
	"io"
	"os"

	"build-optimizer/internal/config"
	"build-optimizer/internal/item"
)

// Verbose logs every feasible build to stderr as it is found.
var Verbose bool

// keepBest is how many builds the summary keeps.
const keepBest = 10

func logw() io.Writer { return os.Stderr }

// LoadInputs reads the search config and the items database.
func LoadInputs(configPath, itemsPath string) (config.Config, *item.Database, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	db, err := item.LoadFile(itemsPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if Verbose {
		cfg.Output.LogBuilds = true
	}
	fmt.Fprintf(logw(), "[init] config=%s items=%s solver=%s workers=%d budget=%d\n",
		configPath, itemsPath, cfg.Search.Solver, cfg.Search.Workers, cfg.Player.AvailablePoint)
	return cfg, db, nil
}
