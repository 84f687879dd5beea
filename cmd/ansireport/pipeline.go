package main

import (
	"fmt"
	"os"

	"github.com/bgricker/ansireport/internal/config"
	"github.com/bgricker/ansireport/internal/eventlog"
	"github.com/bgricker/ansireport/internal/report"
	"github.com/spf13/cobra"
)

// analysis bundles aggregated stats with details of the pass over the log.
type analysis struct {
	path    string
	stats   *report.Stats
	summary eventlog.Summary
}

// analyzeLog reads the log at path in a single pass, aggregating each record
// as it is decoded. On error no stats are returned.
func analyzeLog(path string) (analysis, error) {
	stats := report.NewStats()
	summary, err := eventlog.Scan(path, stats.Record)
	if err != nil {
		return analysis{}, err
	}
	return analysis{path: path, stats: stats, summary: summary}, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
