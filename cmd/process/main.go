package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/paystream/transaction-engine/core"
	"github.com/paystream/transaction-engine/ingest"
	"github.com/paystream/transaction-engine/shell"
)

// Config holds the run-level settings. None of them affect core semantics.
type Config struct {
	InputPath string
	Shards    int
	AuditPath string
	Verbose   bool
}

// commandRouter is satisfied by both the sequential Router and Sharded.
type commandRouter interface {
	Route(command core.Command) error
	Snapshot() map[core.ClientID]ingest.AccountView
}

func main() {
	cfg := parseFlags()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := shell.NewSlogLogger(handler)
	metrics := shell.NewCounterCollector()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("processing failed", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags() Config {
	var cfg Config

	flag.IntVar(&cfg.Shards, "shards", 0, "number of worker shards (0 or 1 processes sequentially)")
	flag.StringVar(&cfg.AuditPath, "audit", "", "write a JSONL audit trail of applied events to this file")
	flag.BoolVar(&cfg.Verbose, "v", false, "log rejected commands and the run summary")
	flag.Parse()

	cfg.InputPath = flag.Arg(0)
	if cfg.InputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: process [flags] <transactions.csv>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	return cfg
}

func run(cfg Config, logger ingest.Logger, metrics *shell.CounterCollector) error {
	input, err := os.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	opts := []ingest.Option{
		ingest.WithLogger(logger),
		ingest.WithMetrics(metrics),
	}

	var sink *shell.JSONLSink
	if cfg.AuditPath != "" {
		auditFile, createErr := os.Create(cfg.AuditPath)
		if createErr != nil {
			return createErr
		}
		defer auditFile.Close()

		sink = shell.NewJSONLSink(auditFile)
		opts = append(opts, ingest.WithEventSink(sink))
	}

	var router commandRouter
	var sharded *ingest.Sharded
	if cfg.Shards > 1 {
		sharded = ingest.NewSharded(cfg.Shards, opts...)
		router = sharded
	} else {
		router = ingest.NewRouter(opts...)
	}

	reader, err := shell.NewCommandReader(input)
	if err != nil {
		return err
	}

	for {
		command, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			if errors.Is(readErr, shell.ErrMalformedRecord) {
				logger.Warn("skipping malformed record", "error", readErr.Error())
				continue
			}

			return readErr
		}

		_ = router.Route(command) // rejected commands are reported by the router, processing continues
	}

	if sharded != nil {
		if closeErr := sharded.Close(); closeErr != nil {
			return closeErr
		}
	}

	if sink != nil {
		if flushErr := sink.Flush(); flushErr != nil {
			return flushErr
		}
	}

	if writeErr := shell.NewSnapshotWriter(os.Stdout).WriteAll(router.Snapshot()); writeErr != nil {
		return writeErr
	}

	logger.Info("processing finished",
		"accepted", metrics.Count(ingest.MetricCommandsRouted, map[string]string{ingest.OutcomeLabel: ingest.OutcomeAccepted}),
		"rejected", metrics.Count(ingest.MetricCommandsRouted, map[string]string{ingest.OutcomeLabel: ingest.OutcomeRejected}),
		"accounts", metrics.Count(ingest.MetricAccountsCreated, nil),
	)

	return nil
}
