// Package batch ingests many annotation set files on a worker pool.
//
// Each file is parsed inside an independent error boundary so one
// malformed or panicking parse never aborts the rest of the run.
// Results preserve the input file order.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/biocontext/belanno/annoset"
)

// defaultWorkers is the pool size when the caller does not set one.
const defaultWorkers = 4

// Result is the outcome of parsing one file. Exactly one of Document,
// Report, or Err is set.
type Result struct {
	// File is the input path.
	File string

	// Document is the parsed annotation set, on success.
	Document *annoset.Document

	// Report carries the validation issues, when the file is readable
	// but invalid.
	Report *annoset.ErrorReport

	// Err is a non-validation failure (unreadable file, panic).
	Err error

	// Duration is how long the parse took.
	Duration time.Duration
}

// OK reports whether the file parsed cleanly.
func (r Result) OK() bool {
	return r.Document != nil
}

// Ingestor parses batches of annotation files concurrently.
type Ingestor struct {
	workers int
	opts    annoset.Options
	logger  *slog.Logger
	metrics *Metrics
}

// Config configures an Ingestor.
type Config struct {
	// Workers is the pool size. Zero means defaultWorkers.
	Workers int

	// ParseOptions are passed through to every parse.
	ParseOptions annoset.Options

	// Registerer receives ingestion metrics. Nil skips registration.
	Registerer prometheus.Registerer
}

// NewIngestor creates a batch ingestor.
func NewIngestor(cfg Config, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Ingestor{
		workers: workers,
		opts:    cfg.ParseOptions,
		logger:  logger,
		metrics: NewMetrics(cfg.Registerer),
	}
}

// Run parses the given files on the worker pool and returns one Result
// per file, in input order. A cancelled context stops dispatching new
// files; already-dispatched files still finish.
func (i *Ingestor) Run(ctx context.Context, files []string) []Result {
	runID := uuid.New().String()
	logger := i.logger.With("run_id", runID)
	logger.Info("starting batch ingest", "files", len(files), "workers", i.workers)

	results := make([]Result, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for n := 0; n < i.workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = i.parseOne(logger, files[idx])
			}
		}()
	}

dispatch:
	for idx := range files {
		select {
		case <-ctx.Done():
			logger.Warn("batch ingest cancelled", "dispatched", idx)
			for skip := idx; skip < len(files); skip++ {
				results[skip] = Result{File: files[skip], Err: ctx.Err()}
			}
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	parsed := 0
	for _, r := range results {
		if r.OK() {
			parsed++
		}
	}
	logger.Info("batch ingest complete", "parsed", parsed, "failed", len(files)-parsed)
	return results
}

// parseOne parses a single file inside its own error boundary.
func (i *Ingestor) parseOne(logger *slog.Logger, file string) (result Result) {
	start := time.Now()
	result.File = file

	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Document = nil
			result.Report = nil
			result.Err = fmt.Errorf("panic parsing %s: %v", file, r)
			i.metrics.observe(statusFailed, result.Duration.Seconds())
			logger.Error("parse panicked", "file", file, "panic", r)
		}
	}()

	doc, err := annoset.ParseFile(file, i.opts)
	if err != nil {
		if report, ok := annoset.AsReport(err); ok {
			result.Report = report
			i.metrics.observe(statusInvalid, time.Since(start).Seconds())
			logger.Warn("annotation file invalid", "file", file, "issues", len(report.Issues))
		} else {
			result.Err = err
			i.metrics.observe(statusFailed, time.Since(start).Seconds())
			logger.Warn("annotation file unreadable", "file", file, "error", err)
		}
		return result
	}

	result.Document = doc
	i.metrics.observe(statusParsed, time.Since(start).Seconds())
	logger.Debug("annotation file parsed",
		"file", file,
		"keyword", doc.Definition.Keyword,
		"values", len(doc.Values))
	return result
}
