package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/mapreduce"
	"github.com/dtnitsch/sentiment-wordcount/pkg/router"
	"github.com/dtnitsch/sentiment-wordcount/pkg/stopwords"
	"github.com/dtnitsch/sentiment-wordcount/pkg/storage"
	"github.com/dtnitsch/sentiment-wordcount/pkg/tokenizer"
)

// worker maps partitions from chunks until the channel is closed.
// The tokenizer is shared read-only with every other worker.
func worker(id int, logger *slog.Logger, tk *tokenizer.Tokenizer, wg *sync.WaitGroup, chunks <-chan []string, results chan<- Partial) {
	defer wg.Done()
	for chunk := range chunks {
		counts, stats := mapreduce.Map(chunk, tk)
		logger.Debug("Worker mapped partition", "worker_id", id, "lines", stats.Lines, "pairs", stats.Pairs)
		results <- Partial{WorkerID: id, Counts: counts, Stats: stats}
	}
}

// aggregator owns the count map for a single label. Only its own goroutine
// writes to counts; readers must wait for done.
type aggregator struct {
	label  models.Label
	in     chan mapreduce.Counts
	counts mapreduce.Counts
	done   chan struct{}
}

func newAggregator(label models.Label, buffer int) *aggregator {
	return &aggregator{
		label:  label,
		in:     make(chan mapreduce.Counts, buffer),
		counts: make(mapreduce.Counts),
		done:   make(chan struct{}),
	}
}

func (a *aggregator) run() {
	defer close(a.done)
	a.counts = mapreduce.Reduce(a.counts, a.in)
}

// shuffle routes each label's partial counts to the aggregator owning that
// label and returns how many label groups had no aggregator.
func shuffle(logger *slog.Logger, partial mapreduce.LabelCounts, aggs map[models.Label]*aggregator) int {
	unroutable := 0
	for label, counts := range partial {
		agg, ok := aggs[label]
		if !ok {
			logger.Warn("Dropping partial counts for unexpected label", "label", label.String(), "words", len(counts))
			unroutable++
			continue
		}
		agg.in <- counts
	}
	return unroutable
}

// Run executes the word count job described by cfg. cfg must already be
// validated. Any error means the outputs may be incomplete.
func Run(ctx context.Context, logger *slog.Logger, cfg *models.JobConfig, s *storage.Storage) (*Result, error) {
	stop, err := stopwords.Load(cfg.StopwordPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded stopwords", "path", cfg.StopwordPath, "count", stop.Len())

	tk := &tokenizer.Tokenizer{Stopwords: stop, StripMarkup: cfg.StripMarkup}
	return run(ctx, logger, cfg, s, tk, models.Labels)
}

func run(ctx context.Context, logger *slog.Logger, cfg *models.JobConfig, s *storage.Storage, tk *tokenizer.Tokenizer, labels []models.Label) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input, err := s.GetFileStats(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	stats := Stats{
		Stopwords:    tk.Stopwords.Len(),
		InputBytes:   input.SizeBytes,
		InputModTime: input.ModTime,
	}

	logger.Info("Starting map phase", "input", cfg.InputPath, "input_bytes", input.SizeBytes, "workers", cfg.Workers, "chunk_size", cfg.ChunkSize)
	chunks := make(chan []string, cfg.Workers)
	partitionErr := make(chan error, 1)
	go func() {
		partitionErr <- s.Partition(ctx, cfg.InputPath, cfg.ChunkSize, chunks)
	}()

	var wg sync.WaitGroup
	results := make(chan Partial, cfg.Workers)
	for w := 1; w <= cfg.Workers; w++ {
		wg.Add(1)
		go worker(w, logger, tk, &wg, chunks, results)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	aggs := make(map[models.Label]*aggregator, len(labels))
	for _, label := range labels {
		agg := newAggregator(label, cfg.Workers)
		aggs[label] = agg
		go agg.run()
	}

	for partial := range results {
		stats.Add(partial.Stats)
		stats.Partitions++
		stats.Unroutable += shuffle(logger, partial.Counts, aggs)
	}

	// Every worker has finished; once the aggregators drain, each count map
	// is complete.
	for _, agg := range aggs {
		close(agg.in)
	}
	for _, agg := range aggs {
		<-agg.done
	}

	if err := <-partitionErr; err != nil {
		return nil, fmt.Errorf("map phase failed: %w", err)
	}
	logger.Info("Map phase complete", "partitions", stats.Partitions, "lines", stats.Lines,
		"kept", stats.Kept, "discarded", stats.Discarded, "pairs", stats.Pairs)

	r := router.New(cfg.OutputDir, s)
	result := &Result{}
	for _, label := range labels {
		agg := aggs[label]
		entries := mapreduce.TopN(agg.counts, cfg.TopK)

		out, err := r.Write(label, entries)
		if errors.Is(err, router.ErrUnroutableLabel) {
			logger.Warn("Skipping output for label without a stream", "label", label.String(), "words", len(agg.counts))
			stats.Unroutable++
			continue
		}
		if err != nil {
			return nil, err
		}

		logger.Info("Wrote output stream", "stream", out.Stream, "path", out.Path, "entries", len(entries), "distinct_words", len(agg.counts))
		result.Streams = append(result.Streams, StreamResult{
			Label:         label,
			Stream:        out.Stream,
			FilePath:      out.Path,
			DistinctWords: len(agg.counts),
			Entries:       entries,
		})
	}

	result.Stats = stats
	return result, nil
}
