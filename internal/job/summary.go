package job

import (
	"time"

	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/manifest"
	"github.com/dtnitsch/sentiment-wordcount/pkg/mapreduce"
	"github.com/dtnitsch/sentiment-wordcount/pkg/storage"
)

// summaryKeywords is the number of keywords per stream listed in the manifest.
const summaryKeywords = 25

// buildManifest converts a run result into the summary manifest layout.
func buildManifest(cfg *models.JobConfig, runID int64, result *Result) manifest.SummaryManifest {
	m := manifest.SummaryManifest{
		RunID:        runID,
		InputPath:    cfg.InputPath,
		InputBytes:   result.Stats.InputBytes,
		StopwordPath: cfg.StopwordPath,
		Stopwords:    result.Stats.Stopwords,
		Workers:      cfg.Workers,
		Partitions:   result.Stats.Partitions,
		Lines:        result.Stats.Lines,
		Blank:        result.Stats.Blank,
		Discarded:    result.Stats.Discarded,
		Kept:         result.Stats.Kept,
		Pairs:        result.Stats.Pairs,
		Unroutable:   result.Stats.Unroutable,
	}
	if !result.Stats.InputModTime.IsZero() {
		m.InputModTime = result.Stats.InputModTime.UTC().Format(time.RFC3339)
	}

	for _, sr := range result.Streams {
		m.Streams = append(m.Streams, manifest.StreamSummary{
			Name:          sr.Stream,
			Label:         sr.Label.String(),
			FilePath:      sr.FilePath,
			Entries:       len(sr.Entries),
			DistinctWords: sr.DistinctWords,
			TopKeywords:   mapreduce.TopKeywords(sr.Entries, summaryKeywords),
		})
	}
	return m
}

// WriteManifest writes the summary manifest for result into the output directory.
func WriteManifest(cfg *models.JobConfig, runID int64, result *Result, s *storage.Storage) (string, error) {
	path, err := manifest.GenerateSummary(buildManifest(cfg, runID, result), cfg.OutputDir, s)
	if err != nil {
		return "", err
	}
	result.ManifestPath = path
	return path, nil
}
