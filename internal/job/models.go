package job

import (
	"time"

	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/db"
	"github.com/dtnitsch/sentiment-wordcount/pkg/mapreduce"
)

// Partial is the pre-aggregated output of one partition.
type Partial struct {
	WorkerID int
	Counts   mapreduce.LabelCounts
	Stats    mapreduce.MapStats
}

// Stats summarises a whole run.
type Stats struct {
	mapreduce.MapStats
	Partitions int
	Unroutable int
	Stopwords  int

	InputBytes   int64
	InputModTime time.Time
}

// RunStats converts s to the form stored in the run history.
func (s Stats) RunStats() db.RunStats {
	return db.RunStats{
		Lines:      s.Lines,
		Blank:      s.Blank,
		Discarded:  s.Discarded,
		Kept:       s.Kept,
		Pairs:      s.Pairs,
		Partitions: s.Partitions,
		Unroutable: s.Unroutable,
		Stopwords:  s.Stopwords,
		InputBytes: s.InputBytes,
	}
}

// StreamResult describes what was written for one label.
type StreamResult struct {
	Label         models.Label
	Stream        string
	FilePath      string
	DistinctWords int
	Entries       []models.CountEntry
}

// Result holds the outcome of a successful run.
type Result struct {
	Stats        Stats
	Streams      []StreamResult
	ManifestPath string
}
