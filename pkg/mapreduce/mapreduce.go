package mapreduce

import (
	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/tokenizer"
)

// Merger is an accumulator that can absorb another accumulator of the same
// type. Merge must be commutative and associative so partial results can be
// combined in any order.
type Merger[T any] interface {
	Merge(other T)
}

// Counts maps a word to the number of times it was seen.
type Counts map[string]int

// Add records one occurrence of word.
func (c Counts) Add(word string) {
	c[word]++
}

// Merge adds every count in other into c.
func (c Counts) Merge(other Counts) {
	for word, n := range other {
		c[word] += n
	}
}

// LabelCounts groups word counts by label.
type LabelCounts map[models.Label]Counts

// Add records one pair.
func (lc LabelCounts) Add(p models.WordPair) {
	counts, ok := lc[p.Label]
	if !ok {
		counts = make(Counts)
		lc[p.Label] = counts
	}
	counts.Add(p.Word)
}

// Merge folds other into lc by keyed summation.
func (lc LabelCounts) Merge(other LabelCounts) {
	for label, counts := range other {
		dst, ok := lc[label]
		if !ok {
			dst = make(Counts, len(counts))
			lc[label] = dst
		}
		dst.Merge(counts)
	}
}

// MapStats describes what a Map call did with its lines.
type MapStats struct {
	Lines     int
	Blank     int
	Discarded int
	Kept      int
	Pairs     int
}

// Add accumulates other into s.
func (s *MapStats) Add(other MapStats) {
	s.Lines += other.Lines
	s.Blank += other.Blank
	s.Discarded += other.Discarded
	s.Kept += other.Kept
	s.Pairs += other.Pairs
}

// Map tokenizes one partition of lines and pre-aggregates the resulting
// pairs into per-label counts.
func Map(lines []string, tk *tokenizer.Tokenizer) (LabelCounts, MapStats) {
	partial := make(LabelCounts)
	stats := MapStats{Lines: len(lines)}

	emit := func(p models.WordPair) {
		partial.Add(p)
		stats.Pairs++
	}

	for _, line := range lines {
		if isBlank(line) {
			stats.Blank++
			continue
		}
		if tk.Emit(line, emit) {
			stats.Kept++
		} else {
			stats.Discarded++
		}
	}

	return partial, stats
}

// Reduce merges every partial received on partials into acc and returns it
// once the channel is closed. The caller must not read acc before Reduce
// returns.
func Reduce[T Merger[T]](acc T, partials <-chan T) T {
	for p := range partials {
		acc.Merge(p)
	}
	return acc
}

func isBlank(line string) bool {
	return models.Trim(line) == ""
}
