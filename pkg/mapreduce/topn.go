package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/sentiment-wordcount/models"
)

// DefaultTopK is the number of words kept per label.
const DefaultTopK = models.DefaultTopK

// TopN returns the n most frequent words, ordered by count descending.
// Equal counts are ordered by word ascending so the result does not depend
// on map iteration order.
func TopN(counts Counts, n int) []models.CountEntry {
	if n <= 0 || len(counts) == 0 {
		return nil
	}

	entries := make([]models.CountEntry, 0, len(counts))
	for word, count := range counts {
		entries = append(entries, models.CountEntry{Word: word, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopKeywords formats the first n of already ranked entries as "word:count"
// strings (e.g. "rally:42"). n <= 0 formats every entry.
func TopKeywords(entries []models.CountEntry, n int) []string {
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	keywords := make([]string, len(entries))
	for i, e := range entries {
		keywords[i] = fmt.Sprintf("%s:%d", e.Word, e.Count)
	}
	return keywords
}
