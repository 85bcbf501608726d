// Package tokenizer turns raw labeled lines into (label, word) pairs.
package tokenizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/stopwords"
)

// Tokenizer holds the per-worker, read-only state used to filter tokens.
// It keeps no state between records and is safe for concurrent use.
type Tokenizer struct {
	Stopwords *stopwords.Set

	// StripMarkup extracts the text content of HTML fragments in the
	// record text before normalization.
	StripMarkup bool
}

// New creates a Tokenizer that filters against stop.
func New(stop *stopwords.Set) *Tokenizer {
	return &Tokenizer{Stopwords: stop}
}

// Process is a convenience wrapper around Tokenizer.Process without markup stripping.
func Process(line string, stop *stopwords.Set) []models.WordPair {
	return New(stop).Process(line)
}

// Process parses one raw line and returns the pairs it contributes.
// Malformed lines yield no pairs and no error.
func (t *Tokenizer) Process(line string) []models.WordPair {
	var pairs []models.WordPair
	t.Emit(line, func(p models.WordPair) {
		pairs = append(pairs, p)
	})
	return pairs
}

// Emit parses one raw line and calls emit for each surviving token.
// It reports whether the line was a valid record.
func (t *Tokenizer) Emit(line string, emit func(models.WordPair)) bool {
	rec, ok := ParseRecord(line)
	if !ok {
		return false
	}

	text := rec.Text
	if t.StripMarkup {
		text = stripMarkup(text)
	}

	for _, word := range Normalize(text) {
		if t.Stopwords.Contains(word) {
			continue
		}
		emit(models.WordPair{Label: rec.Label, Word: word})
	}
	return true
}

// ParseRecord splits a line at its last comma into text and label.
// Commas inside the text are kept; only the trailing field is the label.
func ParseRecord(line string) (models.Record, bool) {
	line = models.Trim(line)
	if line == "" {
		return models.Record{}, false
	}

	idx := strings.LastIndexByte(line, ',')
	if idx == -1 {
		return models.Record{}, false
	}

	label := models.ParseLabel(line[idx+1:])
	if !label.Valid() {
		return models.Record{}, false
	}

	return models.Record{
		Text:  models.Trim(line[:idx]),
		Label: label,
	}, true
}

// Normalize lowercases text, replaces every rune that is not an ASCII letter
// or whitespace with a space, and splits the result into words.
func Normalize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	return strings.Fields(cleaned)
}

func stripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}
