// Package router writes per-label results to their named output streams.
package router

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/storage"
)

const (
	StreamPositive = "positive"
	StreamNegative = "negative"
)

// ErrUnroutableLabel is returned for a label that has no output stream.
var ErrUnroutableLabel = errors.New("label has no output stream")

// StreamFor returns the stream name for a label.
func StreamFor(label models.Label) (string, error) {
	switch label {
	case models.LabelPositive:
		return StreamPositive, nil
	case models.LabelNegative:
		return StreamNegative, nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnroutableLabel, label)
	}
}

// Router maps labels to files inside an output directory.
// Each label owns exactly one file, so streams never interleave.
type Router struct {
	dir     string
	storage *storage.Storage
}

// New creates a Router writing into dir.
func New(dir string, s *storage.Storage) *Router {
	return &Router{dir: dir, storage: s}
}

// Output identifies a written stream.
type Output struct {
	Stream string
	Path   string
}

// Write replaces the label's stream with entries, one "word<TAB>count" line each.
func (r *Router) Write(label models.Label, entries []models.CountEntry) (Output, error) {
	stream, err := StreamFor(label)
	if err != nil {
		return Output{}, err
	}

	out := Output{Stream: stream, Path: filepath.Join(r.dir, stream)}
	if err := r.storage.SaveFile(out.Path, Format(entries)); err != nil {
		return Output{}, fmt.Errorf("failed to write %s stream: %w", stream, err)
	}
	return out, nil
}

// Format renders entries in the stream text form.
func Format(entries []models.CountEntry) []byte {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.Word)
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(e.Count))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
