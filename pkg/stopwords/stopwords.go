// Package stopwords loads the list of words that are excluded from counting.
package stopwords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dtnitsch/sentiment-wordcount/models"
)

// Set is an immutable set of lowercase stopwords.
// It is built once and then only read, so a single Set can be shared by
// any number of goroutines without locking.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from in-memory words. Words are trimmed and lowercased;
// empty words are ignored.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

// Load reads a stopword file with one word per line.
// Any failure to open or read the file is returned; there is no fallback list.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopword file: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read stopword file %s: %w", path, err)
	}
	return s, nil
}

// Read builds a Set from a reader with one word per line.
func Read(r io.Reader) (*Set, error) {
	s := &Set{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) add(word string) {
	word = strings.ToLower(models.Trim(word))
	if word == "" {
		return
	}
	s.words[word] = struct{}{}
}

// Contains reports whether word is a stopword. Lookups are exact: callers
// pass already-lowercased tokens. A nil Set contains nothing.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
