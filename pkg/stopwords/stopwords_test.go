package stopwords

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stopwords.txt")
	content := "the\n  And  \n\nON\r\nof\nthe\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write stopword file: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	for _, w := range []string{"the", "and", "on", "of"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
	if s.Contains("") {
		t.Error("Contains(\"\") = true, want false")
	}
	if s.Contains("And") {
		t.Error("Contains(\"And\") = true, want false (lookups are exact)")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want a not-exist error", err)
	}
}

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader("a\nb\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !s.Contains("a") || !s.Contains("b") {
		t.Errorf("Read() set missing words, len = %d", s.Len())
	}
}

func TestNew(t *testing.T) {
	s := New(" Stock ", "", "rally")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("stock") {
		t.Error("Contains(\"stock\") = false, want true")
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	if s.Contains("the") {
		t.Error("nil Set Contains() = true, want false")
	}
	if s.Len() != 0 {
		t.Errorf("nil Set Len() = %d, want 0", s.Len())
	}
}
