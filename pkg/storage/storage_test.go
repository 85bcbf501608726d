package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func collect(t *testing.T, ctx context.Context, s *Storage, path string, chunkSize int) ([][]string, error) {
	t.Helper()
	out := make(chan []string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Partition(ctx, path, chunkSize, out)
	}()

	var chunks [][]string
	for chunk := range out {
		chunks = append(chunks, chunk)
	}
	return chunks, <-errCh
}

func TestPartition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	content := "a,1\r\nb,-1\nc,1\n\nd,1"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	s := &Storage{}
	chunks, err := collect(t, context.Background(), s, path, 2)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	want := [][]string{{"a,1", "b,-1"}, {"c,1", ""}, {"d,1"}}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Partition() chunks = %q, want %q", chunks, want)
	}
}

func TestPartition_LongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.csv")
	long := strings.Repeat("word ", 100000) + ",1"
	if err := os.WriteFile(path, []byte(long+"\n"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	chunks, err := collect(t, context.Background(), &Storage{}, path, 10)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if len(chunks) != 1 || len(chunks[0]) != 1 || chunks[0][0] != long {
		t.Errorf("Partition() did not return the long line intact")
	}
}

func TestPartition_MissingFile(t *testing.T) {
	_, err := collect(t, context.Background(), &Storage{}, filepath.Join(t.TempDir(), "nope.csv"), 10)
	if err == nil {
		t.Error("Partition() error = nil, want error for missing file")
	}
}

func TestPartition_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte("a,1\nb,1\nc,1\n"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan []string)
	err := (&Storage{}).Partition(ctx, path, 1, out)
	if err == nil {
		t.Error("Partition() error = nil, want context error")
	}
	if _, ok := <-out; ok {
		t.Error("Partition() left the output channel open")
	}
}

func TestSaveFile_CreatesDirectories(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")
	if err := s.SaveFile(path, []byte("hello")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("saved file = %q, want %q", data, "hello")
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != 5 {
		t.Errorf("GetFileStats().SizeBytes = %d, want 5", stats.SizeBytes)
	}
	if stats.ModTime.IsZero() {
		t.Error("GetFileStats().ModTime is zero")
	}
}

func TestGetFileStats_Missing(t *testing.T) {
	s := &Storage{}
	_, err := s.GetFileStats(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("GetFileStats() error = %v, want fs.ErrNotExist", err)
	}
}
