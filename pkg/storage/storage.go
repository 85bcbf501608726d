package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// SaveFile writes content to filePath, creating parent directories as needed.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// GetFileStats returns the size and modification time of a file without
// reading it.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// Partition reads filePath line by line and sends contiguous chunks of at
// most chunkSize lines on out. out is closed when the file is exhausted,
// reading fails, or ctx is cancelled. Lines have no length limit.
func (s *Storage) Partition(ctx context.Context, filePath string, chunkSize int, out chan<- []string) error {
	defer close(out)

	if chunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening input: %w", err)
	}
	defer f.Close()

	send := func(chunk []string) error {
		select {
		case out <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	reader := bufio.NewReaderSize(f, 64*1024)
	chunk := make([]string, 0, chunkSize)
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			chunk = append(chunk, trimNewline(line))
			if len(chunk) == chunkSize {
				if err := send(chunk); err != nil {
					return err
				}
				chunk = make([]string, 0, chunkSize)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return fmt.Errorf("error reading input %s: %w", filePath, readErr)
		}
	}

	if len(chunk) > 0 {
		return send(chunk)
	}
	return nil
}

func trimNewline(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}
