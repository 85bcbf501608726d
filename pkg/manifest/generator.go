package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/sentiment-wordcount/pkg/storage"
)

// FileName is the manifest file name inside the output directory.
const FileName = "summary.json"

// GenerateSummary writes the manifest into outputDir and returns its path.
func GenerateSummary(m SummaryManifest, outputDir string, s *storage.Storage) (string, error) {
	if m.GeneratedAt == "" {
		m.GeneratedAt = time.Now().Format(time.RFC3339)
	}

	manifestPath := filepath.Join(outputDir, FileName)
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
