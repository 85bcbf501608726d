package manifest

// SummaryManifest represents the structure of the summary JSON file written
// next to the output streams. It gives an overview of a run without reading
// the streams themselves.
type SummaryManifest struct {
	GeneratedAt  string          `json:"generated_at"`
	RunID        int64           `json:"run_id,omitempty"`
	InputPath    string          `json:"input"`
	InputBytes   int64           `json:"input_bytes"`
	InputModTime string          `json:"input_modified_at,omitempty"`
	StopwordPath string          `json:"stopwords"`
	Stopwords    int             `json:"stopword_count"`
	Workers      int             `json:"workers"`
	Partitions   int             `json:"partitions"`
	Lines        int             `json:"lines"`
	Blank        int             `json:"blank"`
	Discarded    int             `json:"discarded"`
	Kept         int             `json:"kept"`
	Pairs        int             `json:"pairs"`
	Unroutable   int             `json:"unroutable,omitempty"`
	Streams      []StreamSummary `json:"streams"`
}

// StreamSummary describes one named output stream.
type StreamSummary struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	FilePath      string   `json:"file_path"`
	Entries       int      `json:"entries"`
	DistinctWords int      `json:"distinct_words"`
	TopKeywords   []string `json:"top_keywords,omitempty"`
}
