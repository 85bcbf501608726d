package db

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dtnitsch/sentiment-wordcount/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func newTestRun(input string) Run {
	return Run{
		InputPath:    input,
		InputHash:    "hash-" + input,
		OutputDir:    "/tmp/out",
		StopwordPath: "/tmp/stop.txt",
		Workers:      4,
		ChunkSize:    100,
		TopK:         100,
	}
}

func TestCreateRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.CreateRun(newTestRun("input.csv"))
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("CreateRun() returned 0 run ID")
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != RunStatusRunning {
		t.Errorf("run.Status = %q, want %q", run.Status, RunStatusRunning)
	}
	if run.InputPath != "input.csv" {
		t.Errorf("run.InputPath = %q, want %q", run.InputPath, "input.csv")
	}
	if run.Workers != 4 || run.ChunkSize != 100 || run.TopK != 100 {
		t.Errorf("run config = %+v", run)
	}
	if run.FinishedAt != nil {
		t.Errorf("run.FinishedAt = %v, want nil", run.FinishedAt)
	}
}

func TestFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.CreateRun(newTestRun("input.csv"))
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	stats := RunStats{Lines: 10, Blank: 1, Discarded: 2, Kept: 7, Pairs: 30, Partitions: 2, Stopwords: 3, InputBytes: 412}
	if err := db.FinishRun(runID, RunStatusSuccess, stats, nil); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != RunStatusSuccess {
		t.Errorf("run.Status = %q, want %q", run.Status, RunStatusSuccess)
	}
	if run.Stats != stats {
		t.Errorf("run.Stats = %+v, want %+v", run.Stats, stats)
	}
	if run.FinishedAt == nil {
		t.Error("run.FinishedAt = nil, want timestamp")
	}
	if run.ErrorMessage != "" {
		t.Errorf("run.ErrorMessage = %q, want empty", run.ErrorMessage)
	}
}

func TestFinishRun_Failed(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun(newTestRun("input.csv"))
	if err := db.FinishRun(runID, RunStatusFailed, RunStats{}, errors.New("stopword file missing")); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.ErrorMessage != "stopword file missing" {
		t.Errorf("run.ErrorMessage = %q", run.ErrorMessage)
	}
}

func TestFinishRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.FinishRun(999, RunStatusSuccess, RunStats{}, nil)
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRun(42); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestTopWords(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun(newTestRun("input.csv"))
	pos := []models.CountEntry{{Word: "good", Count: 3}, {Word: "bad", Count: 1}}
	neg := []models.CountEntry{{Word: "slump", Count: 9}}

	if err := db.InsertTopWords(runID, "positive", pos); err != nil {
		t.Fatalf("InsertTopWords(positive) error = %v", err)
	}
	if err := db.InsertTopWords(runID, "negative", neg); err != nil {
		t.Fatalf("InsertTopWords(negative) error = %v", err)
	}

	got, err := db.GetTopWords(runID, "positive")
	if err != nil {
		t.Fatalf("GetTopWords() error = %v", err)
	}
	if !reflect.DeepEqual(got, pos) {
		t.Errorf("GetTopWords(positive) = %v, want %v", got, pos)
	}

	got, err = db.GetTopWords(runID, "negative")
	if err != nil {
		t.Fatalf("GetTopWords() error = %v", err)
	}
	if !reflect.DeepEqual(got, neg) {
		t.Errorf("GetTopWords(negative) = %v, want %v", got, neg)
	}
}

func TestInsertTopWords_UnknownRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.InsertTopWords(12345, "positive", []models.CountEntry{{Word: "x", Count: 1}})
	if err == nil {
		t.Error("InsertTopWords() error = nil, want foreign key violation")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, input := range []string{"a.csv", "b.csv", "c.csv"} {
		r := newTestRun(input)
		r.StartedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := db.CreateRun(r); err != nil {
			t.Fatalf("CreateRun(%s) error = %v", input, err)
		}
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(ListRuns()) = %d, want 3", len(runs))
	}
	if runs[0].InputPath != "c.csv" || runs[2].InputPath != "a.csv" {
		t.Errorf("ListRuns() order = %s, %s, %s", runs[0].InputPath, runs[1].InputPath, runs[2].InputPath)
	}

	limited, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(ListRuns(2)) = %d, want 2", len(limited))
	}
}

func TestLastSuccessfulRunForInput(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := db.LastSuccessfulRunForInput("hash-input.csv")
	if err != nil {
		t.Fatalf("LastSuccessfulRunForInput() error = %v", err)
	}
	if run != nil {
		t.Fatalf("LastSuccessfulRunForInput() = %+v, want nil", run)
	}

	failedID, _ := db.CreateRun(newTestRun("input.csv"))
	_ = db.FinishRun(failedID, RunStatusFailed, RunStats{}, errors.New("boom"))
	okID, _ := db.CreateRun(newTestRun("input.csv"))
	_ = db.FinishRun(okID, RunStatusSuccess, RunStats{}, nil)

	run, err = db.LastSuccessfulRunForInput("hash-input.csv")
	if err != nil {
		t.Fatalf("LastSuccessfulRunForInput() error = %v", err)
	}
	if run == nil || run.RunID != okID {
		t.Errorf("LastSuccessfulRunForInput() = %+v, want run %d", run, okID)
	}
}
