package job

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/sentiment-wordcount/internal/common"
	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/dtnitsch/sentiment-wordcount/pkg/db"
	"github.com/dtnitsch/sentiment-wordcount/pkg/mapreduce"
	"github.com/dtnitsch/sentiment-wordcount/pkg/router"
	"github.com/dtnitsch/sentiment-wordcount/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Usage is printed when the positional arguments are wrong.
const Usage = "Usage: sentiment-wordcount [flags] <input csv> <output dir> <stopword file>"

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// configFromContext builds the job configuration from an optional YAML file,
// the CLI flags and the three positional arguments.
func configFromContext(c *cli.Context) (*models.JobConfig, error) {
	cfg := &models.JobConfig{}
	if c.IsSet("config") {
		loaded, err := models.LoadJobConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.InputPath = c.Args().Get(0)
	cfg.OutputDir = c.Args().Get(1)
	cfg.StopwordPath = c.Args().Get(2)

	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("top") {
		cfg.TopK = c.Int("top")
	}
	if c.IsSet("strip-markup") {
		cfg.StripMarkup = c.Bool("strip-markup")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunAction runs the word count job. Exit status is 0 on success, 1 when the
// job fails and 2 for usage errors.
func RunAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit(Usage, ExitUsage)
	}

	logger := newLogger(c)
	startTime := time.Now()

	cfg, err := configFromContext(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v\n%s", err, Usage), ExitUsage)
	}

	var history *db.DB
	var runID int64
	if !c.Bool("no-history") {
		history, runID = startHistory(logger, cfg)
		if history != nil {
			defer history.Close()
		}
	}

	s := &storage.Storage{}
	result, runErr := Run(c.Context, logger, cfg, s)
	if runErr != nil {
		logger.Error("Job failed", "error", runErr)
		if history != nil {
			if err := history.FinishRun(runID, db.RunStatusFailed, db.RunStats{}, runErr); err != nil {
				logger.Warn("Failed to record run failure", "run_id", runID, "error", err)
			}
		}
		return cli.Exit(fmt.Sprintf("Error: %v", runErr), ExitFailure)
	}

	if _, err := WriteManifest(cfg, runID, result, s); err != nil {
		logger.Warn("Failed to write summary manifest", "error", err)
	}

	if history != nil {
		finishHistory(logger, history, runID, result)
	}

	logger.Info("Job complete", "run_id", runID, "duration_seconds", time.Since(startTime).Seconds())
	for _, sr := range result.Streams {
		fmt.Printf("%s: %d words written to %s\n", sr.Stream, len(sr.Entries), sr.FilePath)
	}
	return nil
}

// startHistory opens the run history and records the run as started.
// History problems never fail the job; they return a nil database.
func startHistory(logger *slog.Logger, cfg *models.JobConfig) (*db.DB, int64) {
	history, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("Run history disabled", "error", err)
		return nil, 0
	}

	inputHash, err := common.FileHash(cfg.InputPath)
	if err != nil {
		logger.Warn("Failed to hash input", "error", err)
	} else if prev, err := history.LastSuccessfulRunForInput(inputHash); err != nil {
		logger.Warn("Failed to look up previous runs", "error", err)
	} else if prev != nil {
		logger.Info("Identical input was processed before", "previous_run_id", prev.RunID, "previous_output_dir", prev.OutputDir)
	}

	runID, err := history.CreateRun(db.Run{
		InputPath:    cfg.InputPath,
		InputHash:    inputHash,
		OutputDir:    cfg.OutputDir,
		StopwordPath: cfg.StopwordPath,
		Workers:      cfg.Workers,
		ChunkSize:    cfg.ChunkSize,
		TopK:         cfg.TopK,
	})
	if err != nil {
		logger.Warn("Failed to record run start", "error", err)
		_ = history.Close()
		return nil, 0
	}
	logger.Info("Run recorded", "run_id", runID, "db", history.Path())
	return history, runID
}

func finishHistory(logger *slog.Logger, history *db.DB, runID int64, result *Result) {
	for _, sr := range result.Streams {
		if err := history.InsertTopWords(runID, sr.Stream, sr.Entries); err != nil {
			logger.Warn("Failed to record top words", "run_id", runID, "stream", sr.Stream, "error", err)
		}
	}
	if err := history.FinishRun(runID, db.RunStatusSuccess, result.Stats.RunStats(), nil); err != nil {
		logger.Warn("Failed to record run completion", "run_id", runID, "error", err)
	}
}

// RunsAction lists recorded runs, or shows one run with its top words.
func RunsAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.IsSet("id") {
		return showRun(database, c.Int64("id"), c.Int("words"))
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if c.String("format") == "yaml" {
		out, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("failed to marshal runs: %w", err)
		}
		fmt.Print(string(out))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-10s %-10s %-10s %-30s\n",
		"ID", "Started", "Status", "Lines", "Kept", "Pairs", "Input")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8s %-10d %-10d %-10d %-30s\n",
			r.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.Stats.Lines,
			r.Stats.Kept,
			r.Stats.Pairs,
			r.InputPath,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'sentiment-wordcount runs --id <id>' to see top words\n")
	return nil
}

// runDetail is the YAML view of a single run.
type runDetail struct {
	Run      *db.Run             `yaml:"run"`
	TopWords map[string][]string `yaml:"top_words"`
}

func showRun(database *db.DB, runID int64, words int) error {
	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}

	detail := runDetail{Run: run, TopWords: make(map[string][]string)}
	for _, label := range models.Labels {
		stream, err := router.StreamFor(label)
		if err != nil {
			continue
		}
		entries, err := database.GetTopWords(runID, stream)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			detail.TopWords[stream] = mapreduce.TopKeywords(entries, words)
		}
	}

	out, err := yaml.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
