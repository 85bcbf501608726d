package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/sentiment-wordcount/internal/job"
	"github.com/dtnitsch/sentiment-wordcount/models"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "sentiment-wordcount",
		Usage:     "count the most frequent words per sentiment label",
		ArgsUsage: "<input csv> <output dir> <stopword file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with job tunables (workers, chunk_size, top_k, strip_markup, db)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: models.DefaultWorkers,
				Usage: "number of parallel map workers",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Value: models.DefaultChunkSize,
				Usage: "input lines per partition",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: models.DefaultTopK,
				Usage: "number of words written per label",
			},
			&cli.BoolFlag{
				Name:  "strip-markup",
				Usage: "extract text from HTML fragments in records before tokenizing",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "run history database path (default: next to the binary)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not record this run in the history database",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-partition progress",
			},
		},
		Action: job.RunAction,
		Commands: []*cli.Command{
			{
				Name:  "runs",
				Usage: "list recorded runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "run history database path (default: next to the binary)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to list (0 for all)",
					},
					&cli.Int64Flag{
						Name:  "id",
						Usage: "show a single run with its top words",
					},
					&cli.IntFlag{
						Name:  "words",
						Value: 25,
						Usage: "top words per stream shown with --id (0 for all)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "output format: table or yaml",
					},
				},
				Action: job.RunsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(job.ExitFailure)
	}
}
