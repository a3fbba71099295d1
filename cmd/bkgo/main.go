// Command bkgo runs the fuzzy match service and its offline tooling:
// building binary index artifacts from term files, ad-hoc queries, and
// BK-tree vs. linear scan benchmarks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	cli "github.com/urfave/cli/v2"

	"github.com/hupe1980/bkgo"
	"github.com/hupe1980/bkgo/blobstore"
	minioblob "github.com/hupe1980/bkgo/blobstore/minio"
	"github.com/hupe1980/bkgo/corpus"
	"github.com/hupe1980/bkgo/server"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:  "bkgo",
		Usage: "fuzzy string matching over a BK-tree index",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"BKGO_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "term-dir",
			Usage:   "local directory containing term files",
			Value:   ".",
			EnvVars: []string{"BKGO_TERM_DIR"},
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3-compatible endpoint for term files (overrides term-dir)",
			EnvVars: []string{"BKGO_S3_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket holding term files",
			EnvVars: []string{"BKGO_S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "s3-prefix",
			Usage:   "key prefix within the S3 bucket",
			EnvVars: []string{"BKGO_S3_PREFIX"},
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			EnvVars: []string{"BKGO_S3_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			EnvVars: []string{"BKGO_S3_SECRET_KEY"},
		},
		&cli.BoolFlag{
			Name:    "s3-secure",
			Usage:   "use TLS for the S3 endpoint",
			Value:   true,
			EnvVars: []string{"BKGO_S3_SECURE"},
		},
	}

	app.Commands = []*cli.Command{
		serveCmd,
		buildCmd,
		queryCmd,
		benchCmd,
	}

	return app.Run(args)
}

func setupLogger(cctx *cli.Context) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func setupStore(cctx *cli.Context) (blobstore.Store, error) {
	endpoint := cctx.String("s3-endpoint")
	if endpoint == "" {
		return blobstore.NewLocalStore(cctx.String("term-dir")), nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cctx.String("s3-access-key"), cctx.String("s3-secret-key"), ""),
		Secure: cctx.Bool("s3-secure"),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return minioblob.NewStore(client, cctx.String("s3-bucket"), cctx.String("s3-prefix")), nil
}

func corpusOptions(cctx *cli.Context, logger *slog.Logger) corpus.Options {
	opts := corpus.DefaultOptions
	opts.Column = cctx.Int("column")
	opts.Delimiter = cctx.String("delimiter")
	opts.MaxTerms = cctx.Int("max-terms")
	opts.Logger = logger
	return opts
}

var corpusFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "delimiter",
		Usage:   "column delimiter in term files",
		Value:   "|",
		EnvVars: []string{"BKGO_DELIMITER"},
	},
	&cli.IntFlag{
		Name:    "column",
		Usage:   "zero-based term column index",
		Value:   14,
		EnvVars: []string{"BKGO_COLUMN"},
	},
	&cli.IntFlag{
		Name:    "max-terms",
		Usage:   "cap on loaded terms (0 = unlimited)",
		EnvVars: []string{"BKGO_MAX_TERMS"},
	},
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "run the HTTP API",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "address and port to listen on",
			Value:   ":8000",
			EnvVars: []string{"BKGO_BIND"},
		},
		&cli.StringSliceFlag{
			Name:    "term-file",
			Usage:   "term file name within the store (repeatable)",
			EnvVars: []string{"BKGO_TERM_FILES"},
		},
		&cli.StringFlag{
			Name:    "artifact",
			Usage:   "prebuilt index artifact to load at startup",
			EnvVars: []string{"BKGO_ARTIFACT"},
		},
		&cli.Float64Flag{
			Name:    "search-rps",
			Usage:   "per-client rate limit on search endpoints (0 = off)",
			EnvVars: []string{"BKGO_SEARCH_RPS"},
		},
	}, corpusFlags...),
	Action: func(cctx *cli.Context) error {
		logger := setupLogger(cctx)

		store, err := setupStore(cctx)
		if err != nil {
			return err
		}

		var matcher *bkgo.Matcher
		if artifact := cctx.String("artifact"); artifact != "" {
			matcher, err = bkgo.LoadMatcherFromFile(artifact, bkgo.WithLogger(bkgo.NewLogger(logger.Handler())))
			if err != nil {
				return fmt.Errorf("load artifact: %w", err)
			}
			logger.Info("loaded index artifact", "path", artifact, "terms", matcher.Len())
		} else {
			matcher = bkgo.New(bkgo.WithLogger(bkgo.NewLogger(logger.Handler())))
		}

		srv := server.NewServer(matcher, store, server.Config{
			TermBlobs:     cctx.StringSlice("term-file"),
			CorpusOptions: corpusOptions(cctx, logger),
			SearchRPS:     cctx.Float64("search-rps"),
		}, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.RunAPI(cctx.String("bind"))
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

var buildCmd = &cli.Command{
	Name:      "build",
	Usage:     "build a binary index artifact from term files",
	ArgsUsage: "TERM_FILE...",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "out",
			Usage:    "output artifact path",
			Required: true,
			EnvVars:  []string{"BKGO_OUT"},
		},
	}, corpusFlags...),
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() == 0 {
			return fmt.Errorf("at least one term file is required")
		}

		logger := setupLogger(cctx)

		store, err := setupStore(cctx)
		if err != nil {
			return err
		}

		matcher := bkgo.New(bkgo.WithLogger(bkgo.NewLogger(logger.Handler())))

		start := time.Now()
		stats, err := matcher.LoadCorpus(cctx.Context, store, cctx.Args().Slice(), corpusOptions(cctx, logger))
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}

		out := cctx.String("out")
		if err := matcher.SaveToFile(out); err != nil {
			return fmt.Errorf("save artifact: %w", err)
		}

		logger.Info("artifact built",
			"path", out,
			"terms", matcher.Len(),
			"lines", stats.Lines,
			"skipped", stats.Skipped,
			"elapsed", time.Since(start))
		return nil
	},
}

var queryCmd = &cli.Command{
	Name:      "query",
	Usage:     "query a prebuilt index artifact",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "artifact",
			Usage:    "index artifact path",
			Required: true,
			EnvVars:  []string{"BKGO_ARTIFACT"},
		},
		&cli.IntFlag{
			Name:  "maxdist",
			Usage: "maximum edit distance",
			Value: 1,
		},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return fmt.Errorf("exactly one query term is required")
		}

		matcher, err := bkgo.LoadMatcherFromFile(cctx.String("artifact"), bkgo.WithLogger(bkgo.NoopLogger()))
		if err != nil {
			return fmt.Errorf("load artifact: %w", err)
		}

		matches, err := matcher.Search(cctx.Context, cctx.Args().First(), cctx.Int("maxdist"))
		if err != nil {
			return err
		}

		for _, m := range matches {
			fmt.Printf("%d\t%s\n", m.Distance, m.Term)
		}
		return nil
	},
}

var benchCmd = &cli.Command{
	Name:  "bench",
	Usage: "compare BK-tree search against a linear scan",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "artifact",
			Usage:    "index artifact path",
			Required: true,
			EnvVars:  []string{"BKGO_ARTIFACT"},
		},
		&cli.IntFlag{
			Name:  "maxdist",
			Usage: "maximum edit distance",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "queries",
			Usage: "number of sampled query terms",
			Value: 100,
		},
	},
	Action: func(cctx *cli.Context) error {
		matcher, err := bkgo.LoadMatcherFromFile(cctx.String("artifact"), bkgo.WithLogger(bkgo.NoopLogger()))
		if err != nil {
			return fmt.Errorf("load artifact: %w", err)
		}

		terms := matcher.Terms()
		if len(terms) == 0 {
			return fmt.Errorf("artifact contains no terms")
		}

		n := cctx.Int("queries")
		if n > len(terms) {
			n = len(terms)
		}
		queries := terms[:n]
		maxDist := cctx.Int("maxdist")

		start := time.Now()
		for _, q := range queries {
			if _, err := matcher.Search(cctx.Context, q, maxDist); err != nil {
				return err
			}
		}
		bkElapsed := time.Since(start)

		start = time.Now()
		for _, q := range queries {
			if _, err := matcher.LinearSearch(cctx.Context, q, maxDist); err != nil {
				return err
			}
		}
		linElapsed := time.Since(start)

		fmt.Printf("queries:  %d (maxdist %d)\n", n, maxDist)
		fmt.Printf("bktree:   %s\n", bkElapsed)
		fmt.Printf("linear:   %s\n", linElapsed)
		if bkElapsed > 0 {
			fmt.Printf("speedup:  %.2fx\n", linElapsed.Seconds()/bkElapsed.Seconds())
		}
		return nil
	},
}
