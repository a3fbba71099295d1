// Package corpus loads reference terms from delimited source files
// (UMLS MRCONSO.RRF shape: pipe-separated columns, term string in
// column 14). Files may be plain, gzip- or lz4-compressed; the codec
// is picked by file extension.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/bkgo/blobstore"
)

// Options contains configuration options for term extraction.
type Options struct {
	// Delimiter separates columns within a line.
	Delimiter string

	// Column is the zero-based index of the term column.
	Column int

	// MaxTerms caps the number of extracted terms. Zero means no cap.
	MaxTerms int

	// Logger receives progress and skip accounting. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions matches the MRCONSO.RRF layout.
var DefaultOptions = Options{
	Delimiter: "|",
	Column:    14,
}

// Stats summarizes one extraction pass.
type Stats struct {
	Lines   int // lines read
	Terms   int // terms yielded
	Skipped int // malformed rows (too few columns or empty term)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// progressInterval is how often the scan logs a progress line.
const progressInterval = 500_000

// decompressor wraps r according to the blob name's extension.
func decompressor(name string, r io.Reader) (io.Reader, func() error, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader for %q: %w", name, err)
		}
		return zr, zr.Close, nil
	case strings.HasSuffix(name, ".lz4"):
		return lz4.NewReader(r), nil, nil
	default:
		return r, nil, nil
	}
}

// scan reads lines from r and hands each extracted term to fn. It
// stops early when fn returns false or ctx is done.
func scan(ctx context.Context, name string, r io.Reader, opts Options, fn func(term string) bool) (Stats, error) {
	log := opts.logger()

	var stats Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for sc.Scan() {
		stats.Lines++

		if stats.Lines%progressInterval == 0 {
			log.Info("scanning corpus", "blob", name, "lines", stats.Lines, "terms", stats.Terms)
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		parts := strings.Split(sc.Text(), opts.Delimiter)
		if len(parts) <= opts.Column {
			stats.Skipped++
			continue
		}
		term := strings.TrimSpace(parts[opts.Column])
		if term == "" {
			stats.Skipped++
			continue
		}

		stats.Terms++
		if !fn(term) {
			return stats, nil
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("scanning %q: %w", name, err)
	}

	if stats.Skipped > 0 {
		log.Info("skipped malformed corpus rows", "blob", name, "skipped", stats.Skipped)
	}

	return stats, nil
}

// ReadTerms extracts all terms from the named blob.
func ReadTerms(ctx context.Context, store blobstore.Store, name string, opts Options) ([]string, Stats, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, Stats{}, err
	}
	defer blob.Close()

	r, closeFunc, err := decompressor(name, blob)
	if err != nil {
		return nil, Stats{}, err
	}
	if closeFunc != nil {
		defer closeFunc()
	}

	var terms []string
	stats, err := scan(ctx, name, r, opts, func(term string) bool {
		terms = append(terms, term)
		return opts.MaxTerms == 0 || len(terms) < opts.MaxTerms
	})
	if err != nil {
		return nil, stats, err
	}

	if opts.MaxTerms > 0 && len(terms) >= opts.MaxTerms {
		opts.logger().Warn("reached term cap, stopping early", "blob", name, "max_terms", opts.MaxTerms)
	}

	return terms, stats, nil
}
