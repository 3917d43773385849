package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vegasq/linqcat/internal/logging"
	"github.com/vegasq/linqcat/linq"
)

// MaxFiles caps how many files one glob may expand to.
const MaxFiles = 1000

// FileField is the field added to rows read through a glob pattern.
const FileField = "_file"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTableRequired     = errors.New("sqlite source requires a table name")
	ErrNoMatches         = errors.New("no files match pattern")
	ErrTooManyFiles      = errors.New("glob pattern matched too many files")
)

// Options tunes how sources are read.
type Options struct {
	// Table names the table to read from SQLite databases.
	Table string
	// Workers bounds how many files ReadFiles loads at once. Values below
	// one mean one.
	Workers int
}

// Format identifies a file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatParquet
	FormatJSON
	FormatJSONLines
	FormatCSV
	FormatSQLite
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return FormatParquet
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONLines
	case ".csv":
		return FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatUnknown
	}
}

// tableRequired reports a missing table name along with the tables the
// database holds, when they can be listed.
func tableRequired(path string) error {
	tables, err := Tables(path)
	if err != nil || len(tables) == 0 {
		return fmt.Errorf("%w: %s", ErrTableRequired, path)
	}
	return fmt.Errorf("%w: %s (tables: %s)", ErrTableRequired, path, strings.Join(tables, ", "))
}

// ReadFile reads every row of one file.
func ReadFile(path string, opts Options) (linq.List, error) {
	var (
		rows linq.List
		err  error
	)

	switch DetectFormat(path) {
	case FormatParquet:
		rows, err = readParquet(path)
	case FormatJSON:
		rows, err = readJSON(path)
	case FormatJSONLines:
		rows, err = readJSONLines(path)
	case FormatCSV:
		rows, err = readCSV(path)
	case FormatSQLite:
		if opts.Table == "" {
			return nil, tableRequired(path)
		}
		rows, err = readSQLite(path, opts.Table)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	logging.Get().Debug("read file", "path", path, "rows", len(rows))
	return rows, nil
}

// ReadFiles reads a single path, or every file matching a glob pattern.
//
// Matched files are loaded concurrently on a pool of opts.Workers goroutines
// and concatenated in sorted path order. Each row read through a glob is
// tagged with a "_file" field; plain paths are returned untouched.
func ReadFiles(pattern string, opts Options) (linq.List, error) {
	if !IsGlob(pattern) {
		return ReadFile(pattern, opts)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, pattern)
	}
	if len(matches) > MaxFiles {
		return nil, fmt.Errorf("%w (%d), maximum is %d", ErrTooManyFiles, len(matches), MaxFiles)
	}
	sort.Strings(matches)

	results, err := readAll(matches, opts)
	if err != nil {
		return nil, err
	}

	var all linq.List
	for i, rows := range results {
		for _, row := range rows {
			all = append(all, tagFile(row, matches[i]))
		}
	}
	return all, nil
}

// IsGlob reports whether pattern contains glob metacharacters.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// readAll loads paths on an ants pool, keeping results in path order
func readAll(paths []string, opts Options) ([]linq.List, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		logging.Get().Error("reader panic", "panic", v)
		fail(fmt.Errorf("reader panic: %v", v))
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]linq.List, len(paths))
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rows, err := ReadFile(path, opts)
			if err != nil {
				fail(fmt.Errorf("failed to read %s: %w", path, err))
				return
			}
			results[i] = rows
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("failed to schedule %s: %w", path, submitErr))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func tagFile(row linq.Value, path string) linq.Value {
	r, ok := row.(*linq.Record)
	if !ok {
		return row
	}
	return r.With(FileField, linq.Text(path))
}
