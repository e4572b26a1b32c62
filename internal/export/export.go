// Package export writes the session's favorite books to disk: a JSON dump,
// a SQLite table and one markdown note per book with its cover image.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/datastore"
	"github.com/lepinkainen/bookfinder/internal/fileutil"
)

// File names inside the export directory.
const (
	JSONFile = "favorites.json"
	DBFile   = "favorites.db"
	NotesDir = "notes"
)

const defaultConcurrency = 4

// Options control an export.
type Options struct {
	Dir string
	// Overwrite replaces existing notes and covers. The JSON file and the
	// database are always brought up to date.
	Overwrite   bool
	Covers      bool
	CoverWidth  int
	CoverHeight int
	Concurrency int
	HTTPClient  fileutil.HTTPDoer
	Now         func() time.Time
}

// Result summarizes what was written.
type Result struct {
	JSONPath string
	DBPath   string
	Notes    int
	Covers   int
}

// Favorites exports books. An empty list writes nothing.
func Favorites(ctx context.Context, books []book.Book, opts Options) (*Result, error) {
	if len(books) == 0 {
		slog.Info("No favorites to export")
		return &Result{}, nil
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	opts = withDefaults(opts)

	notesDir := filepath.Join(opts.Dir, NotesDir)
	if err := os.MkdirAll(notesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	result := &Result{
		JSONPath: filepath.Join(opts.Dir, JSONFile),
		DBPath:   filepath.Join(opts.Dir, DBFile),
	}

	covers := map[string]string{}
	if opts.Covers {
		var err error
		covers, err = downloadCovers(ctx, books, notesDir, opts)
		if err != nil {
			return nil, err
		}
		result.Covers = len(covers)
	}

	exported := opts.Now().Format(time.DateOnly)
	for _, b := range books {
		data, err := BookNote(b, covers[b.Title], exported).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build note for %q: %w", b.Title, err)
		}

		written, err := fileutil.WriteFileWithOverwrite(fileutil.GetMarkdownFilePath(b.Title, notesDir), data, 0644, opts.Overwrite)
		if err != nil {
			return nil, fmt.Errorf("failed to write note for %q: %w", b.Title, err)
		}
		if written {
			result.Notes++
		}
	}

	if _, err := fileutil.WriteJSONFile(books, result.JSONPath, true); err != nil {
		return nil, err
	}

	if err := writeDatabase(result.DBPath, books, opts.Now()); err != nil {
		return nil, err
	}

	slog.Info("Exported favorites",
		"dir", opts.Dir,
		"books", len(books),
		"notes", result.Notes,
		"covers", result.Covers,
	)
	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.CoverWidth <= 0 {
		opts.CoverWidth = DefaultCoverWidth
	}
	if opts.CoverHeight <= 0 {
		opts.CoverHeight = DefaultCoverHeight
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// downloadCovers fetches covers in parallel. A failed cover is logged and
// the note is written without it; only cancellation aborts the export.
func downloadCovers(ctx context.Context, books []book.Book, notesDir string, opts Options) (map[string]string, error) {
	var (
		mu     sync.Mutex
		covers = make(map[string]string, len(books))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, b := range books {
		if b.ImageURL == "" || b.ImageURL == book.PlaceholderCover {
			continue
		}

		g.Go(func() error {
			res, err := fileutil.DownloadCover(ctx, fileutil.CoverDownloadOptions{
				URL:       b.ImageURL,
				OutputDir: notesDir,
				Filename:  fileutil.BuildCoverFilename(b.Title),
				Overwrite: opts.Overwrite,
				Client:    opts.HTTPClient,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Warn("Skipping cover", "title", b.Title, "error", err)
				return nil
			}
			if res == nil {
				return nil
			}

			if res.Downloaded {
				if _, err := resizeCover(res.LocalPath, opts.CoverWidth, opts.CoverHeight); err != nil {
					slog.Warn("Keeping cover at original size", "title", b.Title, "error", err)
				}
			}

			mu.Lock()
			covers[b.Title] = filepath.ToSlash(res.RelativePath)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cover download interrupted: %w", err)
	}
	return covers, nil
}

func writeDatabase(path string, books []book.Book, now time.Time) error {
	store := datastore.NewSQLiteStore(path)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(datastore.FavoritesSchema); err != nil {
		return err
	}

	exportedAt := now.UTC().Format(time.RFC3339)
	records := make([]map[string]any, 0, len(books))
	for _, b := range books {
		records = append(records, map[string]any{
			"title":       b.Title,
			"id":          b.ID,
			"author":      b.Author,
			"description": b.Description,
			"rating":      b.Rating,
			"genre":       b.Genre,
			"year":        b.Year,
			"image_url":   b.ImageURL,
			"isbn":        b.ISBN,
			"publisher":   b.Publisher,
			"language":    b.Language,
			"pages":       b.Pages,
			"price":       b.Price,
			"exported_at": exportedAt,
		})
	}

	if err := store.BatchUpsert(datastore.FavoritesTable, records); err != nil {
		return fmt.Errorf("failed to write favorites table: %w", err)
	}
	return nil
}
