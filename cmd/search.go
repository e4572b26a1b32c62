package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/cache"
	"github.com/lepinkainen/bookfinder/internal/config"
	"github.com/lepinkainen/bookfinder/internal/export"
	"github.com/lepinkainen/bookfinder/internal/googlebooks"
	"github.com/lepinkainen/bookfinder/internal/ratelimit"
	"github.com/lepinkainen/bookfinder/internal/search"
	"github.com/lepinkainen/bookfinder/internal/tui"
)

var (
	output          io.Writer = os.Stdout
	runTUI                    = tui.Run
	exportFavorites           = export.Favorites
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query         []string `arg:"" optional:"" help:"Search terms"`
	NoInteractive bool     `help:"Run a single search and print one page of results"`
	Genre         string   `help:"Only show books in this genre"`
	Year          string   `help:"Only show books published in this year"`
	Rating        string   `help:"Minimum rating bucket (4.5+, 4.0+, 3.5+, 3.0+)"`
	Page          int      `help:"Result page to print" default:"1"`
	JSON          bool     `help:"Print results as JSON"`
	Covers        bool     `help:"Download cover images when exporting favorites" default:"true" negatable:""`
	Overwrite     bool     `help:"Overwrite existing exported notes and covers"`
}

// Run starts the interactive UI, or prints one page of results with --no-interactive.
func (s *SearchCmd) Run(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	searcher := newSearcher(cfg, client)
	query := strings.Join(s.Query, " ")

	if s.NoInteractive {
		return s.runOnce(ctx, cfg, searcher, query)
	}

	favorites, err := runTUI(ctx, tui.Options{
		Searcher: searcher,
		Ping:     client.Ping,
		Query:    query,
		Debounce: cfg.Search.Debounce,
		Notifier: search.LogNotifier{Logger: slog.Default()},
	})
	if err != nil {
		return err
	}

	return s.export(ctx, cfg, favorites)
}

func (s *SearchCmd) validate() error {
	if s.Rating != "" && !slices.Contains(search.RatingBuckets, s.Rating) {
		return fmt.Errorf("invalid rating %q (valid: %s)", s.Rating, strings.Join(search.RatingBuckets, ", "))
	}
	if s.Page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", s.Page)
	}
	return nil
}

func (s *SearchCmd) runOnce(ctx context.Context, cfg *config.Config, searcher search.Searcher, query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a search query is required with --no-interactive")
	}

	ctrl := search.NewController(ctx, searcher, search.Options{
		Debounce: cfg.Search.Debounce,
		Notifier: search.LogNotifier{Logger: slog.Default()},
	})
	defer ctrl.Teardown()

	ctrl.QueryChanged(query)
	ctrl.Submit()
	ctrl.Wait()

	ctrl.SetFilter(search.Filter{Genre: s.Genre, Year: s.Year, Rating: s.Rating})
	ctrl.SetPage(s.Page)
	view := ctrl.View()

	if view.State.Status == search.StatusError {
		return view.State.Err
	}

	if s.JSON {
		return printJSON(output, view)
	}
	printText(output, view)
	return nil
}

func (s *SearchCmd) export(ctx context.Context, cfg *config.Config, favorites []book.Book) error {
	if cfg.Export.Dir == "" {
		if len(favorites) > 0 {
			slog.Info("Favorites not exported, no export directory configured", "count", len(favorites))
		}
		return nil
	}

	result, err := exportFavorites(ctx, favorites, export.Options{
		Dir:       cfg.Export.Dir,
		Overwrite: s.Overwrite,
		Covers:    s.Covers,
	})
	if err != nil {
		return fmt.Errorf("failed to export favorites: %w", err)
	}

	slog.Info("Exported favorites",
		"dir", cfg.Export.Dir,
		"notes", result.Notes,
		"covers", result.Covers,
	)
	return nil
}

func newClient(cfg *config.Config) *googlebooks.Client {
	return googlebooks.NewClient(cfg.APIKey(),
		googlebooks.WithEndpoint(cfg.GoogleBooks.Endpoint),
		googlebooks.WithHTTPClient(&http.Client{Timeout: cfg.GoogleBooks.Timeout}),
		googlebooks.WithRateLimiter(ratelimit.New("googlebooks", cfg.GoogleBooks.RatePerSecond)),
		googlebooks.WithMaxResults(cfg.GoogleBooks.MaxResults),
	)
}

// newSearcher wraps client with the response cache when it is enabled. A
// cache that cannot be opened is logged and skipped.
func newSearcher(cfg *config.Config, client *googlebooks.Client) search.Searcher {
	if !cfg.Cache.Enabled {
		return client
	}

	db, err := cache.GetGlobalCache()
	if err != nil {
		slog.Warn("Search cache unavailable, continuing without it",
			"database", viper.GetString(config.KeyCacheDBFile),
			"error", err,
		)
		return client
	}

	return googlebooks.NewCachedClient(client, db, cfg.Cache.TTL)
}

type pageJSON struct {
	Query      string      `json:"query"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Total      int         `json:"total"`
	Matches    int         `json:"matches"`
	Books      []book.Book `json:"books"`
}

func printJSON(w io.Writer, view search.View) error {
	books := view.Page.Items
	if books == nil {
		books = []book.Book{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pageJSON{
		Query:      view.State.Query,
		Page:       view.Page.Page,
		TotalPages: view.Page.TotalPages,
		Total:      len(view.State.Results),
		Matches:    view.Matches,
		Books:      books,
	})
}

func printText(w io.Writer, view search.View) {
	if view.Matches == 0 {
		if len(view.State.Results) == 0 {
			fmt.Fprintln(w, "No books found. Try a different search term.")
		} else {
			fmt.Fprintln(w, "No books match the selected filters.")
		}
		return
	}

	for i, b := range view.Page.Items {
		n := (view.Page.Page-1)*search.PageSize + i + 1
		fmt.Fprintf(w, "%d. %s by %s\n", n, b.Title, b.Author)
		fmt.Fprintf(w, "   %s | %s | %s | %s\n", b.Genre, b.Year, b.RatingLabel(), b.PriceLabel())
	}
	fmt.Fprintf(w, "Page %d/%d (%d books)\n", view.Page.Page, view.Page.TotalPages, view.Matches)
}
