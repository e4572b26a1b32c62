package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/bookfinder/internal/config"
	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// PingCmd represents the ping command
type PingCmd struct{}

// Run sends a throwaway query to check the API key and connectivity.
func (p *PingCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	if !client.HasAPIKey() {
		return bferrors.ErrMissingAPIKey
	}

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("google books API connection failed (%s): %w", bferrors.Kind(err), err)
	}

	slog.Info("Google Books API connection verified", "endpoint", cfg.GoogleBooks.Endpoint)
	fmt.Fprintln(output, "Google Books API connection OK")
	return nil
}
