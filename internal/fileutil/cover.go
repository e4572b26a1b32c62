package fileutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPDoer is the subset of *http.Client used for downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CoverDownloadOptions describes one cover download.
type CoverDownloadOptions struct {
	// URL is the source image.
	URL string
	// OutputDir is the note directory; covers go to its attachments/ subdirectory.
	OutputDir string
	// Filename is the cover file name, see BuildCoverFilename.
	Filename string
	// Overwrite forces a download even when the file exists.
	Overwrite bool
	// Client defaults to an http.Client with a 30s timeout.
	Client HTTPDoer
}

// CoverDownloadResult describes where a cover ended up.
type CoverDownloadResult struct {
	Downloaded   bool
	LocalPath    string
	RelativePath string
	Filename     string
}

// DownloadCover saves a cover image under OutputDir/attachments. An empty URL
// returns (nil, nil).
func DownloadCover(ctx context.Context, opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}

	attachmentsDir := filepath.Join(opts.OutputDir, "attachments")
	if err := os.MkdirAll(attachmentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	result := &CoverDownloadResult{
		LocalPath:    filepath.Join(attachmentsDir, opts.Filename),
		RelativePath: filepath.Join("attachments", opts.Filename),
		Filename:     opts.Filename,
	}

	if FileExists(result.LocalPath) && !opts.Overwrite {
		slog.Debug("Cover already exists, skipping download", "path", result.LocalPath)
		return result, nil
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	file, err := os.Create(result.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to write cover file: %w", err)
	}

	slog.Info("Downloaded cover", "path", result.LocalPath)
	result.Downloaded = true
	return result, nil
}

// BuildCoverFilename returns "Title - cover.jpg".
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
