package fileutil

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bookfinder/internal/testutil"
)

func TestBuildCoverFilename(t *testing.T) {
	assert.Equal(t, "Dune - cover.jpg", BuildCoverFilename("Dune"))
	assert.Equal(t, "Dune - Messiah - cover.jpg", BuildCoverFilename("Dune: Messiah"))
}

func TestDownloadCover_EmptyURL(t *testing.T) {
	result, err := DownloadCover(context.Background(), CoverDownloadOptions{OutputDir: t.TempDir(), Filename: "x.jpg"})

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestDownloadCover_Success(t *testing.T) {
	calls := 0
	server := testutil.NewIPv4TestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("fake image"))
	}))
	env := testutil.NewTestEnv(t)

	opts := CoverDownloadOptions{
		URL:       server.URL + "/cover.jpg",
		OutputDir: env.RootDir(),
		Filename:  BuildCoverFilename("Dune"),
	}

	result, err := DownloadCover(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Downloaded)
	assert.Equal(t, "attachments/Dune - cover.jpg", result.RelativePath)

	data, err := os.ReadFile(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "fake image", string(data))

	// Second call finds the file and does not hit the server.
	result, err = DownloadCover(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.Equal(t, 1, calls)

	opts.Overwrite = true
	result, err = DownloadCover(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Downloaded)
	assert.Equal(t, 2, calls)
}

func TestDownloadCover_HTTPError(t *testing.T) {
	server := testutil.NewIPv4TestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := DownloadCover(context.Background(), CoverDownloadOptions{
		URL:       server.URL,
		OutputDir: t.TempDir(),
		Filename:  "missing.jpg",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestDownloadCover_CancelledContext(t *testing.T) {
	server := testutil.NewIPv4TestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DownloadCover(ctx, CoverDownloadOptions{URL: server.URL, OutputDir: t.TempDir(), Filename: "c.jpg"})

	assert.Error(t, err)
}
