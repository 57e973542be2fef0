package main

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

const chunkSize = 8192

type Fetcher struct {
	client *http.Client
}

func newFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// fetch streams the body of rawURL into localPath. On failure a partial file
// may remain on disk; callers never reference it.
func (f *Fetcher) fetch(ctx context.Context, rawURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}

	out, err := os.Create(localPath)
	if err != nil {
		return err
	}

	n, err := io.CopyBuffer(out, resp.Body, make([]byte, chunkSize))
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	slog.Info("imageFetch", "url", rawURL, "bytes", n, "status", "fetched")
	return nil
}
