package main

import (
	"context"
	"log/slog"
)

type publisher interface {
	publish(ctx context.Context, localPath, key string) (string, error)
}

type transferEngine struct {
	fetcher *Fetcher
	store   publisher
}

type transferResult struct {
	fetched bool
	url     string
	err     error
}

// run fetches src into localPath and publishes it under key. Publish is never
// attempted when the fetch fails.
func (t *transferEngine) run(ctx context.Context, src, localPath, key string) transferResult {
	if err := t.fetcher.fetch(ctx, src, localPath); err != nil {
		slog.Error("imageFetch", "url", src, "error", err)
		return transferResult{err: err}
	}

	ref, err := t.store.publish(ctx, localPath, key)
	if err != nil {
		slog.Error("objectPublish", "key", key, "error", err)
		return transferResult{fetched: true, err: err}
	}

	return transferResult{fetched: true, url: ref}
}
