package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Migrator struct {
	bucket       *Bucket
	engine       *transferEngine
	workspace    *Workspace
	folder       string
	skipExisting bool
	pacing       time.Duration
}

func newMigrator(bucket *Bucket, fetcher *Fetcher, workspace *Workspace, s *Settings) *Migrator {
	return &Migrator{
		bucket:       bucket,
		engine:       &transferEngine{fetcher: fetcher, store: bucket},
		workspace:    workspace,
		folder:       s.Folder,
		skipExisting: s.SkipExisting,
		pacing:       s.Pacing,
	}
}

// migrate processes urls in sorted order and returns one outcome per URL. Item
// failures are recorded, never returned. Cancelling ctx stops the loop before
// the next URL; the outcomes gathered so far are returned with ctx's error.
func (m *Migrator) migrate(ctx context.Context, urls urlSet) (Outcomes, error) {
	list := urls.sorted()
	total := len(list)
	outcomes := make(Outcomes, total)

	slog.Info("migration", "images", total, "scratch", m.workspace.dir, "folder", m.folder, "bucket", m.bucket.name)

	// in-flight items finish even after an interrupt
	opCtx := context.WithoutCancel(ctx)

	for idx, src := range list {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("interrupted after %d of %d images: %w", len(outcomes), total, err)
		}

		slog.Info("processing", "item", fmt.Sprintf("%d/%d", idx+1, total), "url", src)

		outcome, transferred := m.migrateOne(opCtx, src)
		outcomes[src] = outcome

		if transferred && idx < total-1 {
			if err := m.pause(ctx); err != nil {
				return outcomes, fmt.Errorf("interrupted after %d of %d images: %w", len(outcomes), total, err)
			}
		}
	}

	return outcomes, nil
}

// migrateOne reports whether the transfer engine was invoked.
func (m *Migrator) migrateOne(ctx context.Context, src string) (Outcome, bool) {
	key, filename := destinationKey(m.folder, src)

	exists := m.skipExisting && m.bucket.exists(ctx, key)
	if decide(m.skipExisting, exists) == actionSkip {
		slog.Info("processing", "url", src, "key", key, "status", "already exists, skipping")

		ref, err := m.bucket.locate(ctx, key)
		if err != nil {
			return Outcome{
				Status:      StatusError,
				StoragePath: key,
				Filename:    filename,
				Error:       fmt.Sprintf("failed to get existing URL: %v", err),
			}, false
		}
		return Outcome{
			Status:         StatusSkippedExisting,
			DestinationURL: ref,
			StoragePath:    key,
			Filename:       filename,
		}, false
	}

	res := m.engine.run(ctx, src, m.workspace.path(filename), key)
	switch {
	case !res.fetched:
		return Outcome{
			Status:      StatusDownloadFailed,
			StoragePath: key,
			Filename:    filename,
			Error:       res.err.Error(),
		}, true
	case res.err != nil:
		return Outcome{
			Status:      StatusUploadFailed,
			StoragePath: key,
			Filename:    filename,
			Error:       res.err.Error(),
		}, true
	}

	slog.Info("processing", "url", src, "destination", res.url, "status", "success")
	return Outcome{
		Status:         StatusSuccess,
		DestinationURL: res.url,
		StoragePath:    key,
		Filename:       filename,
	}, true
}

func (m *Migrator) pause(ctx context.Context) error {
	if m.pacing <= 0 {
		return nil
	}

	t := time.NewTimer(m.pacing)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
