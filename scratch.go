package main

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Workspace is the process scoped scratch directory downloads are staged in.
type Workspace struct {
	dir string
}

func newWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "catalog_images_")
	if err != nil {
		return nil, err
	}
	return &Workspace{dir: dir}, nil
}

func (w *Workspace) path(filename string) string {
	return filepath.Join(w.dir, filename)
}

func (w *Workspace) cleanup() {
	if err := os.RemoveAll(w.dir); err != nil {
		slog.Warn("cleanup", "dir", w.dir, "error", err, "status", "manual cleanup needed")
		return
	}
	slog.Info("cleanup", "dir", w.dir, "status", "removed")
}
