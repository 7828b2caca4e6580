// Package diagramcache memoizes rendered match diagrams on disk.
package diagramcache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache implements ports.DiagramCache.
// Artifacts are keyed by job id and filter only, so a job id must never be reused
// for a different result.
type Cache struct {
	dir      string
	renderer ports.DiagramRenderer
}

// New creates a diagram cache below the given cache root.
func New(cacheRoot string, renderer ports.DiagramRenderer) (*Cache, error) {
	dir := domain.DiagramsPath(filepath.Clean(cacheRoot))
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCreateFailed, err.Error()), "path", dir)
	}
	return &Cache{dir: dir, renderer: renderer}, nil
}

// GetOrRender returns the artifact path, rendering the diagram first when it is missing.
// An existing artifact is never replaced.
func (c *Cache) GetOrRender(ctx context.Context, jobID string, result *domain.MatchingResult, filter domain.DiagramFilter) (string, error) {
	if err := domain.ValidateJobID(jobID); err != nil {
		return "", err
	}

	path := filepath.Join(c.dir, domain.DiagramName(jobID, filter, c.renderer.Extension()))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	tmpFile, err := os.CreateTemp(c.dir, ".diagram-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDiagramWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := c.renderer.Render(ctx, tmpFile, result, filter); err != nil {
		_ = tmpFile.Close()
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrDiagramRenderFailed, err.Error()), "job_id", jobID), "filter", filter.Suffix())
	}
	if err := tmpFile.Close(); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDiagramWriteFailed, err.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDiagramWriteFailed, err.Error()), "path", path)
	}

	// A hard link fails instead of replacing when a concurrent render got there first.
	if err := os.Link(tmpName, path); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", zerr.With(zerr.Wrap(domain.ErrDiagramWriteFailed, err.Error()), "path", path)
	}
	return path, nil
}
