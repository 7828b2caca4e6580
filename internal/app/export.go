package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

// ExportRequest selects the samples of an export. FamilyID takes precedence over IDs.
type ExportRequest struct {
	// IDs is a comma separated sample id list. Empty exports every sample.
	IDs      string
	FamilyID *int
	// Output is the destination file. Empty writes the default name into the working directory.
	Output string
}

// Export downloads the export data of the selected samples and writes it to a file.
func (a *App) Export(ctx context.Context, req ExportRequest) error {
	s, err := a.open()
	if err != nil {
		return err
	}

	var ids []int
	name := "export_all_samples.json"
	switch {
	case req.FamilyID != nil:
		samples, err := s.backends.Client.GetSamplesByFamilyID(ctx, *req.FamilyID)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return zerr.With(zerr.Wrap(domain.ErrNotFound, "family has no samples to export"), "family_id", *req.FamilyID)
		}
		ids = make([]int, 0, len(samples))
		for _, smp := range samples {
			ids = append(ids, smp.ID)
		}
		name = fmt.Sprintf("export_family_%d.json", *req.FamilyID)
	case req.IDs != "":
		ids, err = domain.ParseIDList(req.IDs)
		if err != nil {
			return err
		}
		name = "export_samples.json"
	}

	data, err := s.backends.Client.GetExportData(ctx, ids)
	if err != nil {
		return err
	}

	path := req.Output
	if path == "" {
		path = name
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrExportWriteFailed, err.Error()), "path", path)
		}
	}
	// #nosec G306 -- export files are meant to be shared
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrExportWriteFailed, err.Error()), "path", path)
	}

	a.logger.Debug(fmt.Sprintf("exported %d samples", len(ids)))
	return s.presenter.Export(path, len(data))
}

// CacheList presents every stored result entry.
func (a *App) CacheList() error {
	s, err := a.open()
	if err != nil {
		return err
	}
	entries, err := s.backends.Cache.List()
	if err != nil {
		return err
	}
	return s.presenter.Cache(entries, false)
}

// CachePrune removes the entries selected by the configured eviction bounds.
func (a *App) CachePrune() error {
	s, err := a.open()
	if err != nil {
		return err
	}
	policy := domain.PolicyFromConfig(s.cfg.Cache)
	if _, ok := policy.(domain.KeepAll); ok {
		a.logger.Info("no eviction bounds configured, nothing to prune")
	}
	removed, err := s.backends.Cache.Prune(policy)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("pruned %d cache entries", len(removed)))
	return s.presenter.Cache(removed, true)
}
