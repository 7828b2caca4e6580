package app

import (
	"io"
	"net/url"

	"go.trai.ch/matchview/internal/adapters/detector"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/engine/views"
)

// presenter writes the outcome of an operation to stdout.
type presenter interface {
	View(v views.View, values url.Values) error
	Search(r *views.SearchResults) error
	Family(d *views.FamilyDetail) error
	Sample(d *views.SampleDetail) error
	Function(d *views.FunctionDetail) error
	PicHashSummary(hash uint64, s *domain.PicHashSummary) error
	Job(o *views.JobOverview) error
	Jobs(l *views.JobListing) error
	Export(path string, size int) error
	Cache(entries []domain.CacheEntry, pruned bool) error
}

func newPresenter(mode detector.OutputMode, w io.Writer) presenter {
	switch mode {
	case detector.ModeJSON:
		return newJSONPresenter(w)
	case detector.ModePretty:
		return newTextPresenter(w, false)
	default:
		return newTextPresenter(w, true)
	}
}
