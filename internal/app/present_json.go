package app

import (
	"encoding/json"
	"io"
	"net/url"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/engine/views"
)

// jsonPresenter writes one JSON document per operation.
type jsonPresenter struct {
	enc *json.Encoder
}

func newJSONPresenter(w io.Writer) *jsonPresenter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &jsonPresenter{enc: enc}
}

type envelope struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

func (p *jsonPresenter) emit(kind string, data any) error {
	return p.enc.Encode(envelope{Kind: kind, Data: data})
}

type jobDoc struct {
	ID           string         `json:"id"`
	Number       int            `json:"number"`
	Parameters   string         `json:"parameters"`
	Kind         string         `json:"kind"`
	Status       string         `json:"status"`
	Progress     float64        `json:"progress"`
	ResultID     string         `json:"result_id,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Payload      map[string]any `json:"payload,omitempty"`
}

func newJobDoc(j *domain.JobInfo) jobDoc {
	return jobDoc{
		ID:           j.ID,
		Number:       j.Number,
		Parameters:   j.Parameters,
		Kind:         j.Kind.String(),
		Status:       j.Status(),
		Progress:     j.Progress,
		ResultID:     j.ResultID,
		Dependencies: j.Dependencies,
		Payload:      j.Payload,
	}
}

func newJobDocs(jobs []domain.JobInfo) []jobDoc {
	out := make([]jobDoc, len(jobs))
	for i := range jobs {
		out[i] = newJobDoc(&jobs[i])
	}
	return out
}

type pageDoc struct {
	Param  string `json:"param"`
	Number int    `json:"number"`
	Pages  int    `json:"pages"`
	Total  int    `json:"total"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

func newPageDoc(p *domain.Page) *pageDoc {
	if p == nil {
		return nil
	}
	return &pageDoc{Param: p.Param, Number: p.Number, Pages: p.Pages(), Total: p.Total, Start: p.Start, End: p.End}
}

type matchesDoc struct {
	Job              jobDoc                           `json:"job"`
	Narrowing        string                           `json:"narrowing"`
	Reference        domain.Sample                    `json:"reference"`
	Family           *domain.Family                   `json:"family,omitempty"`
	Sample           *domain.Sample                   `json:"sample,omitempty"`
	Function         *domain.Function                 `json:"function,omitempty"`
	Diagram          string                           `json:"diagram,omitempty"`
	SamplePage       *pageDoc                         `json:"sample_page,omitempty"`
	FamilyPage       *pageDoc                         `json:"family_page,omitempty"`
	FunctionPage     *pageDoc                         `json:"function_page,omitempty"`
	Samples          []domain.SampleMatch             `json:"samples,omitempty"`
	Families         []domain.SampleMatch             `json:"families,omitempty"`
	Functions        []domain.AggregatedFunctionMatch `json:"functions,omitempty"`
	FunctionMatches  []domain.FunctionMatch           `json:"function_matches,omitempty"`
	FamilyCount      int                              `json:"family_count,omitempty"`
	MatchedFunctions int                              `json:"matched_functions,omitempty"`
}

type cursorDoc struct {
	SortBy    string `json:"sort_by"`
	Direction string `json:"direction"`
	Next      string `json:"next,omitempty"`
	Prev      string `json:"prev,omitempty"`
}

type sectionDoc[T any] struct {
	Kind    string     `json:"kind"`
	Failed  bool       `json:"failed"`
	Error   string     `json:"error,omitempty"`
	Entries []T        `json:"entries"`
	Cursor  *cursorDoc `json:"cursor,omitempty"`
}

func newSectionDoc[T any](s *views.SearchSection[T]) *sectionDoc[T] {
	if s == nil {
		return nil
	}
	doc := &sectionDoc[T]{Kind: string(s.Kind), Failed: s.Failed, Entries: s.Entries}
	if s.Err != nil {
		doc.Error = s.Err.Error()
	}
	if doc.Entries == nil {
		doc.Entries = []T{}
	}
	if c := s.Paginator; c != nil {
		doc.Cursor = &cursorDoc{SortBy: c.SortBy, Direction: string(c.Direction)}
		if c.HasNext() {
			doc.Cursor.Next = c.NextValues().Encode()
		}
		if c.HasPrev() {
			doc.Cursor.Prev = c.PrevValues().Encode()
		}
	}
	return doc
}

// View implements presenter.
func (p *jsonPresenter) View(v views.View, _ url.Values) error {
	switch v := v.(type) {
	case *views.InProgressView:
		return p.emit("in_progress", map[string]any{"job": newJobDoc(v.Job)})
	case *views.MatchesView:
		return p.emit("matches", matchesDoc{
			Job:              newJobDoc(v.Job),
			Narrowing:        v.Narrowing.String(),
			Reference:        v.Result.Reference,
			Family:           v.Family,
			Sample:           v.Sample,
			Function:         v.Function,
			Diagram:          v.DiagramPath,
			SamplePage:       newPageDoc(v.SamplePage),
			FamilyPage:       newPageDoc(v.FamilyPage),
			FunctionPage:     newPageDoc(v.FunctionPage),
			Samples:          v.Samples,
			Families:         v.Families,
			Functions:        v.Functions,
			FunctionMatches:  v.FunctionMatches,
			FamilyCount:      v.FamilyCount,
			MatchedFunctions: v.MatchedFunctions,
		})
	case *views.FunctionVsView:
		return p.emit("function_vs", map[string]any{
			"job":             newJobDoc(v.Job),
			"function":        v.Function,
			"other":           v.Other,
			"pichashes":       v.PicHashes,
			"other_pichashes": v.OtherPicHashes,
		})
	case *views.BlocksView:
		return p.emit("blocks", map[string]any{
			"job":        newJobDoc(v.Job),
			"sample_ids": v.SampleIDs,
			"family_id":  v.FamilyID,
			"filter": map[string]*int{
				"min_score":        v.Filter.MinScore,
				"min_block_length": v.Filter.MinLength,
				"max_block_length": v.Filter.MaxLength,
			},
			"page":   newPageDoc(&v.Page),
			"blocks": v.Blocks,
		})
	case *views.CrossView:
		return p.emit("cross", map[string]any{
			"job":     newJobDoc(v.Job),
			"custom":  v.CustomOrder,
			"methods": v.Compare.Methods,
		})
	case *views.SampleRedirectView:
		return p.emit("sample_redirect", map[string]any{
			"job":       newJobDoc(v.Job),
			"sample_id": v.SampleID,
		})
	default:
		return p.emit("unknown", map[string]any{"job": newJobDoc(v.JobInfo())})
	}
}

// Search implements presenter.
func (p *jsonPresenter) Search(r *views.SearchResults) error {
	return p.emit("search", map[string]any{
		"query":     r.Query,
		"families":  newSectionDoc(r.Families),
		"samples":   newSectionDoc(r.Samples),
		"functions": newSectionDoc(r.Functions),
	})
}

// Family implements presenter.
func (p *jsonPresenter) Family(d *views.FamilyDetail) error {
	return p.emit("family", map[string]any{
		"family":  d.Family,
		"samples": newSectionDoc(d.Samples),
	})
}

// Sample implements presenter.
func (p *jsonPresenter) Sample(d *views.SampleDetail) error {
	return p.emit("sample", map[string]any{
		"sample":    d.Sample,
		"functions": newSectionDoc(d.Functions),
		"jobs":      newJobDocs(d.Jobs),
	})
}

// Function implements presenter.
func (p *jsonPresenter) Function(d *views.FunctionDetail) error {
	return p.emit("function", map[string]any{
		"function":  d.Function,
		"pichashes": d.PicHashes,
	})
}

// PicHashSummary implements presenter.
func (p *jsonPresenter) PicHashSummary(hash uint64, s *domain.PicHashSummary) error {
	return p.emit("picblockhash", map[string]any{
		"picblockhash": hash,
		"matches":      s,
	})
}

// Job implements presenter.
func (p *jsonPresenter) Job(o *views.JobOverview) error {
	return p.emit("job", map[string]any{
		"job":          newJobDoc(o.Job),
		"dependencies": newJobDocs(o.Children),
	})
}

// Jobs implements presenter.
func (p *jsonPresenter) Jobs(l *views.JobListing) error {
	sections := make([]map[string]any, 0, 4)
	for _, s := range l.Sections() {
		if s == nil {
			continue
		}
		sections = append(sections, map[string]any{
			"name":   s.Name,
			"filter": s.Filter,
			"page":   newPageDoc(&s.Page),
			"jobs":   newJobDocs(s.Jobs),
		})
	}
	return p.emit("jobs", map[string]any{"query": l.Query, "sections": sections})
}

// Export implements presenter.
func (p *jsonPresenter) Export(path string, size int) error {
	return p.emit("export", map[string]any{"path": path, "bytes": size})
}

// Cache implements presenter.
func (p *jsonPresenter) Cache(entries []domain.CacheEntry, pruned bool) error {
	kind := "cache"
	if pruned {
		kind = "pruned"
	}
	if entries == nil {
		entries = []domain.CacheEntry{}
	}
	return p.emit(kind, entries)
}
