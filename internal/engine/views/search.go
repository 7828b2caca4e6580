package views

import (
	"context"
	"net/url"
	"strings"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// SearchSection is one entity listing of a search. A failed search yields a section
// with no entries and Failed set, distinct from an empty successful one.
type SearchSection[T any] struct {
	Kind      domain.SearchKind
	Paginator *CursorPaginator
	Entries   []T
	Failed    bool
	Err       error
}

// SearchResults holds the sections of a multi-entity search. Sections of kinds that
// were not requested are nil.
type SearchResults struct {
	Query     string
	Kinds     []domain.SearchKind
	Families  *SearchSection[domain.Family]
	Samples   *SearchSection[domain.Sample]
	Functions *SearchSection[domain.Function]
}

// SearchService runs cursor paginated searches against the matching service.
type SearchService struct {
	client ports.MatchingClient
	tracer ports.Tracer
	log    ports.Logger
	limits domain.PaginationConfig
}

// NewSearchService creates a new SearchService.
func NewSearchService(client ports.MatchingClient, tracer ports.Tracer, log ports.Logger, limits domain.PaginationConfig) *SearchService {
	return &SearchService{client: client, tracer: tracer, log: log, limits: limits}
}

// ParseSearchKinds reads the comma separated "type" values. No value selects every kind.
func ParseSearchKinds(values url.Values) ([]domain.SearchKind, error) {
	raw := values[ParamSearchType]
	if len(raw) == 0 {
		return domain.AllSearchKinds(), nil
	}

	var kinds []domain.SearchKind
	seen := make(map[domain.SearchKind]bool)
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			kind := domain.SearchKind(strings.TrimSpace(part))
			switch kind {
			case domain.SearchFamily, domain.SearchSample, domain.SearchFunction:
			default:
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "unknown search type"), "type", part)
			}
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
	}
	return kinds, nil
}

// Search runs the selected entity searches concurrently, each under its own cursor
// prefix. An empty query runs nothing.
func (s *SearchService) Search(ctx context.Context, query string, values url.Values) (*SearchResults, error) {
	kinds, err := ParseSearchKinds(values)
	if err != nil {
		return nil, err
	}
	results := &SearchResults{Query: query, Kinds: kinds}
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	limit := s.limits.SearchPageLimit
	var g errgroup.Group
	for _, kind := range kinds {
		p := NewCursorPaginator(values, string(kind), kind.DefaultSort())
		switch kind {
		case domain.SearchFamily:
			g.Go(func() error {
				results.Families = runSearch(ctx, s, kind, p, limit, query, s.client.SearchFamilies)
				return nil
			})
		case domain.SearchSample:
			g.Go(func() error {
				results.Samples = runSearch(ctx, s, kind, p, limit, query, s.client.SearchSamples)
				return nil
			})
		case domain.SearchFunction:
			g.Go(func() error {
				results.Functions = runSearch(ctx, s, kind, p, limit, query, s.client.SearchFunctions)
				return nil
			})
		}
	}
	_ = g.Wait()
	return results, nil
}

// Families lists families matching the query with the single listing page size.
func (s *SearchService) Families(ctx context.Context, query string, values url.Values) *SearchSection[domain.Family] {
	p := NewCursorPaginator(values, "", domain.SearchFamily.DefaultSort())
	return runSearch(ctx, s, domain.SearchFamily, p, s.limits.SearchLimit, query, s.client.SearchFamilies)
}

// Samples lists samples matching the query with the single listing page size.
func (s *SearchService) Samples(ctx context.Context, query string, values url.Values) *SearchSection[domain.Sample] {
	p := NewCursorPaginator(values, "", domain.SearchSample.DefaultSort())
	return runSearch(ctx, s, domain.SearchSample, p, s.limits.SearchLimit, query, s.client.SearchSamples)
}

// Functions lists functions matching the query with the single listing page size.
func (s *SearchService) Functions(ctx context.Context, query string, values url.Values) *SearchSection[domain.Function] {
	p := NewCursorPaginator(values, "", domain.SearchFunction.DefaultSort())
	return runSearch(ctx, s, domain.SearchFunction, p, s.limits.SearchLimit, query, s.client.SearchFunctions)
}

func runSearch[T any](
	ctx context.Context,
	s *SearchService,
	kind domain.SearchKind,
	p *CursorPaginator,
	limit int,
	query string,
	search func(context.Context, string, domain.SearchParams) (*domain.SearchResult[T], error),
) *SearchSection[T] {
	ctx, span := s.tracer.Start(ctx, "search."+string(kind), ports.WithAttribute("query", query))
	defer span.End()

	section := &SearchSection[T]{Kind: kind, Paginator: p}
	result, err := search(ctx, query, p.SearchParams(limit))
	if err != nil {
		span.RecordError(err)
		s.log.Warn("search for " + string(kind) + " failed: " + err.Error())
		p.ReadCursor(nil)
		section.Failed = true
		section.Err = err
		return section
	}

	p.ReadCursor(&result.Cursor)
	section.Entries = result.Entries()
	span.SetAttribute("results", len(section.Entries))
	return section
}
