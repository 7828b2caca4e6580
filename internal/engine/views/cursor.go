package views

import (
	"net/url"

	"go.trai.ch/matchview/internal/core/domain"
)

// CursorPaginator carries the cursor state of one remote search listing through
// query parameters. Several paginators coexist on one query under distinct prefixes.
type CursorPaginator struct {
	prefix      string
	defaultSort string
	values      url.Values

	SortBy    string
	Direction domain.SortDirection
	Cursor    string

	forward  string
	backward string
}

// NewCursorPaginator reads the state for prefix from values. An empty prefix uses
// the bare parameter names "cursor", "sort" and "dir".
func NewCursorPaginator(values url.Values, prefix, defaultSort string) *CursorPaginator {
	p := &CursorPaginator{prefix: prefix, defaultSort: defaultSort, values: values}
	p.SortBy = values.Get(p.param("sort"))
	if p.SortBy == "" {
		p.SortBy = defaultSort
	}
	p.Direction = domain.ParseSortDirection(values.Get(p.param("dir")))
	p.Cursor = values.Get(p.param("cursor"))
	return p
}

func (p *CursorPaginator) param(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "_" + name
}

// SearchParams returns the cursor arguments for the next remote search.
func (p *CursorPaginator) SearchParams(limit int) domain.SearchParams {
	return domain.SearchParams{
		Cursor:    p.Cursor,
		SortBy:    p.SortBy,
		Ascending: p.Direction == domain.SortAscending,
		Limit:     limit,
	}
}

// ReadCursor stores the continuation tokens of a search page. A nil result clears them.
func (p *CursorPaginator) ReadCursor(cursor *domain.Cursor) {
	if cursor == nil {
		p.forward, p.backward = "", ""
		return
	}
	p.forward, p.backward = cursor.Forward, cursor.Backward
}

// HasNext reports whether the service returned a forward cursor.
func (p *CursorPaginator) HasNext() bool { return p.forward != "" }

// HasPrev reports whether the service returned a backward cursor.
func (p *CursorPaginator) HasPrev() bool { return p.backward != "" }

// NextValues returns a copy of the query continuing with the next page.
func (p *CursorPaginator) NextValues() url.Values {
	return p.withCursor(p.forward)
}

// PrevValues returns a copy of the query continuing with the previous page.
func (p *CursorPaginator) PrevValues() url.Values {
	return p.withCursor(p.backward)
}

func (p *CursorPaginator) withCursor(cursor string) url.Values {
	out := make(url.Values, len(p.values)+3)
	for k, v := range p.values {
		out[k] = append([]string(nil), v...)
	}
	out.Set(p.param("cursor"), cursor)
	out.Set(p.param("sort"), p.SortBy)
	out.Set(p.param("dir"), string(p.Direction))
	return out
}
