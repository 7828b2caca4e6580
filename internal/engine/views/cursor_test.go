package views_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/engine/views"
)

func TestCursorPaginator_Defaults(t *testing.T) {
	p := views.NewCursorPaginator(url.Values{}, "", "sample_id")

	assert.Equal(t, domain.SearchParams{SortBy: "sample_id", Ascending: true, Limit: 50}, p.SearchParams(50))
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestCursorPaginator_ReadsPrefixedState(t *testing.T) {
	values := url.Values{
		"family_cursor": {"abc"},
		"family_sort":   {"family_name"},
		"family_dir":    {"desc"},
		"cursor":        {"unrelated"},
	}
	p := views.NewCursorPaginator(values, "family", "family_id")

	assert.Equal(t, domain.SearchParams{Cursor: "abc", SortBy: "family_name", Limit: 15}, p.SearchParams(15))
}

func TestCursorPaginator_RoundTrip(t *testing.T) {
	values := url.Values{"query": {"emotet"}, "sample_sort": {"filename"}}
	p := views.NewCursorPaginator(values, "sample", "sample_id")
	p.ReadCursor(&domain.Cursor{Forward: "next-token", Backward: "prev-token"})

	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())

	next := p.NextValues()
	assert.Equal(t, "emotet", next.Get("query"))
	assert.Equal(t, "next-token", next.Get("sample_cursor"))
	assert.Equal(t, "filename", next.Get("sample_sort"))
	assert.Equal(t, "asc", next.Get("sample_dir"))
	assert.Equal(t, "prev-token", p.PrevValues().Get("sample_cursor"))
	assert.Empty(t, values.Get("sample_cursor"), "input values must not change")

	continued := views.NewCursorPaginator(next, "sample", "sample_id")
	assert.Equal(t, "next-token", continued.SearchParams(15).Cursor)
}

func TestCursorPaginator_ReadNilCursor(t *testing.T) {
	p := views.NewCursorPaginator(url.Values{}, "", "function_id")
	p.ReadCursor(&domain.Cursor{Forward: "f"})
	p.ReadCursor(nil)

	assert.False(t, p.HasNext())
}
