package domain_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/matchview/internal/core/domain"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		total     int
		limit     int
		wantNum   int
		wantStart int
		wantEnd   int
	}{
		{
			name:      "missing page selects first",
			values:    url.Values{},
			total:     23,
			limit:     10,
			wantNum:   1,
			wantStart: 0,
			wantEnd:   10,
		},
		{
			name:      "second page",
			values:    url.Values{"samp": {"2"}},
			total:     23,
			limit:     10,
			wantNum:   2,
			wantStart: 10,
			wantEnd:   20,
		},
		{
			name:      "last partial page",
			values:    url.Values{"samp": {"3"}},
			total:     23,
			limit:     10,
			wantNum:   3,
			wantStart: 20,
			wantEnd:   23,
		},
		{
			name:      "past the end clamps to total",
			values:    url.Values{"samp": {"9"}},
			total:     23,
			limit:     10,
			wantNum:   9,
			wantStart: 23,
			wantEnd:   23,
		},
		{
			name:      "non numeric page",
			values:    url.Values{"samp": {"abc"}},
			total:     23,
			limit:     10,
			wantNum:   1,
			wantStart: 0,
			wantEnd:   10,
		},
		{
			name:      "negative page",
			values:    url.Values{"samp": {"-4"}},
			total:     23,
			limit:     10,
			wantNum:   1,
			wantStart: 0,
			wantEnd:   10,
		},
		{
			name:      "default limit",
			values:    url.Values{"samp": {"2"}},
			total:     15,
			limit:     0,
			wantNum:   2,
			wantStart: 10,
			wantEnd:   15,
		},
		{
			name:      "empty list",
			values:    url.Values{"samp": {"2"}},
			total:     0,
			limit:     10,
			wantNum:   2,
			wantStart: 0,
			wantEnd:   0,
		},
		{
			name:      "huge page number",
			values:    url.Values{"samp": {"9223372036854775807"}},
			total:     5,
			limit:     10,
			wantNum:   9223372036854775807,
			wantStart: 5,
			wantEnd:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewPage(tt.values, "samp", tt.total, tt.limit)
			assert.Equal(t, tt.wantNum, p.Number)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.LessOrEqual(t, 0, p.Start)
			assert.LessOrEqual(t, p.Start, p.End)
			assert.LessOrEqual(t, p.End, p.Total)
		})
	}
}

func TestNewPage_IndependentParams(t *testing.T) {
	values := url.Values{"samp": {"2"}, "funp": {"3"}}

	samp := domain.NewPage(values, "samp", 100, 10)
	funp := domain.NewPage(values, "funp", 100, 10)
	famp := domain.NewPage(values, "famp", 100, 10)

	assert.Equal(t, 10, samp.Start)
	assert.Equal(t, 20, funp.Start)
	assert.Equal(t, 0, famp.Start)
}

func TestPage_Navigation(t *testing.T) {
	values := url.Values{"funp": {"2"}, "famid": {"7"}}
	p := domain.NewPage(values, "funp", 23, 10)

	assert.Equal(t, 3, p.Pages())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	next := p.NextParams(values)
	assert.Equal(t, "3", next.Get("funp"))
	assert.Equal(t, "7", next.Get("famid"))
	assert.Equal(t, "2", values.Get("funp"), "original values must be untouched")

	prev := p.PrevParams(values)
	assert.Equal(t, "1", prev.Get("funp"))

	last := domain.NewPage(url.Values{"funp": {"3"}}, "funp", 23, 10)
	assert.False(t, last.HasNext())

	empty := domain.NewPage(url.Values{}, "funp", 0, 10)
	assert.Equal(t, 1, empty.Pages())
	assert.False(t, empty.HasPrev())
	assert.False(t, empty.HasNext())
}

func TestSlice(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	p := domain.NewPage(url.Values{"p": {"2"}}, "p", len(items), 5)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, domain.Slice(items, p))

	p = domain.NewPage(url.Values{"p": {"3"}}, "p", len(items), 5)
	assert.Equal(t, []int{10, 11, 12}, domain.Slice(items, p))

	p = domain.NewPage(url.Values{"p": {"1"}}, "p", 50, 10)
	assert.Len(t, domain.Slice(items[:3], p), 3, "slice never exceeds the items")
}
