package domain

import (
	"net/url"
	"strconv"
)

// DefaultPageLimit is the page size used when a caller passes no positive limit.
const DefaultPageLimit = 10

// Page is one window of a list addressed by a 1-based page number.
// It always satisfies 0 <= Start <= End <= Total.
type Page struct {
	Param  string
	Number int
	Limit  int
	Total  int
	Start  int
	End    int
}

// NewPage reads the page number for param from values and computes the window.
// Missing, non-numeric or non-positive page numbers select the first page.
func NewPage(values url.Values, param string, total, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if total < 0 {
		total = 0
	}

	number := 1
	if raw := values.Get(param); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			number = n
		}
	}

	start := total
	if number-1 <= total/limit {
		start = min((number-1)*limit, total)
	}
	end := min(start+limit, total)

	return Page{
		Param:  param,
		Number: number,
		Limit:  limit,
		Total:  total,
		Start:  start,
		End:    end,
	}
}

// Slice returns the part of items covered by the page.
func Slice[T any](items []T, p Page) []T {
	start := min(p.Start, len(items))
	end := min(p.End, len(items))
	return items[start:end]
}

// Pages returns the number of pages needed for the total, at least one.
func (p Page) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a further page exists.
func (p Page) HasNext() bool {
	return p.Number < p.Pages()
}

// PrevParams returns a copy of values pointing at the previous page.
func (p Page) PrevParams(values url.Values) url.Values {
	return p.withNumber(values, max(p.Number-1, 1))
}

// NextParams returns a copy of values pointing at the next page.
func (p Page) NextParams(values url.Values) url.Values {
	return p.withNumber(values, p.Number+1)
}

func (p Page) withNumber(values url.Values, n int) url.Values {
	out := make(url.Values, len(values)+1)
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	out.Set(p.Param, strconv.Itoa(n))
	return out
}
