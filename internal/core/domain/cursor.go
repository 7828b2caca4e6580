package domain

// SortDirection orders a cursor paginated listing.
type SortDirection string

const (
	// SortAscending lists entries with increasing sort key.
	SortAscending SortDirection = "asc"
	// SortDescending lists entries with decreasing sort key.
	SortDescending SortDirection = "desc"
)

// ParseSortDirection maps a query value to a direction, defaulting to ascending.
func ParseSortDirection(raw string) SortDirection {
	if raw == string(SortDescending) {
		return SortDescending
	}
	return SortAscending
}

// SearchParams are the cursor arguments of one remote search call.
type SearchParams struct {
	Cursor    string
	SortBy    string
	Ascending bool
	Limit     int
}

// Cursor holds the opaque continuation tokens returned with a search page.
type Cursor struct {
	Forward  string `json:"forward,omitempty"`
	Backward string `json:"backward,omitempty"`
}

// SearchResult is one page of a remote search. Results keep the order of the payload.
type SearchResult[T any] struct {
	IDMatch  *T
	SHAMatch *T
	Results  []T
	Cursor   Cursor
}

// Entries returns the exact matches followed by the paged results.
func (r *SearchResult[T]) Entries() []T {
	if r == nil {
		return nil
	}
	out := make([]T, 0, len(r.Results)+2)
	if r.SHAMatch != nil {
		out = append(out, *r.SHAMatch)
	}
	if r.IDMatch != nil {
		out = append(out, *r.IDMatch)
	}
	return append(out, r.Results...)
}

// SearchKind names an entity that can be searched.
type SearchKind string

const (
	// SearchFamily searches families.
	SearchFamily SearchKind = "family"
	// SearchSample searches samples.
	SearchSample SearchKind = "sample"
	// SearchFunction searches functions.
	SearchFunction SearchKind = "function"
)

// AllSearchKinds returns the kinds searched when none is selected.
func AllSearchKinds() []SearchKind {
	return []SearchKind{SearchFamily, SearchSample, SearchFunction}
}

// DefaultSort returns the sort key used for the kind when the query sets none.
func (k SearchKind) DefaultSort() string {
	switch k {
	case SearchFamily:
		return "family_id"
	case SearchSample:
		return "sample_id"
	default:
		return "function_id"
	}
}
