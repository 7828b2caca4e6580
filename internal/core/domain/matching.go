package domain

import "sync"

// SampleMatch summarizes how strongly one corpus sample matched the reference.
type SampleMatch struct {
	SampleID         int     `json:"sample_id"`
	FamilyID         int     `json:"family_id"`
	Family           string  `json:"family"`
	Version          string  `json:"version"`
	Filename         string  `json:"filename"`
	SHA256           string  `json:"sha256"`
	Bitness          int     `json:"bitness"`
	MatchedFunctions int     `json:"matched_functions"`
	LibraryFunctions int     `json:"library_functions"`
	MatchedBytes     int     `json:"matched_bytes"`
	MatchedPercent   float64 `json:"matched_percent"`
}

// FunctionMatch links a function of the reference to a function of a corpus sample.
type FunctionMatch struct {
	FunctionID        int      `json:"function_id"`
	Offset            uint64   `json:"offset"`
	NumBytes          int      `json:"num_bytes"`
	MatchedSampleID   int      `json:"matched_sample_id"`
	MatchedFamilyID   int      `json:"matched_family_id"`
	MatchedFunctionID int      `json:"matched_function_id"`
	MatchScore        float64  `json:"match_score"`
	IsLibrary         bool     `json:"match_is_library"`
	MatchTypes        []string `json:"match_types,omitempty"`
}

// AggregatedFunctionMatch folds all matches of one reference function together.
type AggregatedFunctionMatch struct {
	FunctionID      int
	Offset          uint64
	NumBytes        int
	Families        int
	Samples         int
	Functions       int
	BestScore       float64
	HasLibraryMatch bool
}

// MatchingResult is an immutable view on a matching job result.
// Narrowing operations return new results whose match sets are subsets of the receiver's.
type MatchingResult struct {
	Reference       Sample
	SampleMatches   []SampleMatch
	FunctionMatches []FunctionMatch
	// OtherSample is display context attached by sample narrowing.
	OtherSample *Sample

	aggOnce    sync.Once
	aggregated []AggregatedFunctionMatch
}

// NewMatchingResult builds a result from already parsed match lists.
func NewMatchingResult(reference Sample, samples []SampleMatch, functions []FunctionMatch) *MatchingResult {
	return &MatchingResult{
		Reference:       reference,
		SampleMatches:   samples,
		FunctionMatches: functions,
	}
}

// AggregatedFunctionMatches groups function matches by reference function.
// The aggregation is computed on first use and kept for the lifetime of the result.
func (r *MatchingResult) AggregatedFunctionMatches() []AggregatedFunctionMatch {
	r.aggOnce.Do(func() {
		r.aggregated = aggregate(r.FunctionMatches)
	})
	return r.aggregated
}

func aggregate(matches []FunctionMatch) []AggregatedFunctionMatch {
	type sets struct {
		families  map[int]struct{}
		samples   map[int]struct{}
		functions map[int]struct{}
	}

	var order []int
	byFunction := make(map[int]*AggregatedFunctionMatch)
	seen := make(map[int]*sets)

	for _, m := range matches {
		agg, ok := byFunction[m.FunctionID]
		if !ok {
			agg = &AggregatedFunctionMatch{
				FunctionID: m.FunctionID,
				Offset:     m.Offset,
				NumBytes:   m.NumBytes,
			}
			byFunction[m.FunctionID] = agg
			seen[m.FunctionID] = &sets{
				families:  make(map[int]struct{}),
				samples:   make(map[int]struct{}),
				functions: make(map[int]struct{}),
			}
			order = append(order, m.FunctionID)
		}
		s := seen[m.FunctionID]
		s.families[m.MatchedFamilyID] = struct{}{}
		s.samples[m.MatchedSampleID] = struct{}{}
		s.functions[m.MatchedFunctionID] = struct{}{}
		if m.MatchScore > agg.BestScore {
			agg.BestScore = m.MatchScore
		}
		if m.IsLibrary {
			agg.HasLibraryMatch = true
		}
	}

	out := make([]AggregatedFunctionMatch, 0, len(order))
	for _, id := range order {
		agg := byFunction[id]
		s := seen[id]
		agg.Families = len(s.families)
		agg.Samples = len(s.samples)
		agg.Functions = len(s.functions)
		out = append(out, *agg)
	}
	return out
}

func (r *MatchingResult) derive(samples []SampleMatch, functions []FunctionMatch) *MatchingResult {
	return &MatchingResult{
		Reference:       r.Reference,
		SampleMatches:   samples,
		FunctionMatches: functions,
		OtherSample:     r.OtherSample,
	}
}

// FilterToFamily keeps only matches into the given family.
func (r *MatchingResult) FilterToFamily(familyID int) *MatchingResult {
	return r.derive(
		filter(r.SampleMatches, func(m SampleMatch) bool { return m.FamilyID == familyID }),
		filter(r.FunctionMatches, func(m FunctionMatch) bool { return m.MatchedFamilyID == familyID }),
	)
}

// FilterToSample keeps only matches into the given sample and attaches it as context.
// other may be nil when the caller has no entity for the sample.
func (r *MatchingResult) FilterToSample(sampleID int, other *Sample) *MatchingResult {
	narrowed := r.derive(
		filter(r.SampleMatches, func(m SampleMatch) bool { return m.SampleID == sampleID }),
		filter(r.FunctionMatches, func(m FunctionMatch) bool { return m.MatchedSampleID == sampleID }),
	)
	narrowed.OtherSample = other
	return narrowed
}

// FilterToFunction keeps function matches touching the given function on either side.
// Sample matches are reduced to the samples still referenced by those function matches.
func (r *MatchingResult) FilterToFunction(functionID int) *MatchingResult {
	functions := filter(r.FunctionMatches, func(m FunctionMatch) bool {
		return m.FunctionID == functionID || m.MatchedFunctionID == functionID
	})
	referenced := make(map[int]struct{}, len(functions))
	for _, m := range functions {
		referenced[m.MatchedSampleID] = struct{}{}
	}
	samples := filter(r.SampleMatches, func(m SampleMatch) bool {
		_, ok := referenced[m.SampleID]
		return ok
	})
	return r.derive(samples, functions)
}

// WithFunctionMatches returns a copy whose function matches are replaced by a subset.
// It is used to slice the raw match list for paginated presentation.
func (r *MatchingResult) WithFunctionMatches(functions []FunctionMatch) *MatchingResult {
	return r.derive(r.SampleMatches, functions)
}

// MatchedFamilyCount counts distinct families among the sample matches.
func (r *MatchingResult) MatchedFamilyCount() int {
	families := make(map[int]struct{})
	for _, m := range r.SampleMatches {
		families[m.FamilyID] = struct{}{}
	}
	return len(families)
}

// FunctionMatchFamilyCount counts distinct families among the function matches.
func (r *MatchingResult) FunctionMatchFamilyCount() int {
	families := make(map[int]struct{})
	for _, m := range r.FunctionMatches {
		families[m.MatchedFamilyID] = struct{}{}
	}
	return len(families)
}

// MatchedFunctionCount counts distinct matched functions.
func (r *MatchingResult) MatchedFunctionCount() int {
	functions := make(map[int]struct{})
	for _, m := range r.FunctionMatches {
		functions[m.MatchedFunctionID] = struct{}{}
	}
	return len(functions)
}

// FamiliesByBestMatch returns one sample match per family, the strongest one, in order of appearance.
func (r *MatchingResult) FamiliesByBestMatch() []SampleMatch {
	index := make(map[int]int)
	var out []SampleMatch
	for _, m := range r.SampleMatches {
		i, ok := index[m.FamilyID]
		if !ok {
			index[m.FamilyID] = len(out)
			out = append(out, m)
			continue
		}
		if m.MatchedPercent > out[i].MatchedPercent {
			out[i] = m
		}
	}
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
