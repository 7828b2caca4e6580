package domain

// CheckpointInterval marks every n-th sample of an ordering for display.
const CheckpointInterval = 5

// ScoreMatrix holds pairwise scores keyed by sample id strings.
type ScoreMatrix map[string]map[string]float64

// CrossCompareMethod is the outcome of one clustering method.
type CrossCompareMethod struct {
	Name              string
	ClusteredSequence []int
	MatchingMatches   ScoreMatrix
	MatchingPercent   ScoreMatrix
}

// CrossCompareResult holds the clustering methods in payload order.
type CrossCompareResult struct {
	Methods []CrossCompareMethod
}

// SampleIDs returns the union of ids referenced by any method, in first-seen order.
func (r CrossCompareResult) SampleIDs() []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, m := range r.Methods {
		for _, id := range m.ClusteredSequence {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// MethodOrdering is one method's samples in display order.
type MethodOrdering struct {
	Name            string      `json:"name"`
	Samples         []Sample    `json:"samples"`
	Checkpoints     []int       `json:"checkpoints"`
	MatchingMatches ScoreMatrix `json:"matching_matches"`
	MatchingPercent ScoreMatrix `json:"matching_percent"`
}

// CrossCompareView is a reconciled cross compare ready for presentation.
type CrossCompareView struct {
	Methods []MethodOrdering `json:"methods"`
}

// Checkpoints returns the ids of the samples at every fifth position.
func Checkpoints(samples []Sample) []int {
	var out []int
	for i, s := range samples {
		if (i+1)%CheckpointInterval == 0 {
			out = append(out, s.ID)
		}
	}
	return out
}
