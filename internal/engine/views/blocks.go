package views

import (
	"net/url"

	"go.trai.ch/matchview/internal/core/domain"
)

// ParseBlockFilter reads the block thresholds from the query. Non-numeric values are
// treated as absent.
func ParseBlockFilter(values url.Values) domain.BlockFilter {
	return domain.BlockFilter{
		MinScore:  queryBound(values, ParamMinScore),
		MinLength: queryBound(values, ParamMinBlockLength),
		MaxLength: queryBound(values, ParamMaxBlockLength),
	}
}

func queryBound(values url.Values, key string) *int {
	n, ok := queryInt(values, key)
	if !ok {
		return nil
	}
	return &n
}

func (s *ResultService) blocks(job *domain.JobInfo, result *domain.UniqueBlocksResult, values url.Values) *BlocksView {
	filter := ParseBlockFilter(values)
	filtered := domain.FilterBlocks(result.Blocks, filter)
	page := domain.NewPage(values, ParamBlockPage, len(filtered), s.limits.BlockLimit)

	window := domain.Slice(filtered, page)
	blocks := make([]domain.UniqueBlock, len(window))
	for i, b := range window {
		b.Signature = domain.RenderSignature(b)
		blocks[i] = b
	}

	return &BlocksView{
		Job:       job,
		SampleIDs: result.SampleIDs,
		FamilyID:  result.FamilyID,
		Filter:    filter,
		Page:      page,
		Blocks:    blocks,
	}
}
