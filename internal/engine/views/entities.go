package views

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
)

// FamilyDetail is a family with a page of its samples.
type FamilyDetail struct {
	Family  *domain.Family
	Samples *SearchSection[domain.Sample]
}

// SampleDetail is a sample with a page of its functions and the jobs that reference it.
// Query samples carry neither.
type SampleDetail struct {
	Sample    *domain.Sample
	Functions *SearchSection[domain.Function]
	Jobs      []domain.JobInfo
}

// FunctionDetail is a function with the corpus-wide occurrence of its pichash.
type FunctionDetail struct {
	Function  *domain.Function
	PicHashes *domain.PicHashSummary
}

// EntityService looks up single entities of the corpus.
type EntityService struct {
	client ports.MatchingClient
	search *SearchService
}

// NewEntityService creates a new EntityService.
func NewEntityService(client ports.MatchingClient, search *SearchService) *EntityService {
	return &EntityService{client: client, search: search}
}

// Family returns the family and the samples matching "family_id:<id> <query>".
func (s *EntityService) Family(ctx context.Context, familyID int, query string, values url.Values) (*FamilyDetail, error) {
	family, err := s.client.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	scoped := scopedQuery("family_id", familyID, query)
	return &FamilyDetail{
		Family:  family,
		Samples: s.search.Samples(ctx, scoped, values),
	}, nil
}

// Sample returns the sample, its functions matching "sample_id:<id> <query>" and the
// jobs whose parameters name the sample.
func (s *EntityService) Sample(ctx context.Context, sampleID int, query string, values url.Values) (*SampleDetail, error) {
	sample, err := s.client.GetSampleByID(ctx, sampleID)
	if err != nil {
		return nil, err
	}
	detail := &SampleDetail{Sample: sample}
	if sample.IsQuery() {
		return detail, nil
	}

	detail.Functions = s.search.Functions(ctx, scopedQuery("sample_id", sampleID, query), values)
	if detail.Functions.Failed {
		return detail, nil
	}

	id := strconv.Itoa(sampleID)
	jobs, err := s.client.GetQueueData(ctx, domain.QueueQuery{Filter: id})
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if referencesSample(job.Parameters, id) {
			detail.Jobs = append(detail.Jobs, job)
		}
	}
	return detail, nil
}

// Function returns the function and the summary of its pichash matches.
func (s *EntityService) Function(ctx context.Context, functionID int) (*FunctionDetail, error) {
	function, err := s.client.GetFunctionByID(ctx, functionID, false)
	if err != nil {
		return nil, err
	}
	summary, err := s.client.GetMatchesForPicHash(ctx, function.PicHash)
	if _, err := honored(err); err != nil {
		return nil, err
	}
	return &FunctionDetail{Function: function, PicHashes: summary}, nil
}

// PicBlockHash returns the summary of the matches of a picblockhash.
func (s *EntityService) PicBlockHash(ctx context.Context, hash uint64) (*domain.PicHashSummary, error) {
	return s.client.GetMatchesForPicBlockHash(ctx, hash)
}

func scopedQuery(field string, id int, query string) string {
	return strings.TrimSpace(field + ":" + strconv.Itoa(id) + " " + query)
}

// referencesSample reports whether id appears as a whole argument in the job parameters.
func referencesSample(parameters, id string) bool {
	for _, pattern := range []string{"(" + id + ")", "(" + id + ",", "," + id + ",", "," + id + ")"} {
		if strings.Contains(parameters, pattern) {
			return true
		}
	}
	return false
}
