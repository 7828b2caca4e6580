package views_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/adapters/telemetry"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.trai.ch/matchview/internal/engine/views"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	client   *mocks.MockMatchingClient
	cache    *mocks.MockResultCache
	diagrams *mocks.MockDiagramCache
	log      *mocks.MockLogger
	service  *views.ResultService
}

func newFixture(t *testing.T, opts ...views.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		client:   mocks.NewMockMatchingClient(ctrl),
		cache:    mocks.NewMockResultCache(ctrl),
		diagrams: mocks.NewMockDiagramCache(ctrl),
		log:      mocks.NewMockLogger(ctrl),
	}
	f.service = views.NewResultService(f.client, f.cache, f.diagrams, noopTracer(), f.log, opts...)
	return f
}

// cached makes the cache return payload for the job and the service return the job.
func (f *fixture) cached(job *domain.JobInfo, payload []byte) {
	f.cache.EXPECT().Load(job.ID).Return(payload, true, nil)
	f.client.EXPECT().GetJobData(gomock.Any(), job.ID).Return(job, nil)
}

func finishedJob(id, parameters string) *domain.JobInfo {
	finished := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.JobInfo{
		ID:         id,
		Number:     1,
		Parameters: parameters,
		Kind:       domain.ClassifyJob(parameters),
		ResultID:   "result-" + id,
		FinishedAt: &finished,
	}
}

func matchingPayload(t *testing.T, samples []domain.SampleMatch, functions []domain.FunctionMatch) []byte {
	t.Helper()
	doc := map[string]any{
		"info":    map[string]any{"sample": domain.Sample{ID: 7, FamilyID: 70, Family: "query", Filename: "query.bin"}},
		"matches": map[string]any{"samples": samples, "functions": functions},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// corpus is a small matching result: family 1 holds samples 10 and 11, family 2
// holds sample 20.
func corpus(t *testing.T) []byte {
	t.Helper()
	samples := []domain.SampleMatch{
		{SampleID: 10, FamilyID: 1, Family: "alpha", MatchedPercent: 40},
		{SampleID: 11, FamilyID: 1, Family: "alpha", MatchedPercent: 60},
		{SampleID: 20, FamilyID: 2, Family: "beta", MatchedPercent: 30},
	}
	functions := []domain.FunctionMatch{
		{FunctionID: 100, MatchedSampleID: 10, MatchedFamilyID: 1, MatchedFunctionID: 1000, MatchScore: 90},
		{FunctionID: 100, MatchedSampleID: 20, MatchedFamilyID: 2, MatchedFunctionID: 2000, MatchScore: 70},
		{FunctionID: 101, MatchedSampleID: 11, MatchedFamilyID: 1, MatchedFunctionID: 1100, MatchScore: 80},
		{FunctionID: 102, MatchedSampleID: 10, MatchedFamilyID: 1, MatchedFunctionID: 1001, MatchScore: 60},
	}
	return matchingPayload(t, samples, functions)
}

// distinctFunctions returns n function matches of n different reference functions.
func distinctFunctions(n int) []domain.FunctionMatch {
	out := make([]domain.FunctionMatch, n)
	for i := range out {
		out[i] = domain.FunctionMatch{
			FunctionID:        i + 1,
			MatchedSampleID:   10,
			MatchedFamilyID:   1,
			MatchedFunctionID: 1000 + i,
			MatchScore:        50,
		}
	}
	return out
}

func noopTracer() *telemetry.NoOpTracer {
	return telemetry.NewNoOpTracer()
}

func ptr[T any](v T) *T {
	return &v
}
