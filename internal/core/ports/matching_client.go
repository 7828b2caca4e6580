package ports

import (
	"context"

	"go.trai.ch/matchview/internal/core/domain"
)

// MatchingClient talks to the remote matching service.
// Lookups of ids the service does not know fail with domain.ErrNotFound; any other
// failure to reach the service or a non-successful answer fails with domain.ErrRemoteUnavailable.
//
//go:generate mockgen -source=matching_client.go -destination=mocks/mock_matching_client.go -package=mocks
type MatchingClient interface {
	GetJobData(ctx context.Context, jobID string) (*domain.JobInfo, error)
	// GetResultForJob returns the raw result payload of a finished job.
	GetResultForJob(ctx context.Context, jobID string) ([]byte, error)
	GetQueueData(ctx context.Context, query domain.QueueQuery) ([]domain.JobInfo, error)
	GetJobCount(ctx context.Context, filter string) (int, error)

	SearchFamilies(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Family], error)
	SearchSamples(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Sample], error)
	SearchFunctions(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Function], error)

	GetFamily(ctx context.Context, familyID int) (*domain.Family, error)
	GetSampleByID(ctx context.Context, sampleID int) (*domain.Sample, error)
	GetSamplesByFamilyID(ctx context.Context, familyID int) ([]domain.Sample, error)
	GetFunctionByID(ctx context.Context, functionID int, withXCFG bool) (*domain.Function, error)
	GetMatchesForPicHash(ctx context.Context, picHash uint64) (*domain.PicHashSummary, error)
	GetMatchesForPicBlockHash(ctx context.Context, picBlockHash uint64) (*domain.PicHashSummary, error)

	// GetExportData returns the export document for the samples, or for all samples when ids is empty.
	GetExportData(ctx context.Context, sampleIDs []int) ([]byte, error)
}
