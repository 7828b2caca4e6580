package ports

import "go.trai.ch/matchview/internal/core/domain"

// ResultCache stores raw job result payloads keyed by job id.
// Entries are append-only: Store never overwrites and Load never deletes.
//
//go:generate mockgen -source=result_cache.go -destination=mocks/mock_result_cache.go -package=mocks
type ResultCache interface {
	// Load returns the newest intact payload stored for the job.
	Load(jobID string) (payload []byte, found bool, err error)

	// Store appends a payload for the job. Nothing is written unless the job reports a result.
	Store(job *domain.JobInfo, payload []byte) (stored bool, err error)

	// List enumerates all entries.
	List() ([]domain.CacheEntry, error)

	// Prune deletes the entries selected by the policy and returns them.
	Prune(policy domain.EvictionPolicy) ([]domain.CacheEntry, error)
}
