package domain

import "go.trai.ch/zerr"

// Outcome sentinels. Callers test for them with errors.Is; adapters and the engine
// attach context on top of a zerr.Wrap so the sentinel stays in the chain.
var (
	// ErrNotFound is returned when a referenced job, sample, function or family id does not resolve.
	ErrNotFound = zerr.New("invalid reference")

	// ErrCorrupted is returned when a cross compare view references samples that no longer
	// resolve, or when a custom ordering references ids outside the compared set.
	ErrCorrupted = zerr.New("corrupted result")

	// ErrInvalidInput is returned for malformed numeric ids and id lists.
	ErrInvalidInput = zerr.New("invalid input")

	// ErrUnimplemented is returned for job kinds that are recognized but not handled.
	ErrUnimplemented = zerr.New("job kind not implemented")

	// ErrRemoteUnavailable is returned when a call to the matching service fails.
	ErrRemoteUnavailable = zerr.New("matching service unavailable")

	// ErrUnrecognizedPayload is returned when a result payload does not match the shape of its job kind.
	ErrUnrecognizedPayload = zerr.New("unrecognized result payload")

	// ErrUnknownJobKind is returned when a finished job has a kind no view exists for.
	ErrUnknownJobKind = zerr.New("unknown job kind")

	// ErrInvalidJobID is returned when a job id cannot be used as a cache key.
	ErrInvalidJobID = zerr.New("invalid job id")

	// ErrCacheCreateFailed is returned when a cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheEntryCorrupt is returned when a cache entry fails checksum verification.
	ErrCacheEntryCorrupt = zerr.New("cache entry checksum mismatch")

	// ErrCachePruneFailed is returned when an evicted cache entry cannot be removed.
	ErrCachePruneFailed = zerr.New("failed to prune cache entry")

	// ErrDiagramRenderFailed is returned when the renderer cannot produce an artifact.
	ErrDiagramRenderFailed = zerr.New("failed to render diagram")

	// ErrDiagramWriteFailed is returned when a rendered artifact cannot be persisted.
	ErrDiagramWriteFailed = zerr.New("failed to write diagram")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrExportWriteFailed is returned when exported data cannot be written.
	ErrExportWriteFailed = zerr.New("failed to write export file")
)
