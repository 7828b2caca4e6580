package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// JobKind identifies what a job computed and therefore how its result is parsed.
type JobKind uint8

const (
	// KindUnknown is assigned to jobs whose parameters match no known prefix.
	KindUnknown JobKind = iota
	// KindMatchSampleVs compares one sample against one other sample.
	KindMatchSampleVs
	// KindMatchSample matches one sample against the whole corpus.
	KindMatchSample
	// KindMatchSmdaReport matches an uploaded SMDA report.
	KindMatchSmdaReport
	// KindMatchMappedBinary matches an uploaded mapped binary.
	KindMatchMappedBinary
	// KindMatchUnmappedBinary matches an uploaded unmapped binary.
	KindMatchUnmappedBinary
	// KindCrossCompare clusters many samples against one another.
	KindCrossCompare
	// KindUpdateMinHashesForSample recomputes minhashes of one sample.
	KindUpdateMinHashesForSample
	// KindUpdateMinHashes recomputes all minhashes.
	KindUpdateMinHashes
	// KindUniqueBlocks collects blocks unique to a sample or family.
	KindUniqueBlocks
	// KindAddSample submits a binary sample.
	KindAddSample
)

type kindPrefix struct {
	prefix string
	kind   JobKind
}

// kindPrefixes is matched top to bottom and the first hit wins.
// The order must not change: "getMatchesForSample" is a prefix of
// "getMatchesForSampleVs" and "updateMinHashes" is a prefix of
// "updateMinHashesForSample", so each longer prefix has to come first.
var kindPrefixes = []kindPrefix{
	{"getMatchesForSampleVs", KindMatchSampleVs},
	{"getMatchesForSample", KindMatchSample},
	{"getMatchesForSmdaReport", KindMatchSmdaReport},
	{"getMatchesForMappedBinary", KindMatchMappedBinary},
	{"getMatchesForUnmappedBinary", KindMatchUnmappedBinary},
	{"combineMatchesToCross", KindCrossCompare},
	{"updateMinHashesForSample", KindUpdateMinHashesForSample},
	{"updateMinHashes", KindUpdateMinHashes},
	{"getUniqueBlocks", KindUniqueBlocks},
	{"addBinarySample", KindAddSample},
}

// ClassifyJob derives the job kind from the parameters string of a job.
func ClassifyJob(parameters string) JobKind {
	for _, kp := range kindPrefixes {
		if strings.HasPrefix(parameters, kp.prefix) {
			return kp.kind
		}
	}
	return KindUnknown
}

// KindPrefixes returns the classification prefixes in match order.
func KindPrefixes() []string {
	prefixes := make([]string, len(kindPrefixes))
	for i, kp := range kindPrefixes {
		prefixes[i] = kp.prefix
	}
	return prefixes
}

// IsMatching reports whether results of this kind parse into a MatchingResult.
func (k JobKind) IsMatching() bool {
	switch k {
	case KindMatchSampleVs, KindMatchSample, KindMatchSmdaReport,
		KindMatchMappedBinary, KindMatchUnmappedBinary:
		return true
	default:
		return false
	}
}

// String returns the method name the kind was classified from.
func (k JobKind) String() string {
	for _, kp := range kindPrefixes {
		if kp.kind == k {
			return kp.prefix
		}
	}
	return "unknown"
}

// JobInfo describes a job on the matching service. It is read-only here.
type JobInfo struct {
	ID           string
	Number       int
	Parameters   string
	Kind         JobKind
	Payload      map[string]any
	ResultID     string
	CreatedAt    time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
	Dependencies []string
	Failed       bool
	Progress     float64
}

// HasResult reports whether the service has stored a result for the job.
func (j *JobInfo) HasResult() bool {
	return j != nil && j.ResultID != ""
}

// Finished reports whether the job has completed, successfully or not.
func (j *JobInfo) Finished() bool {
	return j != nil && j.FinishedAt != nil
}

// Job states as reported by Status.
const (
	StatusFailed     = "failed"
	StatusFinished   = "finished"
	StatusInProgress = "in progress"
)

// Status summarizes the job state for display. A nil job is in progress, as it
// has produced nothing yet.
func (j *JobInfo) Status() string {
	switch {
	case j == nil:
		return StatusInProgress
	case j.Failed:
		return StatusFailed
	case j.Finished():
		return StatusFinished
	default:
		return StatusInProgress
	}
}

// Started reports whether a worker has picked up the job.
func (j *JobInfo) Started() bool {
	return j != nil && j.StartedAt != nil
}

// QueueQuery selects a window of the job queue.
type QueueQuery struct {
	Start  int
	Limit  int
	Filter string
}

// ValidateJobID rejects ids that cannot name a file or directory of the local cache.
func ValidateJobID(jobID string) error {
	switch {
	case jobID == "", jobID == ".", strings.Contains(jobID, ".."):
	case strings.ContainsAny(jobID, `/\`+"\x00"):
	default:
		return nil
	}
	return zerr.With(zerr.Wrap(ErrInvalidJobID, "job id cannot be used as a cache key"), "job_id", jobID)
}
