package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/core/domain"
)

func TestClassifyJob(t *testing.T) {
	tests := []struct {
		parameters string
		want       domain.JobKind
	}{
		{"getMatchesForSampleVs(1, 2)", domain.KindMatchSampleVs},
		{"getMatchesForSample(1)", domain.KindMatchSample},
		{"getMatchesForSmdaReport(abc)", domain.KindMatchSmdaReport},
		{"getMatchesForMappedBinary(abc)", domain.KindMatchMappedBinary},
		{"getMatchesForUnmappedBinary(abc)", domain.KindMatchUnmappedBinary},
		{"combineMatchesToCross([1, 2, 3])", domain.KindCrossCompare},
		{"updateMinHashesForSample(4)", domain.KindUpdateMinHashesForSample},
		{"updateMinHashes()", domain.KindUpdateMinHashes},
		{"getUniqueBlocks([4])", domain.KindUniqueBlocks},
		{"addBinarySample(x.exe)", domain.KindAddSample},
		{"deleteSample(4)", domain.KindUnknown},
		{"", domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.parameters, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyJob(tt.parameters))
		})
	}
}

func TestKindPrefixes_LongerPrefixFirst(t *testing.T) {
	prefixes := domain.KindPrefixes()
	for i, p := range prefixes {
		for _, later := range prefixes[i+1:] {
			assert.False(t, len(later) > len(p) && later[:len(p)] == p,
				"%q shadows the longer prefix %q", p, later)
		}
	}
}

func TestJobKind_IsMatching(t *testing.T) {
	assert.True(t, domain.KindMatchSampleVs.IsMatching())
	assert.True(t, domain.KindMatchUnmappedBinary.IsMatching())
	assert.False(t, domain.KindCrossCompare.IsMatching())
	assert.False(t, domain.KindUnknown.IsMatching())
	assert.Equal(t, "combineMatchesToCross", domain.KindCrossCompare.String())
	assert.Equal(t, "unknown", domain.KindUnknown.String())
}

func TestJobInfo_Status(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		job  domain.JobInfo
		want string
	}{
		{"queued", domain.JobInfo{}, "in progress"},
		{"running", domain.JobInfo{StartedAt: &now}, "in progress"},
		{"finished", domain.JobInfo{StartedAt: &now, FinishedAt: &now}, "finished"},
		{"failed", domain.JobInfo{FinishedAt: &now, Failed: true}, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.Status())
		})
	}

	var missing *domain.JobInfo
	assert.False(t, missing.HasResult())
	assert.False(t, missing.Finished())
	assert.False(t, missing.Started())
	assert.Equal(t, domain.StatusInProgress, missing.Status())
	assert.True(t, (&domain.JobInfo{StartedAt: &now}).Started())
	assert.True(t, (&domain.JobInfo{ResultID: "r"}).HasResult())
}

func TestValidateJobID(t *testing.T) {
	for _, id := range []string{"65f1a2b3c4d5e6f708192a3b", "job-1", "a.b"} {
		assert.NoError(t, domain.ValidateJobID(id), id)
	}
	for _, id := range []string{"", ".", "..", "a/../b", "a/b", `a\b`, "a\x00b"} {
		err := domain.ValidateJobID(id)
		require.Error(t, err, id)
		assert.ErrorIs(t, err, domain.ErrInvalidJobID)
	}
}
