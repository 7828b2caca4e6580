package views_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/adapters/resultcache"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.trai.ch/matchview/internal/engine/views"
	"go.uber.org/mock/gomock"
)

// spacedPayload is serialized the way the matching service writes results,
// with spaces after separators and characters JSON encoders like to escape.
const spacedPayload = `{"info": {"sample": {"sample_id": 7, "family_id": 70, "family": "query", "filename": "a<b>&c.exe"}}, ` +
	`"matches": {"samples": [{"sample_id": 10, "family_id": 1, "family": "alpha", "matched_percent": 40}], ` +
	`"functions": [{"function_id": 100, "matched_sample_id": 10, "matched_family_id": 1, "matched_function_id": 1000, "match_score": 90}]}}`

func TestResolve_SecondCallIsServedFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMatchingClient(ctrl)
	log := mocks.NewMockLogger(ctrl)

	store, err := resultcache.NewStore(t.TempDir())
	require.NoError(t, err)
	service := views.NewResultService(client, store, nil, noopTracer(), log)

	job := finishedJob("job-1", "getMatchesForSample(7)")
	client.EXPECT().GetJobData(gomock.Any(), "job-1").Return(job, nil).Times(2)
	client.EXPECT().GetResultForJob(gomock.Any(), "job-1").Return([]byte(spacedPayload), nil).Times(1)

	for range 2 {
		view, err := service.Resolve(context.Background(), "job-1", url.Values{})
		require.NoError(t, err)
		matches, ok := view.(*views.MatchesView)
		require.True(t, ok)
		assert.Equal(t, "a<b>&c.exe", matches.Result.Reference.Filename)
	}

	entries, err := store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1, "a cached result is not fetched and appended again")
}
