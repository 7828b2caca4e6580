package views_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.trai.ch/matchview/internal/engine/views"
	"go.uber.org/mock/gomock"
)

func newJobService(t *testing.T) (*views.JobService, *mocks.MockMatchingClient, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMatchingClient(ctrl)
	log := mocks.NewMockLogger(ctrl)
	return views.NewJobService(client, log, domain.DefaultConfig().Pagination), client, log
}

func TestJobOverview_SortsChildren(t *testing.T) {
	s, client, log := newJobService(t)
	parent := &domain.JobInfo{ID: "p", Number: 1, Dependencies: []string{"c3", "gone", "c2"}}

	client.EXPECT().GetJobData(gomock.Any(), "p").Return(parent, nil)
	client.EXPECT().GetJobData(gomock.Any(), "c3").Return(&domain.JobInfo{ID: "c3", Number: 3}, nil)
	client.EXPECT().GetJobData(gomock.Any(), "c2").Return(&domain.JobInfo{ID: "c2", Number: 2}, nil)
	client.EXPECT().GetJobData(gomock.Any(), "gone").Return(nil, domain.ErrNotFound)
	log.EXPECT().Warn("skipping missing child job gone")

	overview, err := s.Overview(context.Background(), "p")
	require.NoError(t, err)
	assert.Same(t, parent, overview.Job)
	require.Len(t, overview.Children, 2)
	assert.Equal(t, "c2", overview.Children[0].ID)
	assert.Equal(t, "c3", overview.Children[1].ID)
}

func TestJobOverview_Errors(t *testing.T) {
	t.Run("unknown job", func(t *testing.T) {
		s, client, _ := newJobService(t)
		client.EXPECT().GetJobData(gomock.Any(), "p").Return(nil, domain.ErrNotFound)

		_, err := s.Overview(context.Background(), "p")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("child lookup fails", func(t *testing.T) {
		s, client, _ := newJobService(t)
		client.EXPECT().GetJobData(gomock.Any(), "p").Return(&domain.JobInfo{ID: "p", Dependencies: []string{"c"}}, nil)
		client.EXPECT().GetJobData(gomock.Any(), "c").Return(nil, domain.ErrRemoteUnavailable)

		_, err := s.Overview(context.Background(), "p")
		require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})

	t.Run("invalid id", func(t *testing.T) {
		s, _, _ := newJobService(t)

		_, err := s.Overview(context.Background(), "a/b")
		require.ErrorIs(t, err, domain.ErrInvalidJobID)
	})
}

func TestJobList_Sections(t *testing.T) {
	s, client, _ := newJobService(t)
	counts := map[string]int{
		"emotet":                 3,
		"getMatchesForSampleVs(": 25,
		"getMatchesForSample(":   4,
		"combineMatchesToCross(": 12,
	}
	client.EXPECT().GetJobCount(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter string) (int, error) {
		return counts[filter], nil
	}).Times(4)
	client.EXPECT().GetQueueData(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q domain.QueueQuery) ([]domain.JobInfo, error) {
		return []domain.JobInfo{{ID: q.Filter}}, nil
	}).Times(4)

	listing, err := s.List(context.Background(), "emotet", url.Values{
		views.ParamOneVsOnePage: {"3"},
		views.ParamCrossPage:    {"2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "emotet", listing.Others.Jobs[0].ID)
	assert.Equal(t, 3, listing.Others.Page.Total)

	assert.Equal(t, 20, listing.OneVsOne.Page.Start)
	assert.Equal(t, 25, listing.OneVsOne.Page.End)
	assert.Equal(t, "getMatchesForSampleVs(", listing.OneVsOne.Jobs[0].ID)

	assert.Equal(t, 0, listing.OneVsAll.Page.Start)
	assert.Equal(t, "getMatchesForSample(", listing.OneVsAll.Filter)

	assert.Equal(t, 10, listing.Cross.Page.Start, "cross compare pages independently")
	assert.Equal(t, 12, listing.Cross.Page.End)
	assert.Len(t, listing.Sections(), 4)
}

func TestJobList_RemoteFailure(t *testing.T) {
	s, client, _ := newJobService(t)
	client.EXPECT().GetJobCount(gomock.Any(), gomock.Any()).Return(0, domain.ErrRemoteUnavailable).MinTimes(1)
	client.EXPECT().GetQueueData(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := s.List(context.Background(), "", url.Values{})
	require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
