package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/adapters/telemetry"
	"go.trai.ch/matchview/internal/app"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app    *app.App
	out    *bytes.Buffer
	loader *mocks.MockConfigLoader
	log    *mocks.MockLogger
	client *mocks.MockMatchingClient
	cache  *mocks.MockResultCache
	cfg    *domain.Config
}

func newFixture(t *testing.T, mode string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		out:    &bytes.Buffer{},
		loader: mocks.NewMockConfigLoader(ctrl),
		log:    mocks.NewMockLogger(ctrl),
		client: mocks.NewMockMatchingClient(ctrl),
		cache:  mocks.NewMockResultCache(ctrl),
		cfg:    domain.DefaultConfig(),
	}
	f.loader.EXPECT().Load(gomock.Any(), "").Return(f.cfg, nil).AnyTimes()

	f.app = app.New(f.loader, f.log, telemetry.NewNoOpTracer(), nil).
		WithOutput(f.out).
		WithBackends(func(cfg *domain.Config, _ ports.DiagramRenderer) (*app.Backends, error) {
			assert.Same(t, f.cfg, cfg)
			return &app.Backends{Client: f.client, Cache: f.cache}, nil
		})
	f.app.Configure(app.Options{OutputMode: mode})
	return f
}

func finished(id, parameters string) *domain.JobInfo {
	done := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.JobInfo{
		ID:         id,
		Parameters: parameters,
		Kind:       domain.ClassifyJob(parameters),
		ResultID:   "result-" + id,
		FinishedAt: &done,
	}
}

const matchingPayload = `{
  "info": {"sample": {"sample_id": 10, "family_id": 1, "family": "alpha", "version": "1.0", "filename": "alpha.exe", "sha256": "aa"}},
  "matches": {
    "samples": [{"sample_id": 20, "family_id": 2, "family": "beta", "version": "2.0", "filename": "beta.dll", "matched_functions": 3, "matched_percent": 87.5}],
    "functions": [{"function_id": 100, "offset": 4096, "num_bytes": 64, "matched_sample_id": 20, "matched_family_id": 2, "matched_function_id": 200, "match_score": 92.5}]
  }
}`

const crossPayload = `{
  "ward": {
    "clustered_sequence": [2, 1],
    "matching_matches": {},
    "matching_percent": {"1": {"1": 100, "2": 40}, "2": {"1": 40, "2": 100}}
  }
}`

func TestApp_Result_Plain(t *testing.T) {
	tests := []struct {
		name   string
		golden string
		setup  func(f *fixture)
		jobID  string
	}{
		{
			name:   "matches",
			golden: "result_matches",
			jobID:  "job-1",
			setup: func(f *fixture) {
				f.cache.EXPECT().Load("job-1").Return([]byte(matchingPayload), true, nil)
				f.client.EXPECT().GetJobData(gomock.Any(), "job-1").Return(finished("job-1", "getMatchesForSample(10)"), nil)
			},
		},
		{
			name:   "cross compare",
			golden: "result_cross",
			jobID:  "job-2",
			setup: func(f *fixture) {
				f.cache.EXPECT().Load("job-2").Return([]byte(crossPayload), true, nil)
				f.client.EXPECT().GetJobData(gomock.Any(), "job-2").Return(finished("job-2", "combineMatchesToCross([1,2])"), nil)
				f.client.EXPECT().GetSampleByID(gomock.Any(), 1).
					Return(&domain.Sample{ID: 1, Family: "alpha", Version: "1.0"}, nil)
				f.client.EXPECT().GetSampleByID(gomock.Any(), 2).
					Return(&domain.Sample{ID: 2, Family: "beta", Version: "2.0"}, nil)
			},
		},
		{
			name:   "in progress",
			golden: "result_in_progress",
			jobID:  "job-3",
			setup: func(f *fixture) {
				f.cache.EXPECT().Load("job-3").Return(nil, false, nil)
				f.client.EXPECT().GetJobData(gomock.Any(), "job-3").Return(&domain.JobInfo{
					ID:         "job-3",
					Parameters: "getMatchesForSample(10)",
					Kind:       domain.KindMatchSample,
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "plain")
			tt.setup(f)

			err := f.app.Result(context.Background(), tt.jobID, url.Values{})
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.golden, f.out.Bytes())
		})
	}
}

func TestApp_Result_JSON(t *testing.T) {
	f := newFixture(t, "json")
	f.cache.EXPECT().Load("job-1").Return([]byte(matchingPayload), true, nil)
	f.client.EXPECT().GetJobData(gomock.Any(), "job-1").Return(finished("job-1", "getMatchesForSample(10)"), nil)

	values := url.Values{"famid": {"2"}}
	f.client.EXPECT().GetFamily(gomock.Any(), 2).Return(&domain.Family{ID: 2, Name: "beta"}, nil)

	require.NoError(t, f.app.Result(context.Background(), "job-1", values))

	var doc struct {
		Kind string `json:"kind"`
		Data struct {
			Job struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"job"`
			Narrowing string `json:"narrowing"`
			Family    struct {
				Name string `json:"family_name"`
			} `json:"family"`
			SamplePage struct {
				Total int `json:"total"`
			} `json:"sample_page"`
			Samples []domain.SampleMatch `json:"samples"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &doc))
	assert.Equal(t, "matches", doc.Kind)
	assert.Equal(t, "job-1", doc.Data.Job.ID)
	assert.Equal(t, "finished", doc.Data.Job.Status)
	assert.Equal(t, "family", doc.Data.Narrowing)
	assert.Equal(t, "beta", doc.Data.Family.Name)
	assert.Equal(t, 1, doc.Data.SamplePage.Total)
	require.Len(t, doc.Data.Samples, 1)
	assert.Equal(t, 20, doc.Data.Samples[0].SampleID)
}

func TestApp_Result_PropagatesErrors(t *testing.T) {
	f := newFixture(t, "plain")
	f.cache.EXPECT().Load("gone").Return(nil, false, nil)
	f.client.EXPECT().GetJobData(gomock.Any(), "gone").
		Return(nil, domain.ErrNotFound)

	err := f.app.Result(context.Background(), "gone", url.Values{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.out.String())
}

func TestApp_ConfigLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	loader.EXPECT().Load(gomock.Any(), "custom.yaml").Return(nil, domain.ErrConfigParseFailed)

	a := app.New(loader, log, telemetry.NewNoOpTracer(), nil).
		WithBackends(func(*domain.Config, ports.DiagramRenderer) (*app.Backends, error) {
			t.Fatal("backends must not be built without a configuration")
			return nil, nil
		})
	a.Configure(app.Options{ConfigPath: "custom.yaml", OutputMode: "plain"})

	err := a.Jobs(context.Background(), "", url.Values{})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Search_JSON(t *testing.T) {
	f := newFixture(t, "json")
	f.client.EXPECT().SearchFamilies(gomock.Any(), "beta", gomock.Any()).
		Return(&domain.SearchResult[domain.Family]{
			Results: []domain.Family{{ID: 2, Name: "beta"}},
			Cursor:  domain.Cursor{Forward: "next-token"},
		}, nil)

	require.NoError(t, f.app.Search(context.Background(), "beta", url.Values{"type": {"family"}}))

	var doc struct {
		Kind string `json:"kind"`
		Data struct {
			Families struct {
				Entries []domain.Family `json:"entries"`
				Cursor  struct {
					SortBy string `json:"sort_by"`
					Next   string `json:"next"`
				} `json:"cursor"`
			} `json:"families"`
			Samples any `json:"samples"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &doc))
	assert.Equal(t, "search", doc.Kind)
	require.Len(t, doc.Data.Families.Entries, 1)
	assert.Equal(t, "family_id", doc.Data.Families.Cursor.SortBy)

	next, err := url.ParseQuery(doc.Data.Families.Cursor.Next)
	require.NoError(t, err)
	assert.Equal(t, "next-token", next.Get("family_cursor"))
	assert.Nil(t, doc.Data.Samples)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd))
	})
}

func TestApp_Export(t *testing.T) {
	familyID := 4

	tests := []struct {
		name  string
		req   app.ExportRequest
		setup func(f *fixture)
		file  string
	}{
		{
			name: "all samples",
			setup: func(f *fixture) {
				f.client.EXPECT().GetExportData(gomock.Any(), []int(nil)).Return([]byte(`{"all":true}`), nil)
			},
			file: "export_all_samples.json",
		},
		{
			name: "sample list",
			req:  app.ExportRequest{IDs: "3, 5,8"},
			setup: func(f *fixture) {
				f.client.EXPECT().GetExportData(gomock.Any(), []int{3, 5, 8}).Return([]byte(`{"all":false}`), nil)
			},
			file: "export_samples.json",
		},
		{
			name: "family",
			req:  app.ExportRequest{IDs: "1", FamilyID: &familyID},
			setup: func(f *fixture) {
				f.client.EXPECT().GetSamplesByFamilyID(gomock.Any(), 4).
					Return([]domain.Sample{{ID: 40}, {ID: 41}}, nil)
				f.client.EXPECT().GetExportData(gomock.Any(), []int{40, 41}).Return([]byte(`{"family":4}`), nil)
			},
			file: "export_family_4.json",
		},
		{
			name: "explicit output",
			req:  app.ExportRequest{IDs: "2", Output: filepath.Join("out", "two.json")},
			setup: func(f *fixture) {
				f.client.EXPECT().GetExportData(gomock.Any(), []int{2}).Return([]byte(`{}`), nil)
			},
			file: filepath.Join("out", "two.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			f := newFixture(t, "plain")
			f.log.EXPECT().Debug(gomock.Any())
			tt.setup(f)

			require.NoError(t, f.app.Export(context.Background(), tt.req))

			_, err := os.Stat(tt.file)
			require.NoError(t, err)
			assert.Contains(t, f.out.String(), tt.file)
		})
	}
}

func TestApp_Export_Errors(t *testing.T) {
	chdir(t, t.TempDir())
	familyID := 9

	t.Run("malformed list", func(t *testing.T) {
		f := newFixture(t, "plain")
		err := f.app.Export(context.Background(), app.ExportRequest{IDs: "1;2"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty family", func(t *testing.T) {
		f := newFixture(t, "plain")
		f.client.EXPECT().GetSamplesByFamilyID(gomock.Any(), 9).Return(nil, nil)
		err := f.app.Export(context.Background(), app.ExportRequest{FamilyID: &familyID})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		require.NoError(t, os.WriteFile("blocker", nil, 0o600))
		f := newFixture(t, "plain")
		f.client.EXPECT().GetExportData(gomock.Any(), []int{1}).Return([]byte(`{}`), nil)
		err := f.app.Export(context.Background(), app.ExportRequest{IDs: "1", Output: filepath.Join("blocker", "x.json")})
		require.ErrorIs(t, err, domain.ErrExportWriteFailed)
	})
}

func TestApp_CachePrune(t *testing.T) {
	f := newFixture(t, "json")
	f.cfg.Cache.MaxEntries = 1
	removed := []domain.CacheEntry{{JobID: "job-1", Name: "a", Size: 12}}
	f.cache.EXPECT().Prune(domain.Chain{domain.MaxEntries(1)}).Return(removed, nil)
	f.log.EXPECT().Info("pruned 1 cache entries")

	require.NoError(t, f.app.CachePrune())

	var doc struct {
		Kind string              `json:"kind"`
		Data []domain.CacheEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &doc))
	assert.Equal(t, "pruned", doc.Kind)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "job-1", doc.Data[0].JobID)
}

func TestApp_CachePrune_NoBounds(t *testing.T) {
	f := newFixture(t, "plain")
	f.cache.EXPECT().Prune(domain.KeepAll{}).Return(nil, nil)
	gomock.InOrder(
		f.log.EXPECT().Info("no eviction bounds configured, nothing to prune"),
		f.log.EXPECT().Info("pruned 0 cache entries"),
	)

	require.NoError(t, f.app.CachePrune())
	assert.Equal(t, "Pruned 0 entries, 0 bytes\n  none\n", f.out.String())
}

func TestApp_CacheList(t *testing.T) {
	f := newFixture(t, "plain")
	written := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	f.cache.EXPECT().List().Return([]domain.CacheEntry{
		{JobID: "job-b", Name: "x", WrittenAt: written, Size: 5},
		{JobID: "job-a", Name: "y", WrittenAt: written, Size: 7},
	}, nil)

	require.NoError(t, f.app.CacheList())
	assert.Equal(t, "Cache 2 entries, 12 bytes\n"+
		"  JOB    WRITTEN              BYTES\n"+
		"  job-a  2026-03-04 05:06:07  7\n"+
		"  job-b  2026-03-04 05:06:07  5\n", f.out.String())
}

func TestApp_Jobs_Plain(t *testing.T) {
	f := newFixture(t, "plain")
	f.client.EXPECT().GetJobCount(gomock.Any(), "").Return(1, nil)
	f.client.EXPECT().GetJobCount(gomock.Any(), gomock.Any()).Return(0, nil).Times(3)
	f.client.EXPECT().GetQueueData(gomock.Any(), domain.QueueQuery{Limit: 10}).
		Return([]domain.JobInfo{*finished("job-7", "addBinarySample(a.exe)")}, nil)
	f.client.EXPECT().GetQueueData(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

	require.NoError(t, f.app.Jobs(context.Background(), "", url.Values{}))

	out := f.out.String()
	assert.Contains(t, out, "others (1-1 of 1, page 1/1)")
	assert.Contains(t, out, "  0  job-7  finished  addBinarySample(a.exe)\n")
	assert.Contains(t, out, "one-vs-one (none of 0, page 1/1)")
}
