package diagramcache_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/adapters/diagramcache"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var _ ports.DiagramCache = (*diagramcache.Cache)(nil)

func writeBody(body string) func(context.Context, io.Writer, *domain.MatchingResult, domain.DiagramFilter) error {
	return func(_ context.Context, w io.Writer, _ *domain.MatchingResult, _ domain.DiagramFilter) error {
		_, err := io.WriteString(w, body)
		return err
	}
}

func TestGetOrRender_RendersOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockDiagramRenderer(ctrl)
	renderer.EXPECT().Extension().Return(".txt").AnyTimes()
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), domain.FamilyDiagramFilter(4)).
		DoAndReturn(writeBody("diagram")).Times(1)

	root := t.TempDir()
	cache, err := diagramcache.New(root, renderer)
	require.NoError(t, err)

	result := domain.NewMatchingResult(domain.Sample{ID: 1}, nil, nil)
	path, err := cache.GetOrRender(context.Background(), "job1", result, domain.FamilyDiagramFilter(4))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(domain.DiagramsPath(root), "job1-famid_4.txt"), path)

	again, err := cache.GetOrRender(context.Background(), "job1", result, domain.FamilyDiagramFilter(4))
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "diagram", string(data))
}

func TestGetOrRender_NeverReplaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockDiagramRenderer(ctrl)
	renderer.EXPECT().Extension().Return(".txt").AnyTimes()

	root := t.TempDir()
	cache, err := diagramcache.New(root, renderer)
	require.NoError(t, err)

	existing := filepath.Join(domain.DiagramsPath(root), "job2-samid_8.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o600))

	path, err := cache.GetOrRender(context.Background(), "job2", nil, domain.SampleDiagramFilter(8))
	require.NoError(t, err)
	assert.Equal(t, existing, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestGetOrRender_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockDiagramRenderer(ctrl)
	renderer.EXPECT().Extension().Return(".png").AnyTimes()
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("no fonts"))

	root := t.TempDir()
	cache, err := diagramcache.New(root, renderer)
	require.NoError(t, err)

	_, err = cache.GetOrRender(context.Background(), "job3", nil, domain.NoDiagramFilter())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDiagramRenderFailed)

	entries, err := os.ReadDir(domain.DiagramsPath(root))
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial artifact or temp file is left behind")
}

func TestGetOrRender_InvalidJobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockDiagramRenderer(ctrl)

	cache, err := diagramcache.New(t.TempDir(), renderer)
	require.NoError(t, err)

	_, err = cache.GetOrRender(context.Background(), "../escape", nil, domain.NoDiagramFilter())
	require.ErrorIs(t, err, domain.ErrInvalidJobID)
}
