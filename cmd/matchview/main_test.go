package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/matchview/internal/adapters/telemetry"
	"go.trai.ch/matchview/internal/app"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/matchview/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApplication(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, log *mocks.MockLogger, client *mocks.MockMatchingClient) *app.App {
	return app.New(loader, log, telemetry.NewNoOpTracer(), nil).
		WithOutput(io.Discard).
		WithBackends(func(*domain.Config, ports.DiagramRenderer) (*app.Backends, error) {
			return &app.Backends{Client: client, Cache: mocks.NewMockResultCache(ctrl)}, nil
		})
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApplication(ctrl, mocks.NewMockConfigLoader(ctrl), mockLogger, mocks.NewMockMatchingClient(ctrl))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLoader.EXPECT().Load(gomock.Any(), "").Return(nil, errors.New("load failed"))
	mockLogger.EXPECT().Error(gomock.Any())

	application := newApplication(ctrl, mockLoader, mockLogger, mocks.NewMockMatchingClient(ctrl))
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"jobs"}, io.Discard, provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that a canceled context reaches the remote calls.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), nil)

	mockClient := mocks.NewMockMatchingClient(ctrl)
	mockClient.EXPECT().GetJobData(gomock.Any(), "job-1").DoAndReturn(func(ctx context.Context, _ string) (*domain.JobInfo, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newApplication(ctrl, mockLoader, mockLogger, mockClient)
	// The result cache is consulted before the job lookup.
	opt := func(a *app.App) {
		a.WithBackends(func(*domain.Config, ports.DiagramRenderer) (*app.Backends, error) {
			cache := mocks.NewMockResultCache(ctrl)
			cache.EXPECT().Load("job-1").Return(nil, false, nil)
			return &app.Backends{Client: mockClient, Cache: cache}, nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"result", "job-1"}, io.Discard, func(context.Context) (*app.Components, func(), error) {
			return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
		}, opt)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
