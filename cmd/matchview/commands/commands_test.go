package commands_test

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/cmd/matchview/commands"
	"go.trai.ch/matchview/internal/app"
	"go.trai.ch/matchview/internal/build"
	"go.trai.ch/matchview/internal/core/domain"
)

type call struct {
	name   string
	id     string
	num    int
	hash   uint64
	query  string
	values url.Values
	export app.ExportRequest
}

type mockApp struct {
	options app.Options
	calls   []call
	err     error
}

func (m *mockApp) record(c call) error {
	m.calls = append(m.calls, c)
	return m.err
}

func (m *mockApp) Configure(opts app.Options) { m.options = opts }

func (m *mockApp) Result(_ context.Context, jobID string, values url.Values) error {
	return m.record(call{name: "result", id: jobID, values: values})
}

func (m *mockApp) Search(_ context.Context, query string, values url.Values) error {
	return m.record(call{name: "search", query: query, values: values})
}

func (m *mockApp) Family(_ context.Context, familyID int, query string, values url.Values) error {
	return m.record(call{name: "family", num: familyID, query: query, values: values})
}

func (m *mockApp) Sample(_ context.Context, sampleID int, query string, values url.Values) error {
	return m.record(call{name: "sample", num: sampleID, query: query, values: values})
}

func (m *mockApp) Function(_ context.Context, functionID int) error {
	return m.record(call{name: "function", num: functionID})
}

func (m *mockApp) PicBlockHash(_ context.Context, hash uint64) error {
	return m.record(call{name: "picblockhash", hash: hash})
}

func (m *mockApp) Job(_ context.Context, jobID string) error {
	return m.record(call{name: "job", id: jobID})
}

func (m *mockApp) Jobs(_ context.Context, query string, values url.Values) error {
	return m.record(call{name: "jobs", query: query, values: values})
}

func (m *mockApp) Export(_ context.Context, req app.ExportRequest) error {
	return m.record(call{name: "export", export: req})
}

func (m *mockApp) CacheList() error { return m.record(call{name: "cache list"}) }

func (m *mockApp) CachePrune() error { return m.record(call{name: "cache prune"}) }

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_GlobalFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "job", "abc")
		require.NoError(t, err)
		assert.Equal(t, app.Options{OutputMode: "auto"}, m.options)
	})

	t.Run("explicit", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--config", "x.yaml", "-o", "json", "--trace", "job", "abc")
		require.NoError(t, err)
		assert.Equal(t, app.Options{ConfigPath: "x.yaml", OutputMode: "json", Trace: true}, m.options)
	})

	t.Run("ci forces plain output", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--ci", "-o", "pretty", "job", "abc")
		require.NoError(t, err)
		assert.Equal(t, "plain", m.options.OutputMode)
	})
}

func TestCommands_Result(t *testing.T) {
	t.Run("wires query flags", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "result", "job-1",
			"--family", "3", "--function-page", "2", "--custom", "3,1,2",
			"--param", "min_score=5", "--param", "samp=4")
		require.NoError(t, err)
		require.Len(t, m.calls, 1)

		c := m.calls[0]
		assert.Equal(t, "job-1", c.id)
		assert.Equal(t, url.Values{
			"famid":     {"3"},
			"funp":      {"2"},
			"custom":    {"3,1,2"},
			"min_score": {"5"},
			"samp":      {"4"},
		}, c.values)
	})

	t.Run("unset flags stay absent", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "result", "job-1")
		require.NoError(t, err)
		assert.Empty(t, m.calls[0].values)
	})

	t.Run("rejects malformed param", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "result", "job-1", "--param", "famid")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, m.calls)
	})

	t.Run("returns app errors", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "result", "job-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires a job id", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "result")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Search(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "search", "--type", "family,sample", "foo", "bar")
	require.NoError(t, err)
	assert.Equal(t, "foo bar", m.calls[0].query)
	assert.Equal(t, url.Values{"type": {"family,sample"}}, m.calls[0].values)
}

func TestCommands_Entities(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{
			name: "family with query",
			args: []string{"family", "7", "version:1.0"},
			want: call{name: "family", num: 7, query: "version:1.0", values: url.Values{}},
		},
		{
			name: "sample with cursor",
			args: []string{"sample", "12", "--param", "cursor=abc"},
			want: call{name: "sample", num: 12, values: url.Values{"cursor": {"abc"}}},
		},
		{
			name: "function",
			args: []string{"function", "99"},
			want: call{name: "function", num: 99},
		},
		{
			name: "hex picblockhash",
			args: []string{"picblockhash", "0xff"},
			want: call{name: "picblockhash", hash: 255},
		},
		{
			name: "decimal picblockhash",
			args: []string{"picblockhash", "18446744073709551615"},
			want: call{name: "picblockhash", hash: 18446744073709551615},
		},
		{
			name: "jobs page",
			args: []string{"jobs", "--cross-page", "2", "addBinarySample"},
			want: call{name: "jobs", query: "addBinarySample", values: url.Values{"p_c": {"2"}}},
		},
		{
			name: "export family",
			args: []string{"export", "--family", "4", "-f", "out.json"},
			want: call{name: "export", export: app.ExportRequest{FamilyID: ptr(4), Output: "out.json"}},
		},
		{
			name: "export list",
			args: []string{"export", "1,2,3"},
			want: call{name: "export", export: app.ExportRequest{IDs: "1,2,3"}},
		},
		{
			name: "cache prune",
			args: []string{"cache", "prune"},
			want: call{name: "cache prune"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0])
		})
	}
}

func TestCommands_InvalidIDs(t *testing.T) {
	for _, args := range [][]string{
		{"family", "x"},
		{"sample", "1.5"},
		{"function", ""},
		{"picblockhash", "zz"},
		{"export", "--family", "abc"},
	} {
		m := &mockApp{}
		_, err := execute(t, m, args...)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "args %v", args)
		assert.Empty(t, m.calls)
	}
}

func TestCommands_Version(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, "matchview version")
}

func ptr[T any](v T) *T { return &v }
