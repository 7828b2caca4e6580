package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/matchview/internal/core/domain"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "4", want: []int{4}},
		{name: "spaced", input: "1, 2 ,3", want: []int{1, 2, 3}},
		{name: "trailing comma", input: "1,2,", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "letters", input: "1,a", wantErr: true},
		{name: "leading space", input: " 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseIDList(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomOrder(t *testing.T) {
	got, err := domain.ParseCustomOrder("3, 1,-2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, -2}, got)

	got, err = domain.ParseCustomOrder("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = domain.ParseCustomOrder("3,,1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseID(t *testing.T) {
	id, err := domain.ParseID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = domain.ParseID("twelve")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
