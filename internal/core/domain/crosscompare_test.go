package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/matchview/internal/core/domain"
)

func TestCheckpoints(t *testing.T) {
	samples := make([]domain.Sample, 0, 12)
	for i := 1; i <= 12; i++ {
		samples = append(samples, domain.Sample{ID: i * 10})
	}

	assert.Equal(t, []int{50, 100}, domain.Checkpoints(samples))
	assert.Nil(t, domain.Checkpoints(samples[:4]))
}

func TestCrossCompareResult_SampleIDs(t *testing.T) {
	r := domain.CrossCompareResult{Methods: []domain.CrossCompareMethod{
		{Name: "a", ClusteredSequence: []int{3, 1}},
		{Name: "b", ClusteredSequence: []int{1, 5, 3}},
	}}
	assert.Equal(t, []int{3, 1, 5}, r.SampleIDs())
}
