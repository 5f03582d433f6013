package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe_Empty(t *testing.T) {
	s := Describe(nil)

	assert.Equal(t, 0, s.Count)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
}

func TestDescribe_SingleValue(t *testing.T) {
	s := Describe([]float64{73.5})

	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 73.5, s.Mean)
	assert.Equal(t, 73.5, s.Median)
	assert.Equal(t, 73.5, s.Min)
	assert.Equal(t, 73.5, s.Max)
	assert.Equal(t, 0.0, s.StdDev, "stddev is defined as 0 for N<=1")
}

func TestDescribe_EqualValues(t *testing.T) {
	s := Describe([]float64{60, 60, 60, 60})

	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 60.0, s.Mean)
	assert.Equal(t, 60.0, s.Median)
}

func TestDescribe_KnownValues(t *testing.T) {
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2.
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.StdDev, 1e-9)
	assert.InDelta(t, 4.5, s.Median, 1e-9, "even count uses the midpoint average")
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}

func TestDescribe_OddCountMedian(t *testing.T) {
	s := Describe([]float64{90, 10, 50})

	assert.Equal(t, 50.0, s.Median)
}

func TestDescribe_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Describe(values)

	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestDescribe_OrderingInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.Float64() * 100
		}

		s := Describe(values)

		assert.LessOrEqual(t, s.Min, s.Median)
		assert.LessOrEqual(t, s.Median, s.Max)
		assert.GreaterOrEqual(t, s.Mean, s.Min)
		assert.LessOrEqual(t, s.Mean, s.Max)
		assert.GreaterOrEqual(t, s.StdDev, 0.0)
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
}
