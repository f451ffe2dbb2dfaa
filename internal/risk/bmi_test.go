package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	bmi, err := BMI(60, 160)
	require.NoError(t, err)
	assert.InDelta(t, 23.4375, bmi, 1e-9)
	assert.False(t, IsUnderweight(bmi))
	assert.Equal(t, BMINormal, BMICategoryOf(bmi))
}

func TestBMIRejectsBadInput(t *testing.T) {
	_, err := BMI(60, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMI(60, -170)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMI(-1, 160)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMI(math.NaN(), 160)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMI(60, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMICategoryBoundaries(t *testing.T) {
	cases := []struct {
		bmi      float64
		expected BMICategory
	}{
		{16, BMIUnderweight},
		{18.49, BMIUnderweight},
		{18.5, BMINormal},
		{24.99, BMINormal},
		{25, BMIOverweight},
		{29.99, BMIOverweight},
		{30, BMIObese},
		{41, BMIObese},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, BMICategoryOf(c.bmi), "bmi %v", c.bmi)
	}
}

func TestIsUnderweightBoundary(t *testing.T) {
	assert.True(t, IsUnderweight(18.49))
	assert.False(t, IsUnderweight(18.5))
}

func TestRecommendedWeightGainRange(t *testing.T) {
	cases := []struct {
		bmi      float64
		min, max float64
	}{
		{17, 12.5, 18},
		{18.5, 11.5, 16},
		{24.9, 11.5, 16},
		{25, 7, 11.5},
		{29.9, 7, 11.5},
		{30, 5, 9},
		{36, 5, 9},
	}
	for _, c := range cases {
		min, max := RecommendedWeightGainRange(c.bmi)
		assert.Equal(t, c.min, min, "bmi %v", c.bmi)
		assert.Equal(t, c.max, max, "bmi %v", c.bmi)
	}
}
