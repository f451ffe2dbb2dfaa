package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestAssessAgeBands(t *testing.T) {
	cases := []struct {
		age      int
		expected int
	}{
		{15, 3},
		{17, 3},
		{18, 2},
		{19, 2}, // first-match ordering: 19 is the young-age band, not adolescent
		{20, 0},
		{29, 0},
		{35, 0},
		{36, 2},
		{40, 2},
		{41, 4},
		{42, 4},
	}
	for _, c := range cases {
		a, err := Assess(Factors{Age: c.age})
		require.NoError(t, err)
		assert.Equal(t, c.expected, a.Score, "age %d", c.age)
	}
}

func TestAssessScenarioAdvancedAgeOnly(t *testing.T) {
	a, err := Assess(Factors{Age: 42})
	require.NoError(t, err)
	assert.Equal(t, 4, a.Score)
	assert.Equal(t, LevelLow, a.Level)
	require.Len(t, a.Factors, 1)
	assert.Equal(t, "age", a.Factors[0].Name)
	assert.Equal(t, "Advanced maternal age (42 years)", a.Factors[0].Note)
}

func TestAssessScenarioCombinedHigh(t *testing.T) {
	a, err := Assess(Factors{
		Age:                  29,
		Underweight:          true,
		HasChronicConditions: true,
		PreviousCesareans:    1,
		BloodPressure:        &BloodPressure{Systolic: 145, Diastolic: 92},
		Hemoglobin:           floatPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, a.Score)
	assert.Equal(t, LevelHigh, a.Level)

	names := make([]string, len(a.Factors))
	for i, f := range a.Factors {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"underweight",
		"previous_cesareans",
		"chronic_conditions",
		"blood_pressure",
		"hemoglobin",
	}, names)
}

func TestAssessSystolicAloneTriggersSevereBand(t *testing.T) {
	a, err := Assess(Factors{Age: 29, BloodPressure: &BloodPressure{Systolic: 162, Diastolic: 70}})
	require.NoError(t, err)
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, LevelModerate, a.Level)
	require.Len(t, a.Factors, 1)
	assert.Equal(t, "Severe hypertension (162/70 mmHg)", a.Factors[0].Note)

	a, err = Assess(Factors{Age: 29, BloodPressure: &BloodPressure{Systolic: 165, Diastolic: 70}})
	require.NoError(t, err)
	assert.Equal(t, 5, a.Score)
}

func TestAssessClassificationBoundaries(t *testing.T) {
	// Exactly 5: severe hypertension alone.
	a, err := Assess(Factors{Age: 25, BloodPressure: &BloodPressure{Systolic: 160, Diastolic: 80}})
	require.NoError(t, err)
	require.Equal(t, 5, a.Score)
	assert.Equal(t, LevelModerate, a.Level)

	// Exactly 10: underweight + abnormal history + chronic condition.
	a, err = Assess(Factors{
		Age:                         25,
		Underweight:                 true,
		HadAbnormalPregnancyHistory: true,
		HasChronicConditions:        true,
	})
	require.NoError(t, err)
	require.Equal(t, 10, a.Score)
	assert.Equal(t, LevelHigh, a.Level)

	// Exactly 15: severe hypertension + severe anemia + severe hyperglycemia.
	a, err = Assess(Factors{
		Age:           25,
		BloodPressure: &BloodPressure{Systolic: 170, Diastolic: 115},
		Hemoglobin:    floatPtr(6.5),
		BloodGlucose:  floatPtr(220),
	})
	require.NoError(t, err)
	require.Equal(t, 15, a.Score)
	assert.Equal(t, LevelCritical, a.Level)
}

func TestAssessAbsenceDistinctFromZero(t *testing.T) {
	// No readings at all: nothing contributes.
	a, err := Assess(Factors{Age: 25})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, LevelLow, a.Level)
	assert.Empty(t, a.Factors)

	// A present zero hemoglobin is an abnormal reading, not absence.
	a, err = Assess(Factors{Age: 25, Hemoglobin: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 5, a.Score)
	require.Len(t, a.Factors, 1)
	assert.Equal(t, "hemoglobin", a.Factors[0].Name)

	// A present zero blood pressure scores nothing but is still valid.
	a, err = Assess(Factors{Age: 25, BloodPressure: &BloodPressure{}})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Score)
}

func TestAssessHemoglobinBands(t *testing.T) {
	cases := []struct {
		gdl      float64
		expected int
	}{
		{6.9, 5},
		{7, 3},
		{8.9, 3},
		{9, 2},
		{10.9, 2},
		{11, 0},
		{13, 0},
	}
	for _, c := range cases {
		a, err := Assess(Factors{Age: 25, Hemoglobin: floatPtr(c.gdl)})
		require.NoError(t, err)
		assert.Equal(t, c.expected, a.Score, "hemoglobin %v", c.gdl)
	}
}

func TestAssessGlucoseBands(t *testing.T) {
	cases := []struct {
		mgdl     float64
		expected int
	}{
		{95, 0},
		{100, 1},
		{139, 1},
		{140, 3},
		{199, 3},
		{200, 5},
	}
	for _, c := range cases {
		a, err := Assess(Factors{Age: 25, BloodGlucose: floatPtr(c.mgdl)})
		require.NoError(t, err)
		assert.Equal(t, c.expected, a.Score, "glucose %v", c.mgdl)
	}
}

func TestAssessObstetricHistoryBands(t *testing.T) {
	for count, expected := range map[int]int{0: 0, 1: 1, 2: 3, 3: 4, 5: 4} {
		a, err := Assess(Factors{Age: 25, PreviousMiscarriages: count})
		require.NoError(t, err)
		assert.Equal(t, expected, a.Score, "miscarriages %d", count)
	}
	for count, expected := range map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 3} {
		a, err := Assess(Factors{Age: 25, PreviousCesareans: count})
		require.NoError(t, err)
		assert.Equal(t, expected, a.Score, "cesareans %d", count)
	}
}

func TestAssessDeterministic(t *testing.T) {
	f := Factors{
		Age:                  38,
		Underweight:          true,
		PreviousMiscarriages: 2,
		BloodPressure:        &BloodPressure{Systolic: 135, Diastolic: 82},
		BloodGlucose:         floatPtr(150),
	}
	first, err := Assess(f)
	require.NoError(t, err)
	second, err := Assess(f)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssessRejectsMalformedInput(t *testing.T) {
	nan := 0.0
	nan = nan / nan

	cases := []Factors{
		{Age: -1},
		{Age: 25, PreviousCesareans: -1},
		{Age: 25, PreviousMiscarriages: -2},
		{Age: 25, BloodPressure: &BloodPressure{Systolic: -10, Diastolic: 80}},
		{Age: 25, Hemoglobin: &nan},
		{Age: 25, Hemoglobin: floatPtr(-1)},
		{Age: 25, BloodGlucose: floatPtr(-5)},
	}
	for i, f := range cases {
		_, err := Assess(f)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}
}

func TestAssessUnderweightFallbackNote(t *testing.T) {
	a, err := Assess(Factors{Age: 25, Underweight: true, UnderweightApprox: true})
	require.NoError(t, err)
	require.Len(t, a.Factors, 1)
	assert.Contains(t, a.Factors[0].Note, "approximate")
}

func TestAgeAt(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, AgeAt(dob, time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, AgeAt(dob, time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, AgeAt(dob, time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, AgeAt(dob, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelCritical.MoreSevereThan(LevelHigh))
	assert.True(t, LevelHigh.MoreSevereThan(LevelLow))
	assert.False(t, LevelLow.MoreSevereThan(LevelLow))
	assert.False(t, LevelModerate.MoreSevereThan(LevelHigh))
}
