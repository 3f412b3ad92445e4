package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluidRequirementML(t *testing.T) {
	tests := []struct {
		weight float64
		want   float64
	}{
		{5, 500},
		{10, 1000},
		{15, 1250},
		{20, 1500},
		{21, 1520},
		{70, 2500},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, FluidRequirementML(tt.weight), 1e-9, "weight %v", tt.weight)
	}
}

func TestEstimatePediatricEnergy(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		sex      Sex
		weight   float64
		height   float64
		wantEER  float64
		wantPerK float64
	}{
		{"newborn", 0, Female, 5, 55, 520, 104},
		{"one year", 1, Male, 10, 75, 810, 81},
		{"two years", 2, Male, 12, 88, 988, 82.33},
		{"five year old girl", 5, Female, 18, 108, 1190.02, 66.11},
		{"ten year old boy", 10, Male, 30, 140, 1559.7, 51.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimatePediatricEnergy(tt.age, tt.sex, tt.weight, tt.height, 1.0)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantEER, got.EER)
			require.NotNil(t, got.KcalPerKg)
			assert.Equal(t, tt.wantPerK, *got.KcalPerKg)
		})
	}
}

func TestEstimatePediatricEnergy_AgeBoundary(t *testing.T) {
	assert.NotNil(t, EstimatePediatricEnergy(18, Male, 60, 170, 1.2))
	assert.Nil(t, EstimatePediatricEnergy(19, Male, 60, 170, 1.2))
	assert.Nil(t, EstimatePediatricEnergy(45, Female, 60, 170, 1.2))
}

func TestPediatricEER_GrowthConstantChangesAtNine(t *testing.T) {
	eight := pediatricEER(8, Female, 25, 128, 1.0)
	nine := pediatricEER(9, Female, 25, 128, 1.0)
	// one more year costs 30.8 kcal, the growth term adds 5
	assert.InDelta(t, -30.8+5, nine-eight, 1e-9)
}

func TestIsBurnCondition(t *testing.T) {
	assert.True(t, IsBurnCondition("burn"))
	assert.True(t, IsBurnCondition("Severe BURNS 30%"))
	assert.True(t, IsBurnCondition("sunburn"))
	assert.False(t, IsBurnCondition("renal"))
	assert.False(t, IsBurnCondition(""))
}

func TestEstimateBurnEnergy_Defaults(t *testing.T) {
	got := EstimateBurnEnergy(70, 1702.025, 30, BurnInputs{})

	assert.Equal(t, 1884.7, got.Toronto)
	assert.Equal(t, 2550.0, got.Curreli)
	assert.Equal(t, EstimateNotComputed, got.CurreliJunior.Status)
	assert.Nil(t, got.CurreliJunior.Value)
}

func TestEstimateBurnEnergy_Inputs(t *testing.T) {
	tbsa, temp, ndc := 40.0, 38.5, 2500.0
	got := EstimateBurnEnergy(80, 1800, 35, BurnInputs{TBSA: &tbsa, BodyTempC: &temp, NormalDailyCalories: &ndc})

	// -4343 + 6*40 + 0.23*2500 + 0.84*1800 + 114*38.5
	assert.InDelta(t, 2373, got.Toronto, 0.005)
	assert.Equal(t, 25*80.0+40*40.0, got.Curreli)
}

func TestCurreliJunior_EveryBandNotComputed(t *testing.T) {
	for _, age := range []int{0, 2, 10, 16, 60} {
		e := curreliJunior(age)
		assert.Equal(t, EstimateNotComputed, e.Status)
		assert.Nil(t, e.Value)
		assert.NotEmpty(t, e.Note)
	}
}
