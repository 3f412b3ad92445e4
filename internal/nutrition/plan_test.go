package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(mustReference(t))
}

func TestCalculator_General(t *testing.T) {
	c := newCalculator(t)

	res := c.General(Profile{BaseProfile: adultMale()})

	assert.Equal(t, 22.86, res.BMI)
	assert.InDelta(t, 1702.03, res.BMR, 0.01)
	assert.Equal(t, 2042.43, res.TDEE)
	assert.Equal(t, 2042.43, res.TotalCalories)
	assert.Equal(t, Macros{CarbsG: 255.3, ProteinG: 102.12, FatsG: 68.08}, res.Macronutrients)
	assert.Equal(t, 11, res.FoodExchanges[StarchGroup].Servings)
	assert.Equal(t, Macros{CarbsG: 6.3, ProteinG: -29.88, FatsG: -57.92}, res.Residuals)
	assert.Equal(t, 63.83, res.MealDistribution["BF"])
	assert.Equal(t, 38.3, res.MealDistribution["LNS"])
	assert.Equal(t, 2500.0, res.FluidRequirement)
	assert.Nil(t, res.PediatricEnergy)
	assert.Nil(t, res.BurnEnergy)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.PortionReferences, 6)
	assert.Len(t, res.MealPlan, 4)
	assert.Equal(t, "milk_skimmed", res.GroupOrder[0])
}

func TestCalculator_General_CaloricTargetOverridesTDEE(t *testing.T) {
	c := newCalculator(t)
	p := Profile{BaseProfile: adultMale()}
	target := 1600.0
	p.CaloricTarget = &target

	res := c.General(p)

	assert.Equal(t, 2042.43, res.TDEE)
	assert.Equal(t, 1600.0, res.TotalCalories)
	assert.Equal(t, Macros{CarbsG: 200, ProteinG: 80, FatsG: 53.33}, res.Macronutrients)
	assert.Equal(t, 50.0, res.MealDistribution["BF"])
}

func TestCalculator_General_PediatricBlockOnlyUnder19(t *testing.T) {
	c := newCalculator(t)

	for _, age := range []int{0, 5, 12, 18} {
		p := Profile{BaseProfile: adultMale()}
		p.Age = age
		assert.NotNil(t, c.General(p).PediatricEnergy, "age %d", age)
	}
	for _, age := range []int{19, 30, 80} {
		p := Profile{BaseProfile: adultMale()}
		p.Age = age
		assert.Nil(t, c.General(p).PediatricEnergy, "age %d", age)
	}
}

func TestCalculator_General_BurnBlockOnlyForBurnTags(t *testing.T) {
	c := newCalculator(t)

	p := Profile{BaseProfile: adultMale()}
	p.Condition = "Thermal Burn"
	res := c.General(p)
	require.NotNil(t, res.BurnEnergy)
	assert.Equal(t, 1884.7, res.BurnEnergy.Toronto)
	assert.Equal(t, EstimateNotComputed, res.BurnEnergy.CurreliJunior.Status)

	p.Condition = "fast_acting"
	assert.Nil(t, c.General(p).BurnEnergy)
}

func TestCalculator_General_BurnUsesOverriddenBMR(t *testing.T) {
	c := newCalculator(t)
	p := Profile{BaseProfile: adultMale()}
	p.Condition = "burn"
	bmr := 2000.0
	p.BMROverride = &bmr

	res := c.General(p)

	assert.Equal(t, 2000.0, res.BMR)
	require.NotNil(t, res.BurnEnergy)
	// -4343 + 6*20 + 0.23*2000 + 0.84*2000 + 114*37
	assert.InDelta(t, 2135, res.BurnEnergy.Toronto, 0.005)
}

func TestCalculator_General_WarnsWhenSplitIsOff(t *testing.T) {
	c := newCalculator(t)
	p := Profile{BaseProfile: adultMale()}
	p.Split = MacroSplit{CarbsPercent: 50, ProteinPercent: 20, FatsPercent: 20}

	res := c.General(p)

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "90.00")
}

func TestCalculator_General_Idempotent(t *testing.T) {
	c := newCalculator(t)
	p := Profile{BaseProfile: adultMale()}
	p.Age = 10
	p.Condition = "burn"

	a, err := json.Marshal(c.General(p))
	require.NoError(t, err)
	b, err := json.Marshal(c.General(p))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCalculator_General_JSONShape(t *testing.T) {
	c := newCalculator(t)
	p := Profile{BaseProfile: adultMale()}

	raw, err := json.Marshal(c.General(p))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	for _, key := range []string{"BMI", "BMR", "TDEE", "macronutrients", "food_exchanges", "meal_distribution",
		"portion_references", "fluid_requirement_ml", "residuals", "meal_plan"} {
		assert.Contains(t, m, key)
	}
	assert.NotContains(t, m, "pediatric_energy")
	assert.NotContains(t, m, "burn_energy")
	assert.NotContains(t, m, "GroupOrder")
}

func renalMale() RenalProfile {
	return RenalProfile{
		BaseProfile: adultMale(),
		Limits:      ElectrolyteLimits{PotassiumMg: DefaultPotassiumLimit, PhosphateMg: DefaultPhosphateLimit, SodiumMg: DefaultSodiumLimit},
	}
}

func TestCalculator_Renal(t *testing.T) {
	c := newCalculator(t)

	res := c.Renal(renalMale())

	assert.Equal(t, 22.86, res.BMI)
	assert.Equal(t, 2042.43, res.TDEE)
	assert.Equal(t, ModeCompat, res.AllocationMode)
	assert.Len(t, res.FoodExchanges, 17)
	assert.Equal(t, 10, res.FoodExchanges["milk"].Servings)
	assert.Equal(t, 1500.0, res.FoodExchanges["milk"].PotassiumMg)
	assert.Equal(t, Electrolytes{PotassiumMg: 2000, PhosphateMg: 1000, SodiumMg: 1262}, res.ElectrolyteTotals)
	assert.Equal(t, 2500.0, res.FluidRequirement)
	assert.Contains(t, res.PortionReferences, "pdf_link")
	assert.Len(t, res.MealPlan, 4)

	// carbs: 120 milk + 12 veg + 10 fruit + 50 sugar
	assert.InDelta(t, 63.3, res.Residuals.CarbsG, 1e-9)
	// protein: 80 milk + 6 veg
	assert.InDelta(t, 16.12, res.Residuals.ProteinG, 1e-9)
	// fat: 50 milk + 15 fats
	assert.InDelta(t, 3.08, res.Residuals.FatsG, 1e-9)
}

func TestCalculator_Renal_TightCeilings(t *testing.T) {
	c := newCalculator(t)
	p := renalMale()
	p.Limits = ElectrolyteLimits{PotassiumMg: 300, PhosphateMg: 100, SodiumMg: 200}
	p.Mode = ModeTwoPhase

	res := c.Renal(p)

	assert.Equal(t, ModeTwoPhase, res.AllocationMode)
	assert.LessOrEqual(t, res.ElectrolyteTotals.PotassiumMg, 300.0)
	assert.LessOrEqual(t, res.ElectrolyteTotals.PhosphateMg, 100.0)
	assert.LessOrEqual(t, res.ElectrolyteTotals.SodiumMg, 200.0)
	assert.Equal(t, 1, res.FoodExchanges["milk"].Servings)
}

func TestGroupNames_FollowTableOrder(t *testing.T) {
	ref := mustReference(t)

	general := groupNames(ref.FoodGroups())
	require.Len(t, general, 9)
	assert.Equal(t, "milk_skimmed", general[0])
	assert.Equal(t, FatGroup, general[len(general)-1])

	renal := groupNames(ref.RenalFoodGroups())
	require.Len(t, renal, 17)
	assert.Equal(t, "milk", renal[0])
	assert.Equal(t, renal, newCalculator(t).Renal(renalMale()).GroupOrder)
}
