// Package nutrition computes caloric targets, macronutrient grams, food
// exchanges, meal carbohydrate timing and auxiliary requirements. Everything
// here is pure arithmetic over a validated profile and the reference tables.
package nutrition

import (
	"fmt"
	"math"
)

// Profile is a validated general-diet request.
type Profile struct {
	BaseProfile
	// BMROverride replaces the Harris-Benedict estimate when set.
	BMROverride *float64
	Burn        BurnInputs
}

// GeneralResult is the assembled general-diet plan.
type GeneralResult struct {
	BMI               float64                   `json:"BMI"`
	BMR               float64                   `json:"BMR"`
	TDEE              float64                   `json:"TDEE"`
	TotalCalories     float64                   `json:"total_calories"`
	Macronutrients    Macros                    `json:"macronutrients"`
	FoodExchanges     map[string]Exchange       `json:"food_exchanges"`
	MealDistribution  MealDistribution          `json:"meal_distribution"`
	PortionReferences map[string][]string       `json:"portion_references"`
	FluidRequirement  float64                   `json:"fluid_requirement_ml"`
	PediatricEnergy   *PediatricEnergy          `json:"pediatric_energy,omitempty"`
	BurnEnergy        *BurnEnergy               `json:"burn_energy,omitempty"`
	Residuals         Macros                    `json:"residuals"`
	MealPlan          map[string][]MealPlanItem `json:"meal_plan"`
	Warnings          []string                  `json:"warnings,omitempty"`

	// GroupOrder lists FoodExchanges keys in table order.
	GroupOrder []string `json:"-"`
}

// RenalResult is the assembled renal-diet plan.
type RenalResult struct {
	BMI               float64                   `json:"BMI"`
	BMR               float64                   `json:"BMR"`
	TDEE              float64                   `json:"TDEE"`
	TotalCalories     float64                   `json:"total_calories"`
	Macronutrients    Macros                    `json:"macronutrients"`
	FoodExchanges     map[string]RenalExchange  `json:"food_exchanges"`
	MealDistribution  MealDistribution          `json:"meal_distribution"`
	FluidRequirement  float64                   `json:"fluid_requirement_ml"`
	ElectrolyteTotals Electrolytes              `json:"electrolyte_totals"`
	ElectrolyteLimits ElectrolyteLimits         `json:"electrolyte_limits"`
	AllocationMode    AllocationMode            `json:"allocation_mode"`
	PortionReferences map[string]string         `json:"portion_references"`
	Residuals         Macros                    `json:"residuals"`
	MealPlan          map[string][]MealPlanItem `json:"meal_plan"`
	Warnings          []string                  `json:"warnings,omitempty"`

	GroupOrder []string `json:"-"`
}

// Calculator assembles plans from a shared, read-only Reference.
type Calculator struct {
	ref *Reference
}

// NewCalculator returns a Calculator over ref.
func NewCalculator(ref *Reference) *Calculator {
	return &Calculator{ref: ref}
}

// Reference returns the tables the calculator was built with.
func (c *Calculator) Reference() *Reference {
	return c.ref
}

// General computes the general-diet plan. The pediatric block is present only
// below PediatricAgeLimit and the burn block only for burn conditions.
func (c *Calculator) General(p Profile) GeneralResult {
	m := ComputeMetabolic(p.BaseProfile, p.BMROverride)

	groups := c.ref.foodGroups
	exchanges := GeneralExchanges(groups, AllocateGeneral(c.ref, m.Macros))

	res := GeneralResult{
		BMI:               round2(m.BMI),
		BMR:               round2(m.BMR),
		TDEE:              round2(m.TDEE),
		TotalCalories:     round2(m.Calories),
		Macronutrients:    m.Macros.rounded(),
		FoodExchanges:     exchanges,
		MealDistribution:  DistributeCarbs(c.ref, m.Macros.CarbsG, p.Condition),
		PortionReferences: c.ref.PortionReferences(),
		FluidRequirement:  round2(FluidRequirementML(p.WeightKg)),
		PediatricEnergy:   EstimatePediatricEnergy(p.Age, p.Sex, p.WeightKg, p.HeightCm, p.ActivityFactor),
		Residuals:         generalResiduals(m.Macros, groups, exchanges),
		MealPlan:          c.ref.SampleMealPlan(),
		Warnings:          splitWarnings(p.Split),
		GroupOrder:        groupNames(groups),
	}
	if IsBurnCondition(p.Condition) {
		burn := EstimateBurnEnergy(p.WeightKg, m.BMR, p.Age, p.Burn)
		res.BurnEnergy = &burn
	}
	return res
}

// Renal computes the renal-diet plan. Electrolyte totals never exceed limits.
func (c *Calculator) Renal(p RenalProfile) RenalResult {
	m := ComputeMetabolic(p.BaseProfile, nil)

	mode := p.Mode
	if mode == "" {
		mode = ModeCompat
	}
	groups := c.ref.renalGroups
	servings, totals := AllocateRenal(groups, m.Macros, p.Limits, mode)
	exchanges := RenalExchanges(groups, servings)

	return RenalResult{
		BMI:               round2(m.BMI),
		BMR:               round2(m.BMR),
		TDEE:              round2(m.TDEE),
		TotalCalories:     round2(m.Calories),
		Macronutrients:    m.Macros.rounded(),
		FoodExchanges:     exchanges,
		MealDistribution:  DistributeCarbs(c.ref, m.Macros.CarbsG, p.Condition),
		FluidRequirement:  round2(FluidRequirementML(p.WeightKg)),
		ElectrolyteTotals: totals.rounded(),
		ElectrolyteLimits: p.Limits,
		AllocationMode:    mode,
		PortionReferences: c.ref.RenalPortionReferences(),
		Residuals:         renalResiduals(m.Macros, groups, exchanges),
		MealPlan:          c.ref.SampleMealPlan(),
		Warnings:          splitWarnings(p.Split),
		GroupOrder:        groupNames(groups),
	}
}

func groupNames[G interface{ groupName() string }](groups []G) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.groupName()
	}
	return names
}

// splitWarnings flags percentages that do not add up to 100. The plan is
// still computed from them as given.
func splitWarnings(s MacroSplit) []string {
	total := s.Total()
	if math.Abs(total-100) < 1e-9 {
		return nil
	}
	return []string{fmt.Sprintf("macro percentages sum to %.2f, not 100", total)}
}
