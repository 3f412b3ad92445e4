package nutrition

import (
	"fmt"
	"strconv"
	"strings"
)

// Sex selects the Harris-Benedict and pediatric equation branch.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts "male" or "female" in any case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Male):
		return Male, nil
	case string(Female):
		return Female, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// MacroSplit is the caller's percentage of calories per macronutrient.
// The three values are not required to sum to 100.
type MacroSplit struct {
	CarbsPercent   float64
	ProteinPercent float64
	FatsPercent    float64
}

// Total returns the summed percentages.
func (m MacroSplit) Total() float64 {
	return m.CarbsPercent + m.ProteinPercent + m.FatsPercent
}

// Macros is a gram amount per macronutrient.
type Macros struct {
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatsG    float64 `json:"fats_g"`
}

func (m Macros) rounded() Macros {
	return Macros{CarbsG: round2(m.CarbsG), ProteinG: round2(m.ProteinG), FatsG: round2(m.FatsG)}
}

// BaseProfile holds the fields shared by general and renal requests. Weight
// and height are strictly positive; the boundary rejects anything else.
type BaseProfile struct {
	Age            int
	Sex            Sex
	WeightKg       float64
	HeightCm       float64
	ActivityFactor float64
	StressFactor   float64
	// CaloricTarget overrides TDEE when set and non-zero.
	CaloricTarget *float64
	Split         MacroSplit
	Condition     string
}

// BMI returns weight over height in metres squared.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// HarrisBenedictBMR returns resting energy expenditure in kcal/day.
func HarrisBenedictBMR(sex Sex, weightKg, heightCm float64, age int) float64 {
	a := float64(age)
	if sex == Male {
		return 66.5 + 13.75*weightKg + 5.003*heightCm - 6.75*a
	}
	return 655.1 + 9.563*weightKg + 1.85*heightCm - 4.676*a
}

// TDEE scales BMR by the activity and stress multipliers.
func TDEE(bmr, activity, stress float64) float64 {
	return bmr * activity * stress
}

// EffectiveCalories returns target when present and non-zero, else tdee.
func EffectiveCalories(target *float64, tdee float64) float64 {
	if target != nil && *target != 0 {
		return *target
	}
	return tdee
}

// MacroGrams converts a percentage split of calories into grams using
// 4 kcal/g for carbohydrate and protein and 9 kcal/g for fat.
func MacroGrams(split MacroSplit, calories float64) Macros {
	return Macros{
		CarbsG:   split.CarbsPercent / 100 * calories / 4,
		ProteinG: split.ProteinPercent / 100 * calories / 4,
		FatsG:    split.FatsPercent / 100 * calories / 9,
	}
}

// Metabolic is the unrounded chain BMI → BMR → TDEE → calories → grams.
type Metabolic struct {
	BMI      float64
	BMR      float64
	TDEE     float64
	Calories float64
	Macros   Macros
}

// ComputeMetabolic runs the metabolic chain. A non-nil bmrOverride replaces
// the Harris-Benedict estimate verbatim.
func ComputeMetabolic(p BaseProfile, bmrOverride *float64) Metabolic {
	bmr := HarrisBenedictBMR(p.Sex, p.WeightKg, p.HeightCm, p.Age)
	if bmrOverride != nil {
		bmr = *bmrOverride
	}
	tdee := TDEE(bmr, p.ActivityFactor, p.StressFactor)
	cal := EffectiveCalories(p.CaloricTarget, tdee)
	return Metabolic{
		BMI:      BMI(p.WeightKg, p.HeightCm),
		BMR:      bmr,
		TDEE:     tdee,
		Calories: cal,
		Macros:   MacroGrams(p.Split, cal),
	}
}

// round2 rounds the exact binary value of x to two decimals, ties to even,
// and never returns negative zero.
func round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}
