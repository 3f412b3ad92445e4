package export

import (
	"strconv"

	"nutriplan-api/internal/nutrition"
)

// Sheet names, in workbook order.
const (
	SheetExchanges = "Exchanges"
	SheetSummary   = "Summary"
	SheetMeals     = "Meals"
)

var (
	exchangeColumns = []column{
		{"Food group", 24},
		{"Servings", 10},
		{"Carbs (g)", 12},
		{"Protein (g)", 12},
		{"Fat (g)", 12},
		{"Calories", 12},
	}
	renalExtraColumns = []column{
		{"K (mg)", 12},
		{"Na (mg)", 12},
		{"PO4 (mg)", 12},
	}
	summaryColumns = []column{{"Metric", 28}, {"Value", 14}}
	mealColumns    = []column{{"Meal", 10}, {"Carbs (g)", 12}}
)

// GeneralWorkbook renders a general-diet plan.
func GeneralWorkbook(res nutrition.GeneralResult) ([]byte, error) {
	rows := make([][]any, 0, len(res.GroupOrder))
	for _, name := range res.GroupOrder {
		ex := res.FoodExchanges[name]
		rows = append(rows, exchangeRow(name, ex))
	}

	summary := metabolicRows(res.BMI, res.BMR, res.TDEE, res.TotalCalories, res.Macronutrients, res.Residuals, res.FluidRequirement)
	if res.PediatricEnergy != nil {
		summary = append(summary, []any{"Pediatric EER (kcal)", res.PediatricEnergy.EER})
	}
	if res.BurnEnergy != nil {
		summary = append(summary,
			[]any{"Toronto burn estimate (kcal)", res.BurnEnergy.Toronto},
			[]any{"Curreli burn estimate (kcal)", res.BurnEnergy.Curreli},
		)
	}

	return render(exchangeColumns, rows, summary, res.MealDistribution)
}

// RenalWorkbook renders a renal-diet plan with electrolyte columns.
func RenalWorkbook(res nutrition.RenalResult) ([]byte, error) {
	cols := append(append([]column{}, exchangeColumns...), renalExtraColumns...)
	rows := make([][]any, 0, len(res.GroupOrder))
	for _, name := range res.GroupOrder {
		ex := res.FoodExchanges[name]
		rows = append(rows, append(exchangeRow(name, ex.Exchange), ex.PotassiumMg, ex.SodiumMg, ex.PhosphateMg))
	}

	summary := metabolicRows(res.BMI, res.BMR, res.TDEE, res.TotalCalories, res.Macronutrients, res.Residuals, res.FluidRequirement)
	summary = append(summary,
		[]any{"Allocation mode", string(res.AllocationMode)},
		[]any{"Potassium total / limit (mg)", ratio(res.ElectrolyteTotals.PotassiumMg, res.ElectrolyteLimits.PotassiumMg)},
		[]any{"Phosphate total / limit (mg)", ratio(res.ElectrolyteTotals.PhosphateMg, res.ElectrolyteLimits.PhosphateMg)},
		[]any{"Sodium total / limit (mg)", ratio(res.ElectrolyteTotals.SodiumMg, res.ElectrolyteLimits.SodiumMg)},
	)

	return render(cols, rows, summary, res.MealDistribution)
}

func render(cols []column, exchanges, summary [][]any, meals nutrition.MealDistribution) ([]byte, error) {
	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}

	mealRows := make([][]any, 0, len(nutrition.MealSlots))
	for _, slot := range nutrition.MealSlots {
		mealRows = append(mealRows, []any{slot, meals[slot]})
	}

	for _, t := range []struct {
		sheet string
		cols  []column
		rows  [][]any
	}{
		{SheetExchanges, cols, exchanges},
		{SheetSummary, summaryColumns, summary},
		{SheetMeals, mealColumns, mealRows},
	} {
		if err := w.table(t.sheet, t.cols, t.rows); err != nil {
			w.close()
			return nil, err
		}
	}
	return w.encode()
}

func exchangeRow(name string, ex nutrition.Exchange) []any {
	return []any{name, ex.Servings, ex.CarbsG, ex.ProteinG, ex.FatsG, ex.Calories}
}

func metabolicRows(bmi, bmr, tdee, calories float64, macros, residuals nutrition.Macros, fluid float64) [][]any {
	return [][]any{
		{"BMI", bmi},
		{"BMR (kcal)", bmr},
		{"TDEE (kcal)", tdee},
		{"Total calories (kcal)", calories},
		{"Carbohydrate target (g)", macros.CarbsG},
		{"Protein target (g)", macros.ProteinG},
		{"Fat target (g)", macros.FatsG},
		{"Carbohydrate residual (g)", residuals.CarbsG},
		{"Protein residual (g)", residuals.ProteinG},
		{"Fat residual (g)", residuals.FatsG},
		{"Fluid (ml)", fluid},
	}
}

func ratio(total, limit float64) string {
	return formatMg(total) + " / " + formatMg(limit)
}

func formatMg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
