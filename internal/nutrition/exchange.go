package nutrition

import "math"

// Servings maps a food-group name to a whole, non-negative serving count.
type Servings map[string]int

// Exchange is the expanded content of the servings allocated to one group.
type Exchange struct {
	Servings int     `json:"servings"`
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatsG    float64 `json:"fats_g"`
	Calories float64 `json:"calories"`
}

func expand(g FoodGroup, n int) Exchange {
	s := float64(n)
	return Exchange{
		Servings: n,
		CarbsG:   round2(s * g.Carb),
		ProteinG: round2(s * g.Protein),
		FatsG:    round2(s * g.Fat),
		Calories: round2(s * g.Calories),
	}
}

// AllocateGeneral places the fixed baseline servings and covers what is left
// of the carbohydrate, protein and fat targets with the starch, protein and
// fats groups. It is a heuristic: residuals may be positive or negative.
func AllocateGeneral(ref *Reference, target Macros) Servings {
	servings := make(Servings, len(ref.baseline)+3)
	var usedCarb, usedProtein float64
	for _, g := range ref.foodGroups {
		n, ok := ref.baseline[g.Name]
		if !ok {
			continue
		}
		servings[g.Name] = n
		usedCarb += float64(n) * g.Carb
		usedProtein += float64(n) * g.Protein
	}

	servings[StarchGroup] = residualServings(target.CarbsG-usedCarb, ref.group(StarchGroup).Carb)
	servings[ProteinGroup] = residualServings(target.ProteinG-usedProtein, ref.group(ProteinGroup).Protein)
	// Baseline fat is ignored; the whole fat target goes to the fats group.
	servings[FatGroup] = residualServings(target.FatsG, ref.group(FatGroup).Fat)
	return servings
}

func residualServings(grams, perServing float64) int {
	n := math.RoundToEven(grams / perServing)
	if n < 0 {
		return 0
	}
	return int(n)
}

// GeneralExchanges expands servings into per-group detail for every group in
// the table, including groups with no servings.
func GeneralExchanges(groups []FoodGroup, servings Servings) map[string]Exchange {
	out := make(map[string]Exchange, len(groups))
	for _, g := range groups {
		out[g.Name] = expand(g, servings[g.Name])
	}
	return out
}

// generalResiduals sums in table order so results do not depend on map order.
func generalResiduals(target Macros, groups []FoodGroup, exchanges map[string]Exchange) Macros {
	var got Macros
	for _, g := range groups {
		e := exchanges[g.Name]
		got.CarbsG += e.CarbsG
		got.ProteinG += e.ProteinG
		got.FatsG += e.FatsG
	}
	return residuals(target, got)
}

func residuals(target, got Macros) Macros {
	return Macros{
		CarbsG:   round2(target.CarbsG - got.CarbsG),
		ProteinG: round2(target.ProteinG - got.ProteinG),
		FatsG:    round2(target.FatsG - got.FatsG),
	}
}
