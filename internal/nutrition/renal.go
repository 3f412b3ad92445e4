package nutrition

import (
	"fmt"
	"math"
)

// MaxServingsPerGroup bounds the renal allocation for any one group.
const MaxServingsPerGroup = 10

// Default daily electrolyte ceilings in mg.
const (
	DefaultPotassiumLimit = 2000
	DefaultPhosphateLimit = 1000
	DefaultSodiumLimit    = 2000
)

// AllocationMode selects how the renal allocator treats macro budgets.
type AllocationMode string

const (
	// ModeCompat computes a group's serving cap once from the remaining
	// primary macro. Secondary macros of accepted servings are subtracted
	// without a check, so budgets can go negative across groups.
	ModeCompat AllocationMode = "compat"
	// ModeTwoPhase takes the same cap, then also refuses any serving that
	// would drive a carbohydrate, protein or fat budget below zero.
	ModeTwoPhase AllocationMode = "two_phase"
)

// ParseAllocationMode maps an empty string to ModeCompat.
func ParseAllocationMode(s string) (AllocationMode, error) {
	switch AllocationMode(s) {
	case "", ModeCompat:
		return ModeCompat, nil
	case ModeTwoPhase:
		return ModeTwoPhase, nil
	}
	return "", fmt.Errorf("unknown allocation mode %q", s)
}

// ElectrolyteLimits are caller-supplied daily ceilings in mg.
type ElectrolyteLimits struct {
	PotassiumMg float64 `json:"k"`
	PhosphateMg float64 `json:"po4"`
	SodiumMg    float64 `json:"na"`
}

// Electrolytes are cumulative mg consumed by an allocation.
type Electrolytes struct {
	PotassiumMg float64 `json:"k"`
	PhosphateMg float64 `json:"po4"`
	SodiumMg    float64 `json:"na"`
}

func (e Electrolytes) plus(g RenalFoodGroup) Electrolytes {
	return Electrolytes{
		PotassiumMg: e.PotassiumMg + g.Potassium,
		PhosphateMg: e.PhosphateMg + g.Phosphate,
		SodiumMg:    e.SodiumMg + g.Sodium,
	}
}

func (e Electrolytes) within(l ElectrolyteLimits) bool {
	return e.PotassiumMg <= l.PotassiumMg && e.PhosphateMg <= l.PhosphateMg && e.SodiumMg <= l.SodiumMg
}

func (e Electrolytes) rounded() Electrolytes {
	return Electrolytes{
		PotassiumMg: round2(e.PotassiumMg),
		PhosphateMg: round2(e.PhosphateMg),
		SodiumMg:    round2(e.SodiumMg),
	}
}

// RenalProfile is a general profile without burn fields, plus electrolyte
// ceilings and the allocation mode.
type RenalProfile struct {
	BaseProfile
	Limits ElectrolyteLimits
	Mode   AllocationMode
}

// RenalExchange is an Exchange with the electrolyte content of its servings.
type RenalExchange struct {
	Exchange
	PotassiumMg float64 `json:"k_mg"`
	SodiumMg    float64 `json:"na_mg"`
	PhosphateMg float64 `json:"po4_mg"`
}

// AllocateRenal walks groups in order and adds servings one at a time while
// every electrolyte total stays within its ceiling. A group stops at its first
// rejected serving; later groups are still tried.
func AllocateRenal(groups []RenalFoodGroup, target Macros, limits ElectrolyteLimits, mode AllocationMode) (Servings, Electrolytes) {
	servings := make(Servings, len(groups))
	budget := target
	var totals Electrolytes

	for _, g := range groups {
		servings[g.Name] = 0
		limit := servingCap(g.FoodGroup, budget)
		for i := 0; i < limit; i++ {
			next := totals.plus(g)
			if !next.within(limits) {
				break
			}
			if mode == ModeTwoPhase && !fitsBudget(g.FoodGroup, budget) {
				break
			}
			servings[g.Name]++
			totals = next
			budget.CarbsG -= g.Carb
			budget.ProteinG -= g.Protein
			budget.FatsG -= g.Fat
		}
	}
	return servings, totals
}

// servingCap is floor(remaining primary macro / per-serving primary macro),
// clamped to [0, MaxServingsPerGroup]. Carbohydrate is primary when present,
// then protein, then fat. Groups with none of the three get no servings.
func servingCap(g FoodGroup, budget Macros) int {
	var n float64
	switch {
	case g.Carb > 0:
		n = math.Floor(budget.CarbsG / g.Carb)
	case g.Protein > 0:
		n = math.Floor(budget.ProteinG / g.Protein)
	case g.Fat > 0:
		n = math.Floor(budget.FatsG / g.Fat)
	}
	if n <= 0 {
		return 0
	}
	return int(math.Min(n, MaxServingsPerGroup))
}

func fitsBudget(g FoodGroup, budget Macros) bool {
	return budget.CarbsG-g.Carb >= 0 && budget.ProteinG-g.Protein >= 0 && budget.FatsG-g.Fat >= 0
}

// RenalExchanges expands servings into per-group detail in table order.
func RenalExchanges(groups []RenalFoodGroup, servings Servings) map[string]RenalExchange {
	out := make(map[string]RenalExchange, len(groups))
	for _, g := range groups {
		n := servings[g.Name]
		s := float64(n)
		out[g.Name] = RenalExchange{
			Exchange:    expand(g.FoodGroup, n),
			PotassiumMg: round2(s * g.Potassium),
			SodiumMg:    round2(s * g.Sodium),
			PhosphateMg: round2(s * g.Phosphate),
		}
	}
	return out
}

func renalResiduals(target Macros, groups []RenalFoodGroup, exchanges map[string]RenalExchange) Macros {
	var got Macros
	for _, g := range groups {
		e := exchanges[g.Name]
		got.CarbsG += e.CarbsG
		got.ProteinG += e.ProteinG
		got.FatsG += e.FatsG
	}
	return residuals(target, got)
}
