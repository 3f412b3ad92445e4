package nutrition

import "strings"

// FluidRequirementML applies the Holliday-Segar weight bands.
func FluidRequirementML(weightKg float64) float64 {
	switch {
	case weightKg <= 10:
		return weightKg * 100
	case weightKg <= 20:
		return 1000 + (weightKg-10)*50
	default:
		return 1500 + (weightKg-20)*20
	}
}

// PediatricAgeLimit is the first age in years that gets no pediatric block.
const PediatricAgeLimit = 19

// PediatricEnergy is the estimated energy requirement for a child.
type PediatricEnergy struct {
	EER float64 `json:"EER"`
	// KcalPerKg is nil when EER is zero.
	KcalPerKg *float64 `json:"kcal_per_kg"`
}

// EstimatePediatricEnergy returns nil for ages of 19 and above.
func EstimatePediatricEnergy(age int, sex Sex, weightKg, heightCm, activity float64) *PediatricEnergy {
	if age >= PediatricAgeLimit {
		return nil
	}
	eer := pediatricEER(float64(age), sex, weightKg, heightCm, activity)
	out := &PediatricEnergy{EER: round2(eer)}
	if eer != 0 && weightKg != 0 {
		perKg := round2(eer / weightKg)
		out.KcalPerKg = &perKg
	}
	return out
}

func pediatricEER(age float64, sex Sex, w, h, pa float64) float64 {
	infant := 89*w - 100
	switch {
	case age < 0.25:
		return infant + 175
	case age < 0.5:
		return infant + 56
	case age < 1:
		return infant + 22
	case age < 3:
		return infant + 20
	}

	growth := 25.0
	if age < 9 {
		growth = 20
	}
	hm := h / 100
	if sex == Male {
		return 88.5 - 61.9*age + pa*(26.7*w+903*hm) + growth
	}
	return 135.3 - 30.8*age + pa*(10*w+934*hm) + growth
}

// Defaults for burn inputs the caller leaves out.
const (
	DefaultTBSA                = 20
	DefaultNormalDailyCalories = 2000
	DefaultBodyTempC           = 37
)

// BurnInputs are the optional burn-specific fields of a profile.
type BurnInputs struct {
	TBSA                *float64
	BodyTempC           *float64
	NormalDailyCalories *float64
}

// EstimateStatus tells a computed estimate from one the service does not produce.
type EstimateStatus string

const (
	EstimateComputed    EstimateStatus = "computed"
	EstimateNotComputed EstimateStatus = "not_computed"
)

// Estimate is an energy value that may be deliberately absent.
type Estimate struct {
	Status EstimateStatus `json:"status"`
	Value  *float64       `json:"value"`
	Note   string         `json:"note,omitempty"`
}

// BurnEnergy holds the burn-injury energy estimates in kcal/day.
type BurnEnergy struct {
	Toronto       float64  `json:"toronto"`
	Curreli       float64  `json:"curreli"`
	CurreliJunior Estimate `json:"curreli_junior"`
}

// IsBurnCondition reports whether the clinical tag mentions a burn.
func IsBurnCondition(tag string) bool {
	return strings.Contains(strings.ToLower(tag), "burn")
}

// EstimateBurnEnergy computes the modified Toronto and Curreli equations.
// The sex-specific Toronto variants share coefficients.
func EstimateBurnEnergy(weightKg, bmr float64, age int, in BurnInputs) BurnEnergy {
	tbsa := valueOr(in.TBSA, DefaultTBSA)
	ndc := valueOr(in.NormalDailyCalories, DefaultNormalDailyCalories)
	temp := valueOr(in.BodyTempC, DefaultBodyTempC)

	toronto := -4343 + 10.5*tbsa + 0.23*ndc + 0.84*bmr + 114*temp - 4.5*tbsa
	curreli := 25*weightKg + 40*tbsa
	return BurnEnergy{
		Toronto:       round2(toronto),
		Curreli:       round2(curreli),
		CurreliJunior: curreliJunior(age),
	}
}

// curreliJunior needs the age band's RDA energy intake, which no request
// carries, so every band reports not_computed.
func curreliJunior(age int) Estimate {
	var band string
	switch {
	case age < 1:
		band = "under 1 year"
	case age < 4:
		band = "1-3 years"
	case age < 16:
		band = "4-15 years"
	default:
		band = "16 years and over"
	}
	return Estimate{
		Status: EstimateNotComputed,
		Note:   "requires RDA energy intake for age band " + band,
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
