package models

// Request fields are pointers so a missing field can be told apart from a zero
// value. Sex is lowercased before validation.

// DietRequest is the body of the general-diet endpoints.
type DietRequest struct {
	Age               *int     `json:"age" validate:"required,gte=0"`
	Sex               *string  `json:"sex" validate:"required,oneof=male female"`
	Weight            *float64 `json:"weight" validate:"required,gt=0"`
	Height            *float64 `json:"height" validate:"required,gt=0"`
	ActivityFactor    *float64 `json:"activity_factor" validate:"required"`
	StressFactor      *float64 `json:"stress_factor" validate:"required"`
	CaloricTarget     *float64 `json:"caloric_target,omitempty"`
	CarbsPercent      *float64 `json:"carbs_percent" validate:"required"`
	ProteinPercent    *float64 `json:"protein_percent" validate:"required"`
	FatsPercent       *float64 `json:"fats_percent" validate:"required"`
	ClinicalCondition *string  `json:"clinical_condition,omitempty"`

	// Burn-specific
	TBSA                *float64 `json:"tbsa,omitempty"`
	BodyTemp            *float64 `json:"body_temp,omitempty"`
	NormalDailyCalories *float64 `json:"normal_daily_calories,omitempty"`
	BMROverride         *float64 `json:"bmr_override,omitempty"`
}

// RenalDietRequest is the body of the renal-diet endpoints. It has no burn
// fields.
type RenalDietRequest struct {
	Age               *int     `json:"age" validate:"required,gte=0"`
	Sex               *string  `json:"sex" validate:"required,oneof=male female"`
	Weight            *float64 `json:"weight" validate:"required,gt=0"`
	Height            *float64 `json:"height" validate:"required,gt=0"`
	ActivityFactor    *float64 `json:"activity_factor" validate:"required"`
	StressFactor      *float64 `json:"stress_factor" validate:"required"`
	CaloricTarget     *float64 `json:"caloric_target,omitempty"`
	CarbsPercent      *float64 `json:"carbs_percent" validate:"required"`
	ProteinPercent    *float64 `json:"protein_percent" validate:"required"`
	FatsPercent       *float64 `json:"fats_percent" validate:"required"`
	ClinicalCondition *string  `json:"clinical_condition,omitempty"`

	// Daily ceilings in mg
	PotassiumLimit *float64 `json:"potassium_limit,omitempty" validate:"omitempty,gte=0"`
	PhosphateLimit *float64 `json:"phosphate_limit,omitempty" validate:"omitempty,gte=0"`
	SodiumLimit    *float64 `json:"sodium_limit,omitempty" validate:"omitempty,gte=0"`
	AllocationMode *string  `json:"allocation_mode,omitempty" validate:"omitempty,oneof=compat two_phase"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field  string `json:"field"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Envelope wraps every JSON response. Data is set on success, Errors on
// validation failure.
type Envelope[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    T            `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Ptr returns a pointer to v, for building requests in code.
func Ptr[T any](v T) *T {
	return &v
}
