// Package validation turns raw request JSON into validated nutrition profiles.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"nutriplan-api/internal/models"
	"nutriplan-api/internal/nutrition"
)

// Field error codes.
const (
	CodeMissing = "missing"
	CodeType    = "type"
	CodeInvalid = "invalid"
)

// ErrMalformedBody is returned when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// Errors lists every rejected field of one request.
type Errors []models.FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Decode reads one JSON object from r into out. Type mismatches come back as
// Errors; anything else unreadable wraps ErrMalformedBody.
func Decode(r io.Reader, out any) error {
	err := json.NewDecoder(r).Decode(out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errors{{
			Field:  typeErr.Field,
			Code:   CodeType,
			Reason: fmt.Sprintf("must be %s, got %s", describeType(typeErr.Type), typeErr.Value),
		}}
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty body", ErrMalformedBody)
	}
	return fmt.Errorf("%w: %w", ErrMalformedBody, err)
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	}
	return t.String()
}

// Struct runs the validate tags of req and converts failures to Errors.
func (v *Validator) Struct(req any) error {
	err := v.v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError(fe))
	}
	return out
}

func fieldError(fe validator.FieldError) models.FieldError {
	out := models.FieldError{Field: fe.Field(), Code: CodeInvalid}
	switch fe.Tag() {
	case "required":
		out.Code = CodeMissing
		out.Reason = "field required"
	case "gt":
		out.Reason = "must be greater than " + fe.Param()
	case "gte":
		out.Reason = "must be greater than or equal to " + fe.Param()
	case "oneof":
		out.Reason = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		out.Reason = "failed " + fe.Tag() + " check"
	}
	return out
}

func normalizeSex(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// Normal-user defaults for fields the caller leaves out.
const (
	DefaultActivityFactor = 1.2
	DefaultStressFactor   = 1.0
	DefaultCarbsPercent   = 50
	DefaultProteinPercent = 20
	DefaultFatsPercent    = 30
)

// ApplyNormalUserDefaults fills the advanced fields a casual user skips.
func ApplyNormalUserDefaults(req *models.DietRequest) {
	setDefault(&req.ActivityFactor, DefaultActivityFactor)
	setDefault(&req.StressFactor, DefaultStressFactor)
	setDefault(&req.CarbsPercent, DefaultCarbsPercent)
	setDefault(&req.ProteinPercent, DefaultProteinPercent)
	setDefault(&req.FatsPercent, DefaultFatsPercent)
}

func setDefault(p **float64, v float64) {
	if *p == nil {
		*p = &v
	}
}

// DietProfile validates req and maps it to a nutrition.Profile.
func (v *Validator) DietProfile(req *models.DietRequest) (nutrition.Profile, error) {
	normalizeSex(req.Sex)
	if err := v.Struct(req); err != nil {
		return nutrition.Profile{}, err
	}
	sex, err := nutrition.ParseSex(*req.Sex)
	if err != nil {
		return nutrition.Profile{}, err
	}
	return nutrition.Profile{
		BaseProfile: nutrition.BaseProfile{
			Age:            *req.Age,
			Sex:            sex,
			WeightKg:       *req.Weight,
			HeightCm:       *req.Height,
			ActivityFactor: *req.ActivityFactor,
			StressFactor:   *req.StressFactor,
			CaloricTarget:  req.CaloricTarget,
			Split: nutrition.MacroSplit{
				CarbsPercent:   *req.CarbsPercent,
				ProteinPercent: *req.ProteinPercent,
				FatsPercent:    *req.FatsPercent,
			},
			Condition: deref(req.ClinicalCondition),
		},
		BMROverride: req.BMROverride,
		Burn: nutrition.BurnInputs{
			TBSA:                req.TBSA,
			BodyTempC:           req.BodyTemp,
			NormalDailyCalories: req.NormalDailyCalories,
		},
	}, nil
}

// RenalProfile validates req, fills default ceilings and maps it to a
// nutrition.RenalProfile.
func (v *Validator) RenalProfile(req *models.RenalDietRequest) (nutrition.RenalProfile, error) {
	normalizeSex(req.Sex)
	if err := v.Struct(req); err != nil {
		return nutrition.RenalProfile{}, err
	}
	sex, err := nutrition.ParseSex(*req.Sex)
	if err != nil {
		return nutrition.RenalProfile{}, err
	}
	mode, err := nutrition.ParseAllocationMode(deref(req.AllocationMode))
	if err != nil {
		return nutrition.RenalProfile{}, err
	}
	return nutrition.RenalProfile{
		BaseProfile: nutrition.BaseProfile{
			Age:            *req.Age,
			Sex:            sex,
			WeightKg:       *req.Weight,
			HeightCm:       *req.Height,
			ActivityFactor: *req.ActivityFactor,
			StressFactor:   *req.StressFactor,
			CaloricTarget:  req.CaloricTarget,
			Split: nutrition.MacroSplit{
				CarbsPercent:   *req.CarbsPercent,
				ProteinPercent: *req.ProteinPercent,
				FatsPercent:    *req.FatsPercent,
			},
			Condition: deref(req.ClinicalCondition),
		},
		Limits: nutrition.ElectrolyteLimits{
			PotassiumMg: valueOr(req.PotassiumLimit, nutrition.DefaultPotassiumLimit),
			PhosphateMg: valueOr(req.PhosphateLimit, nutrition.DefaultPhosphateLimit),
			SodiumMg:    valueOr(req.SodiumLimit, nutrition.DefaultSodiumLimit),
		},
		Mode: mode,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
