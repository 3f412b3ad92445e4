package nutrition

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var embeddedReference []byte

// Group names the general allocator fills with residual macros.
const (
	StarchGroup  = "carbohydrates"
	ProteinGroup = "protein"
	FatGroup     = "fats"
)

// FoodGroup is the per-serving composition of one general exchange group.
type FoodGroup struct {
	Name     string  `yaml:"name" json:"name"`
	Carb     float64 `yaml:"carb" json:"carb_g"`
	Protein  float64 `yaml:"protein" json:"protein_g"`
	Fat      float64 `yaml:"fat" json:"fat_g"`
	Calories float64 `yaml:"calories" json:"calories"`
}

func (g FoodGroup) groupName() string { return g.Name }

// RenalFoodGroup adds electrolyte content (mg per serving) to a FoodGroup.
type RenalFoodGroup struct {
	FoodGroup `yaml:",inline"`
	Potassium float64 `yaml:"k" json:"k_mg"`
	Sodium    float64 `yaml:"na" json:"na_mg"`
	Phosphate float64 `yaml:"po4" json:"po4_mg"`
}

// MealPlanItem is one line of the static sample meal plan.
type MealPlanItem struct {
	Food     string `yaml:"food" json:"food"`
	Quantity string `yaml:"quantity" json:"quantity"`
}

type referenceFile struct {
	FoodGroups             []FoodGroup               `yaml:"food_groups"`
	GeneralBaseline        map[string]int            `yaml:"general_baseline"`
	RenalFoodGroups        []RenalFoodGroup          `yaml:"renal_food_groups"`
	PortionReferences      map[string][]string       `yaml:"portion_references"`
	RenalPortionReferences map[string]string         `yaml:"renal_portion_references"`
	MealDistributions      map[string][]float64      `yaml:"meal_distributions"`
	SampleMealPlan         map[string][]MealPlanItem `yaml:"sample_meal_plan"`
}

// Reference holds the static tables. It is never modified after parsing, so a
// single instance is shared by every request. Accessors hand out copies.
type Reference struct {
	foodGroups     []FoodGroup
	groupIndex     map[string]FoodGroup
	baseline       map[string]int
	renalGroups    []RenalFoodGroup
	portions       map[string][]string
	renalPortions  map[string]string
	distributions  map[string][MealSlotCount]float64
	sampleMealPlan map[string][]MealPlanItem
}

var (
	defaultRef     *Reference
	defaultRefErr  error
	defaultRefOnce sync.Once
)

// DefaultReference returns the embedded tables, parsed on first use.
func DefaultReference() (*Reference, error) {
	defaultRefOnce.Do(func() {
		defaultRef, defaultRefErr = ParseReference(embeddedReference)
	})
	return defaultRef, defaultRefErr
}

// LoadReference reads tables from path, or returns the embedded ones when
// path is empty.
func LoadReference(path string) (*Reference, error) {
	if path == "" {
		return DefaultReference()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	ref, err := ParseReference(data)
	if err != nil {
		return nil, fmt.Errorf("reference file %s: %w", path, err)
	}
	return ref, nil
}

// ParseReference decodes and checks a YAML reference document.
func ParseReference(data []byte) (*Reference, error) {
	var f referenceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode reference: %w", err)
	}

	ref := &Reference{
		foodGroups:     f.FoodGroups,
		groupIndex:     make(map[string]FoodGroup, len(f.FoodGroups)),
		baseline:       f.GeneralBaseline,
		renalGroups:    f.RenalFoodGroups,
		portions:       f.PortionReferences,
		renalPortions:  f.RenalPortionReferences,
		distributions:  make(map[string][MealSlotCount]float64, len(f.MealDistributions)),
		sampleMealPlan: f.SampleMealPlan,
	}

	for _, g := range f.FoodGroups {
		if g.Name == "" {
			return nil, fmt.Errorf("food group without name")
		}
		if _, dup := ref.groupIndex[g.Name]; dup {
			return nil, fmt.Errorf("duplicate food group %q", g.Name)
		}
		ref.groupIndex[g.Name] = g
	}
	for _, name := range []string{StarchGroup, ProteinGroup, FatGroup} {
		if _, ok := ref.groupIndex[name]; !ok {
			return nil, fmt.Errorf("missing food group %q", name)
		}
	}
	if ref.groupIndex[StarchGroup].Carb <= 0 || ref.groupIndex[ProteinGroup].Protein <= 0 || ref.groupIndex[FatGroup].Fat <= 0 {
		return nil, fmt.Errorf("residual groups must carry their macro")
	}
	for name, n := range f.GeneralBaseline {
		if _, ok := ref.groupIndex[name]; !ok {
			return nil, fmt.Errorf("baseline references unknown group %q", name)
		}
		if n < 0 {
			return nil, fmt.Errorf("baseline servings for %q is negative", name)
		}
	}

	if len(f.RenalFoodGroups) == 0 {
		return nil, fmt.Errorf("no renal food groups")
	}
	seen := make(map[string]bool, len(f.RenalFoodGroups))
	for _, g := range f.RenalFoodGroups {
		if seen[g.Name] {
			return nil, fmt.Errorf("duplicate renal food group %q", g.Name)
		}
		seen[g.Name] = true
	}

	for key, fractions := range f.MealDistributions {
		if len(fractions) != MealSlotCount {
			return nil, fmt.Errorf("meal distribution %q has %d slots, want %d", key, len(fractions), MealSlotCount)
		}
		ref.distributions[key] = [MealSlotCount]float64(fractions)
	}
	if _, ok := ref.distributions[DefaultMedication]; !ok {
		return nil, fmt.Errorf("missing %q meal distribution", DefaultMedication)
	}

	return ref, nil
}

// FoodGroups returns the general groups in table order.
func (r *Reference) FoodGroups() []FoodGroup {
	return slices.Clone(r.foodGroups)
}

// RenalFoodGroups returns the renal groups in preference order.
func (r *Reference) RenalFoodGroups() []RenalFoodGroup {
	return slices.Clone(r.renalGroups)
}

func (r *Reference) group(name string) FoodGroup {
	return r.groupIndex[name]
}

// Distribution returns the fractions for a normalized medication key.
func (r *Reference) Distribution(key string) ([MealSlotCount]float64, bool) {
	d, ok := r.distributions[key]
	return d, ok
}

// PortionReferences returns the serving-size descriptions per category.
func (r *Reference) PortionReferences() map[string][]string {
	out := make(map[string][]string, len(r.portions))
	for k, v := range r.portions {
		out[k] = slices.Clone(v)
	}
	return out
}

// RenalPortionReferences returns the renal portion links.
func (r *Reference) RenalPortionReferences() map[string]string {
	return maps.Clone(r.renalPortions)
}

// SampleMealPlan returns the illustrative plan attached to every result.
func (r *Reference) SampleMealPlan() map[string][]MealPlanItem {
	out := make(map[string][]MealPlanItem, len(r.sampleMealPlan))
	for k, v := range r.sampleMealPlan {
		out[k] = slices.Clone(v)
	}
	return out
}

// Tables is the public view of the reference data.
type Tables struct {
	FoodGroups             []FoodGroup               `json:"food_groups"`
	GeneralBaseline        map[string]int            `json:"general_baseline"`
	RenalFoodGroups        []RenalFoodGroup          `json:"renal_food_groups"`
	PortionReferences      map[string][]string       `json:"portion_references"`
	RenalPortionReferences map[string]string         `json:"renal_portion_references"`
	MealSlots              []string                  `json:"meal_slots"`
	MealDistributions      map[string][]float64      `json:"meal_distributions"`
	SampleMealPlan         map[string][]MealPlanItem `json:"sample_meal_plan"`
}

// Tables returns a copy of every table.
func (r *Reference) Tables() Tables {
	dist := make(map[string][]float64, len(r.distributions))
	for k, v := range r.distributions {
		dist[k] = slices.Clone(v[:])
	}
	return Tables{
		FoodGroups:             r.FoodGroups(),
		GeneralBaseline:        maps.Clone(r.baseline),
		RenalFoodGroups:        r.RenalFoodGroups(),
		PortionReferences:      r.PortionReferences(),
		RenalPortionReferences: r.RenalPortionReferences(),
		MealSlots:              slices.Clone(MealSlots[:]),
		MealDistributions:      dist,
		SampleMealPlan:         r.SampleMealPlan(),
	}
}
