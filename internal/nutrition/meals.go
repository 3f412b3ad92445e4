package nutrition

import "strings"

// MealSlotCount is the number of daily eating occasions.
const MealSlotCount = 6

// MealSlots are breakfast, mid-morning snack, lunch, afternoon snack, dinner
// and late-night snack, in that order.
var MealSlots = [MealSlotCount]string{"BF", "MMS", "Lunch", "AS", "Dinner", "LNS"}

// DefaultMedication keys the fallback distribution.
const DefaultMedication = "default"

// MealDistribution maps a meal slot to grams of carbohydrate.
type MealDistribution map[string]float64

// MedicationKey lowercases tag and replaces spaces with underscores. An empty
// tag yields DefaultMedication.
func MedicationKey(tag string) string {
	if tag == "" {
		return DefaultMedication
	}
	return strings.ReplaceAll(strings.ToLower(tag), " ", "_")
}

// DistributeCarbs splits totalCarbs over the meal slots with the fractions
// for tag, falling back to the default row for unknown tags.
func DistributeCarbs(ref *Reference, totalCarbs float64, tag string) MealDistribution {
	fractions, ok := ref.Distribution(MedicationKey(tag))
	if !ok {
		fractions, _ = ref.Distribution(DefaultMedication)
	}
	out := make(MealDistribution, MealSlotCount)
	for i, slot := range MealSlots {
		out[slot] = round2(totalCarbs * fractions[i])
	}
	return out
}
