package model

// Nutrient names, in scoring order.
const (
	NutrientCalories    = "calories"
	NutrientProtein     = "protein"
	NutrientCarbs       = "carbs"
	NutrientFat         = "fat"
	NutrientFiber       = "fiber"
	NutrientSugar       = "sugar"
	NutrientCholesterol = "cholesterol"
)

var NutrientNames = []string{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientFiber,
	NutrientSugar,
	NutrientCholesterol,
}

// Value returns the accumulator for the named nutrient.
func (n Nutrients) Value(name string) float64 {
	switch name {
	case NutrientCalories:
		return n.Calories
	case NutrientProtein:
		return n.Protein
	case NutrientCarbs:
		return n.Carbs
	case NutrientFat:
		return n.Fat
	case NutrientFiber:
		return n.Fiber
	case NutrientSugar:
		return n.Sugar
	case NutrientCholesterol:
		return n.Cholesterol
	}
	return 0
}

// Target returns the goal for the named nutrient and whether one is set.
func (g *Goals) Target(name string) (float64, bool) {
	if g == nil {
		return 0, false
	}

	var v *float64
	switch name {
	case NutrientCalories:
		v = g.Calories
	case NutrientProtein:
		v = g.Protein
	case NutrientCarbs:
		v = g.Carbs
	case NutrientFat:
		v = g.Fat
	case NutrientFiber:
		v = g.Fiber
	case NutrientSugar:
		v = g.Sugar
	case NutrientCholesterol:
		v = g.Cholesterol
	}

	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}
