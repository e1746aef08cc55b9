// Package pricing resolves course names to prices and renders rupee
// amounts for display. The price table is fixed process-wide
// configuration; it is never mutated at runtime.
package pricing

// Whole-rupee prices per course. Unrecognized courses (including
// "Not Sure") fall back to DefaultPrice.
var coursePrices = map[string]int{
	"Data Science and AI":       59999,
	"Full Stack Development":    49999,
	"Cloud Computing and DevOps": 44999,
	"Cyber Security":            39999,
	"Digital Marketing":         29999,
}

const DefaultPrice = 49999

// CoursePrice looks up the fixed table, falling back to DefaultPrice
// for unknown names.
func CoursePrice(name string) int {
	if price, ok := coursePrices[name]; ok {
		return price
	}
	return DefaultPrice
}

// Courses returns the known course names. Order is unspecified.
func Courses() []string {
	names := make([]string, 0, len(coursePrices))
	for name := range coursePrices {
		names = append(names, name)
	}
	return names
}
