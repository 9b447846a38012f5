package domain

const DefaultCategory = "General"

var categories = []string{
	"General",
	"Computer Science",
	"Math & Physics",
	"Medicine & Biology",
	"Law & Politics",
	"History",
	"Literature",
	"Languages",
	"Engineering",
	"Business & Econ",
	"Psychology",
	"Arts",
}

// Categories returns the fixed subject tags in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

func ValidCategory(category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory defaults an empty category and rejects unknown ones.
func NormalizeCategory(category string) (string, error) {
	if category == "" {
		return DefaultCategory, nil
	}
	if !ValidCategory(category) {
		return "", NewInvalidCategoryError(category)
	}
	return category, nil
}
