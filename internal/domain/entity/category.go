package entity

import "strings"

// MusicCategories is the fixed canonical set of genres a user can follow.
// User input is matched against this set case- and whitespace-insensitively.
var MusicCategories = []string{
	"Pop",
	"Rock",
	"Jazz",
	"Classical",
	"Hip Hop",
	"Electronic",
	"Folk",
	"Country",
	"Blues",
	"Devotional",
}

// RequiredCategoryCount is how many distinct categories a registration must pick.
const RequiredCategoryCount = 3

var categoryLookup = func() map[string]string {
	lookup := make(map[string]string, len(MusicCategories))
	for _, category := range MusicCategories {
		lookup[NormalizeCategoryKey(category)] = category
	}

	return lookup
}()

// NormalizeCategoryKey collapses case and whitespace so "pop " and "Pop"
// share one key.
func NormalizeCategoryKey(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), " "))
}

// CanonicalCategory maps arbitrary user input onto its canonical category.
// The second return value is false when the input matches no known category.
func CanonicalCategory(value string) (string, bool) {
	canonical, ok := categoryLookup[NormalizeCategoryKey(value)]

	return canonical, ok
}

// IsCanonicalCategory reports whether value is an exact member of
// MusicCategories, with no normalization applied.
func IsCanonicalCategory(value string) bool {
	canonical, ok := categoryLookup[NormalizeCategoryKey(value)]

	return ok && canonical == value
}
