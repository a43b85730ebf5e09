package catalog

import "strings"

// Accepted document categories. CONFLUENCE and SYNERGY are the two
// "compiled" categories that may own child works.
const (
	CategoryThesis       = "THESIS"
	CategoryDissertation = "DISSERTATION"
	CategoryConfluence   = "CONFLUENCE"
	CategorySynergy      = "SYNERGY"
)

// FallbackCategory is what unrecognized category values canonicalize to.
// Write paths should reject unknown values via KnownCategory instead of
// relying on this.
const FallbackCategory = CategoryThesis

// Secondary identifier selectors for compiled documents. Exactly one of the
// two columns is semantically active for a given volume, chosen by category.
const (
	SecondaryIssueNumber = "issue_number"
	SecondaryDepartment  = "department"
)

func normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Canonical maps a raw category value to its canonical uppercase name.
// Matching is exact after case/whitespace normalization; unknown values map
// to FallbackCategory.
func Canonical(raw string) string {
	switch normalize(raw) {
	case CategoryThesis:
		return CategoryThesis
	case CategoryDissertation:
		return CategoryDissertation
	case CategoryConfluence:
		return CategoryConfluence
	case CategorySynergy:
		return CategorySynergy
	default:
		return FallbackCategory
	}
}

// KnownCategory reports whether raw names one of the accepted categories.
func KnownCategory(raw string) bool {
	switch normalize(raw) {
	case CategoryThesis, CategoryDissertation, CategoryConfluence, CategorySynergy:
		return true
	}
	return false
}

// IsCompiled reports whether the category may own child works.
func IsCompiled(raw string) bool {
	switch normalize(raw) {
	case CategoryConfluence, CategorySynergy:
		return true
	}
	return false
}

// CompiledCategories lists the categories a volume may carry.
func CompiledCategories() []string {
	return []string{CategoryConfluence, CategorySynergy}
}

// SecondaryField selects which of the two secondary identifier columns is
// active for the category: SYNERGY volumes are identified by department,
// everything else by issue number. Callers must use this instead of
// inspecting which column happens to be populated.
func SecondaryField(raw string) string {
	if Canonical(raw) == CategorySynergy {
		return SecondaryDepartment
	}
	return SecondaryIssueNumber
}
