package core

import "strings"

// Category is a derived classification of a fee type. It is computed from the
// free-text fee-type name on every call and never stored.
type Category string

const (
	CategoryTuition   Category = "tuition"
	CategoryExam      Category = "exam"
	CategoryTransport Category = "transport"
	CategoryLibrary   Category = "library"
	CategoryLab       Category = "lab"
	CategorySport     Category = "sport"
	CategoryInsurance Category = "insurance"
	CategoryOther     Category = "other"
)

// FallbackCategory is attributed to a payment whose assignment chain cannot
// be resolved to a fee type. Kept for behavioral compatibility with the
// portal's historical reports; see DESIGN.md for the open question around an
// explicit "unattributed" bucket.
const FallbackCategory = CategoryTuition

// categoryKeywords is matched in order; the first category whose keyword
// appears in the lower-cased fee-type name wins. The fee catalog is
// maintained in both English and French, hence the mixed keyword lists.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryTuition, []string{"tuition", "scolarit", "inscription"}},
	{CategoryExam, []string{"exam", "examen"}},
	{CategoryTransport, []string{"transport"}},
	{CategoryLibrary, []string{"library", "bibliotheque"}},
	{CategoryLab, []string{"lab", "laboratoire"}},
	{CategorySport, []string{"sport"}},
	{CategoryInsurance, []string{"insurance", "assurance"}},
}

// Categorize maps a free-text fee-type name to a Category by keyword
// substring matching. This is a deliberately simple heuristic: renaming a fee
// type can silently move it between categories, which the finance office
// accepts as the cost of not maintaining a category field on every fee type.
// Pure function: the same name always yields the same category.
func Categorize(feeTypeName string) Category {
	name := strings.ToLower(feeTypeName)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// Categories returns every category in report display order.
func Categories() []Category {
	return []Category{
		CategoryTuition,
		CategoryExam,
		CategoryTransport,
		CategoryLibrary,
		CategoryLab,
		CategorySport,
		CategoryInsurance,
		CategoryOther,
	}
}
