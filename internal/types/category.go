// Package types provides type definitions for structured data used throughout the feedback engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category is the relationship of a reviewer to the reviewee.
type Category string

// Known reviewer categories. The set is open: unknown categories are
// aggregated like peers.
const (
	CategorySelf         Category = "self"
	CategoryPeer         Category = "peer"
	CategoryManager      Category = "manager"
	CategoryDirectReport Category = "direct_report"
)

// StandardCategoryOrder is the display order used when ranking categories.
var StandardCategoryOrder = []Category{CategorySelf, CategoryPeer, CategoryManager, CategoryDirectReport}

// MinValidResponses returns the statistical validity floor for the category:
// the number of responses required before its average is used in any calculation.
// A single self or manager assessment is still meaningful.
func (c Category) MinValidResponses() int {
	if c == CategorySelf || c == CategoryManager {
		return 1
	}
	return 2
}

// IsSelf reports whether the category is the reviewee's own assessment.
func (c Category) IsSelf() bool {
	return c == CategorySelf
}

// IsValidFor reports whether count responses meet the statistical validity floor.
func (c Category) IsValidFor(count int) bool {
	return count >= c.MinValidResponses()
}

// SortCategories orders categories with the standard categories first
// (self, peer, manager, direct_report) followed by any others in input order.
func SortCategories(categories []Category) []Category {
	present := make(map[Category]bool, len(categories))
	for _, c := range categories {
		present[c] = true
	}

	result := make([]Category, 0, len(categories))
	for _, c := range StandardCategoryOrder {
		if present[c] {
			result = append(result, c)
			delete(present, c)
		}
	}
	for _, c := range categories {
		if present[c] {
			result = append(result, c)
			delete(present, c)
		}
	}
	return result
}
