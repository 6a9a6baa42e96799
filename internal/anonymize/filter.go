// Package anonymize redacts reviewer categories with too few responses from
// aggregated report data before it is displayed.
package anonymize

import (
	"fmt"

	"github.com/jonathan/feedback-engine/internal/types"
)

// Filter redacts categories whose response count is below MinResponses.
// Categories in Exempt are never redacted.
type Filter struct {
	MinResponses int
	Exempt       map[types.Category]bool
}

// DefaultFilter uses the default organization threshold and exempts self and manager.
var DefaultFilter = NewFilter(types.DefaultMinResponsesForAnonymity)

// NewFilter creates a Filter with the given threshold and the default exemptions.
// A negative threshold is treated as zero.
func NewFilter(minResponses int) Filter {
	return Filter{
		MinResponses: max(minResponses, 0),
		Exempt: map[types.Category]bool{
			types.CategorySelf:    true,
			types.CategoryManager: true,
		},
	}
}

// InsufficientMessage is the text attached to a redacted category.
func InsufficientMessage(minResponses int) string {
	return fmt.Sprintf("Insufficient responses (minimum %d required)", minResponses)
}

// Apply returns a redacted deep copy of bySection. Redacted entries keep their
// count and average but lose their responses and distribution. The input is
// never modified.
func (f Filter) Apply(bySection types.BySection) types.BySection {
	threshold := max(f.MinResponses, 0)
	out := bySection.Clone()

	out.Each(func(_ *types.SectionAggregate, q *types.AggregatedQuestion) {
		for cat, stat := range q.ByCategory {
			if f.Exempt[cat] || stat.Count >= threshold {
				continue
			}
			stat.Insufficient = true
			stat.Message = InsufficientMessage(threshold)
			stat.Responses = nil
			stat.Distribution = nil
		}
	})
	return out
}
