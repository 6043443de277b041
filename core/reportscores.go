package core

import (
	"math"

	"github.com/sitegrade/sitegrade/schema"
)

// BuildReportScores reshapes engine scores plus raw presence flags into the
// human-facing category table.
//
// Two quirks are deliberate and must not be "fixed" here:
//   - Techno Stack and Website Performance both render the performance
//     section score (intentional aliasing in the product's report layout).
//   - Listings is pinned to 0: the report slot is reserved for listing
//     sources (Yelp, Bing, Apple Maps) that are not collected yet, and is
//     distinct from the tiered listings score inside the engine breakdown.
func BuildReportScores(record *schema.AuditRecord, sections schema.SectionScores, finalScore float64) schema.ReportScores {
	presence := func(present bool) int {
		if present {
			return 100
		}
		return 0
	}

	return schema.ReportScores{
		schema.CategoryOverall:     int(math.Round(finalScore)),
		schema.CategoryBusiness:    presence(record.BusinessInfo.HasData()),
		schema.CategoryTechno:      int(math.Round(sections[schema.SectionPerformance])),
		schema.CategoryGBP:         presence(record.GoogleReviews.HasData()),
		schema.CategoryListings:    0,
		schema.CategoryReputation:  int(math.Round(sections[schema.SectionReputation])),
		schema.CategoryPerformance: int(math.Round(sections[schema.SectionPerformance])),
		schema.CategorySEO:         int(math.Round(sections[schema.SectionSEO])),
	}
}
