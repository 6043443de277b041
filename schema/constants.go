package schema

// Custom string types for type safety.
type (
	// Section represents one of the six scored marketing dimensions.
	Section string

	// Category represents a human-facing category in report output.
	Category string

	// OutputMode represents the format of the output.
	OutputMode string
)

// The six fixed sections scored by the engine.
const (
	SectionBusiness    Section = "Business Details"
	SectionTech        Section = "Tech Stack"
	SectionPerformance Section = "Website Performance"
	SectionReputation  Section = "Online Reputation"
	SectionSEO         Section = "SEO Analysis"
	SectionListings    Section = "Listings"
)

// Report categories shown to humans. Techno Stack and Website Performance
// intentionally render the same underlying performance score.
const (
	CategoryOverall     Category = "Overall Score"
	CategoryBusiness    Category = "Business Details"
	CategoryTechno      Category = "Techno Stack"
	CategoryGBP         Category = "Google Business Profile"
	CategoryListings    Category = "Listings"
	CategoryReputation  Category = "Online Reputation"
	CategoryPerformance Category = "Website Performance"
	CategorySEO         Category = "SEO Analysis"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// NeutralScore is the midpoint substituted when a section's underlying data
// is entirely unavailable, so that missing data degrades toward "average"
// rather than toward zero or full credit.
const NeutralScore = 50.0

// AllSections lists the sections in scoring order.
var AllSections = []Section{
	SectionBusiness,
	SectionTech,
	SectionPerformance,
	SectionReputation,
	SectionSEO,
	SectionListings,
}

// AllCategories lists the report categories in display order.
var AllCategories = []Category{
	CategoryOverall,
	CategoryBusiness,
	CategoryTechno,
	CategoryGBP,
	CategoryListings,
	CategoryReputation,
	CategoryPerformance,
	CategorySEO,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// DefaultWeights returns the canonical section weight map. The weights
// partition 1.0 so the maximum final score is 100.
func DefaultWeights() map[Section]float64 {
	return map[Section]float64{
		SectionBusiness:    0.15,
		SectionTech:        0.15,
		SectionPerformance: 0.20,
		SectionReputation:  0.20,
		SectionSEO:         0.20,
		SectionListings:    0.10,
	}
}
