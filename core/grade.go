package core

import "github.com/sitegrade/sitegrade/schema"

// GradeFor converts a final marketing score into its grade band. Bands are
// contiguous and evaluated top-down with inclusive lower bounds, so every
// score maps to exactly one band.
func GradeFor(finalScore float64) schema.Grade {
	switch {
	case finalScore >= 90:
		return schema.Grade{
			Letter:    "A+",
			RiskLevel: "Very Low",
			Verdict:   "Excellent digital marketing presence. Strong visibility, trust, and performance.",
		}
	case finalScore >= 80:
		return schema.Grade{
			Letter:    "A",
			RiskLevel: "Low",
			Verdict:   "Strong marketing foundations with minor optimization opportunities.",
		}
	case finalScore >= 70:
		return schema.Grade{
			Letter:    "B",
			RiskLevel: "Low–Medium",
			Verdict:   "Good overall presence, but some areas are limiting maximum growth.",
		}
	case finalScore >= 60:
		return schema.Grade{
			Letter:    "C",
			RiskLevel: "Medium",
			Verdict:   "Average marketing performance. Visibility and conversion improvements needed.",
		}
	case finalScore >= 50:
		return schema.Grade{
			Letter:    "D",
			RiskLevel: "High",
			Verdict:   "Weak marketing foundation. Immediate improvements recommended.",
		}
	default:
		return schema.Grade{
			Letter:    "F",
			RiskLevel: "Very High",
			Verdict:   "Critical marketing gaps detected. Business is losing visibility and leads.",
		}
	}
}
