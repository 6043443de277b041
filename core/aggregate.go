package core

import (
	"github.com/sitegrade/sitegrade/schema"
)

// clamp bounds a score to [0,100]. Out-of-range scorer output is corrected
// here, never rejected.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Aggregate combines section scores into one weighted final score plus a
// per-section breakdown. Sections missing from the input map fall back to the
// neutral midpoint, applied defensively even though MapAuditToScores always
// emits every key. Weights must already be validated to sum to 1.0; see
// contract.ProcessAndValidate.
func Aggregate(scores schema.SectionScores, weights map[schema.Section]float64) schema.FinalResult {
	breakdown := make(schema.ScoreBreakdown, len(weights))
	total := 0.0

	for _, section := range schema.AllSections {
		weight, ok := weights[section]
		if !ok {
			continue
		}

		raw, ok := scores[section]
		if !ok {
			raw = schema.NeutralScore
		}
		raw = clamp(raw)

		contribution := raw * weight
		breakdown[section] = schema.SectionContribution{
			RawScore:     round2(raw),
			Weight:       weight,
			Contribution: round2(contribution),
		}
		total += contribution
	}

	return schema.FinalResult{
		FinalScore: round2(total),
		Breakdown:  breakdown,
	}
}
