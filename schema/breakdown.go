package schema

// SectionScores maps each of the six fixed sections to a score in [0,100].
// Produced once per audit run and never mutated afterwards.
type SectionScores map[Section]float64

// SectionContribution explains how one section contributed to the final score.
type SectionContribution struct {
	RawScore     float64 `json:"raw_score"`    // Score before weighting, clamped to [0,100]
	Weight       float64 `json:"weight"`       // Fixed fractional weight
	Contribution float64 `json:"contribution"` // RawScore * Weight
}

// ScoreBreakdown maps each section to its contribution details.
type ScoreBreakdown map[Section]SectionContribution

// FinalResult is the aggregator output: the weighted final score plus the
// full per-section breakdown required by downstream reporting.
type FinalResult struct {
	FinalScore float64        `json:"final_score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

// Grade is a discrete band carrying a risk level and a qualitative verdict.
type Grade struct {
	Letter    string `json:"grade"`
	RiskLevel string `json:"risk_level"`
	Verdict   string `json:"verdict"`
}

// ReportScores is the human-facing category -> score mapping consumed by the
// HTML report, the Excel store and the console table. Iterate with
// AllCategories to keep display order stable.
type ReportScores map[Category]int
