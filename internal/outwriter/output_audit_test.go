package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *schema.AuditResult {
	return &schema.AuditResult{
		URL:          "https://acme.example",
		BusinessType: "plumber",
		Keywords:     []string{"plumber near me"},
		ScrapeDate:   time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Record: schema.AuditRecord{
			BusinessInfo: &schema.BusinessInfo{BusinessName: schema.Ptr("Acme Plumbing")},
			TechStack:    &schema.TechStack{GTM: true, GA4: true},
		},
		Sections: schema.SectionScores{
			schema.SectionBusiness:    80,
			schema.SectionTech:        50,
			schema.SectionPerformance: 72.5,
			schema.SectionReputation:  100,
			schema.SectionSEO:         40,
			schema.SectionListings:    100,
		},
		Final: schema.FinalResult{
			FinalScore: 72,
			Breakdown: schema.ScoreBreakdown{
				schema.SectionBusiness:    {RawScore: 80, Weight: 0.15, Contribution: 12},
				schema.SectionTech:        {RawScore: 50, Weight: 0.15, Contribution: 7.5},
				schema.SectionPerformance: {RawScore: 72.5, Weight: 0.20, Contribution: 14.5},
				schema.SectionReputation:  {RawScore: 100, Weight: 0.20, Contribution: 20},
				schema.SectionSEO:         {RawScore: 40, Weight: 0.20, Contribution: 8},
				schema.SectionListings:    {RawScore: 100, Weight: 0.10, Contribution: 10},
			},
		},
		Grade: schema.Grade{Letter: "B", RiskLevel: "Low–Medium", Verdict: "Good overall presence, but some areas are limiting maximum growth."},
		Report: schema.ReportScores{
			schema.CategoryOverall:     72,
			schema.CategoryBusiness:    100,
			schema.CategoryTechno:      73,
			schema.CategoryGBP:         0,
			schema.CategoryListings:    0,
			schema.CategoryReputation:  100,
			schema.CategoryPerformance: 73,
			schema.CategorySEO:         40,
		},
	}
}

func tableConfig() *contract.Config {
	return &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Width:     100,
	}
}

func TestWriteAuditTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := tableConfig()
	result := sampleResult()
	result.AISummary = "Your reputation is strong but search visibility lags behind."

	require.NoError(t, writeAuditTable(&buf, result, cfg, createFloatFormatter(cfg.Precision)))
	out := buf.String()

	assert.Contains(t, out, "Marketing Audit: https://acme.example (2026-08-29)")
	assert.Contains(t, out, "Final score: 72.00/100  Grade: B  Risk: Low–Medium")
	assert.Contains(t, out, "Business type: plumber")
	assert.Contains(t, out, "Online Reputation")
	assert.Contains(t, out, "Overall Score")
	assert.Contains(t, out, "search visibility lags")
	// Explain columns only appear with the flag.
	assert.NotContains(t, out, "CONTRIBUTION")
}

func TestWriteAuditTableExplain(t *testing.T) {
	var buf bytes.Buffer
	cfg := tableConfig()
	cfg.Explain = true

	require.NoError(t, writeAuditTable(&buf, sampleResult(), cfg, createFloatFormatter(cfg.Precision)))
	out := strings.ToUpper(buf.String())

	assert.Contains(t, out, "WEIGHT")
	assert.Contains(t, out, "CONTRIBUTION")
	assert.Contains(t, out, "14.50")
}

func TestWriteAuditCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAuditCSV(&buf, sampleResult(), createFloatFormatter(2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// header + six sections + final row
	require.Len(t, records, 8)
	assert.Equal(t, []string{"section", "score", "weight", "contribution"}, records[0])
	assert.Equal(t, []string{"Business Details", "80.00", "0.15", "12.00"}, records[1])
	assert.Equal(t, "Final", records[7][0])
	assert.Equal(t, "72.00", records[7][1])
}

func TestWriteHistoryTable(t *testing.T) {
	entries := []schema.HistoryEntry{
		{ID: 1, Domain: "acme.example", AuditTime: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), FinalScore: 61.25, Grade: "C", RiskLevel: "Medium"},
		{ID: 2, Domain: "acme.example", AuditTime: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), FinalScore: 72.5, Grade: "B", RiskLevel: "Low–Medium"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeHistoryTable(&buf, entries, tableConfig(), createFloatFormatter(2)))
	out := buf.String()

	assert.Contains(t, out, "acme.example")
	assert.Contains(t, out, "61.25")
	assert.Contains(t, out, "72.50")
	assert.Contains(t, out, "Showing 2 audits")
}

func TestWriteHistoryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryTable(&buf, nil, tableConfig(), createFloatFormatter(2)))
	assert.Contains(t, buf.String(), "No audit history")
}

func TestWriteHistoryCSV(t *testing.T) {
	entries := []schema.HistoryEntry{
		{ID: 7, Domain: "acme.example", URL: "https://acme.example", AuditTime: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), FinalScore: 72.5, Grade: "B", RiskLevel: "Low–Medium"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeHistoryCSV(&buf, entries, createFloatFormatter(2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "7", records[1][0])
	assert.Equal(t, "72.50", records[1][4])
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five six seven", 12)
	for line := range strings.SplitSeq(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 12)
	}
	assert.Equal(t, "one two three four five six seven",
		strings.ReplaceAll(wrapped, "\n", " "))

	// Paragraph breaks survive.
	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 40))
}

// TestGetTerminalWidth pins the readable floor: explicit overrides are
// honored but never taken below the minimum.
func TestGetTerminalWidth(t *testing.T) {
	assert.Equal(t, 100, getTerminalWidth(&contract.Config{Width: 100}))
	assert.Equal(t, minTerminalWidth, getTerminalWidth(&contract.Config{Width: 12}))
	assert.GreaterOrEqual(t, getTerminalWidth(&contract.Config{}), minTerminalWidth)
}
