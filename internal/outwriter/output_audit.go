package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAuditResult outputs one audit, dispatching on the configured format.
func WriteAuditResult(result *schema.AuditResult, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuditCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuditTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeAuditTable renders the human-readable audit summary.
func writeAuditTable(w io.Writer, result *schema.AuditResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Marketing Audit: %s (%s)\n",
		result.URL, result.ScrapeDate.Format("2006-01-02")); err != nil {
		return err
	}
	if result.BusinessType != "" {
		if _, err := fmt.Fprintf(w, "Business type: %s\n", result.BusinessType); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Final score: %s/100  Grade: %s  Risk: %s\n%s\n\n",
		fmtFloat(result.Final.FinalScore), result.Grade.Letter,
		contract.GetRiskLabel(result.Grade.RiskLevel, cfg.UseColors),
		result.Grade.Verdict); err != nil {
		return err
	}

	if err := writeBreakdownTable(w, result, cfg, fmtFloat); err != nil {
		return err
	}
	if err := writeReportTable(w, result); err != nil {
		return err
	}

	if result.AISummary != "" {
		if _, err := fmt.Fprintf(w, "\nSummary\n-------\n%s\n",
			wrapText(result.AISummary, getTerminalWidth(cfg))); err != nil {
			return err
		}
	}
	return nil
}

// wrapText re-flows prose to the given width, preserving paragraph breaks.
// Words longer than the width stay on their own line unbroken.
func wrapText(text string, width int) string {
	var out []string
	for para := range strings.SplitSeq(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// writeBreakdownTable prints the per-section engine breakdown. Weight and
// contribution columns appear only with --explain.
func writeBreakdownTable(w io.Writer, result *schema.AuditResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Section", "Score"}
	if cfg.Explain {
		headers = append(headers, "Weight", "Contribution")
	}
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, section := range schema.AllSections {
		contrib, ok := result.Final.Breakdown[section]
		if !ok {
			continue
		}
		row := []string{string(section), fmtFloat(contrib.RawScore)}
		if cfg.Explain {
			row = append(row, fmt.Sprintf("%.2f", contrib.Weight), fmtFloat(contrib.Contribution))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportTable prints the report category view.
func writeReportTable(w io.Writer, result *schema.AuditResult) error {
	if _, err := fmt.Fprintln(w, "\nReport categories"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Score"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, category := range schema.AllCategories {
		data = append(data, []string{string(category), strconv.Itoa(result.Report[category])})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeAuditCSV writes the breakdown plus the final row in CSV format.
func writeAuditCSV(w io.Writer, result *schema.AuditResult, fmtFloat func(float64) string) error {
	header := []string{"section", "score", "weight", "contribution"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, section := range schema.AllSections {
			contrib, ok := result.Final.Breakdown[section]
			if !ok {
				continue
			}
			rec := []string{
				string(section),
				fmtFloat(contrib.RawScore),
				fmt.Sprintf("%.2f", contrib.Weight),
				fmtFloat(contrib.Contribution),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return csvWriter.Write([]string{"Final", fmtFloat(result.Final.FinalScore), "", ""})
	})
}

// WriteHistoryEntries outputs stored audit summaries, dispatching on format.
func WriteHistoryEntries(entries []schema.HistoryEntry, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, entries, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, entries, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeHistoryTable(w io.Writer, entries []schema.HistoryEntry, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No audit history recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Domain", "Date", "Score", "Grade", "Risk"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			strconv.FormatInt(e.ID, 10),
			e.Domain,
			e.AuditTime.Format("2006-01-02 15:04"),
			fmtFloat(e.FinalScore),
			e.Grade,
			contract.GetRiskLabel(e.RiskLevel, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d audits\n", len(entries))
	return err
}

func writeHistoryCSV(w io.Writer, entries []schema.HistoryEntry, fmtFloat func(float64) string) error {
	header := []string{"id", "domain", "url", "audit_time", "final_score", "grade", "risk_level"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, e := range entries {
			rec := []string{
				strconv.FormatInt(e.ID, 10),
				e.Domain,
				e.URL,
				e.AuditTime.Format(contract.DateTimeFormat),
				fmtFloat(e.FinalScore),
				e.Grade,
				e.RiskLevel,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
