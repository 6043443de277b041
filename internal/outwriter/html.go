package outwriter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
)

// htmlReportTemplate is the standalone dark-theme report. Everything inlines
// so the file can be emailed or opened offline.
var htmlReportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Marketing Audit - {{.Name}}</title>
<style>
body { background:#111827; color:#e5e7eb; font-family:Arial,Helvetica,sans-serif; margin:0; padding:2rem; }
.card { background:#1f2937; border-radius:12px; padding:1.5rem; margin-bottom:1.5rem; max-width:720px; }
h1 { font-size:1.5rem; margin:0 0 .25rem; }
.meta { color:#9ca3af; font-size:.9rem; }
.score { font-size:3rem; font-weight:bold; color:{{.ScoreColor}}; }
.grade { font-size:1.2rem; color:#d1d5db; }
table { width:100%; border-collapse:collapse; margin-top:.75rem; }
th, td { text-align:left; padding:.5rem .75rem; border-bottom:1px solid #374151; }
th { color:#9ca3af; font-weight:normal; font-size:.85rem; text-transform:uppercase; }
td.num { text-align:right; font-variant-numeric:tabular-nums; }
.bar { background:#374151; border-radius:4px; height:8px; overflow:hidden; }
.bar span { display:block; height:100%; background:{{.ScoreColor}}; }
.summary { line-height:1.6; white-space:pre-wrap; }
</style>
</head>
<body>
<div class="card">
<h1>{{.Name}}</h1>
<div class="meta">{{.URL}} &middot; audited {{.Date}}</div>
<div class="score">{{printf "%.0f" .Final}}</div>
<div class="grade">Grade {{.Grade.Letter}} &middot; Risk: {{.Grade.RiskLevel}}</div>
<p>{{.Grade.Verdict}}</p>
</div>

<div class="card">
<h2>Section breakdown</h2>
<table>
<tr><th>Section</th><th>Score</th><th></th></tr>
{{range .Sections}}<tr>
<td>{{.Name}}</td>
<td class="num">{{printf "%.1f" .Score}}</td>
<td style="width:40%"><div class="bar"><span style="width:{{printf "%.0f" .Score}}%"></span></div></td>
</tr>
{{end}}</table>
</div>

<div class="card">
<h2>Report categories</h2>
<table>
<tr><th>Category</th><th>Score</th></tr>
{{range .Categories}}<tr><td>{{.Name}}</td><td class="num">{{.Score}}</td></tr>
{{end}}</table>
</div>

{{if .Summary}}<div class="card">
<h2>Auditor summary</h2>
<div class="summary">{{.Summary}}</div>
</div>{{end}}
</body>
</html>
`))

type htmlSectionRow struct {
	Name  string
	Score float64
}

type htmlCategoryRow struct {
	Name  string
	Score int
}

type htmlReportData struct {
	Name       string
	URL        string
	Date       string
	Final      float64
	ScoreColor string
	Grade      schema.Grade
	Sections   []htmlSectionRow
	Categories []htmlCategoryRow
	Summary    string
}

// WriteHTMLReport renders the audit into reportDir as
// "Marketing Audit - <name> - <date>.html" and returns the file path.
func WriteHTMLReport(result *schema.AuditResult, reportDir string) (string, error) {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	name := displayName(result)
	filename := fmt.Sprintf("Marketing Audit - %s - %s.html",
		pathSafe(name), result.ScrapeDate.Format("2006-01-02"))
	path := filepath.Join(reportDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := htmlReportTemplate.Execute(file, buildHTMLData(result, name)); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return path, nil
}

func buildHTMLData(result *schema.AuditResult, name string) htmlReportData {
	data := htmlReportData{
		Name:       name,
		URL:        result.URL,
		Date:       result.ScrapeDate.Format("January 2, 2006"),
		Final:      result.Final.FinalScore,
		ScoreColor: scoreColor(result.Final.FinalScore),
		Grade:      result.Grade,
		Summary:    result.AISummary,
	}
	for _, section := range schema.AllSections {
		data.Sections = append(data.Sections, htmlSectionRow{
			Name:  string(section),
			Score: result.Sections[section],
		})
	}
	for _, category := range schema.AllCategories {
		data.Categories = append(data.Categories, htmlCategoryRow{
			Name:  string(category),
			Score: result.Report[category],
		})
	}
	return data
}

var pathHostileChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// pathSafe strips filesystem-hostile characters while keeping the name
// readable (case and spaces preserved, unlike contract.SafeFilename).
func pathSafe(name string) string {
	cleaned := pathHostileChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// displayName prefers the scraped business name over the bare domain.
func displayName(result *schema.AuditResult) string {
	if b := result.Record.BusinessInfo; b != nil && b.BusinessName != nil && *b.BusinessName != "" {
		return *b.BusinessName
	}
	return contract.NormalizeDomain(result.URL)
}

// scoreColor picks the accent color for the headline number.
func scoreColor(score float64) string {
	switch {
	case score >= 80:
		return "#34d399" // green
	case score >= 60:
		return "#fbbf24" // amber
	default:
		return "#f87171" // red
	}
}
