package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
	"github.com/xuri/excelize/v2"
)

const excelSheet = "Audit"

// WriteExcelExport writes the flattened audit into dataDir as
// "audit_<site>_<timestamp>.xlsx" and returns the file path. One audit per
// workbook keeps the files trivially diffable and mergeable downstream.
func WriteExcelExport(result *schema.AuditResult, dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	site := contract.SafeFilename(contract.NormalizeDomain(result.URL))
	filename := fmt.Sprintf("audit_%s_%s.xlsx", site, result.ScrapeDate.Format("20060102_150405"))
	path := filepath.Join(dataDir, filename)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	headers, values := flattenAudit(result)
	if err := f.SetSheetRow(excelSheet, "A1", &headers); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetSheetRow(excelSheet, "A2", &values); err != nil {
		return "", fmt.Errorf("write data row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// flattenAudit produces parallel header/value slices covering identity,
// section scores, grade and the headline collector facts.
func flattenAudit(result *schema.AuditResult) ([]any, []any) {
	var headers, values []any
	add := func(header string, value any) {
		headers = append(headers, header)
		values = append(values, value)
	}

	add("url", result.URL)
	add("audit_time", result.ScrapeDate.Format(contract.DateTimeFormat))
	add("business_type", result.BusinessType)
	add("keywords", strings.Join(result.Keywords, ", "))
	add("final_score", result.Final.FinalScore)
	add("grade", result.Grade.Letter)
	add("risk_level", result.Grade.RiskLevel)

	for _, section := range schema.AllSections {
		key := "score_" + strings.ReplaceAll(strings.ToLower(string(section)), " ", "_")
		add(key, result.Sections[section])
	}

	record := result.Record
	if b := record.BusinessInfo; b != nil {
		add("business_name", deref(b.BusinessName))
		add("phones", strings.Join(b.Phones, "; "))
		add("address", deref(b.Address))
		add("contact_page", b.ContactPage)
	}
	if t := record.TechStack; t != nil {
		add("gtm", t.GTM)
		add("ga4", t.GA4)
		add("fb_pixel", t.FBPixel)
		add("google_ads_pixel", t.GoogleAdsPixel)
		add("chat_widget", t.ChatWidget)
	}
	if p := record.PageSpeed; p != nil {
		add("psi_mobile_score", derefFloat(p.MobileScore))
		add("psi_desktop_score", derefFloat(p.DesktopScore))
	}
	if g := record.GoogleReviews; g != nil {
		add("gbp_claimed", g.GBPClaimed != nil && *g.GBPClaimed)
		add("gbp_rating", derefFloat(g.GBPRating))
		add("google_reviews_total", derefInt(g.Total))
	}
	if fb := record.FacebookReviews; fb != nil {
		add("facebook_reviews_total", derefInt(fb.Total))
	}
	if s := record.SEOVisibility; s != nil {
		add("visibility_score", derefFloat(s.VisibilityScore))
	}

	return headers, values
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func derefInt(i *int) any {
	if i == nil {
		return ""
	}
	return *i
}
