package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sitegrade/sitegrade/internal/collect"
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
)

// ExecuteAudit runs the full audit pipeline: collect raw signals, score each
// section, aggregate into a weighted final score, grade it, and reshape the
// numbers for the report. Collector failures degrade the audit (nil
// sub-record, neutral or zero score downstream) instead of aborting it; only
// context cancellation is fatal.
func ExecuteAudit(ctx context.Context, cfg *contract.Config, set contract.CollectorSet, summarizer contract.Summarizer) (*schema.AuditResult, error) {
	contract.LogStep("Auditing %s ...", cfg.Domain)

	record := &schema.AuditRecord{}

	// --- 1. Site-level collectors (independent, run in parallel) ---
	var wg sync.WaitGroup
	if enabled(cfg, contract.CollectorBusiness, set.Business != nil) {
		wg.Go(func() {
			record.BusinessInfo = collectOrWarn(ctx, "business info", func() (*schema.BusinessInfo, error) {
				return set.Business.CollectBusinessInfo(ctx, cfg.URL)
			})
		})
	}
	if enabled(cfg, contract.CollectorTech, set.Tech != nil) {
		wg.Go(func() {
			record.TechStack = collectOrWarn(ctx, "tech stack", func() (*schema.TechStack, error) {
				return set.Tech.CollectTechStack(ctx, cfg.URL)
			})
		})
	}
	if enabled(cfg, contract.CollectorPageSpeed, set.PageSpeed != nil) {
		wg.Go(func() {
			record.PageSpeed = collectOrWarn(ctx, "pagespeed", func() (*schema.PageSpeed, error) {
				return set.PageSpeed.CollectPageSpeed(ctx, cfg.URL)
			})
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	// --- 2. Reputation collectors (need business identity from phase 1) ---
	searchTerm := cfg.Domain
	if record.BusinessInfo != nil && record.BusinessInfo.BusinessName != nil && *record.BusinessInfo.BusinessName != "" {
		searchTerm = *record.BusinessInfo.BusinessName
	}
	location := ""
	if record.BusinessInfo != nil && record.BusinessInfo.Address != nil {
		location = collect.CityFromAddress(*record.BusinessInfo.Address)
	}

	if enabled(cfg, contract.CollectorGoogle, set.Google != nil) {
		wg.Go(func() {
			record.GoogleReviews = collectOrWarn(ctx, "google reviews", func() (*schema.GoogleReviews, error) {
				return set.Google.CollectGoogleReviews(ctx, searchTerm, location, cfg.Domain)
			})
		})
	}
	if enabled(cfg, contract.CollectorFacebook, set.Facebook != nil) {
		wg.Go(func() {
			record.FacebookReviews = collectFacebook(ctx, cfg, set.Facebook)
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	// --- 3. SEO visibility (needs keywords, possibly derived) ---
	businessType := collect.DetectBusinessType(record.BusinessInfo, cfg.Domain)
	keywords := cfg.Keywords
	if len(keywords) == 0 {
		if location == "" && record.GoogleReviews != nil && record.GoogleReviews.GBPAddress != nil {
			location = collect.CityFromAddress(*record.GoogleReviews.GBPAddress)
		}
		keywords = collect.BuildKeywords(businessType, location, contract.DefaultMaxKeywords)
	}
	country := cfg.Country
	if country == "" {
		country = collect.CountryForRecord(record, cfg.Domain)
	}

	contract.LogStep("Keyword plan (%s): %s", businessType, describeKeywords(keywords))

	if enabled(cfg, contract.CollectorSEO, set.SEO != nil) && len(keywords) > 0 {
		record.SEOVisibility = collectOrWarn(ctx, "seo visibility", func() (*schema.SEOVisibility, error) {
			return set.SEO.CollectSEOVisibility(ctx, cfg.URL, keywords, location, country)
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	// --- 4. Scoring ---
	sections := MapAuditToScores(record)
	final := Aggregate(sections, cfg.Weights)
	grade := GradeFor(final.FinalScore)
	report := BuildReportScores(record, sections, final.FinalScore)

	result := &schema.AuditResult{
		URL:          cfg.URL,
		BusinessType: businessType,
		Keywords:     keywords,
		ScrapeDate:   time.Now().UTC(),
		Record:       *record,
		Sections:     sections,
		Final:        final,
		Grade:        grade,
		Report:       report,
	}

	// --- 5. Narrative summary (optional) ---
	if cfg.AI && summarizer != nil {
		summary, err := summarizer.Summarize(ctx, record, final.FinalScore, grade)
		if err != nil {
			contract.LogWarn("AI summary failed", err)
		} else {
			result.AISummary = summary
		}
	}

	return result, nil
}

// enabled reports whether a collector should run, given skip flags and wiring.
func enabled(cfg *contract.Config, name string, wired bool) bool {
	return wired && !cfg.Skip[name]
}

// collectOrWarn runs one collector and turns its failure into a warning plus
// a nil sub-record.
func collectOrWarn[T any](ctx context.Context, label string, fn func() (*T, error)) *T {
	if ctx.Err() != nil {
		return nil
	}
	out, err := fn()
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Collector %s failed", label), err)
		return nil
	}
	return out
}

// collectFacebook chains page discovery with review collection. A site with
// no discoverable Facebook page is not an error.
func collectFacebook(ctx context.Context, cfg *contract.Config, fb contract.FacebookCollector) *schema.FacebookReviews {
	pageURL, err := fb.CollectFacebookURL(ctx, cfg.URL)
	if err != nil {
		contract.LogWarn("Facebook page discovery failed", err)
		return nil
	}
	if pageURL == "" {
		contract.LogStep("No Facebook page found for %s", cfg.Domain)
		return nil
	}
	return collectOrWarn(ctx, "facebook reviews", func() (*schema.FacebookReviews, error) {
		return fb.CollectFacebookReviews(ctx, pageURL)
	})
}

// describeKeywords renders the keyword plan for progress logging.
func describeKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "(none)"
	}
	return strings.Join(keywords, ", ")
}
