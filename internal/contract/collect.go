package contract

import (
	"context"

	"github.com/sitegrade/sitegrade/schema"
)

// Collector interfaces form the boundary between the scoring core and the
// outside world. Implementations return (nil, err) when a source is
// unavailable; the orchestrator converts that into an absent sub-record so
// missing data reaches the scorers as an explicit signal, never as an error.

// BusinessCollector scrapes basic business details from a website.
type BusinessCollector interface {
	CollectBusinessInfo(ctx context.Context, siteURL string) (*schema.BusinessInfo, error)
}

// TechCollector detects tracking and engagement tags on a website.
type TechCollector interface {
	CollectTechStack(ctx context.Context, siteURL string) (*schema.TechStack, error)
}

// PageSpeedCollector fetches performance scores and Core Web Vitals.
type PageSpeedCollector interface {
	CollectPageSpeed(ctx context.Context, siteURL string) (*schema.PageSpeed, error)
}

// GoogleCollector fetches Google Business Profile data and review stats.
type GoogleCollector interface {
	CollectGoogleReviews(ctx context.Context, searchTerm, location, targetSite string) (*schema.GoogleReviews, error)
}

// FacebookCollector discovers a site's Facebook page and fetches its reviews.
type FacebookCollector interface {
	CollectFacebookURL(ctx context.Context, siteURL string) (string, error)
	CollectFacebookReviews(ctx context.Context, pageURL string) (*schema.FacebookReviews, error)
}

// SEOCollector measures search visibility for a keyword set.
type SEOCollector interface {
	CollectSEOVisibility(ctx context.Context, siteURL string, keywords []string, geoHint, countryCode string) (*schema.SEOVisibility, error)
}

// Summarizer turns a finished audit into narrative text.
type Summarizer interface {
	Summarize(ctx context.Context, record *schema.AuditRecord, finalScore float64, grade schema.Grade) (string, error)
}

// CollectorSet bundles one implementation of every collector. Individual
// fields may be nil (skipped collectors), which the orchestrator treats the
// same as an unavailable source.
type CollectorSet struct {
	Business  BusinessCollector
	Tech      TechCollector
	PageSpeed PageSpeedCollector
	Google    GoogleCollector
	Facebook  FacebookCollector
	SEO       SEOCollector
}
