// Package schema has configs, models and constants for all parts of sitegrade.
package schema

import "time"

// BusinessInfo holds basic business details scraped from a website.
// Every field is optional; collectors fill in whatever they can find.
type BusinessInfo struct {
	BusinessName *string  `json:"business_name"` // Name from title or first h1
	Phones       []string `json:"phones"`        // Deduplicated phone numbers found in page text
	Address      *string  `json:"address"`       // Best-effort postal address candidate
	Hours        *string  `json:"hours"`         // Opening-hours hint, if any day names were found
	TextEnabled  bool     `json:"text_enabled"`  // Page advertises SMS/texting contact
	ContactPage  bool     `json:"contact_page"`  // A link to a contact page exists
	PlatformHint *string  `json:"platform_hint"` // Site builder hint (Wordpress, Shopify, ...)
}

// TechStack holds six independent tracking/engagement tag detections.
type TechStack struct {
	GTM            bool `json:"gtm"`              // Google Tag Manager container
	GAUA           bool `json:"ga_ua"`            // Legacy Universal Analytics property
	GA4            bool `json:"ga4"`              // Google Analytics 4 property
	FBPixel        bool `json:"fb_pixel"`         // Facebook/Meta pixel
	GoogleAdsPixel bool `json:"google_ads_pixel"` // Google Ads conversion tag
	ChatWidget     bool `json:"chat_widget"`      // Any known live-chat widget
}

// PageSpeed holds PageSpeed Insights scores and Core Web Vitals.
// Scores are 0-100; vitals are in seconds except CLS which is unitless.
type PageSpeed struct {
	MobileScore  *float64 `json:"psi_mobile_score"`
	DesktopScore *float64 `json:"psi_desktop_score"`
	FCP          *float64 `json:"fcp"`
	LCP          *float64 `json:"lcp"`
	TBT          *float64 `json:"tbt"`
	CLS          *float64 `json:"cls"`
}

// GoogleReviews holds Google Business Profile data and review statistics.
type GoogleReviews struct {
	GBPClaimed     *bool    `json:"gbp_claimed"`
	GBPRating      *float64 `json:"gbp_rating"`
	GBPReviewCount *int     `json:"gbp_review_count"`
	GBPHours       *string  `json:"gbp_hours"`
	GBPPhotos      *int     `json:"gbp_photos"`
	GBPPhone       *string  `json:"gbp_phone"`
	GBPAddress     *string  `json:"gbp_address"`

	Total     *int     `json:"google_reviews_total"`
	Positive  *int     `json:"google_reviews_positive"` // Ratings >= 4
	Negative  *int     `json:"google_reviews_negative"` // Ratings <= 2
	ReplyRate *float64 `json:"google_reply_rate"`       // Percent of reviews with an owner response
}

// FacebookReviews holds Facebook recommendation statistics.
type FacebookReviews struct {
	Total     *int     `json:"facebook_reviews_total"`
	Positive  *int     `json:"facebook_reviews_positive"`
	Negative  *int     `json:"facebook_reviews_negative"`
	Unknown   *int     `json:"facebook_reviews_unknown"` // Neither recommended nor rated
	ReplyRate *float64 `json:"facebook_reply_rate"`
}

// SEOVisibility holds search ranking data for a keyword set.
type SEOVisibility struct {
	KeywordRankings   map[string]int     `json:"keyword_rankings"`   // keyword -> organic rank (0 = not found)
	KeywordVisibility map[string]float64 `json:"keyword_visibility"` // keyword -> visibility percentage
	VisibilityScore   *float64           `json:"visibility_score"`   // Aggregate visibility (0-100)
}

// AuditRecord is the single input snapshot for the scoring pipeline.
// A nil sub-record means the collector was unavailable; the scorers must
// produce a defined score regardless.
type AuditRecord struct {
	BusinessInfo    *BusinessInfo    `json:"business_info"`
	TechStack       *TechStack       `json:"tech_stack"`
	PageSpeed       *PageSpeed       `json:"pagespeed"`
	GoogleReviews   *GoogleReviews   `json:"google_reviews"`
	FacebookReviews *FacebookReviews `json:"facebook_reviews"`
	SEOVisibility   *SEOVisibility   `json:"seo_visibility"`
}

// HistoryEntry is one stored audit summary from the history database.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Domain     string    `json:"domain"`
	URL        string    `json:"url"`
	AuditTime  time.Time `json:"audit_time"`
	FinalScore float64   `json:"final_score"`
	Grade      string    `json:"grade"`
	RiskLevel  string    `json:"risk_level"`
}

// AuditResult bundles everything one audit run produced.
type AuditResult struct {
	URL          string        `json:"url"`
	BusinessType string        `json:"business_type"`
	Keywords     []string      `json:"keywords"`
	ScrapeDate   time.Time     `json:"scrape_date"`
	Record       AuditRecord   `json:"collectors"`
	Sections     SectionScores `json:"section_scores"`
	Final        FinalResult   `json:"final"`
	Grade        Grade         `json:"grade"`
	Report       ReportScores  `json:"report_scores"`
	AISummary    string        `json:"ai_summary,omitempty"`
}
