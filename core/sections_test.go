package core

import (
	"testing"

	"github.com/sitegrade/sitegrade/schema"
	"github.com/stretchr/testify/assert"
)

// TestMapAuditToScoresEmptyRecord verifies every section has a defined score
// even when no collector produced data.
func TestMapAuditToScoresEmptyRecord(t *testing.T) {
	scores := MapAuditToScores(&schema.AuditRecord{})

	assert.Len(t, scores, len(schema.AllSections))
	assert.Equal(t, 0.0, scores[schema.SectionBusiness])
	assert.Equal(t, 0.0, scores[schema.SectionTech])
	assert.Equal(t, schema.NeutralScore, scores[schema.SectionPerformance])
	assert.Equal(t, schema.NeutralScore, scores[schema.SectionReputation])
	assert.Equal(t, schema.NeutralScore, scores[schema.SectionSEO])
	assert.Equal(t, 40.0, scores[schema.SectionListings])
}

func TestScoreBusiness(t *testing.T) {
	tests := []struct {
		name     string
		info     *schema.BusinessInfo
		expected float64
	}{
		{
			name:     "nil info",
			info:     nil,
			expected: 0,
		},
		{
			name:     "empty info",
			info:     &schema.BusinessInfo{},
			expected: 0,
		},
		{
			name:     "empty name string does not count",
			info:     &schema.BusinessInfo{BusinessName: schema.Ptr("")},
			expected: 0,
		},
		{
			name:     "name only",
			info:     &schema.BusinessInfo{BusinessName: schema.Ptr("Acme Plumbing")},
			expected: 30,
		},
		{
			name:     "name and phone",
			info:     &schema.BusinessInfo{BusinessName: schema.Ptr("Acme"), Phones: []string{"+1 555 0100"}},
			expected: 60,
		},
		{
			name: "all signals",
			info: &schema.BusinessInfo{
				BusinessName: schema.Ptr("Acme"),
				Phones:       []string{"+1 555 0100", "+1 555 0101"},
				Address:      schema.Ptr("12 Main St, Springfield"),
				ContactPage:  true,
			},
			expected: 100,
		},
		{
			name: "address and contact page without identity",
			info: &schema.BusinessInfo{
				Address:     schema.Ptr("12 Main St"),
				ContactPage: true,
			},
			expected: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreBusiness(tt.info))
		})
	}
}

func TestScoreTech(t *testing.T) {
	tests := []struct {
		name     string
		tech     *schema.TechStack
		expected float64
	}{
		{
			name:     "nil stack",
			tech:     nil,
			expected: 0,
		},
		{
			name:     "no tags",
			tech:     &schema.TechStack{},
			expected: 0,
		},
		{
			name:     "legacy UA alone earns nothing",
			tech:     &schema.TechStack{GAUA: true},
			expected: 0,
		},
		{
			name:     "gtm and ga4",
			tech:     &schema.TechStack{GTM: true, GA4: true},
			expected: 50,
		},
		{
			name: "full stack",
			tech: &schema.TechStack{
				GTM: true, GAUA: true, GA4: true,
				FBPixel: true, GoogleAdsPixel: true, ChatWidget: true,
			},
			expected: 100,
		},
		{
			name:     "pixels only",
			tech:     &schema.TechStack{FBPixel: true, GoogleAdsPixel: true},
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreTech(tt.tech))
		})
	}
}

func TestScorePerformance(t *testing.T) {
	tests := []struct {
		name     string
		speed    *schema.PageSpeed
		expected float64
	}{
		{
			name:     "nil is neutral",
			speed:    nil,
			expected: schema.NeutralScore,
		},
		{
			name:     "no scores is neutral",
			speed:    &schema.PageSpeed{CLS: schema.Ptr(0.01)},
			expected: schema.NeutralScore,
		},
		{
			name:     "mobile only",
			speed:    &schema.PageSpeed{MobileScore: schema.Ptr(62.0)},
			expected: 62,
		},
		{
			name:     "desktop only",
			speed:    &schema.PageSpeed{DesktopScore: schema.Ptr(88.0)},
			expected: 88,
		},
		{
			name: "average of both",
			speed: &schema.PageSpeed{
				MobileScore:  schema.Ptr(55.0),
				DesktopScore: schema.Ptr(90.0),
			},
			expected: 72.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorePerformance(tt.speed))
		})
	}
}

func TestScoreReputation(t *testing.T) {
	tests := []struct {
		name     string
		google   *schema.GoogleReviews
		facebook *schema.FacebookReviews
		expected float64
	}{
		{
			name:     "nothing collected is neutral",
			expected: schema.NeutralScore,
		},
		{
			name:     "zero counts everywhere is neutral",
			google:   &schema.GoogleReviews{Total: schema.Ptr(0)},
			facebook: &schema.FacebookReviews{Total: schema.Ptr(0)},
			expected: schema.NeutralScore,
		},
		{
			name:     "google reviews present",
			google:   &schema.GoogleReviews{Total: schema.Ptr(12)},
			expected: 40,
		},
		{
			name: "high rating without review count",
			google: &schema.GoogleReviews{
				GBPRating: schema.Ptr(4.6),
			},
			expected: 30,
		},
		{
			name: "rating below four earns nothing",
			google: &schema.GoogleReviews{
				Total:     schema.Ptr(8),
				GBPRating: schema.Ptr(3.9),
			},
			expected: 40,
		},
		{
			name: "rating exactly four counts",
			google: &schema.GoogleReviews{
				Total:     schema.Ptr(8),
				GBPRating: schema.Ptr(4.0),
			},
			expected: 70,
		},
		{
			name:     "facebook reviews only",
			facebook: &schema.FacebookReviews{Total: schema.Ptr(5)},
			expected: 30,
		},
		{
			name: "all signals",
			google: &schema.GoogleReviews{
				Total:     schema.Ptr(40),
				GBPRating: schema.Ptr(4.8),
			},
			facebook: &schema.FacebookReviews{Total: schema.Ptr(9)},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreReputation(tt.google, tt.facebook))
		})
	}
}

func TestScoreSEO(t *testing.T) {
	assert.Equal(t, schema.NeutralScore, scoreSEO(nil))
	assert.Equal(t, schema.NeutralScore, scoreSEO(&schema.SEOVisibility{}))
	assert.Equal(t, 73.33, scoreSEO(&schema.SEOVisibility{VisibilityScore: schema.Ptr(73.333)}))
	assert.Equal(t, 0.0, scoreSEO(&schema.SEOVisibility{VisibilityScore: schema.Ptr(0.0)}))
}

func TestScoreListings(t *testing.T) {
	tests := []struct {
		name     string
		google   *schema.GoogleReviews
		expected float64
	}{
		{
			name:     "no profile data",
			google:   nil,
			expected: 40,
		},
		{
			name:     "unclaimed with no reviews",
			google:   &schema.GoogleReviews{GBPClaimed: schema.Ptr(false)},
			expected: 40,
		},
		{
			name: "unclaimed but reviewed",
			google: &schema.GoogleReviews{
				GBPClaimed: schema.Ptr(false),
				Total:      schema.Ptr(3),
			},
			expected: 70,
		},
		{
			name: "claimed beats everything",
			google: &schema.GoogleReviews{
				GBPClaimed: schema.Ptr(true),
				Total:      schema.Ptr(0),
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreListings(tt.google))
		})
	}
}
