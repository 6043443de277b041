package core

import (
	"math"

	"github.com/sitegrade/sitegrade/schema"
)

// MapAuditToScores converts raw collector outputs into 0-100 section scores.
// Every scorer is pure and total: absent or nil sub-records still produce a
// defined number. Sections whose data is entirely unavailable fall back to the
// neutral midpoint rather than zero, except Business Details which is strictly
// presence-based.
func MapAuditToScores(record *schema.AuditRecord) schema.SectionScores {
	return schema.SectionScores{
		schema.SectionBusiness:    scoreBusiness(record.BusinessInfo),
		schema.SectionTech:        scoreTech(record.TechStack),
		schema.SectionPerformance: scorePerformance(record.PageSpeed),
		schema.SectionReputation:  scoreReputation(record.GoogleReviews, record.FacebookReviews),
		schema.SectionSEO:         scoreSEO(record.SEOVisibility),
		schema.SectionListings:    scoreListings(record.GoogleReviews),
	}
}

// scoreBusiness awards additive points for contactability signals.
// All-absent business info scores 0, not the neutral fallback.
func scoreBusiness(b *schema.BusinessInfo) float64 {
	if b == nil {
		return 0
	}

	score := 0.0
	if b.BusinessName != nil && *b.BusinessName != "" {
		score += 30
	}
	if len(b.Phones) > 0 {
		score += 30
	}
	if b.Address != nil && *b.Address != "" {
		score += 20
	}
	if b.ContactPage {
		score += 20
	}
	return math.Min(score, 100)
}

// scoreTech awards additive points per tracking tag. The weights sum to 100
// by construction; the cap guards against future additions.
func scoreTech(t *schema.TechStack) float64 {
	if t == nil {
		return 0
	}

	score := 0.0
	if t.GTM {
		score += 25
	}
	if t.GA4 {
		score += 25
	}
	if t.FBPixel {
		score += 20
	}
	if t.GoogleAdsPixel {
		score += 15
	}
	if t.ChatWidget {
		score += 15
	}
	return math.Min(score, 100)
}

// scorePerformance averages whichever of the mobile/desktop PageSpeed scores
// are available. Unknown performance is neutral, not penalized.
func scorePerformance(p *schema.PageSpeed) float64 {
	if p == nil {
		return schema.NeutralScore
	}

	sum := 0.0
	count := 0
	if p.MobileScore != nil {
		sum += *p.MobileScore
		count++
	}
	if p.DesktopScore != nil {
		sum += *p.DesktopScore
		count++
	}
	if count == 0 {
		return schema.NeutralScore
	}
	return round2(sum / float64(count))
}

// scoreReputation awards additive points for review signals across both
// platforms. Sites with no review footprint at all (common for B2B) get the
// neutral fallback instead of a zero.
func scoreReputation(g *schema.GoogleReviews, f *schema.FacebookReviews) float64 {
	score := 0.0

	if g != nil {
		if g.Total != nil && *g.Total > 0 {
			score += 40
		}
		if g.GBPRating != nil && *g.GBPRating >= 4 {
			score += 30
		}
	}
	if f != nil && f.Total != nil && *f.Total > 0 {
		score += 30
	}

	if score == 0 {
		return schema.NeutralScore
	}
	return math.Min(score, 100)
}

// scoreSEO passes through the pre-computed aggregate visibility score.
func scoreSEO(s *schema.SEOVisibility) float64 {
	if s == nil || s.VisibilityScore == nil {
		return schema.NeutralScore
	}
	return round2(*s.VisibilityScore)
}

// scoreListings is a monotonic confidence ladder, not an additive system:
// a claimed profile beats mere review presence beats nothing.
func scoreListings(g *schema.GoogleReviews) float64 {
	if g != nil && g.GBPClaimed != nil && *g.GBPClaimed {
		return 100
	}
	if g != nil && g.Total != nil && *g.Total > 0 {
		return 70
	}
	return 40
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
