package schema

// Ptr returns a pointer to v. Handy for building optional fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// HasData reports whether any business detail was found. An all-absent record
// is treated the same as a missing one.
func (b *BusinessInfo) HasData() bool {
	if b == nil {
		return false
	}
	return b.BusinessName != nil || len(b.Phones) > 0 || b.Address != nil ||
		b.Hours != nil || b.ContactPage || b.TextEnabled || b.PlatformHint != nil
}

// HasData reports whether any tracking tag was detected.
func (t *TechStack) HasData() bool {
	if t == nil {
		return false
	}
	return t.GTM || t.GAUA || t.GA4 || t.FBPixel || t.GoogleAdsPixel || t.ChatWidget
}

// HasData reports whether any performance number is available.
func (p *PageSpeed) HasData() bool {
	if p == nil {
		return false
	}
	return p.MobileScore != nil || p.DesktopScore != nil ||
		p.FCP != nil || p.LCP != nil || p.TBT != nil || p.CLS != nil
}

// HasData reports whether any Google review or profile signal is available.
func (g *GoogleReviews) HasData() bool {
	if g == nil {
		return false
	}
	return g.GBPClaimed != nil || g.GBPRating != nil || g.GBPReviewCount != nil ||
		g.Total != nil || g.Positive != nil || g.Negative != nil || g.ReplyRate != nil ||
		g.GBPHours != nil || g.GBPPhotos != nil || g.GBPPhone != nil || g.GBPAddress != nil
}

// HasData reports whether any Facebook review signal is available.
func (f *FacebookReviews) HasData() bool {
	if f == nil {
		return false
	}
	return f.Total != nil || f.Positive != nil || f.Negative != nil ||
		f.Unknown != nil || f.ReplyRate != nil
}

// HasData reports whether any search visibility data is available.
func (s *SEOVisibility) HasData() bool {
	if s == nil {
		return false
	}
	return s.VisibilityScore != nil || len(s.KeywordRankings) > 0
}
