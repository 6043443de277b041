package collect

import (
	"context"
	"regexp"
	"strings"

	"github.com/sitegrade/sitegrade/schema"
)

var (
	gtmPattern    = regexp.MustCompile(`googletagmanager\.com/gtm\.js|['"]GTM-[A-Z0-9]{4,}['"]`)
	ga4Pattern    = regexp.MustCompile(`googletagmanager\.com/gtag/js\?id=G-|['"]G-[A-Z0-9]{6,}['"]`)
	gaUAPattern   = regexp.MustCompile(`['"]UA-\d{4,}-\d{1,3}['"]|google-analytics\.com/analytics\.js`)
	fbPixelRegex  = regexp.MustCompile(`connect\.facebook\.net/[\w_]+/fbevents\.js|fbq\(\s*['"]init['"]`)
	adsPixelRegex = regexp.MustCompile(`['"]AW-\d{6,}['"]|googleadservices\.com/pagead/conversion`)
)

// Known live-chat widget asset hosts.
var chatWidgetHosts = []string{
	"widget.intercom.io",
	"js.driftt.com",
	"embed.tawk.to",
	"client.crisp.chat",
	"cdn.livechatinc.com",
	"static.zdassets.com",
	"js.hs-scripts.com",
	"code.tidio.co",
	"widget.manychat.com",
	"podium.com/js",
}

// CollectTechStack downloads the landing page and reports which tracking and
// engagement tags are installed.
func (s *SiteCollector) CollectTechStack(ctx context.Context, siteURL string) (*schema.TechStack, error) {
	html, err := s.fetcher.FetchHTML(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	return DetectTechSignals(html), nil
}

// DetectTechSignals matches tag fingerprints against raw page HTML. The
// patterns target loader snippets and container IDs, so a tag injected via
// GTM server-side is invisible here; that is an accepted limitation.
func DetectTechSignals(html string) *schema.TechStack {
	lower := strings.ToLower(html)

	chat := false
	for _, host := range chatWidgetHosts {
		if strings.Contains(lower, host) {
			chat = true
			break
		}
	}

	return &schema.TechStack{
		GTM:            gtmPattern.MatchString(html),
		GAUA:           gaUAPattern.MatchString(html),
		GA4:            ga4Pattern.MatchString(html),
		FBPixel:        fbPixelRegex.MatchString(html),
		GoogleAdsPixel: adsPixelRegex.MatchString(html),
		ChatWidget:     chat,
	}
}
