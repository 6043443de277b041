package collect

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Facebook URL path prefixes that are share widgets, not pages.
var facebookNonPagePaths = []string{
	"/sharer", "/share", "/plugins", "/dialog", "/tr", "/login", "/hashtag",
}

// CollectFacebookURL scans the landing page for a link to the business's
// Facebook page. An empty result with nil error means no page was found.
func (s *SiteCollector) CollectFacebookURL(ctx context.Context, siteURL string) (string, error) {
	doc, _, err := s.fetcher.FetchDocument(ctx, siteURL)
	if err != nil {
		return "", err
	}
	return FindFacebookPage(doc), nil
}

// FindFacebookPage returns the first anchor that points at a real Facebook
// page rather than a share widget.
func FindFacebookPage(doc *goquery.Document) string {
	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if isFacebookPage(href) {
			found = strings.TrimRight(href, "/")
			return false
		}
		return true
	})
	return found
}

func isFacebookPage(href string) bool {
	lower := strings.ToLower(href)
	i := strings.Index(lower, "facebook.com/")
	if i < 0 {
		return false
	}
	path := lower[i+len("facebook.com"):]
	if path == "/" || path == "" {
		return false
	}
	for _, skip := range facebookNonPagePaths {
		if strings.HasPrefix(path, skip) {
			return false
		}
	}
	return true
}
