package collect

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitegrade/sitegrade/schema"
)

var (
	// Loose North-American-and-international phone shape: optional country
	// code, then 10+ digits with common separators.
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,3}\)?[-.\s(]*\d{3}[-.\s)]*\d{3}[-.\s]*\d{4}`)

	// Street-address candidate: number followed by words ending in a street
	// suffix. Deliberately loose; this is a hint, not a geocoder.
	addressPattern = regexp.MustCompile(`(?i)\d{1,5}\s+[\w.\s]{3,40}\b(street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way|court|ct|suite|ste|plaza|pkwy|parkway)\b[^\n<]{0,60}`)

	hoursPattern = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun)\b[^\n<]{0,80}\d{1,2}(:\d{2})?\s*(am|pm)`)
)

// CollectBusinessInfo scrapes name, phones, address, hours and contact
// signals from the site's landing page.
func (s *SiteCollector) CollectBusinessInfo(ctx context.Context, siteURL string) (*schema.BusinessInfo, error) {
	doc, html, err := s.fetcher.FetchDocument(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	return ExtractBusinessInfo(doc, html), nil
}

// ExtractBusinessInfo pulls business details out of a parsed page. Split out
// from the network fetch so the heuristics are testable on static HTML.
func ExtractBusinessInfo(doc *goquery.Document, html string) *schema.BusinessInfo {
	info := &schema.BusinessInfo{}

	if name := extractBusinessName(doc); name != "" {
		info.BusinessName = schema.Ptr(name)
	}
	info.Phones = extractPhones(doc)

	text := doc.Text()
	if addr := strings.TrimSpace(addressPattern.FindString(text)); addr != "" {
		info.Address = schema.Ptr(collapseSpaces(addr))
	}
	if hours := strings.TrimSpace(hoursPattern.FindString(text)); hours != "" {
		info.Hours = schema.Ptr(collapseSpaces(hours))
	}

	lower := strings.ToLower(html)
	info.TextEnabled = strings.Contains(lower, "sms:") ||
		strings.Contains(lower, "text us") || strings.Contains(lower, "send us a text")
	info.ContactPage = hasContactLink(doc)

	if hint := detectPlatform(lower); hint != "" {
		info.PlatformHint = schema.Ptr(hint)
	}
	return info
}

// extractBusinessName prefers og:site_name, then the first h1, then the
// title with common " | tagline" suffixes stripped.
func extractBusinessName(doc *goquery.Document) string {
	if name, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" && len(h1) <= 80 {
		return collapseSpaces(h1)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, sep := range []string{" | ", " - ", " – ", " :: "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
			break
		}
	}
	return collapseSpaces(title)
}

// extractPhones gathers tel: links first (highest confidence), then page
// text, deduplicating on the digit sequence.
func extractPhones(doc *goquery.Document) []string {
	var phones []string
	seen := map[string]struct{}{}

	add := func(raw string) {
		digits := digitsOnly(raw)
		if len(digits) < 10 || len(digits) > 14 {
			return
		}
		// Dedup on the local 10 digits so "+1-555..." and "(555) ..."
		// collapse into one number.
		key := digits[len(digits)-10:]
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		phones = append(phones, strings.TrimSpace(raw))
	}

	doc.Find(`a[href^="tel:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		add(strings.TrimPrefix(href, "tel:"))
	})
	for _, m := range phonePattern.FindAllString(doc.Text(), 10) {
		add(m)
	}
	return phones
}

func hasContactLink(doc *goquery.Document) bool {
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if strings.Contains(strings.ToLower(href), "contact") {
			found = true
			return false
		}
		return true
	})
	return found
}

// detectPlatform sniffs the site builder from well-known asset paths.
func detectPlatform(lowerHTML string) string {
	switch {
	case strings.Contains(lowerHTML, "wp-content") || strings.Contains(lowerHTML, "wp-includes"):
		return "Wordpress"
	case strings.Contains(lowerHTML, "cdn.shopify.com"):
		return "Shopify"
	case strings.Contains(lowerHTML, "static.wixstatic.com") || strings.Contains(lowerHTML, "wix.com"):
		return "Wix"
	case strings.Contains(lowerHTML, "squarespace.com"):
		return "Squarespace"
	case strings.Contains(lowerHTML, "godaddy.com/websites"):
		return "GoDaddy"
	case strings.Contains(lowerHTML, "webflow.com") || strings.Contains(lowerHTML, "assets.website-files.com"):
		return "Webflow"
	default:
		return ""
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
