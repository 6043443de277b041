package collect

import (
	"regexp"
	"strings"

	"github.com/sitegrade/sitegrade/schema"
)

// US street addresses end in "City, ST 12345"; the state+zip tail is the
// strongest country signal an address string carries.
var usStateZipPattern = regexp.MustCompile(`\b[A-Z]{2}\.?\s+\d{5}(-\d{4})?\b`)

// countryNames maps trailing country spellings to ISO codes for the SERP
// country parameter. Only markets the product targets are listed; anything
// else falls back to the default.
var countryNames = map[string]string{
	"usa":            "us",
	"united states":  "us",
	"canada":         "ca",
	"united kingdom": "gb",
	"uk":             "gb",
	"australia":      "au",
	"new zealand":    "nz",
	"ireland":        "ie",
}

// CityFromAddress extracts the city from a comma-separated postal address
// like "12 Main St, Springfield, IL 62704". Returns "" when the shape does
// not match.
func CityFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	// City is the second-to-last part when the address ends in a
	// region/zip or country segment, else the second part.
	city := strings.TrimSpace(parts[len(parts)-2])
	if city == "" || strings.ContainsAny(city, "0123456789") {
		city = strings.TrimSpace(parts[1])
	}
	if strings.ContainsAny(city, "0123456789") {
		return ""
	}
	return city
}

// CountryFromAddress guesses a 2-letter country code from an address string.
func CountryFromAddress(address string) string {
	if usStateZipPattern.MatchString(address) {
		return "us"
	}
	parts := strings.Split(address, ",")
	tail := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if code, ok := countryNames[tail]; ok {
		return code
	}
	return ""
}

// countryTLDs maps country-code domain suffixes to ISO codes, the weakest
// geo signal, consulted only when no address gave one.
var countryTLDs = map[string]string{
	".ca": "ca",
	".uk": "gb",
	".au": "au",
	".nz": "nz",
	".ie": "ie",
	".us": "us",
}

// CountryFromTLD guesses a country code from the domain suffix.
func CountryFromTLD(domain string) string {
	domain = strings.ToLower(domain)
	for suffix, code := range countryTLDs {
		if strings.HasSuffix(domain, suffix) {
			return code
		}
	}
	return ""
}

// CountryForRecord picks the best available country hint: the Google Business
// Profile address, then the scraped address, then the domain suffix.
func CountryForRecord(record *schema.AuditRecord, domain string) string {
	if record.GoogleReviews != nil && record.GoogleReviews.GBPAddress != nil {
		if code := CountryFromAddress(*record.GoogleReviews.GBPAddress); code != "" {
			return code
		}
	}
	if record.BusinessInfo != nil && record.BusinessInfo.Address != nil {
		if code := CountryFromAddress(*record.BusinessInfo.Address); code != "" {
			return code
		}
	}
	return CountryFromTLD(domain)
}
