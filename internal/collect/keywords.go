package collect

import (
	"strings"

	"github.com/sitegrade/sitegrade/schema"
)

// businessTypeSignals maps a canonical business type to tokens searched for
// in the business name and domain. Order matters: first match wins, so more
// specific trades come before broad categories.
var businessTypeSignals = []struct {
	label  string
	tokens []string
}{
	{"dentist", []string{"dental", "dentist", "orthodont"}},
	{"plumber", []string{"plumb"}},
	{"electrician", []string{"electric"}},
	{"hvac contractor", []string{"hvac", "heating", "cooling", "air condition"}},
	{"roofer", []string{"roof"}},
	{"landscaper", []string{"landscap", "lawn care", "lawncare"}},
	{"auto repair shop", []string{"auto repair", "automotive", "mechanic", "tire"}},
	{"law firm", []string{"law", "attorney", "legal"}},
	{"real estate agency", []string{"realty", "real estate", "realtor"}},
	{"restaurant", []string{"restaurant", "pizzeria", "cafe", "grill", "bistro", "diner"}},
	{"salon", []string{"salon", "barber", "spa", "nails"}},
	{"gym", []string{"fitness", "gym", "crossfit", "yoga"}},
	{"veterinarian", []string{"veterinar", "animal hospital", "pet clinic"}},
	{"cleaning service", []string{"cleaning", "maid", "janitorial"}},
	{"accountant", []string{"accounting", "bookkeep", "tax", "cpa"}},
}

// DetectBusinessType guesses the business category from the scraped name and
// the domain. Unrecognized businesses get the generic label, which still
// produces workable keyword templates.
func DetectBusinessType(info *schema.BusinessInfo, domain string) string {
	haystack := strings.ToLower(domain)
	if info != nil && info.BusinessName != nil {
		haystack += " " + strings.ToLower(*info.BusinessName)
	}

	for _, sig := range businessTypeSignals {
		for _, token := range sig.tokens {
			if strings.Contains(haystack, token) {
				return sig.label
			}
		}
	}
	return "local business"
}

// BuildKeywords derives a search keyword plan from the business type and an
// optional city. Without a city the geo-neutral templates remain.
func BuildKeywords(businessType, city string, limit int) []string {
	templates := []string{
		businessType + " near me",
		"best " + businessType,
		businessType + " services",
		businessType + " reviews",
	}
	if city != "" {
		city = strings.ToLower(city)
		templates = append([]string{
			businessType + " " + city,
			"best " + businessType + " " + city,
			businessType + " in " + city,
		}, templates...)
	}

	if limit > 0 && len(templates) > limit {
		templates = templates[:limit]
	}
	return templates
}
