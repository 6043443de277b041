package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
)

const placesActorID = "compass~crawler-google-places"

// GooglePlacesCollector resolves a business on Google Maps and extracts its
// Business Profile data and review statistics through the Apify crawler.
type GooglePlacesCollector struct {
	apify      *ApifyClient
	maxPlaces  int
	maxReviews int
}

// NewGooglePlacesCollector returns a collector with the standard crawl limits.
func NewGooglePlacesCollector(apify *ApifyClient) *GooglePlacesCollector {
	return &GooglePlacesCollector{
		apify:      apify,
		maxPlaces:  contract.DefaultMaxPlaces,
		maxReviews: contract.DefaultMaxReviews,
	}
}

type placeItem struct {
	Title             string   `json:"title"`
	Website           string   `json:"website"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	TotalScore        *float64 `json:"totalScore"`
	ReviewsCount      *int     `json:"reviewsCount"`
	ImagesCount       *int     `json:"imagesCount"`
	ClaimThisBusiness bool     `json:"claimThisBusiness"` // true = profile is unclaimed
	OpeningHours      []struct {
		Day   string `json:"day"`
		Hours string `json:"hours"`
	} `json:"openingHours"`
	Reviews []placeReview `json:"reviews"`
}

type placeReview struct {
	Stars                 *float64 `json:"stars"`
	ResponseFromOwnerText string   `json:"responseFromOwnerText"`
}

// CollectGoogleReviews searches Maps for the business and maps the best
// matching place onto the audit schema. Matching prefers a place whose
// website points at the audited domain; without one the top search result
// is trusted.
func (g *GooglePlacesCollector) CollectGoogleReviews(ctx context.Context, searchTerm, location, targetSite string) (*schema.GoogleReviews, error) {
	query := searchTerm
	if location != "" {
		query = searchTerm + " " + location
	}

	input := map[string]any{
		"searchStringsArray":        []string{query},
		"maxCrawledPlacesPerSearch": g.maxPlaces,
		"maxReviews":                g.maxReviews,
		"language":                  "en",
		"scrapeReviewsPersonalData": false,
	}

	var items []placeItem
	if err := g.apify.RunActor(ctx, placesActorID, input, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no Google Maps place found for %q", query)
	}

	place := pickPlace(items, targetSite, searchTerm)
	return mapPlace(place), nil
}

// pickPlace scores each candidate and returns the best match. A website on
// the audited domain outweighs any name similarity; ties keep search order.
func pickPlace(items []placeItem, targetSite, searchTerm string) *placeItem {
	target := contract.NormalizeDomain(targetSite)

	best := &items[0]
	bestScore := -1.0
	for i := range items {
		score := nameSimilarity(items[i].Title, searchTerm) * 50
		if target != "" && contract.NormalizeDomain(items[i].Website) == target {
			score += 100
		}
		if score > bestScore {
			best = &items[i]
			bestScore = score
		}
	}
	return best
}

// nameSimilarity returns the share of words the two names have in common,
// in [0,1].
func nameSimilarity(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	shared := 0
	for _, w := range wordsB {
		if _, ok := setA[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(wordsA), len(wordsB)))
}

func mapPlace(place *placeItem) *schema.GoogleReviews {
	out := &schema.GoogleReviews{
		GBPClaimed: schema.Ptr(!place.ClaimThisBusiness),
		GBPRating:  place.TotalScore,
	}
	if place.ReviewsCount != nil {
		out.GBPReviewCount = place.ReviewsCount
		out.Total = place.ReviewsCount
	}
	if place.ImagesCount != nil {
		out.GBPPhotos = place.ImagesCount
	}
	if place.Phone != "" {
		out.GBPPhone = schema.Ptr(place.Phone)
	}
	if place.Address != "" {
		out.GBPAddress = schema.Ptr(place.Address)
	}
	if hours := formatOpeningHours(place); hours != "" {
		out.GBPHours = schema.Ptr(hours)
	}

	if len(place.Reviews) > 0 {
		positive, negative, replied := 0, 0, 0
		for _, r := range place.Reviews {
			if r.Stars != nil && *r.Stars >= 4 {
				positive++
			}
			if r.Stars != nil && *r.Stars <= 2 {
				negative++
			}
			if strings.TrimSpace(r.ResponseFromOwnerText) != "" {
				replied++
			}
		}
		out.Positive = schema.Ptr(positive)
		out.Negative = schema.Ptr(negative)
		out.ReplyRate = schema.Ptr(100 * float64(replied) / float64(len(place.Reviews)))
	}
	return out
}

func formatOpeningHours(place *placeItem) string {
	parts := make([]string, 0, len(place.OpeningHours))
	for _, oh := range place.OpeningHours {
		if oh.Day == "" || oh.Hours == "" {
			continue
		}
		parts = append(parts, oh.Day+": "+oh.Hours)
	}
	return strings.Join(parts, "; ")
}
