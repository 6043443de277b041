package collect

import (
	"context"
	"strings"

	"github.com/sitegrade/sitegrade/schema"
)

const facebookActorID = "apify~facebook-reviews-scraper"

// FacebookReviewsCollector fetches recommendation statistics for a Facebook
// page through the Apify scraper. Page discovery itself lives on
// SiteCollector since it only needs the audited site's HTML.
type FacebookReviewsCollector struct {
	apify        *ApifyClient
	resultsLimit int
}

// NewFacebookReviewsCollector returns a collector with the standard limit.
func NewFacebookReviewsCollector(apify *ApifyClient) *FacebookReviewsCollector {
	return &FacebookReviewsCollector{apify: apify, resultsLimit: 100}
}

// FacebookCollector pairs page discovery (site scraping) with review
// collection (Apify) to satisfy the full Facebook contract.
type FacebookCollector struct {
	*SiteCollector
	*FacebookReviewsCollector
}

// NewFacebookCollector combines the two halves of Facebook collection.
func NewFacebookCollector(site *SiteCollector, reviews *FacebookReviewsCollector) *FacebookCollector {
	return &FacebookCollector{SiteCollector: site, FacebookReviewsCollector: reviews}
}

type facebookReviewItem struct {
	IsRecommended *bool  `json:"isRecommended"`
	Text          string `json:"text"`
	PageResponse  string `json:"pageResponse"`
}

// CollectFacebookReviews scrapes up to resultsLimit recommendations from the
// given page and aggregates them. Facebook dropped star ratings in 2018, so
// sentiment is the recommended/not-recommended flag; entries without it are
// counted as unknown.
func (f *FacebookReviewsCollector) CollectFacebookReviews(ctx context.Context, pageURL string) (*schema.FacebookReviews, error) {
	input := map[string]any{
		"startUrls":    []map[string]string{{"url": pageURL}},
		"resultsLimit": f.resultsLimit,
	}

	var items []facebookReviewItem
	if err := f.apify.RunActor(ctx, facebookActorID, input, &items); err != nil {
		return nil, err
	}

	out := &schema.FacebookReviews{Total: schema.Ptr(len(items))}
	positive, negative, unknown, replied := 0, 0, 0, 0
	for _, item := range items {
		switch {
		case item.IsRecommended == nil:
			unknown++
		case *item.IsRecommended:
			positive++
		default:
			negative++
		}
		if strings.TrimSpace(item.PageResponse) != "" {
			replied++
		}
	}
	out.Positive = schema.Ptr(positive)
	out.Negative = schema.Ptr(negative)
	out.Unknown = schema.Ptr(unknown)
	if len(items) > 0 {
		out.ReplyRate = schema.Ptr(100 * float64(replied) / float64(len(items)))
	}
	return out, nil
}
