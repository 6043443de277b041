package collect

import (
	"context"
	"math"
	"strings"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
)

const serpActorID = "apify~google-search-scraper"

// SERPCollector measures organic search visibility per keyword through the
// Apify Google Search scraper.
type SERPCollector struct {
	apify    *ApifyClient
	pages    int
	pageSize int
}

// NewSERPCollector returns a collector scanning the standard result depth
// (4 pages of 20, i.e. ranks 1-80).
func NewSERPCollector(apify *ApifyClient) *SERPCollector {
	return &SERPCollector{
		apify:    apify,
		pages:    contract.DefaultSERPPages,
		pageSize: contract.DefaultSERPPageSize,
	}
}

type serpItem struct {
	SearchQuery struct {
		Term string `json:"term"`
	} `json:"searchQuery"`
	OrganicResults []struct {
		URL      string `json:"url"`
		Position int    `json:"position"`
	} `json:"organicResults"`
}

// CollectSEOVisibility ranks the audited domain for every keyword and
// aggregates per-keyword visibility into one score. Rank 0 records "not
// found within the scanned depth".
func (s *SERPCollector) CollectSEOVisibility(ctx context.Context, siteURL string, keywords []string, geoHint, countryCode string) (*schema.SEOVisibility, error) {
	if countryCode == "" {
		countryCode = contract.DefaultSERPCountry
	}

	queries := buildSERPQueries(keywords, geoHint)
	input := map[string]any{
		"queries":          strings.Join(queries, "\n"),
		"countryCode":      countryCode,
		"maxPagesPerQuery": s.pages,
		"resultsPerPage":   s.pageSize,
		"languageCode":     "en",
	}

	var items []serpItem
	if err := s.apify.RunActor(ctx, serpActorID, input, &items); err != nil {
		return nil, err
	}

	// The actor echoes the submitted query term; map it back so rankings
	// stay keyed by the original keyword.
	keywordForTerm := make(map[string]string, len(keywords))
	for i, q := range queries {
		keywordForTerm[q] = keywords[i]
	}

	domain := contract.NormalizeDomain(siteURL)
	rankings := make(map[string]int, len(keywords))
	for _, kw := range keywords {
		rankings[kw] = 0
	}
	// One item per result page; keep the best rank seen per keyword.
	offsets := make(map[string]int, len(keywords))
	for _, item := range items {
		kw, ok := keywordForTerm[item.SearchQuery.Term]
		if !ok {
			continue
		}
		offset := offsets[kw]
		for _, res := range item.OrganicResults {
			rank := offset + res.Position
			if contract.NormalizeDomain(res.URL) == domain {
				if current := rankings[kw]; current == 0 || rank < current {
					rankings[kw] = rank
				}
			}
		}
		offsets[kw] = offset + len(item.OrganicResults)
	}

	return BuildSEOVisibility(rankings), nil
}

// buildSERPQueries appends the geo hint to each keyword so results reflect
// local intent even when user-supplied keywords carry no location. Keywords
// that already mention the hint are sent as-is.
func buildSERPQueries(keywords []string, geoHint string) []string {
	if geoHint == "" {
		return keywords
	}
	queries := make([]string, len(keywords))
	for i, kw := range keywords {
		if strings.Contains(strings.ToLower(kw), strings.ToLower(geoHint)) {
			queries[i] = kw
			continue
		}
		queries[i] = kw + " " + geoHint
	}
	return queries
}

// BuildSEOVisibility converts keyword ranks into visibility percentages and
// their average.
func BuildSEOVisibility(rankings map[string]int) *schema.SEOVisibility {
	visibility := make(map[string]float64, len(rankings))
	sum := 0.0
	for kw, rank := range rankings {
		v := RankToVisibility(rank)
		visibility[kw] = v
		sum += v
	}

	out := &schema.SEOVisibility{
		KeywordRankings:   rankings,
		KeywordVisibility: visibility,
	}
	if len(rankings) > 0 {
		avg := math.Round(sum/float64(len(rankings))*100) / 100
		out.VisibilityScore = schema.Ptr(avg)
	}
	return out
}

// RankToVisibility maps an organic rank to a visibility percentage. The
// ladder decays steeply below the fold: top-3 placements get full credit,
// page one tapers to 44, page two to 15, and everything past rank 50 is
// effectively invisible. Rank 0 means the domain was not found at all.
func RankToVisibility(rank int) float64 {
	r := float64(rank)
	switch {
	case rank <= 0:
		return 0
	case rank <= 3:
		return 100
	case rank <= 10:
		return 100 - (r-3)*8
	case rank <= 20:
		return 40 - (r-10)*2.5
	case rank <= 50:
		return 15 - (r-20)*0.45
	default:
		return 0
	}
}
