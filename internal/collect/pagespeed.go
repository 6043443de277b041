package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
)

const pageSpeedEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// PageSpeed Insights runs Lighthouse remotely and routinely takes 30-60s per
// strategy, so the collector carries its own generous timeout instead of the
// page-scrape one.
const pageSpeedTimeout = 90 * time.Second

// PageSpeedCollector queries the PageSpeed Insights v5 API for both
// strategies and merges the results.
type PageSpeedCollector struct {
	client *http.Client
	apiKey string
}

// NewPageSpeedCollector returns a collector. The API key is optional; keyless
// requests work with a tight shared quota.
func NewPageSpeedCollector(apiKey string) *PageSpeedCollector {
	return &PageSpeedCollector{
		client: &http.Client{Timeout: pageSpeedTimeout},
		apiKey: apiKey,
	}
}

type psiResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance struct {
				Score *float64 `json:"score"` // 0-1
			} `json:"performance"`
		} `json:"categories"`
		Audits map[string]struct {
			NumericValue *float64 `json:"numericValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// CollectPageSpeed runs mobile then desktop. Mobile supplies the Core Web
// Vitals (the strategy Google indexes by); desktop only contributes its
// performance score.
func (p *PageSpeedCollector) CollectPageSpeed(ctx context.Context, siteURL string) (*schema.PageSpeed, error) {
	result := &schema.PageSpeed{}

	mobile, err := p.runStrategy(ctx, siteURL, "mobile")
	if err != nil {
		return nil, err
	}
	applyStrategy(result, mobile, true)

	desktop, err := p.runStrategy(ctx, siteURL, "desktop")
	if err != nil {
		// Half a result is still a result.
		contract.LogWarn("PageSpeed desktop strategy failed", err)
		return result, nil
	}
	applyStrategy(result, desktop, false)
	return result, nil
}

func (p *PageSpeedCollector) runStrategy(ctx context.Context, siteURL, strategy string) (*psiResponse, error) {
	q := url.Values{}
	q.Set("url", siteURL)
	q.Set("strategy", strategy)
	q.Set("category", "performance")
	if p.apiKey != "" {
		q.Set("key", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageSpeedEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build pagespeed request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed %s: %w", strategy, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("pagespeed %s: status %d: %s", strategy, resp.StatusCode, body)
	}

	var parsed psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("pagespeed %s: decode: %w", strategy, err)
	}
	return &parsed, nil
}

// applyStrategy copies one strategy's numbers into the merged result.
// Lighthouse reports the category score on 0-1 and timings in milliseconds;
// the schema wants 0-100 and seconds.
func applyStrategy(out *schema.PageSpeed, resp *psiResponse, mobile bool) {
	if s := resp.LighthouseResult.Categories.Performance.Score; s != nil {
		score := *s * 100
		if mobile {
			out.MobileScore = &score
		} else {
			out.DesktopScore = &score
		}
	}
	if !mobile {
		return
	}

	audits := resp.LighthouseResult.Audits
	if v, ok := audits["first-contentful-paint"]; ok && v.NumericValue != nil {
		out.FCP = schema.Ptr(*v.NumericValue / 1000)
	}
	if v, ok := audits["largest-contentful-paint"]; ok && v.NumericValue != nil {
		out.LCP = schema.Ptr(*v.NumericValue / 1000)
	}
	if v, ok := audits["total-blocking-time"]; ok && v.NumericValue != nil {
		out.TBT = schema.Ptr(*v.NumericValue / 1000)
	}
	if v, ok := audits["cumulative-layout-shift"]; ok && v.NumericValue != nil {
		out.CLS = schema.Ptr(*v.NumericValue)
	}
}
