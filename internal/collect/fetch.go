// Package collect implements the audit collectors: website scraping, the
// PageSpeed Insights API, and Apify actors for reviews and search rankings.
package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 sitegrade/1.0"

// maxBodyBytes caps page downloads. Marketing pages past this point add no
// new tracking or contact signals.
const maxBodyBytes = 4 << 20

// Fetcher is a shared HTTP client for page scraping with connection pooling
// and a browser-like user agent.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with pooled connections and the given timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// FetchHTML downloads a page and returns its raw HTML.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	return string(body), nil
}

// FetchDocument downloads a page and parses it into a goquery document.
// The raw HTML is returned alongside for regex-based tag detection.
func (f *Fetcher) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, string, error) {
	html, err := f.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, html, nil
}

// SiteCollector scrapes business details, tracking tags and social links
// from the audited website itself. It implements the business, tech and
// Facebook-discovery collector contracts.
type SiteCollector struct {
	fetcher *Fetcher
}

// NewSiteCollector returns a SiteCollector backed by the given fetcher.
func NewSiteCollector(fetcher *Fetcher) *SiteCollector {
	return &SiteCollector{fetcher: fetcher}
}
