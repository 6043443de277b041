package core

import (
	"context"
	"errors"
	"testing"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBusiness struct{ info *schema.BusinessInfo }

func (f *fakeBusiness) CollectBusinessInfo(_ context.Context, _ string) (*schema.BusinessInfo, error) {
	return f.info, nil
}

type fakeTech struct{ stack *schema.TechStack }

func (f *fakeTech) CollectTechStack(_ context.Context, _ string) (*schema.TechStack, error) {
	return f.stack, nil
}

type fakePageSpeed struct {
	speed *schema.PageSpeed
	err   error
}

func (f *fakePageSpeed) CollectPageSpeed(_ context.Context, _ string) (*schema.PageSpeed, error) {
	return f.speed, f.err
}

type fakeGoogle struct {
	reviews    *schema.GoogleReviews
	searchTerm string
}

func (f *fakeGoogle) CollectGoogleReviews(_ context.Context, searchTerm, _, _ string) (*schema.GoogleReviews, error) {
	f.searchTerm = searchTerm
	return f.reviews, nil
}

type fakeFacebook struct {
	pageURL string
	reviews *schema.FacebookReviews
}

func (f *fakeFacebook) CollectFacebookURL(_ context.Context, _ string) (string, error) {
	return f.pageURL, nil
}

func (f *fakeFacebook) CollectFacebookReviews(_ context.Context, _ string) (*schema.FacebookReviews, error) {
	return f.reviews, nil
}

type fakeSEO struct {
	visibility *schema.SEOVisibility
	keywords   []string
}

func (f *fakeSEO) CollectSEOVisibility(_ context.Context, _ string, keywords []string, _, _ string) (*schema.SEOVisibility, error) {
	f.keywords = keywords
	return f.visibility, nil
}

type fakeSummarizer struct {
	summary string
	err     error
	called  bool
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ *schema.AuditRecord, _ float64, _ schema.Grade) (string, error) {
	f.called = true
	return f.summary, f.err
}

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		URL:      "https://acmeplumbing.example",
		Domain:   "acmeplumbing.example",
		Keywords: []string{"plumber springfield"},
		Skip:     map[string]bool{},
		Weights:  schema.DefaultWeights(),
	}
}

func healthySet(google *fakeGoogle, seo *fakeSEO) contract.CollectorSet {
	return contract.CollectorSet{
		Business: &fakeBusiness{info: &schema.BusinessInfo{
			BusinessName: schema.Ptr("Acme Plumbing"),
			Phones:       []string{"+1 555 0100"},
			ContactPage:  true,
		}},
		Tech:      &fakeTech{stack: &schema.TechStack{GTM: true, GA4: true}},
		PageSpeed: &fakePageSpeed{speed: &schema.PageSpeed{MobileScore: schema.Ptr(55.0), DesktopScore: schema.Ptr(90.0)}},
		Google:    google,
		Facebook: &fakeFacebook{
			pageURL: "https://facebook.com/acmeplumbing",
			reviews: &schema.FacebookReviews{Total: schema.Ptr(9)},
		},
		SEO: seo,
	}
}

// TestExecuteAuditFullPipeline walks a healthy record through the whole
// pipeline and pins the weighted result end to end.
func TestExecuteAuditFullPipeline(t *testing.T) {
	google := &fakeGoogle{reviews: &schema.GoogleReviews{
		GBPClaimed: schema.Ptr(true),
		GBPRating:  schema.Ptr(4.5),
		Total:      schema.Ptr(40),
	}}
	seo := &fakeSEO{visibility: &schema.SEOVisibility{VisibilityScore: schema.Ptr(40.0)}}

	result, err := ExecuteAudit(context.Background(), testConfig(t), healthySet(google, seo), nil)
	require.NoError(t, err)

	// business 80*.15 + tech 50*.15 + perf 72.5*.20 +
	// reputation 100*.20 + seo 40*.20 + listings 100*.10
	assert.Equal(t, 72.0, result.Final.FinalScore)
	assert.Equal(t, "B", result.Grade.Letter)
	assert.Equal(t, "Low–Medium", result.Grade.RiskLevel)

	// Collectors received the derived identity and the configured keywords.
	assert.Equal(t, "Acme Plumbing", google.searchTerm)
	assert.Equal(t, []string{"plumber springfield"}, seo.keywords)
	assert.Equal(t, []string{"plumber springfield"}, result.Keywords)

	// Report table reflects presence and aliasing rules. Techno Stack aliases
	// the performance section score (72.5), while Overall rounds the final.
	assert.Equal(t, 72, result.Report[schema.CategoryOverall])
	assert.Equal(t, 100, result.Report[schema.CategoryBusiness])
	assert.Equal(t, 100, result.Report[schema.CategoryGBP])
	assert.Equal(t, 73, result.Report[schema.CategoryTechno])
	assert.Equal(t, 0, result.Report[schema.CategoryListings])
	assert.False(t, result.ScrapeDate.IsZero())
}

// TestExecuteAuditCollectorFailureDegrades verifies a failing collector
// produces a nil sub-record and a neutral score, never an error.
func TestExecuteAuditCollectorFailureDegrades(t *testing.T) {
	google := &fakeGoogle{reviews: &schema.GoogleReviews{Total: schema.Ptr(1)}}
	seo := &fakeSEO{visibility: &schema.SEOVisibility{VisibilityScore: schema.Ptr(40.0)}}
	set := healthySet(google, seo)
	set.PageSpeed = &fakePageSpeed{err: errors.New("psi quota exceeded")}

	result, err := ExecuteAudit(context.Background(), testConfig(t), set, nil)
	require.NoError(t, err)

	assert.Nil(t, result.Record.PageSpeed)
	assert.Equal(t, schema.NeutralScore, result.Sections[schema.SectionPerformance])
}

func TestExecuteAuditSkipsCollectors(t *testing.T) {
	google := &fakeGoogle{reviews: &schema.GoogleReviews{Total: schema.Ptr(1)}}
	seo := &fakeSEO{visibility: &schema.SEOVisibility{VisibilityScore: schema.Ptr(90.0)}}
	cfg := testConfig(t)
	cfg.Skip[contract.CollectorGoogle] = true
	cfg.Skip[contract.CollectorFacebook] = true

	result, err := ExecuteAudit(context.Background(), cfg, healthySet(google, seo), nil)
	require.NoError(t, err)

	assert.Nil(t, result.Record.GoogleReviews)
	assert.Nil(t, result.Record.FacebookReviews)
	assert.Equal(t, "", google.searchTerm)
	assert.Equal(t, schema.NeutralScore, result.Sections[schema.SectionReputation])
	assert.Equal(t, 40.0, result.Sections[schema.SectionListings])
}

func TestExecuteAuditNilCollectorsStillScores(t *testing.T) {
	result, err := ExecuteAudit(context.Background(), testConfig(t), contract.CollectorSet{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Sections[schema.SectionBusiness])
	assert.Equal(t, schema.NeutralScore, result.Sections[schema.SectionPerformance])
	assert.GreaterOrEqual(t, result.Final.FinalScore, 0.0)
	assert.LessOrEqual(t, result.Final.FinalScore, 100.0)
	assert.NotEmpty(t, result.Grade.Letter)
}

func TestExecuteAuditSummarizer(t *testing.T) {
	google := &fakeGoogle{reviews: &schema.GoogleReviews{Total: schema.Ptr(1)}}
	seo := &fakeSEO{visibility: &schema.SEOVisibility{VisibilityScore: schema.Ptr(40.0)}}

	t.Run("disabled without flag", func(t *testing.T) {
		sum := &fakeSummarizer{summary: "looks fine"}
		result, err := ExecuteAudit(context.Background(), testConfig(t), healthySet(google, seo), sum)
		require.NoError(t, err)
		assert.False(t, sum.called)
		assert.Empty(t, result.AISummary)
	})

	t.Run("attached when enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.AI = true
		sum := &fakeSummarizer{summary: "looks fine"}
		result, err := ExecuteAudit(context.Background(), cfg, healthySet(google, seo), sum)
		require.NoError(t, err)
		assert.True(t, sum.called)
		assert.Equal(t, "looks fine", result.AISummary)
	})

	t.Run("failure is non-fatal", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.AI = true
		sum := &fakeSummarizer{err: errors.New("rate limited")}
		result, err := ExecuteAudit(context.Background(), cfg, healthySet(google, seo), sum)
		require.NoError(t, err)
		assert.Empty(t, result.AISummary)
	})
}

func TestExecuteAuditCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteAudit(ctx, testConfig(t), contract.CollectorSet{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
