package collect

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractBusinessInfo(t *testing.T) {
	html := `<html>
	<head>
		<title>Acme Plumbing | Springfield's Trusted Plumbers</title>
		<meta property="og:site_name" content="Acme Plumbing">
	</head>
	<body>
		<h1>Acme Plumbing</h1>
		<a href="tel:+1-555-010-0100">Call us</a>
		<p>Reach us at (555) 010-0100 or visit 12 Main Street, Springfield, IL 62704.</p>
		<p>Open Monday - Friday 8:00 am to 5:00 pm. Text us anytime.</p>
		<a href="/contact-us">Contact</a>
		<script src="/wp-content/themes/acme/app.js"></script>
	</body>
	</html>`

	info := ExtractBusinessInfo(docFromHTML(t, html), html)

	require.NotNil(t, info.BusinessName)
	assert.Equal(t, "Acme Plumbing", *info.BusinessName)
	assert.Len(t, info.Phones, 1) // tel: link and text mention share digits
	require.NotNil(t, info.Address)
	assert.Contains(t, *info.Address, "12 Main Street")
	require.NotNil(t, info.Hours)
	assert.Contains(t, strings.ToLower(*info.Hours), "monday")
	assert.True(t, info.TextEnabled)
	assert.True(t, info.ContactPage)
	require.NotNil(t, info.PlatformHint)
	assert.Equal(t, "Wordpress", *info.PlatformHint)
}

func TestExtractBusinessInfoSparsePage(t *testing.T) {
	html := `<html><head><title></title></head><body><p>Coming soon.</p></body></html>`

	info := ExtractBusinessInfo(docFromHTML(t, html), html)

	assert.Nil(t, info.BusinessName)
	assert.Empty(t, info.Phones)
	assert.Nil(t, info.Address)
	assert.Nil(t, info.Hours)
	assert.False(t, info.TextEnabled)
	assert.False(t, info.ContactPage)
	assert.Nil(t, info.PlatformHint)
}

func TestExtractBusinessNameFallbacks(t *testing.T) {
	t.Run("h1 when no og site name", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head><title>ignored</title></head><body><h1>  Smith &amp; Sons  </h1></body></html>`)
		assert.Equal(t, "Smith & Sons", extractBusinessName(doc))
	})

	t.Run("title tagline stripped", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head><title>Smith Dental | Gentle Care</title></head><body></body></html>`)
		assert.Equal(t, "Smith Dental", extractBusinessName(doc))
	})
}

func TestFindFacebookPage(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "real page link",
			html:     `<a href="https://www.facebook.com/acmeplumbing/">Facebook</a>`,
			expected: "https://www.facebook.com/acmeplumbing",
		},
		{
			name:     "share widget ignored",
			html:     `<a href="https://www.facebook.com/sharer/sharer.php?u=x">Share</a>`,
			expected: "",
		},
		{
			name:     "bare profile root ignored",
			html:     `<a href="https://facebook.com/">Facebook</a>`,
			expected: "",
		},
		{
			name:     "no facebook links",
			html:     `<a href="https://twitter.com/acme">Twitter</a>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docFromHTML(t, "<html><body>"+tt.html+"</body></html>")
			assert.Equal(t, tt.expected, FindFacebookPage(doc))
		})
	}
}
