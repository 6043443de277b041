package cmd

import (
	"github.com/sitegrade/sitegrade/core"
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/spf13/cobra"
)

// auditCmd runs the full marketing audit for one website.
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run a full digital marketing audit for a website.",
	Long: `Collect marketing signals for a website and score them into a 0-100 grade.

Six sections feed the final score:
- Business details (name, phones, address, contact path)
- Technology stack (analytics, pixels, chat widgets)
- Website performance (PageSpeed Insights, Core Web Vitals)
- Online reputation (Google and Facebook reviews)
- Search visibility (keyword rankings)
- Local listings (Google Business Profile)

Each section scores 0-100 and contributes a configured weight to the final
score. Collectors that fail or lack credentials degrade to a neutral score
instead of aborting the audit.

Examples:
  # Audit with derived keywords
  sitegrade audit acme-plumbing.com

  # Provide your own keywords and country
  sitegrade audit acme-plumbing.com --keywords "plumber austin,emergency plumber" --country us

  # Show the weight of each section in the final score
  sitegrade audit acme-plumbing.com --explain

  # Full report bundle with AI narrative
  sitegrade audit acme-plumbing.com --ai --html --excel

  # Skip the paid collectors
  sitegrade audit acme-plumbing.com --skip google,facebook,seo`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuditCommand(rootCtx, cfg, collectors, summarizer, store); err != nil {
			contract.LogFatal("Cannot run audit", err)
		}
	},
}
