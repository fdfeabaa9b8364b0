package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/callguard/spam-checker/internal/domain"
)

const spamAnalysis = "This phone number has been flagged as SPAM by Nomorobo. " +
	"Recommend avoiding for outbound campaigns to prevent reputation damage."

const cleanAnalysis = "This phone number appears to be clean with no spam reports. " +
	"Safe to use for outbound communications."

var spamRecommendations = []string{
	"DO NOT USE for outbound calling or SMS campaigns",
	"Remove from marketing lists immediately",
	"Consider carrier filtering may block calls from this number",
	"Review other numbers from same carrier/range",
}

var cleanRecommendations = []string{
	"Safe to use for outbound campaigns",
	"Monitor for future reputation changes",
	"Include in regular reputation monitoring",
	"Consider as clean caller ID option",
}

// renderReport turns a cached result into the long-form markdown document
// served by the fetch tool. The narrative and recommendation block both
// branch on the spam verdict.
func renderReport(doc *domain.LookupResult) string {
	analysis := cleanAnalysis
	recommendations := cleanRecommendations
	if doc.SpamScore == 1 {
		analysis = spamAnalysis
		recommendations = spamRecommendations
	}

	checked := doc.CheckedAt.Format(time.RFC3339)

	var b strings.Builder
	b.WriteString("# Spam Analysis Report\n\n")
	fmt.Fprintf(&b, "## Phone Number: %s\n\n", doc.MaskedNumber)

	b.WriteString("### Reputation Summary\n")
	fmt.Fprintf(&b, "- **Spam Score**: %d (0 = Clean, 1 = Spam)\n", doc.SpamScore)
	fmt.Fprintf(&b, "- **Reputation**: %s\n", doc.Reputation)
	fmt.Fprintf(&b, "- **Confidence Level**: %s\n", doc.Confidence)
	fmt.Fprintf(&b, "- **Last Checked**: %s\n\n", checked)

	b.WriteString("### Phone Details\n")
	fmt.Fprintf(&b, "- **Carrier**: %s\n", doc.Carrier)
	fmt.Fprintf(&b, "- **Country**: %s\n", doc.CountryCode)
	fmt.Fprintf(&b, "- **Phone Type**: %s\n", doc.PhoneType)
	fmt.Fprintf(&b, "- **Data Source**: %s\n\n", doc.Source)

	b.WriteString("### Analysis\n")
	b.WriteString(analysis)
	b.WriteString("\n\n### Recommendations\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	b.WriteString("\n### Technical Details\n")
	fmt.Fprintf(&b, "- Document ID: %s\n", doc.ID)
	b.WriteString("- Cache Status: Active (TTL: 24 hours)\n")
	b.WriteString("- API Response Time: < 500ms\n")
	fmt.Fprintf(&b, "- Last Update: %s", checked)

	return b.String()
}
