package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"adhypo/domain/core"
	"adhypo/domain/creative"
	"adhypo/domain/hypothesis"
	"adhypo/domain/verdict"
)

// Title heads every report
const Title = "Campaign Insight Report"

// Input is everything the report summarises
type Input struct {
	RunID           core.RunID
	Query           string
	Generated       int
	Validated       []hypothesis.Validated
	LowCTRCampaigns int
	Creatives       []creative.CampaignCreatives
}

// Build renders the plain-text report. Lines are joined with "\n" and the
// text carries no trailing newline.
func Build(in Input) string {
	accepted := 0
	for _, v := range in.Validated {
		if v.FinalVerdict == verdict.Accept {
			accepted++
		}
	}

	lines := []string{
		"# " + Title,
		fmt.Sprintf("Run ID: %s", in.RunID),
		fmt.Sprintf("Query: %s", in.Query),
		"",
		"## Executive Summary",
		fmt.Sprintf("- Hypotheses generated: %d", in.Generated),
		fmt.Sprintf("- Hypotheses accepted: %d", accepted),
		fmt.Sprintf("- Low-CTR campaigns: %d", in.LowCTRCampaigns),
		"",
		"## Hypotheses (brief)",
	}
	for _, v := range in.Validated {
		lines = append(lines, fmt.Sprintf("- %s: %s (verdict: %s, confidence: %.2f)",
			v.ID, v.Text, v.FinalVerdict, v.AdjustedConfidence))
	}

	lines = append(lines, "", "## Creative Recommendations (brief)")
	for _, c := range in.Creatives {
		lines = append(lines, fmt.Sprintf("- Campaign: %s, recommendations: %d variants",
			c.Campaign, len(c.Recommendations)))
	}

	return strings.Join(lines, "\n")
}

// RenderHTML converts report text into a standalone HTML page
func RenderHTML(text string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(text), p, renderer)
}
