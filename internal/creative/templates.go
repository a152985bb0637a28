package creative

import "adhypo/domain/creative"

// template holds the copy for one variant kind. Headline is a format string
// taking the campaign name.
type template struct {
	Headline  string
	Body      string
	CTA       string
	Rationale string
}

var templates = map[creative.Kind]template{
	creative.KindBenefit: {
		Headline:  "%s: Comfort & Fit You Can Trust",
		Body:      "Discover superior comfort engineered for every day. Free shipping on first order.",
		CTA:       "Shop Comfort",
		Rationale: "Benefit-led messaging to highlight product USP.",
	},
	creative.KindSocial: {
		Headline:  "Why Customers Love %s",
		Body:      "Thousands rated us 4.5+ for comfort and durability. See what they say.",
		CTA:       "Read Reviews",
		Rationale: "Social proof angle to build trust.",
	},
	creative.KindOffer: {
		Headline:  "Limited Offer - %s 20%% Off",
		Body:      "Limited-time discount. Try our best-selling undergarments - satisfaction guaranteed.",
		CTA:       "Claim Offer",
		Rationale: "Offer-driven message to boost CTR with urgency.",
	},
	creative.KindCuriosity: {
		Headline:  "What's New with %s?",
		Body:      "A surprising feature customers love - see why it's trending now.",
		CTA:       "Learn More",
		Rationale: "Curiosity-driven messaging to increase clicks.",
	},
}
