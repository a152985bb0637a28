package creative

import "adhypo/domain/core"

// Kind is the messaging angle of a creative variant.
type Kind string

const (
	KindBenefit   Kind = "benefit"
	KindSocial    Kind = "social"
	KindOffer     Kind = "offer"
	KindCuriosity Kind = "curiosity"
)

// Kinds is the fixed emission order of variants per campaign.
var Kinds = []Kind{KindBenefit, KindSocial, KindOffer, KindCuriosity}

// Variant is one templated copy suggestion.
type Variant struct {
	ID          core.VariantID `json:"id"`
	Headline    string         `json:"headline"`
	Body        string         `json:"body"`
	CTA         string         `json:"cta"`
	Rationale   string         `json:"rationale"`
	VariantType Kind           `json:"variant_type"`
	SeedNote    string         `json:"seed_note"`
}

// CampaignCreatives groups the variants proposed for one low-CTR campaign.
type CampaignCreatives struct {
	Campaign                  string    `json:"campaign"`
	LowCTR                    float64   `json:"low_ctr"`
	Recommendations           []Variant `json:"recommendations"`
	TopExistingMessagesSample []string  `json:"top_existing_messages_sample"`
}
