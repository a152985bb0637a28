package hypothesis

import (
	"encoding/json"

	"adhypo/domain/core"
	"adhypo/domain/verdict"
)

// Evidence is the numeric support attached to a hypothesis. Exactly one of
// CTREvidence, ROASEvidence or NoEvidence.
type Evidence interface {
	evidenceKind() string
}

// CTREvidence backs a click-through-rate hypothesis.
type CTREvidence struct {
	Campaign    string  `json:"campaign"`
	CTR         float64 `json:"ctr"`
	CTRVsMedian float64 `json:"ctr_vs_median"`
	Impressions int     `json:"impressions"`
}

// ROASEvidence backs a return-on-ad-spend hypothesis.
type ROASEvidence struct {
	Campaign string  `json:"campaign"`
	ROAS     float64 `json:"roas"`
}

// NoEvidence marks a hypothesis without numeric support.
type NoEvidence struct{}

func (CTREvidence) evidenceKind() string  { return "ctr" }
func (ROASEvidence) evidenceKind() string { return "roas" }
func (NoEvidence) evidenceKind() string   { return "none" }

// MarshalJSON renders an empty object.
func (NoEvidence) MarshalJSON() ([]byte, error) {
	return []byte("{}"), nil
}

// Kind returns "ctr", "roas" or "none" for e; nil counts as none.
func Kind(e Evidence) string {
	if e == nil {
		return NoEvidence{}.evidenceKind()
	}
	return e.evidenceKind()
}

// Hypothesis is a candidate explanation produced by the generator.
type Hypothesis struct {
	ID             core.HypothesisID `json:"id"`
	Text           string            `json:"text"`
	Confidence     float64           `json:"confidence"`
	Evidence       Evidence          `json:"evidence_summary"`
	RequiredChecks []string          `json:"required_checks"`
	Rationale      string            `json:"rationale"`
}

// Validation groups the ordered checks run against a hypothesis.
type Validation struct {
	Tests []verdict.TestResult `json:"tests"`
}

// Validated is a hypothesis after evaluation. The source hypothesis is not modified.
type Validated struct {
	ID                 core.HypothesisID `json:"id"`
	Text               string            `json:"text"`
	Evidence           Evidence          `json:"evidence"`
	Validation         Validation        `json:"validation"`
	AdjustedConfidence float64           `json:"adjusted_confidence"`
	FinalVerdict       verdict.Verdict   `json:"final_verdict"`
}

// Insights is the document written to the insights artifact.
type Insights struct {
	Hypotheses []Validated `json:"hypotheses"`
}

// evidenceJSON is the wire form used when reading run logs back from the ledger.
type evidenceJSON struct {
	Campaign    *string  `json:"campaign"`
	CTR         *float64 `json:"ctr"`
	CTRVsMedian *float64 `json:"ctr_vs_median"`
	Impressions *int     `json:"impressions"`
	ROAS        *float64 `json:"roas"`
}

// DecodeEvidence rebuilds the evidence variant from its JSON object form.
func DecodeEvidence(data []byte) (Evidence, error) {
	var raw evidenceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	campaign := ""
	if raw.Campaign != nil {
		campaign = *raw.Campaign
	}
	switch {
	case raw.CTR != nil:
		ev := CTREvidence{Campaign: campaign, CTR: *raw.CTR}
		if raw.CTRVsMedian != nil {
			ev.CTRVsMedian = *raw.CTRVsMedian
		}
		if raw.Impressions != nil {
			ev.Impressions = *raw.Impressions
		}
		return ev, nil
	case raw.ROAS != nil:
		return ROASEvidence{Campaign: campaign, ROAS: *raw.ROAS}, nil
	default:
		return NoEvidence{}, nil
	}
}

// UnmarshalJSON restores the evidence variant.
func (v *Validated) UnmarshalJSON(data []byte) error {
	type alias Validated
	aux := struct {
		*alias
		Evidence json.RawMessage `json:"evidence"`
	}{alias: (*alias)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Evidence) == 0 || string(aux.Evidence) == "null" {
		v.Evidence = NoEvidence{}
		return nil
	}
	ev, err := DecodeEvidence(aux.Evidence)
	if err != nil {
		return err
	}
	v.Evidence = ev
	return nil
}
