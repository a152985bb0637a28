package campaign

import "time"

// RequiredColumns lists the header names every dataset must carry, in report order.
var RequiredColumns = []string{
	"campaign_name", "adset_name", "date", "spend", "impressions",
	"clicks", "ctr", "purchases", "revenue", "roas",
	"creative_type", "creative_message", "audience_type", "platform", "country",
}

// Row is one campaign/day/adset record after coercion.
type Row struct {
	CampaignName    string
	AdsetName       string
	Date            *time.Time // nil when the source value did not parse
	Spend           float64
	Impressions     int
	Clicks          int
	CTR             float64
	Purchases       int
	Revenue         float64
	ROAS            float64
	CreativeType    string
	CreativeMessage string
	AudienceType    string
	Platform        string
	Country         string
}

// Aggregate holds per-campaign totals and derived ratios.
type Aggregate struct {
	CampaignName string  `json:"campaign_name"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	CTR          float64 `json:"ctr"`
	Spend        float64 `json:"spend"`
	Revenue      float64 `json:"revenue"`
	ROAS         float64 `json:"roas"`
	CTRVsMedian  float64 `json:"ctr_vs_median"`
}

// MessageCount is one entry of the creative-message frequency ranking.
type MessageCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Distribution summarises the spread of campaign CTRs.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SummaryMeta is the dataset-level metadata of a run.
type SummaryMeta struct {
	NRows           int          `json:"n_rows"`
	DateMin         *string      `json:"date_min"`
	DateMax         *string      `json:"date_max"`
	NCampaigns      int          `json:"n_campaigns"`
	MedianCTR       float64      `json:"median_ctr"`
	CTRDistribution Distribution `json:"ctr_distribution"`
}

// Summary is everything downstream stages read from the loaded dataset.
type Summary struct {
	Meta                SummaryMeta    `json:"summary_meta"`
	Campaigns           []Aggregate    `json:"campaigns"`
	LowCTRCampaigns     []Aggregate    `json:"low_ctr_campaigns"`
	TopCreativeMessages []MessageCount `json:"top_creative_messages"`
}

// TopMessageLabels returns up to n labels from the frequency ranking, in rank order.
func (s *Summary) TopMessageLabels(n int) []string {
	labels := make([]string, 0, n)
	for _, mc := range s.TopCreativeMessages {
		if len(labels) == n {
			break
		}
		labels = append(labels, mc.Message)
	}
	return labels
}
