package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"adhypo/domain/campaign"
)

// Default flagging thresholds
const (
	DefaultLowCTRThreshold = 0.015
	DefaultMinImpressions  = 1000

	// topMessageLimit caps the creative-message frequency ranking.
	topMessageLimit = 10
)

// Thresholds decide when a campaign counts as low-CTR.
type Thresholds struct {
	LowCTRThreshold float64
	MinImpressions  int
}

// DefaultThresholds returns the stock low-CTR thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowCTRThreshold: DefaultLowCTRThreshold,
		MinImpressions:  DefaultMinImpressions,
	}
}

// IsLowCTR reports whether an aggregate is flagged: CTR strictly below the
// threshold and impressions at or above the sample-size floor.
func (t Thresholds) IsLowCTR(a campaign.Aggregate) bool {
	return a.CTR < t.LowCTRThreshold && a.Impressions >= t.MinImpressions
}

// Aggregator turns loaded rows into the run's data summary
type Aggregator struct {
	thresholds Thresholds
	logger     *zap.Logger
}

// NewAggregator creates an aggregator with the given thresholds
func NewAggregator(thresholds Thresholds, logger *zap.Logger) *Aggregator {
	return &Aggregator{thresholds: thresholds, logger: logger.Named("aggregator")}
}

// Summarize groups rows by campaign, derives CTR/ROAS, flags low-CTR campaigns
// and ranks creative messages.
func (a *Aggregator) Summarize(rows []campaign.Row) *campaign.Summary {
	aggregates := AggregateCampaigns(rows)
	medianCTR := MedianCTR(aggregates)

	lowCTR := []campaign.Aggregate{}
	for i := range aggregates {
		aggregates[i].CTRVsMedian = aggregates[i].CTR - medianCTR
		if a.thresholds.IsLowCTR(aggregates[i]) {
			lowCTR = append(lowCTR, aggregates[i])
		}
	}

	dateMin, dateMax := dateRange(rows)
	summary := &campaign.Summary{
		Meta: campaign.SummaryMeta{
			NRows:           len(rows),
			DateMin:         dateMin,
			DateMax:         dateMax,
			NCampaigns:      len(aggregates),
			MedianCTR:       medianCTR,
			CTRDistribution: ctrDistribution(aggregates),
		},
		Campaigns:           aggregates,
		LowCTRCampaigns:     lowCTR,
		TopCreativeMessages: TopCreativeMessages(rows, topMessageLimit),
	}

	a.logger.Info("dataset summarized",
		zap.Int("rows", len(rows)),
		zap.Int("campaigns", len(aggregates)),
		zap.Int("low_ctr", len(lowCTR)),
		zap.Float64("median_ctr", medianCTR))

	return summary
}

// AggregateCampaigns sums rows per campaign name and derives the ratios.
// Rows without a campaign name belong to no campaign. Results are ordered by
// campaign name.
func AggregateCampaigns(rows []campaign.Row) []campaign.Aggregate {
	byName := make(map[string]*campaign.Aggregate)
	for _, r := range rows {
		if r.CampaignName == "" {
			continue
		}
		agg, ok := byName[r.CampaignName]
		if !ok {
			agg = &campaign.Aggregate{CampaignName: r.CampaignName}
			byName[r.CampaignName] = agg
		}
		agg.Impressions += r.Impressions
		agg.Clicks += r.Clicks
		agg.Spend += r.Spend
		agg.Revenue += r.Revenue
	}

	out := make([]campaign.Aggregate, 0, len(byName))
	for _, agg := range byName {
		// sums of huge cells can overflow to ±Inf
		agg.Spend = finiteOrZero(agg.Spend)
		agg.Revenue = finiteOrZero(agg.Revenue)
		agg.CTR = float64(agg.Clicks) / float64(nonZeroInt(agg.Impressions))
		agg.ROAS = finiteOrZero(agg.Revenue / nonZeroFloat(agg.Spend))
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampaignName < out[j].CampaignName })
	return out
}

// MedianCTR returns the median campaign CTR, 0.0 for an empty set.
func MedianCTR(aggregates []campaign.Aggregate) float64 {
	if len(aggregates) == 0 {
		return 0.0
	}
	median, err := stats.Median(ctrValues(aggregates))
	if err != nil {
		return 0.0
	}
	return median
}

// TopCreativeMessages counts creative-message labels over all rows and returns
// the n most frequent. Ties keep first-encountered order.
func TopCreativeMessages(rows []campaign.Row, n int) []campaign.MessageCount {
	index := make(map[string]int)
	counts := []campaign.MessageCount{}
	for _, r := range rows {
		if i, ok := index[r.CreativeMessage]; ok {
			counts[i].Count++
			continue
		}
		index[r.CreativeMessage] = len(counts)
		counts = append(counts, campaign.MessageCount{Message: r.CreativeMessage, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func ctrDistribution(aggregates []campaign.Aggregate) campaign.Distribution {
	if len(aggregates) == 0 {
		return campaign.Distribution{}
	}
	values := ctrValues(aggregates)
	dist := campaign.Distribution{
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
	if len(values) > 1 {
		dist.StdDev = stat.StdDev(values, nil)
	}
	return dist
}

func ctrValues(aggregates []campaign.Aggregate) []float64 {
	values := make([]float64, len(aggregates))
	for i, a := range aggregates {
		values[i] = a.CTR
	}
	return values
}

// dateRange returns the earliest and latest parsed row dates as YYYY-MM-DD, or nil.
func dateRange(rows []campaign.Row) (*string, *string) {
	var minDate, maxDate *string
	first := true
	var lo, hi string
	for _, r := range rows {
		if r.Date == nil {
			continue
		}
		d := r.Date.Format("2006-01-02")
		if first || d < lo {
			lo = d
		}
		if first || d > hi {
			hi = d
		}
		first = false
	}
	if !first {
		minDate, maxDate = &lo, &hi
	}
	return minDate, maxDate
}

// nonZeroInt substitutes 1 for a zero denominator.
func nonZeroInt(i int) int {
	if i == 0 {
		return 1
	}
	return i
}

// nonZeroFloat substitutes 1.0 for a zero denominator.
func nonZeroFloat(f float64) float64 {
	if f == 0 {
		return 1.0
	}
	return f
}

func finiteOrZero(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
