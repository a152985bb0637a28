package adforensics

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"adhypo/domain/campaign"
)

// Dataset is a synthetic campaign performance table with planted signals.
//
// Planted signals:
// - Saturation: one campaign's CTR sits well under the low-CTR threshold
// - Offer mismatch: one campaign's ROAS stays below 0.5
// - Weekend lift: spend rises 40% on Saturdays and Sundays
type Dataset struct {
	Headers []string
	Rows    [][]string // already formatted/rounded strings
}

// Profile describes one synthetic campaign
type Profile struct {
	Name     string
	CTR      float64
	ROAS     float64
	Audience string
	Platform string
	Country  string
}

// DefaultProfiles plants one low-CTR and one low-ROAS campaign among healthy ones
var DefaultProfiles = []Profile{
	{Name: "Core Comfort", CTR: 0.031, ROAS: 2.6, Audience: "Broad", Platform: "Facebook", Country: "US"},
	{Name: "Everyday Basics", CTR: 0.024, ROAS: 1.7, Audience: "Lookalike", Platform: "Instagram", Country: "UK"},
	{Name: "Fresh Fit", CTR: 0.008, ROAS: 1.9, Audience: "Interest", Platform: "Facebook", Country: "US"},
	{Name: "Summer Sale", CTR: 0.027, ROAS: 0.35, Audience: "Retarget", Platform: "Instagram", Country: "IN"},
}

// creativePool maps creative types to the messages they rotate through
var creativePool = []struct {
	Type     string
	Messages []string
}{
	{"Image", []string{"Breathable cotton comfort", "All-day softness"}},
	{"Video", []string{"See the fit in motion", "Comfort that moves with you"}},
	{"UGC", []string{"Real customers, real comfort"}},
	{"Carousel", []string{"New season colours", "Bundle and save"}},
}

// Config controls dataset size and randomness
type Config struct {
	Days              int
	AdsetsPerCampaign int
	Seed              int64
	StartDate         time.Time
	Profiles          []Profile

	// Noise is the relative standard deviation applied to CTR and ROAS per row
	Noise float64
}

// DefaultConfig returns a four-campaign, two-week dataset
func DefaultConfig() Config {
	return Config{
		Days:              14,
		AdsetsPerCampaign: 2,
		Seed:              42,
		StartDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Profiles:          DefaultProfiles,
		Noise:             0.1,
	}
}

// Generate builds the dataset. The same config always yields the same rows.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be > 0")
	}
	if cfg.AdsetsPerCampaign <= 0 {
		return nil, fmt.Errorf("adsets per campaign must be > 0")
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("at least one campaign profile is required")
	}
	if cfg.Noise < 0 {
		return nil, fmt.Errorf("noise must be >= 0")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	rows := make([][]string, 0, cfg.Days*len(cfg.Profiles)*cfg.AdsetsPerCampaign)

	for d := 0; d < cfg.Days; d++ {
		date := cfg.StartDate.AddDate(0, 0, d)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		for ci, p := range cfg.Profiles {
			for a := 1; a <= cfg.AdsetsPerCampaign; a++ {
				impressions := 1500 + rng.Intn(3500)

				ctr := math.Max(0.001, p.CTR*(1+rng.NormFloat64()*cfg.Noise))
				clicks := int(math.Round(float64(impressions) * ctr))

				spend := 50 + rng.Float64()*150
				if weekend {
					spend *= 1.4
				}
				roas := math.Max(0.05, p.ROAS*(1+rng.NormFloat64()*cfg.Noise))
				revenue := spend * roas
				purchases := int(revenue / 40)

				creative := creativePool[(ci+a)%len(creativePool)]
				message := creative.Messages[rng.Intn(len(creative.Messages))]

				rows = append(rows, []string{
					p.Name,
					fmt.Sprintf("%s - Adset %d", p.Name, a),
					date.Format("2006-01-02"),
					fToStr(spend, 2),
					strconv.Itoa(impressions),
					strconv.Itoa(clicks),
					fToStr(float64(clicks)/float64(impressions), 4),
					strconv.Itoa(purchases),
					fToStr(revenue, 2),
					fToStr(revenue/spend, 2),
					creative.Type,
					message,
					p.Audience,
					p.Platform,
					p.Country,
				})
			}
		}
	}

	headers := make([]string, len(campaign.RequiredColumns))
	copy(headers, campaign.RequiredColumns)
	return &Dataset{Headers: headers, Rows: rows}, nil
}

// WriteCSV writes the dataset with a header row
func WriteCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(ds.Rows); err != nil {
		return err
	}
	return w.Error()
}

// WriteXLSX writes the dataset to the first sheet of a new workbook
func WriteXLSX(path string, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	if err := f.SetSheetRow(sheet, "A1", &ds.Headers); err != nil {
		return err
	}
	for r, row := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
