package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeCoercer handles deterministic coercion of raw cell text into typed values.
// Failures never raise: numbers fall back to zero and dates to nil.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules. With every flag off a cell must
// be a plain decimal or exponent literal; anything else coerces to zero.
type CoercionConfig struct {
	DateLayouts         []string `json:"date_layouts"`
	StripCurrency       bool     `json:"strip_currency"`       // Remove $, €, £, ¥ and ISO codes
	EuropeanDecimals    bool     `json:"european_decimals"`    // Treat 1.234,56 as 1234.56
	ThousandsSeparators bool     `json:"thousands_separators"` // Treat 1,234 and 1 234 as 1234
	AccountingNegatives bool     `json:"accounting_negatives"` // Treat (10) as -10
	PercentAsFraction   bool     `json:"percent_as_fraction"`  // Treat 5% as 0.05
}

var defaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// DefaultCoercionConfig returns strict numeric parsing
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{DateLayouts: defaultDateLayouts}
}

// LenientCoercionConfig also accepts spreadsheet-formatted numbers
func LenientCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts:         defaultDateLayouts,
		StripCurrency:       true,
		EuropeanDecimals:    true,
		ThousandsSeparators: true,
		AccountingNegatives: true,
		PercentAsFraction:   true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Float parses a cell as float64, returning 0.0 when it does not hold a finite number.
func (c *TypeCoercer) Float(raw string) float64 {
	if v, ok := c.tryParseNumeric(raw); ok {
		return v
	}
	return 0.0
}

// Int parses a cell as a count, truncating fractional parts toward zero.
// Unparsable values and values outside the int range become 0.
func (c *TypeCoercer) Int(raw string) int {
	v, ok := c.tryParseNumeric(raw)
	if !ok {
		return 0
	}
	v = math.Trunc(v)
	if v > math.MaxInt64/2 || v < math.MinInt64/2 {
		return 0
	}
	return int(v)
}

// Date parses a cell against the configured layouts; nil when none match.
func (c *TypeCoercer) Date(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// tryParseNumeric parses a finite number. The config flags opt into
// parentheses negatives, European decimals, thousands separators, currency
// symbols and percent signs.
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	// strconv also accepts hex floats
	if cleanVal == "" || strings.ContainsAny(cleanVal, "xX") {
		return 0, false
	}

	// (123) -> -123
	isNegative := false
	if c.config.AccountingNegatives && strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	if c.config.StripCurrency {
		for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"} {
			cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
		}
		cleanVal = strings.TrimSpace(cleanVal)
	}

	scale := 1.0
	if c.config.PercentAsFraction && strings.HasSuffix(cleanVal, "%") {
		cleanVal = strings.TrimSpace(strings.TrimSuffix(cleanVal, "%"))
		scale = 0.01
	}

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	switch {
	case c.config.EuropeanDecimals && hasComma && (hasPeriod || hasSpace):
		afterComma := cleanVal[strings.LastIndex(cleanVal, ",")+1:]
		if len(afterComma) <= 2 && isDigits(afterComma) {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else if c.config.ThousandsSeparators {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
		}
	case c.config.EuropeanDecimals && hasComma && !hasPeriod && isEuropeanDecimal(cleanVal):
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	case c.config.ThousandsSeparators:
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return 0, false
	}
	val *= scale
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// isEuropeanDecimal reports whether a lone comma separates one or two decimals, e.g. "0,5".
// "1,234" is read as a thousands separator instead.
func isEuropeanDecimal(s string) bool {
	if strings.Count(s, ",") != 1 {
		return false
	}
	after := s[strings.Index(s, ",")+1:]
	return len(after) > 0 && len(after) <= 2 && isDigits(after)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
