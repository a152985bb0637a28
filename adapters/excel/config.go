package excel

import (
	"adhypo/adapters/datareadiness/coercer"
)

// ExcelConfig holds configuration for the tabular data source
type ExcelConfig struct {
	FilePath       string                 `json:"file_path"`
	SheetName      string                 `json:"sheet_name"` // empty selects the first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns sensible defaults for tabular processing
func DefaultExcelConfig(filePath string) ExcelConfig {
	return ExcelConfig{
		FilePath:       filePath,
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
