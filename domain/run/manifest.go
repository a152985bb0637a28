package run

import (
	"fmt"

	"adhypo/domain/core"
)

// RunFingerprint captures every input that determines a run's output. Two runs
// with equal fingerprints over the same file produce the same hypotheses,
// verdicts and creatives; run_id and generated_at still differ.
type RunFingerprint struct {
	DataPath        string    `json:"data_path"`
	LowCTRThreshold float64   `json:"low_ctr_threshold"`
	MinImpressions  int       `json:"min_impressions"`
	Seed            int64     `json:"seed"`
	CodeVersion     string    `json:"code_version"`
	Fingerprint     core.Hash `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(dataPath string, lowCTRThreshold float64, minImpressions int, seed int64, codeVersion string) RunFingerprint {
	return RunFingerprint{
		DataPath:        dataPath,
		LowCTRThreshold: lowCTRThreshold,
		MinImpressions:  minImpressions,
		Seed:            seed,
		CodeVersion:     codeVersion,
		Fingerprint:     computeRunFingerprint(dataPath, lowCTRThreshold, minImpressions, seed, codeVersion),
	}
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(dataPath string, lowCTRThreshold float64, minImpressions int, seed int64, codeVersion string) core.Hash {
	data := fmt.Sprintf("data:%s|low_ctr:%g|min_impr:%d|seed:%d|code:%s",
		dataPath, lowCTRThreshold, minImpressions, seed, codeVersion)
	return core.NewHash([]byte(data))
}
