package referee

// referee_const.go
//
// Fixed standards used when checking a hypothesis against the aggregated
// campaign data. Changing any of them changes verdicts on existing datasets.

// ============================================================================
// 1. CTR GATE - Is the campaign meaningfully below the median?
// ============================================================================

const (
	// CTR_DELTA_CUTOFF: relative CTR delta vs. the dataset median must be
	// strictly below this value for the gap to count.
	CTR_DELTA_CUTOFF = -0.05

	// CTR_DELTA_WEIGHT: how much of a negative delta is added to confidence.
	CTR_DELTA_WEIGHT = 0.5

	// CTR_CONFIDENCE_CAP: ceiling for adjusted confidence on the CTR path.
	CTR_CONFIDENCE_CAP = 0.99
)

// ============================================================================
// 2. ROAS GATE - Is spend returning less than half its cost?
// ============================================================================

const (
	// ROAS_CUTOFF: campaign ROAS must be strictly below this value.
	ROAS_CUTOFF = 0.5

	// ROAS_GAP_WEIGHT: share of the gap below the cutoff added to confidence.
	ROAS_GAP_WEIGHT = 0.3

	// ROAS_CONFIDENCE_CAP: ceiling for adjusted confidence on the ROAS path.
	// Applies to the failing branch too.
	ROAS_CONFIDENCE_CAP = 0.95
)

// ============================================================================
// 3. SHARED
// ============================================================================

const (
	// FAILED_CHECK_DECAY: multiplier applied to confidence when the
	// evidence does not support the hypothesis.
	FAILED_CHECK_DECAY = 0.9
)
