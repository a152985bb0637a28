package ports

import (
	"context"

	"adhypo/domain/campaign"
)

// DatasetLoaderPort reads the campaign performance table for one run
type DatasetLoaderPort interface {
	Load(ctx context.Context) ([]campaign.Row, error)
	// Source identifies where rows come from (file path), recorded in the run fingerprint
	Source() string
}
