package pipeline

import (
	"context"

	"iggallery/pkg/models"
)

// MediaFetcher defines the fetch stage of a run
type MediaFetcher interface {
	FetchMedia(ctx context.Context, accountID string, limit int) ([]models.MediaRecord, error)
}
