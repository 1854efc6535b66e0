package job

import (
	"context"

	"github.com/twidpay/intellisearch/internal/service"
)

// ModelRefreshJob periodically rebuilds the global classifier model so
// feedback written by other instances is eventually picked up.
type ModelRefreshJob struct {
	refresher *service.RefreshService
}

func NewModelRefreshJob(refresher *service.RefreshService) *ModelRefreshJob {
	return &ModelRefreshJob{refresher: refresher}
}

func (j *ModelRefreshJob) Name() string {
	return "model_refresh"
}

func (j *ModelRefreshJob) Run(ctx context.Context) error {
	return j.refresher.Refresh(ctx)
}
