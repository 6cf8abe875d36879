package marketdata

import (
	"context"
	"time"
)

// RefreshJob periodically re-fetches the dataset so the first request
// after a quiet period does not pay the download cost.
type RefreshJob struct {
	service *Service
}

// NewRefreshJob creates a new dataset refresh job.
func NewRefreshJob(service *Service) *RefreshJob {
	return &RefreshJob{service: service}
}

// Name implements scheduler.Job.
func (j *RefreshJob) Name() string {
	return "dataset_refresh"
}

// Run implements scheduler.Job.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return j.service.Refresh(ctx)
}
