package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// ExpirePending rejects requests nobody triaged within maxAge. A zero or
// negative maxAge disables expiry.
type ExpirePending struct {
	repo   domain.Repository
	clock  timezone.Clock
	fx     *Effects
	maxAge time.Duration
}

func NewExpirePending(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
	maxAge time.Duration,
) *ExpirePending {
	return &ExpirePending{repo: repo, clock: clock, fx: fx, maxAge: maxAge}
}

func (uc *ExpirePending) Enabled() bool {
	return uc.maxAge > 0
}

// Execute returns how many requests were expired. A request that staff
// touched concurrently is skipped, not failed.
func (uc *ExpirePending) Execute(ctx context.Context) (int, error) {
	if !uc.Enabled() {
		return 0, nil
	}

	now := uc.clock.Now()
	stale, err := uc.repo.ListPendingCreatedBefore(ctx, now.Add(-uc.maxAge).UTC())
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		ap := &stale[i]

		if err := domain.Expire(ap, now); err != nil {
			continue
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			if httperr.KindOf(err) == httperr.KindInvalidState {
				continue
			}
			return expired, err
		}

		expired++
		uc.fx.committed(ctx, System, "expired", ap, map[string]any{"created_at": ap.CreatedAt})
		uc.fx.notify(notify.KindRejected, ap)
	}

	metrics.RecordExpired(expired)
	return expired, nil
}
