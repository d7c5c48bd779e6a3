package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// NextUpcoming picks the owner's live appointment closest to today. Ties on
// the same date go to the earliest effective time.
type NextUpcoming struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewNextUpcoming(repo domain.Repository, clock timezone.Clock) *NextUpcoming {
	return &NextUpcoming{repo: repo, clock: clock}
}

// Execute returns nil when there is nothing ahead.
func (uc *NextUpcoming) Execute(ctx context.Context, ownerID string) (*models.Appointment, error) {
	apps, err := uc.repo.ListAppointmentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var (
		best     *models.Appointment
		bestDays int
	)
	for i := range apps {
		ap := &apps[i]
		if ap.ExecutionStatus == string(domain.ExecutionCancelled) {
			continue
		}
		days, err := timezone.DaysUntil(uc.clock, ap.Date)
		if err != nil || days < 0 {
			continue
		}

		if best == nil ||
			days < bestDays ||
			(days == bestDays && domain.EffectiveTime(ap) < domain.EffectiveTime(best)) {
			best, bestDays = ap, days
		}
	}

	return best, nil
}
