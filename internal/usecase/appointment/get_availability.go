package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	schedule *domain.Schedule
	clock    timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	schedule *domain.Schedule,
	clock timezone.Clock,
) *GetAvailability {
	return &GetAvailability{repo: repo, schedule: schedule, clock: clock}
}

// Execute subtracts every live effective time on the date from the base
// schedule. An empty list means fully booked.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.Availability, error) {

	if _, err := timezone.ParseDate(uc.clock, in.Date); err != nil {
		return domain.Availability{}, httperr.Validation("invalid_date", "date")
	}

	taken, err := uc.repo.ListTakenTimes(ctx, in.Date)
	if err != nil {
		return domain.Availability{}, err
	}

	slots := domain.FreeSlots(uc.schedule.Slots(), taken)
	return domain.Availability{
		Date:  in.Date,
		Slots: slots,
		Full:  len(slots) == 0,
	}, nil
}
