package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

const (
	FilterAll       = "all"
	FilterUpcoming  = "upcoming"
	FilterCompleted = "completed"
	FilterCancelled = "cancelled"
)

func matchesFilter(ap *models.Appointment, filter string) bool {
	switch filter {
	case FilterUpcoming:
		return !domain.IsTerminal(ap)
	case FilterCompleted:
		return ap.ExecutionStatus == string(domain.ExecutionCompleted)
	case FilterCancelled:
		return ap.ExecutionStatus == string(domain.ExecutionCancelled)
	default:
		return true
	}
}

// ListMyAppointments is the client history, newest request first.
type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	ownerID string,
	filter string,
) (dto.MyAppointments, error) {

	if filter == "" {
		filter = FilterAll
	}
	switch filter {
	case FilterAll, FilterUpcoming, FilterCompleted, FilterCancelled:
	default:
		return dto.MyAppointments{}, httperr.Validation("invalid_filter", "filter")
	}

	apps, err := uc.repo.ListAppointmentsByOwner(ctx, ownerID)
	if err != nil {
		return dto.MyAppointments{}, err
	}

	out := dto.MyAppointments{
		Filter:       filter,
		Appointments: []dto.AppointmentView{},
		Counts: map[string]int{
			FilterAll:       0,
			FilterUpcoming:  0,
			FilterCompleted: 0,
			FilterCancelled: 0,
		},
	}

	for i := range apps {
		ap := &apps[i]
		for f := range out.Counts {
			if matchesFilter(ap, f) {
				out.Counts[f]++
			}
		}
		if matchesFilter(ap, filter) {
			out.Appointments = append(out.Appointments, dto.NewAppointmentView(ap))
		}
	}

	return out, nil
}

// GetMyAppointment hides other owners' appointments behind not found.
type GetMyAppointment struct {
	repo domain.Repository
}

func NewGetMyAppointment(repo domain.Repository) *GetMyAppointment {
	return &GetMyAppointment{repo: repo}
}

func (uc *GetMyAppointment) Execute(
	ctx context.Context,
	ownerID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.OwnerID != ownerID {
		return nil, httperr.NotFoundErr("appointment_not_found")
	}
	return ap, nil
}
