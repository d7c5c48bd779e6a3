package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
)

// ListPendingRequests is the staff triage queue, oldest request first.
type ListPendingRequests struct {
	repo domain.Repository
}

func NewListPendingRequests(repo domain.Repository) *ListPendingRequests {
	return &ListPendingRequests{repo: repo}
}

func (uc *ListPendingRequests) Execute(ctx context.Context) ([]dto.AppointmentView, error) {
	apps, err := uc.repo.ListPendingConfirmation(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentViews(apps), nil
}
