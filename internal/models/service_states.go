package models

import "github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"

type ServiceState string

const (
	ServicePending    ServiceState = "pending"
	ServiceInProgress ServiceState = "in_progress"
	ServiceCompleted  ServiceState = "completed"
)

// rank orders states so transitions can only move forward.
func (s ServiceState) rank() int {
	switch s {
	case ServicePending:
		return 0
	case ServiceInProgress:
		return 1
	case ServiceCompleted:
		return 2
	default:
		return -1
	}
}

func (s ServiceState) Valid() bool {
	return s.rank() >= 0
}

// Before reports whether s comes strictly earlier than other in the
// pending → in_progress → completed progression.
func (s ServiceState) Before(other ServiceState) bool {
	return s.rank() < other.rank()
}

// ServiceStates tracks per-service progress. Its keys are exactly the
// appointment's selected services.
type ServiceStates map[catalog.ServiceID]ServiceState

func NewServiceStates(services catalog.ServiceList) ServiceStates {
	out := make(ServiceStates, len(services))
	for _, id := range services {
		out[id] = ServicePending
	}
	return out
}

func (s ServiceStates) CompletedCount() int {
	n := 0
	for _, st := range s {
		if st == ServiceCompleted {
			n++
		}
	}
	return n
}

func (s ServiceStates) AllCompleted() bool {
	return len(s) > 0 && s.CompletedCount() == len(s)
}
