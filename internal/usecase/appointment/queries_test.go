package appointment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
)

func TestNextUpcoming(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	max := e.pet(t, "owner-1", "Max")
	next := NewNextUpcoming(e.repo, e.clock)

	none, err := next.Execute(ctx, "owner-1")
	require.NoError(t, err)
	assert.Nil(t, none)

	far := e.bookAt(t, max, "2025-03-20", "09:00")
	late := e.bookAt(t, max, "2025-03-11", "16:00")
	early := e.bookAt(t, max, "2025-03-11", "14:00")
	_ = far

	got, err := next.Execute(ctx, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, early.ID, got.ID)

	_, err = e.cancel.Execute(ctx, "owner-1", early.ID)
	require.NoError(t, err)

	got, err = next.Execute(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, late.ID, got.ID)

	// a retimed confirmation competes on its effective time
	_, err = e.confirm.Execute(ctx, ConfirmAppointmentInput{Actor: staff, AppointmentID: far.ID, ConfirmedTime: "08:00"})
	require.NoError(t, err)
	got, err = next.Execute(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, late.ID, got.ID)

	// past appointments are ignored
	tomorrow := NewNextUpcoming(e.repo, shiftDays(e, 10))
	got, err = tomorrow.Execute(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, far.ID, got.ID)
}

func TestListMyAppointments(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	max := e.pet(t, "owner-1", "Max")
	uc := NewListMyAppointments(e.repo)

	pending := e.bookAt(t, max, "2025-03-10", "09:00")
	cancelled := e.bookAt(t, max, "2025-03-10", "09:30")
	done := e.bookAt(t, max, "2025-03-10", "10:00")
	_ = pending

	_, err := e.cancel.Execute(ctx, "owner-1", cancelled.ID)
	require.NoError(t, err)
	_, err = e.confirm.Execute(ctx, ConfirmAppointmentInput{Actor: staff, AppointmentID: done.ID})
	require.NoError(t, err)
	_, err = e.start.Execute(ctx, staff, done.ID)
	require.NoError(t, err)
	_, err = e.track.Execute(ctx, SetServiceStateInput{Actor: staff, AppointmentID: done.ID, Service: "Baño Completo", State: "completed"})
	require.NoError(t, err)

	all, err := uc.Execute(ctx, "owner-1", "")
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 3)
	assert.Equal(t, map[string]int{"all": 3, "upcoming": 1, "completed": 1, "cancelled": 1}, all.Counts)

	up, err := uc.Execute(ctx, "owner-1", FilterUpcoming)
	require.NoError(t, err)
	require.Len(t, up.Appointments, 1)
	assert.Equal(t, pending.ID, up.Appointments[0].ID)

	completed, err := uc.Execute(ctx, "owner-1", FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed.Appointments, 1)
	assert.Equal(t, 100, completed.Appointments[0].Progress)

	_, err = uc.Execute(ctx, "owner-1", "soon")
	assert.True(t, httperr.IsBusiness(err, "invalid_filter"))

	other, err := uc.Execute(ctx, "owner-2", "")
	require.NoError(t, err)
	assert.Empty(t, other.Appointments)
}

func TestStaffBoards(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	max := e.pet(t, "owner-1", "Max")

	a := e.bookAt(t, max, "2025-03-10", "16:00")
	e.bookAt(t, max, "2025-03-10", "09:00")
	c := e.bookAt(t, max, "2025-03-10", "11:00")
	e.bookAt(t, max, "2025-04-01", "11:00")

	_, err := e.confirm.Execute(ctx, ConfirmAppointmentInput{Actor: staff, AppointmentID: a.ID, ConfirmedTime: "08:30"})
	require.NoError(t, err)
	_, err = e.reject.Execute(ctx, RejectAppointmentInput{Actor: staff, AppointmentID: c.ID})
	require.NoError(t, err)

	day, err := NewListAppointmentsByDate(e.repo, e.clock).Execute(ctx, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "08:30", day[0].Time)
	assert.True(t, day[0].TimeWasModified)
	assert.Equal(t, "09:00", day[1].Time)

	month, err := NewListAppointmentsByMonth(e.repo).Execute(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = NewListAppointmentsByMonth(e.repo).Execute(ctx, 2025, 13)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	pending, err := NewListPendingRequests(e.repo).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestWatchAppointment(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	max := e.pet(t, "owner-1", "Max")
	ap := e.bookAt(t, max, "2025-03-10", "10:00")
	watch := NewWatchAppointment(e.repo, e.hub)

	_, _, err := watch.Execute(ctx, "owner-2", ap.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	current, sub, err := watch.Execute(ctx, "owner-1", ap.ID)
	require.NoError(t, err)
	defer sub.Close()
	assert.Equal(t, string(domain.ConfirmationPending), current.ConfirmationStatus)

	_, err = e.confirm.Execute(ctx, ConfirmAppointmentInput{Actor: staff, AppointmentID: ap.ID})
	require.NoError(t, err)

	select {
	case ev := <-sub.C:
		var view dto.AppointmentView
		require.NoError(t, json.Unmarshal(ev.Payload, &view))
		assert.Equal(t, ap.ID, view.ID)
		assert.Equal(t, string(domain.ExecutionConfirmed), view.ExecutionStatus)
	case <-time.After(time.Second):
		t.Fatal("no live update")
	}
}

func TestWatchDay(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	max := e.pet(t, "owner-1", "Max")
	e.bookAt(t, max, "2025-03-10", "10:00")

	watch := NewWatchDay(NewListAppointmentsByDate(e.repo, e.clock), e.hub)
	rows, sub, err := watch.Execute(ctx, "2025-03-10")
	require.NoError(t, err)
	defer sub.Close()
	assert.Len(t, rows, 1)

	e.bookAt(t, max, "2025-03-10", "11:00")

	select {
	case ev := <-sub.C:
		assert.Equal(t, "date:2025-03-10", ev.Topic)
	case <-time.After(time.Second):
		t.Fatal("no live update")
	}
}
