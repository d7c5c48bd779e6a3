package appointment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/testutil"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

var staff = Actor{AccountID: "staff-1", Role: "staff"}

type env struct {
	db    *gorm.DB
	repo  *repository.AppointmentGormRepository
	hub   *live.Hub
	clock timezone.FixedClock
	fx    *Effects

	book    *BookAppointment
	confirm *ConfirmAppointment
	reject  *RejectAppointment
	cancel  *CancelAppointment
	start   *StartAppointment
	track   *SetServiceState
	avail   *GetAvailability
}

// newEnv pins "now" to 2025-03-09 10:00 in the salon timezone, the day
// before the dates used throughout.
func newEnv(t *testing.T) *env {
	t.Helper()

	loc := timezone.Location(timezone.DefaultTimezone)
	return newEnvAt(t, time.Date(2025, 3, 9, 10, 0, 0, 0, loc))
}

func newEnvAt(t *testing.T, now time.Time) *env {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewAppointmentGormRepository(db)
	hub := live.NewHub()
	t.Cleanup(func() { _ = hub.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	clock := timezone.FixedClock{T: now}
	fx := &Effects{Live: hub, Log: log}
	schedule := domain.DefaultSchedule()

	return &env{
		db:    db,
		repo:  repo,
		hub:   hub,
		clock: clock,
		fx:    fx,

		book:    NewBookAppointment(repo, schedule, clock, fx),
		confirm: NewConfirmAppointment(repo, clock, fx),
		reject:  NewRejectAppointment(repo, clock, fx),
		cancel:  NewCancelAppointment(repo, clock, fx),
		start:   NewStartAppointment(repo, clock, fx),
		track:   NewSetServiceState(repo, clock, fx),
		avail:   NewGetAvailability(repo, schedule, clock),
	}
}

func (e *env) pet(t *testing.T, ownerID, name string) *models.Pet {
	t.Helper()
	p := &models.Pet{
		ID:      name + "-" + ownerID,
		OwnerID: ownerID,
		Name:    name,
		Breed:   "Golden Retriever",
		Photo:   "🐕",
		Age:     3,
		Weight:  28,
	}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *env) bookAt(t *testing.T, p *models.Pet, date, at string, services ...string) *models.Appointment {
	t.Helper()
	if len(services) == 0 {
		services = []string{"Baño Completo"}
	}
	ap, err := e.book.Execute(context.Background(), BookAppointmentInput{
		OwnerID:  p.OwnerID,
		PetID:    p.ID,
		Services: services,
		Date:     date,
		Time:     at,
	})
	require.NoError(t, err)
	return ap
}

// assertUniqueSlots checks that no two live appointments share a date and
// effective time.
func assertUniqueSlots(t *testing.T, db *gorm.DB) {
	t.Helper()
	var dupes int64
	require.NoError(t, db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT date, effective_time FROM appointments
			WHERE execution_status <> 'cancelled'
			GROUP BY date, effective_time HAVING COUNT(*) > 1
		) d`).Scan(&dupes).Error)
	require.Zero(t, dupes)
}

func shiftDays(e *env, days int) timezone.FixedClock {
	c := e.clock
	c.T = c.T.AddDate(0, 0, days)
	return c
}
