package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/logging"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
	ucPet "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/pet"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logrus.Logger
	Clock    timezone.Clock
	Schedule *domain.Schedule
	Broker   live.Broker
	Effects  *ucAppointment.Effects
	Audit    ucPet.Auditor
	Limiter  *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(logging.Middleware(d.Log, middleware.ContextAccountID))
	r.Use(metrics.Middleware())

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	petRepo := infraRepo.NewPetGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, d.Schedule, d.Clock, d.Effects)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Clock, d.Effects)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Clock, d.Effects)
	rejectUC := ucAppointment.NewRejectAppointment(appointmentRepo, d.Clock, d.Effects)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, d.Clock, d.Effects)
	trackUC := ucAppointment.NewSetServiceState(appointmentRepo, d.Clock, d.Effects)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Schedule, d.Clock)
	byDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, d.Clock)
	byMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	pendingUC := ucAppointment.NewListPendingRequests(appointmentRepo)
	mineUC := ucAppointment.NewListMyAppointments(appointmentRepo)
	getMineUC := ucAppointment.NewGetMyAppointment(appointmentRepo)
	nextUC := ucAppointment.NewNextUpcoming(appointmentRepo, d.Clock)
	watchUC := ucAppointment.NewWatchAppointment(appointmentRepo, d.Broker)
	watchDayUC := ucAppointment.NewWatchDay(byDateUC, d.Broker)

	petsUC := ucPet.NewPets(petRepo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(availabilityUC)
	salonHandler := handlers.NewSalonHandler(d.Schedule, d.Clock, d.Config.PendingExpiryHours)
	meHandler := handlers.NewMeHandler()
	petHandler := handlers.NewPetHandler(petsUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		mineUC,
		getMineUC,
		nextUC,
		watchUC,
	)

	staffHandler := handlers.NewStaffHandler(
		confirmUC,
		rejectUC,
		startUC,
		trackUC,
		pendingUC,
		byDateUC,
		byMonthUC,
		watchDayUC,
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC
		// ------------------------------
		api.GET("/catalog", catalogHandler.List)
		api.GET("/catalog/totals", catalogHandler.Totals)
		api.GET("/availability", catalogHandler.Availability)
		api.GET("/schedule", salonHandler.Schedule)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// 🐕 CLIENT
			// ------------------------------
			client := secured.Group("/me")
			client.Use(middleware.RequireRole(middleware.RoleClient))
			{
				client.GET("/pets", petHandler.List)
				client.POST("/pets", petHandler.Create)
				client.PATCH("/pets/:id", petHandler.Update)
				client.DELETE("/pets/:id", petHandler.Delete)

				booking := []gin.HandlerFunc{appointmentHandler.Create}
				if d.Limiter != nil {
					booking = append([]gin.HandlerFunc{d.Limiter.Middleware()}, booking...)
				}
				client.POST("/appointments", booking...)
				client.GET("/appointments", appointmentHandler.List)
				client.GET("/appointments/next", appointmentHandler.Next)
				client.GET("/appointments/:id", appointmentHandler.Get)
				client.GET("/appointments/:id/live", appointmentHandler.Live)
				client.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			}

			// ------------------------------
			// ✂️ STAFF
			// ------------------------------
			staff := secured.Group("/staff")
			staff.Use(middleware.RequireRole(middleware.RoleStaff))
			{
				staff.GET("/appointments/pending", staffHandler.Pending)
				staff.GET("/appointments", staffHandler.ListByDate)
				staff.GET("/appointments/month", staffHandler.ListByMonth)
				staff.GET("/appointments/live", staffHandler.Live)
				staff.PATCH("/appointments/:id/confirm", staffHandler.Confirm)
				staff.PATCH("/appointments/:id/reject", staffHandler.Reject)
				staff.PATCH("/appointments/:id/start", staffHandler.Start)
				staff.PATCH("/appointments/:id/services/:service", staffHandler.SetServiceState)

				staff.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
