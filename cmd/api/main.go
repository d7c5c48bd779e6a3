package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/groomer-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/logging"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/routes"
	"github.com/BruksfildServices01/groomer-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

const (
	shutdownTimeout = 15 * time.Second
	limiterIdle     = 10 * time.Minute
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if !timezone.IsValid(cfg.Timezone) {
		log.WithField("timezone", cfg.Timezone).Fatal("invalid salon timezone")
	}
	clock := timezone.NewSalonClock(cfg.Timezone)

	schedule, err := config.LoadSchedule(cfg.ScheduleFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load schedule")
	}

	db := dbpkg.NewDB(cfg, log)
	broker := newBroker(cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	notifyDispatcher := notify.NewDispatcher(notify.LogSender{Log: log}, log)

	fx := &ucAppointment.Effects{
		Audit:  auditDispatcher,
		Live:   broker,
		Notify: notifyDispatcher,
		Log:    log,
	}

	limiter := middleware.NewRateLimiter(cfg.BookingRatePerSec, cfg.BookingRateBurst)

	// ======================================================
	// ⏰ BACKGROUND JOBS
	// ======================================================
	jobs := scheduler.New(log)

	expire := ucAppointment.NewExpirePending(
		infraRepo.NewAppointmentGormRepository(db),
		clock,
		fx,
		time.Duration(cfg.PendingExpiryHours)*time.Hour,
	)
	if expire.Enabled() {
		if err := jobs.Add("expire_pending", cfg.ExpirySweepSpec, expire); err != nil {
			log.WithError(err).Fatal("invalid expiry sweep spec")
		}
	}
	if err := jobs.Add("prune_rate_limits", "@every 5m", pruneJob{limiter}); err != nil {
		log.WithError(err).Fatal("failed to schedule limiter prune")
	}
	jobs.Start()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Clock:    clock,
		Schedule: schedule,
		Broker:   broker,
		Effects:  fx,
		Audit:    auditDispatcher,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	jobs.Stop(ctx)

	auditDispatcher.Close()
	notifyDispatcher.Close()
	if err := broker.Close(); err != nil {
		log.WithError(err).Warn("broker close")
	}
}

// newBroker prefers redis when configured and reachable, else the in-process hub.
func newBroker(cfg *config.Config, log *logrus.Logger) live.Broker {
	if cfg.RedisURL == "" {
		return live.NewHub()
	}

	rb, err := live.NewRedisBroker(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis disabled, using in-process hub")
		return live.NewHub()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rb.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unreachable, using in-process hub")
		_ = rb.Close()
		return live.NewHub()
	}

	log.Info("live updates over redis")
	return rb
}

type pruneJob struct {
	limiter *middleware.RateLimiter
}

func (j pruneJob) Execute(context.Context) (int, error) {
	return j.limiter.Prune(limiterIdle), nil
}
