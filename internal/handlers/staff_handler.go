package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// ======================================================
// HANDLER (staff side)
// ======================================================

type StaffHandler struct {
	confirm *ucAppointment.ConfirmAppointment
	reject  *ucAppointment.RejectAppointment
	start   *ucAppointment.StartAppointment
	track   *ucAppointment.SetServiceState
	pending *ucAppointment.ListPendingRequests
	byDate  *ucAppointment.ListAppointmentsByDate
	byMonth *ucAppointment.ListAppointmentsByMonth
	watch   *ucAppointment.WatchDay

	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewStaffHandler(
	confirm *ucAppointment.ConfirmAppointment,
	reject *ucAppointment.RejectAppointment,
	start *ucAppointment.StartAppointment,
	track *ucAppointment.SetServiceState,
	pending *ucAppointment.ListPendingRequests,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	watch *ucAppointment.WatchDay,
	log *logrus.Logger,
) *StaffHandler {
	return &StaffHandler{
		confirm: confirm,
		reject:  reject,
		start:   start,
		track:   track,
		pending: pending,
		byDate:  byDate,
		byMonth: byMonth,
		watch:   watch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is enforced by CORSMiddleware; the staff token gates access.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func actorOf(c *gin.Context) ucAppointment.Actor {
	return ucAppointment.Actor{
		AccountID: middleware.AccountID(c),
		Role:      middleware.Role(c),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ConfirmRequest struct {
	ConfirmedTime string `json:"confirmed_time"`
	StaffNotes    string `json:"staff_notes"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ServiceStateRequest struct {
	State string `json:"state" binding:"required"`
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *StaffHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
			return
		}
	}

	ap, err := h.confirm.Execute(c.Request.Context(), ucAppointment.ConfirmAppointmentInput{
		Actor:         actorOf(c),
		AppointmentID: c.Param("id"),
		ConfirmedTime: req.ConfirmedTime,
		StaffNotes:    req.StaffNotes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

func (h *StaffHandler) Reject(c *gin.Context) {
	var req RejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
			return
		}
	}

	ap, err := h.reject.Execute(c.Request.Context(), ucAppointment.RejectAppointmentInput{
		Actor:         actorOf(c),
		AppointmentID: c.Param("id"),
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

func (h *StaffHandler) Start(c *gin.Context) {
	ap, err := h.start.Execute(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

// PATCH /api/staff/appointments/:id/services/:service {"state": "completed"}
func (h *StaffHandler) SetServiceState(c *gin.Context) {
	var req ServiceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_service_state", "state"))
		return
	}

	ap, err := h.track.Execute(c.Request.Context(), ucAppointment.SetServiceStateInput{
		Actor:         actorOf(c),
		AppointmentID: c.Param("id"),
		Service:       c.Param("service"),
		State:         req.State,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

// ======================================================
// BOARDS
// ======================================================

func (h *StaffHandler) Pending(c *gin.Context) {
	out, err := h.pending.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// GET /api/staff/appointments?date=YYYY-MM-DD (defaults to today)
func (h *StaffHandler) ListByDate(c *gin.Context) {
	out, err := h.byDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// GET /api/staff/appointments/month?year=2025&month=3
func (h *StaffHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.Respond(c, httperr.Validation("invalid_year", "year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.Respond(c, httperr.Validation("invalid_month", "month"))
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// LIVE (websocket day board)
// ======================================================

type boardMessage struct {
	Type         string                   `json:"type"`
	Date         string                   `json:"date,omitempty"`
	Appointments []dto.AppointmentListDTO `json:"appointments,omitempty"`
	Appointment  any                      `json:"appointment,omitempty"`
}

// Live sends the day board as a snapshot, then every change on that date.
// Closing the socket unsubscribes.
func (h *StaffHandler) Live(c *gin.Context) {
	ctx := c.Request.Context()

	rows, sub, err := h.watch.Execute(ctx, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	defer metrics.TrackSubscriber("websocket")()

	// reader: only pongs and close frames are expected
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(v any) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v)
	}

	date := c.Query("date")
	if len(rows) > 0 {
		date = rows[0].Date
	}
	if err := write(boardMessage{Type: "snapshot", Date: date, Appointments: rows}); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if err := write(boardMessage{Type: "appointment", Appointment: json.RawMessage(ev.Payload)}); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
