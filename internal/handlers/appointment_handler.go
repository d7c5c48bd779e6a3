package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

const streamHeartbeat = 25 * time.Second

// ======================================================
// HANDLER (client side)
// ======================================================

type AppointmentHandler struct {
	book   *ucAppointment.BookAppointment
	cancel *ucAppointment.CancelAppointment
	list   *ucAppointment.ListMyAppointments
	get    *ucAppointment.GetMyAppointment
	next   *ucAppointment.NextUpcoming
	watch  *ucAppointment.WatchAppointment
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListMyAppointments,
	get *ucAppointment.GetMyAppointment,
	next *ucAppointment.NextUpcoming,
	watch *ucAppointment.WatchAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		cancel: cancel,
		list:   list,
		get:    get,
		next:   next,
		watch:  watch,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PetID    string   `json:"pet_id"`
	Services []string `json:"services"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Notes    string   `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		OwnerID:  middleware.AccountID(c),
		PetID:    req.PetID,
		Services: req.Services,
		Date:     req.Date,
		Time:     req.Time,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentView(ap))
}

// ======================================================
// QUERIES
// ======================================================

// GET /api/me/appointments?filter=all|upcoming|completed|cancelled
func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), middleware.AccountID(c), c.Query("filter"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

// Next answers 204 when nothing is ahead.
func (h *AppointmentHandler) Next(c *gin.Context) {
	ap, err := h.next.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if ap == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointmentView(ap))
}

// ======================================================
// LIVE (server-sent events)
// ======================================================

// Live streams the appointment view: the current state first, then one
// event per committed write. The stream ends when the client goes away.
func (h *AppointmentHandler) Live(c *gin.Context) {
	ctx := c.Request.Context()

	ap, sub, err := h.watch.Execute(ctx, middleware.AccountID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer sub.Close()
	defer metrics.TrackSubscriber("sse")()

	initial, err := json.Marshal(dto.NewAppointmentView(ap))
	if err != nil {
		httperr.Internal(c, "encode_failed", "Ocurrió un error inesperado.")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("appointment", string(initial))
	c.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("appointment", string(ev.Payload))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
