package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER (public, no session)
// ======================================================

type CatalogHandler struct {
	availability *ucAppointment.GetAvailability
}

func NewCatalogHandler(availability *ucAppointment.GetAvailability) *CatalogHandler {
	return &CatalogHandler{availability: availability}
}

// GET /api/catalog?category=&query=
func (h *CatalogHandler) List(c *gin.Context) {
	services := catalog.List(c.Query("category"), c.Query("query"))
	httpresp.List(c, dto.NewServiceDTOs(services))
}

// GET /api/catalog/totals?services=Baño Completo,Corte de Pelo
func (h *CatalogHandler) Totals(c *gin.Context) {
	var names []string
	for _, raw := range strings.Split(c.Query("services"), ",") {
		if n := strings.TrimSpace(raw); n != "" {
			names = append(names, n)
		}
	}

	list, err := catalog.Resolve(names)
	if err != nil {
		httperr.Respond(c, httperr.Validation("unknown_service", "services"))
		return
	}

	t := list.Totals()
	httpresp.OK(c, dto.TotalsDTO{
		Services:    list.Names(),
		Price:       t.Price,
		DurationMin: t.DurationMin,
		Duration:    t.Duration,
	})
}

// GET /api/availability?date=YYYY-MM-DD
func (h *CatalogHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.Respond(c, httperr.Validation("date_required", "date"))
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{Date: date})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
