package httperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond translates a use-case error into the JSON error contract.
// Store failures never leak their raw text to the client.
func Respond(c *gin.Context, err error) {
	be, ok := As(err)
	if !ok {
		Internal(c, "internal_error", "Ocurrió un error inesperado.")
		return
	}

	switch be.Kind {
	case KindValidation:
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    be.Code,
			Message: "Datos inválidos.",
			Field:   be.Field,
		})
	case KindSlotTaken:
		msg := "Horario no disponible. Consulta los horarios libres."
		if be.Detail != "" {
			msg = fmt.Sprintf("Ya existe una cita para %s en este horario.", be.Detail)
		}
		Write(c, http.StatusConflict, be.Code, msg)
	case KindInvalidState:
		Write(c, http.StatusConflict, be.Code, "La cita cambió de estado. Actualiza e intenta de nuevo.")
	case KindNotFound:
		NotFound(c, be.Code, "Recurso no encontrado.")
	case KindUnavailable:
		Write(c, http.StatusServiceUnavailable, be.Code, "Servicio no disponible temporalmente. Intenta de nuevo.")
	default:
		Internal(c, "internal_error", "Ocurrió un error inesperado.")
	}
}
