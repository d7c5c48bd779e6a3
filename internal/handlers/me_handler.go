package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the identity the session collaborator supplied.
func (h *MeHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"account_id": middleware.AccountID(c),
		"role":       middleware.Role(c),
	})
}
