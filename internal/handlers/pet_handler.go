package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	ucPet "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/pet"
)

type PetHandler struct {
	pets *ucPet.Pets
}

func NewPetHandler(pets *ucPet.Pets) *PetHandler {
	return &PetHandler{pets: pets}
}

// --------- Requests ---------

type PetRequest struct {
	Name   string  `json:"name" binding:"required"`
	Breed  string  `json:"breed"`
	Age    float64 `json:"age"`
	Weight float64 `json:"weight"`
	Gender string  `json:"gender"`
	Color  string  `json:"color"`
	Photo  string  `json:"photo"`
	Notes  string  `json:"notes"`
}

func (r PetRequest) input() ucPet.PetInput {
	return ucPet.PetInput{
		Name:   r.Name,
		Breed:  r.Breed,
		Age:    r.Age,
		Weight: r.Weight,
		Gender: r.Gender,
		Color:  r.Color,
		Photo:  r.Photo,
		Notes:  r.Notes,
	}
}

// --------- Handlers ---------

func (h *PetHandler) List(c *gin.Context) {
	pets, err := h.pets.List(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	p, err := h.pets.Create(c.Request.Context(), middleware.AccountID(c), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PetHandler) Update(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	p, err := h.pets.Update(c.Request.Context(), middleware.AccountID(c), c.Param("id"), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PetHandler) Delete(c *gin.Context) {
	if err := h.pets.Delete(c.Request.Context(), middleware.AccountID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
