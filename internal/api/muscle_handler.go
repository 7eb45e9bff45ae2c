package api

import (
	"errors"
	"net/http"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// MuscleHandler holds the muscle service dependency.
type MuscleHandler struct {
	muscleService service.MuscleService
}

// NewMuscleHandler creates a new MuscleHandler.
func NewMuscleHandler(muscleService service.MuscleService) *MuscleHandler {
	return &MuscleHandler{muscleService: muscleService}
}

// --- DTOs ---

type MuscleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type MuscleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapMuscleToResponse converts a domain.Muscle to MuscleResponse DTO.
func MapMuscleToResponse(m *domain.Muscle) MuscleResponse {
	if m == nil {
		return MuscleResponse{}
	}
	return MuscleResponse{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateMuscle adds an entry to the shared muscle catalog.
func (h *MuscleHandler) CreateMuscle(c *gin.Context) {
	var req MuscleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	muscle, err := h.muscleService.CreateMuscle(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMuscleAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInvalidName):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create muscle.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMuscleToResponse(muscle))
}

// GetMuscles returns the full catalog.
func (h *MuscleHandler) GetMuscles(c *gin.Context) {
	muscles, err := h.muscleService.GetMuscles(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscles.")
		return
	}

	responses := make([]MuscleResponse, len(muscles))
	for i := range muscles {
		responses[i] = MapMuscleToResponse(&muscles[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetMuscle returns a single catalog entry.
func (h *MuscleHandler) GetMuscle(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	muscle, err := h.muscleService.GetMuscle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMuscleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle.")
		}
		return
	}

	c.JSON(http.StatusOK, MapMuscleToResponse(muscle))
}

// UpdateMuscle modifies a catalog entry.
func (h *MuscleHandler) UpdateMuscle(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req MuscleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	muscle, err := h.muscleService.UpdateMuscle(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMuscleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidName):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update muscle.")
		}
		return
	}

	c.JSON(http.StatusOK, MapMuscleToResponse(muscle))
}

// DeleteMuscle removes a catalog entry.
func (h *MuscleHandler) DeleteMuscle(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.muscleService.DeleteMuscle(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMuscleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete muscle.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
