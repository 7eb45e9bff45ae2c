package api

import (
	"errors"
	"net/http"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetHandler holds the set service dependency.
type SetHandler struct {
	setService service.SetService
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(setService service.SetService) *SetHandler {
	return &SetHandler{setService: setService}
}

// --- DTOs ---

type CreateSetRequest struct {
	WorkoutExerciseID string  `json:"workoutExerciseId" binding:"required,len=24"`
	Reps              int     `json:"reps" binding:"required,gt=0"`
	Weight            float64 `json:"weight" binding:"gte=0"`
	// Order is optional; omitted means assign-on-insert.
	Order *int `json:"order" binding:"omitempty,gte=0"`
}

type UpdateSetRequest struct {
	Reps   int     `json:"reps" binding:"required,gt=0"`
	Weight float64 `json:"weight" binding:"gte=0"`
	Order  *int    `json:"order" binding:"omitempty,gte=0"`
}

type SetResponse struct {
	ID                string    `json:"id"`
	WorkoutExerciseID string    `json:"workoutExerciseId"`
	Reps              int       `json:"reps"`
	Weight            float64   `json:"weight"`
	Order             *int      `json:"order"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SetListResponse wraps a page of sets with the total count.
type SetListResponse struct {
	Items []SetResponse `json:"items"`
	Total int64         `json:"total"`
}

// MapSetToResponse converts a domain.Set to SetResponse DTO.
func MapSetToResponse(set *domain.Set) SetResponse {
	if set == nil {
		return SetResponse{}
	}
	return SetResponse{
		ID:                set.ID.Hex(),
		WorkoutExerciseID: set.WorkoutExerciseID.Hex(),
		Reps:              set.Reps,
		Weight:            set.Weight,
		Order:             set.Order,
		CreatedAt:         set.CreatedAt,
		UpdatedAt:         set.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateSet records a set under a workout-exercise.
func (h *SetHandler) CreateSet(c *gin.Context) {
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	workoutExerciseID, ok := parseObjectIDString(c, req.WorkoutExerciseID, "workoutExerciseId")
	if !ok {
		return
	}

	set, err := h.setService.AddSet(c.Request.Context(), userID, workoutExerciseID, req.Reps, req.Weight, req.Order)
	if err != nil {
		h.handleSetError(c, err, "Failed to create set.")
		return
	}

	c.JSON(http.StatusCreated, MapSetToResponse(set))
}

// GetSets lists a workout-exercise's sets sorted by order ascending.
// Supports ?skip=&take= pagination.
func (h *SetHandler) GetSets(c *gin.Context) {
	workoutExerciseID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	skip, take := parsePaginationQuery(c)

	sets, total, err := h.setService.GetSets(c.Request.Context(), userID, workoutExerciseID, skip, take)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPagination) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.handleSetError(c, err, "Failed to retrieve sets.")
		return
	}

	items := make([]SetResponse, len(sets))
	for i := range sets {
		items[i] = MapSetToResponse(&sets[i])
	}
	c.JSON(http.StatusOK, SetListResponse{Items: items, Total: total})
}

// GetSet retrieves one set by ID.
func (h *SetHandler) GetSet(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	set, err := h.setService.GetSet(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSetError(c, err, "Failed to retrieve set.")
		return
	}

	c.JSON(http.StatusOK, MapSetToResponse(set))
}

// UpdateSet modifies a set.
func (h *SetHandler) UpdateSet(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	set, err := h.setService.UpdateSet(c.Request.Context(), userID, id, req.Reps, req.Weight, req.Order)
	if err != nil {
		h.handleSetError(c, err, "Failed to update set.")
		return
	}

	c.JSON(http.StatusOK, MapSetToResponse(set))
}

// DeleteSet removes a set.
func (h *SetHandler) DeleteSet(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.setService.DeleteSet(c.Request.Context(), userID, id); err != nil {
		h.handleSetError(c, err, "Failed to delete set.")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateSetOrders applies a bulk reorder batch atomically. Responds with
// a bare boolean: true when every item was applied.
func (h *SetHandler) UpdateSetOrders(c *gin.Context) {
	var req UpdateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.setService.UpdateOrders(c.Request.Context(), userID, mapOrderItems(req.Items)); err != nil {
		handleReorderError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// handleSetError maps service errors to HTTP status codes.
func (h *SetHandler) handleSetError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrWorkoutExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSetAccessDenied),
		errors.Is(err, service.ErrWorkoutExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidSetReps),
		errors.Is(err, domain.ErrInvalidSetWeight),
		errors.Is(err, domain.ErrInvalidOrderValue):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
