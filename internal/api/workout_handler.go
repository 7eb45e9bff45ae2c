package api

import (
	"errors"
	"net/http"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type WorkoutRequest struct {
	Name     string `json:"name" binding:"required"`
	Notes    string `json:"notes"`
	IsPublic bool   `json:"isPublic"`
}

type WorkoutResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutListResponse wraps a page of workouts with the total count.
type WorkoutListResponse struct {
	Items []WorkoutResponse `json:"items"`
	Total int64             `json:"total"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:        w.ID.Hex(),
		UserID:    w.UserID.Hex(),
		Name:      w.Name,
		Notes:     w.Notes,
		IsPublic:  w.IsPublic,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateWorkout creates a new workout for the authenticated user.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req.Name, req.Notes, req.IsPublic)
	if err != nil {
		h.handleWorkoutError(c, err, "Failed to create workout.")
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkouts retrieves a page of the authenticated user's workouts.
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	skip, take := parsePaginationQuery(c)

	workouts, total, err := h.workoutService.GetUserWorkouts(c.Request.Context(), userID, skip, take)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPagination) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	items := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		items[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, WorkoutListResponse{Items: items, Total: total})
}

// GetWorkout retrieves a workout visible to the requester (owned or public).
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, id)
	if err != nil {
		h.handleWorkoutError(c, err, "Failed to retrieve workout.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// UpdateWorkout modifies a workout owned by the authenticated user.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, id, req.Name, req.Notes, req.IsPublic)
	if err != nil {
		h.handleWorkoutError(c, err, "Failed to update workout.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout removes a workout owned by the authenticated user.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, id); err != nil {
		h.handleWorkoutError(c, err, "Failed to delete workout.")
		return
	}

	c.Status(http.StatusNoContent)
}

// handleWorkoutError maps service errors to HTTP status codes.
func (h *WorkoutHandler) handleWorkoutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidName):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
