package api

import (
	"errors"
	"net/http"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExerciseHandler holds the workout-exercise service dependency.
type WorkoutExerciseHandler struct {
	workoutExerciseService service.WorkoutExerciseService
}

// NewWorkoutExerciseHandler creates a new WorkoutExerciseHandler.
func NewWorkoutExerciseHandler(workoutExerciseService service.WorkoutExerciseService) *WorkoutExerciseHandler {
	return &WorkoutExerciseHandler{workoutExerciseService: workoutExerciseService}
}

// --- DTOs ---

type CreateWorkoutExerciseRequest struct {
	WorkoutID  string `json:"workoutId" binding:"required,len=24"`
	ExerciseID string `json:"exerciseId" binding:"required,len=24"`
	Notes      string `json:"notes"`
	// Order is optional; omitted means assign-on-insert.
	Order *int `json:"order" binding:"omitempty,gte=0"`
}

type UpdateWorkoutExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"omitempty,len=24"`
	Notes      string `json:"notes"`
	Order      *int   `json:"order" binding:"omitempty,gte=0"`
}

// OrderItemRequest is one {id, order} pair in a bulk reorder call.
type OrderItemRequest struct {
	ID    string `json:"id" binding:"required,len=24"`
	Order *int   `json:"order" binding:"required,gte=0"`
}

// UpdateOrdersRequest is the body of both bulk reorder endpoints.
type UpdateOrdersRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type WorkoutExerciseResponse struct {
	ID           string    `json:"id"`
	WorkoutID    string    `json:"workoutId"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Order        *int      `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WorkoutExerciseListResponse wraps a page with the total count.
type WorkoutExerciseListResponse struct {
	Items []WorkoutExerciseResponse `json:"items"`
	Total int64                     `json:"total"`
}

// MapWorkoutExerciseToResponse converts a domain.WorkoutExercise to its DTO.
func MapWorkoutExerciseToResponse(we *domain.WorkoutExercise) WorkoutExerciseResponse {
	if we == nil {
		return WorkoutExerciseResponse{}
	}
	return WorkoutExerciseResponse{
		ID:           we.ID.Hex(),
		WorkoutID:    we.WorkoutID.Hex(),
		ExerciseID:   we.ExerciseID.Hex(),
		ExerciseName: we.ExerciseName,
		Notes:        we.Notes,
		Order:        we.Order,
		CreatedAt:    we.CreatedAt,
		UpdatedAt:    we.UpdatedAt,
	}
}

// mapOrderItems converts reorder DTOs to service inputs.
func mapOrderItems(items []OrderItemRequest) []service.OrderItem {
	mapped := make([]service.OrderItem, len(items))
	for i, item := range items {
		mapped[i] = service.OrderItem{ID: item.ID, Order: *item.Order}
	}
	return mapped
}

// handleReorderError maps bulk-reorder errors to HTTP status codes. The
// error message carries the offending item's ID.
func handleReorderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderTargetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOrderAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidOrderValue):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		// Includes ErrOrderUpdateFailed: a store-level anomaly.
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// --- Handler Methods ---

// CreateWorkoutExercise adds a catalog exercise to a workout.
func (h *WorkoutExerciseHandler) CreateWorkoutExercise(c *gin.Context) {
	var req CreateWorkoutExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	workoutID, ok := parseObjectIDString(c, req.WorkoutID, "workoutId")
	if !ok {
		return
	}
	exerciseID, ok := parseObjectIDString(c, req.ExerciseID, "exerciseId")
	if !ok {
		return
	}

	workoutExercise, err := h.workoutExerciseService.AddExerciseToWorkout(c.Request.Context(), userID, workoutID, exerciseID, req.Notes, req.Order)
	if err != nil {
		h.handleWorkoutExerciseError(c, err, "Failed to add exercise to workout.")
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutExerciseToResponse(workoutExercise))
}

// GetWorkoutExercises lists a workout's exercises sorted by order
// ascending. Supports ?name= filtering and ?skip=&take= pagination.
func (h *WorkoutExerciseHandler) GetWorkoutExercises(c *gin.Context) {
	workoutID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	skip, take := parsePaginationQuery(c)

	workoutExercises, total, err := h.workoutExerciseService.GetWorkoutExercises(c.Request.Context(), userID, workoutID, c.Query("name"), skip, take)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPagination) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.handleWorkoutExerciseError(c, err, "Failed to retrieve workout exercises.")
		return
	}

	items := make([]WorkoutExerciseResponse, len(workoutExercises))
	for i := range workoutExercises {
		items[i] = MapWorkoutExerciseToResponse(&workoutExercises[i])
	}
	c.JSON(http.StatusOK, WorkoutExerciseListResponse{Items: items, Total: total})
}

// GetWorkoutExercise retrieves one workout-exercise by ID.
func (h *WorkoutExerciseHandler) GetWorkoutExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	workoutExercise, err := h.workoutExerciseService.GetWorkoutExercise(c.Request.Context(), userID, id)
	if err != nil {
		h.handleWorkoutExerciseError(c, err, "Failed to retrieve workout exercise.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutExerciseToResponse(workoutExercise))
}

// UpdateWorkoutExercise modifies a workout-exercise.
func (h *WorkoutExerciseHandler) UpdateWorkoutExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWorkoutExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	exerciseID := primitive.NilObjectID
	if req.ExerciseID != "" {
		exerciseID, ok = parseObjectIDString(c, req.ExerciseID, "exerciseId")
		if !ok {
			return
		}
	}

	workoutExercise, err := h.workoutExerciseService.UpdateWorkoutExercise(c.Request.Context(), userID, id, exerciseID, req.Notes, req.Order)
	if err != nil {
		h.handleWorkoutExerciseError(c, err, "Failed to update workout exercise.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutExerciseToResponse(workoutExercise))
}

// DeleteWorkoutExercise removes a workout-exercise.
func (h *WorkoutExerciseHandler) DeleteWorkoutExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.workoutExerciseService.DeleteWorkoutExercise(c.Request.Context(), userID, id); err != nil {
		h.handleWorkoutExerciseError(c, err, "Failed to delete workout exercise.")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateWorkoutExercisesOrders applies a bulk reorder batch atomically.
// Responds with a bare boolean: true when every item was applied.
func (h *WorkoutExerciseHandler) UpdateWorkoutExercisesOrders(c *gin.Context) {
	var req UpdateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.workoutExerciseService.UpdateOrders(c.Request.Context(), userID, mapOrderItems(req.Items)); err != nil {
		handleReorderError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// handleWorkoutExerciseError maps service errors to HTTP status codes.
func (h *WorkoutExerciseHandler) handleWorkoutExerciseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrWorkoutExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutExerciseAccessDenied),
		errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidOrderValue):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
