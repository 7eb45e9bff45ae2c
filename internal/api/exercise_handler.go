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

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise.
type ExerciseRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MuscleIDs   []string `json:"muscleIds" binding:"omitempty,dive,len=24"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MuscleIDs   []string  `json:"muscleIds,omitempty"`
	HasMedia    bool      `json:"hasMedia"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExerciseListResponse wraps a page of exercises with the total count.
type ExerciseListResponse struct {
	Items []ExerciseResponse `json:"items"`
	Total int64              `json:"total"`
}

// MediaUploadResponse carries a presigned PUT URL for attaching media.
type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MediaDownloadResponse carries a presigned GET URL for attached media.
type MediaDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// RequestMediaUploadRequest names the content type the client will send.
type RequestMediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:          ex.ID.Hex(),
		OwnerID:     ex.OwnerID.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		HasMedia:    ex.MediaObjectKey != "",
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
	if len(ex.MuscleIDs) > 0 {
		resp.MuscleIDs = make([]string, len(ex.MuscleIDs))
		for i, id := range ex.MuscleIDs {
			resp.MuscleIDs[i] = id.Hex()
		}
	}
	return resp
}

// --- Handler Methods ---

// CreateExercise creates a new exercise for the authenticated user.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	muscleIDs, err := parseMuscleIDs(req.MuscleIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), ownerID, req.Name, req.Description, muscleIDs)
	if err != nil {
		h.handleExerciseError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercises retrieves a page of the authenticated user's exercises.
// Supports ?name= filtering and ?skip=&take= pagination.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	ownerID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	skip, take := parsePaginationQuery(c)

	exercises, total, err := h.exerciseService.GetExercisesByOwner(c.Request.Context(), ownerID, c.Query("name"), skip, take)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPagination) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	items := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		items[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, ExerciseListResponse{Items: items, Total: total})
}

// GetExercise retrieves a single exercise by ID.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), id)
	if err != nil {
		h.handleExerciseError(c, err, "Failed to retrieve exercise.")
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise modifies an exercise owned by the authenticated user.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	muscleIDs, err := parseMuscleIDs(req.MuscleIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), ownerID, id, req.Name, req.Description, muscleIDs)
	if err != nil {
		h.handleExerciseError(c, err, "Failed to update exercise.")
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes an exercise owned by the authenticated user.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	ownerID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), ownerID, id); err != nil {
		h.handleExerciseError(c, err, "Failed to delete exercise.")
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestMediaUpload returns a presigned PUT URL for attaching demo media.
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req RequestMediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	upload, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), ownerID, id, req.ContentType)
	if err != nil {
		h.handleExerciseError(c, err, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, MediaUploadResponse{UploadURL: upload.UploadURL, ObjectKey: upload.ObjectKey})
}

// GetMediaDownloadURL returns a presigned GET URL for attached media.
func (h *ExerciseHandler) GetMediaDownloadURL(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.GetMediaDownloadURL(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoMediaAttached) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.handleExerciseError(c, err, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, MediaDownloadResponse{DownloadURL: url})
}

// handleExerciseError maps service errors to HTTP status codes.
func (h *ExerciseHandler) handleExerciseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMuscleNotFound):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidName):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseMuscleIDs converts hex strings to ObjectIDs.
func parseMuscleIDs(raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, len(raw))
	for i, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, errors.New("invalid muscle ID: " + s)
		}
		ids[i] = id
	}
	return ids, nil
}
