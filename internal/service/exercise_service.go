package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"
	"dkovalev/workout-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify this exercise")
	ErrMuscleNotFound       = errors.New("muscle not found")
	ErrNoMediaAttached      = errors.New("exercise has no media attached")
)

// Expiry for presigned media URLs handed to clients.
const mediaURLExpiry = 15 * time.Minute

// MediaUpload carries a presigned PUT URL and the object key it targets.
type MediaUpload struct {
	UploadURL string
	ObjectKey string
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name, description string, muscleIDs []primitive.ObjectID) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.Exercise, int64, error)
	UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, name, description string, muscleIDs []primitive.ObjectID) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error

	// RequestMediaUpload returns a presigned PUT URL for attaching demo
	// media to an exercise and records the object key on the record.
	RequestMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, contentType string) (*MediaUpload, error)
	// GetMediaDownloadURL returns a presigned GET URL for the exercise's
	// attached media.
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	muscleRepo   repository.MuscleRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, muscleRepo repository.MuscleRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		muscleRepo:   muscleRepo,
		fileStorage:  fileStorage,
	}
}

// CreateExercise creates a new catalog entry owned by the user.
func (s *exerciseService) CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name, description string, muscleIDs []primitive.ObjectID) (*domain.Exercise, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required")
	}
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}
	if err := s.verifyMuscles(ctx, muscleIDs); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		OwnerID:     ownerID,
		Name:        validName,
		Description: description,
		MuscleIDs:   muscleIDs,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExercise retrieves a single catalog entry. The catalog is readable
// by any authenticated user; only mutation is owner-gated.
func (s *exerciseService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetExercisesByOwner retrieves a page of the owner's exercises.
func (s *exerciseService) GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.Exercise, int64, error) {
	skip, take, err := domain.NewPagination(skip, take)
	if err != nil {
		return nil, 0, err
	}
	return s.exerciseRepo.GetByOwnerID(ctx, ownerID, nameFilter, skip, take)
}

// UpdateExercise modifies a catalog entry after checking ownership.
func (s *exerciseService) UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, name, description string, muscleIDs []primitive.ObjectID) (*domain.Exercise, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrExerciseAccessDenied
	}
	if err := s.verifyMuscles(ctx, muscleIDs); err != nil {
		return nil, err
	}

	exercise.Name = validName
	exercise.Description = description
	exercise.MuscleIDs = muscleIDs

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes a catalog entry and its attached media, if any.
func (s *exerciseService) DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.OwnerID != ownerID {
		return ErrExerciseAccessDenied
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	// Best effort: the record is gone either way, so an orphaned object
	// only costs storage.
	if exercise.MediaObjectKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, exercise.MediaObjectKey)
	}
	return nil
}

// RequestMediaUpload generates a presigned PUT URL for demo media.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, contentType string) (*MediaUpload, error) {
	if contentType == "" {
		return nil, errors.New("content type is required")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrExerciseAccessDenied
	}

	objectKey := fmt.Sprintf("exercises/%s/%s", exerciseID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, mediaURLExpiry)
	if err != nil {
		return nil, err
	}

	// Replace any previous media object.
	oldKey := exercise.MediaObjectKey
	exercise.MediaObjectKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	if oldKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, oldKey)
	}

	return &MediaUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// GetMediaDownloadURL generates a presigned GET URL for attached media.
func (s *exerciseService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}
	if exercise.MediaObjectKey == "" {
		return "", ErrNoMediaAttached
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, mediaURLExpiry)
}

// verifyMuscles checks that every referenced muscle exists in the catalog.
func (s *exerciseService) verifyMuscles(ctx context.Context, muscleIDs []primitive.ObjectID) error {
	for _, muscleID := range muscleIDs {
		if _, err := s.muscleRepo.GetByID(ctx, muscleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrMuscleNotFound, muscleID.Hex())
			}
			return err
		}
	}
	return nil
}
