package api

import (
	"net/http"

	"dkovalev/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	muscleService service.MuscleService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	workoutExerciseService service.WorkoutExerciseService,
	setService service.SetService,
) {
	authHandler := NewAuthHandler(authService)
	muscleHandler := NewMuscleHandler(muscleService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	workoutExerciseHandler := NewWorkoutExerciseHandler(workoutExerciseService)
	setHandler := NewSetHandler(setService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Muscle Catalog Routes ---
		muscleGroup := protected.Group("/muscles")
		{
			muscleGroup.POST("", muscleHandler.CreateMuscle)
			muscleGroup.GET("", muscleHandler.GetMuscles)
			muscleGroup.GET("/:id", muscleHandler.GetMuscle)
			muscleGroup.PUT("/:id", muscleHandler.UpdateMuscle)
			muscleGroup.DELETE("/:id", muscleHandler.DeleteMuscle)
		}

		// --- Exercise Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			// Presigned media upload/download
			exerciseGroup.POST("/:id/media", exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetMediaDownloadURL)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			// Ordered child collection of a workout
			workoutGroup.GET("/:id/workout-exercises", workoutExerciseHandler.GetWorkoutExercises)
		}

		// --- Workout Exercise Routes ---
		workoutExerciseGroup := protected.Group("/workout-exercises")
		{
			workoutExerciseGroup.POST("", workoutExerciseHandler.CreateWorkoutExercise)
			workoutExerciseGroup.GET("/:id", workoutExerciseHandler.GetWorkoutExercise)
			workoutExerciseGroup.PUT("/:id", workoutExerciseHandler.UpdateWorkoutExercise)
			workoutExerciseGroup.DELETE("/:id", workoutExerciseHandler.DeleteWorkoutExercise)
			// Ordered child collection of a workout-exercise
			workoutExerciseGroup.GET("/:id/sets", setHandler.GetSets)
			// Bulk reorder: all items commit or none do
			workoutExerciseGroup.PATCH("/update-workout-exercises-orders", workoutExerciseHandler.UpdateWorkoutExercisesOrders)
		}

		// --- Set Routes ---
		setGroup := protected.Group("/sets")
		{
			setGroup.POST("", setHandler.CreateSet)
			setGroup.GET("/:id", setHandler.GetSet)
			setGroup.PUT("/:id", setHandler.UpdateSet)
			setGroup.DELETE("/:id", setHandler.DeleteSet)
			// Bulk reorder: all items commit or none do
			setGroup.PATCH("/update-set-orders", setHandler.UpdateSetOrders)
		}
	}
}
