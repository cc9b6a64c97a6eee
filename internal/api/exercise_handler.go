package api

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	catalogService service.CatalogService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(catalogService service.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService}
}

// --- DTOs for API (Data Transfer Objects) ---

type MuscleRequest struct {
	Name  string             `json:"name" binding:"required"`
	Group domain.MuscleGroup `json:"group" binding:"required"` // e.g., "Legs", "Core"
}

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name            string         `json:"name" binding:"required"`
	Description     string         `json:"description"`
	Kind            schedule.Kind  `json:"kind" binding:"required,oneof=strength isometric cardio"`
	PrimaryMuscle   MuscleRequest  `json:"primaryMuscle" binding:"required"`
	SecondaryMuscle *MuscleRequest `json:"secondaryMuscle" binding:"omitempty"`
	Equipment       []string       `json:"equipment"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID              string         `json:"id"`
	AuthorID        string         `json:"authorId"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Kind            schedule.Kind  `json:"kind"`
	PrimaryMuscle   domain.Muscle  `json:"primaryMuscle"`
	SecondaryMuscle *domain.Muscle `json:"secondaryMuscle,omitempty"`
	Equipment       []string       `json:"equipment"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type SimilarExercisesResponse struct {
	Exercise ExerciseResponse   `json:"exercise"`
	Similar  []ExerciseResponse `json:"similar"`
	Other    []ExerciseResponse `json:"other"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	equipment := ex.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return ExerciseResponse{
		ID:              ex.ID.Hex(),
		AuthorID:        ex.AuthorID.Hex(),
		Name:            ex.Name,
		Description:     ex.Description,
		Kind:            ex.Kind,
		PrimaryMuscle:   ex.PrimaryMuscle,
		SecondaryMuscle: ex.SecondaryMuscle,
		Equipment:       equipment,
		CreatedAt:       ex.CreatedAt,
		UpdatedAt:       ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 403 {object} gin.H "Forbidden (not a coach)"
// @Failure 409 {object} gin.H "Conflict (name already taken)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	input := service.ExerciseInput{
		Name:          req.Name,
		Description:   req.Description,
		Kind:          req.Kind,
		PrimaryMuscle: domain.Muscle{Name: req.PrimaryMuscle.Name, Group: req.PrimaryMuscle.Group},
		Equipment:     req.Equipment,
	}
	if req.SecondaryMuscle != nil {
		input.SecondaryMuscle = &domain.Muscle{Name: req.SecondaryMuscle.Name, Group: req.SecondaryMuscle.Group}
	}

	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), authorID, input)
	if err != nil {
		respondError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.catalogService.ListExercises(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	exercise, err := h.catalogService.GetExercise(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// SimilarExercises returns the catalog split into exercises sharing a muscle
// focus with the given one and the rest.
func (h *ExerciseHandler) SimilarExercises(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := h.catalogService.SimilarExercises(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve similar exercises.")
		return
	}
	c.JSON(http.StatusOK, SimilarExercisesResponse{
		Exercise: MapExerciseToResponse(result.Exercise),
		Similar:  MapExercisesToResponse(result.Similar),
		Other:    MapExercisesToResponse(result.Other),
	})
}
