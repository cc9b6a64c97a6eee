package api

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the training plan catalog.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type CreatePlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SetPlanExerciseRequest is the progression of one exercise in a plan.
// Amounts are repetitions or seconds, loads are kilograms.
type SetPlanExerciseRequest struct {
	StartingAmount float64 `json:"startingAmount" binding:"required,gte=1"`
	AmountPerWeek  float64 `json:"amountPerWeek" binding:"gte=0"`
	StartingLoad   float64 `json:"startingLoad" binding:"gte=0"`
	LoadPerWeek    float64 `json:"loadPerWeek" binding:"gte=0"`
}

type PlanResponse struct {
	ID          string                          `json:"id"`
	AuthorID    string                          `json:"authorId"`
	Name        string                          `json:"name"`
	Description string                          `json:"description,omitempty"`
	Exercises   map[string]schedule.Progression `json:"exercises"`
	CreatedAt   time.Time                       `json:"createdAt"`
	UpdatedAt   time.Time                       `json:"updatedAt"`
}

func MapPlanToResponse(plan *domain.TrainingPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	exercises := map[string]schedule.Progression(plan.Exercises)
	if exercises == nil {
		exercises = map[string]schedule.Progression{}
	}
	return PlanResponse{
		ID:          plan.ID.Hex(),
		AuthorID:    plan.AuthorID.Hex(),
		Name:        plan.Name,
		Description: plan.Description,
		Exercises:   exercises,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

func MapPlansToResponse(plans []domain.TrainingPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

// CreatePlan godoc
// @Summary Create an empty training plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} PlanResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), authorID, req.Name, req.Description)
	if err != nil {
		respondError(c, err, "Failed to create training plan.")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve training plans.")
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err, "Failed to retrieve training plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// SetExercise godoc
// @Summary Add an exercise to a plan or change its progression
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param name path string true "Exercise name"
// @Param progression body SetPlanExerciseRequest true "Progression"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} gin.H "Forbidden (not the plan author)"
// @Failure 404 {object} gin.H "Plan or exercise not found"
// @Router /plans/{id}/exercises/{name} [put]
func (h *PlanHandler) SetExercise(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req SetPlanExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.SetExercise(c.Request.Context(), authorID, planID, c.Param("name"), schedule.Progression{
		StartingAmount: req.StartingAmount,
		AmountPerWeek:  req.AmountPerWeek,
		StartingLoad:   req.StartingLoad,
		LoadPerWeek:    req.LoadPerWeek,
	})
	if err != nil {
		respondError(c, err, "Failed to update training plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) RemoveExercise(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.RemoveExercise(c.Request.Context(), authorID, planID, c.Param("name"))
	if err != nil {
		respondError(c, err, "Failed to update training plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// Equipment lists what an athlete needs to follow the plan.
func (h *PlanHandler) Equipment(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	equipment, err := h.planService.Equipment(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err, "Failed to retrieve plan equipment.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), authorID, planID); err != nil {
		respondError(c, err, "Failed to delete training plan.")
		return
	}
	c.Status(http.StatusNoContent)
}
