package api

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler serves an athlete's training schedules.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- DTOs ---

type CreateScheduleRequest struct {
	PlanID        string   `json:"planId" binding:"required"`
	StartDate     string   `json:"startDate" binding:"required"` // YYYY-MM-DD
	DurationWeeks int      `json:"durationWeeks" binding:"required,gte=1,lte=520"`
	TrainingDays  []string `json:"trainingDays" binding:"required,min=1,max=7"` // weekday names
	Notes         string   `json:"notes"`
}

type StrengthActivityRequest struct {
	Exercise string  `json:"exercise" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Reps     int     `json:"reps" binding:"gte=0"`
	Weight   float64 `json:"weight" binding:"gte=0"` // kg
}

// DurationActivityRequest is used for isometric and cardio activities.
type DurationActivityRequest struct {
	Exercise        string `json:"exercise" binding:"required"`
	Date            string `json:"date" binding:"required"`
	DurationSeconds int    `json:"durationSeconds" binding:"gte=0"`
}

type ScheduleResponse struct {
	ID            string            `json:"id"`
	AthleteID     string            `json:"athleteId"`
	PlanID        string            `json:"planId"`
	PlanName      string            `json:"planName"`
	Notes         string            `json:"notes,omitempty"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	DurationWeeks int               `json:"durationWeeks"`
	TrainingDays  []string          `json:"trainingDays"`
	Exercises     []string          `json:"exercises"`
	Version       int64             `json:"version"`
	Targets       schedule.Calendar `json:"targets,omitempty"`
	Actuals       schedule.Log      `json:"actuals,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type ActivityResponse struct {
	ID              string        `json:"id"`
	ScheduleID      string        `json:"scheduleId"`
	Kind            schedule.Kind `json:"kind"`
	Exercise        string        `json:"exercise"`
	Date            string        `json:"date"`
	Reps            int           `json:"reps,omitempty"`
	Weight          float64       `json:"weight,omitempty"`
	DurationSeconds int           `json:"durationSeconds,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type TrainingWeekResponse struct {
	Date        string `json:"date"`
	Week        int    `json:"week"`
	TrainingDay bool   `json:"trainingDay"`
}

// MapScheduleToResponse converts a schedule record. Targets and actuals are
// only included when withLogs is set.
func MapScheduleToResponse(ts *domain.TrainingSchedule, withLogs bool) ScheduleResponse {
	if ts == nil {
		return ScheduleResponse{}
	}
	resp := ScheduleResponse{
		ID:            ts.ID.Hex(),
		AthleteID:     ts.AthleteID.Hex(),
		PlanID:        ts.PlanID.Hex(),
		PlanName:      ts.PlanName,
		Notes:         ts.Notes,
		StartDate:     schedule.DateKey(ts.StartDate),
		EndDate:       schedule.DateKey(ts.EndDate()),
		DurationWeeks: ts.DurationWeeks,
		TrainingDays:  ts.TrainingDays.Names(),
		Exercises:     append([]string{}, ts.Exercises...),
		Version:       ts.Version,
		CreatedAt:     ts.CreatedAt,
		UpdatedAt:     ts.UpdatedAt,
	}
	if withLogs {
		resp.Targets = ts.Targets
		resp.Actuals = ts.Actuals
	}
	return resp
}

func MapSchedulesToResponse(schedules []domain.TrainingSchedule) []ScheduleResponse {
	responses := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = MapScheduleToResponse(&schedules[i], false)
	}
	return responses
}

func MapActivityToResponse(rec *domain.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ID:              rec.ID.Hex(),
		ScheduleID:      rec.ScheduleID.Hex(),
		Kind:            rec.Kind,
		Exercise:        rec.Exercise,
		Date:            schedule.DateKey(rec.Date),
		Reps:            rec.Reps,
		Weight:          rec.Weight,
		DurationSeconds: rec.DurationSeconds,
		CreatedAt:       rec.CreatedAt,
	}
}

// --- helpers ---

// dateQuery parses the required ?date= query parameter.
func dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'date' (YYYY-MM-DD) is required.")
		return time.Time{}, false
	}
	d, err := schedule.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return d, true
}

// scheduleRequest resolves the caller and the :id schedule parameter.
func scheduleRequest(c *gin.Context) (athleteID, scheduleID primitive.ObjectID, ok bool) {
	if scheduleID, ok = idParam(c, "id"); !ok {
		return
	}
	athleteID, ok = currentUserID(c)
	return
}

// --- Handler Methods ---

// CreateSchedule godoc
// @Summary Start a training schedule from a plan
// @Description Expands the plan into daily targets for the given weeks and training days.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body CreateScheduleRequest true "Schedule configuration"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {object} gin.H "Invalid configuration"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format.")
		return
	}
	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	days, err := schedule.ParseWeekdays(req.TrainingDays)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	athleteID, ok := currentUserID(c)
	if !ok {
		return
	}

	cfg := schedule.Config{StartDate: start, DurationWeeks: req.DurationWeeks, TrainingDays: days}
	ts, err := h.scheduleService.CreateSchedule(c.Request.Context(), athleteID, planID, cfg, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to create training schedule.")
		return
	}
	c.JSON(http.StatusCreated, MapScheduleToResponse(ts, false))
}

func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	athleteID, ok := currentUserID(c)
	if !ok {
		return
	}
	schedules, err := h.scheduleService.ListForAthlete(c.Request.Context(), athleteID)
	if err != nil {
		respondError(c, err, "Failed to retrieve training schedules.")
		return
	}
	c.JSON(http.StatusOK, MapSchedulesToResponse(schedules))
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	ts, err := h.scheduleService.GetSchedule(c.Request.Context(), athleteID, scheduleID)
	if err != nil {
		respondError(c, err, "Failed to retrieve training schedule.")
		return
	}
	c.JSON(http.StatusOK, MapScheduleToResponse(ts, true))
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteSchedule(c.Request.Context(), athleteID, scheduleID); err != nil {
		respondError(c, err, "Failed to delete training schedule.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) Summary(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	summary, err := h.scheduleService.Summary(c.Request.Context(), athleteID, scheduleID)
	if err != nil {
		respondError(c, err, "Failed to summarize training schedule.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Targets godoc
// @Summary Cumulative targets and loads due on a date
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} map[string]schedule.DailyTarget
// @Failure 422 {object} gin.H "Date outside the schedule"
// @Router /schedules/{id}/targets [get]
func (h *ScheduleHandler) Targets(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	targets, err := h.scheduleService.Targets(c.Request.Context(), athleteID, scheduleID, date)
	if err != nil {
		respondError(c, err, "Failed to compute targets.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": schedule.DateKey(date), "targets": targets})
}

// Analysis compares targets and actuals on a date. Dates outside the
// schedule are answered with outOfRange set instead of an error.
func (h *ScheduleHandler) Analysis(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	analysis, err := h.scheduleService.Analysis(c.Request.Context(), athleteID, scheduleID, date)
	if err != nil {
		respondError(c, err, "Failed to analyse training schedule.")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *ScheduleHandler) TrainingWeek(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	week, trainingDay, err := h.scheduleService.TrainingWeek(c.Request.Context(), athleteID, scheduleID, date)
	if err != nil {
		respondError(c, err, "Failed to compute training week.")
		return
	}
	c.JSON(http.StatusOK, TrainingWeekResponse{
		Date:        schedule.DateKey(date),
		Week:        week,
		TrainingDay: trainingDay,
	})
}

// RecordActivity godoc
// @Summary Record a strength, isometric or cardio activity
// @Description Re-recording the same exercise on the same date replaces the earlier value.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param kind path string true "strength, isometric or cardio"
// @Success 201 {object} ActivityResponse
// @Failure 400 {object} gin.H "Unsupported or mismatching kind"
// @Failure 403 {object} gin.H "Schedule belongs to another athlete"
// @Failure 422 {object} gin.H "Date outside the schedule"
// @Router /schedules/{id}/activities/{kind} [post]
func (h *ScheduleHandler) RecordActivity(c *gin.Context) {
	_, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	athleteID, _ := getUserIDFromContext(c)

	activity, ok := bindActivity(c, schedule.Kind(c.Param("kind")), athleteID)
	if !ok {
		return
	}

	record, err := h.scheduleService.RecordActivity(c.Request.Context(), scheduleID, activity)
	if err != nil {
		respondError(c, err, "Failed to record activity.")
		return
	}
	c.JSON(http.StatusCreated, MapActivityToResponse(record))
}

// bindActivity decodes the request body for kind into an activity of athlete.
func bindActivity(c *gin.Context, kind schedule.Kind, athlete string) (schedule.Activity, bool) {
	switch kind {
	case schedule.KindStrength:
		var req StrengthActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return schedule.Activity{}, false
		}
		date, err := schedule.ParseDate(req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return schedule.Activity{}, false
		}
		return schedule.NewStrength(req.Exercise, date, athlete, req.Reps, req.Weight), true

	case schedule.KindIsometric, schedule.KindCardio:
		var req DurationActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return schedule.Activity{}, false
		}
		date, err := schedule.ParseDate(req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return schedule.Activity{}, false
		}
		if kind == schedule.KindIsometric {
			return schedule.NewIsometric(req.Exercise, date, athlete, req.DurationSeconds), true
		}
		return schedule.NewCardio(req.Exercise, date, athlete, req.DurationSeconds), true

	default:
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("%s: %q", schedule.ErrUnsupportedKind, kind))
		return schedule.Activity{}, false
	}
}

func (h *ScheduleHandler) ListActivities(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	records, err := h.scheduleService.Activities(c.Request.Context(), athleteID, scheduleID)
	if err != nil {
		respondError(c, err, "Failed to retrieve activities.")
		return
	}
	responses := make([]ActivityResponse, len(records))
	for i := range records {
		responses[i] = MapActivityToResponse(&records[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Export uploads a report of the schedule and returns a temporary download link.
func (h *ScheduleHandler) Export(c *gin.Context) {
	athleteID, scheduleID, ok := scheduleRequest(c)
	if !ok {
		return
	}
	export, err := h.scheduleService.Export(c.Request.Context(), athleteID, scheduleID)
	if err != nil {
		respondError(c, err, "Failed to export training schedule.")
		return
	}
	c.JSON(http.StatusCreated, export)
}
