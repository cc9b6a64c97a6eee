package service

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/metrics"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrScheduleNotFound     = errors.New("training schedule not found")
	ErrScheduleAccessDenied = errors.New("access denied to this training schedule")
	ErrKindMismatch         = errors.New("activity kind does not match the exercise kind")
	ErrConcurrentUpdate     = errors.New("schedule was modified concurrently, retry")
	ErrExportFailed         = errors.New("failed to export schedule")
)

// ScheduleSummary is the overview of a schedule.
type ScheduleSummary struct {
	ScheduleID        string    `json:"scheduleId"`
	PlanName          string    `json:"planName"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	DurationWeeks     int       `json:"durationWeeks"`
	TrainingDays      []string  `json:"trainingDays"`
	Exercises         []string  `json:"exercises"`
	RecordedCount     int       `json:"recordedCount"`
	RecordedExercises []string  `json:"recordedExercises"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ScheduleAnalysis compares targets and actuals on one date. Outside the
// schedule OutOfRange is set, Week is 0 and targets read as zero.
type ScheduleAnalysis struct {
	Date       string                                   `json:"date"`
	Week       int                                      `json:"week"`
	OutOfRange bool                                     `json:"outOfRange"`
	Absolute   map[string]schedule.Comparison           `json:"absolute"`
	Cumulative map[string]schedule.CumulativeComparison `json:"cumulative"`
}

type ScheduleService interface {
	CreateSchedule(ctx context.Context, athleteID, planID primitive.ObjectID, cfg schedule.Config, notes string) (*domain.TrainingSchedule, error)
	GetSchedule(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*domain.TrainingSchedule, error)
	ListForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSchedule, error)
	DeleteSchedule(ctx context.Context, athleteID, scheduleID primitive.ObjectID) error

	Summary(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*ScheduleSummary, error)
	Targets(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (map[string]schedule.DailyTarget, error)
	Analysis(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (*ScheduleAnalysis, error)
	// TrainingWeek returns the 1-based week of date and whether it is a training day.
	TrainingWeek(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (week int, trainingDay bool, err error)

	// RecordActivity stores the activity in the schedule's actual log. The
	// activity's athlete must own the schedule.
	RecordActivity(ctx context.Context, scheduleID primitive.ObjectID, activity schedule.Activity) (*domain.ActivityRecord, error)
	Activities(ctx context.Context, athleteID, scheduleID primitive.ObjectID) ([]domain.ActivityRecord, error)

	Export(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*domain.ScheduleExport, error)
}

type scheduleService struct {
	scheduleRepo  repository.TrainingScheduleRepository
	planRepo      repository.TrainingPlanRepository
	exerciseRepo  repository.ExerciseRepository
	activityRepo  repository.ActivityRepository
	fileStorage   storage.FileStorage
	metrics       *metrics.Manager
	presignExpiry time.Duration
	locks         *keyedMutex
}

func NewScheduleService(
	scheduleRepo repository.TrainingScheduleRepository,
	planRepo repository.TrainingPlanRepository,
	exerciseRepo repository.ExerciseRepository,
	activityRepo repository.ActivityRepository,
	fileStorage storage.FileStorage,
	metricsManager *metrics.Manager,
	presignExpiry time.Duration,
) ScheduleService {
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}
	return &scheduleService{
		scheduleRepo:  scheduleRepo,
		planRepo:      planRepo,
		exerciseRepo:  exerciseRepo,
		activityRepo:  activityRepo,
		fileStorage:   fileStorage,
		metrics:       metricsManager,
		presignExpiry: presignExpiry,
		locks:         newKeyedMutex(),
	}
}

// CreateSchedule expands the plan into a new schedule for the athlete. The
// schedule keeps its own copy of the plan; later plan edits do not reach it.
func (s *scheduleService) CreateSchedule(ctx context.Context, athleteID, planID primitive.ObjectID, cfg schedule.Config, notes string) (*domain.TrainingSchedule, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	engine, err := schedule.New(athleteID.Hex(), plan.Exercises, cfg)
	if err != nil {
		return nil, err
	}

	ts := domain.NewTrainingSchedule(athleteID, plan, notes, engine)
	if _, err := s.scheduleRepo.Create(ctx, ts); err != nil {
		return nil, err
	}
	s.metrics.CounterSchedulesCreated.Inc()

	log.WithFields(log.Fields{
		"schedule": ts.ID.Hex(),
		"athlete":  athleteID.Hex(),
		"plan":     plan.Name,
		"start":    schedule.DateKey(ts.StartDate),
		"weeks":    ts.DurationWeeks,
	}).Info("training schedule created")
	return ts, nil
}

func (s *scheduleService) load(ctx context.Context, scheduleID primitive.ObjectID) (*domain.TrainingSchedule, error) {
	ts, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return ts, nil
}

// owned loads a schedule and checks it belongs to athleteID.
func (s *scheduleService) owned(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*domain.TrainingSchedule, error) {
	ts, err := s.load(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if ts.AthleteID != athleteID {
		return nil, ErrScheduleAccessDenied
	}
	return ts, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*domain.TrainingSchedule, error) {
	return s.owned(ctx, athleteID, scheduleID)
}

func (s *scheduleService) ListForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSchedule, error) {
	schedules, err := s.scheduleRepo.GetByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []domain.TrainingSchedule{}
	}
	return schedules, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, athleteID, scheduleID primitive.ObjectID) error {
	unlock := s.locks.Lock(scheduleID)
	defer unlock()

	if _, err := s.owned(ctx, athleteID, scheduleID); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(ctx, scheduleID, athleteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if err := s.activityRepo.DeleteByScheduleID(ctx, scheduleID); err != nil {
		log.Errorf("delete activity history of schedule %s: %s", scheduleID.Hex(), err)
	}
	log.WithField("schedule", scheduleID.Hex()).Info("training schedule deleted")
	return nil
}

func (s *scheduleService) Summary(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*ScheduleSummary, error) {
	ts, err := s.owned(ctx, athleteID, scheduleID)
	if err != nil {
		return nil, err
	}
	return summarize(ts), nil
}

func summarize(ts *domain.TrainingSchedule) *ScheduleSummary {
	engine := ts.Engine()
	return &ScheduleSummary{
		ScheduleID:        ts.ID.Hex(),
		PlanName:          ts.PlanName,
		StartDate:         schedule.DateKey(engine.StartDate()),
		EndDate:           schedule.DateKey(engine.EndDate()),
		DurationWeeks:     ts.DurationWeeks,
		TrainingDays:      ts.TrainingDays.Names(),
		Exercises:         append([]string{}, ts.Exercises...),
		RecordedCount:     engine.RecordedCount(),
		RecordedExercises: engine.RecordedExercises(),
		UpdatedAt:         ts.UpdatedAt,
	}
}

func (s *scheduleService) Targets(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (map[string]schedule.DailyTarget, error) {
	ts, err := s.owned(ctx, athleteID, scheduleID)
	if err != nil {
		return nil, err
	}
	return ts.Engine().TargetsOn(date)
}

func (s *scheduleService) Analysis(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (*ScheduleAnalysis, error) {
	ts, err := s.owned(ctx, athleteID, scheduleID)
	if err != nil {
		return nil, err
	}
	engine := ts.Engine()

	analysis := &ScheduleAnalysis{
		Date:       schedule.DateKey(date),
		Absolute:   engine.TargetVsActualAbsolute(date),
		Cumulative: engine.TargetVsActualCumulative(date),
	}
	week, err := engine.TrainingWeek(date)
	switch {
	case err == nil:
		analysis.Week = week
	case errors.Is(err, schedule.ErrOutOfRange):
		analysis.OutOfRange = true
	default:
		return nil, err
	}
	return analysis, nil
}

func (s *scheduleService) TrainingWeek(ctx context.Context, athleteID, scheduleID primitive.ObjectID, date time.Time) (int, bool, error) {
	ts, err := s.owned(ctx, athleteID, scheduleID)
	if err != nil {
		return 0, false, err
	}
	engine := ts.Engine()
	week, err := engine.TrainingWeek(date)
	if err != nil {
		return 0, false, err
	}
	return week, engine.IsTrainingDay(date), nil
}

// rejectReason labels a rejected activity for metrics.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, schedule.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, schedule.ErrAthleteMismatch):
		return "athlete_mismatch"
	case errors.Is(err, schedule.ErrUnsupportedKind):
		return "unsupported_kind"
	case errors.Is(err, ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, ErrExerciseNotFound):
		return "unknown_exercise"
	case errors.Is(err, ErrConcurrentUpdate):
		return "conflict"
	default:
		return "other"
	}
}

func (s *scheduleService) RecordActivity(ctx context.Context, scheduleID primitive.ObjectID, activity schedule.Activity) (*domain.ActivityRecord, error) {
	record, err := s.recordActivity(ctx, scheduleID, activity)
	if err != nil {
		if !errors.Is(err, ErrScheduleNotFound) {
			s.metrics.CounterActivitiesRejected.WithLabelValues(rejectReason(err)).Inc()
		}
		log.WithFields(log.Fields{
			"schedule": scheduleID.Hex(),
			"exercise": activity.Exercise,
			"date":     schedule.DateKey(activity.Date),
			"kind":     activity.Kind,
		}).Warnf("activity rejected: %s", err)
		return nil, err
	}
	s.metrics.CounterActivitiesRecorded.WithLabelValues(string(activity.Kind)).Inc()
	return record, nil
}

func (s *scheduleService) recordActivity(ctx context.Context, scheduleID primitive.ObjectID, activity schedule.Activity) (*domain.ActivityRecord, error) {
	unlock := s.locks.Lock(scheduleID)
	defer unlock()

	ts, err := s.load(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	// athlete and date are checked before the catalog is consulted
	engine := ts.Engine()
	if err := engine.CheckActivity(activity); err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByName(ctx, activity.Exercise)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrExerciseNotFound, activity.Exercise)
		}
		return nil, err
	}
	if exercise.Kind != activity.Kind {
		return nil, fmt.Errorf("%w: %q is a %s exercise", ErrKindMismatch, exercise.Name, exercise.Kind)
	}

	if err := engine.RecordActivity(activity); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.UpdateActuals(ctx, ts.ID, ts.Version, engine.Actuals); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, ErrConcurrentUpdate
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	record := domain.NewActivityRecord(ts.ID, ts.AthleteID, activity)
	if _, err := s.activityRepo.Create(ctx, record); err != nil {
		// the actual log is already updated, history is best effort
		log.Errorf("store activity history of schedule %s: %s", ts.ID.Hex(), err)
	}

	log.WithFields(log.Fields{
		"schedule": ts.ID.Hex(),
		"exercise": activity.Exercise,
		"date":     schedule.DateKey(activity.Date),
	}).Debug("activity recorded")
	return record, nil
}

func (s *scheduleService) Activities(ctx context.Context, athleteID, scheduleID primitive.ObjectID) ([]domain.ActivityRecord, error) {
	if _, err := s.owned(ctx, athleteID, scheduleID); err != nil {
		return nil, err
	}
	records, err := s.activityRepo.GetByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ActivityRecord{}
	}
	return records, nil
}

// exportDay is one calendar day of an exported report.
type exportDay struct {
	Date        string                         `json:"date"`
	Week        int                            `json:"week"`
	TrainingDay bool                           `json:"trainingDay"`
	Exercises   map[string]schedule.Comparison `json:"exercises"`
}

type exportReport struct {
	Summary    *ScheduleSummary                         `json:"summary"`
	Days       []exportDay                              `json:"days"`
	Cumulative map[string]schedule.CumulativeComparison `json:"cumulative"`
	ExportedAt time.Time                                `json:"exportedAt"`
}

func (s *scheduleService) buildReport(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*exportReport, error) {
	ts, err := s.owned(ctx, athleteID, scheduleID)
	if err != nil {
		return nil, err
	}
	engine := ts.Engine()

	report := &exportReport{
		Summary:    summarize(ts),
		Cumulative: engine.TargetVsActualCumulative(engine.EndDate()),
		ExportedAt: time.Now().UTC(),
	}
	for _, d := range engine.Targets.Dates() {
		// every calendar date lies in range
		week, _ := engine.TrainingWeek(d)
		report.Days = append(report.Days, exportDay{
			Date:        schedule.DateKey(d),
			Week:        week,
			TrainingDay: engine.IsTrainingDay(d),
			Exercises:   engine.TargetVsActualAbsolute(d),
		})
	}
	return report, nil
}

// Export uploads a JSON report of the schedule and returns a temporary link to it.
func (s *scheduleService) Export(ctx context.Context, athleteID, scheduleID primitive.ObjectID) (*domain.ScheduleExport, error) {
	report, err := s.buildReport(ctx, athleteID, scheduleID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", scheduleID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.presignExpiry)
	if err != nil {
		if derr := s.fileStorage.DeleteObject(ctx, objectKey); derr != nil {
			log.Warnf("remove unreachable export %s: %s", objectKey, derr)
		}
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}
	s.metrics.CounterExports.Inc()

	log.WithFields(log.Fields{"schedule": scheduleID.Hex(), "key": objectKey}).Info("schedule exported")
	return &domain.ScheduleExport{
		ScheduleID:  scheduleID.Hex(),
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   time.Now().UTC().Add(s.presignExpiry),
	}, nil
}
