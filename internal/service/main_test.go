package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"alcyxob/training-tracker/internal/metrics"
	"alcyxob/training-tracker/internal/repository/memory"
	"alcyxob/training-tracker/internal/service"
	"alcyxob/training-tracker/internal/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	mu          sync.Mutex
	objects     map[string][]byte
	presignErr  error
	deletedKeys []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

var _ storage.FileStorage = (*fakeStorage)(nil)

func (f *fakeStorage) PutObject(_ context.Context, key string, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = append([]byte(nil), body...)
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.test/" + key + "?signed", nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

type fixture struct {
	users      *memory.UserRepository
	exercises  *memory.ExerciseRepository
	plans      *memory.TrainingPlanRepository
	schedules  *memory.TrainingScheduleRepository
	activities *memory.ActivityRepository
	storage    *fakeStorage
	metrics    *metrics.Manager

	auth        service.AuthService
	catalog     service.CatalogService
	planSvc     service.PlanService
	scheduleSvc service.ScheduleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:      memory.NewUserRepository(),
		exercises:  memory.NewExerciseRepository(),
		plans:      memory.NewTrainingPlanRepository(),
		schedules:  memory.NewTrainingScheduleRepository(),
		activities: memory.NewActivityRepository(),
		storage:    newFakeStorage(),
		metrics:    metrics.NewTestManager(),
	}
	f.auth = service.NewAuthService(f.users, "test-secret", time.Hour)
	f.catalog = service.NewCatalogService(f.exercises)
	f.planSvc = service.NewPlanService(f.plans, f.exercises)
	f.scheduleSvc = service.NewScheduleService(f.schedules, f.plans, f.exercises, f.activities, f.storage, f.metrics, 10*time.Minute)
	require.NotNil(t, f.scheduleSvc)
	return f
}
