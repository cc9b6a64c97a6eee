package memory

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityRepository struct {
	mu      sync.RWMutex
	records []domain.ActivityRecord
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Create(_ context.Context, record *domain.ActivityRecord) (primitive.ObjectID, error) {
	if record.ScheduleID == primitive.NilObjectID || record.Exercise == "" {
		return primitive.NilObjectID, errors.New("activity requires scheduleId and exercise")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, *record)
	return record.ID, nil
}

func (r *ActivityRepository) GetByScheduleID(_ context.Context, scheduleID primitive.ObjectID) ([]domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []domain.ActivityRecord
	for _, rec := range r.records {
		if rec.ScheduleID == scheduleID {
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *ActivityRepository) DeleteByScheduleID(_ context.Context, scheduleID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.ScheduleID != scheduleID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}
