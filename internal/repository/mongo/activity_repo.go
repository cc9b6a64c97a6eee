package mongo

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollectionName = "activities"

type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new activity history repository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

func (r *mongoActivityRepository) Create(ctx context.Context, record *domain.ActivityRecord) (primitive.ObjectID, error) {
	if record.ScheduleID == primitive.NilObjectID || record.Exercise == "" {
		return primitive.NilObjectID, errors.New("activity requires scheduleId and exercise")
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted activity ID")
	}
	return insertedID, nil
}

// GetByScheduleID returns the history of a schedule, newest date first.
func (r *mongoActivityRepository) GetByScheduleID(ctx context.Context, scheduleID primitive.ObjectID) ([]domain.ActivityRecord, error) {
	var records []domain.ActivityRecord
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"scheduleId": scheduleID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoActivityRepository) DeleteByScheduleID(ctx context.Context, scheduleID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"scheduleId": scheduleID})
	if err != nil {
		return repository.ErrDeleteFailed
	}
	return nil
}

// EnsureActivityIndexes creates necessary indexes. Call during startup.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scheduleId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %s", collection.Name(), err)
	}
}
