package mongo

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/schedule"
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingScheduleCollectionName = "training_schedules"

// mongoTrainingScheduleRepository implements repository.TrainingScheduleRepository.
// A schedule document embeds its targets and actuals.
type mongoTrainingScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingScheduleRepository creates a new TrainingSchedule repository.
func NewMongoTrainingScheduleRepository(db *mongo.Database) repository.TrainingScheduleRepository {
	return &mongoTrainingScheduleRepository{
		collection: db.Collection(trainingScheduleCollectionName),
	}
}

// Create inserts a new schedule with version 0.
func (r *mongoTrainingScheduleRepository) Create(ctx context.Context, ts *domain.TrainingSchedule) (primitive.ObjectID, error) {
	if ts.AthleteID == primitive.NilObjectID || ts.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("schedule requires athleteId and planId")
	}
	if ts.Actuals == nil {
		ts.Actuals = schedule.Log{}
	}
	ts.ID = primitive.NewObjectID()
	ts.Version = 0
	now := time.Now().UTC()
	ts.CreatedAt = now
	ts.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, ts)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted schedule ID")
	}
	return insertedID, nil
}

// GetByID retrieves a schedule with its targets and actuals.
func (r *mongoTrainingScheduleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingSchedule, error) {
	var ts domain.TrainingSchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if ts.Actuals == nil {
		ts.Actuals = schedule.Log{}
	}
	return &ts, nil
}

// GetByAthleteID lists an athlete's schedules, newest start date first.
// Targets are left out of listings.
func (r *mongoTrainingScheduleRepository) GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSchedule, error) {
	var schedules []domain.TrainingSchedule
	findOptions := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"targets": 0})

	cursor, err := r.collection.Find(ctx, bson.M{"athleteId": athleteID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}

// UpdateActuals writes actuals only if the stored version is expectedVersion.
func (r *mongoTrainingScheduleRepository) UpdateActuals(ctx context.Context, id primitive.ObjectID, expectedVersion int64, actuals schedule.Log) error {
	if actuals == nil {
		actuals = schedule.Log{}
	}
	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"actuals": actuals, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 1 {
		return nil
	}

	// tell a missing schedule apart from a stale version
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrVersionConflict
}

// Delete removes a schedule owned by athleteID.
func (r *mongoTrainingScheduleRepository) Delete(ctx context.Context, id, athleteID primitive.ObjectID) error {
	if id == primitive.NilObjectID || athleteID == primitive.NilObjectID {
		return errors.New("schedule ID and athlete ID are required for deletion")
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "athleteId": athleteID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingScheduleIndexes creates necessary indexes. Call during startup.
func EnsureTrainingScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %s", collection.Name(), err)
	}
}
