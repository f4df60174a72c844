package task

import (
	"context"
	"errors"
	"time"

	"github.com/Parasuram76/Task-Management-System/database"
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository handles task persistence in MongoDB.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a new MongoRepository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(database.TasksCollection)}
}

// Create inserts a new task.
func (r *MongoRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

// ListByOwner returns the owner's tasks, newest first.
func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	tasks := []domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies patch with a single findOneAndUpdate filtered on id and owner.
func (r *MongoRepository) Update(ctx context.Context, id, ownerID string, patch domain.Patch, updatedAt time.Time) (*domain.Task, error) {
	set := bson.M{"updated_at": updatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.DueDate != nil && !patch.ClearDueDate {
		set["due_date"] = *patch.DueDate
	}

	update := bson.M{"$set": set}
	if patch.ClearDueDate {
		update["$unset"] = bson.M{"due_date": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Task
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "owner_id": ownerID}, update, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes the owned task.
func (r *MongoRepository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByStatus aggregates the owner's tasks per status.
func (r *MongoRepository) CountByStatus(ctx context.Context, ownerID string) (domain.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.Stats{}, err
	}

	var rows []struct {
		Status domain.Status `bson:"_id"`
		Count  int           `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.Stats{}, err
	}

	var stats domain.Stats
	for _, row := range rows {
		stats.Add(row.Status, row.Count)
	}
	return stats, nil
}
