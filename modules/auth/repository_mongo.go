package auth

import (
	"context"
	"errors"

	"github.com/Parasuram76/Task-Management-System/database"
	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAdminRepository handles administrator persistence in MongoDB. Email
// uniqueness relies on the index created by database.Migrate.
type MongoAdminRepository struct {
	coll *mongo.Collection
}

// NewMongoAdminRepository creates a new MongoAdminRepository.
func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection(database.AdminsCollection)}
}

// Create inserts a new administrator.
func (r *MongoAdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// FindByID finds an administrator by ID.
func (r *MongoAdminRepository) FindByID(ctx context.Context, id string) (*admin.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail finds an administrator by exact email.
func (r *MongoAdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdminRepository) findOne(ctx context.Context, filter bson.M) (*admin.Admin, error) {
	var a admin.Admin
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EmailExists checks if an administrator with the given email exists.
func (r *MongoAdminRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
