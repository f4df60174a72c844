package auth

import (
	"context"
	"errors"

	"github.com/Parasuram76/Task-Management-System/database"
	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"gorm.io/gorm"
)

// AdminRepository persists administrators.
type AdminRepository interface {
	Create(ctx context.Context, a *admin.Admin) error
	FindByID(ctx context.Context, id string) (*admin.Admin, error)
	FindByEmail(ctx context.Context, email string) (*admin.Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// NewAdminRepository returns the repository matching the open driver.
func NewAdminRepository(db *database.DB) (AdminRepository, error) {
	switch {
	case db == nil:
		return nil, errors.New("database not initialized")
	case db.Gorm != nil:
		return NewGormAdminRepository(db.Gorm), nil
	case db.Mongo != nil:
		return NewMongoAdminRepository(db.Mongo), nil
	default:
		return nil, errors.New("database not initialized")
	}
}

// GormAdminRepository handles administrator persistence using GORM.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// Create inserts a new administrator. A duplicate email yields ErrEmailExists.
func (r *GormAdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	result := r.db.WithContext(ctx).Create(a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		return result.Error
	}
	return nil
}

// FindByID finds an administrator by ID.
func (r *GormAdminRepository) FindByID(ctx context.Context, id string) (*admin.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail finds an administrator by exact email.
func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormAdminRepository) first(ctx context.Context, query string, arg string) (*admin.Admin, error) {
	var a admin.Admin
	result := r.db.WithContext(ctx).First(&a, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, result.Error
	}
	return &a, nil
}

// EmailExists checks if an administrator with the given email exists.
func (r *GormAdminRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&admin.Admin{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
