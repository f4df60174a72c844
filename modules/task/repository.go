package task

import (
	"context"
	"errors"
	"time"

	"github.com/Parasuram76/Task-Management-System/database"
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"gorm.io/gorm"
)

// Repository persists tasks. Every lookup by id is also scoped to the owner,
// so a task owned by someone else is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.Patch, updatedAt time.Time) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	CountByStatus(ctx context.Context, ownerID string) (domain.Stats, error)
}

// NewRepository returns the repository matching the open driver.
func NewRepository(db *database.DB) (Repository, error) {
	switch {
	case db == nil:
		return nil, errors.New("database not initialized")
	case db.Gorm != nil:
		return NewGormRepository(db.Gorm), nil
	case db.Mongo != nil:
		return NewMongoRepository(db.Mongo), nil
	default:
		return nil, errors.New("database not initialized")
	}
}

// GormRepository handles task persistence using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts a new task.
func (r *GormRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListByOwner returns the owner's tasks, newest first.
func (r *GormRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks := []domain.Task{}
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update applies patch to the owned task inside a transaction and returns the
// stored result.
func (r *GormRepository) Update(ctx context.Context, id, ownerID string, patch domain.Patch, updatedAt time.Time) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		patch.Apply(&t)
		t.UpdatedAt = updatedAt

		// UpdateColumns keeps GORM from overwriting updated_at with its own clock.
		return tx.Model(&domain.Task{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			UpdateColumns(map[string]any{
				"title":       t.Title,
				"description": t.Description,
				"status":      string(t.Status),
				"due_date":    t.DueDate,
				"updated_at":  t.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the owned task.
func (r *GormRepository) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByStatus aggregates the owner's tasks per status.
func (r *GormRepository) CountByStatus(ctx context.Context, ownerID string) (domain.Stats, error) {
	var rows []struct {
		Status domain.Status
		Count  int
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("status, count(*) as count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return domain.Stats{}, result.Error
	}

	var stats domain.Stats
	for _, row := range rows {
		stats.Add(row.Status, row.Count)
	}
	return stats, nil
}
