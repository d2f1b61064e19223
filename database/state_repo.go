package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

type StateRepo struct {
	db *gorm.DB
}

func NewStateRepo(db *gorm.DB) *StateRepo {
	return &StateRepo{db}
}

// FindByID returns nil, nil when the state row is missing.
func (r *StateRepo) FindByID(ctx context.Context, id int) (*models.State, error) {
	var state models.State
	err := r.db.WithContext(ctx).First(&state, "status_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "state", err)
	}
	return &state, nil
}

func (r *StateRepo) FindAll(ctx context.Context) ([]*models.State, error) {
	var states []*models.State
	if err := r.db.WithContext(ctx).Order("status_id").Find(&states).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "states", err)
	}
	return states, nil
}
