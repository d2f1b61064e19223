package services

import (
	"context"

	"github.com/rpupo63/devfolio-backend/models"
)

// Persistence ports. FindByID implementations return nil, nil when the row
// does not exist; any returned error is a storage failure.

type DeveloperStore interface {
	FindByID(ctx context.Context, id int) (*models.Developer, error)
	FindByIDs(ctx context.Context, ids []int) ([]*models.Developer, error)
	Add(ctx context.Context, developer *models.Developer) error
	Update(ctx context.Context, developer *models.Developer) error
	Delete(ctx context.Context, id int) error
}

type ProjectStore interface {
	FindByID(ctx context.Context, id int) (*models.Project, error)
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindPage(ctx context.Context, offset, limit int) ([]*models.Project, int64, error)
	FindByTechnologyName(ctx context.Context, name string) ([]*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	SetState(ctx context.Context, id, stateID int) error
	Delete(ctx context.Context, id int) error
}

type TechnologyStore interface {
	FindByID(ctx context.Context, id int) (*models.Technology, error)
	FindByIDs(ctx context.Context, ids []int) ([]*models.Technology, error)
	Exists(ctx context.Context, id int) (bool, error)
	Add(ctx context.Context, technology *models.Technology) error
	Update(ctx context.Context, technology *models.Technology) error
	Delete(ctx context.Context, id int) error
}

type StateStore interface {
	FindByID(ctx context.Context, id int) (*models.State, error)
	FindAll(ctx context.Context) ([]*models.State, error)
}
