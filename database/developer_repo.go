package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

type DeveloperRepo struct {
	db *gorm.DB
}

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo {
	return &DeveloperRepo{db}
}

// FindByID returns nil, nil when no developer has the given id.
func (r *DeveloperRepo) FindByID(ctx context.Context, id int) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&developer, "dev_id = ?", id).Error; err != nil {
			return err
		}
		links, err := developerLinks(tx, []int{id})
		if err != nil {
			return err
		}
		developer.ProjectIDs = links[id]
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "developer", err)
	}
	return &developer, nil
}

// FindByIDs returns the developers that exist among ids, ordered by id.
func (r *DeveloperRepo) FindByIDs(ctx context.Context, ids []int) ([]*models.Developer, error) {
	var developers []*models.Developer
	if len(ids) == 0 {
		return developers, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dev_id IN ?", ids).Order("dev_id").Find(&developers).Error; err != nil {
			return err
		}
		links, err := developerLinks(tx, ids)
		if err != nil {
			return err
		}
		for _, d := range developers {
			d.ProjectIDs = links[d.ID]
		}
		return nil
	})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "developers", err)
	}
	return developers, nil
}

// Add inserts the developer and its project links. The generated id is
// written back into developer.
func (r *DeveloperRepo) Add(ctx context.Context, developer *models.Developer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(developer).Error; err != nil {
			return err
		}
		return insertDeveloperLinks(tx, developerLinkRows(developer))
	})
	if err != nil {
		return errs.NewDatabaseError("create", "developer", err)
	}
	return nil
}

// Update saves the row and replaces the developer's project links.
func (r *DeveloperRepo) Update(ctx context.Context, developer *models.Developer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(developer).Error; err != nil {
			return err
		}
		if err := tx.Where("developers_dev_id = ?", developer.ID).
			Delete(&models.DeveloperProjectLink{}).Error; err != nil {
			return err
		}
		return insertDeveloperLinks(tx, developerLinkRows(developer))
	})
	if err != nil {
		return errs.NewDatabaseError("update", "developer", err)
	}
	return nil
}

// Delete removes the developer together with its link rows.
func (r *DeveloperRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("developers_dev_id = ?", id).
			Delete(&models.DeveloperProjectLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Developer{}, "dev_id = ?", id).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "developer", err)
	}
	return nil
}

func developerLinkRows(developer *models.Developer) []models.DeveloperProjectLink {
	rows := make([]models.DeveloperProjectLink, 0, len(developer.ProjectIDs))
	for _, projectID := range developer.ProjectIDs {
		rows = append(rows, models.DeveloperProjectLink{DeveloperID: developer.ID, ProjectID: projectID})
	}
	return rows
}
