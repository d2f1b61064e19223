package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindByID returns nil, nil when no technology has the given id.
func (r *TechnologyRepo) FindByID(ctx context.Context, id int) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&technology, "tech_id = ?", id).Error; err != nil {
			return err
		}
		links, err := technologyLinks(tx, []int{id})
		if err != nil {
			return err
		}
		technology.ProjectIDs = links[id]
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technology", err)
	}
	return &technology, nil
}

// FindByIDs returns the technologies that exist among ids, ordered by id.
func (r *TechnologyRepo) FindByIDs(ctx context.Context, ids []int) ([]*models.Technology, error) {
	var technologies []*models.Technology
	if len(ids) == 0 {
		return technologies, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tech_id IN ?", ids).Order("tech_id").Find(&technologies).Error; err != nil {
			return err
		}
		links, err := technologyLinks(tx, ids)
		if err != nil {
			return err
		}
		for _, t := range technologies {
			t.ProjectIDs = links[t.ID]
		}
		return nil
	})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technologies", err)
	}
	return technologies, nil
}

func (r *TechnologyRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Technology{}).
		Where("tech_id = ?", id).Count(&count).Error; err != nil {
		return false, errs.NewDatabaseError("find", "technology", err)
	}
	return count > 0, nil
}

// Add inserts the technology under its caller supplied id.
func (r *TechnologyRepo) Add(ctx context.Context, technology *models.Technology) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(technology).Error; err != nil {
			return err
		}
		return insertTechnologyLinks(tx, technologyLinkRows(technology))
	})
	if err != nil {
		return errs.NewDatabaseError("create", "technology", err)
	}
	return nil
}

// Update saves the row and replaces the technology's project links.
func (r *TechnologyRepo) Update(ctx context.Context, technology *models.Technology) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(technology).Error; err != nil {
			return err
		}
		if err := tx.Where("technologies_tech_id = ?", technology.ID).
			Delete(&models.TechnologyProjectLink{}).Error; err != nil {
			return err
		}
		return insertTechnologyLinks(tx, technologyLinkRows(technology))
	})
	if err != nil {
		return errs.NewDatabaseError("update", "technology", err)
	}
	return nil
}

func (r *TechnologyRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("technologies_tech_id = ?", id).
			Delete(&models.TechnologyProjectLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Technology{}, "tech_id = ?", id).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "technology", err)
	}
	return nil
}

func technologyLinkRows(technology *models.Technology) []models.TechnologyProjectLink {
	rows := make([]models.TechnologyProjectLink, 0, len(technology.ProjectIDs))
	for _, projectID := range technology.ProjectIDs {
		rows = append(rows, models.TechnologyProjectLink{TechnologyID: technology.ID, ProjectID: projectID})
	}
	return rows
}
