package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindByID returns nil, nil when no project has the given id.
func (r *ProjectRepo) FindByID(ctx context.Context, id int) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "project_id = ?", id).Error; err != nil {
			return err
		}
		return attachLinks(tx, []*models.Project{&project})
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// FindAll returns every project ordered by id
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("project_id").Find(&projects).Error; err != nil {
			return err
		}
		return attachLinks(tx, projects)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

// FindPage returns one window of projects ordered by id plus the total count.
func (r *ProjectRepo) FindPage(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	var (
		projects []*models.Project
		total    int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Order("project_id").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
			return err
		}
		return attachLinks(tx, projects)
	})
	if err != nil {
		return nil, 0, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, total, nil
}

// FindByTechnologyName returns the distinct projects linked to a technology
// whose name matches exactly.
func (r *ProjectRepo) FindByTechnologyName(ctx context.Context, name string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		linked := tx.Model(&models.TechnologyProjectLink{}).
			Select("technologies_used_in_projects.projects_project_id").
			Joins("JOIN technologies ON technologies.tech_id = technologies_used_in_projects.technologies_tech_id").
			Where("technologies.tech_name = ?", name)
		if err := tx.Where("project_id IN (?)", linked).Order("project_id").Find(&projects).Error; err != nil {
			return err
		}
		return attachLinks(tx, projects)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

// Add inserts the project and both of its link sets.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return insertProjectLinks(tx, project)
	})
	if err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// Update replaces every column and both link sets of the project.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		if err := deleteProjectLinks(tx, project.ID); err != nil {
			return err
		}
		return insertProjectLinks(tx, project)
	})
	if err != nil {
		return errs.NewDatabaseError("update", "project", err)
	}
	return nil
}

// SetState changes only the state column.
func (r *ProjectRepo) SetState(ctx context.Context, id, stateID int) error {
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("project_id = ?", id).
		Update("status_status_id", stateID).Error
	if err != nil {
		return errs.NewDatabaseError("update", "project", err)
	}
	return nil
}

// Delete removes the project and every link row that references it.
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteProjectLinks(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "project_id = ?", id).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	return nil
}

func attachLinks(tx *gorm.DB, projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]int, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	devs, techs, err := projectLinks(tx, ids)
	if err != nil {
		return err
	}
	for _, p := range projects {
		p.DeveloperIDs = devs[p.ID]
		p.TechnologyIDs = techs[p.ID]
	}
	return nil
}

func insertProjectLinks(tx *gorm.DB, project *models.Project) error {
	devRows := make([]models.DeveloperProjectLink, 0, len(project.DeveloperIDs))
	for _, devID := range project.DeveloperIDs {
		devRows = append(devRows, models.DeveloperProjectLink{DeveloperID: devID, ProjectID: project.ID})
	}
	if err := insertDeveloperLinks(tx, devRows); err != nil {
		return err
	}

	techRows := make([]models.TechnologyProjectLink, 0, len(project.TechnologyIDs))
	for _, techID := range project.TechnologyIDs {
		techRows = append(techRows, models.TechnologyProjectLink{TechnologyID: techID, ProjectID: project.ID})
	}
	return insertTechnologyLinks(tx, techRows)
}

func deleteProjectLinks(tx *gorm.DB, projectID int) error {
	if err := tx.Where("projects_project_id = ?", projectID).
		Delete(&models.DeveloperProjectLink{}).Error; err != nil {
		return err
	}
	return tx.Where("projects_project_id = ?", projectID).
		Delete(&models.TechnologyProjectLink{}).Error
}
