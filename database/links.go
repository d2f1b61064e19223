package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/devfolio-backend/models"
)

// Link table helpers. Every function expects to run inside the caller's
// transaction and only touches tx.

func developerLinks(tx *gorm.DB, developerIDs []int) (map[int][]int, error) {
	var rows []models.DeveloperProjectLink
	if err := tx.Where("developers_dev_id IN ?", developerIDs).
		Order("developers_dev_id, projects_project_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int][]int, len(developerIDs))
	for _, row := range rows {
		out[row.DeveloperID] = append(out[row.DeveloperID], row.ProjectID)
	}
	return out, nil
}

func technologyLinks(tx *gorm.DB, technologyIDs []int) (map[int][]int, error) {
	var rows []models.TechnologyProjectLink
	if err := tx.Where("technologies_tech_id IN ?", technologyIDs).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int][]int, len(technologyIDs))
	for _, row := range rows {
		out[row.TechnologyID] = append(out[row.TechnologyID], row.ProjectID)
	}
	return out, nil
}

// projectLinks loads both link sets for the given projects.
func projectLinks(tx *gorm.DB, projectIDs []int) (devs, techs map[int][]int, err error) {
	var devRows []models.DeveloperProjectLink
	if err = tx.Where("projects_project_id IN ?", projectIDs).
		Order("projects_project_id, developers_dev_id").
		Find(&devRows).Error; err != nil {
		return nil, nil, err
	}
	var techRows []models.TechnologyProjectLink
	if err = tx.Where("projects_project_id IN ?", projectIDs).
		Order("id").
		Find(&techRows).Error; err != nil {
		return nil, nil, err
	}

	devs = make(map[int][]int, len(projectIDs))
	for _, row := range devRows {
		devs[row.ProjectID] = append(devs[row.ProjectID], row.DeveloperID)
	}
	techs = make(map[int][]int, len(projectIDs))
	for _, row := range techRows {
		techs[row.ProjectID] = append(techs[row.ProjectID], row.TechnologyID)
	}
	return devs, techs, nil
}

func insertDeveloperLinks(tx *gorm.DB, links []models.DeveloperProjectLink) error {
	if len(links) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func insertTechnologyLinks(tx *gorm.DB, links []models.TechnologyProjectLink) error {
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}
