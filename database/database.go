package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db             *gorm.DB
	developerRepo  *DeveloperRepo
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	stateRepo      *StateRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		developerRepo:  NewDeveloperRepo(db),
		projectRepo:    NewProjectRepo(db),
		technologyRepo: NewTechnologyRepo(db),
		stateRepo:      NewStateRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DeveloperRepo() *DeveloperRepo {
	return d.developerRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) StateRepo() *StateRepo {
	return d.stateRepo
}

// Ping checks that the primary connection answers.
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
