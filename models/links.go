package models

// DeveloperProjectLink is one row of the developer/project relation. The
// composite key gives the relation set semantics.
type DeveloperProjectLink struct {
	DeveloperID int `gorm:"column:developers_dev_id;primaryKey;autoIncrement:false"`
	ProjectID   int `gorm:"column:projects_project_id;primaryKey;autoIncrement:false;index"`
}

func (DeveloperProjectLink) TableName() string { return "developers_worked_on_projects" }

// TechnologyProjectLink is one row of the technology/project relation. It has
// a surrogate key, so linking the same pair twice stores two rows.
type TechnologyProjectLink struct {
	ID           int `gorm:"column:id;primaryKey;autoIncrement"`
	TechnologyID int `gorm:"column:technologies_tech_id;not null;index"`
	ProjectID    int `gorm:"column:projects_project_id;not null;index"`
}

func (TechnologyProjectLink) TableName() string { return "technologies_used_in_projects" }

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&State{},
		&Developer{},
		&Project{},
		&Technology{},
		&DeveloperProjectLink{},
		&TechnologyProjectLink{},
	}
}
