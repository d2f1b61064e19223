package models

import "gorm.io/datatypes"

// Project represents a portfolio project. Technology and developer links are
// carried as identifier lists so that no object graph cycles exist.
type Project struct {
	ID            int             `json:"id" db:"project_id" gorm:"column:project_id;primaryKey;autoIncrement"`
	Name          string          `json:"name" db:"project_name" gorm:"column:project_name;type:text;not null"`
	Description   string          `json:"description" db:"description" gorm:"column:description;type:varchar(50)"`
	StartDate     datatypes.Date  `json:"start_date" db:"start_date" gorm:"column:start_date"`
	EndDate       *datatypes.Date `json:"end_date,omitempty" db:"end_date" gorm:"column:end_date"`
	RepositoryURL string          `json:"repository_url" db:"repository_url" gorm:"column:repository_url;type:text"`
	DemoURL       string          `json:"demo_url" db:"demo_url" gorm:"column:demo_url;type:text"`
	Picture       string          `json:"picture" db:"picture" gorm:"column:picture;type:text"`
	StateID       *int            `json:"state_id,omitempty" db:"status_status_id" gorm:"column:status_status_id;index"`
	TechnologyIDs []int           `json:"technology_ids" gorm:"-"`
	DeveloperIDs  []int           `json:"developer_ids" gorm:"-"`
}

func (Project) TableName() string { return "projects" }
