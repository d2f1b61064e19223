package models

// Technology identifiers are assigned by the caller, never generated.
type Technology struct {
	ID         int    `json:"id" db:"tech_id" gorm:"column:tech_id;primaryKey;autoIncrement:false"`
	Name       string `json:"name" db:"tech_name" gorm:"column:tech_name;type:text"`
	ProjectIDs []int  `json:"project_ids" gorm:"-"`
}

func (Technology) TableName() string { return "technologies" }
