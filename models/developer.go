package models

// Developer is a person who worked on one or more projects. ProjectIDs is
// loaded from developers_worked_on_projects and is not a column.
type Developer struct {
	ID          int    `json:"id" db:"dev_id" gorm:"column:dev_id;primaryKey;autoIncrement"`
	Name        string `json:"name" db:"dev_name" gorm:"column:dev_name;type:varchar(50)"`
	Surname     string `json:"surname" db:"dev_surname" gorm:"column:dev_surname;type:varchar(50)"`
	Email       string `json:"email" db:"email" gorm:"column:email;type:text"`
	LinkedinURL string `json:"linkedin_url" db:"linkedin_url" gorm:"column:linkedin_url;type:text"`
	GithubURL   string `json:"github_url" db:"github_url" gorm:"column:github_url;type:text"`
	ProjectIDs  []int  `json:"project_ids" gorm:"-"`
}

func (Developer) TableName() string { return "developers" }
