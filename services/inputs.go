package services

import (
	"time"

	"gorm.io/datatypes"

	"github.com/rpupo63/devfolio-backend/models"
)

// DateLayout is the wire format of project dates.
const DateLayout = "2006-01-02"

type DeveloperInput struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	GithubURL   string `json:"github_url"`
	ProjectIDs  []int  `json:"project_ids"`
}

func (in DeveloperInput) ToModel() *models.Developer {
	return &models.Developer{
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		LinkedinURL: in.LinkedinURL,
		GithubURL:   in.GithubURL,
		ProjectIDs:  append([]int(nil), in.ProjectIDs...),
	}
}

type ProjectInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	RepositoryURL string `json:"repository_url"`
	DemoURL       string `json:"demo_url"`
	Picture       string `json:"picture"`
	TechnologyIDs []int  `json:"technology_ids"`
	DeveloperIDs  []int  `json:"developer_ids"`
}

// ToModel expects a validated input; dates that do not parse are returned as
// errors rather than zeroed.
func (in ProjectInput) ToModel() (*models.Project, error) {
	start, err := time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return nil, err
	}
	p := &models.Project{
		Name:          in.Name,
		Description:   in.Description,
		StartDate:     datatypes.Date(start),
		RepositoryURL: in.RepositoryURL,
		DemoURL:       in.DemoURL,
		Picture:       in.Picture,
		TechnologyIDs: append([]int(nil), in.TechnologyIDs...),
		DeveloperIDs:  append([]int(nil), in.DeveloperIDs...),
	}
	if in.EndDate != "" {
		end, err := time.Parse(DateLayout, in.EndDate)
		if err != nil {
			return nil, err
		}
		d := datatypes.Date(end)
		p.EndDate = &d
	}
	return p, nil
}

type TechnologyInput struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ProjectIDs []int  `json:"project_ids"`
}

func (in TechnologyInput) ToModel() *models.Technology {
	return &models.Technology{
		ID:         in.ID,
		Name:       in.Name,
		ProjectIDs: append([]int(nil), in.ProjectIDs...),
	}
}
