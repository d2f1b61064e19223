package services

import (
	"context"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

type TechnologyView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DeveloperView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	GithubURL   string `json:"github_url"`
}

// ProjectView is the outward shape of a project. Linked entities are
// flattened and carry no links of their own.
type ProjectView struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date,omitempty"`
	RepositoryURL string           `json:"repository_url"`
	DemoURL       string           `json:"demo_url"`
	Picture       string           `json:"picture"`
	State         string           `json:"state"`
	Technologies  []TechnologyView `json:"technologies"`
	Developers    []DeveloperView  `json:"developers"`
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

type QueryFacade struct {
	projects     ProjectStore
	developers   DeveloperStore
	technologies TechnologyStore
	states       StateStore
}

func NewQueryFacade(projects ProjectStore, developers DeveloperStore, technologies TechnologyStore, states StateStore) *QueryFacade {
	return &QueryFacade{
		projects:     projects,
		developers:   developers,
		technologies: technologies,
		states:       states,
	}
}

// ListProjects returns page number page (zero based) of projects in id order.
func (q *QueryFacade) ListProjects(ctx context.Context, page, size int) (*Page[ProjectView], error) {
	if err := validatePaging(page, size); err != nil {
		return nil, err
	}

	projects, total, err := q.projects.FindPage(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	views, err := q.views(ctx, projects)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &Page[ProjectView]{
		Content:       views,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

// validatePaging rejects pages whose offset page*size would not fit in an int.
func validatePaging(page, size int) error {
	return asValidationError(validation.Errors{
		"page": validation.Validate(page,
			validation.Min(0).Error("must be zero or greater"),
			validation.When(size > 0, validation.Max(math.MaxInt/max(size, 1)).Error("is out of range for the page size")),
		),
		"size": validation.Validate(size,
			validation.Required.Error("must be at least 1"),
			validation.Min(1).Error("must be at least 1"),
		),
	}.Filter())
}

// FindProjectByName returns the first project, in id order, whose name
// contains substring. Matching is case sensitive.
func (q *QueryFacade) FindProjectByName(ctx context.Context, substring string) (*ProjectView, error) {
	projects, err := q.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if strings.Contains(p.Name, substring) {
			views, err := q.views(ctx, []*models.Project{p})
			if err != nil {
				return nil, err
			}
			return &views[0], nil
		}
	}
	return nil, errs.NewLookupFailure("No project found with name containing: " + substring)
}

// FindProjectsByTechnology returns an empty slice when nothing matches.
func (q *QueryFacade) FindProjectsByTechnology(ctx context.Context, techName string) ([]ProjectView, error) {
	projects, err := q.projects.FindByTechnologyName(ctx, techName)
	if err != nil {
		return nil, err
	}
	return q.views(ctx, projects)
}

// ProjectView renders a single stored project.
func (q *QueryFacade) ProjectView(ctx context.Context, project *models.Project) (*ProjectView, error) {
	views, err := q.views(ctx, []*models.Project{project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (q *QueryFacade) views(ctx context.Context, projects []*models.Project) ([]ProjectView, error) {
	views := make([]ProjectView, 0, len(projects))
	if len(projects) == 0 {
		return views, nil
	}

	states, err := q.states.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	stateNames := make(map[int]string, len(states))
	for _, s := range states {
		stateNames[s.ID] = s.Name
	}

	var techIDs, devIDs []int
	for _, p := range projects {
		techIDs = append(techIDs, p.TechnologyIDs...)
		devIDs = append(devIDs, p.DeveloperIDs...)
	}

	techs, err := q.technologies.FindByIDs(ctx, dedupe(techIDs))
	if err != nil {
		return nil, err
	}
	techByID := make(map[int]*models.Technology, len(techs))
	for _, t := range techs {
		techByID[t.ID] = t
	}

	devs, err := q.developers.FindByIDs(ctx, dedupe(devIDs))
	if err != nil {
		return nil, err
	}
	devByID := make(map[int]*models.Developer, len(devs))
	for _, d := range devs {
		devByID[d.ID] = d
	}

	for _, p := range projects {
		view := ProjectView{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			StartDate:     time.Time(p.StartDate).Format(DateLayout),
			RepositoryURL: p.RepositoryURL,
			DemoURL:       p.DemoURL,
			Picture:       p.Picture,
			Technologies:  make([]TechnologyView, 0, len(p.TechnologyIDs)),
			Developers:    make([]DeveloperView, 0, len(p.DeveloperIDs)),
		}
		if p.EndDate != nil {
			view.EndDate = time.Time(*p.EndDate).Format(DateLayout)
		}
		if p.StateID != nil {
			view.State = stateNames[*p.StateID]
		}
		for _, id := range p.TechnologyIDs {
			if t, ok := techByID[id]; ok {
				view.Technologies = append(view.Technologies, TechnologyView{ID: t.ID, Name: t.Name})
			}
		}
		for _, id := range p.DeveloperIDs {
			if d, ok := devByID[id]; ok {
				view.Developers = append(view.Developers, DeveloperView{
					ID:          d.ID,
					Name:        d.Name,
					Surname:     d.Surname,
					Email:       d.Email,
					LinkedinURL: d.LinkedinURL,
					GithubURL:   d.GithubURL,
				})
			}
		}
		views = append(views, view)
	}
	return views, nil
}
