package services

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

// AssociationManager keeps developer/project and technology/project links
// pointing at persisted rows and maintains both sides of every link.
type AssociationManager struct {
	developers   DeveloperStore
	projects     ProjectStore
	technologies TechnologyStore
}

func NewAssociationManager(developers DeveloperStore, projects ProjectStore, technologies TechnologyStore) *AssociationManager {
	return &AssociationManager{
		developers:   developers,
		projects:     projects,
		technologies: technologies,
	}
}

// SaveDeveloper inserts a developer whose project references all resolve.
// Nothing is written when any of them is missing.
func (m *AssociationManager) SaveDeveloper(ctx context.Context, developer *models.Developer) error {
	resolved, err := m.resolveProjects(ctx, developer.ProjectIDs)
	if err != nil {
		return err
	}
	developer.ProjectIDs = resolved

	if err := m.developers.Add(ctx, developer); err != nil {
		return err
	}
	log.Info().Int("developerID", developer.ID).Ints("projectIDs", resolved).Msg("Developer saved")
	return nil
}

// SaveTechnology inserts a technology under its caller supplied id. An id
// already in use is rejected and the existing row is left as is.
func (m *AssociationManager) SaveTechnology(ctx context.Context, technology *models.Technology) error {
	exists, err := m.technologies.Exists(ctx, technology.ID)
	if err != nil {
		return err
	}
	if exists {
		return errs.NewDuplicateIdentifierError("technology", technology.ID)
	}

	resolved, err := m.resolveProjects(ctx, technology.ProjectIDs)
	if err != nil {
		return err
	}
	technology.ProjectIDs = resolved

	if err := m.technologies.Add(ctx, technology); err != nil {
		return err
	}
	log.Info().Int("technologyID", technology.ID).Msg("Technology saved")
	return nil
}

// AddDeveloperToProject links the pair on both sides. Linking an already
// linked pair succeeds without writing.
func (m *AssociationManager) AddDeveloperToProject(ctx context.Context, developerID, projectID int) error {
	developer, err := m.developers.FindByID(ctx, developerID)
	if err != nil {
		return err
	}
	if developer == nil {
		return errs.NewReferenceNotFoundError("developer", developerID)
	}
	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return errs.NewReferenceNotFoundError("project", projectID)
	}

	if slices.Contains(developer.ProjectIDs, projectID) {
		log.Debug().Int("developerID", developerID).Int("projectID", projectID).Msg("Developer already linked to project")
		return nil
	}

	developer.ProjectIDs = append(developer.ProjectIDs, projectID)
	project.DeveloperIDs = append(project.DeveloperIDs, developerID)

	if err := m.developers.Update(ctx, developer); err != nil {
		return err
	}
	return m.projects.Update(ctx, project)
}

// AssociateTechnologyWithProject appends the link on both sides every time it
// is called, so repeating a call stores the pair again.
func (m *AssociationManager) AssociateTechnologyWithProject(ctx context.Context, projectID, technologyID int) error {
	technology, err := m.technologies.FindByID(ctx, technologyID)
	if err != nil {
		return err
	}
	if technology == nil {
		return errs.NewReferenceNotFoundError("technology", technologyID)
	}
	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return errs.NewReferenceNotFoundError("project", projectID)
	}

	// TODO: reject pairs that are already linked, as AddDeveloperToProject does
	technology.ProjectIDs = append(technology.ProjectIDs, projectID)
	project.TechnologyIDs = append(project.TechnologyIDs, technologyID)

	if err := m.projects.Update(ctx, project); err != nil {
		return err
	}
	return m.technologies.Update(ctx, technology)
}

func (m *AssociationManager) DeleteDeveloper(ctx context.Context, id int) error {
	developer, err := m.developers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if developer == nil {
		return errs.NewReferenceNotFoundError("developer", id)
	}
	return m.developers.Delete(ctx, id)
}

func (m *AssociationManager) DeleteTechnology(ctx context.Context, id int) error {
	technology, err := m.technologies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if technology == nil {
		return errs.NewReferenceNotFoundError("technology", id)
	}
	return m.technologies.Delete(ctx, id)
}

// ResolveProjectLinks checks that every technology and developer a project
// names is persisted.
func (m *AssociationManager) ResolveProjectLinks(ctx context.Context, project *models.Project) error {
	if len(project.TechnologyIDs) > 0 {
		found, err := m.technologies.FindByIDs(ctx, project.TechnologyIDs)
		if err != nil {
			return err
		}
		known := make(map[int]bool, len(found))
		for _, t := range found {
			known[t.ID] = true
		}
		for _, id := range project.TechnologyIDs {
			if !known[id] {
				return errs.NewReferenceNotFoundError("technology", id)
			}
		}
	}

	if len(project.DeveloperIDs) > 0 {
		found, err := m.developers.FindByIDs(ctx, project.DeveloperIDs)
		if err != nil {
			return err
		}
		known := make(map[int]bool, len(found))
		for _, d := range found {
			known[d.ID] = true
		}
		for _, id := range project.DeveloperIDs {
			if !known[id] {
				return errs.NewReferenceNotFoundError("developer", id)
			}
		}
		project.DeveloperIDs = dedupe(project.DeveloperIDs)
	}
	return nil
}

// resolveProjects returns ids deduplicated in first-seen order, or a
// ReferenceNotFound error naming the first id without a persisted project.
func (m *AssociationManager) resolveProjects(ctx context.Context, ids []int) ([]int, error) {
	resolved := make([]int, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(resolved, id) {
			continue
		}
		project, err := m.projects.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, errs.NewReferenceNotFoundError("project", id)
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
