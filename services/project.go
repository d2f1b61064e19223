package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
)

// ProjectService owns project writes. Reads go through QueryFacade.
type ProjectService struct {
	projects     ProjectStore
	states       StateStore
	associations *AssociationManager
	now          func() time.Time
}

func NewProjectService(projects ProjectStore, states StateStore, associations *AssociationManager) *ProjectService {
	return &ProjectService{
		projects:     projects,
		states:       states,
		associations: associations,
		now:          time.Now,
	}
}

// Create inserts a project starting today or later. New projects are placed
// in Draft when the Draft row is seeded, otherwise they carry no state.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	if startsBeforeToday(time.Time(project.StartDate), s.now()) {
		return errs.NewBusinessRuleError("start_date", "The start date cannot be before today.")
	}
	if err := s.associations.ResolveProjectLinks(ctx, project); err != nil {
		return err
	}

	draft, err := s.states.FindByID(ctx, models.StateDraft)
	if err != nil {
		return err
	}
	if draft != nil {
		stateID := draft.ID
		project.StateID = &stateID
	}

	if err := s.projects.Add(ctx, project); err != nil {
		return err
	}
	log.Info().Int("projectID", project.ID).Str("name", project.Name).Msg("Project created")
	return nil
}

// Update replaces every field and both link sets of an existing project. The
// state is kept; it only changes through ProjectLifecycle.
func (s *ProjectService) Update(ctx context.Context, id int, project *models.Project) error {
	existing, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.NewNotFound(fmt.Sprintf("There isn't any project with the ID: %d", id))
	}
	if err := s.associations.ResolveProjectLinks(ctx, project); err != nil {
		return err
	}

	project.ID = id
	project.StateID = existing.StateID
	return s.projects.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	existing, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.NewLookupFailure(fmt.Sprintf("No project found with ID: %d", id))
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int("projectID", id).Msg("Project deleted")
	return nil
}

// startsBeforeToday compares calendar dates in now's location.
func startsBeforeToday(start, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	sy, sm, sd := start.Date()
	return time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).Before(today)
}
