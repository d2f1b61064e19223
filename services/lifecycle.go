package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/models"
)

// TransitionOutcome tells the caller why a transition did or did not apply.
type TransitionOutcome int

// The zero value is TransitionFailed, returned alongside a non-nil error.
const (
	TransitionFailed TransitionOutcome = iota
	TransitionApplied
	TransitionProjectNotFound
	TransitionStateMissing
)

func (o TransitionOutcome) String() string {
	switch o {
	case TransitionFailed:
		return "failed"
	case TransitionApplied:
		return "applied"
	case TransitionProjectNotFound:
		return "project not found"
	case TransitionStateMissing:
		return "state missing"
	default:
		return "unknown"
	}
}

// ProjectLifecycle sets a project's state. Any state may move to either
// target; there is no ordering guard.
type ProjectLifecycle struct {
	projects ProjectStore
	states   StateStore
}

func NewProjectLifecycle(projects ProjectStore, states StateStore) *ProjectLifecycle {
	return &ProjectLifecycle{projects: projects, states: states}
}

func (l *ProjectLifecycle) MoveToTesting(ctx context.Context, projectID int) (TransitionOutcome, error) {
	return l.moveTo(ctx, projectID, models.StateTesting)
}

func (l *ProjectLifecycle) MoveToProduction(ctx context.Context, projectID int) (TransitionOutcome, error) {
	return l.moveTo(ctx, projectID, models.StateProduction)
}

func (l *ProjectLifecycle) moveTo(ctx context.Context, projectID, stateID int) (TransitionOutcome, error) {
	project, err := l.projects.FindByID(ctx, projectID)
	if err != nil {
		return TransitionFailed, err
	}
	if project == nil {
		return TransitionProjectNotFound, nil
	}

	state, err := l.states.FindByID(ctx, stateID)
	if err != nil {
		return TransitionFailed, err
	}
	if state == nil {
		log.Warn().Int("stateID", stateID).Msg("State row missing, check the status seed data")
		return TransitionStateMissing, nil
	}

	if err := l.projects.SetState(ctx, projectID, state.ID); err != nil {
		return TransitionFailed, err
	}
	log.Info().Int("projectID", projectID).Str("state", state.Name).Msg("Project state changed")
	return TransitionApplied, nil
}
