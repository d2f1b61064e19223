package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/devfolio-backend/database"
	"github.com/rpupo63/devfolio-backend/database/dbtest"
	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/models"
	"github.com/rpupo63/devfolio-backend/services"
)

type fixture struct {
	ctx          context.Context
	gorm         *gorm.DB
	db           database.Database
	associations *services.AssociationManager
	lifecycle    *services.ProjectLifecycle
	projects     *services.ProjectService
	queries      *services.QueryFacade
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g := dbtest.Open(t)
	db := database.New(g)
	am := services.NewAssociationManager(db.DeveloperRepo(), db.ProjectRepo(), db.TechnologyRepo())
	return &fixture{
		ctx:          context.Background(),
		gorm:         g,
		db:           db,
		associations: am,
		lifecycle:    services.NewProjectLifecycle(db.ProjectRepo(), db.StateRepo()),
		projects:     services.NewProjectService(db.ProjectRepo(), db.StateRepo(), am),
		queries:      services.NewQueryFacade(db.ProjectRepo(), db.DeveloperRepo(), db.TechnologyRepo(), db.StateRepo()),
	}
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(services.DateLayout)
}

func (f *fixture) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	p, err := services.ProjectInput{Name: name, Description: "a project", StartDate: tomorrow()}.ToModel()
	require.NoError(t, err)
	require.NoError(t, f.projects.Create(f.ctx, p))
	return p
}

func (f *fixture) createDeveloper(t *testing.T, projectIDs ...int) *models.Developer {
	t.Helper()
	d := services.DeveloperInput{Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", ProjectIDs: projectIDs}.ToModel()
	require.NoError(t, f.associations.SaveDeveloper(f.ctx, d))
	return d
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gorm.Model(model).Count(&n).Error)
	return n
}

func TestSaveDeveloper_UnknownProjectWritesNothing(t *testing.T) {
	f := newFixture(t)

	d := services.DeveloperInput{Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", ProjectIDs: []int{99}}.ToModel()
	err := f.associations.SaveDeveloper(f.ctx, d)

	require.Error(t, err)
	assert.True(t, errs.IsReferenceNotFound(err))
	assert.EqualError(t, err, "No project exists with the ID: 99")
	assert.Zero(t, f.countRows(t, &models.Developer{}))
}

func TestSaveDeveloper_DeduplicatesProjects(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")

	d := f.createDeveloper(t, p.ID, p.ID)

	assert.Equal(t, []int{p.ID}, d.ProjectIDs)
	stored, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{d.ID}, stored.DeveloperIDs)
}

func TestSaveTechnology_DuplicateLeavesExistingRow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 5, Name: "Go"}))

	err := f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 5, Name: "Golang"})

	require.Error(t, err)
	assert.True(t, errs.IsDuplicateIdentifier(err))
	stored, err := f.db.TechnologyRepo().FindByID(f.ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.Name)
}

func TestSaveTechnology_UnknownProject(t *testing.T) {
	f := newFixture(t)

	err := f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 1, Name: "Go", ProjectIDs: []int{3}})

	assert.True(t, errs.IsReferenceNotFound(err))
	assert.Zero(t, f.countRows(t, &models.Technology{}))
}

func TestAddDeveloperToProject_Idempotent(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")
	d := f.createDeveloper(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.associations.AddDeveloperToProject(f.ctx, d.ID, p.ID))
	}

	storedDev, err := f.db.DeveloperRepo().FindByID(f.ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{p.ID}, storedDev.ProjectIDs)
	storedProject, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{d.ID}, storedProject.DeveloperIDs)
}

func TestAddDeveloperToProject_ChecksDeveloperFirst(t *testing.T) {
	f := newFixture(t)

	err := f.associations.AddDeveloperToProject(f.ctx, 7, 8)
	assert.EqualError(t, err, "No developer exists with the ID: 7")

	d := f.createDeveloper(t)
	err = f.associations.AddDeveloperToProject(f.ctx, d.ID, 8)
	assert.EqualError(t, err, "No project exists with the ID: 8")
	assert.True(t, errs.IsReferenceNotFound(err))
}

func TestAssociateTechnologyWithProject_NotIdempotent(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")
	require.NoError(t, f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 5, Name: "Go"}))

	require.NoError(t, f.associations.AssociateTechnologyWithProject(f.ctx, p.ID, 5))
	require.NoError(t, f.associations.AssociateTechnologyWithProject(f.ctx, p.ID, 5))

	storedProject, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, storedProject.TechnologyIDs)
	storedTech, err := f.db.TechnologyRepo().FindByID(f.ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{p.ID, p.ID}, storedTech.ProjectIDs)
}

func TestAssociateTechnologyWithProject_MissingEntities(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")

	err := f.associations.AssociateTechnologyWithProject(f.ctx, p.ID, 5)
	assert.EqualError(t, err, "No technology exists with the ID: 5")

	require.NoError(t, f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 5, Name: "Go"}))
	err = f.associations.AssociateTechnologyWithProject(f.ctx, 10, 5)
	assert.EqualError(t, err, "No project exists with the ID: 10")
}

func TestDeleteDeveloperAndTechnology(t *testing.T) {
	f := newFixture(t)

	assert.True(t, errs.IsReferenceNotFound(f.associations.DeleteDeveloper(f.ctx, 1)))
	assert.True(t, errs.IsReferenceNotFound(f.associations.DeleteTechnology(f.ctx, 1)))

	p := f.createProject(t, "Portfolio")
	d := f.createDeveloper(t, p.ID)
	require.NoError(t, f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 1, Name: "Go", ProjectIDs: []int{p.ID}}))

	require.NoError(t, f.associations.DeleteDeveloper(f.ctx, d.ID))
	require.NoError(t, f.associations.DeleteTechnology(f.ctx, 1))

	stored, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.DeveloperIDs)
	assert.Empty(t, stored.TechnologyIDs)
}

func TestLifecycle_NoOrderingGuard(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")

	steps := []struct {
		move func(context.Context, int) (services.TransitionOutcome, error)
		want int
	}{
		{f.lifecycle.MoveToTesting, models.StateTesting},
		{f.lifecycle.MoveToProduction, models.StateProduction},
		{f.lifecycle.MoveToTesting, models.StateTesting},
		{f.lifecycle.MoveToTesting, models.StateTesting},
	}
	for _, step := range steps {
		outcome, err := step.move(f.ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, services.TransitionApplied, outcome)

		stored, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.StateID)
		assert.Equal(t, step.want, *stored.StateID)
	}
}

func TestLifecycle_MissingProjectAndState(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.lifecycle.MoveToProduction(f.ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, services.TransitionProjectNotFound, outcome)

	p := f.createProject(t, "Portfolio")
	require.NoError(t, f.gorm.Delete(&models.State{}, "status_id = ?", models.StateTesting).Error)

	outcome, err = f.lifecycle.MoveToTesting(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, services.TransitionStateMissing, outcome)

	stored, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StateID)
	assert.Equal(t, models.StateDraft, *stored.StateID)
}

type failingProjects struct {
	services.ProjectStore
}

func (failingProjects) FindByID(context.Context, int) (*models.Project, error) {
	return nil, errors.New("connection reset")
}

func TestLifecycle_StoreFailureIsNotApplied(t *testing.T) {
	f := newFixture(t)
	lifecycle := services.NewProjectLifecycle(failingProjects{}, f.db.StateRepo())

	outcome, err := lifecycle.MoveToTesting(f.ctx, 1)
	require.Error(t, err)
	assert.Equal(t, services.TransitionFailed, outcome)
	assert.NotEqual(t, services.TransitionApplied, outcome)
	assert.Equal(t, "failed", outcome.String())
}

func TestProjectService_CreateRejectsPastStart(t *testing.T) {
	f := newFixture(t)
	yesterday := time.Now().AddDate(0, 0, -1).Format(services.DateLayout)
	p, err := services.ProjectInput{Name: "Late", Description: "too late", StartDate: yesterday}.ToModel()
	require.NoError(t, err)

	err = f.projects.Create(f.ctx, p)

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.EqualError(t, err, "The start date cannot be before today.")
	assert.Zero(t, f.countRows(t, &models.Project{}))
}

func TestProjectService_CreateAcceptsToday(t *testing.T) {
	f := newFixture(t)
	today := time.Now().Format(services.DateLayout)
	p, err := services.ProjectInput{Name: "Now", Description: "right on time", StartDate: today}.ToModel()
	require.NoError(t, err)

	require.NoError(t, f.projects.Create(f.ctx, p))
	require.NotNil(t, p.StateID)
	assert.Equal(t, models.StateDraft, *p.StateID)
}

func TestProjectService_CreateChecksLinks(t *testing.T) {
	f := newFixture(t)
	p, err := services.ProjectInput{Name: "Linked", Description: "links", StartDate: tomorrow(), TechnologyIDs: []int{4}}.ToModel()
	require.NoError(t, err)

	err = f.projects.Create(f.ctx, p)

	assert.EqualError(t, err, "No technology exists with the ID: 4")
	assert.Zero(t, f.countRows(t, &models.Project{}))
}

func TestProjectService_UpdateKeepsState(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Before")
	_, err := f.lifecycle.MoveToProduction(f.ctx, p.ID)
	require.NoError(t, err)

	past := time.Now().AddDate(-1, 0, 0).Format(services.DateLayout)
	replacement, err := services.ProjectInput{Name: "After", Description: "renamed", StartDate: past}.ToModel()
	require.NoError(t, err)
	require.NoError(t, f.projects.Update(f.ctx, p.ID, replacement))

	stored, err := f.db.ProjectRepo().FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Name)
	require.NotNil(t, stored.StateID)
	assert.Equal(t, models.StateProduction, *stored.StateID)
}

func TestProjectService_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	replacement, err := services.ProjectInput{Name: "Ghost", Description: "none", StartDate: tomorrow()}.ToModel()
	require.NoError(t, err)

	err = f.projects.Update(f.ctx, 41, replacement)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.EqualError(t, err, "There isn't any project with the ID: 41")
}

func TestProjectService_DeleteMissingMutatesNothing(t *testing.T) {
	f := newFixture(t)
	f.createProject(t, "Keep me")

	err := f.projects.Delete(f.ctx, 999)

	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.EqualValues(t, 1, f.countRows(t, &models.Project{}))
}

func TestQueryFacade_FindProjectByName(t *testing.T) {
	f := newFixture(t)
	f.createProject(t, "Other")
	want := f.createProject(t, "MyFooProject")
	f.createProject(t, "FooBar")

	view, err := f.queries.FindProjectByName(f.ctx, "Foo")
	require.NoError(t, err)
	assert.Equal(t, want.ID, view.ID)
	assert.Equal(t, "Draft", view.State)

	_, err = f.queries.FindProjectByName(f.ctx, "foo")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestQueryFacade_ListProjects(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		f.createProject(t, name)
	}

	page, err := f.queries.ListProjects(f.ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "d", page.Content[0].Name)
	assert.EqualValues(t, 4, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.First)
	assert.True(t, page.Last)

	_, err = f.queries.ListProjects(f.ctx, -1, 3)
	assert.True(t, errs.IsValidation(err))
	_, err = f.queries.ListProjects(f.ctx, 0, 0)
	assert.True(t, errs.IsValidation(err))

	_, err = f.queries.ListProjects(f.ctx, -1, 0)
	require.Error(t, err)
	assert.Equal(t, "page: must be zero or greater\nsize: must be at least 1\n", err.Error())
}

func TestQueryFacade_ListProjectsOffsetOverflow(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		f.createProject(t, name)
	}

	page, err := f.queries.ListProjects(f.ctx, math.MaxInt/3+1, 3)
	require.Error(t, err)
	assert.Nil(t, page)
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, "page: is out of range for the page size\n", err.Error())

	page, err = f.queries.ListProjects(f.ctx, math.MaxInt/3, 3)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.False(t, page.First)
	assert.True(t, page.Last)
}

func TestQueryFacade_FindProjectsByTechnology(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Portfolio")
	d := f.createDeveloper(t, p.ID)
	require.NoError(t, f.associations.SaveTechnology(f.ctx, &models.Technology{ID: 5, Name: "Go"}))
	require.NoError(t, f.associations.AssociateTechnologyWithProject(f.ctx, p.ID, 5))

	views, err := f.queries.FindProjectsByTechnology(f.ctx, "Go")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, []services.TechnologyView{{ID: 5, Name: "Go"}}, views[0].Technologies)
	require.Len(t, views[0].Developers, 1)
	assert.Equal(t, d.ID, views[0].Developers[0].ID)

	none, err := f.queries.FindProjectsByTechnology(f.ctx, "Rust")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
