package api

import (
	"github.com/rpupo63/devfolio-backend/config"
	"github.com/rpupo63/devfolio-backend/database"
	"github.com/rpupo63/devfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, c map[string]string, m *metrics) *routeHandlers {
	associations := services.NewAssociationManager(db.DeveloperRepo(), db.ProjectRepo(), db.TechnologyRepo())
	projects := services.NewProjectService(db.ProjectRepo(), db.StateRepo(), associations)
	lifecycle := services.NewProjectLifecycle(db.ProjectRepo(), db.StateRepo())
	queries := services.NewQueryFacade(db.ProjectRepo(), db.DeveloperRepo(), db.TechnologyRepo(), db.StateRepo())

	return &routeHandlers{
		developerHandler:  newDeveloperHandler(associations),
		projectHandler:    newProjectHandler(projects, lifecycle, queries, m, config.GetInt(c, "PAGE_SIZE_DEFAULT", 3)),
		technologyHandler: newTechnologyHandler(associations),
		healthHandler:     newHealthHandler(db),
	}
}
