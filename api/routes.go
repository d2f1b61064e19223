package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the REST surface under /api/v1
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.healthz())

	r.Route("/api/v1", func(r chi.Router) {
		// Developer Handler endpoints
		r.Post("/developers", handlers.developerHandler.createDeveloper())
		r.Delete("/developers/{id}", handlers.developerHandler.deleteDeveloper())
		r.Post("/developers/worked/{developerId}/{projectId}", handlers.developerHandler.addDeveloperToProject())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{name}", handlers.projectHandler.getProjectByName())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{id}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())
		r.Patch("/projects/totesting/{id}", handlers.projectHandler.moveToTesting())
		r.Patch("/projects/toprod/{id}", handlers.projectHandler.moveToProduction())
		r.Get("/projects/tec/{tech}", handlers.projectHandler.getProjectsByTechnology())

		// Technology Handler endpoints
		r.Post("/technologies", handlers.technologyHandler.createTechnology())
		r.Delete("/technologies/{id}", handlers.technologyHandler.deleteTechnology())
		r.Post("/technologies/used/{projectId}/{technologyId}", handlers.technologyHandler.associateTechnologyWithProject())
	})
}
