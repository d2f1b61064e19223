package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	developerHandler  developerHandler
	projectHandler    projectHandler
	technologyHandler technologyHandler
	healthHandler     healthHandler
}

// Envelope is the response body shared by most endpoints
// @Description Standard response envelope
type Envelope struct {
	Message string `json:"message" example:"Project created successfully"`
	Data    any    `json:"data"`
}

