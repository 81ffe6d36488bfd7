package health

// Input represents the input for health check endpoint
type Input struct{}

// Output represents the output for health check endpoint
type Output struct {
	Body HealthResponse
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" example:"OK" doc:"Health status of the service"`
	Message string `json:"message" example:"Health Surveillance API is running"`
}
