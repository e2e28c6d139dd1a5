package dto

// HealthCheckRequest has no body fields
type HealthCheckRequest struct{}

// HealthCheckResponse reports liveness of the named service
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
