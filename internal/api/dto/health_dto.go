package dto

// HealthResponse reports liveness or readiness.
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service,omitempty"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
