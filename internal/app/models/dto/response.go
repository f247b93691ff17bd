package dto

import "time"

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status  string    `json:"status"`
	Backend bool      `json:"backend"`
	Time    time.Time `json:"time"`
}
