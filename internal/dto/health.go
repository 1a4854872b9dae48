package dto

import "time"

// HealthResponse reports service liveness and which backend is wired.
type HealthResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
}

// UploadResponse returns the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
