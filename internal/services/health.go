package services

import (
	"context"

	"meditech-backend/internal/database"
)

// HealthService reports service and database health
type HealthService struct{}

// NewHealthService creates a new health service
func NewHealthService() *HealthService {
	return &HealthService{}
}

// HealthStatus is the health check result
type HealthStatus struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// Check reports overall health; a failing database ping degrades the status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   "healthy",
		Service:  "Meditech API",
		Database: "up",
	}
	if err := database.HealthCheck(); err != nil {
		status.Status = "degraded"
		status.Database = "down"
	}
	return status
}
