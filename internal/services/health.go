package services

import (
	"fmt"
	"log"

	"github.com/schellingx/piggyweb/internal/config"
	"github.com/schellingx/piggyweb/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	DataFile     string            `json:"dataFile"`
	Assistant    string            `json:"assistant,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB, dataFile *DataFile) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check chat database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the state document location
	if err := dataFile.Accessible(); err != nil {
		result.Status = "unhealthy"
		result.DataFile = "error"
		result.Details["data_file_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Data file check failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; data file check failed: %v", err)
		}
		log.Printf("Health check failed - data file: %v", err)
	} else {
		result.DataFile = "ok"
		result.Details["data_file_path"] = dataFile.Path()
	}

	// Check assistant reachability when configured
	if cfg.AssistantEnabled() && cfg.GeminiBaseURL != "" {
		if err := utils.PingAssistant(cfg.GeminiBaseURL); err != nil {
			result.Assistant = "unreachable"
			result.Details["assistant_error"] = err.Error()
			log.Printf("Health check warning - assistant ping: %v", err)
		} else {
			result.Assistant = "ok"
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
