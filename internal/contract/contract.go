// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/sdphc/sdphc/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking analysis runs and storing point results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(runUUID string, method schema.Method, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalPoints int) error

	// RecordPointResult stores the scores and label of one sampling point
	RecordPointResult(analysisID int64, result schema.PointResult) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllPointResults returns every recorded point result
	GetAllPointResults() ([]schema.PointResultRecord, error)

	// Close closes the underlying connection
	Close() error
}
