package iocache

import (
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAnalysisStore implements the StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(runUUID string, method schema.Method, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(runUUID, method, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endTime time.Time, totalPoints int) error {
	args := m.Called(analysisID, endTime, totalPoints)
	return args.Error(0)
}

// RecordPointResult implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordPointResult(analysisID int64, result schema.PointResult) error {
	args := m.Called(analysisID, result)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return runs, args.Error(1)
}

// GetAllPointResults implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllPointResults() ([]schema.PointResultRecord, error) {
	args := m.Called()
	points, _ := args.Get(0).([]schema.PointResultRecord)
	return points, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
