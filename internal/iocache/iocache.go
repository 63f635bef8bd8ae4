// Package iocache persists analysis runs and their point results.
package iocache

import (
	"sync"

	"github.com/sdphc/sdphc/internal/contract"
)

// StoreManagerImpl holds the stores used by the analysis commands.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *StoreManagerImpl) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
