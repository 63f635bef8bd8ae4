package core

import (
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// trackRun records an analysis run in the configured store. Point results are only
// stored for the threshold method. Tracking failures never fail the analysis.
func trackRun(mgr contract.StoreManager, method schema.Method, cfg *contract.Config, runID string, start time.Time, total int, points []schema.PointResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}

	analysisID, err := store.BeginAnalysis(runID, method, start, cfg.Params())
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return
	}
	if analysisID <= 0 {
		return
	}

	for _, p := range points {
		if err := store.RecordPointResult(analysisID, p); err != nil {
			contract.LogWarn("Failed to record point "+p.ID, err)
		}
	}

	if err := store.EndAnalysis(analysisID, time.Now(), total); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
