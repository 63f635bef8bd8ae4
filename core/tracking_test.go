package core

import (
	"testing"
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/iocache"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTrackRun(t *testing.T) {
	cfg := &contract.Config{PointsPath: "survey.csv"}
	points := []schema.PointResult{
		{SamplePoint: schema.SamplePoint{ID: "A"}},
		{SamplePoint: schema.SamplePoint{ID: "B"}},
	}

	t.Run("records every point", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", "run-1", schema.ThresholdMethod, mock.Anything, cfg.Params()).Return(int64(4), nil)
		store.On("RecordPointResult", int64(4), points[0]).Return(nil)
		store.On("RecordPointResult", int64(4), points[1]).Return(assert.AnError)
		store.On("EndAnalysis", int64(4), mock.Anything, 2).Return(nil)
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetAnalysisStore").Return(store)

		trackRun(mgr, schema.ThresholdMethod, cfg, "run-1", time.Now(), len(points), points)
		store.AssertExpectations(t)
	})

	t.Run("no-op store id", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetAnalysisStore").Return(store)

		trackRun(mgr, schema.BackgroundMethod, cfg, "run-2", time.Now(), 2, nil)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil manager", func(t *testing.T) {
		trackRun(nil, schema.PCAMethod, cfg, "run-3", time.Now(), 0, nil)
	})
}
