package core

import (
	"fmt"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/survey"
	"github.com/sdphc/sdphc/schema"
)

// LoadSurvey reads the point dataset and the optional boundary named by cfg.
func LoadSurvey(cfg *contract.Config) (schema.Survey, error) {
	sv, err := survey.Load(cfg.PointsPath, survey.Options{
		Fields:         cfg.Fields,
		IDField:        cfg.IDField,
		XField:         cfg.XField,
		YField:         cfg.YField,
		DropIncomplete: cfg.DropIncomplete,
	})
	if err != nil {
		return schema.Survey{}, err
	}
	if len(sv.Points) == 0 {
		return schema.Survey{}, fmt.Errorf("no sampling points found in %s", cfg.PointsPath)
	}

	if cfg.BoundaryPath != "" {
		boundary, err := survey.ReadBoundary(cfg.BoundaryPath)
		if err != nil {
			return schema.Survey{}, fmt.Errorf("failed to read boundary: %w", err)
		}
		sv.Boundary = boundary
	}
	return sv, nil
}
