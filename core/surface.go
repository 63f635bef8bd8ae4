package core

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/internal/geo"
	"github.com/sdphc/sdphc/schema"
)

// surface interpolates samples on a size×size grid over bound, masked to the survey boundary.
func surface(ctx context.Context, method schema.InterpolationMethod, samples []geo.Sample, bound orb.Bound, size int, sv schema.Survey) (*schema.Grid, error) {
	grid := geo.NewGrid(bound, size, size)
	if err := geo.Interpolate(ctx, method, samples, grid); err != nil {
		return nil, err
	}
	geo.Mask(grid, sv.Boundary)
	return grid, nil
}
