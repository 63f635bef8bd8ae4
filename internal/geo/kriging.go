package geo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// VariogramLags is the number of lag bins of the experimental variogram.
const VariogramLags = 6

// maxCondition bounds the condition number of the kriging system.
const maxCondition = 1e14

// ErrIllConditioned is returned when the kriging system cannot be solved reliably.
var ErrIllConditioned = errors.New("kriging system is ill-conditioned")

// Spherical is a spherical variogram model without nugget.
type Spherical struct {
	Sill  float64
	Range float64
}

// Gamma evaluates the semivariance at distance h.
func (m Spherical) Gamma(h float64) float64 {
	if h <= 0 {
		return 0
	}
	if h >= m.Range {
		return m.Sill
	}
	r := h / m.Range
	return m.Sill * (1.5*r - 0.5*r*r*r)
}

// OrdinaryKriging predicts values from samples with a fitted spherical variogram.
type OrdinaryKriging struct {
	samples []Sample
	model   Spherical
	lu      mat.LU
}

// NewOrdinaryKriging fits the variogram and factorizes the kriging system.
// Samples sharing a location are averaged first.
func NewOrdinaryKriging(samples []Sample) (*OrdinaryKriging, error) {
	samples = mergeDuplicates(samples)
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	k := &OrdinaryKriging{samples: samples, model: FitSpherical(samples)}
	if len(samples) == 1 {
		return k, nil
	}

	n := len(samples)
	a := mat.NewDense(n+1, n+1, nil)
	for i := range n {
		for j := range n {
			a.Set(i, j, k.model.Gamma(dist(samples[i], samples[j])))
		}
		a.Set(i, n, 1)
		a.Set(n, i, 1)
	}
	k.lu.Factorize(a)
	if c := k.lu.Cond(); math.IsInf(c, 1) || c > maxCondition {
		return nil, ErrIllConditioned
	}
	return k, nil
}

// Model returns the fitted variogram.
func (k *OrdinaryKriging) Model() Spherical {
	return k.model
}

// Predict estimates the value at (x, y).
func (k *OrdinaryKriging) Predict(x, y float64) float64 {
	n := len(k.samples)
	if n == 1 {
		return k.samples[0].V
	}
	b := mat.NewVecDense(n+1, nil)
	target := Sample{X: x, Y: y}
	for i, s := range k.samples {
		b.SetVec(i, k.model.Gamma(dist(s, target)))
	}
	b.SetVec(n, 1)

	var w mat.VecDense
	if err := k.lu.SolveVecTo(&w, false, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return math.NaN()
		}
	}
	v := 0.0
	for i, s := range k.samples {
		v += w.AtVec(i) * s.V
	}
	return v
}

// FitSpherical fits sill and range to the experimental variogram by a coarse least-squares search.
func FitSpherical(samples []Sample) Spherical {
	lags, gammas := ExperimentalVariogram(samples, VariogramLags)
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.V
	}
	fallback := Spherical{Sill: stat.PopVariance(values, nil), Range: 1}
	if len(lags) == 0 {
		return fallback
	}
	maxLag := lags[len(lags)-1]
	fallback.Range = maxLag
	if maxLag <= 0 {
		return fallback
	}

	best, bestErr := fallback, math.Inf(1)
	const steps = 40
	for i := 1; i <= steps; i++ {
		r := maxLag * 2 * float64(i) / steps
		unit := Spherical{Sill: 1, Range: r}
		var num, den float64
		for j, h := range lags {
			f := unit.Gamma(h)
			num += f * gammas[j]
			den += f * f
		}
		if den == 0 || num <= 0 {
			continue
		}
		m := Spherical{Sill: num / den, Range: r}
		sse := 0.0
		for j, h := range lags {
			d := m.Gamma(h) - gammas[j]
			sse += d * d
		}
		if sse < bestErr {
			best, bestErr = m, sse
		}
	}
	if best.Sill <= 0 {
		return fallback
	}
	return best
}

// ExperimentalVariogram bins pairwise semivariances into nlags equal-width lags
// between the smallest and largest pair distance. Empty bins are skipped.
func ExperimentalVariogram(samples []Sample, nlags int) ([]float64, []float64) {
	var ds, gs []float64
	for i := range samples {
		for j := i + 1; j < len(samples); j++ {
			ds = append(ds, dist(samples[i], samples[j]))
			d := samples[i].V - samples[j].V
			gs = append(gs, 0.5*d*d)
		}
	}
	if len(ds) == 0 || nlags <= 0 {
		return nil, nil
	}
	lo, hi := ds[0], ds[0]
	for _, d := range ds {
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	width := (hi - lo) / float64(nlags)
	sumD := make([]float64, nlags)
	sumG := make([]float64, nlags)
	count := make([]int, nlags)
	for i, d := range ds {
		bin := nlags - 1
		if width > 0 {
			bin = min(int((d-lo)/width), nlags-1)
		}
		sumD[bin] += d
		sumG[bin] += gs[i]
		count[bin]++
	}
	var lags, gammas []float64
	for b := range nlags {
		if count[b] == 0 {
			continue
		}
		lags = append(lags, sumD[b]/float64(count[b]))
		gammas = append(gammas, sumG[b]/float64(count[b]))
	}
	return lags, gammas
}

func mergeDuplicates(samples []Sample) []Sample {
	type key struct{ x, y float64 }
	index := make(map[key]int)
	var out []Sample
	var counts []int
	for _, s := range samples {
		k := key{s.X, s.Y}
		if i, ok := index[k]; ok {
			out[i].V += s.V
			counts[i]++
			continue
		}
		index[k] = len(out)
		out = append(out, s)
		counts = append(counts, 1)
	}
	for i := range out {
		out[i].V /= float64(counts[i])
	}
	return out
}

func dist(a, b Sample) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
