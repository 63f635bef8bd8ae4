package algo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MaxComponents is the number of principal components kept at most.
const MaxComponents = 3

// ErrInsufficientData is returned when PCA has fewer than two rows or columns.
var ErrInsufficientData = errors.New("insufficient data for principal component analysis")

// PCAOutput holds the numeric result of Standardized PCA.
type PCAOutput struct {
	Loadings      [][]float64 // [column][component]
	VarianceRatio []float64
	Scores        [][]float64 // [row][component]
}

// Standardize centers every column and scales it to unit population variance.
// Columns with zero variance are only centred.
func Standardize(rows [][]float64) *mat.Dense {
	n, p := len(rows), len(rows[0])
	out := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := range p {
		for i := range n {
			col[i] = rows[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		for i := range n {
			v := col[i] - mean
			if std > 0 && !math.IsNaN(std) {
				v /= std
			}
			out.Set(i, j, v)
		}
	}
	return out
}

// StandardizedPCA runs principal component analysis on standardized rows.
// Each component is oriented so that its largest absolute loading is positive.
func StandardizedPCA(rows [][]float64) (PCAOutput, error) {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return PCAOutput{}, ErrInsufficientData
	}
	n, p := len(rows), len(rows[0])
	scaled := Standardize(rows)

	var pc stat.PC
	if ok := pc.PrincipalComponents(scaled, nil); !ok {
		return PCAOutput{}, errors.New("principal component decomposition failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	k := min(MaxComponents, p, len(vars))
	for j := range k {
		col := mat.Col(nil, j, &vecs)
		idx := 0
		for i := range col {
			if math.Abs(col[i]) > math.Abs(col[idx]) {
				idx = i
			}
		}
		if col[idx] < 0 {
			for i := range col {
				vecs.Set(i, j, -col[i])
			}
		}
	}

	out := PCAOutput{
		Loadings:      make([][]float64, p),
		VarianceRatio: make([]float64, k),
		Scores:        make([][]float64, n),
	}
	total := floats.Sum(vars)
	for j := range k {
		if total > 0 {
			out.VarianceRatio[j] = vars[j] / total
		}
	}
	for i := range p {
		out.Loadings[i] = make([]float64, k)
		for j := range k {
			out.Loadings[i][j] = vecs.At(i, j)
		}
	}

	var scores mat.Dense
	scores.Mul(scaled, vecs.Slice(0, p, 0, k))
	for i := range n {
		out.Scores[i] = mat.Row(nil, i, &scores)
	}
	return out, nil
}
