package noise

import (
	"fmt"
	"math"
	rnd "math/rand"

	"gonum.org/v1/gonum/mat"
)

// CorrelatedSamplesN draws n correlated zero-mean samples from cov via an
// SVD factorization (more numerically stable than Cholesky when cov is
// near-singular, which a hand-tuned process noise matrix occasionally is).
// It returns a matrix with the samples stored in its columns. Used by the
// simulation harness to inject joint position/velocity noise onto a GPS
// fix rather than sampling each axis independently.
func CorrelatedSamplesN(cov mat.Symmetric, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("noise: invalid sample count %d", n)
	}

	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDFull); !ok {
		return nil, fmt.Errorf("noise: SVD factorization of covariance failed")
	}

	U := new(mat.Dense)
	svd.UTo(U)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	U.Mul(U, diag)

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(U, samples)

	return samples, nil
}
