// Package noise builds diagonal covariance matrices from standard
// deviations and samples synthetic sensor noise for the simulation
// harness. The core ekf package does not use it: it builds its own noise
// covariances with the matrix package and never samples noise — noise
// injection is strictly a concern of the sim package's
// ground-truth-to-measurement pipeline.
package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// DiagFromStd builds a diagonal covariance matrix from per-axis standard
// deviations.
func DiagFromStd(std ...float64) *mat.SymDense {
	variances := make([]float64, len(std))
	for i, s := range std {
		variances[i] = s * s
	}
	return mat.NewSymDense(len(variances), diagData(variances))
}

// ScalarFromStd builds a 1x1 covariance matrix from a single standard
// deviation.
func ScalarFromStd(std float64) *mat.SymDense {
	return mat.NewSymDense(1, []float64{std * std})
}

func diagData(variances []float64) []float64 {
	n := len(variances)
	data := make([]float64, n*n)
	for i, v := range variances {
		data[i*n+i] = v
	}
	return data
}

// Gaussian is a zero-mean (or arbitrary-mean) multivariate Gaussian
// sampler, used by the sim package to perturb noiseless ground truth into
// synthetic sensor readings.
type Gaussian struct {
	dist *distmv.Normal
	mean []float64
	cov  mat.Symmetric
}

// NewGaussian builds a Gaussian sampler with the given mean and covariance.
// It errors if cov is not positive definite.
func NewGaussian(mean []float64, cov mat.Symmetric) (*Gaussian, error) {
	dist, ok := newGaussianDist(mean, cov)
	if !ok {
		return nil, fmt.Errorf("noise: failed to construct Gaussian distribution")
	}
	return &Gaussian{dist: dist, mean: mean, cov: cov}, nil
}

// Sample draws one vector from the distribution.
func (g *Gaussian) Sample() []float64 {
	return g.dist.Rand(nil)
}

// Cov returns the sampler's covariance matrix.
func (g *Gaussian) Cov() mat.Symmetric {
	return g.cov
}

// Mean returns the sampler's mean vector.
func (g *Gaussian) Mean() []float64 {
	return g.mean
}

// Reset reseeds the underlying random source, decorrelating future samples
// from past ones.
func (g *Gaussian) Reset() error {
	dist, ok := newGaussianDist(g.mean, g.cov)
	if !ok {
		return fmt.Errorf("noise: failed to reset Gaussian distribution")
	}
	g.dist = dist
	return nil
}

func newGaussianDist(mean []float64, cov mat.Symmetric) (*distmv.Normal, bool) {
	seed := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	return distmv.NewNormal(mean, cov, seed)
}

// String implements fmt.Stringer.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
