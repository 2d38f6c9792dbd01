// Package matrix implements a fixed-capacity dense matrix type for the
// estimator core. Unlike gonum's mat.Dense, Matrix never allocates on the
// heap: every value carries its storage as a [MaxSize][MaxSize]float64 array,
// sized for the 16-state filter this module implements.
package matrix

import "fmt"

// MaxSize is the largest number of rows or columns a Matrix can hold.
const MaxSize = 16

// singularTol is the pivot magnitude below which Gauss-Jordan elimination
// treats a matrix as singular.
const singularTol = 1e-6

// Matrix is a fixed-capacity dense matrix. The zero value is not a valid
// matrix; use New or Identity to construct one.
type Matrix struct {
	data       [MaxSize][MaxSize]float64
	rows, cols int
}

// New returns a rows x cols matrix of zeros. rows and cols are clamped to
// MaxSize.
func New(rows, cols int) Matrix {
	if rows > MaxSize {
		rows = MaxSize
	}
	if cols > MaxSize {
		cols = MaxSize
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Matrix{rows: rows, cols: cols}
}

// Identity returns the size x size identity matrix.
func Identity(size int) Matrix {
	m := New(size, size)
	for i := 0; i < m.rows; i++ {
		m.data[i][i] = 1.0
	}
	return m
}

// Diagonal returns a size x size matrix with value on every diagonal entry.
func Diagonal(size int, value float64) Matrix {
	m := New(size, size)
	for i := 0; i < m.rows; i++ {
		m.data[i][i] = value
	}
	return m
}

// DiagonalVector returns a square matrix sized len(values) with values
// placed along the diagonal.
func DiagonalVector(values []float64) Matrix {
	m := New(len(values), len(values))
	for i := range values {
		m.data[i][i] = values[i]
	}
	return m
}

// Dims returns the number of rows and columns of m.
func (m Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the value at (row, col). It panics if the index is out of
// range, matching gonum's mat.Matrix convention.
func (m Matrix) At(row, col int) float64 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range for %dx%d matrix", row, col, m.rows, m.cols))
	}
	return m.data[row][col]
}

// Set assigns value to (row, col). It panics if the index is out of range.
func (m *Matrix) Set(row, col int, value float64) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range for %dx%d matrix", row, col, m.rows, m.cols))
	}
	m.data[row][col] = value
}

// SetRow assigns vec to row row, starting at column 0.
func (m *Matrix) SetRow(row int, vec []float64) error {
	if row < 0 || row >= m.rows {
		return fmt.Errorf("matrix: row %d out of range for %d rows", row, m.rows)
	}
	if len(vec) > m.cols {
		return fmt.Errorf("matrix: vector length %d exceeds %d columns", len(vec), m.cols)
	}
	for j, v := range vec {
		m.data[row][j] = v
	}
	return nil
}

// SetColumn assigns vec to column col, starting at row 0.
func (m *Matrix) SetColumn(col int, vec []float64) error {
	if col < 0 || col >= m.cols {
		return fmt.Errorf("matrix: column %d out of range for %d columns", col, m.cols)
	}
	if len(vec) > m.rows {
		return fmt.Errorf("matrix: vector length %d exceeds %d rows", len(vec), m.rows)
	}
	for i, v := range vec {
		m.data[i][col] = v
	}
	return nil
}

// Row returns a copy of row row.
func (m Matrix) Row(row int) ([]float64, error) {
	if row < 0 || row >= m.rows {
		return nil, fmt.Errorf("matrix: row %d out of range for %d rows", row, m.rows)
	}
	out := make([]float64, m.cols)
	copy(out, m.data[row][:m.cols])
	return out, nil
}

// Column returns a copy of column col.
func (m Matrix) Column(col int) ([]float64, error) {
	if col < 0 || col >= m.cols {
		return nil, fmt.Errorf("matrix: column %d out of range for %d columns", col, m.cols)
	}
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.data[i][col]
	}
	return out, nil
}

// Zero sets every entry of m to 0, keeping its dimensions.
func (m *Matrix) Zero() {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.data[i][j] = 0
		}
	}
}

// Add returns a + b. It errors if the dimensions do not match.
func Add(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("matrix: dimension mismatch in Add: %dx%d vs %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	result := New(a.rows, a.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			result.data[i][j] = a.data[i][j] + b.data[i][j]
		}
	}
	return result, nil
}

// Sub returns a - b. It errors if the dimensions do not match.
func Sub(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("matrix: dimension mismatch in Sub: %dx%d vs %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	result := New(a.rows, a.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			result.data[i][j] = a.data[i][j] - b.data[i][j]
		}
	}
	return result, nil
}

// Mul returns a * b. It errors if a's column count does not match b's row
// count.
func Mul(a, b Matrix) (Matrix, error) {
	if a.cols != b.rows {
		return Matrix{}, fmt.Errorf("matrix: dimension mismatch in Mul: %dx%d * %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	result := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var sum float64
			for k := 0; k < a.cols; k++ {
				sum += a.data[i][k] * b.data[k][j]
			}
			result.data[i][j] = sum
		}
	}
	return result, nil
}

// Scale returns m scaled by scalar.
func Scale(m Matrix, scalar float64) Matrix {
	result := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = m.data[i][j] * scalar
		}
	}
	return result
}

// Transpose returns the transpose of m.
func Transpose(m Matrix) Matrix {
	result := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j][i] = m.data[i][j]
		}
	}
	return result
}

// Inverse returns the inverse of m, computed by Gauss-Jordan elimination
// with partial pivoting over the augmented matrix [m|I]. It errors if m is
// not square or if a pivot magnitude falls below the singularity tolerance.
func Inverse(m Matrix) (Matrix, error) {
	if m.rows != m.cols {
		return Matrix{}, fmt.Errorf("matrix: Inverse requires a square matrix, got %dx%d", m.rows, m.cols)
	}
	n := m.rows

	aug := New(n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.data[i][j] = m.data[i][j]
		}
		aug.data[i][i+n] = 1.0
	}

	for i := 0; i < n; i++ {
		pivot := i
		maxVal := abs(aug.data[i][i])
		for j := i + 1; j < n; j++ {
			if v := abs(aug.data[j][i]); v > maxVal {
				maxVal = v
				pivot = j
			}
		}
		if maxVal < singularTol {
			return Matrix{}, fmt.Errorf("matrix: Inverse failed, matrix is singular at column %d", i)
		}
		if pivot != i {
			for j := 0; j < 2*n; j++ {
				aug.data[i][j], aug.data[pivot][j] = aug.data[pivot][j], aug.data[i][j]
			}
		}
		pivotVal := aug.data[i][i]
		for j := 0; j < 2*n; j++ {
			aug.data[i][j] /= pivotVal
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			factor := aug.data[j][i]
			for k := 0; k < 2*n; k++ {
				aug.data[j][k] -= factor * aug.data[i][k]
			}
		}
	}

	result := New(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			result.data[i][j] = aug.data[i][j+n]
		}
	}
	return result, nil
}

// Copy returns an independent copy of m. Matrix is a value type, so plain
// assignment already copies; Copy exists for readability at call sites that
// want to make the copy explicit.
func Copy(m Matrix) Matrix {
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
