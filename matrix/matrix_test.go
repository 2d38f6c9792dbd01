package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsToMaxSize(t *testing.T) {
	m := New(20, 20)
	rows, cols := m.Dims()
	assert.Equal(t, MaxSize, rows)
	assert.Equal(t, MaxSize, cols)
}

func TestIdentity(t *testing.T) {
	m := Identity(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Equal(t, 1.0, m.At(i, j))
			} else {
				assert.Equal(t, 0.0, m.At(i, j))
			}
		}
	}
}

func TestDiagonalVector(t *testing.T) {
	m := DiagonalVector([]float64{1, 2, 3})
	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2.0, m.At(1, 1))
	assert.Equal(t, 0.0, m.At(0, 1))
}

func TestSetGet(t *testing.T) {
	m := New(2, 2)
	m.Set(0, 1, 5.0)
	assert.Equal(t, 5.0, m.At(0, 1))
}

func TestSetOutOfRangePanics(t *testing.T) {
	m := New(2, 2)
	assert.Panics(t, func() { m.Set(2, 0, 1.0) })
}

func TestAddSub(t *testing.T) {
	a := Identity(3)
	b := Identity(3)

	sum, err := Add(a, b)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, sum.At(0, 0))

	diff, err := Sub(sum, a)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, diff.At(0, 0))
}

func TestAddDimensionMismatch(t *testing.T) {
	a := New(2, 2)
	b := New(3, 3)
	_, err := Add(a, b)
	assert.Error(t, err)
}

func TestMul(t *testing.T) {
	a := New(2, 3)
	a.SetRow(0, []float64{1, 2, 3})
	a.SetRow(1, []float64{4, 5, 6})

	b := New(3, 2)
	b.SetRow(0, []float64{7, 8})
	b.SetRow(1, []float64{9, 10})
	b.SetRow(2, []float64{11, 12})

	result, err := Mul(a, b)
	assert.NoError(t, err)
	assert.Equal(t, 58.0, result.At(0, 0))
	assert.Equal(t, 64.0, result.At(0, 1))
	assert.Equal(t, 139.0, result.At(1, 0))
	assert.Equal(t, 154.0, result.At(1, 1))
}

func TestMulDimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)
	_, err := Mul(a, b)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	m := Identity(2)
	scaled := Scale(m, 3.0)
	assert.Equal(t, 3.0, scaled.At(0, 0))
	assert.Equal(t, 0.0, scaled.At(0, 1))
}

func TestTranspose(t *testing.T) {
	m := New(2, 3)
	m.SetRow(0, []float64{1, 2, 3})
	m.SetRow(1, []float64{4, 5, 6})

	tr := Transpose(m)
	rows, cols := tr.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2.0, tr.At(1, 0))
	assert.Equal(t, 5.0, tr.At(1, 1))
}

func TestInverseIdentity(t *testing.T) {
	inv, err := Inverse(Identity(3))
	assert.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.InDelta(t, 1.0, inv.At(i, j), 1e-9)
			} else {
				assert.InDelta(t, 0.0, inv.At(i, j), 1e-9)
			}
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := New(3, 3)
	m.SetRow(0, []float64{4, 7, 2})
	m.SetRow(1, []float64{2, 6, 1})
	m.SetRow(2, []float64{1, 1, 5})

	inv, err := Inverse(m)
	assert.NoError(t, err)

	product, err := Mul(m, inv)
	assert.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, product.At(i, j), 1e-6)
		}
	}
}

func TestInverseNonSquare(t *testing.T) {
	m := New(2, 3)
	_, err := Inverse(m)
	assert.Error(t, err)
}

func TestInverseSingular(t *testing.T) {
	m := New(2, 2)
	m.SetRow(0, []float64{1, 2})
	m.SetRow(1, []float64{2, 4})
	_, err := Inverse(m)
	assert.Error(t, err)
}

func TestRowColumn(t *testing.T) {
	m := New(2, 2)
	m.SetRow(0, []float64{1, 2})
	m.SetRow(1, []float64{3, 4})

	row, err := m.Row(0)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, row)

	col, err := m.Column(1)
	assert.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, col)
}

func TestZero(t *testing.T) {
	m := Identity(3)
	m.Zero()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, 0.0, m.At(i, j))
		}
	}
}

func Test6x6InverseAccuracy(t *testing.T) {
	m := Identity(6)
	for i := 0; i < 6; i++ {
		m.Set(i, i, float64(i+1))
	}
	inv, err := Inverse(m)
	assert.NoError(t, err)
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1.0/float64(i+1), inv.At(i, i), 1e-9)
	}
}
