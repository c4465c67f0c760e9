// Package matrix implements dense matrix arithmetic over the scalar field
// modulo the secp256k1 group order. It backs the Vandermonde-matrix
// bookkeeping a threshold decrease needs to recompute coefficient
// commitments for a smaller polynomial degree without rerunning key
// generation.
package matrix

import (
	"errors"
	"math/big"

	"github.com/frostsig/frost/curve"
)

// ErrSingular is returned when a matrix has no inverse modulo the group
// order, i.e. its determinant is congruent to zero mod Q.
var ErrSingular = errors.New("matrix: singular matrix")

// ErrDimensionMismatch is returned when an operation is given matrices or
// vectors whose shapes are incompatible.
var ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

// Matrix is a square or rectangular grid of scalars, reduced modulo the
// group order Q on every operation.
type Matrix struct {
	rows, cols int
	data       []*big.Int
}

// New builds a Matrix from row-major data. Every row must have the same
// length.
func New(rows [][]*big.Int) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrDimensionMismatch
	}
	cols := len(rows[0])
	data := make([]*big.Int, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, ErrDimensionMismatch
		}
		for _, v := range row {
			data = append(data, curve.ModScalar(v))
		}
	}
	return &Matrix{rows: len(rows), cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the scalar at (row, col).
func (m *Matrix) At(row, col int) *big.Int {
	return new(big.Int).Set(m.data[row*m.cols+col])
}

func (m *Matrix) set(row, col int, v *big.Int) {
	m.data[row*m.cols+col] = v
}

// Vandermonde builds the square Vandermonde matrix for the given
// participant indexes: row i, column j holds indexes[i]^j mod Q. This is
// the matrix the threshold-decrease algorithm inverts to recompute
// coefficient commitments for a smaller quorum.
func Vandermonde(indexes []*big.Int) *Matrix {
	n := len(indexes)
	rows := make([][]*big.Int, n)
	for i, idx := range indexes {
		row := make([]*big.Int, n)
		power := big.NewInt(1)
		for j := 0; j < n; j++ {
			row[j] = new(big.Int).Set(power)
			power = new(big.Int).Mul(power, idx)
			power.Mod(power, curve.Q())
		}
		rows[i] = row
	}
	m, _ := New(rows)
	return m
}

// Determinant computes the determinant of a square matrix modulo Q via
// cofactor expansion along the first row. This is adequate for the small
// participant counts (bounded by the 1-byte index space) FROST threshold
// operations deal with; it is not intended for large general-purpose
// matrices.
func (m *Matrix) Determinant() (*big.Int, error) {
	if m.rows != m.cols {
		return nil, ErrDimensionMismatch
	}
	return m.determinant(), nil
}

func (m *Matrix) determinant() *big.Int {
	n := m.rows
	if n == 1 {
		return new(big.Int).Set(m.At(0, 0))
	}
	if n == 2 {
		ad := new(big.Int).Mul(m.At(0, 0), m.At(1, 1))
		bc := new(big.Int).Mul(m.At(0, 1), m.At(1, 0))
		det := new(big.Int).Sub(ad, bc)
		return det.Mod(det, curve.Q())
	}

	det := big.NewInt(0)
	sign := int64(1)
	for col := 0; col < n; col++ {
		minor := m.minor(0, col)
		cofactor := new(big.Int).Mul(m.At(0, col), minor.determinant())
		cofactor.Mul(cofactor, big.NewInt(sign))
		det.Add(det, cofactor)
		sign = -sign
	}
	return det.Mod(det, curve.Q())
}

// minor returns the (n-1)x(n-1) submatrix obtained by deleting the given
// row and column.
func (m *Matrix) minor(row, col int) *Matrix {
	data := make([]*big.Int, 0, (m.rows-1)*(m.cols-1))
	for r := 0; r < m.rows; r++ {
		if r == row {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if c == col {
				continue
			}
			data = append(data, m.At(r, c))
		}
	}
	return &Matrix{rows: m.rows - 1, cols: m.cols - 1, data: data}
}

// Inverse computes the modular inverse of a square matrix via the adjugate
// (transposed cofactor matrix) divided by the determinant, all modulo Q. It
// returns ErrSingular if the determinant has no inverse modulo Q.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrDimensionMismatch
	}
	n := m.rows
	det, err := m.Determinant()
	if err != nil {
		return nil, err
	}
	detInv, err := curve.ModInverse(det)
	if err != nil {
		return nil, ErrSingular
	}

	if n == 1 {
		rows := [][]*big.Int{{detInv}}
		return New(rows)
	}

	adjugate := make([][]*big.Int, n)
	for i := range adjugate {
		adjugate[i] = make([]*big.Int, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cofactor := m.minor(r, c).determinant()
			if (r+c)%2 != 0 {
				cofactor = new(big.Int).Neg(cofactor)
			}
			// The (c, r) entry of the inverse (note the transpose) is the
			// (r, c) cofactor scaled by the determinant's inverse.
			adjugate[c][r] = new(big.Int).Mul(cofactor, detInv)
			adjugate[c][r].Mod(adjugate[c][r], curve.Q())
		}
	}
	return New(adjugate)
}

// MultiplyScalar multiplies m by a vector of scalars, returning m*v mod Q.
func (m *Matrix) MultiplyScalar(v []*big.Int) ([]*big.Int, error) {
	if len(v) != m.cols {
		return nil, ErrDimensionMismatch
	}
	out := make([]*big.Int, m.rows)
	for r := 0; r < m.rows; r++ {
		sum := big.NewInt(0)
		for c := 0; c < m.cols; c++ {
			term := new(big.Int).Mul(m.At(r, c), v[c])
			sum.Add(sum, term)
		}
		sum.Mod(sum, curve.Q())
		out[r] = sum
	}
	return out, nil
}

// Set overwrites the entry at (row, col), reducing the value modulo Q.
// Exposed for callers that build up a matrix incrementally rather than
// through New.
func (m *Matrix) Set(row, col int, v *big.Int) {
	m.set(row, col, curve.ModScalar(v))
}
