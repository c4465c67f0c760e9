package matrix

import "github.com/frostsig/frost/curve"

// MultiplyPointMatrix computes m*points mod Q, where points is a vector of
// group elements and m is a scalar matrix. Row r of the result is the
// linear combination sum_c(m[r][c] * points[c]). frost's
// DecrementThreshold uses it to recompute a participant's coefficient
// commitments after a threshold decrease: the new commitments are the
// inverse Vandermonde matrix applied to public verification shares,
// evaluated in the exponent.
func MultiplyPointMatrix(m *Matrix, points []curve.Point) ([]curve.Point, error) {
	if len(points) != m.cols {
		return nil, ErrDimensionMismatch
	}
	out := make([]curve.Point, m.rows)
	for r := 0; r < m.rows; r++ {
		acc := curve.Infinity
		for c := 0; c < m.cols; c++ {
			coeff := m.At(r, c)
			acc = acc.Add(points[c].ScalarMul(coeff))
		}
		out[r] = acc
	}
	return out, nil
}
