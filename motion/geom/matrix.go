package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadMatrix is returned when a transform string is not a 2D matrix.
var ErrBadMatrix = errors.New("geom: malformed matrix")

// Matrix is a 2D affine transform in the column order of a computed
// transform style:
//
//	| A  C  TX |
//	| B  D  TY |
//
// so that x' = A*x + C*y + TX and y' = B*x + D*y + TY.
type Matrix struct {
	A, B, C, D float64
	TX, TY     float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns the translation components.
func (m Matrix) Translation() Point {
	return Point{X: m.TX, Y: m.TY}
}

// WithTranslation returns a copy of m with its translation replaced.
func (m Matrix) WithTranslation(tx, ty float64) Matrix {
	m.TX, m.TY = tx, ty
	return m
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// String formats m as a matrix(a, b, c, d, tx, ty) style value.
func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("matrix(")
	for i, v := range [6]float64{m.A, m.B, m.C, m.D, m.TX, m.TY} {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}

// ParseMatrix parses a computed transform value. It accepts
// "matrix(a, b, c, d, tx, ty)" and "none", which is the identity.
func ParseMatrix(s string) (Matrix, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return Identity(), nil
	}
	body, ok := strings.CutPrefix(s, "matrix(")
	if !ok {
		return Matrix{}, fmt.Errorf("%w: %q", ErrBadMatrix, s)
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return Matrix{}, fmt.Errorf("%w: unterminated %q", ErrBadMatrix, s)
	}
	fields := strings.Split(body, ",")
	if len(fields) != 6 {
		return Matrix{}, fmt.Errorf("%w: want 6 values, got %d", ErrBadMatrix, len(fields))
	}
	var v [6]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Matrix{}, fmt.Errorf("%w: value %d: %w", ErrBadMatrix, i, err)
		}
		v[i] = n
	}
	return Matrix{A: v[0], B: v[1], C: v[2], D: v[3], TX: v[4], TY: v[5]}, nil
}

// MatrixOrIdentity parses s and falls back to the identity on any error,
// including an empty string.
func MatrixOrIdentity(s string) Matrix {
	m, err := ParseMatrix(s)
	if err != nil {
		return Identity()
	}
	return m
}
