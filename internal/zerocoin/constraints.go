// constraints.go - Fixed constraint template for the coin-spend circuit.
//
// The template encodes, as sparse weight matrices over the wire grid, the
// relation "the terminal wire commits to g^S * h^r and r decomposes into the
// asserted bits". It depends only on the group parameters: the per-coin
// public value g^S enters at challenge-folding time, so one template is
// cached and reused for every proof under the same Params.

package zerocoin

import "math/big"

// ConstraintSystem is the immutable circuit template: for every constraint
// row i, sum_j A_j.WA[i]_j + B_j.WB[i]_j + C_j.WC[i]_j must equal K[i].
type ConstraintSystem struct {
	WA []Matrix // per-row weights against the A witness matrix
	WB []Matrix // per-row weights against B
	WC []Matrix // per-row weights against C
	K  Vector   // row constants; Rows-1 entries, the final-value row's
	// constant is the per-proof public serial value
	Rows int
}

// Wire layout, flattened row-major over the M x N grid:
//
//	0 .. L-1      bit wires: A=r_i, B=r_i-1, C=0
//	L .. 2L-2     accumulation of h^r by repeated squaring
//	2L-1          terminal wire: A=h^r, B=g^S, C=g^S*h^r
//
// Constraint rows, in template order:
//
//	0 .. L-1      boolean difference  A[i] - B[i] = 1
//	L .. 2L-1     zero product        C[i] = 0
//	2L .. 3L-2    doubling recurrence B[L+t] = A[t+1]*(h^(2^(t+1))-1) + 1
//	3L-1          first factor        A[L] + B[0]*(1-h) = h
//	3L .. 4L-2    chaining            A[L+t] = C[L+t-1]
//	4L-1          final value         B[2L-1] = g^S (constant folded per proof)

// TemplateRows returns the number of constraint rows for a serial bit
// length.
func TemplateRows(serialBits int) int {
	return 4 * serialBits
}

// BuildConstraints constructs the full weight matrices and constant vector
// for a parameter set. All matrices are allocated at their final dimensions
// up front; rows are filled with scaled unit vectors and never resized.
func BuildConstraints(p *Params) *ConstraintSystem {
	q := p.Q
	h := p.H
	L := p.SerialBits
	rows := TemplateRows(L)

	cs := &ConstraintSystem{
		WA:   make([]Matrix, rows),
		WB:   make([]Matrix, rows),
		WC:   make([]Matrix, rows),
		K:    NewVector(rows - 1),
		Rows: rows,
	}
	for i := 0; i < rows; i++ {
		cs.WA[i] = NewMatrix(p.M, p.N)
		cs.WB[i] = NewMatrix(p.M, p.N)
		cs.WC[i] = NewMatrix(p.M, p.N)
	}

	one := NewScalar(1)
	minusOne := NewScalar(-1).Mod(q)

	// Boolean difference: A[i] - B[i] = 1 at every bit wire.
	for i := 0; i < L; i++ {
		placeUnit(cs.WA[i], p, i, one, q)
		placeUnit(cs.WB[i], p, i, minusOne, q)
		cs.K[i] = one
	}

	// Zero product: C[i] = 0 at every bit wire.
	for i := 0; i < L; i++ {
		placeUnit(cs.WC[L+i], p, i, one, q)
	}

	// Doubling recurrence: each accumulation step's B factor is determined
	// by the next randomness bit, B[L+t] = A[t+1]*(h^(2^(t+1))-1) + 1.
	for t := 0; t < L-1; t++ {
		row := 2*L + t
		coeff := h.PowMod(powerOfTwo(t+1), q).SubMod(one, q)
		placeUnit(cs.WA[row], p, t+1, coeff, q)
		placeUnit(cs.WB[row], p, L+t, minusOne, q)
		cs.K[row] = minusOne
	}

	// First factor: A[L] = A[0]*(h-1) + 1, expressed through B[0] = r_0 - 1
	// so the row stays affine: A[L] + B[0]*(1-h) = h.
	placeUnit(cs.WA[3*L-1], p, L, one, q)
	placeUnit(cs.WB[3*L-1], p, 0, one.SubMod(h, q), q)
	cs.K[3*L-1] = h.Mod(q)

	// Chaining: each accumulation step starts from the previous step's
	// product, A[L+t] = C[L+t-1], including the terminal wire.
	for t := 1; t < L; t++ {
		row := 3*L - 1 + t
		placeUnit(cs.WA[row], p, L+t, one, q)
		placeUnit(cs.WC[row], p, L+t-1, minusOne, q)
	}

	// Final value: B at the terminal wire equals the public serial value
	// g^S. The weight is fixed here; the constant joins K when folding.
	placeUnit(cs.WB[rows-1], p, 2*L-1, one, q)

	return cs
}

// placeUnit writes a unit vector scaled by coeff into the weight matrix row
// holding the given wire.
func placeUnit(w Matrix, p *Params, wire int, coeff, q Scalar) {
	row, col := wire/p.N, wire%p.N
	w[row] = UnitVector(p.N, col).TimesConstant(coeff, q)
}

// powerOfTwo returns 2^k as a scalar exponent.
func powerOfTwo(k int) Scalar {
	return ScalarFromBig(new(big.Int).Lsh(big.NewInt(1), uint(k)))
}
