// verify.go - Consistency checks over a populated, folded circuit.
//
// Verify runs four algebraic checks in order and reports the first failure
// as a typed error: the elementwise rank-1 identity, the terminal
// commitment, every constraint row, and the challenge-folded aggregate
// identity. Failures are deterministic; callers decide whether a failure is
// a fatal internal bug (proof generation) or an invalid proof to reject
// (proof verification).

package zerocoin

import (
	"errors"
	"fmt"
)

// ErrNotFolded is returned when Verify would read aggregate state that has
// not been built, guarding against partially populated folded matrices.
var ErrNotFolded = errors.New("zerocoin: circuit not folded under a challenge")

// WireProductError reports a witness cell violating A*B = C mod q.
type WireProductError struct {
	Row, Col int
}

func (e WireProductError) Error() string {
	return fmt.Sprintf("zerocoin: wire product mismatch at cell (%d,%d)", e.Row, e.Col)
}

// CommitmentError reports a terminal wire that does not equal the public
// coin commitment g^S * h^r.
type CommitmentError struct {
	Got, Want Scalar
}

func (e CommitmentError) Error() string {
	return fmt.Sprintf("zerocoin: commitment mismatch: got %v, want %v", e.Got, e.Want)
}

// ConstraintRowError reports a constraint row whose weighted dot product
// does not equal its constant.
type ConstraintRowError struct {
	Row int
}

func (e ConstraintRowError) Error() string {
	return fmt.Sprintf("zerocoin: constraint row %d mismatch", e.Row)
}

// AggregateError reports a folded identity that does not sum to KConst.
type AggregateError struct {
	Got, Want Scalar
}

func (e AggregateError) Error() string {
	return fmt.Sprintf("zerocoin: aggregate identity mismatch: got %v, want %v", e.Got, e.Want)
}

// Verify checks full consistency of the circuit and returns the first
// failure encountered, or nil if every check passes.
func (c *Circuit) Verify() error {
	if !c.assigned {
		return ErrNoWitness
	}
	if !c.folded {
		return ErrNotFolded
	}
	p := c.params
	q := p.Q

	// 1. Elementwise rank-1 identity over the whole grid.
	for i := 0; i < p.M; i++ {
		for j := 0; j < p.N; j++ {
			if !c.A[i][j].MulMod(c.B[i][j], q).Equal(c.C[i][j].Mod(q)) {
				return WireProductError{Row: i, Col: j}
			}
		}
	}

	// 2. The terminal wire holds the public commitment, recomputed from the
	// coin secrets.
	want := c.serialPublic.MulMod(p.H.PowMod(c.randomness, q), q)
	got := c.wireValue(c.C, 2*p.SerialBits-1) // terminal wire
	if !got.Equal(want) {
		return CommitmentError{Got: got, Want: want}
	}

	// 3. Every constraint row's weighted dot product equals its constant.
	for r := 0; r < c.cs.Rows; r++ {
		if !c.sumWiresDotWeights(r).Equal(c.KFold[r]) {
			return ConstraintRowError{Row: r}
		}
	}

	// 4. The challenge-folded aggregate identity.
	folded := c.sumWiresDotFolded()
	if !folded.Equal(c.KConst) {
		return AggregateError{Got: folded, Want: c.KConst}
	}
	return nil
}

// sumWiresDotWeights computes the witness dot product against one
// constraint row's weight matrices.
func (c *Circuit) sumWiresDotWeights(r int) Scalar {
	q := c.params.Q
	sum := NewScalar(0)
	for i := 0; i < c.params.M; i++ {
		sum = sum.AddMod(DotProduct(c.A[i], c.cs.WA[r][i], q), q)
		sum = sum.AddMod(DotProduct(c.B[i], c.cs.WB[r][i], q), q)
		sum = sum.AddMod(DotProduct(c.C[i], c.cs.WC[r][i], q), q)
	}
	return sum
}

// aiDotBiYDash folds one witness row's rank-1 products across its columns.
func (c *Circuit) aiDotBiYDash(i int) Scalar {
	q := c.params.Q
	sum := NewScalar(0)
	for j := 0; j < c.params.N; j++ {
		sum = sum.AddMod(c.A[i][j].MulMod(c.B[i][j], q).MulMod(c.YDash[j], q), q)
	}
	return sum
}

// sumWiresDotFolded evaluates the aggregate identity's left-hand side: the
// column-folded rank-1 products weighted by y^(i+1) plus the witness dot
// products against the aggregated weight matrices.
func (c *Circuit) sumWiresDotFolded() Scalar {
	q := c.params.Q
	sum := NewScalar(0)
	for i := 0; i < c.params.M; i++ {
		sum = sum.AddMod(c.aiDotBiYDash(i).MulMod(c.YPowers[i+1], q), q)
	}
	for i := 0; i < c.params.M; i++ {
		sum = sum.AddMod(DotProduct(c.A[i], c.WAj[i], q), q)
		sum = sum.AddMod(DotProduct(c.B[i], c.WBj[i], q), q)
		sum = sum.AddMod(DotProduct(c.C[i], c.WCj[i], q), q)
	}
	return sum
}
