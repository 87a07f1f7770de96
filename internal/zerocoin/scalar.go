// scalar.go - Modular scalar arithmetic over an arbitrary prime group order.
//
// Scalar wraps math/big.Int behind explicit named operations (AddMod, SubMod,
// MulMod, PowMod) so that every modular reduction point is visible. All
// operations reduce eagerly into the canonical residue range [0, q): in
// particular Scalar(-1).Mod(q) == q-1.

package zerocoin

import (
	"fmt"
	"math/big"
)

// Scalar is an arbitrary-precision integer intended to be reduced modulo a
// group order q. Scalars are immutable: every operation returns a new value.
type Scalar struct {
	i *big.Int
}

// NewScalar creates a Scalar from an int64. Negative values are legal and
// normalize into [0, q) on the first modular operation.
func NewScalar(x int64) Scalar {
	return Scalar{i: big.NewInt(x)}
}

// ScalarFromBig creates a Scalar from a big.Int. The input is copied.
func ScalarFromBig(x *big.Int) Scalar {
	return Scalar{i: new(big.Int).Set(x)}
}

// ScalarFromBytes creates a Scalar from big-endian bytes.
func ScalarFromBytes(b []byte) Scalar {
	return Scalar{i: new(big.Int).SetBytes(b)}
}

// BigInt returns a copy of the underlying integer.
func (s Scalar) BigInt() *big.Int {
	if s.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.i)
}

func (s Scalar) big() *big.Int {
	if s.i == nil {
		return new(big.Int)
	}
	return s.i
}

// Equal reports whether two scalars hold the same integer. Callers comparing
// residues must normalize both sides with Mod first.
func (s Scalar) Equal(t Scalar) bool {
	return s.big().Cmp(t.big()) == 0
}

// IsZero reports whether the scalar is zero.
func (s Scalar) IsZero() bool {
	return s.big().Sign() == 0
}

func (s Scalar) String() string {
	return s.big().String()
}

// Mod reduces s into the canonical residue range [0, q). big.Int.Mod is
// Euclidean, so negative inputs normalize: Scalar(-1).Mod(23) == 22.
func (s Scalar) Mod(q Scalar) Scalar {
	return Scalar{i: new(big.Int).Mod(s.big(), q.big())}
}

// AddMod returns (s + t) mod q.
func (s Scalar) AddMod(t, q Scalar) Scalar {
	r := new(big.Int).Add(s.big(), t.big())
	return Scalar{i: r}.Mod(q)
}

// SubMod returns (s - t) mod q, normalized into [0, q).
func (s Scalar) SubMod(t, q Scalar) Scalar {
	r := new(big.Int).Sub(s.big(), t.big())
	return Scalar{i: r}.Mod(q)
}

// MulMod returns (s * t) mod q.
func (s Scalar) MulMod(t, q Scalar) Scalar {
	r := new(big.Int).Mul(s.big(), t.big())
	return Scalar{i: r}.Mod(q)
}

// PowMod returns s^e mod q. A negative exponent is exponentiation of the
// modular inverse of the base, so s must be invertible mod q; for the prime
// group orders in use every nonzero base qualifies.
func (s Scalar) PowMod(e, q Scalar) Scalar {
	r := new(big.Int).Exp(s.Mod(q).big(), e.big(), q.big())
	if r == nil {
		panic(fmt.Sprintf("zerocoin: %v not invertible mod %v", s, q))
	}
	return Scalar{i: r}
}

// NegMod returns -s mod q.
func (s Scalar) NegMod(q Scalar) Scalar {
	r := new(big.Int).Neg(s.big())
	return Scalar{i: r}.Mod(q)
}

// MarshalText encodes the scalar as its decimal string, for JSON parameter
// files.
func (s Scalar) MarshalText() ([]byte, error) {
	return []byte(s.big().String()), nil
}

// UnmarshalText decodes a decimal string.
func (s *Scalar) UnmarshalText(b []byte) error {
	i, ok := new(big.Int).SetString(string(b), 10)
	if !ok {
		return fmt.Errorf("zerocoin: invalid scalar %q", b)
	}
	s.i = i
	return nil
}

// Vector is a fixed-length slice of scalars.
type Vector []Scalar

// Matrix is an M-row, N-column grid of scalars.
type Matrix []Vector

// NewVector returns a zero-filled vector of length n.
func NewVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = NewScalar(0)
	}
	return v
}

// NewMatrix returns a zero-filled m-by-n matrix.
func NewMatrix(m, n int) Matrix {
	mat := make(Matrix, m)
	for i := range mat {
		mat[i] = NewVector(n)
	}
	return mat
}

// UnitVector returns a length-n vector with a single 1 at index idx.
func UnitVector(n, idx int) Vector {
	v := NewVector(n)
	v[idx] = NewScalar(1)
	return v
}

// TimesConstant returns v scaled elementwise by c, reduced mod q.
func (v Vector) TimesConstant(c, q Scalar) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i].MulMod(c, q)
	}
	return out
}

// Clone returns a deep copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// DotProduct returns the inner product of a and b mod q. The vectors must
// have the same length.
func DotProduct(a, b Vector, q Scalar) Scalar {
	if len(a) != len(b) {
		panic("zerocoin: dot product length mismatch")
	}
	sum := NewScalar(0)
	for i := range a {
		sum = sum.AddMod(a[i].MulMod(b[i], q), q)
	}
	return sum
}
