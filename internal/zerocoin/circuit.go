// circuit.go - Per-proof arithmetic circuit: witness wires for one coin spend.
//
// A Circuit instance is created per spend, populated with the coin's secret
// values, folded under a verifier challenge and checked. Instances share the
// read-only template from Params and own everything else, so many circuits
// can be built and verified concurrently.

package zerocoin

import (
	"errors"
	"fmt"
)

// ErrNoWitness is returned when folding or verifying a circuit whose wires
// have not been assigned.
var ErrNoWitness = errors.New("zerocoin: circuit wires not assigned")

// Circuit holds the witness matrices and challenge-folded state for one
// coin-spend proof.
type Circuit struct {
	// Witness wires, assigned per spend. Every cell must satisfy
	// A[i][j]*B[i][j] = C[i][j] mod q.
	A, B, C Matrix

	// Challenge-folded state, populated by Fold.
	Y       Scalar
	YPowers Vector // y^0 .. y^D
	YDash   Vector // column monomials, YDash[j] = y^(M*(j+1))
	YNeg    Vector // reverse fold vector, 2*y^(-M*(j+1))
	WAj     Matrix // all constraint rows folded by their y-power, vs A
	WBj     Matrix
	WCj     Matrix // includes the -y^(i+1)*YDash correction terms
	KFold   Vector // template constants plus the appended g^S term
	KConst  Scalar

	params *Params
	cs     *ConstraintSystem

	serial       Scalar
	randomness   Scalar
	serialPublic Scalar // g^S mod q

	assigned bool
	folded   bool
}

// NewCircuit creates an empty circuit over the shared constraint template.
func NewCircuit(p *Params) *Circuit {
	return &Circuit{
		A:      NewMatrix(p.M, p.N),
		B:      NewMatrix(p.M, p.N),
		C:      NewMatrix(p.M, p.N),
		params: p,
		cs:     p.Template(),
	}
}

// wire maps a flattened wire index onto the grid.
func (c *Circuit) wire(k int) (row, col int) {
	return k / c.params.N, k % c.params.N
}

func (c *Circuit) setWire(m Matrix, k int, v Scalar) {
	row, col := c.wire(k)
	m[row][col] = v
}

func (c *Circuit) wireValue(m Matrix, k int) Scalar {
	row, col := c.wire(k)
	return m[row][col]
}

// SetWireValues populates the witness matrices for one coin. Bit wires
// carry the randomness decomposition, accumulation wires build h^r by
// repeated squaring, and the terminal wire multiplies in the public serial
// value so its C cell equals the coin commitment.
func (c *Circuit) SetWireValues(coin *Coin) error {
	if coin == nil {
		return errors.New("zerocoin: nil coin")
	}
	if coin.params != c.params {
		return errors.New("zerocoin: coin minted under different parameters")
	}
	p := c.params
	q := p.Q
	L := p.SerialBits
	one := NewScalar(1)

	c.serial = coin.Serial
	c.randomness = coin.Randomness
	c.serialPublic = coin.SerialPublic()

	bits := coin.RandomnessBits()
	if len(bits) != L {
		return fmt.Errorf("zerocoin: expected %d randomness bits, got %d", L, len(bits))
	}

	// Bit wires: A = r_i, B = r_i - 1, C = 0, so the rank-1 identity
	// enforces r_i*(r_i-1) = 0.
	for i := 0; i < L; i++ {
		c.setWire(c.A, i, bits[i].Mod(q))
		c.setWire(c.B, i, bits[i].SubMod(one, q))
		c.setWire(c.C, i, NewScalar(0))
	}

	// Accumulation wires: running product of the factors
	// x_k = r_k*(h^(2^k)-1) + 1 = h^(2^k * r_k), so the final product is h^r.
	product := one
	x := c.bitFactor(bits[0], 0)
	for t := 0; t < L-1; t++ {
		w := L + t
		product = product.MulMod(x, q)
		x = c.bitFactor(bits[t+1], t+1)
		c.setWire(c.A, w, product)
		c.setWire(c.B, w, x)
		c.setWire(c.C, w, product.MulMod(x, q))
	}

	// Terminal wire: multiply the public serial value into the chain. Its C
	// cell is the commitment g^S * h^r.
	hToR := product.MulMod(x, q)
	c.setWire(c.A, 2*L-1, hToR)
	c.setWire(c.B, 2*L-1, c.serialPublic)
	c.setWire(c.C, 2*L-1, hToR.MulMod(c.serialPublic, q))

	c.assigned = true
	c.folded = false
	return nil
}

// bitFactor returns x_k = bit*(h^(2^k)-1) + 1.
func (c *Circuit) bitFactor(bit Scalar, k int) Scalar {
	q := c.params.Q
	one := NewScalar(1)
	coeff := c.params.H.PowMod(powerOfTwo(k), q).SubMod(one, q)
	return bit.MulMod(coeff, q).AddMod(one, q)
}

// SerialPublic returns the public value g^S the circuit was assigned with.
func (c *Circuit) SerialPublic() Scalar {
	return c.serialPublic
}
