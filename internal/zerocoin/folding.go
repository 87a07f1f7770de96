// folding.go - Challenge-driven aggregation of the constraint rows.
//
// Folding collapses every per-row linear check into one scalar identity
// weighted by successive powers of a verifier challenge y. The aggregated
// weight matrices are always fully populated here before any verification
// reads them; the WCj matrix additionally carries the -y^(i+1)*YDash[k]
// correction terms that cancel the rank-1 products, making the aggregate
// identity hold in y whenever the individual constraints hold.

package zerocoin

import "errors"

// ErrZeroChallenge is returned when folding under y = 0, which would weight
// every constraint row by zero.
var ErrZeroChallenge = errors.New("zerocoin: challenge must be nonzero")

// foldOffset is the power of y weighting the first constraint row; the
// template constants fold at the same offset so the identity balances.
func (c *Circuit) foldOffset() int {
	return 4*c.params.SerialBits + c.params.M + 1
}

// maxPower is the highest power of y needed: enough for every folded row
// plus the constant-vector fold, and for the column monomials in YDash.
func (c *Circuit) maxPower() int {
	d := 8*c.params.SerialBits + c.params.M + 1
	if c.params.M*c.params.N > d {
		d = c.params.M * c.params.N
	}
	return d
}

// Fold computes the challenge-folded state for a nonzero challenge y:
// the power tables, the aggregated weight matrices and the folded constant
// KConst (which absorbs the per-proof public value g^S as one more term).
func (c *Circuit) Fold(y Scalar) error {
	if !c.assigned {
		return ErrNoWitness
	}
	p := c.params
	q := p.Q
	y = y.Mod(q)
	if y.IsZero() {
		return ErrZeroChallenge
	}
	c.Y = y

	// YPowers[i] = y^i up to the maximum degree in use.
	d := c.maxPower()
	c.YPowers = make(Vector, d+1)
	c.YPowers[0] = NewScalar(1)
	for i := 1; i <= d; i++ {
		c.YPowers[i] = c.YPowers[i-1].MulMod(y, q)
	}

	// YDash[j] = y^(M*(j+1)) selects the monomial tied to column j.
	c.YDash = make(Vector, p.N)
	for j := 0; j < p.N; j++ {
		c.YDash[j] = c.YPowers[p.M*(j+1)]
	}

	// YNeg folds columns in the opposite direction with powers of y^(-M).
	c.YNeg = make(Vector, p.N)
	two := NewScalar(2)
	yNegM := y.PowMod(NewScalar(int64(-p.M)), q)
	acc := NewScalar(1)
	for j := 0; j < p.N; j++ {
		acc = acc.MulMod(yNegM, q)
		c.YNeg[j] = acc.MulMod(two, q)
	}

	c.foldWeights()
	c.foldConstants()
	c.folded = true
	return nil
}

// foldWeights builds the aggregated weight matrices: every constraint row's
// sparse weights summed under its y-power, plus the rank-1 correction terms
// in WCj.
func (c *Circuit) foldWeights() {
	p := c.params
	q := p.Q
	e := c.foldOffset()

	c.WAj = NewMatrix(p.M, p.N)
	c.WBj = NewMatrix(p.M, p.N)
	c.WCj = NewMatrix(p.M, p.N)

	for r := 0; r < c.cs.Rows; r++ {
		w := c.YPowers[e+r]
		for i := 0; i < p.M; i++ {
			for k := 0; k < p.N; k++ {
				if v := c.cs.WA[r][i][k]; !v.IsZero() {
					c.WAj[i][k] = c.WAj[i][k].AddMod(v.MulMod(w, q), q)
				}
				if v := c.cs.WB[r][i][k]; !v.IsZero() {
					c.WBj[i][k] = c.WBj[i][k].AddMod(v.MulMod(w, q), q)
				}
				if v := c.cs.WC[r][i][k]; !v.IsZero() {
					c.WCj[i][k] = c.WCj[i][k].AddMod(v.MulMod(w, q), q)
				}
			}
		}
	}

	// Rank-1 correction: subtracting y^(i+1)*YDash[k] from WCj cancels the
	// A.B.YDash products in the aggregate sum whenever A.B = C holds.
	for i := 0; i < p.M; i++ {
		for k := 0; k < p.N; k++ {
			corr := c.YPowers[i+1].MulMod(c.YDash[k], q)
			c.WCj[i][k] = c.WCj[i][k].SubMod(corr, q)
		}
	}
}

// foldConstants appends the public serial value to the template constants
// and folds the whole vector into KConst.
func (c *Circuit) foldConstants() {
	q := c.params.Q
	e := c.foldOffset()

	c.KFold = append(c.cs.K.Clone(), c.serialPublic)
	c.KConst = NewScalar(0)
	for r := range c.KFold {
		c.KConst = c.KConst.AddMod(c.KFold[r].MulMod(c.YPowers[e+r], q), q)
	}
}
