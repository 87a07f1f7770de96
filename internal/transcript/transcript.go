// transcript.go - Fiat-Shamir challenge derivation for spend proofs.
//
// A Transcript absorbs labeled protocol messages into a MiMC hash chain and
// squeezes challenge scalars from it. The circuit core treats the challenge
// as externally supplied; this package is the supplier used by proof
// generation and verification call sites, which must absorb the same
// messages in the same order to agree on challenges.

package transcript

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/zqrtc/zqrtc/internal/zerocoin"
)

// Transcript accumulates protocol messages and derives challenges.
type Transcript struct {
	state []byte
}

// New creates a transcript bound to a domain-separation label.
func New(label string) *Transcript {
	t := &Transcript{}
	t.absorb([]byte(label))
	return t
}

// Append absorbs a labeled message.
func (t *Transcript) Append(label string, data []byte) {
	t.absorb([]byte(label))
	t.absorb(data)
}

// AppendScalar absorbs a labeled scalar, e.g. a public commitment.
func (t *Transcript) AppendScalar(label string, s zerocoin.Scalar) {
	t.Append(label, s.BigInt().Bytes())
}

// absorb folds data into the running state through MiMC. Arbitrary bytes
// are first reduced into a field element so every hash block is canonical.
func (t *Transcript) absorb(data []byte) {
	var e fr.Element
	e.SetBytes(data)
	b := e.Marshal()
	h := mimc.NewMiMC()
	h.Write(t.state)
	h.Write(b)
	t.state = h.Sum(nil)
}

// Challenge squeezes a challenge scalar in [1, q), never zero, and advances
// the state so subsequent challenges are independent.
func (t *Transcript) Challenge(label string, q zerocoin.Scalar) zerocoin.Scalar {
	t.absorb([]byte(label))
	qMinusOne := new(big.Int).Sub(q.BigInt(), big.NewInt(1))
	y := new(big.Int).SetBytes(t.state)
	y.Mod(y, qMinusOne)
	y.Add(y, big.NewInt(1))
	t.absorb(t.state)
	return zerocoin.ScalarFromBig(y)
}
