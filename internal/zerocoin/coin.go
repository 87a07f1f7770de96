// coin.go - Private coins: the secret inputs to a spend proof.
//
// A coin carries a serial number S and commitment randomness r. The public
// commitment g^S * h^r is what appears on the ledger; the spend proof shows
// the serial number was derived from it without revealing which commitment.

package zerocoin

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Coin is a minted coin's secret: serial number and commitment randomness.
type Coin struct {
	Serial     Scalar
	Randomness Scalar

	params *Params
}

// NewCoin mints a coin under the given parameters: the serial number is
// derived from a fresh secret key with the MiMC PRF, and the commitment
// randomness is sampled uniformly below 2^SerialBits.
func NewCoin(p *Params) (*Coin, error) {
	sk := make([]byte, 32)
	if _, err := rand.Read(sk); err != nil {
		return nil, fmt.Errorf("failed to sample coin secret: %w", err)
	}
	serial := serialPRF(sk, p.Q)

	bound := new(big.Int).Lsh(big.NewInt(1), uint(p.SerialBits))
	r, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return nil, fmt.Errorf("failed to sample coin randomness: %w", err)
	}
	return NewCoinFromSecrets(p, serial, r)
}

// NewCoinFromSecrets builds a coin from explicit secrets. The randomness
// must fit in SerialBits bits; the serial number is reduced mod q.
func NewCoinFromSecrets(p *Params, serial, randomness *big.Int) (*Coin, error) {
	if randomness == nil || randomness.Sign() < 0 || randomness.BitLen() > p.SerialBits {
		return nil, fmt.Errorf("zerocoin: randomness must fit in %d bits", p.SerialBits)
	}
	if serial == nil || serial.Sign() < 0 {
		return nil, fmt.Errorf("zerocoin: serial number must be non-negative")
	}
	return &Coin{
		Serial:     ScalarFromBig(serial).Mod(p.Q),
		Randomness: ScalarFromBig(randomness),
		params:     p,
	}, nil
}

// serialPRF maps a secret key into [0, q) with MiMC, the PRF used for
// serial-number derivation.
func serialPRF(sk []byte, q Scalar) *big.Int {
	var e fr.Element
	e.SetBytes(sk)
	b := e.Marshal()
	h := mimc.NewMiMC()
	h.Write(b)
	out := new(big.Int).SetBytes(h.Sum(nil))
	return out.Mod(out, q.BigInt())
}

// RandomnessBits returns the least-significant-bit-first decomposition of
// the randomness into SerialBits bits, as 0/1 scalars.
func (c *Coin) RandomnessBits() Vector {
	r := c.Randomness.BigInt()
	bits := make(Vector, c.params.SerialBits)
	for i := range bits {
		bits[i] = NewScalar(int64(r.Bit(i)))
	}
	return bits
}

// SerialPublic returns g^S mod q, the public value tying a spend to its
// serial number.
func (c *Coin) SerialPublic() Scalar {
	return c.params.G.PowMod(c.Serial, c.params.Q)
}

// Commitment returns the public coin commitment g^S * h^r mod q.
func (c *Coin) Commitment() Scalar {
	p := c.params
	return c.SerialPublic().MulMod(p.H.PowMod(c.Randomness, p.Q), p.Q)
}
