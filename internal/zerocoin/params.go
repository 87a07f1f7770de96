// params.go - Group parameters for the zerocoin proof circuits.
//
// Params fixes the commitment group (generators g, h and prime order q), the
// serial-number bit length and the wire-grid dimensions. The constraint
// template derived from a parameter set is built once, lazily, and shared
// read-only across every circuit instance built from the same Params.

package zerocoin

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/logger"
)

// Params holds the immutable group parameters shared by all proofs minted
// against the same coin-commitment group.
type Params struct {
	G Scalar // first generator, commits to the serial number
	H Scalar // second generator, commits to the randomness
	Q Scalar // prime group order; modulus of all circuit arithmetic

	SerialBits int // bit length L of the randomness decomposition
	M          int // wire-grid rows
	N          int // wire-grid columns

	templateOnce sync.Once
	template     *ConstraintSystem
}

// DefaultDimensions returns the standard wire grid for a given serial bit
// length: two rows of serialBits columns, enough for the 2L circuit wires.
func DefaultDimensions(serialBits int) (m, n int) {
	return 2, serialBits
}

// NewParams validates and assembles a parameter set. The grid must hold the
// full wire layout: m*n >= 2*serialBits.
func NewParams(g, h, q *big.Int, serialBits, m, n int) (*Params, error) {
	if q == nil || q.Cmp(big.NewInt(3)) <= 0 {
		return nil, fmt.Errorf("zerocoin: group order must exceed 3, got %v", q)
	}
	one := big.NewInt(1)
	if g == nil || g.Cmp(one) <= 0 || g.Cmp(q) >= 0 {
		return nil, fmt.Errorf("zerocoin: generator g out of range (1, q)")
	}
	if h == nil || h.Cmp(one) <= 0 || h.Cmp(q) >= 0 {
		return nil, fmt.Errorf("zerocoin: generator h out of range (1, q)")
	}
	if serialBits < 2 {
		return nil, fmt.Errorf("zerocoin: serial bit length %d too small", serialBits)
	}
	if m <= 0 || n <= 0 || m*n < 2*serialBits {
		return nil, fmt.Errorf("zerocoin: %dx%d grid cannot hold %d wires", m, n, 2*serialBits)
	}
	return &Params{
		G:          ScalarFromBig(g),
		H:          ScalarFromBig(h),
		Q:          ScalarFromBig(q),
		SerialBits: serialBits,
		M:          m,
		N:          n,
	}, nil
}

// DefaultParams returns the production parameter set: the BN254 scalar-field
// modulus as group order, with generators derived by hashing fixed seeds.
func DefaultParams() *Params {
	q := fr.Modulus()
	g := hashToScalar("zqrtc-generator-g", q)
	h := hashToScalar("zqrtc-generator-h", q)
	m, n := DefaultDimensions(256)
	p, err := NewParams(g, h, q, 256, m, n)
	if err != nil {
		// the seeds above hash into range for the BN254 order
		panic(err)
	}
	return p
}

// hashToScalar maps a seed string into (1, q) with MiMC, retrying on the
// negligible chance of landing on 0 or 1.
func hashToScalar(seed string, q *big.Int) *big.Int {
	data := []byte(seed)
	for {
		var e fr.Element
		e.SetBytes(data)
		b := e.Marshal()
		hasher := mimc.NewMiMC()
		hasher.Write(b)
		data = hasher.Sum(nil)
		out := new(big.Int).Mod(new(big.Int).SetBytes(data), q)
		if out.Cmp(big.NewInt(1)) > 0 {
			return out
		}
	}
}

// Template returns the constraint template for this parameter set, building
// it on first use. The returned system is shared and must not be mutated.
func (p *Params) Template() *ConstraintSystem {
	p.templateOnce.Do(func() {
		log := logger.Logger()
		p.template = BuildConstraints(p)
		log.Debug().
			Int("rows", p.template.Rows).
			Int("serialBits", p.SerialBits).
			Msg("built constraint template")
	})
	return p.template
}

// paramsJSON is the serialized form of Params; the cached template is
// rebuilt on load rather than persisted.
type paramsJSON struct {
	G          Scalar `json:"g"`
	H          Scalar `json:"h"`
	Q          Scalar `json:"q"`
	SerialBits int    `json:"serial_bits"`
	M          int    `json:"m"`
	N          int    `json:"n"`
}

// SaveToFile writes the parameter set to a JSON file, overwriting it if it
// exists.
func (p *Params) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create params file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(paramsJSON{
		G: p.G, H: p.H, Q: p.Q,
		SerialBits: p.SerialBits, M: p.M, N: p.N,
	})
}

// LoadParamsFromFile reads and validates a parameter set from a JSON file.
func LoadParamsFromFile(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open params file: %w", err)
	}
	defer f.Close()
	var pj paramsJSON
	if err := json.NewDecoder(f).Decode(&pj); err != nil {
		return nil, fmt.Errorf("failed to decode params file: %w", err)
	}
	return NewParams(pj.G.BigInt(), pj.H.BigInt(), pj.Q.BigInt(), pj.SerialBits, pj.M, pj.N)
}
