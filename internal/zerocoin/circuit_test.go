package zerocoin

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"os"
	"testing"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	logger.Set(zerolog.New(io.Discard))
	os.Exit(m.Run())
}

// testParams returns a small parameter set over the Mersenne prime 2^61-1,
// fast enough for randomized tests.
func testParams(t *testing.T) *Params {
	t.Helper()
	q := new(big.Int).SetUint64(1<<61 - 1)
	mRows, nCols := DefaultDimensions(16)
	p, err := NewParams(big.NewInt(2), big.NewInt(3), q, 16, mRows, nCols)
	if err != nil {
		t.Fatalf("NewParams failed: %v", err)
	}
	return p
}

// toyParams returns the concrete q=23 scenario group.
func toyParams(t *testing.T) *Params {
	t.Helper()
	p, err := NewParams(big.NewInt(2), big.NewInt(3), big.NewInt(23), 4, 2, 4)
	if err != nil {
		t.Fatalf("NewParams failed: %v", err)
	}
	return p
}

// buildVerified assigns and folds a circuit for the coin under challenge y.
func buildVerified(t *testing.T, p *Params, coin *Coin, y Scalar) *Circuit {
	t.Helper()
	circ := NewCircuit(p)
	if err := circ.SetWireValues(coin); err != nil {
		t.Fatalf("SetWireValues failed: %v", err)
	}
	if err := circ.Fold(y); err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	return circ
}

func randomChallenge(t *testing.T, q Scalar) Scalar {
	t.Helper()
	bound := new(big.Int).Sub(q.BigInt(), big.NewInt(1))
	y, err := rand.Int(rand.Reader, bound)
	if err != nil {
		t.Fatalf("sampling challenge: %v", err)
	}
	y.Add(y, big.NewInt(1)) // [1, q)
	return ScalarFromBig(y)
}

func TestToyScenarioEndToEnd(t *testing.T) {
	// q=23, g=2, h=3, L=4, S=5, r=9 (binary 1001), y=7.
	p := toyParams(t)
	coin, err := NewCoinFromSecrets(p, big.NewInt(5), big.NewInt(9))
	if err != nil {
		t.Fatalf("NewCoinFromSecrets failed: %v", err)
	}

	// g^S = 2^5 = 32 = 9 mod 23, h^r = 3^9 = 18 mod 23, commitment = 9*18 = 1 mod 23.
	if !coin.SerialPublic().Equal(NewScalar(9)) {
		t.Errorf("g^S = %v, want 9", coin.SerialPublic())
	}
	if !coin.Commitment().Equal(NewScalar(1)) {
		t.Errorf("commitment = %v, want 1", coin.Commitment())
	}

	circ := buildVerified(t, p, coin, NewScalar(7))
	if err := circ.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// The terminal wire's C cell carries the commitment.
	if got := circ.wireValue(circ.C, 7); !got.Equal(NewScalar(1)) {
		t.Errorf("terminal C wire = %v, want 1", got)
	}

	// Corrupting C[0][0] (a bit wire's zero product) must fire the
	// elementwise rank-1 check.
	circ.C[0][0] = NewScalar(1)
	err = circ.Verify()
	var wpe WireProductError
	if !errors.As(err, &wpe) {
		t.Fatalf("Verify after corruption = %v, want WireProductError", err)
	}
	if wpe.Row != 0 || wpe.Col != 0 {
		t.Errorf("WireProductError at (%d,%d), want (0,0)", wpe.Row, wpe.Col)
	}
}

func TestCompletenessRandomCoins(t *testing.T) {
	p := testParams(t)
	for i := 0; i < 10; i++ {
		coin, err := NewCoin(p)
		if err != nil {
			t.Fatalf("NewCoin failed: %v", err)
		}
		circ := buildVerified(t, p, coin, randomChallenge(t, p.Q))
		if err := circ.Verify(); err != nil {
			t.Fatalf("Verify failed for random coin %d: %v", i, err)
		}
	}
}

func TestChallengeIndependence(t *testing.T) {
	// A satisfied circuit must pass the aggregate check under any nonzero
	// challenge, not just the one it was first folded with.
	p := testParams(t)
	coin, err := NewCoin(p)
	if err != nil {
		t.Fatalf("NewCoin failed: %v", err)
	}
	circ := NewCircuit(p)
	if err := circ.SetWireValues(coin); err != nil {
		t.Fatalf("SetWireValues failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		y := randomChallenge(t, p.Q)
		if err := circ.Fold(y); err != nil {
			t.Fatalf("Fold failed for challenge %v: %v", y, err)
		}
		if err := circ.Verify(); err != nil {
			t.Fatalf("Verify failed for challenge %v: %v", y, err)
		}
	}
}

func TestSoundnessWitnessMutation(t *testing.T) {
	// Flipping a single bit wire's A value after correct assignment must be
	// caught by the wire-product or constraint-row check.
	p := testParams(t)
	coin, err := NewCoinFromSecrets(p, big.NewInt(12345), big.NewInt(0x9a3f))
	if err != nil {
		t.Fatalf("NewCoinFromSecrets failed: %v", err)
	}
	circ := buildVerified(t, p, coin, NewScalar(17))

	row, col := circ.wire(3) // bit wire 3
	circ.A[row][col] = circ.A[row][col].AddMod(NewScalar(1), p.Q)

	err = circ.Verify()
	if err == nil {
		t.Fatal("Verify accepted a mutated witness")
	}
	var wpe WireProductError
	var cre ConstraintRowError
	if !errors.As(err, &wpe) && !errors.As(err, &cre) {
		t.Fatalf("Verify = %v, want wire-product or constraint-row mismatch", err)
	}
}

func TestTerminalCommitmentCheck(t *testing.T) {
	p := testParams(t)
	coin, err := NewCoin(p)
	if err != nil {
		t.Fatalf("NewCoin failed: %v", err)
	}
	circ := buildVerified(t, p, coin, NewScalar(5))

	// Overwrite the terminal slot consistently with the rank-1 identity so
	// only the commitment check can catch it.
	tau := 2*p.SerialBits - 1
	circ.setWire(circ.A, tau, NewScalar(1))
	circ.setWire(circ.B, tau, NewScalar(1))
	circ.setWire(circ.C, tau, NewScalar(1))

	err = circ.Verify()
	var ce CommitmentError
	if !errors.As(err, &ce) {
		t.Fatalf("Verify = %v, want CommitmentError", err)
	}
}

func TestVerifyLifecycleGuards(t *testing.T) {
	p := testParams(t)

	t.Run("unassigned circuit", func(t *testing.T) {
		circ := NewCircuit(p)
		if err := circ.Verify(); !errors.Is(err, ErrNoWitness) {
			t.Errorf("Verify = %v, want ErrNoWitness", err)
		}
		if err := circ.Fold(NewScalar(7)); !errors.Is(err, ErrNoWitness) {
			t.Errorf("Fold = %v, want ErrNoWitness", err)
		}
	})

	t.Run("assigned but not folded", func(t *testing.T) {
		coin, err := NewCoin(p)
		if err != nil {
			t.Fatalf("NewCoin failed: %v", err)
		}
		circ := NewCircuit(p)
		if err := circ.SetWireValues(coin); err != nil {
			t.Fatalf("SetWireValues failed: %v", err)
		}
		if err := circ.Verify(); !errors.Is(err, ErrNotFolded) {
			t.Errorf("Verify = %v, want ErrNotFolded", err)
		}
	})

	t.Run("zero challenge", func(t *testing.T) {
		coin, err := NewCoin(p)
		if err != nil {
			t.Fatalf("NewCoin failed: %v", err)
		}
		circ := NewCircuit(p)
		if err := circ.SetWireValues(coin); err != nil {
			t.Fatalf("SetWireValues failed: %v", err)
		}
		if err := circ.Fold(NewScalar(0)); !errors.Is(err, ErrZeroChallenge) {
			t.Errorf("Fold = %v, want ErrZeroChallenge", err)
		}
		// A challenge equal to q reduces to zero as well.
		if err := circ.Fold(p.Q); !errors.Is(err, ErrZeroChallenge) {
			t.Errorf("Fold(q) = %v, want ErrZeroChallenge", err)
		}
	})

	t.Run("reassignment clears folded state", func(t *testing.T) {
		coin, err := NewCoin(p)
		if err != nil {
			t.Fatalf("NewCoin failed: %v", err)
		}
		circ := buildVerified(t, p, coin, NewScalar(7))
		if err := circ.SetWireValues(coin); err != nil {
			t.Fatalf("SetWireValues failed: %v", err)
		}
		if err := circ.Verify(); !errors.Is(err, ErrNotFolded) {
			t.Errorf("Verify = %v, want ErrNotFolded after reassignment", err)
		}
	})
}

func TestCoinOfWrongParams(t *testing.T) {
	p := testParams(t)
	other := toyParams(t)
	coin, err := NewCoinFromSecrets(other, big.NewInt(5), big.NewInt(9))
	if err != nil {
		t.Fatalf("NewCoinFromSecrets failed: %v", err)
	}
	circ := NewCircuit(p)
	if err := circ.SetWireValues(coin); err == nil {
		t.Error("SetWireValues accepted a coin from a different parameter set")
	}
}
