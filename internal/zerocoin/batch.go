// batch.go - Parallel verification of many coin-spend circuits.
//
// Circuits only share the read-only constraint template, so a batched
// transaction's spends verify independently in worker goroutines with no
// coordination. Results are order-insensitive: the first failure wins.

package zerocoin

import (
	"context"
	"runtime"

	"github.com/consensys/gnark/logger"
	"golang.org/x/sync/errgroup"
)

// Spend pairs a coin with the challenge its proof was folded under.
type Spend struct {
	Coin      *Coin
	Challenge Scalar
}

// VerifyBatch builds, folds and verifies one circuit per spend in parallel.
// It returns the first verification failure, or the context error if the
// batch is cancelled.
func VerifyBatch(ctx context.Context, p *Params, spends []Spend) error {
	log := logger.Logger()
	log.Debug().Int("spends", len(spends)).Msg("verifying spend batch")

	// Build the template before spawning workers so the lazy construction
	// happens once, outside the group.
	p.Template()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, s := range spends {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			circ := NewCircuit(p)
			if err := circ.SetWireValues(s.Coin); err != nil {
				return err
			}
			if err := circ.Fold(s.Challenge); err != nil {
				return err
			}
			return circ.Verify()
		})
	}
	return g.Wait()
}
