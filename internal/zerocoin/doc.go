// Package zerocoin implements the arithmetic-circuit core of a zerocoin
// spend proof: the zero-knowledge relation that a spent coin's serial number
// was derived correctly from a hidden commitment.
//
// Overview:
//   - Scalar arithmetic over an arbitrary prime group order q, with eager
//     reduction into canonical residues
//   - Per-coin witness assignment over an M x N wire grid satisfying the
//     rank-1 identity A*B = C cellwise
//   - A fixed constraint template, built once per parameter set and shared
//     read-only across concurrent circuit instances
//   - Challenge-driven folding of all constraint rows into a single scalar
//     identity, and a verifier reporting typed failure kinds
//
// Pipeline per spend:
//
//	params := zerocoin.DefaultParams()
//	coin, _ := zerocoin.NewCoin(params)
//	circ := zerocoin.NewCircuit(params)
//	circ.SetWireValues(coin)
//	circ.Fold(challenge) // challenge from internal/transcript
//	err := circ.Verify()
//
// During proof generation any verification failure is an internal bug;
// during verification of a claimed proof it means the proof is invalid. The
// package only reports which check failed and leaves that policy to the
// caller.
//
// The commitment scheme that turns a verified circuit into a transmittable
// succinct proof (polynomial commitments, transcript hashing) lives outside
// this package; see internal/transcript for challenge derivation.
package zerocoin
