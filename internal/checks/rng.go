package checks

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// The contract derives all randomness from keccak256 over the packed
// encoding of its inputs: a uint256 seed is its 32-byte big-endian form,
// a string salt its raw bytes. The draws below replicate that bit-exactly.

// seedBytes returns the packed 32-byte big-endian encoding of seed.
func seedBytes(seed *big.Int) [32]byte {
	var buf [32]byte
	seed.FillBytes(buf[:])
	return buf
}

func keccak(parts ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// Draw returns a deterministic pseudo-random value in [0, mod) derived
// from seed alone. mod must be positive; the draw is undefined for 0.
func Draw(seed *big.Int, mod int) int {
	b := seedBytes(seed)
	n := new(big.Int).SetBytes(keccak(b[:]))
	return int(n.Mod(n, big.NewInt(int64(mod))).Int64())
}

// DrawSalted returns a deterministic pseudo-random value in [0, mod)
// derived from seed and salt. Distinct salts yield independent streams
// from the same seed.
func DrawSalted(seed *big.Int, salt string, mod int) int {
	b := seedBytes(seed)
	n := new(big.Int).SetBytes(keccak(b[:], []byte(salt)))
	return int(n.Mod(n, big.NewInt(int64(mod))).Int64())
}

// drawOffset draws from seed+offset, the contract's idiom for per-index
// streams inside a single entity.
func drawOffset(seed *big.Int, offset int, mod int) int {
	s := new(big.Int).Add(seed, big.NewInt(int64(offset)))
	return Draw(s, mod)
}

// pairDigest hashes the packed concatenation of two seeds into a single
// randomizer. The composite gene merge consumes both its low decimal
// digits and its parity, so the full digest is returned.
func pairDigest(a, b *big.Int) *big.Int {
	ab := seedBytes(a)
	bb := seedBytes(b)
	return new(big.Int).SetBytes(keccak(ab[:], bb[:]))
}
