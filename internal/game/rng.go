package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/go-logr/logr"
)

var internalLogger = logr.Discard()

// SetInternalLogger sets the diagnostic logger used by engines created without one.
func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("pyokemon")
}

// NewSeed returns a cryptographically random seed.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a PCG-backed generator for the seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
