package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// MaxPoints is the inclusive upper bound of a drawing's point score.
const MaxPoints = 999999

// RandomPointsGenerator produces the point score for a new drawing. Injected
// into the service so tests can script deterministic scores.
type RandomPointsGenerator interface {
	NextScore() (int, error)
}

type cryptoPointsGenerator struct{}

// NewCryptoPointsGenerator returns the production generator, backed by
// crypto/rand.
func NewCryptoPointsGenerator() RandomPointsGenerator {
	return cryptoPointsGenerator{}
}

// NextScore returns a uniformly distributed integer in [0, MaxPoints].
func (cryptoPointsGenerator) NextScore() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxPoints+1))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random points: %w", err)
	}
	return int(n.Int64()), nil
}
