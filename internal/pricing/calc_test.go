package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	q := Calculate(5, 50, 100)
	assert.Equal(t, 750.0, q.TotalPrice)
	assert.Equal(t, 225.0, q.Deposit)
}

func TestCalculateZeroArea(t *testing.T) {
	q := Calculate(0, 50, 100)
	assert.Equal(t, 0.0, q.TotalPrice)
	assert.Equal(t, 0.0, q.Deposit)
}

func TestCalculateFractionalArea(t *testing.T) {
	// Floats propagate as-is; no currency rounding is applied.
	q := Calculate(2.5, 40, 60)
	assert.InDelta(t, 250.0, q.TotalPrice, 1e-9)
	assert.InDelta(t, 75.0, q.Deposit, 1e-9)
}
