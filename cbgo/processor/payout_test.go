package processor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

func TestPayout(t *testing.T) {
	got, err := Payout(100, 1000, 1_041_000, 41_000)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), got)

	t.Run("multiplies before dividing", func(t *testing.T) {
		// 3 * 999 / 1000, not 3 * floor(999 / 1000).
		got, err := Payout(3, 1000, 999+1, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(2), got)
	})

	t.Run("whole supply drains the reserve", func(t *testing.T) {
		got, err := Payout(^uint64(0), ^uint64(0), ^uint64(0), 1)
		require.NoError(t, err)
		require.Equal(t, ^uint64(0)-1, got)
	})

	t.Run("zero supply", func(t *testing.T) {
		_, err := Payout(1, 0, 10, 1)
		require.True(t, fault.Math.Has(err))
	})

	t.Run("above the balance does not fit", func(t *testing.T) {
		_, err := Payout(^uint64(0), 1, ^uint64(0), 0)
		require.True(t, fault.Math.Has(err))
	})
}

func TestPayoutAtExemptionIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		exempt := rng.Uint64()
		got, err := Payout(rng.Uint64()|1, rng.Uint64()|1, exempt, exempt)
		require.NoError(t, err)
		require.Zero(t, got)
	}
}

func TestPayoutMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		exempt := uint64(rng.Int63n(10_000_000))
		balance := exempt + uint64(rng.Int63n(1<<40))
		supply := uint64(rng.Int63n(1<<40)) + 1
		units := uint64(rng.Int63n(int64(supply))) + 1

		base, err := Payout(units, supply, balance, exempt)
		require.NoError(t, err)
		more, err := Payout(units+1, supply, balance, exempt)
		require.NoError(t, err)
		require.GreaterOrEqual(t, more, base, "non-decreasing in units")
		diluted, err := Payout(units, supply+1, balance, exempt)
		require.NoError(t, err)
		require.LessOrEqual(t, diluted, base, "non-increasing in supply")
		require.LessOrEqual(t, base, balance-exempt)
	}
}

func TestOneUnit(t *testing.T) {
	unit, err := OneUnit(0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), unit)
	unit, err = OneUnit(9)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), unit)
	unit, err = OneUnit(19)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000_000_000_000_000), unit)
	_, err = OneUnit(20)
	require.True(t, fault.Math.Has(err))
}

func TestSol(t *testing.T) {
	require.Equal(t, "1.500000000000000000", Sol(1_500_000_000))
	require.Equal(t, "0.000005000000000000", Sol(5000))
}
