package math

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

func TestFloorRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	samples := []uint64{0, 1, 2, 999, WAD, ^uint64(0), ^uint64(0) - 1}
	for i := 0; i < 1000; i++ {
		samples = append(samples, rng.Uint64())
	}
	for _, v := range samples {
		got, err := FromUint64(v).TryFloorUint64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestMulDivInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		a := rng.Uint64()
		b := rng.Uint64() | 1
		prod, err := FromUint64(a).TryMul(FromUint64(b))
		require.NoError(t, err)
		back, err := prod.TryDiv(FromUint64(b))
		require.NoError(t, err)
		got, err := back.TryFloorUint64()
		require.NoError(t, err)
		require.LessOrEqual(t, a-got, uint64(1), "a=%d b=%d", a, b)
	}
}

func TestMulBeforeDivKeepsFraction(t *testing.T) {
	// 1/3 * 3 loses at most one raw unit
	third, err := One.TryDiv(FromUint64(3))
	require.NoError(t, err)
	require.Equal(t, "0.333333333333333333", third.String())

	// 100 * 1_000_000 / 1000 stays exact when multiplied first
	prod, err := FromUint64(100).TryMul(FromUint64(1_000_000))
	require.NoError(t, err)
	q, err := prod.TryDiv(FromUint64(1000))
	require.NoError(t, err)
	got, err := q.TryFloorUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), got)
}

func TestCheckedFailures(t *testing.T) {
	t.Run("sub underflow", func(t *testing.T) {
		_, err := FromUint64(1).TrySub(FromUint64(2))
		require.True(t, fault.Math.Has(err))
	})
	t.Run("div by zero", func(t *testing.T) {
		_, err := FromUint64(1).TryDiv(Zero)
		require.True(t, fault.Math.Has(err))
		_, err = FromUint64(1).TryDivUint64(0)
		require.True(t, fault.Math.Has(err))
	})
	t.Run("add beyond 192 bits", func(t *testing.T) {
		var top U256
		top.Lsh(uint256.NewInt(1), Bits)
		top.SubUint64(&top, 1)
		d, err := FromRaw(&top)
		require.NoError(t, err)
		_, err = d.TryAdd(Decimal{v: *uint256.NewInt(1)})
		require.True(t, fault.Math.Has(err))
	})
	t.Run("mul beyond 192 bits", func(t *testing.T) {
		huge := FromUint128(^uint64(0), ^uint64(0))
		_, err := huge.TryMul(huge)
		require.True(t, fault.Math.Has(err))
	})
	t.Run("raw beyond 192 bits", func(t *testing.T) {
		var v U256
		v.Lsh(uint256.NewInt(1), Bits)
		_, err := FromRaw(&v)
		require.True(t, fault.Math.Has(err))
	})
	t.Run("floor beyond 64 bits", func(t *testing.T) {
		d := FromUint128(1, 0)
		_, err := d.TryFloorUint64()
		require.True(t, fault.Math.Has(err))
	})
}

func TestUint64Operands(t *testing.T) {
	d, err := FromUint64(7).TryMulUint64(6)
	require.NoError(t, err)
	require.True(t, d.Eq(FromUint64(42)))
	d, err = d.TryDivUint64(4)
	require.NoError(t, err)
	require.Equal(t, "10.500000000000000000", d.String())
}

func TestString(t *testing.T) {
	require.Equal(t, "0.000000000000000000", Zero.String())
	require.Equal(t, "1.000000000000000000", One.String())
	require.Equal(t, "0.000000000000000001", Decimal{v: *uint256.NewInt(1)}.String())
	require.Equal(t, "18446744073709551615.000000000000000000", FromUint64(^uint64(0)).String())
}
