package address

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

var (
	programID = solana.MustPublicKeyFromBase58("B91LvPYXAo3KVNFbSXkWJWunVtXMV5irzdWCqPxJfMR7")
	mint      = solana.PublicKeyFromBytes(bytes.Repeat([]byte{7}, 32))
)

func TestBackingIsDeterministic(t *testing.T) {
	k1, b1, err := Backing(mint, programID)
	require.NoError(t, err)
	k2, b2, err := Backing(mint, programID)
	require.NoError(t, err)
	require.Equal(t, k1, k2)
	require.Equal(t, b1, b2)

	// the bump recreates the same address
	k3, err := solana.CreateProgramAddress(WithBump(BackingSeeds(mint, programID), b1), programID)
	require.NoError(t, err)
	require.Equal(t, k1, k3)

	other, _, err := Backing(solana.PublicKeyFromBytes(bytes.Repeat([]byte{8}, 32)), programID)
	require.NoError(t, err)
	require.NotEqual(t, k1, other)
}

func TestTreasuryDiffersFromBacking(t *testing.T) {
	tk, tb, err := Treasury(programID)
	require.NoError(t, err)
	k, err := solana.CreateProgramAddress(WithBump(TreasurySeeds(programID), tb), programID)
	require.NoError(t, err)
	require.Equal(t, tk, k)

	bk, _, err := Backing(mint, programID)
	require.NoError(t, err)
	require.NotEqual(t, tk, bk)
}

func TestWithBumpDoesNotAlias(t *testing.T) {
	seeds := make([][]byte, 2, 8)
	seeds[0], seeds[1] = []byte("a"), []byte("b")
	a := WithBump(seeds, 1)
	b := WithBump(seeds, 2)
	require.Equal(t, []byte{1}, a[2])
	require.Equal(t, []byte{2}, b[2])
}

func TestUpdateAuthority(t *testing.T) {
	authority := solana.PublicKeyFromBytes(bytes.Repeat([]byte{9}, 32))
	data := make([]byte, params.ProgramDataHeaderSize+16)
	data[0] = 3
	data[params.UpdateAuthorityOptionOffset] = 1
	copy(data[params.UpdateAuthorityOffset:], authority[:])

	got, err := UpdateAuthority(data)
	require.NoError(t, err)
	require.Equal(t, authority, got)

	data[params.UpdateAuthorityOptionOffset] = 0
	_, err = UpdateAuthority(data)
	require.True(t, fault.Auth.Has(err))

	_, err = UpdateAuthority(data[:params.ProgramDataHeaderSize-1])
	require.True(t, fault.Decode.Has(err))
}

func TestProgramDataPointer(t *testing.T) {
	pd, err := ProgramData(programID)
	require.NoError(t, err)

	data := make([]byte, params.ProgramAccountPointerEndSize)
	data[0] = 2
	copy(data[params.ProgramDataPointerOffset:], pd[:])
	got, ok := ProgramDataPointer(data)
	require.True(t, ok)
	require.Equal(t, pd, got)

	_, ok = ProgramDataPointer(data[:10])
	require.False(t, ok)
}
