package instruction

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

func rawAmountAndTerms(opcode uint8, amount uint64, terms []byte) []byte {
	out := []byte{opcode}
	out = binary.LittleEndian.AppendUint64(out, amount)
	region := make([]byte, params.SignedTermsSize)
	copy(region, terms)
	return append(out, region...)
}

func TestDecode(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		ix, err := Decode(rawAmountAndTerms(params.OpCreateBackingAccount, 1_000_000, []byte("agreed")))
		require.NoError(t, err)
		require.Equal(t, &CreateBackingAccount{Amount: 1_000_000, SignedTerms: "agreed"}, ix)
	})
	t.Run("add", func(t *testing.T) {
		ix, err := Decode(rawAmountAndTerms(params.OpAddToBalance, 42, nil))
		require.NoError(t, err)
		require.Equal(t, &AddToBalance{Amount: 42}, ix)
	})
	t.Run("burn", func(t *testing.T) {
		ix, err := Decode(rawAmountAndTerms(params.OpBurnAndFree, 100, []byte("tos ✓")))
		require.NoError(t, err)
		require.Equal(t, &BurnAndFree{TokenAmount: 100, SignedTerms: "tos ✓"}, ix)
	})
	t.Run("no payload", func(t *testing.T) {
		for opcode, want := range map[uint8]Instruction{
			params.OpValidateBackingAccount:     &ValidateBackingAccount{},
			params.OpCleanAccountsAfterBurning:  &CleanAccountsAfterBurning{},
			params.OpAdminCreateTreasuryAccount: &AdminCreateTreasuryAccount{},
		} {
			ix, err := Decode([]byte{opcode})
			require.NoError(t, err)
			require.Equal(t, want, ix)
			require.Equal(t, opcode, ix.Opcode())
		}
	})
	t.Run("admin transfer", func(t *testing.T) {
		data := binary.LittleEndian.AppendUint64([]byte{params.OpAdminTransferFromTreasury}, 0xc0ffee)
		ix, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, &AdminTransferFromTreasury{Amount: 0xc0ffee}, ix)
	})
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	for opcode, want := range lengths {
		for _, n := range []int{1, want - 1, want + 1, want + params.SignedTermsSize} {
			if n == want || n < 1 {
				continue
			}
			data := make([]byte, n)
			data[0] = opcode
			_, err := Decode(data)
			require.Error(t, err, "opcode %d len %d", opcode, n)
			require.True(t, fault.Decode.Has(err))
			require.Equal(t, fault.InvalidInstructionData, fault.Code(err))
		}
	}
	_, err := Decode(nil)
	require.True(t, fault.Decode.Has(err))
}

func TestDecodeRejectsUnknownOpcode(t *testing.T) {
	for _, opcode := range []uint8{5, 9, 12, 255} {
		for _, n := range []int{1, 9, 137} {
			data := make([]byte, n)
			data[0] = opcode
			_, err := Decode(data)
			require.True(t, fault.Decode.Has(err))
			require.ErrorContains(t, err, "unknown opcode")
		}
	}
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	terms := []byte("hello")
	terms = append(terms, 0xff, 'x')
	_, err := Decode(rawAmountAndTerms(params.OpBurnAndFree, 1, terms))
	require.True(t, fault.Decode.Has(err))
	require.ErrorContains(t, err, "from byte 5")

	// truncated multi-byte rune at the end of the region
	region := bytes.Repeat([]byte{'a'}, params.SignedTermsSize-1)
	region = append(region, 0xe2)
	_, err = Decode(rawAmountAndTerms(params.OpCreateBackingAccount, 1, region))
	require.ErrorContains(t, err, "from byte 127")
}

func TestInvalidUTF8Offset(t *testing.T) {
	require.Equal(t, -1, InvalidUTF8Offset(nil))
	require.Equal(t, -1, InvalidUTF8Offset([]byte("✓ ok\x00\x00")))
	require.Equal(t, 0, InvalidUTF8Offset([]byte{0x80}))
	require.Equal(t, 3, InvalidUTF8Offset([]byte{'a', 'b', 'c', 0xc3, 'x'}))
}

func TestEncodeDecode(t *testing.T) {
	for _, ix := range []Instruction{
		&CreateBackingAccount{Amount: 1, SignedTerms: "x"},
		&ValidateBackingAccount{},
		&AddToBalance{Amount: ^uint64(0), SignedTerms: string(bytes.Repeat([]byte{'z'}, params.SignedTermsSize))},
		&BurnAndFree{TokenAmount: 7},
		&CleanAccountsAfterBurning{},
		&AdminCreateTreasuryAccount{},
		&AdminTransferFromTreasury{Amount: 99},
	} {
		data, err := ix.MarshalBinary()
		require.NoError(t, err)
		want, _ := ExpectedLen(ix.Opcode())
		require.Len(t, data, want, ix.Name())
		got, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, ix, got)
	}
}

func TestEncodeRejectsBadTerms(t *testing.T) {
	_, err := (&CreateBackingAccount{SignedTerms: string(bytes.Repeat([]byte{'a'}, params.SignedTermsSize+1))}).MarshalBinary()
	require.True(t, fault.Decode.Has(err))
	_, err = (&BurnAndFree{SignedTerms: string([]byte{0xff})}).MarshalBinary()
	require.True(t, fault.Decode.Has(err))
}

func TestBuilders(t *testing.T) {
	programID := solana.MustPublicKeyFromBase58("B91LvPYXAo3KVNFbSXkWJWunVtXMV5irzdWCqPxJfMR7")
	owner := solana.PublicKeyFromBytes(bytes.Repeat([]byte{1}, 32))
	mint := solana.PublicKeyFromBytes(bytes.Repeat([]byte{2}, 32))
	tokenAccount := solana.PublicKeyFromBytes(bytes.Repeat([]byte{3}, 32))
	backing, _, err := address.Backing(mint, programID)
	require.NoError(t, err)
	treasury, _, err := address.Treasury(programID)
	require.NoError(t, err)

	ix, err := NewBurnAndFreeInstruction(programID, owner, mint, tokenAccount, 100, "terms")
	require.NoError(t, err)
	require.Equal(t, programID, ix.ProgramID())
	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	require.Equal(t, owner, accounts[0].PublicKey)
	require.True(t, accounts[0].IsSigner)
	require.Equal(t, backing, accounts[3].PublicKey)
	require.Equal(t, treasury, accounts[4].PublicKey)
	require.Equal(t, solana.TokenProgramID, accounts[5].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, &BurnAndFree{TokenAmount: 100, SignedTerms: "terms"}, decoded)

	admin, err := NewAdminTransferFromTreasuryInstruction(programID, owner, tokenAccount, 5)
	require.NoError(t, err)
	programData, err := address.ProgramData(programID)
	require.NoError(t, err)
	require.Equal(t, programData, admin.Accounts()[4].PublicKey)
}
