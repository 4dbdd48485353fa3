// Package state packs and unpacks the two records this program persists.
// Layouts are fixed, little-endian and unversioned; the account kind alone
// determines which layout applies. Unpack only validates size.
package state

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

// BackingAccount is the reserve record of one backed mint.
type BackingAccount struct {
	TokenKey      solana.PublicKey `json:"tokenKey"`
	RentExemption uint64           `json:"rentExemption"`
	Bump          uint8            `json:"bump"`
}

// Pack returns the 41 byte encoding.
func (b *BackingAccount) Pack() []byte {
	out := make([]byte, 0, params.BackingAccountSize)
	out = append(out, b.TokenKey[:]...)
	out = binary.LittleEndian.AppendUint64(out, b.RentExemption)
	out = append(out, b.Bump)
	return out
}

// PackInto writes the encoding to the front of dst.
func (b *BackingAccount) PackInto(dst []byte) error {
	if len(dst) < params.BackingAccountSize {
		return fault.Decode.New("backing account buffer too short: %d < %d", len(dst), params.BackingAccountSize)
	}
	copy(dst, b.Pack())
	return nil
}

func UnpackBackingAccount(src []byte) (*BackingAccount, error) {
	if len(src) < params.BackingAccountSize {
		return nil, fault.Decode.New("no backing account data: %d < %d bytes", len(src), params.BackingAccountSize)
	}
	return &BackingAccount{
		TokenKey:      solana.PublicKeyFromBytes(src[0:32]),
		RentExemption: binary.LittleEndian.Uint64(src[32:40]),
		Bump:          src[40],
	}, nil
}

// TreasuryAccount is the protocol treasury record.
type TreasuryAccount struct {
	RentExemption uint64 `json:"rentExemption"`
	Bump          uint8  `json:"bump"`
}

// Pack returns the 9 byte encoding.
func (t *TreasuryAccount) Pack() []byte {
	out := make([]byte, 0, params.TreasuryAccountSize)
	out = binary.LittleEndian.AppendUint64(out, t.RentExemption)
	out = append(out, t.Bump)
	return out
}

func (t *TreasuryAccount) PackInto(dst []byte) error {
	if len(dst) < params.TreasuryAccountSize {
		return fault.Decode.New("treasury account buffer too short: %d < %d", len(dst), params.TreasuryAccountSize)
	}
	copy(dst, t.Pack())
	return nil
}

func UnpackTreasuryAccount(src []byte) (*TreasuryAccount, error) {
	if len(src) < params.TreasuryAccountSize {
		return nil, fault.Decode.New("no or invalid treasury account data: %d < %d bytes", len(src), params.TreasuryAccountSize)
	}
	return &TreasuryAccount{
		RentExemption: binary.LittleEndian.Uint64(src[0:8]),
		Bump:          src[8],
	}, nil
}
