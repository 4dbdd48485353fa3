// Package instruction decodes and encodes the program's instruction buffers.
//
// Byte 0 is the opcode; the remaining bytes are fixed little-endian integers
// and a fixed-width UTF-8 terms region. Every opcode has one exact length.
package instruction

import (
	"bytes"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

// Instruction is one decoded command.
type Instruction interface {
	Opcode() uint8
	Name() string
	MarshalBinary() ([]byte, error)
}

type CreateBackingAccount struct {
	Amount      uint64 `json:"amount"`
	SignedTerms string `json:"signedTerms"`
}

type ValidateBackingAccount struct{}

type AddToBalance struct {
	Amount      uint64 `json:"amount"`
	SignedTerms string `json:"signedTerms"`
}

type BurnAndFree struct {
	TokenAmount uint64 `json:"tokenAmount"`
	SignedTerms string `json:"signedTerms"`
}

type CleanAccountsAfterBurning struct{}

type AdminCreateTreasuryAccount struct{}

type AdminTransferFromTreasury struct {
	Amount uint64 `json:"amount"`
}

func (CreateBackingAccount) Opcode() uint8       { return params.OpCreateBackingAccount }
func (ValidateBackingAccount) Opcode() uint8     { return params.OpValidateBackingAccount }
func (AddToBalance) Opcode() uint8               { return params.OpAddToBalance }
func (BurnAndFree) Opcode() uint8                { return params.OpBurnAndFree }
func (CleanAccountsAfterBurning) Opcode() uint8  { return params.OpCleanAccountsAfterBurning }
func (AdminCreateTreasuryAccount) Opcode() uint8 { return params.OpAdminCreateTreasuryAccount }
func (AdminTransferFromTreasury) Opcode() uint8  { return params.OpAdminTransferFromTreasury }

func (CreateBackingAccount) Name() string       { return "Create Backing Account" }
func (ValidateBackingAccount) Name() string     { return "Validate Backing Account" }
func (AddToBalance) Name() string               { return "Add to Balance of Backing Account" }
func (BurnAndFree) Name() string                { return "Burn Token and Free Balance" }
func (CleanAccountsAfterBurning) Name() string  { return "Clean Accounts After Burning" }
func (AdminCreateTreasuryAccount) Name() string { return "Admin Create Treasury Account" }
func (AdminTransferFromTreasury) Name() string  { return "Admin Transfer From Treasury Account" }

var lengths = map[uint8]int{
	params.OpCreateBackingAccount:       params.CreateBackingAccountLen,
	params.OpValidateBackingAccount:     params.ValidateBackingAccountLen,
	params.OpAddToBalance:               params.AddToBalanceLen,
	params.OpBurnAndFree:                params.BurnAndFreeLen,
	params.OpCleanAccountsAfterBurning:  params.CleanAccountsAfterBurningLen,
	params.OpAdminCreateTreasuryAccount: params.AdminCreateTreasuryAccountLen,
	params.OpAdminTransferFromTreasury:  params.AdminTransferFromTreasuryLen,
}

// ExpectedLen returns the exact buffer length of opcode.
func ExpectedLen(opcode uint8) (int, bool) {
	n, ok := lengths[opcode]
	return n, ok
}

// Decode parses data into an Instruction.
func Decode(data []byte) (Instruction, error) {
	if len(data) < params.OpcodeSize {
		return nil, fault.Decode.New("incorrect data format, too short")
	}
	opcode := data[0]
	want, ok := lengths[opcode]
	if !ok {
		return nil, fault.Decode.New("unknown opcode %d", opcode)
	}
	if len(data) != want {
		return nil, fault.Decode.New("wrong size for opcode %d: got %d bytes, want %d", opcode, len(data), want)
	}

	dec := bin.NewBinDecoder(data[params.OpcodeSize:])
	switch opcode {
	case params.OpCreateBackingAccount:
		amount, terms, err := decodeAmountAndTerms(dec)
		if err != nil {
			return nil, err
		}
		return &CreateBackingAccount{Amount: amount, SignedTerms: terms}, nil
	case params.OpValidateBackingAccount:
		return &ValidateBackingAccount{}, nil
	case params.OpAddToBalance:
		amount, terms, err := decodeAmountAndTerms(dec)
		if err != nil {
			return nil, err
		}
		return &AddToBalance{Amount: amount, SignedTerms: terms}, nil
	case params.OpBurnAndFree:
		amount, terms, err := decodeAmountAndTerms(dec)
		if err != nil {
			return nil, err
		}
		return &BurnAndFree{TokenAmount: amount, SignedTerms: terms}, nil
	case params.OpCleanAccountsAfterBurning:
		return &CleanAccountsAfterBurning{}, nil
	case params.OpAdminCreateTreasuryAccount:
		return &AdminCreateTreasuryAccount{}, nil
	default: // params.OpAdminTransferFromTreasury
		amount, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return nil, fault.Decode.Wrap(err)
		}
		return &AdminTransferFromTreasury{Amount: amount}, nil
	}
}

func decodeAmountAndTerms(dec *bin.Decoder) (uint64, string, error) {
	amount, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return 0, "", fault.Decode.Wrap(err)
	}
	raw, err := dec.ReadNBytes(params.SignedTermsSize)
	if err != nil {
		return 0, "", fault.Decode.Wrap(err)
	}
	if off := InvalidUTF8Offset(raw); off >= 0 {
		return 0, "", fault.Decode.New("invalid UTF-8 in signed terms, from byte %d", off)
	}
	return amount, string(bytes.TrimRight(raw, "\x00")), nil
}

// InvalidUTF8Offset returns the length of the longest valid UTF-8 prefix of
// b, or -1 when all of b is valid.
func InvalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
