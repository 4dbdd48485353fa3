package instruction

import (
	"bytes"

	bin "github.com/gagliardetto/binary"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

func encode(opcode uint8, fn func(enc *bin.Encoder) error) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(lengths[opcode])
	enc := bin.NewBinEncoder(&buf)
	if err := enc.WriteUint8(opcode); err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(enc); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func amountAndTerms(amount uint64, terms string) func(enc *bin.Encoder) error {
	return func(enc *bin.Encoder) error {
		region, err := termsRegion(terms)
		if err != nil {
			return err
		}
		if err := enc.WriteUint64(amount, bin.LE); err != nil {
			return err
		}
		return enc.WriteBytes(region, false)
	}
}

// termsRegion pads terms with NUL bytes to the fixed region width.
func termsRegion(terms string) ([]byte, error) {
	if len(terms) > params.SignedTermsSize {
		return nil, fault.Decode.New("signed terms exceed %d bytes: %d", params.SignedTermsSize, len(terms))
	}
	if off := InvalidUTF8Offset([]byte(terms)); off >= 0 {
		return nil, fault.Decode.New("invalid UTF-8 in signed terms, from byte %d", off)
	}
	region := make([]byte, params.SignedTermsSize)
	copy(region, terms)
	return region, nil
}

func (i *CreateBackingAccount) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), amountAndTerms(i.Amount, i.SignedTerms))
}

func (i *ValidateBackingAccount) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), nil)
}

func (i *AddToBalance) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), amountAndTerms(i.Amount, i.SignedTerms))
}

func (i *BurnAndFree) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), amountAndTerms(i.TokenAmount, i.SignedTerms))
}

func (i *CleanAccountsAfterBurning) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), nil)
}

func (i *AdminCreateTreasuryAccount) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), nil)
}

func (i *AdminTransferFromTreasury) MarshalBinary() ([]byte, error) {
	return encode(i.Opcode(), func(enc *bin.Encoder) error {
		return enc.WriteUint64(i.Amount, bin.LE)
	})
}
