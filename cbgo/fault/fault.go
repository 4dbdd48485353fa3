// Package fault holds the error taxonomy shared by the decoder, the codec
// and the processor.
//
// Errors carry their category through a zeebo/errs class, so callers branch
// with Decode.Has(err) or Code(err) rather than matching messages. Class
// errors are returned as-is up to the entry point and never re-wrapped.
package fault

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"
)

var (
	// Decode marks malformed or mis-sized instruction and account buffers.
	Decode = errs.Class("decode")
	// Auth marks a wrong update authority or program-data linkage.
	Auth = errs.Class("authorization")
	// Signature marks a required signer that did not sign.
	Signature = errs.Class("missing required signature")
	// Identity marks a program or sysvar account that is not the expected one.
	Identity = errs.Class("incorrect program id")
	// Account marks derived address mismatches, stale bumps, wrong owner or
	// mint linkage and missing writability.
	Account = errs.Class("account")
	// Accounts marks an account list shorter than the instruction needs.
	Accounts = errs.Class("not enough account keys")
	// Math marks checked arithmetic failures.
	Math = errs.Class("math")
	// Ledger marks failures reported by the external ledger primitives.
	Ledger = errs.Class("ledger")
)

// ErrorCode is the stable numeric result surfaced to the external caller.
type ErrorCode uint32

const (
	Success ErrorCode = iota
	InvalidInstructionData
	MissingRequiredSignature
	IncorrectProgramID
	InvalidAccountData
	NotEnoughAccountKeys
	ArithmeticError
	InsufficientFunds
	LedgerFailure
	Unknown
)

var codeNames = map[ErrorCode]string{
	Success:                  "Success",
	InvalidInstructionData:   "InvalidInstructionData",
	MissingRequiredSignature: "MissingRequiredSignature",
	IncorrectProgramID:       "IncorrectProgramId",
	InvalidAccountData:       "InvalidAccountData",
	NotEnoughAccountKeys:     "NotEnoughAccountKeys",
	ArithmeticError:          "ArithmeticError",
	InsufficientFunds:        "InsufficientFunds",
	LedgerFailure:            "LedgerFailure",
	Unknown:                  "Unknown",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", uint32(c))
}

// ShortfallError reports a transfer that would cut into a rent-exemption
// floor. Available is the maximum amount that could have been moved.
type ShortfallError struct {
	Requested uint64
	Available uint64
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %d lamports, maximum transferable is %d", e.Requested, e.Available)
}

// Shortfall returns a *ShortfallError.
func Shortfall(requested, available uint64) error {
	return &ShortfallError{Requested: requested, Available: available}
}

// Code classifies err.
func Code(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var shortfall *ShortfallError
	switch {
	case errors.As(err, &shortfall):
		return InsufficientFunds
	case Decode.Has(err):
		return InvalidInstructionData
	case Signature.Has(err):
		return MissingRequiredSignature
	case Identity.Has(err):
		return IncorrectProgramID
	case Accounts.Has(err):
		return NotEnoughAccountKeys
	case Auth.Has(err), Account.Has(err):
		return InvalidAccountData
	case Math.Has(err):
		return ArithmeticError
	case Ledger.Has(err):
		return LedgerFailure
	}
	return Unknown
}
