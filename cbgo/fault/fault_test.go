package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, Success},
		{Decode.New("short"), InvalidInstructionData},
		{Signature.New("x"), MissingRequiredSignature},
		{Identity.New("x"), IncorrectProgramID},
		{Account.New("x"), InvalidAccountData},
		{Auth.New("x"), InvalidAccountData},
		{Accounts.New("x"), NotEnoughAccountKeys},
		{Math.New("x"), ArithmeticError},
		{Ledger.New("x"), LedgerFailure},
		{Shortfall(10, 3), InsufficientFunds},
		{fmt.Errorf("outer: %w", Shortfall(10, 3)), InsufficientFunds},
		{errors.New("other"), Unknown},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			require.Equal(t, c.want, Code(c.err))
		})
	}
}

func TestShortfallReportsMaximum(t *testing.T) {
	err := Shortfall(2_000_000, 1_500_000)
	var sf *ShortfallError
	require.ErrorAs(t, err, &sf)
	require.Equal(t, uint64(1_500_000), sf.Available)
	require.Contains(t, err.Error(), "maximum transferable is 1500000")
}

func TestErrorCodeString(t *testing.T) {
	require.Equal(t, "IncorrectProgramId", IncorrectProgramID.String())
	require.Equal(t, "Code(99)", ErrorCode(99).String())
}
