package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/address"
)

type Addresses struct {
	Program      solana.PublicKey  `json:"program"`
	ProgramData  solana.PublicKey  `json:"programData"`
	Treasury     solana.PublicKey  `json:"treasury"`
	TreasuryBump uint8             `json:"treasuryBump"`
	Mint         *solana.PublicKey `json:"mint,omitempty"`
	Backing      *solana.PublicKey `json:"backing,omitempty"`
	BackingBump  *uint8            `json:"backingBump,omitempty"`
}

// DeriveAddresses computes the program's derived addresses. mint may be
// nil, in which case no backing address is derived.
func DeriveAddresses(programID solana.PublicKey, mint *solana.PublicKey) (*Addresses, error) {
	out := &Addresses{Program: programID}
	var err error
	if out.ProgramData, err = address.ProgramData(programID); err != nil {
		return nil, err
	}
	if out.Treasury, out.TreasuryBump, err = address.Treasury(programID); err != nil {
		return nil, err
	}
	if mint != nil {
		backing, bump, err := address.Backing(*mint, programID)
		if err != nil {
			return nil, err
		}
		out.Mint, out.Backing, out.BackingBump = mint, &backing, &bump
	}
	return out, nil
}

func Derive(ctx *cli.Context) error {
	programID, err := publicKeyFlag(ctx, ProgramFlag)
	if err != nil {
		return err
	}
	var mint *solana.PublicKey
	if ctx.IsSet(MintFlag.Name) {
		pk, err := publicKeyFlag(ctx, MintFlag)
		if err != nil {
			return err
		}
		mint = &pk
	}
	out, err := DeriveAddresses(programID, mint)
	if err != nil {
		return err
	}
	return writeJSON(ctx.App.Writer, out)
}

var DeriveCommand = &cli.Command{
	Name:        "derive",
	Usage:       "Derive program addresses",
	Description: "Derive the treasury, program data and, given a mint, backing addresses.",
	Action:      Derive,
	Flags: []cli.Flag{
		ProgramFlag,
		MintFlag,
	},
}
