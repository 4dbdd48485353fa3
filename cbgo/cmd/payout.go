package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/processor"
)

var (
	UnitsFlag = &cli.Uint64Flag{
		Name:     "units",
		Usage:    "Token units to redeem",
		Required: true,
	}
	SupplyFlag = &cli.Uint64Flag{
		Name:     "supply",
		Usage:    "Mint supply before the burn",
		Required: true,
	}
	BalanceFlag = &cli.Uint64Flag{
		Name:     "balance",
		Usage:    "Backing account balance in lamports",
		Required: true,
	}
	ExemptFlag = &cli.Uint64Flag{
		Name:     "exempt",
		Usage:    "Backing account rent exemption in lamports",
		Required: true,
	}
)

type PayoutResult struct {
	Lamports uint64 `json:"lamports"`
	Sol      string `json:"sol"`
}

func Payout(ctx *cli.Context) error {
	lamports, err := processor.Payout(
		ctx.Uint64(UnitsFlag.Name),
		ctx.Uint64(SupplyFlag.Name),
		ctx.Uint64(BalanceFlag.Name),
		ctx.Uint64(ExemptFlag.Name),
	)
	if err != nil {
		return err
	}
	return writeJSON(ctx.App.Writer, &PayoutResult{Lamports: lamports, Sol: processor.Sol(lamports)})
}

var PayoutCommand = &cli.Command{
	Name:        "payout",
	Usage:       "Compute a burn payout",
	Description: "Compute floor(units * (balance - exempt) / supply) in lamports.",
	Action:      Payout,
	Flags: []cli.Flag{
		UnitsFlag,
		SupplyFlag,
		BalanceFlag,
		ExemptFlag,
	},
}
