package cmd

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
	"github.com/coinbacked/coinbacked/cbgo/processor"
)

// AccountFetcher is the subset of the RPC client inspect needs.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
}

var _ AccountFetcher = (*rpc.Client)(nil)

func fetchAccount(ctx context.Context, client AccountFetcher, key solana.PublicKey) (*ledger.Account, error) {
	res, err := client.GetAccountInfo(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", key, err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("account %s not found", key)
	}
	return &ledger.Account{
		Key:        key,
		Owner:      res.Value.Owner,
		Lamports:   res.Value.Lamports,
		Data:       res.Value.Data.GetBinary(),
		Executable: res.Value.Executable,
	}, nil
}

// InspectBacking fetches the backing account of mint and assesses it the
// way the on-ledger validation does, without paying a fee.
func InspectBacking(ctx context.Context, client AccountFetcher, programID, mint solana.PublicKey) (*processor.Report, error) {
	backingKey, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	backing, err := fetchAccount(ctx, client, backingKey)
	if err != nil {
		return nil, err
	}
	mintAcc, err := fetchAccount(ctx, client, mint)
	if err != nil {
		return nil, err
	}
	return processor.Assess(programID, mint, backing, mintAcc.Data)
}

func Inspect(ctx *cli.Context) error {
	programID, err := publicKeyFlag(ctx, ProgramFlag)
	if err != nil {
		return err
	}
	mint, err := publicKeyFlag(ctx, MintFlag)
	if err != nil {
		return err
	}
	report, err := InspectBacking(ctx.Context, rpc.New(ctx.String(RPCFlag.Name)), programID, mint)
	if err != nil {
		return err
	}
	return writeJSON(ctx.App.Writer, report)
}

var InspectCommand = &cli.Command{
	Name:        "inspect",
	Usage:       "Assess a live backing account",
	Description: "Fetch a mint's backing account over JSON-RPC and report the validation checks, the payout per token and whether the supply is fixed.",
	Action:      Inspect,
	Flags: []cli.Flag{
		RPCFlag,
		ProgramFlag,
		MintFlag,
	},
}
