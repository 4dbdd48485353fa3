package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"
)

var (
	LogLevelFlag = &cli.StringFlag{
		Name:  "log.level",
		Usage: "Log level: debug, info, warn or error",
		Value: "info",
	}
	ProgramFlag = &cli.StringFlag{
		Name:     "program",
		Usage:    "Program id, base58",
		Required: true,
	}
	MintFlag = &cli.StringFlag{
		Name:  "mint",
		Usage: "Token mint, base58",
	}
	InstructionFlag = &cli.StringFlag{
		Name:     "instruction",
		Usage:    "Instruction data, hex with 0x prefix",
		Required: true,
	}
	AccountFlag = &cli.StringSliceFlag{
		Name:  "account",
		Usage: "Instruction account as <base58>[:s][:w] (signer, writable), in order. Repeatable",
	}
	StateFlag = &cli.PathFlag{
		Name:      "state",
		Usage:     "Path to the JSON ledger snapshot",
		TakesFile: true,
		Required:  true,
	}
	OutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "Path to write the resulting JSON snapshot to. Unset to skip",
		TakesFile: true,
	}
	PProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "Enable pprof CPU profiling",
	}
	RPCFlag = &cli.StringFlag{
		Name:  "rpc",
		Usage: "JSON-RPC endpoint",
		Value: "https://api.mainnet-beta.solana.com",
	}
)

func publicKeyFlag(ctx *cli.Context, flag *cli.StringFlag) (solana.PublicKey, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return solana.PublicKey{}, fmt.Errorf("missing --%s", flag.Name)
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s %q: %w", flag.Name, v, err)
	}
	return pk, nil
}

func hexFlag(ctx *cli.Context, flag *cli.StringFlag) ([]byte, error) {
	b, err := hexutil.Decode(ctx.String(flag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag.Name, err)
	}
	return b, nil
}

// ParseAccountMeta parses <base58>[:s][:w].
func ParseAccountMeta(v string) (*solana.AccountMeta, error) {
	parts := strings.Split(v, ":")
	pk, err := solana.PublicKeyFromBase58(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid account %q: %w", v, err)
	}
	var signer, writable bool
	for _, p := range parts[1:] {
		switch p {
		case "s":
			signer = true
		case "w":
			writable = true
		default:
			return nil, fmt.Errorf("invalid account flag %q in %q", p, v)
		}
	}
	return solana.NewAccountMeta(pk, writable, signer), nil
}
