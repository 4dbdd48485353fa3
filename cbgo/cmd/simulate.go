package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
	"github.com/coinbacked/coinbacked/cbgo/processor"
)

var OutFilePerm = os.FileMode(0o644)

type SimulationResult struct {
	Code       string             `json:"code"`
	Error      string             `json:"error,omitempty"`
	AccessList []solana.PublicKey `json:"accessList"`
	// Accounts holds the touched accounts after execution. Accounts closed
	// by the instruction are omitted.
	Accounts []ledger.Account `json:"accounts"`
}

// Simulate runs one instruction against a ledger snapshot. A failing
// instruction is reported in the result, not as a command error.
func Simulate(ctx *cli.Context) error {
	if ctx.Bool(PProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}
	lvl, err := LevelFromContext(ctx)
	if err != nil {
		return err
	}
	l := Logger(os.Stderr, lvl)

	bank, err := jsonutil.LoadJSON[ledger.Bank](ctx.Path(StateFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}
	programID, err := publicKeyFlag(ctx, ProgramFlag)
	if err != nil {
		return err
	}
	data, err := hexFlag(ctx, InstructionFlag)
	if err != nil {
		return err
	}
	var accounts []*solana.AccountMeta
	for _, v := range ctx.StringSlice(AccountFlag.Name) {
		meta, err := ParseAccountMeta(v)
		if err != nil {
			return err
		}
		accounts = append(accounts, meta)
	}

	bank.BuildAccessList(true)
	execErr := processor.Execute(bank, programID, l, accounts, data)
	accessList := bank.AccessList()
	bank.BuildAccessList(false)

	result := &SimulationResult{
		Code:       fault.Code(execErr).String(),
		AccessList: accessList,
	}
	if execErr != nil {
		result.Error = execErr.Error()
		l.Warn("Instruction failed", "code", result.Code, "err", execErr)
	}
	live := make(map[solana.PublicKey]ledger.Account)
	for _, acc := range bank.Accounts() {
		live[acc.Key] = acc
	}
	for _, k := range accessList {
		if acc, ok := live[k]; ok {
			result.Accounts = append(result.Accounts, acc)
			l.Debug("Account", "key", k, "owner", acc.Owner, "lamports", Lamports(acc.Lamports), "size", len(acc.Data))
		}
	}

	if out := ctx.Path(OutputFlag.Name); out != "" {
		if err := writeJSONFile(out, bank); err != nil {
			return fmt.Errorf("failed to write ledger state: %w", err)
		}
	}
	return writeJSON(ctx.App.Writer, result)
}

func writeJSONFile(path string, v any) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutFilePerm)
	if err != nil {
		return err
	}
	if err := writeJSON(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var SimulateCommand = &cli.Command{
	Name:        "simulate",
	Usage:       "Run an instruction against a ledger snapshot",
	Description: "Run one instruction against a JSON ledger snapshot, atomically, and report the result code, the accessed accounts and their state.",
	Action:      Simulate,
	Flags: []cli.Flag{
		StateFlag,
		OutputFlag,
		ProgramFlag,
		InstructionFlag,
		AccountFlag,
		PProfCPUFlag,
		LogLevelFlag,
	},
}
