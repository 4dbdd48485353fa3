package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/instruction"
)

var (
	OpFlag = &cli.StringFlag{
		Name:     "op",
		Usage:    "Instruction to encode: " + fmt.Sprint(opNames()),
		Required: true,
	}
	AmountFlag = &cli.Uint64Flag{
		Name:  "amount",
		Usage: "Lamports, or token units for burn",
	}
	TermsFlag = &cli.StringFlag{
		Name:  "terms",
		Usage: "Signed terms of service, at most 128 bytes of UTF-8",
	}
)

var ops = map[string]func(amount uint64, terms string) instruction.Instruction{
	"create": func(amount uint64, terms string) instruction.Instruction {
		return &instruction.CreateBackingAccount{Amount: amount, SignedTerms: terms}
	},
	"validate": func(uint64, string) instruction.Instruction { return &instruction.ValidateBackingAccount{} },
	"add": func(amount uint64, terms string) instruction.Instruction {
		return &instruction.AddToBalance{Amount: amount, SignedTerms: terms}
	},
	"burn": func(amount uint64, terms string) instruction.Instruction {
		return &instruction.BurnAndFree{TokenAmount: amount, SignedTerms: terms}
	},
	"clean": func(uint64, string) instruction.Instruction { return &instruction.CleanAccountsAfterBurning{} },
	"admin-create-treasury": func(uint64, string) instruction.Instruction {
		return &instruction.AdminCreateTreasuryAccount{}
	},
	"admin-transfer": func(amount uint64, _ string) instruction.Instruction {
		return &instruction.AdminTransferFromTreasury{Amount: amount}
	},
}

func opNames() []string {
	names := make([]string, 0, len(ops))
	for n := range ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type Decoded struct {
	Opcode      uint8                   `json:"opcode"`
	Name        string                  `json:"name"`
	Instruction instruction.Instruction `json:"instruction"`
}

func Decode(ctx *cli.Context) error {
	data, err := hexFlag(ctx, InstructionFlag)
	if err != nil {
		return err
	}
	ix, err := instruction.Decode(data)
	if err != nil {
		return err
	}
	return writeJSON(ctx.App.Writer, &Decoded{Opcode: ix.Opcode(), Name: ix.Name(), Instruction: ix})
}

func Encode(ctx *cli.Context) error {
	mk, ok := ops[ctx.String(OpFlag.Name)]
	if !ok {
		return fmt.Errorf("unknown --%s %q, want one of %v", OpFlag.Name, ctx.String(OpFlag.Name), opNames())
	}
	data, err := mk(ctx.Uint64(AmountFlag.Name), ctx.String(TermsFlag.Name)).MarshalBinary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return err
}

var DecodeCommand = &cli.Command{
	Name:        "decode",
	Usage:       "Decode instruction data",
	Description: "Decode hex instruction data and print it as JSON.",
	Action:      Decode,
	Flags: []cli.Flag{
		InstructionFlag,
	},
}

var EncodeCommand = &cli.Command{
	Name:        "encode",
	Usage:       "Encode instruction data",
	Description: "Encode an instruction and print its data as hex.",
	Action:      Encode,
	Flags: []cli.Flag{
		OpFlag,
		AmountFlag,
		TermsFlag,
	},
}
