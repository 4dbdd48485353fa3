// Package processor executes decoded instructions against a ledger.
//
// Every handler performs all of its checks before its first mutation, and
// relies on the ledger to discard staged mutations when it returns an error.
package processor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/instruction"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
)

type Processor struct {
	programID solana.PublicKey
	ledger    ledger.Ledger
	log       log.Logger
}

func NewProcessor(programID solana.PublicKey, l ledger.Ledger, logger log.Logger) *Processor {
	return &Processor{
		programID: programID,
		ledger:    l,
		log:       logger,
	}
}

// Execute runs one instruction against bank with all-or-nothing semantics.
func Execute(bank *ledger.Bank, programID solana.PublicKey, logger log.Logger, accounts []*solana.AccountMeta, data []byte) error {
	return bank.Execute(func(l ledger.Ledger) error {
		return NewProcessor(programID, l, logger).Process(accounts, data)
	})
}

// Process decodes data and dispatches it to its handler. accounts are in
// the order the instruction's builder produces.
func (p *Processor) Process(accounts []*solana.AccountMeta, data []byte) error {
	ix, err := instruction.Decode(data)
	if err != nil {
		return err
	}
	p.log.Info("Instruction: "+ix.Name(), "opcode", ix.Opcode(), "accounts", len(accounts))

	switch ix := ix.(type) {
	case *instruction.CreateBackingAccount:
		return p.createBackingAccount(accounts, ix.Amount, ix.SignedTerms)
	case *instruction.ValidateBackingAccount:
		return p.validateBackingAccount(accounts)
	case *instruction.AddToBalance:
		return p.addToBalance(accounts, ix.Amount, ix.SignedTerms)
	case *instruction.BurnAndFree:
		return p.burnAndFree(accounts, ix.TokenAmount, ix.SignedTerms)
	case *instruction.CleanAccountsAfterBurning:
		return p.cleanAccountsAfterBurning(accounts)
	case *instruction.AdminCreateTreasuryAccount:
		return p.adminCreateTreasuryAccount(accounts)
	case *instruction.AdminTransferFromTreasury:
		return p.adminTransferFromTreasury(accounts, ix.Amount)
	default:
		panic(fmt.Errorf("unhandled instruction %T", ix))
	}
}

func requireAccounts(accounts []*solana.AccountMeta, n int) error {
	if len(accounts) < n {
		return fault.Accounts.New("want at least %d accounts, got %d", n, len(accounts))
	}
	return nil
}

func (p *Processor) logTerms(terms string) {
	if sig, err := instruction.TermsSignature(terms); err == nil {
		p.log.Info("All pre-checks passed. User signed terms of service", "terms", terms, "signature", sig)
		return
	}
	p.log.Info("All pre-checks passed. User signed terms of service", "terms", terms)
}
