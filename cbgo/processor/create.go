package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
	"github.com/coinbacked/coinbacked/cbgo/state"
)

// createBackingAccount opens the reserve for a mint.
//
// Accounts: payer (signer), mint, payer's token account, backing
// (writable), treasury (writable), system program, rent sysvar.
func (p *Processor) createBackingAccount(accounts []*solana.AccountMeta, amount uint64, terms string) error {
	if err := requireAccounts(accounts, 7); err != nil {
		return err
	}
	payer, mint, token, backing, treasury, system, rent :=
		accounts[0], accounts[1], accounts[2], accounts[3], accounts[4], accounts[5], accounts[6]

	if err := requireSigner(payer); err != nil {
		return err
	}
	if err := requireWritable(backing, treasury); err != nil {
		return err
	}
	if err := requireKey(system, solana.SystemProgramID, "system program"); err != nil {
		return err
	}
	if err := requireKey(rent, solana.SysVarRentPubkey, "rent sysvar"); err != nil {
		return err
	}
	ta, err := p.loadTokenAccount(token.PublicKey, mint.PublicKey, payer.PublicKey)
	if err != nil {
		return err
	}
	if ta.Amount == 0 {
		return fault.Account.New("token account holds no tokens")
	}
	bump, err := p.checkBackingVacant(backing.PublicKey, mint.PublicKey)
	if err != nil {
		return err
	}
	if _, _, err := p.requireTreasury(treasury); err != nil {
		return err
	}

	exempt := p.minimumExempt(params.BackingAccountSize)
	funding := exempt + amount
	if funding < exempt {
		return fault.Math.New("reserve funding overflows: %d + %d", exempt, amount)
	}
	p.logTerms(terms)

	seeds := address.WithBump(address.BackingSeeds(mint.PublicKey, p.programID), bump)
	if err := p.ledger.CreateAccount(payer.PublicKey, backing.PublicKey, funding, params.BackingAccountSize, p.programID, seeds); err != nil {
		return err
	}
	rec := state.BackingAccount{TokenKey: mint.PublicKey, RentExemption: exempt, Bump: bump}
	if err := p.ledger.SetData(backing.PublicKey, rec.Pack()); err != nil {
		return err
	}
	p.log.Info("Backing account created", "backing", backing.PublicKey, "mint", mint.PublicKey, "lamports", funding, "rentExemption", exempt)
	return p.payFee(payer.PublicKey, treasury.PublicKey, true)
}
