package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
	"github.com/coinbacked/coinbacked/cbgo/state"
)

// adminCreateTreasuryAccount creates the fee treasury. Calling it again once
// the treasury exists does nothing.
//
// Accounts: admin (signer, writable), treasury (writable), program,
// program data, system program, rent sysvar.
func (p *Processor) adminCreateTreasuryAccount(accounts []*solana.AccountMeta) error {
	if err := requireAccounts(accounts, 6); err != nil {
		return err
	}
	admin, treasury, program, programData, system, rent :=
		accounts[0], accounts[1], accounts[2], accounts[3], accounts[4], accounts[5]

	if err := p.checkAdmin(admin, program, programData); err != nil {
		return err
	}
	if err := requireWritable(treasury); err != nil {
		return err
	}
	if err := requireKey(system, solana.SystemProgramID, "system program"); err != nil {
		return err
	}
	if err := requireKey(rent, solana.SysVarRentPubkey, "rent sysvar"); err != nil {
		return err
	}
	bump, acc, _, err := p.checkTreasury(treasury.PublicKey)
	if err != nil {
		return err
	}
	if acc.Owner.Equals(p.programID) {
		p.log.Info("Treasury account already exists, no action", "treasury", treasury.PublicKey)
		return nil
	}

	exempt := p.minimumExempt(params.TreasuryAccountSize)
	seeds := address.WithBump(address.TreasurySeeds(p.programID), bump)
	if err := p.ledger.CreateAccount(admin.PublicKey, treasury.PublicKey, exempt, params.TreasuryAccountSize, p.programID, seeds); err != nil {
		return err
	}
	rec := state.TreasuryAccount{RentExemption: exempt, Bump: bump}
	if err := p.ledger.SetData(treasury.PublicKey, rec.Pack()); err != nil {
		return err
	}
	p.log.Info("Treasury account created", "treasury", treasury.PublicKey, "rentExemption", exempt)
	return nil
}

// adminTransferFromTreasury withdraws collected fees without cutting into
// the treasury's rent exemption.
//
// Accounts: admin (signer), receiver (writable), treasury (writable),
// program, program data.
func (p *Processor) adminTransferFromTreasury(accounts []*solana.AccountMeta, amount uint64) error {
	if err := requireAccounts(accounts, 5); err != nil {
		return err
	}
	admin, receiver, treasury, program, programData :=
		accounts[0], accounts[1], accounts[2], accounts[3], accounts[4]

	if err := p.checkAdmin(admin, program, programData); err != nil {
		return err
	}
	if err := requireWritable(receiver, treasury); err != nil {
		return err
	}
	acc, rec, err := p.requireTreasury(treasury)
	if err != nil {
		return err
	}

	limit := available(acc.Lamports, rec.RentExemption)
	p.log.Info("Treasury balance", "lamports", acc.Lamports, "max", limit, "requested", amount)
	if amount > limit {
		p.log.Warn("Not enough funds in treasury", "requested", amount, "max", limit)
		return fault.Shortfall(amount, limit)
	}
	if err := p.debit(treasury.PublicKey, amount); err != nil {
		return err
	}
	if err := p.credit(receiver.PublicKey, amount); err != nil {
		return err
	}
	p.log.Info("Transferred from treasury", "receiver", receiver.PublicKey, "lamports", amount, "sol", Sol(amount))
	return nil
}
