package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

// burnAndFree burns tokens and pays out their share of the reserve.
//
// Accounts: owner (signer, writable), mint (writable), owner's token
// account (writable), backing (writable), treasury (writable), token
// program.
func (p *Processor) burnAndFree(accounts []*solana.AccountMeta, tokenAmount uint64, terms string) error {
	if err := requireAccounts(accounts, 6); err != nil {
		return err
	}
	owner, mint, token, backing, treasury, tokenProgram :=
		accounts[0], accounts[1], accounts[2], accounts[3], accounts[4], accounts[5]

	if err := requireSigner(owner); err != nil {
		return err
	}
	if err := requireWritable(owner, mint, token, backing, treasury); err != nil {
		return err
	}
	if err := requireKey(tokenProgram, solana.TokenProgramID, "token program"); err != nil {
		return err
	}
	if _, err := p.loadTokenAccount(token.PublicKey, mint.PublicKey, owner.PublicKey); err != nil {
		return err
	}
	m, err := p.loadMint(mint.PublicKey)
	if err != nil {
		return err
	}
	backingAcc, rec, err := p.loadBacking(backing.PublicKey, mint.PublicKey)
	if err != nil {
		return err
	}
	if _, _, err := p.requireTreasury(treasury); err != nil {
		return err
	}

	// Supply is read before the burn so the caller's share is measured
	// against the supply it was part of.
	payout, err := Payout(tokenAmount, m.Supply, backingAcc.Lamports, rec.RentExemption)
	if err != nil {
		return err
	}
	if free := available(backingAcc.Lamports, rec.RentExemption); payout > free {
		return fault.Shortfall(payout, free)
	}
	p.logTerms(terms)

	if err := p.ledger.BurnTokens(token.PublicKey, mint.PublicKey, owner.PublicKey, tokenAmount); err != nil {
		return err
	}
	if err := p.debit(backing.PublicKey, payout); err != nil {
		return err
	}
	if err := p.credit(owner.PublicKey, payout); err != nil {
		return err
	}
	p.log.Info("Burned and freed", "tokens", tokenAmount, "supply", m.Supply, "lamports", payout, "sol", Sol(payout))
	return p.payFee(owner.PublicKey, treasury.PublicKey, false)
}
