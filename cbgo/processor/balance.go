package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

// addToBalance tops up an active reserve.
//
// Accounts: payer (signer), mint, backing (writable), treasury (writable),
// system program.
func (p *Processor) addToBalance(accounts []*solana.AccountMeta, amount uint64, terms string) error {
	if err := requireAccounts(accounts, 5); err != nil {
		return err
	}
	payer, mint, backing, treasury, system := accounts[0], accounts[1], accounts[2], accounts[3], accounts[4]

	if err := requireSigner(payer); err != nil {
		return err
	}
	if err := requireWritable(backing, treasury); err != nil {
		return err
	}
	if err := requireKey(system, solana.SystemProgramID, "system program"); err != nil {
		return err
	}
	if _, _, err := p.loadBacking(backing.PublicKey, mint.PublicKey); err != nil {
		return err
	}
	m, err := p.loadMint(mint.PublicKey)
	if err != nil {
		return err
	}
	if m.Supply == 0 {
		return fault.Account.New("mint supply is 0, reserve can no longer be redeemed")
	}
	if _, _, err := p.requireTreasury(treasury); err != nil {
		return err
	}
	p.logTerms(terms)

	if err := p.ledger.Transfer(payer.PublicKey, backing.PublicKey, amount); err != nil {
		return err
	}
	p.log.Info("Added to backing account", "backing", backing.PublicKey, "lamports", amount, "sol", Sol(amount))
	return p.payFee(payer.PublicKey, treasury.PublicKey, true)
}
