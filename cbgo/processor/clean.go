package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
	"github.com/coinbacked/coinbacked/cbgo/state"
)

// cleanAccountsAfterBurning closes the caller's empty token account and
// sweeps a drained reserve into the treasury. Either step is skipped when
// its account is already closed or not yet eligible.
//
// Accounts: owner (signer, writable), owner's token account (writable),
// backing (writable), treasury (writable), token program, system program.
func (p *Processor) cleanAccountsAfterBurning(accounts []*solana.AccountMeta) error {
	if err := requireAccounts(accounts, 6); err != nil {
		return err
	}
	owner, token, backing, treasury, tokenProgram, system :=
		accounts[0], accounts[1], accounts[2], accounts[3], accounts[4], accounts[5]

	if err := requireSigner(owner); err != nil {
		return err
	}
	if err := requireWritable(owner, token, backing, treasury); err != nil {
		return err
	}
	if err := requireKey(tokenProgram, solana.TokenProgramID, "token program"); err != nil {
		return err
	}
	if err := requireKey(system, solana.SystemProgramID, "system program"); err != nil {
		return err
	}

	backingAcc, err := p.ledger.Get(backing.PublicKey)
	if err != nil {
		return err
	}
	backingLive := !backingAcc.DataIsEmpty()
	var rec *state.BackingAccount
	if backingLive {
		stored, err := state.UnpackBackingAccount(backingAcc.Data)
		if err != nil {
			return err
		}
		// The record names the mint; re-derive and validate against it.
		if backingAcc, rec, err = p.loadBacking(backing.PublicKey, stored.TokenKey); err != nil {
			return err
		}
	}

	tokenAcc, err := p.ledger.Get(token.PublicKey)
	if err != nil {
		return err
	}
	tokenLive := !tokenAcc.DataIsEmpty()
	var tokenBalance uint64
	if tokenLive {
		if !tokenAcc.Owner.Equals(solana.TokenProgramID) {
			return fault.Account.New("token account %s is not owned by the token program", token.PublicKey)
		}
		ta, err := ledger.UnpackTokenAccount(tokenAcc.Data)
		if err != nil {
			return err
		}
		if !ta.Owner.Equals(owner.PublicKey) {
			return fault.Account.New("token account does not belong to signer")
		}
		// Once the reserve is gone the mint can no longer be cross-checked.
		if rec != nil && !ta.Mint.Equals(rec.TokenKey) {
			return fault.Account.New("token account does not belong to the reserve's mint")
		}
		tokenBalance = ta.Amount
	}
	if _, _, err := p.requireTreasury(treasury); err != nil {
		return err
	}

	if tokenLive && tokenBalance == 0 {
		if err := p.ledger.CloseTokenAccount(token.PublicKey, owner.PublicKey, owner.PublicKey); err != nil {
			return err
		}
		p.log.Info("Closed empty token account", "token", token.PublicKey)
	}
	if backingLive && backingAcc.Lamports <= rec.RentExemption {
		if err := p.sweep(backing.PublicKey, treasury.PublicKey, backingAcc.Lamports, len(backingAcc.Data)); err != nil {
			return err
		}
		p.log.Info("Swept drained backing account to treasury", "backing", backing.PublicKey, "lamports", backingAcc.Lamports)
	}
	return nil
}

// sweep moves all of key's lamports to treasury and hands key back to the
// system program with no data.
func (p *Processor) sweep(key, treasury solana.PublicKey, lamports uint64, size int) error {
	if err := p.credit(treasury, lamports); err != nil {
		return err
	}
	if err := p.ledger.SetLamports(key, 0); err != nil {
		return err
	}
	if err := p.ledger.SetData(key, make([]byte, size)); err != nil {
		return err
	}
	if err := p.ledger.Assign(key, solana.SystemProgramID); err != nil {
		return err
	}
	return p.ledger.Resize(key, 0)
}
