package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
	"github.com/coinbacked/coinbacked/cbgo/params"
	"github.com/coinbacked/coinbacked/cbgo/state"
)

func requireSigner(meta *solana.AccountMeta) error {
	if !meta.IsSigner {
		return fault.Signature.New("account %s is not signer", meta.PublicKey)
	}
	return nil
}

func requireWritable(metas ...*solana.AccountMeta) error {
	for _, m := range metas {
		if !m.IsWritable {
			return fault.Account.New("required account %s not writable", m.PublicKey)
		}
	}
	return nil
}

func requireKey(meta *solana.AccountMeta, want solana.PublicKey, what string) error {
	if !meta.PublicKey.Equals(want) {
		return fault.Identity.New("invalid %s: got %s, want %s", what, meta.PublicKey, want)
	}
	return nil
}

// loadTokenAccount reads a token holding account and checks its mint and
// owner linkage.
func (p *Processor) loadTokenAccount(key, mint, owner solana.PublicKey) (*ledger.TokenAccount, error) {
	acc, err := p.ledger.Get(key)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(solana.TokenProgramID) {
		return nil, fault.Account.New("token account %s is not owned by the token program", key)
	}
	ta, err := ledger.UnpackTokenAccount(acc.Data)
	if err != nil {
		return nil, err
	}
	if !ta.Mint.Equals(mint) {
		return nil, fault.Account.New("token account does not belong to mint")
	}
	if !ta.Owner.Equals(owner) {
		return nil, fault.Account.New("token account does not belong to signer")
	}
	return ta, nil
}

func (p *Processor) loadMint(key solana.PublicKey) (*ledger.Mint, error) {
	acc, err := p.ledger.Get(key)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(solana.TokenProgramID) {
		return nil, fault.Account.New("mint %s is not owned by the token program", key)
	}
	return ledger.UnpackMint(acc.Data)
}

// checkBackingVacant verifies key is the backing address of mint and that
// nothing lives there yet. It returns the bump.
func (p *Processor) checkBackingVacant(key, mint solana.PublicKey) (uint8, error) {
	derived, bump, err := address.Backing(mint, p.programID)
	if err != nil {
		return 0, err
	}
	if !derived.Equals(key) {
		return 0, fault.Account.New("account key mismatch: backing address is not derived from mint")
	}
	acc, err := p.ledger.Get(key)
	if err != nil {
		return 0, err
	}
	if acc.Owner.Equals(p.programID) || !acc.DataIsEmpty() {
		return 0, fault.Account.New("backing account seems to exist already")
	}
	return bump, nil
}

// loadBacking verifies key is the live backing account of mint and returns
// it with its record.
func (p *Processor) loadBacking(key, mint solana.PublicKey) (*ledger.Account, *state.BackingAccount, error) {
	derived, bump, err := address.Backing(mint, p.programID)
	if err != nil {
		return nil, nil, err
	}
	if !derived.Equals(key) {
		return nil, nil, fault.Account.New("account key mismatch: backing address is not derived from mint")
	}
	acc, err := p.ledger.Get(key)
	if err != nil {
		return nil, nil, err
	}
	if !acc.Owner.Equals(p.programID) {
		return nil, nil, fault.Account.New("backing account is not owned by this program")
	}
	rec, err := state.UnpackBackingAccount(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	if !rec.TokenKey.Equals(mint) {
		return nil, nil, fault.Account.New("backing account not pointing to mint account")
	}
	if rec.Bump != bump {
		return nil, nil, fault.Account.New("backing account bump is incorrect: stored %d, derived %d", rec.Bump, bump)
	}
	return acc, rec, nil
}

// checkTreasury verifies key is the treasury address. When the treasury
// exists its stored bump must match; rec is nil otherwise.
func (p *Processor) checkTreasury(key solana.PublicKey) (bump uint8, acc *ledger.Account, rec *state.TreasuryAccount, err error) {
	derived, bump, err := address.Treasury(p.programID)
	if err != nil {
		return 0, nil, nil, err
	}
	if !derived.Equals(key) {
		return 0, nil, nil, fault.Account.New("account key mismatch: treasury address is not derived from program")
	}
	acc, err = p.ledger.Get(key)
	if err != nil {
		return 0, nil, nil, err
	}
	if acc.DataIsEmpty() || !acc.Owner.Equals(p.programID) {
		return bump, acc, nil, nil
	}
	rec, err = state.UnpackTreasuryAccount(acc.Data)
	if err != nil {
		return 0, nil, nil, err
	}
	if rec.Bump != bump {
		return 0, nil, nil, fault.Account.New("treasury bump is incorrect: stored %d, derived %d", rec.Bump, bump)
	}
	return bump, acc, rec, nil
}

// requireTreasury is checkTreasury for operations that pay into or out of
// an existing treasury.
func (p *Processor) requireTreasury(meta *solana.AccountMeta) (*ledger.Account, *state.TreasuryAccount, error) {
	_, acc, rec, err := p.checkTreasury(meta.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, fault.Account.New("treasury account does not seem to exist")
	}
	return acc, rec, nil
}

// checkAdmin authenticates admin as the update authority of this program.
func (p *Processor) checkAdmin(admin, program, programData *solana.AccountMeta) error {
	if !program.PublicKey.Equals(p.programID) {
		return fault.Identity.New("program account has incorrect id %s", program.PublicKey)
	}
	derived, err := address.ProgramData(p.programID)
	if err != nil {
		return err
	}
	if !programData.PublicKey.Equals(derived) {
		return fault.Auth.New("program account and program data account don't fit")
	}
	programAcc, err := p.ledger.Get(program.PublicKey)
	if err != nil {
		return err
	}
	if stored, ok := address.ProgramDataPointer(programAcc.Data); ok && !stored.Equals(derived) {
		return fault.Auth.New("program account points at program data %s, want %s", stored, derived)
	}
	if err := requireSigner(admin); err != nil {
		return err
	}
	pdAcc, err := p.ledger.Get(programData.PublicKey)
	if err != nil {
		return err
	}
	if !pdAcc.Owner.Equals(solana.BPFLoaderUpgradeableProgramID) {
		return fault.Auth.New("program data account is not owned by the upgradeable loader")
	}
	authority, err := address.UpdateAuthority(pdAcc.Data)
	if err != nil {
		return err
	}
	if !admin.PublicKey.Equals(authority) {
		return fault.Auth.New("signer is not update authority for protocol")
	}
	return nil
}

// minimumExempt is the rent oracle's answer for size, never below 1.
func (p *Processor) minimumExempt(size int) uint64 {
	return max(p.ledger.MinimumBalance(uint64(size)), 1)
}

func (p *Processor) credit(key solana.PublicKey, lamports uint64) error {
	acc, err := p.ledger.Get(key)
	if err != nil {
		return err
	}
	sum := acc.Lamports + lamports
	if sum < acc.Lamports {
		return fault.Math.New("lamports overflow on %s", key)
	}
	return p.ledger.SetLamports(key, sum)
}

func (p *Processor) debit(key solana.PublicKey, lamports uint64) error {
	acc, err := p.ledger.Get(key)
	if err != nil {
		return err
	}
	if acc.Lamports < lamports {
		return fault.Math.New("lamports underflow on %s: %d < %d", key, acc.Lamports, lamports)
	}
	return p.ledger.SetLamports(key, acc.Lamports-lamports)
}

// payFee moves the protocol fee to the treasury. funded uses a system
// transfer signed by source; otherwise the lamports are moved directly,
// for handlers where source was already mutated in this call.
func (p *Processor) payFee(source, treasury solana.PublicKey, funded bool) error {
	if funded {
		return p.ledger.Transfer(source, treasury, params.ProtocolFee)
	}
	if err := p.debit(source, params.ProtocolFee); err != nil {
		return err
	}
	return p.credit(treasury, params.ProtocolFee)
}
