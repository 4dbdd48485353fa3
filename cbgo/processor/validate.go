package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/address"
	"github.com/coinbacked/coinbacked/cbgo/ledger"
	"github.com/coinbacked/coinbacked/cbgo/state"
)

type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Report is the outcome of assessing one reserve. Checks never abort the
// assessment; Valid is their conjunction.
type Report struct {
	Backing solana.PublicKey `json:"backing"`
	Mint    solana.PublicKey `json:"mint"`
	Checks  []Check          `json:"checks"`
	Valid   bool             `json:"valid"`

	Lamports      uint64 `json:"lamports"`
	RentExemption uint64 `json:"rentExemption"`
	Supply        uint64 `json:"supply"`
	Decimals      uint8  `json:"decimals"`
	// PayoutPerUnit is the lamports one whole token redeems for, nil when it
	// cannot be computed (for example at zero supply).
	PayoutPerUnit *uint64 `json:"payoutPerUnit,omitempty"`
	FixedSupply   bool    `json:"fixedSupply"`
}

// Assess inspects a backing account and its mint. Only malformed account
// data is an error; semantic mismatches are recorded as failed checks.
func Assess(programID, mint solana.PublicKey, backing *ledger.Account, mintData []byte) (*Report, error) {
	rec, err := state.UnpackBackingAccount(backing.Data)
	if err != nil {
		return nil, err
	}
	m, err := ledger.UnpackMint(mintData)
	if err != nil {
		return nil, err
	}
	r := &Report{
		Backing:       backing.Key,
		Mint:          mint,
		Lamports:      backing.Lamports,
		RentExemption: rec.RentExemption,
		Supply:        m.Supply,
		Decimals:      m.Decimals,
		FixedSupply:   m.FixedSupply(),
	}

	derived, bump, err := address.Backing(mint, programID)
	derivedOK := err == nil
	r.Checks = []Check{
		{Name: "address", Passed: derivedOK && derived.Equals(backing.Key)},
		{Name: "owner", Passed: backing.Owner.Equals(programID)},
		{Name: "rent exemption", Passed: backing.Lamports >= rec.RentExemption},
		{Name: "mint", Passed: rec.TokenKey.Equals(mint)},
		{Name: "bump", Passed: derivedOK && rec.Bump == bump},
	}
	r.Valid = true
	for _, c := range r.Checks {
		r.Valid = r.Valid && c.Passed
	}

	if unit, err := OneUnit(m.Decimals); err == nil {
		if per, err := Payout(unit, m.Supply, backing.Lamports, rec.RentExemption); err == nil {
			r.PayoutPerUnit = &per
		}
	}
	return r, nil
}

// validateBackingAccount logs an assessment of the reserve. It fails only
// on malformed accounts or when the fee cannot be paid.
//
// Accounts: payer (signer, writable), mint, backing, treasury (writable),
// system program.
func (p *Processor) validateBackingAccount(accounts []*solana.AccountMeta) error {
	if err := requireAccounts(accounts, 5); err != nil {
		return err
	}
	payer, mint, backing, treasury, system := accounts[0], accounts[1], accounts[2], accounts[3], accounts[4]

	if err := requireSigner(payer); err != nil {
		return err
	}
	if err := requireWritable(treasury); err != nil {
		return err
	}
	if err := requireKey(system, solana.SystemProgramID, "system program"); err != nil {
		return err
	}
	if _, _, err := p.requireTreasury(treasury); err != nil {
		return err
	}
	backingAcc, err := p.ledger.Get(backing.PublicKey)
	if err != nil {
		return err
	}
	mintAcc, err := p.ledger.Get(mint.PublicKey)
	if err != nil {
		return err
	}
	r, err := Assess(p.programID, mint.PublicKey, backingAcc, mintAcc.Data)
	if err != nil {
		return err
	}

	for _, c := range r.Checks {
		result := "success"
		if !c.Passed {
			result = "failure"
		}
		p.log.Info("Validation check", "check", c.Name, "result", result)
	}
	p.log.Info("Validation finished", "valid", r.Valid)
	if r.PayoutPerUnit != nil {
		p.log.Info("Payout per token", "lamports", *r.PayoutPerUnit, "sol", Sol(*r.PayoutPerUnit))
	} else {
		p.log.Info("Payout per token unavailable", "supply", r.Supply)
	}
	p.log.Info("Token supply", "fixed", r.FixedSupply, "supply", r.Supply)

	return p.payFee(payer.PublicKey, treasury.PublicKey, true)
}
