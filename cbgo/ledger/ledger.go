// Package ledger describes the external ledger platform the processor runs
// against, and provides Bank, an in-memory implementation used by tests and
// the simulate command.
package ledger

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
)

// Account is a snapshot of one ledger account. Data is a copy; writes go
// back through the Ledger.
type Account struct {
	Key        solana.PublicKey `json:"key"`
	Owner      solana.PublicKey `json:"owner"`
	Lamports   uint64           `json:"lamports"`
	Data       hexutil.Bytes    `json:"data"`
	Executable bool             `json:"executable,omitempty"`
}

// DataIsEmpty reports whether the account stores no data.
func (a *Account) DataIsEmpty() bool {
	return len(a.Data) == 0
}

func (a *Account) Clone() *Account {
	out := *a
	out.Data = append(hexutil.Bytes(nil), a.Data...)
	return &out
}

// Ledger is the collaborator contract. Accounts that were never created
// read as empty, system owned and without lamports.
type Ledger interface {
	Get(key solana.PublicKey) (*Account, error)

	// MinimumBalance is the rent oracle: the smallest self-sustaining
	// balance for an account holding size bytes.
	MinimumBalance(size uint64) uint64

	// CreateAccount funds key from payer and assigns it to owner. seeds,
	// including the bump, must derive key under owner.
	CreateAccount(payer, key solana.PublicKey, lamports, space uint64, owner solana.PublicKey, seeds [][]byte) error
	// Transfer is a system transfer from a signer-funded account.
	Transfer(from, to solana.PublicKey, lamports uint64) error

	// SetLamports, SetData, Assign and Resize mutate an account the
	// program controls directly.
	SetLamports(key solana.PublicKey, lamports uint64) error
	SetData(key solana.PublicKey, data []byte) error
	Assign(key, owner solana.PublicKey) error
	Resize(key solana.PublicKey, size uint64) error

	// BurnTokens and CloseTokenAccount are the token program primitives.
	BurnTokens(tokenAccount, mint, authority solana.PublicKey, amount uint64) error
	CloseTokenAccount(tokenAccount, destination, authority solana.PublicKey) error
}
