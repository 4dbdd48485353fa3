package ledger

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

// RentParams configures the rent oracle.
type RentParams struct {
	LamportsPerByteYear    uint64  `json:"lamportsPerByteYear"`
	ExemptionThreshold     float64 `json:"exemptionThreshold"`
	AccountStorageOverhead uint64  `json:"accountStorageOverhead"`
}

// DefaultRent matches the mainnet rent sysvar.
var DefaultRent = RentParams{
	LamportsPerByteYear:    3480,
	ExemptionThreshold:     2.0,
	AccountStorageOverhead: 128,
}

// Bank keeps accounts in memory. It is not safe for concurrent use; the
// platform it stands in for serializes calls touching the same accounts.
type Bank struct {
	accounts map[solana.PublicKey]*Account
	rent     RentParams

	accessList      []solana.PublicKey
	buildAccessList bool
}

var _ Ledger = (*Bank)(nil)

func NewBank(rent RentParams) *Bank {
	return &Bank{
		accounts: make(map[solana.PublicKey]*Account),
		rent:     rent,
	}
}

// BuildAccessList starts (or stops) recording every key the bank is asked
// about, and clears the previous list.
func (b *Bank) BuildAccessList(build bool) {
	b.buildAccessList = build
	b.accessList = []solana.PublicKey{}
}

// AccessList returns the touched keys in first-touch order.
func (b *Bank) AccessList() []solana.PublicKey {
	seen := make(map[solana.PublicKey]struct{}, len(b.accessList))
	out := make([]solana.PublicKey, 0, len(b.accessList))
	for _, k := range b.accessList {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func (b *Bank) touch(key solana.PublicKey) {
	if b.buildAccessList {
		b.accessList = append(b.accessList, key)
	}
}

// Put stores a copy of acc, replacing any account under the same key.
func (b *Bank) Put(acc Account) {
	b.accounts[acc.Key] = acc.Clone()
}

// Accounts returns copies of all accounts, ordered by key.
func (b *Bank) Accounts() []Account {
	out := make([]Account, 0, len(b.accounts))
	for _, acc := range b.accounts {
		out = append(out, *acc.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Key[:], out[j].Key[:]) < 0
	})
	return out
}

// Execute runs fn atomically: if fn fails every mutation it made is
// discarded. On success, accounts left without lamports are purged.
func (b *Bank) Execute(fn func(l Ledger) error) error {
	saved := make(map[solana.PublicKey]*Account, len(b.accounts))
	for k, acc := range b.accounts {
		saved[k] = acc.Clone()
	}
	if err := fn(b); err != nil {
		b.accounts = saved
		return err
	}
	for k, acc := range b.accounts {
		if acc.Lamports == 0 {
			delete(b.accounts, k)
		}
	}
	return nil
}

func (b *Bank) Get(key solana.PublicKey) (*Account, error) {
	b.touch(key)
	if acc, ok := b.accounts[key]; ok {
		return acc.Clone(), nil
	}
	return &Account{Key: key, Owner: solana.SystemProgramID}, nil
}

// live returns the stored account, creating an empty system account.
func (b *Bank) live(key solana.PublicKey) *Account {
	b.touch(key)
	acc, ok := b.accounts[key]
	if !ok {
		acc = &Account{Key: key, Owner: solana.SystemProgramID}
		b.accounts[key] = acc
	}
	return acc
}

func (b *Bank) MinimumBalance(size uint64) uint64 {
	perYear := (b.rent.AccountStorageOverhead + size) * b.rent.LamportsPerByteYear
	return uint64(float64(perYear) * b.rent.ExemptionThreshold)
}

func (b *Bank) CreateAccount(payer, key solana.PublicKey, lamports, space uint64, owner solana.PublicKey, seeds [][]byte) error {
	derived, err := solana.CreateProgramAddress(seeds, owner)
	if err != nil {
		return fault.Ledger.Wrap(err)
	}
	if !derived.Equals(key) {
		return fault.Ledger.New("seeds do not derive %s under %s", key, owner)
	}
	target := b.live(key)
	if target.Lamports > 0 || !target.DataIsEmpty() || !target.Owner.Equals(solana.SystemProgramID) {
		return fault.Ledger.New("create account: %s already in use", key)
	}
	if err := b.Transfer(payer, key, lamports); err != nil {
		return err
	}
	target.Data = make([]byte, space)
	target.Owner = owner
	return nil
}

func (b *Bank) Transfer(from, to solana.PublicKey, lamports uint64) error {
	src := b.live(from)
	if !src.Owner.Equals(solana.SystemProgramID) || !src.DataIsEmpty() {
		return fault.Ledger.New("transfer: from %s must be a system account without data", from)
	}
	if src.Lamports < lamports {
		return fault.Ledger.New("transfer: insufficient lamports %d, need %d", src.Lamports, lamports)
	}
	dst := b.live(to)
	sum := dst.Lamports + lamports
	if sum < dst.Lamports {
		return fault.Ledger.New("transfer: balance overflow on %s", to)
	}
	src.Lamports -= lamports
	dst.Lamports = sum
	return nil
}

func (b *Bank) SetLamports(key solana.PublicKey, lamports uint64) error {
	b.live(key).Lamports = lamports
	return nil
}

func (b *Bank) SetData(key solana.PublicKey, data []byte) error {
	acc := b.live(key)
	if len(data) != len(acc.Data) {
		return fault.Ledger.New("set data: %s holds %d bytes, got %d", key, len(acc.Data), len(data))
	}
	copy(acc.Data, data)
	return nil
}

func (b *Bank) Assign(key, owner solana.PublicKey) error {
	b.live(key).Owner = owner
	return nil
}

func (b *Bank) Resize(key solana.PublicKey, size uint64) error {
	acc := b.live(key)
	data := make([]byte, size)
	copy(data, acc.Data)
	acc.Data = data
	return nil
}

func (b *Bank) tokenAccount(key solana.PublicKey) (*Account, *TokenAccount, error) {
	acc := b.live(key)
	if !acc.Owner.Equals(solana.TokenProgramID) {
		return nil, nil, fault.Ledger.New("%s is not owned by the token program", key)
	}
	ta, err := UnpackTokenAccount(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	return acc, ta, nil
}

func (b *Bank) BurnTokens(tokenAccount, mint, authority solana.PublicKey, amount uint64) error {
	acc, ta, err := b.tokenAccount(tokenAccount)
	if err != nil {
		return err
	}
	if !ta.Mint.Equals(mint) {
		return fault.Ledger.New("burn: token account mint mismatch")
	}
	if !ta.Owner.Equals(authority) {
		return fault.Ledger.New("burn: owner does not match")
	}
	if ta.State == TokenStateFrozen {
		return fault.Ledger.New("burn: account is frozen")
	}
	if ta.Amount < amount {
		return fault.Ledger.New("burn: insufficient funds %d, need %d", ta.Amount, amount)
	}
	mintAcc := b.live(mint)
	if !mintAcc.Owner.Equals(solana.TokenProgramID) {
		return fault.Ledger.New("burn: mint %s is not owned by the token program", mint)
	}
	m, err := UnpackMint(mintAcc.Data)
	if err != nil {
		return err
	}
	if m.Supply < amount {
		return fault.Ledger.New("burn: supply underflow")
	}
	ta.Amount -= amount
	m.Supply -= amount
	copy(acc.Data, ta.Pack())
	copy(mintAcc.Data, m.Pack())
	return nil
}

func (b *Bank) CloseTokenAccount(tokenAccount, destination, authority solana.PublicKey) error {
	acc, ta, err := b.tokenAccount(tokenAccount)
	if err != nil {
		return err
	}
	if ta.IsNative == nil && ta.Amount != 0 {
		return fault.Ledger.New("close: non-native account has balance %d", ta.Amount)
	}
	closer := ta.Owner
	if ta.CloseAuthority != nil {
		closer = *ta.CloseAuthority
	}
	if !closer.Equals(authority) {
		return fault.Ledger.New("close: authority does not match")
	}
	dst := b.live(destination)
	sum := dst.Lamports + acc.Lamports
	if sum < dst.Lamports {
		return fault.Ledger.New("close: balance overflow on %s", destination)
	}
	dst.Lamports = sum
	acc.Lamports = 0
	acc.Data = nil
	acc.Owner = solana.SystemProgramID
	return nil
}

type snapshot struct {
	Rent     RentParams `json:"rent"`
	Accounts []Account  `json:"accounts"`
}

func (b *Bank) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{Rent: b.rent, Accounts: b.Accounts()})
}

func (b *Bank) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b.rent = s.Rent
	b.accounts = make(map[solana.PublicKey]*Account, len(s.Accounts))
	for _, acc := range s.Accounts {
		b.Put(acc)
	}
	return nil
}
