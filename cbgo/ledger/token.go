package ledger

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

// SPL token program layouts. Optional keys and amounts are a 4 byte tag
// followed by the payload, present or not.
const (
	TokenAccountSize = 165
	MintSize         = 82
)

const (
	TokenStateUninitialized = uint8(0)
	TokenStateInitialized   = uint8(1)
	TokenStateFrozen        = uint8(2)
)

// TokenAccount is a token holding account.
type TokenAccount struct {
	Mint            solana.PublicKey  `json:"mint"`
	Owner           solana.PublicKey  `json:"owner"`
	Amount          uint64            `json:"amount"`
	Delegate        *solana.PublicKey `json:"delegate,omitempty"`
	State           uint8             `json:"state"`
	IsNative        *uint64           `json:"isNative,omitempty"`
	DelegatedAmount uint64            `json:"delegatedAmount"`
	CloseAuthority  *solana.PublicKey `json:"closeAuthority,omitempty"`
}

// Mint holds the supply information of a token.
type Mint struct {
	MintAuthority   *solana.PublicKey `json:"mintAuthority,omitempty"`
	Supply          uint64            `json:"supply"`
	Decimals        uint8             `json:"decimals"`
	IsInitialized   bool              `json:"isInitialized"`
	FreezeAuthority *solana.PublicKey `json:"freezeAuthority,omitempty"`
}

// FixedSupply reports whether no more tokens can be minted.
func (m *Mint) FixedSupply() bool {
	return m.MintAuthority == nil
}

func readOptionalKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	raw, err := dec.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	key := solana.PublicKeyFromBytes(raw)
	return &key, nil
}

func readOptionalUint64(dec *bin.Decoder) (*uint64, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	v, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	return &v, nil
}

func writeOptionalKey(enc *bin.Encoder, key *solana.PublicKey) error {
	var tag uint32
	var raw solana.PublicKey
	if key != nil {
		tag, raw = 1, *key
	}
	if err := enc.WriteUint32(tag, bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes(raw[:], false)
}

func writeOptionalUint64(enc *bin.Encoder, v *uint64) error {
	var tag uint32
	var raw uint64
	if v != nil {
		tag, raw = 1, *v
	}
	if err := enc.WriteUint32(tag, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint64(raw, bin.LE)
}

func UnpackTokenAccount(data []byte) (*TokenAccount, error) {
	if len(data) < TokenAccountSize {
		return nil, fault.Decode.New("token account data too short: %d < %d bytes", len(data), TokenAccountSize)
	}
	dec := bin.NewBinDecoder(data[:TokenAccountSize])
	var (
		out TokenAccount
		raw []byte
		err error
	)
	if raw, err = dec.ReadNBytes(32); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	out.Mint = solana.PublicKeyFromBytes(raw)
	if raw, err = dec.ReadNBytes(32); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	out.Owner = solana.PublicKeyFromBytes(raw)
	if out.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.Delegate, err = readOptionalKey(dec); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.State, err = dec.ReadUint8(); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.IsNative, err = readOptionalUint64(dec); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.DelegatedAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.CloseAuthority, err = readOptionalKey(dec); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.State == TokenStateUninitialized {
		return nil, fault.Decode.New("token account is not initialized")
	}
	return &out, nil
}

func (a *TokenAccount) Pack() []byte {
	var buf bytes.Buffer
	buf.Grow(TokenAccountSize)
	enc := bin.NewBinEncoder(&buf)
	// writes into a bytes.Buffer cannot fail
	_ = enc.WriteBytes(a.Mint[:], false)
	_ = enc.WriteBytes(a.Owner[:], false)
	_ = enc.WriteUint64(a.Amount, bin.LE)
	_ = writeOptionalKey(enc, a.Delegate)
	_ = enc.WriteUint8(a.State)
	_ = writeOptionalUint64(enc, a.IsNative)
	_ = enc.WriteUint64(a.DelegatedAmount, bin.LE)
	_ = writeOptionalKey(enc, a.CloseAuthority)
	return buf.Bytes()
}

func UnpackMint(data []byte) (*Mint, error) {
	if len(data) < MintSize {
		return nil, fault.Decode.New("mint data too short: %d < %d bytes", len(data), MintSize)
	}
	dec := bin.NewBinDecoder(data[:MintSize])
	var (
		out Mint
		err error
	)
	if out.MintAuthority, err = readOptionalKey(dec); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.Supply, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.Decimals, err = dec.ReadUint8(); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.IsInitialized, err = dec.ReadBool(); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if out.FreezeAuthority, err = readOptionalKey(dec); err != nil {
		return nil, fault.Decode.Wrap(err)
	}
	if !out.IsInitialized {
		return nil, fault.Decode.New("mint is not initialized")
	}
	return &out, nil
}

func (m *Mint) Pack() []byte {
	var buf bytes.Buffer
	buf.Grow(MintSize)
	enc := bin.NewBinEncoder(&buf)
	_ = writeOptionalKey(enc, m.MintAuthority)
	_ = enc.WriteUint64(m.Supply, bin.LE)
	_ = enc.WriteUint8(m.Decimals)
	_ = enc.WriteBool(m.IsInitialized)
	_ = writeOptionalKey(enc, m.FreezeAuthority)
	return buf.Bytes()
}
