// Package address derives the program's deterministic account addresses.
package address

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/fault"
	"github.com/coinbacked/coinbacked/cbgo/params"
)

// BackingSeeds are the seeds of a mint's backing account, without the bump.
func BackingSeeds(mint, programID solana.PublicKey) [][]byte {
	return [][]byte{mint[:], programID[:], params.SeedBacking}
}

func TreasurySeeds(programID solana.PublicKey) [][]byte {
	return [][]byte{programID[:], params.SeedTreasury}
}

// WithBump appends the disambiguating bump to seeds.
func WithBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}

// Backing returns the backing account address of mint and its bump.
func Backing(mint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	key, bump, err := solana.FindProgramAddress(BackingSeeds(mint, programID), programID)
	if err != nil {
		return solana.PublicKey{}, 0, fault.Account.Wrap(err)
	}
	return key, bump, nil
}

// Treasury returns the protocol treasury address and its bump.
func Treasury(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	key, bump, err := solana.FindProgramAddress(TreasurySeeds(programID), programID)
	if err != nil {
		return solana.PublicKey{}, 0, fault.Account.Wrap(err)
	}
	return key, bump, nil
}

// ProgramData returns the upgradeable-loader metadata address of programID.
func ProgramData(programID solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{programID[:]}, solana.BPFLoaderUpgradeableProgramID)
	if err != nil {
		return solana.PublicKey{}, fault.Account.Wrap(err)
	}
	return key, nil
}

// UpdateAuthority reads the update authority from a program-data account.
// The layout is a 4 byte tag, the 8 byte deploy slot, a 1 byte option tag
// and the 32 byte authority key. A program without authority (option tag 0)
// is immutable and has no admin.
func UpdateAuthority(programData []byte) (solana.PublicKey, error) {
	if len(programData) < params.ProgramDataHeaderSize {
		return solana.PublicKey{}, fault.Decode.New("program data too short: %d < %d bytes", len(programData), params.ProgramDataHeaderSize)
	}
	if programData[params.UpdateAuthorityOptionOffset] == 0 {
		return solana.PublicKey{}, fault.Auth.New("program has no update authority")
	}
	return solana.PublicKeyFromBytes(programData[params.UpdateAuthorityOffset:params.ProgramDataHeaderSize]), nil
}

// ProgramDataPointer reads the program-data address stored in an
// upgradeable program account. ok is false when the account holds no pointer.
func ProgramDataPointer(program []byte) (key solana.PublicKey, ok bool) {
	if len(program) < params.ProgramAccountPointerEndSize {
		return solana.PublicKey{}, false
	}
	return solana.PublicKeyFromBytes(program[params.ProgramDataPointerOffset:params.ProgramAccountPointerEndSize]), true
}
