package instruction

import (
	"github.com/gagliardetto/solana-go"

	"github.com/coinbacked/coinbacked/cbgo/address"
)

// Builders assemble complete instructions with the account order the
// processor expects.

func build(programID solana.PublicKey, ix Instruction, accounts solana.AccountMetaSlice) (*solana.GenericInstruction, error) {
	data, err := ix.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(programID, accounts, data), nil
}

func NewCreateBackingAccountInstruction(programID, owner, mint, tokenAccount solana.PublicKey, amount uint64, terms string) (*solana.GenericInstruction, error) {
	backing, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &CreateBackingAccount{Amount: amount, SignedTerms: terms}, solana.AccountMetaSlice{
		solana.NewAccountMeta(owner, true, true),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(tokenAccount, false, false),
		solana.NewAccountMeta(backing, true, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	})
}

func NewValidateBackingAccountInstruction(programID, payer, mint solana.PublicKey) (*solana.GenericInstruction, error) {
	backing, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &ValidateBackingAccount{}, solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(backing, false, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	})
}

func NewAddToBalanceInstruction(programID, payer, mint solana.PublicKey, amount uint64, terms string) (*solana.GenericInstruction, error) {
	backing, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &AddToBalance{Amount: amount, SignedTerms: terms}, solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(backing, true, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	})
}

func NewBurnAndFreeInstruction(programID, owner, mint, tokenAccount solana.PublicKey, tokenAmount uint64, terms string) (*solana.GenericInstruction, error) {
	backing, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &BurnAndFree{TokenAmount: tokenAmount, SignedTerms: terms}, solana.AccountMetaSlice{
		solana.NewAccountMeta(owner, true, true),
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(tokenAccount, true, false),
		solana.NewAccountMeta(backing, true, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	})
}

func NewCleanAccountsAfterBurningInstruction(programID, owner, mint, tokenAccount solana.PublicKey) (*solana.GenericInstruction, error) {
	backing, _, err := address.Backing(mint, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &CleanAccountsAfterBurning{}, solana.AccountMetaSlice{
		solana.NewAccountMeta(owner, true, true),
		solana.NewAccountMeta(tokenAccount, true, false),
		solana.NewAccountMeta(backing, true, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	})
}

func NewAdminCreateTreasuryAccountInstruction(programID, admin solana.PublicKey) (*solana.GenericInstruction, error) {
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	programData, err := address.ProgramData(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &AdminCreateTreasuryAccount{}, solana.AccountMetaSlice{
		solana.NewAccountMeta(admin, true, true),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(programID, false, false),
		solana.NewAccountMeta(programData, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	})
}

func NewAdminTransferFromTreasuryInstruction(programID, admin, receiver solana.PublicKey, amount uint64) (*solana.GenericInstruction, error) {
	treasury, _, err := address.Treasury(programID)
	if err != nil {
		return nil, err
	}
	programData, err := address.ProgramData(programID)
	if err != nil {
		return nil, err
	}
	return build(programID, &AdminTransferFromTreasury{Amount: amount}, solana.AccountMetaSlice{
		solana.NewAccountMeta(admin, false, true),
		solana.NewAccountMeta(receiver, true, false),
		solana.NewAccountMeta(treasury, true, false),
		solana.NewAccountMeta(programID, false, false),
		solana.NewAccountMeta(programData, false, false),
	})
}

// TermsSignature parses signed terms as a base58 transaction signature.
func TermsSignature(terms string) (solana.Signature, error) {
	return solana.SignatureFromBase58(terms)
}
