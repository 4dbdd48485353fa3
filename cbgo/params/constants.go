package params

const (
	OpcodeSize      = 1
	SignedTermsSize = 128
	LamportsSize    = 8
	TokenAmountSize = 8
	BumpSize        = 1
	PubkeySize      = 32

	// ProtocolFee is charged in lamports on every user operation.
	ProtocolFee = uint64(5000)

	BackingAccountSize  = PubkeySize + LamportsSize + BumpSize
	TreasuryAccountSize = LamportsSize + BumpSize
)

var (
	SeedBacking  = []byte("COINBACKED")
	SeedTreasury = []byte("COINBACKED-TREASURY")
)

const (
	OpCreateBackingAccount       = uint8(0)
	OpValidateBackingAccount     = uint8(1)
	OpAddToBalance               = uint8(2)
	OpBurnAndFree                = uint8(3)
	OpCleanAccountsAfterBurning  = uint8(4)
	OpAdminCreateTreasuryAccount = uint8(10)
	OpAdminTransferFromTreasury  = uint8(11)

	CreateBackingAccountLen       = OpcodeSize + LamportsSize + SignedTermsSize
	ValidateBackingAccountLen     = OpcodeSize
	AddToBalanceLen               = OpcodeSize + LamportsSize + SignedTermsSize
	BurnAndFreeLen                = OpcodeSize + TokenAmountSize + SignedTermsSize
	CleanAccountsAfterBurningLen  = OpcodeSize
	AdminCreateTreasuryAccountLen = OpcodeSize
	AdminTransferFromTreasuryLen  = OpcodeSize + LamportsSize
)

// Upgradeable loader layouts. The program account stores a 4 byte enum tag
// followed by the program-data address; the program-data account stores a
// 4 byte tag, the 8 byte deploy slot, a 1 byte option tag and the update
// authority.
const (
	ProgramDataPointerOffset     = 4
	UpdateAuthorityOptionOffset  = 12
	UpdateAuthorityOffset        = 13
	ProgramDataHeaderSize        = UpdateAuthorityOffset + PubkeySize
	ProgramAccountPointerEndSize = ProgramDataPointerOffset + PubkeySize
)
