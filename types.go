package assets

import (
	"math"
	"strconv"
)

// AssetID identifies an asset class.
type AssetID uint32

func (id AssetID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseAssetID parses the decimal representation of an AssetID.
func ParseAssetID(s string) (AssetID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return AssetID(v), nil
}

// AccountID identifies an account. The ledger treats it as opaque.
type AccountID string

// Balance is an amount of some asset.
type Balance uint64

// DepositBalance is an amount of the reserved currency bonded for storage.
type DepositBalance uint64

// MaxBalance is the largest representable Balance.
const MaxBalance = Balance(math.MaxUint64)

// CheckedAdd returns b+x, or false on overflow.
func (b Balance) CheckedAdd(x Balance) (Balance, bool) {
	if b > MaxBalance-x {
		return 0, false
	}
	return b + x, true
}

// CheckedSub returns b-x, or false on underflow.
func (b Balance) CheckedSub(x Balance) (Balance, bool) {
	if x > b {
		return 0, false
	}
	return b - x, true
}

// SaturatingAdd returns b+x clamped to MaxBalance.
func (b Balance) SaturatingAdd(x Balance) Balance {
	if v, ok := b.CheckedAdd(x); ok {
		return v
	}
	return MaxBalance
}

// SaturatingSub returns b-x clamped to zero.
func (b Balance) SaturatingSub(x Balance) Balance {
	if v, ok := b.CheckedSub(x); ok {
		return v
	}
	return 0
}

func (d DepositBalance) saturatingAdd(x DepositBalance) DepositBalance {
	if d > math.MaxUint64-x {
		return math.MaxUint64
	}
	return d + x
}

func (d DepositBalance) saturatingMul(x DepositBalance) DepositBalance {
	if x != 0 && d > math.MaxUint64/x {
		return math.MaxUint64
	}
	return d * x
}

func saturatingIncU32(v uint32) uint32 {
	if v == math.MaxUint32 {
		return v
	}
	return v + 1
}

func saturatingDecU32(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}

// AssetDetails is the registry record of an asset class.
type AssetDetails struct {
	// Owner can change the team and the owner, and pays the deposits.
	Owner AccountID `json:"owner"`
	// Issuer can mint.
	Issuer AccountID `json:"issuer"`
	// Admin can thaw, force transfers and burn from any account.
	Admin AccountID `json:"admin"`
	// Freezer can freeze accounts and the asset.
	Freezer AccountID `json:"freezer"`
	// Supply is the sum of every balance.
	Supply Balance `json:"supply"`
	// Deposit is reserved from the owner to pay for this record.
	Deposit DepositBalance `json:"deposit"`
	// MinBalance is the existential deposit of holder accounts.
	MinBalance Balance `json:"minBalance"`
	// IsSufficient, when true, makes holding the asset enough to keep an
	// account alive: holders get a sufficient reference instead of a
	// consumer one.
	IsSufficient bool `json:"isSufficient"`
	// Accounts is the number of balance records.
	Accounts uint32 `json:"accounts"`
	// Sufficients is the number of balance records holding a sufficient
	// reference.
	Sufficients uint32 `json:"sufficients"`
	// Approvals is the number of approval records.
	Approvals uint32 `json:"approvals"`
	// IsFrozen blocks every debit of the asset.
	IsFrozen bool `json:"isFrozen"`
}

// DestroyWitness returns the witness matching the asset's live counters.
func (d AssetDetails) DestroyWitness() DestroyWitness {
	return DestroyWitness{
		Accounts:    d.Accounts,
		Sufficients: d.Sufficients,
		Approvals:   d.Approvals,
	}
}

// AssetBalance is the holding of one account in one asset.
type AssetBalance struct {
	Balance  Balance `json:"balance"`
	IsFrozen bool    `json:"isFrozen,omitempty"`
	// Sufficient is true if this balance gave the account a sufficient
	// reference.
	Sufficient bool `json:"sufficient,omitempty"`
	// Extra is side-car data owned by some other component.
	Extra []byte `json:"extra,omitempty"`
}

// Approval is an allowance of a delegate over an owner's balance.
type Approval struct {
	Amount  Balance        `json:"amount"`
	Deposit DepositBalance `json:"deposit"`
}

// AssetMetadata is the user-facing description of an asset.
type AssetMetadata struct {
	Deposit  DepositBalance `json:"deposit"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	// IsFrozen forbids changes by the owner.
	IsFrozen bool `json:"isFrozen,omitempty"`
}

// DestroyWitness upper-bounds the work of destroying an asset.
type DestroyWitness struct {
	Accounts    uint32 `json:"accounts"`
	Sufficients uint32 `json:"sufficients"`
	Approvals   uint32 `json:"approvals"`
}

// DebitFlags control how a debit treats the minimum balance.
type DebitFlags struct {
	// KeepAlive forbids reducing the account below the minimum balance.
	KeepAlive bool
	// BestEffort debits as much as possible up to the requested amount.
	BestEffort bool
}

// TransferFlags control a transfer.
type TransferFlags struct {
	KeepAlive  bool
	BestEffort bool
	// BurnDust burns the dust swept from the source instead of crediting it.
	BurnDust bool
}

func (f TransferFlags) debit() DebitFlags {
	return DebitFlags{KeepAlive: f.KeepAlive, BestEffort: f.BestEffort}
}
