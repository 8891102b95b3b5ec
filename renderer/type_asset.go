package renderer

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/etnz/assets"
)

// Amount is a balance of an asset along with what is needed to print it.
type Amount struct {
	Units    assets.Balance `json:"units"`
	Decimals uint8          `json:"decimals"`
	Symbol   string         `json:"symbol,omitempty"`
}

// String formats the amount with thousands separators and the symbol.
func (a Amount) String() string {
	if a.Units > math.MaxInt64 {
		s := assets.FormatAmount(a.Units, a.Decimals)
		if a.Symbol != "" {
			s += " " + a.Symbol
		}
		return s
	}
	template := "1 $"
	if a.Symbol == "" {
		template = "1"
	}
	f := money.NewFormatter(int(a.Decimals), ".", ",", a.Symbol, template)
	return f.Format(int64(a.Units))
}

// Asset is the data of the asset report.
type Asset struct {
	ID       assets.AssetID `json:"id"`
	Name     string         `json:"name,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
	Decimals uint8          `json:"decimals"`
	// MetadataFrozen is set when the owner can no longer change the metadata.
	MetadataFrozen bool `json:"metadataFrozen,omitempty"`

	Owner   assets.AccountID `json:"owner"`
	Issuer  assets.AccountID `json:"issuer"`
	Admin   assets.AccountID `json:"admin"`
	Freezer assets.AccountID `json:"freezer"`

	Supply       Amount                `json:"supply"`
	MinBalance   Amount                `json:"minBalance"`
	Deposit      assets.DepositBalance `json:"deposit"`
	IsSufficient bool                  `json:"isSufficient,omitempty"`
	IsFrozen     bool                  `json:"isFrozen,omitempty"`

	Accounts    uint32 `json:"accounts"`
	Sufficients uint32 `json:"sufficients"`

	Holders    []AssetHolder    `json:"holders"`
	Allowances []AssetAllowance `json:"allowances"`
}

// AssetHolder is one row of the holders table.
type AssetHolder struct {
	Account    assets.AccountID `json:"account"`
	Balance    Amount           `json:"balance"`
	Share      decimal.Decimal  `json:"share"`
	Sufficient bool             `json:"sufficient,omitempty"`
	IsFrozen   bool             `json:"isFrozen,omitempty"`
}

// AssetAllowance is one row of the approvals table.
type AssetAllowance struct {
	Owner    assets.AccountID      `json:"owner"`
	Delegate assets.AccountID      `json:"delegate"`
	Amount   Amount                `json:"amount"`
	Deposit  assets.DepositBalance `json:"deposit"`
}

// Title is the name of the asset, or its id when it has none.
func (a *Asset) Title() string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("Asset %v", a.ID)
}

// NewAsset builds the report data of an asset.
func NewAsset(st assets.AssetState) *Asset {
	md, d := st.Metadata, st.Details
	amount := func(b assets.Balance) Amount {
		return Amount{Units: b, Decimals: md.Decimals, Symbol: md.Symbol}
	}
	a := &Asset{
		ID:             st.ID,
		Name:           md.Name,
		Symbol:         md.Symbol,
		Decimals:       md.Decimals,
		MetadataFrozen: md.IsFrozen,
		Owner:          d.Owner,
		Issuer:         d.Issuer,
		Admin:          d.Admin,
		Freezer:        d.Freezer,
		Supply:         amount(d.Supply),
		MinBalance:     amount(d.MinBalance),
		Deposit:        d.Deposit + md.Deposit,
		IsSufficient:   d.IsSufficient,
		IsFrozen:       d.IsFrozen,
		Accounts:       d.Accounts,
		Sufficients:    d.Sufficients,
	}
	supply := decimal.NewFromUint64(uint64(d.Supply))
	for _, h := range st.Holders {
		share := decimal.Zero
		if !supply.IsZero() {
			share = decimal.NewFromUint64(uint64(h.Balance)).Div(supply).Shift(2).Round(2)
		}
		a.Holders = append(a.Holders, AssetHolder{
			Account:    h.Account,
			Balance:    amount(h.Balance),
			Share:      share,
			Sufficient: h.Sufficient,
			IsFrozen:   h.IsFrozen,
		})
	}
	for _, e := range st.Approvals {
		a.Allowances = append(a.Allowances, AssetAllowance{
			Owner:    e.Owner,
			Delegate: e.Delegate,
			Amount:   amount(e.Amount),
			Deposit:  e.Deposit,
		})
	}
	return a
}
