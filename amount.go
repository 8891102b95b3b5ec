package assets

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal amount such as "12.5" expressed in whole
// units of an asset with the given number of decimals. It fails if the
// amount has more decimal places than the asset or does not fit a Balance.
func ParseAmount(s string, decimals uint8) (Balance, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	units := d.Shift(int32(decimals))
	if !units.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	v := units.BigInt()
	if !v.IsUint64() {
		return 0, fmt.Errorf("amount %q: %w", s, ErrOverflow)
	}
	return Balance(v.Uint64()), nil
}

// FormatAmount is the inverse of ParseAmount. Trailing zeros are kept so
// that amounts of one asset line up.
func FormatAmount(b Balance, decimals uint8) string {
	return Decimal(b, decimals).StringFixed(int32(decimals))
}

// Decimal returns b in whole units of an asset with the given decimals.
func Decimal(b Balance, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(uint64(b)).Shift(-int32(decimals))
}
