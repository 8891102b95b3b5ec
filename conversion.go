package assets

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionError tells why a native balance could not be converted.
type ConversionError int

const (
	// ConversionMinBalanceZero means the native minimum balance is zero.
	ConversionMinBalanceZero ConversionError = iota + 1
	// ConversionAssetMissing means the asset does not exist.
	ConversionAssetMissing
	// ConversionAssetNotSufficient means the asset is not sufficient, so its
	// minimum balance is not a reliable price.
	ConversionAssetNotSufficient
)

func (e ConversionError) Error() string {
	switch e {
	case ConversionMinBalanceZero:
		return "native minimum balance is zero"
	case ConversionAssetMissing:
		return "asset missing"
	case ConversionAssetNotSufficient:
		return "asset not sufficient"
	default:
		return fmt.Sprintf("conversion error %d", int(e))
	}
}

// ratioPrecision is the number of decimal places of the min balance ratio.
const ratioPrecision = 18

// BalanceToAssetBalance converts an amount of the native currency into an
// amount of id, pricing one native minimum balance at one asset minimum
// balance. The result saturates at MaxBalance.
func (l *Ledger) BalanceToAssetBalance(balance uint64, id AssetID, nativeMin uint64) (Balance, error) {
	d, err := l.Asset(id)
	if errors.Is(err, ErrUnknown) {
		return 0, ConversionAssetMissing
	}
	if err != nil {
		return 0, err
	}
	if !d.IsSufficient {
		return 0, ConversionAssetNotSufficient
	}
	if nativeMin == 0 {
		return 0, ConversionMinBalanceZero
	}
	return convertBalance(balance, d.MinBalance, nativeMin), nil
}

func convertBalance(balance uint64, assetMin Balance, nativeMin uint64) Balance {
	// the ratio is truncated to ratioPrecision places before it is applied
	ratio, _ := decimal.NewFromUint64(uint64(assetMin)).Shift(ratioPrecision).QuoRem(decimal.NewFromUint64(nativeMin), 0)
	v := ratio.Mul(decimal.NewFromUint64(balance)).Shift(-ratioPrecision).Truncate(0).BigInt()
	if !v.IsUint64() {
		return MaxBalance
	}
	return Balance(v.Uint64())
}
