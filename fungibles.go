package assets

import "errors"

// The methods below expose the ledger as a generic multi-asset fungible
// balance provider to other in-process components. They skip every role
// check, so callers must only be trusted code.

// TotalIssuance returns the supply of id, zero when unknown.
func (l *Ledger) TotalIssuance(id AssetID) (Balance, error) { return l.TotalSupply(id) }

// MinimumBalance returns the minimum balance of id, zero when unknown.
func (l *Ledger) MinimumBalance(id AssetID) (Balance, error) {
	d, err := l.Asset(id)
	if errors.Is(err, ErrUnknown) {
		return 0, nil
	}
	return d.MinBalance, err
}

// ReducibleBalance returns how much of who's balance a debit could remove,
// zero when nothing can be.
func (l *Ledger) ReducibleBalance(id AssetID, who AccountID, keepAlive bool) (Balance, error) {
	var amount Balance
	err := l.view(func(o *op) error {
		var err error
		amount, err = o.reducibleBalance(id, who, keepAlive)
		if isTokenError(err) {
			amount, err = 0, nil
		}
		return err
	})
	return amount, err
}

// CanDeposit evaluates crediting amount to who.
func (l *Ledger) CanDeposit(id AssetID, who AccountID, amount Balance) (DepositConsequence, error) {
	var c DepositConsequence
	err := l.view(func(o *op) (err error) {
		c, err = o.canIncrease(id, who, amount)
		return err
	})
	return c, err
}

// CanWithdraw evaluates debiting amount from who, letting the account die.
func (l *Ledger) CanWithdraw(id AssetID, who AccountID, amount Balance) (WithdrawConsequence, error) {
	var c WithdrawConsequence
	err := l.view(func(o *op) (err error) {
		c, err = o.canDecrease(id, who, amount, false)
		return err
	})
	return c, err
}

// MintInto mints amount to who.
func (l *Ledger) MintInto(id AssetID, who AccountID, amount Balance) error {
	return l.apply("mint-into", func(o *op) error {
		return o.doMint(id, who, amount, nil)
	})
}

// BurnFrom burns exactly amount from who, or fails.
func (l *Ledger) BurnFrom(id AssetID, who AccountID, amount Balance) (Balance, error) {
	return l.burn("burn-from", id, who, amount, DebitFlags{})
}

// Slash burns as much of amount as possible from who.
func (l *Ledger) Slash(id AssetID, who AccountID, amount Balance) (Balance, error) {
	return l.burn("slash", id, who, amount, DebitFlags{BestEffort: true})
}

func (l *Ledger) burn(name string, id AssetID, who AccountID, amount Balance, f DebitFlags) (Balance, error) {
	var actual Balance
	err := l.apply(name, func(o *op) (err error) {
		actual, err = o.doBurn(id, who, amount, nil, f)
		return err
	})
	return actual, err
}

// TransferFungible moves amount from source to dest and returns the amount
// credited.
func (l *Ledger) TransferFungible(id AssetID, source, dest AccountID, amount Balance, keepAlive bool) (Balance, error) {
	var credit Balance
	err := l.apply("transfer-fungible", func(o *op) (err error) {
		credit, err = o.doTransfer(id, source, dest, amount, nil, TransferFlags{KeepAlive: keepAlive})
		return err
	})
	return credit, err
}

// SetTotalIssuance overwrites the supply of id. Nothing happens for an
// unknown asset.
func (l *Ledger) SetTotalIssuance(id AssetID, amount Balance) error {
	return l.apply("set-total-issuance", func(o *op) error {
		d, ok, err := o.asset(id)
		if err != nil || !ok {
			return err
		}
		d.Supply = amount
		o.putAsset(id, d)
		return nil
	})
}

// DecreaseBalance removes exactly amount from who without touching the
// supply.
func (l *Ledger) DecreaseBalance(id AssetID, who AccountID, amount Balance) (Balance, error) {
	return l.decrease("decrease-balance", id, who, amount, DebitFlags{})
}

// DecreaseBalanceAtMost removes as much of amount as possible from who
// without touching the supply, and returns zero if nothing can be.
func (l *Ledger) DecreaseBalanceAtMost(id AssetID, who AccountID, amount Balance) Balance {
	actual, err := l.decrease("decrease-balance-at-most", id, who, amount, DebitFlags{BestEffort: true})
	if err != nil {
		return 0
	}
	return actual
}

func (l *Ledger) decrease(name string, id AssetID, who AccountID, amount Balance, f DebitFlags) (Balance, error) {
	var actual Balance
	err := l.apply(name, func(o *op) (err error) {
		actual, err = o.decreaseBalance(id, who, amount, f, func(Balance, *AssetDetails) error { return nil })
		return err
	})
	return actual, err
}

// IncreaseBalance credits amount to who without touching the supply.
func (l *Ledger) IncreaseBalance(id AssetID, who AccountID, amount Balance) (Balance, error) {
	err := l.apply("increase-balance", func(o *op) error {
		return o.increaseBalance(id, who, amount, func(*AssetDetails) error { return nil })
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// IncreaseBalanceAtMost is IncreaseBalance returning zero on failure.
func (l *Ledger) IncreaseBalanceAtMost(id AssetID, who AccountID, amount Balance) Balance {
	credited, err := l.IncreaseBalance(id, who, amount)
	if err != nil {
		return 0
	}
	return credited
}

// isTokenError reports whether err is a domain verdict rather than a
// storage failure.
func isTokenError(err error) bool {
	return errors.Is(err, ErrUnknown) || errors.Is(err, ErrFrozen) || errors.Is(err, ErrOverflow)
}
