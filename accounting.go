package assets

// newAccount registers who as a new holder of an asset and returns whether
// the asset alone keeps the account alive.
func (o *op) newAccount(who AccountID, d *AssetDetails) (bool, error) {
	if d.Accounts == ^uint32(0) {
		return false, ErrOverflow
	}
	sufficient := d.IsSufficient
	if sufficient {
		o.l.refs.IncSufficients(who)
		o.onAbort(func() { o.l.refs.DecSufficients(who) })
		d.Sufficients++
	} else {
		if err := o.l.refs.IncConsumers(who); err != nil {
			return false, ErrNoProvider
		}
		o.onAbort(func() { o.l.refs.DecConsumers(who) })
	}
	d.Accounts++
	return sufficient, nil
}

// deadAccount unregisters who, whose balance record of id is being removed.
func (o *op) deadAccount(id AssetID, who AccountID, d *AssetDetails, sufficient bool) {
	if sufficient {
		d.Sufficients = saturatingDecU32(d.Sufficients)
		o.afterCommit(func() { o.l.refs.DecSufficients(who) })
	} else {
		o.afterCommit(func() { o.l.refs.DecConsumers(who) })
	}
	d.Accounts = saturatingDecU32(d.Accounts)
	o.afterCommit(func() { o.l.freezer.Died(id, who) })
}

// increaseBalance credits amount to who. check runs on the asset details
// before anything is written and may adjust them.
func (o *op) increaseBalance(id AssetID, who AccountID, amount Balance, check func(d *AssetDetails) error) error {
	if amount == 0 {
		return nil
	}
	c, err := o.canIncrease(id, who, amount)
	if err != nil {
		return err
	}
	if err := c.Err(); err != nil {
		return err
	}
	d, ok, err := o.asset(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknown
	}
	if err := check(&d); err != nil {
		return err
	}
	account, _, err := o.balance(id, who)
	if err != nil {
		return err
	}
	newBalance := account.Balance.SaturatingAdd(amount)
	if newBalance < d.MinBalance {
		return ErrBelowMinimum
	}
	if account.Balance == 0 {
		if account.Sufficient, err = o.newAccount(who, &d); err != nil {
			return err
		}
	}
	account.Balance = newBalance
	o.putBalance(id, who, account)
	o.putAsset(id, d)
	return nil
}

// decreaseBalance debits up to amount from who according to f and returns
// what was actually removed. check runs with that actual amount before
// anything is written and may adjust the asset details.
func (o *op) decreaseBalance(id AssetID, who AccountID, amount Balance, f DebitFlags, check func(actual Balance, d *AssetDetails) error) (Balance, error) {
	if amount == 0 {
		return 0, nil
	}
	actual, err := o.prepDebit(id, who, amount, f)
	if err != nil {
		return 0, err
	}
	d, ok, err := o.asset(id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrUnknown
	}
	if err := check(actual, &d); err != nil {
		return 0, err
	}
	account, exists, err := o.balance(id, who)
	if err != nil {
		return 0, err
	}
	if !exists {
		// best effort debit of nothing
		o.putAsset(id, d)
		return actual, nil
	}
	if account.Balance, ok = account.Balance.CheckedSub(actual); !ok {
		return 0, ErrBalanceLow
	}
	if account.Balance < d.MinBalance {
		o.deadAccount(id, who, &d, account.Sufficient)
		o.deleteBalance(id, who)
	} else {
		o.putBalance(id, who, account)
	}
	o.putAsset(id, d)
	return actual, nil
}

// prepDebit returns the amount a debit of amount from who actually
// removes, dust included.
func (o *op) prepDebit(id AssetID, who AccountID, amount Balance, f DebitFlags) (Balance, error) {
	reducible, err := o.reducibleBalance(id, who, f.KeepAlive)
	if err != nil {
		return 0, err
	}
	actual := min(reducible, amount)
	if !f.BestEffort && actual < amount {
		return 0, ErrBalanceLow
	}
	c, err := o.canDecrease(id, who, actual, f.KeepAlive)
	if err != nil {
		return 0, err
	}
	dust, err := c.Result()
	if err != nil {
		return 0, err
	}
	return actual.SaturatingAdd(dust), nil
}

// prepCredit returns the amount dest receives from a debit of debit meant
// to move amount, and the part to burn instead.
func (o *op) prepCredit(id AssetID, dest AccountID, amount, debit Balance, burnDust bool) (credit, burn Balance, err error) {
	credit = debit
	if dust, ok := debit.CheckedSub(amount); burnDust && ok {
		credit, burn = amount, dust
	}
	c, err := o.canIncrease(id, dest, credit)
	if err != nil {
		return 0, 0, err
	}
	if err := c.Err(); err != nil {
		return 0, 0, err
	}
	return credit, burn, nil
}

// doMint increases the supply and who's balance by amount. When issuer is
// set it must be the issuer of the asset.
func (o *op) doMint(id AssetID, who AccountID, amount Balance, issuer *AccountID) error {
	err := o.increaseBalance(id, who, amount, func(d *AssetDetails) error {
		if issuer != nil && *issuer != d.Issuer {
			return ErrNoPermission
		}
		d.Supply = d.Supply.SaturatingAdd(amount)
		return nil
	})
	if err != nil {
		return err
	}
	o.emit(Issued{Asset: id, Owner: who, Amount: amount})
	return nil
}

// doBurn reduces the supply and who's balance and returns the amount
// actually burned. When admin is set it must be the admin of the asset.
func (o *op) doBurn(id AssetID, who AccountID, amount Balance, admin *AccountID, f DebitFlags) (Balance, error) {
	actual, err := o.decreaseBalance(id, who, amount, f, func(actual Balance, d *AssetDetails) error {
		if admin != nil && *admin != d.Admin {
			return ErrNoPermission
		}
		d.Supply = d.Supply.SaturatingSub(actual)
		return nil
	})
	if err != nil {
		return 0, err
	}
	o.emit(Burned{Asset: id, Owner: who, Balance: actual})
	return actual, nil
}

// doTransfer moves amount from source to dest and returns what dest was
// credited. When admin is set it must be the admin of the asset.
func (o *op) doTransfer(id AssetID, source, dest AccountID, amount Balance, admin *AccountID, f TransferFlags) (Balance, error) {
	if amount == 0 {
		o.emit(Transferred{Asset: id, From: source, To: dest, Amount: 0})
		return 0, nil
	}
	debit, err := o.prepDebit(id, source, amount, f.debit())
	if err != nil {
		return 0, err
	}
	credit, burn, err := o.prepCredit(id, dest, amount, debit, f.BurnDust)
	if err != nil {
		return 0, err
	}
	if err := o.commitTransfer(id, source, dest, debit, credit, burn, admin); err != nil {
		return 0, err
	}
	o.emit(Transferred{Asset: id, From: source, To: dest, Amount: credit})
	return credit, nil
}

func (o *op) commitTransfer(id AssetID, source, dest AccountID, debit, credit, burn Balance, admin *AccountID) error {
	sourceAccount, sourceExists, err := o.balance(id, source)
	if err != nil {
		return err
	}
	d, ok, err := o.asset(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknown
	}
	if admin != nil && *admin != d.Admin {
		return ErrNoPermission
	}
	if source == dest {
		return nil
	}
	d.Supply = d.Supply.SaturatingSub(burn)
	if sourceAccount.Balance, ok = sourceAccount.Balance.CheckedSub(debit); !ok {
		return ErrBalanceLow
	}

	destAccount, _, err := o.balance(id, dest)
	if err != nil {
		return err
	}
	if destAccount.Balance == 0 {
		if destAccount.Sufficient, err = o.newAccount(dest, &d); err != nil {
			return err
		}
	}
	destAccount.Balance = destAccount.Balance.SaturatingAdd(credit)
	o.putBalance(id, dest, destAccount)

	switch {
	case !sourceExists:
	case sourceAccount.Balance < d.MinBalance:
		o.deadAccount(id, source, &d, sourceAccount.Sufficient)
		o.deleteBalance(id, source)
	default:
		o.putBalance(id, source, sourceAccount)
	}
	o.putAsset(id, d)
	return nil
}
