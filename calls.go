package assets

// Create registers a new asset id owned by the signer, who bonds
// Config.AssetDeposit. admin takes the issuer, admin and freezer roles.
func (l *Ledger) Create(origin Origin, id AssetID, admin AccountID, minBalance Balance) error {
	owner, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("create", func(o *op) error {
		if _, exists, err := o.asset(id); err != nil {
			return err
		} else if exists {
			return ErrInUse
		}
		if minBalance == 0 {
			return ErrMinBalanceZero
		}
		deposit := l.cfg.AssetDeposit
		if err := o.reserve(owner, deposit); err != nil {
			return err
		}
		o.putAsset(id, AssetDetails{
			Owner:      owner,
			Issuer:     admin,
			Admin:      admin,
			Freezer:    admin,
			Deposit:    deposit,
			MinBalance: minBalance,
		})
		o.emit(Created{Asset: id, Creator: owner, Owner: admin})
		return nil
	})
}

// ForceCreate registers a new asset without any deposit. owner takes every
// role.
func (l *Ledger) ForceCreate(origin Origin, id AssetID, owner AccountID, isSufficient bool, minBalance Balance) error {
	if err := l.ensureForce(origin); err != nil {
		return err
	}
	return l.apply("force-create", func(o *op) error {
		if _, exists, err := o.asset(id); err != nil {
			return err
		} else if exists {
			return ErrInUse
		}
		if minBalance == 0 {
			return ErrMinBalanceZero
		}
		o.putAsset(id, AssetDetails{
			Owner:        owner,
			Issuer:       owner,
			Admin:        owner,
			Freezer:      owner,
			MinBalance:   minBalance,
			IsSufficient: isSufficient,
		})
		o.emit(ForceCreated{Asset: id, Owner: owner})
		return nil
	})
}

// Destroy removes id with every balance, approval and metadata record, and
// releases their deposits. Unless origin is privileged it must be the
// owner. witness must not understate the live counters of the asset.
// It returns the numbers of records actually drained.
func (l *Ledger) Destroy(origin Origin, id AssetID, witness DestroyWitness) (DestroyWitness, error) {
	checkOwner, err := l.tryForce(origin)
	if err != nil {
		return DestroyWitness{}, err
	}
	var drained DestroyWitness
	err = l.apply("destroy", func(o *op) error {
		d, ok, err := o.asset(id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnknown
		}
		if checkOwner != nil && *checkOwner != d.Owner {
			return ErrNoPermission
		}
		if d.Accounts > witness.Accounts || d.Sufficients > witness.Sufficients || d.Approvals > witness.Approvals {
			return ErrBadWitness
		}

		drained = DestroyWitness{}
		err = o.balances(id, func(who AccountID, b AssetBalance) error {
			o.deadAccount(id, who, &d, b.Sufficient)
			o.deleteBalance(id, who)
			drained.Accounts++
			if b.Sufficient {
				drained.Sufficients++
			}
			return nil
		})
		if err != nil {
			return err
		}

		md, _, err := o.metadata(id)
		if err != nil {
			return err
		}
		o.deleteMetadata(id)
		o.unreserve(d.Owner, d.Deposit.saturatingAdd(md.Deposit))

		err = o.approvals(id, func(owner, delegate AccountID, a Approval) error {
			o.unreserve(owner, a.Deposit)
			o.deleteApproval(id, owner, delegate)
			drained.Approvals++
			return nil
		})
		if err != nil {
			return err
		}
		o.deleteAsset(id)
		o.emit(Destroyed{Asset: id})
		return nil
	})
	if err != nil {
		return DestroyWitness{}, err
	}
	return drained, nil
}

// Mint creates amount of id in beneficiary's account. The signer must be
// the issuer.
func (l *Ledger) Mint(origin Origin, id AssetID, beneficiary AccountID, amount Balance) error {
	issuer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("mint", func(o *op) error {
		return o.doMint(id, beneficiary, amount, &issuer)
	})
}

// Burn removes up to amount of id from who. The signer must be the admin.
// Should the remaining balance fall below the minimum, it is burned too.
func (l *Ledger) Burn(origin Origin, id AssetID, who AccountID, amount Balance) error {
	admin, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("burn", func(o *op) error {
		_, err := o.doBurn(id, who, amount, &admin, DebitFlags{BestEffort: true})
		return err
	})
}

// Transfer moves amount of id from the signer to target. If the signer is
// left below the minimum balance, the dust goes to target too and the
// signer's account is removed.
func (l *Ledger) Transfer(origin Origin, id AssetID, target AccountID, amount Balance) error {
	return l.transfer("transfer", origin, id, target, amount, TransferFlags{})
}

// TransferKeepAlive is Transfer failing with ErrWouldDie rather than
// removing the signer's account.
func (l *Ledger) TransferKeepAlive(origin Origin, id AssetID, target AccountID, amount Balance) error {
	return l.transfer("transfer-keep-alive", origin, id, target, amount, TransferFlags{KeepAlive: true})
}

func (l *Ledger) transfer(name string, origin Origin, id AssetID, target AccountID, amount Balance, f TransferFlags) error {
	source, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply(name, func(o *op) error {
		_, err := o.doTransfer(id, source, target, amount, nil, f)
		return err
	})
}

// ForceTransfer moves amount of id from source to dest. The signer must be
// the admin.
func (l *Ledger) ForceTransfer(origin Origin, id AssetID, source, dest AccountID, amount Balance) error {
	admin, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("force-transfer", func(o *op) error {
		_, err := o.doTransfer(id, source, dest, amount, &admin, TransferFlags{})
		return err
	})
}

// withAsset loads the details of id and checks that who holds the role
// picked by role.
func (o *op) withAsset(id AssetID, who AccountID, role func(AssetDetails) AccountID) (AssetDetails, error) {
	d, ok, err := o.asset(id)
	if err != nil {
		return AssetDetails{}, err
	}
	if !ok {
		return AssetDetails{}, ErrUnknown
	}
	if role != nil && role(d) != who {
		return AssetDetails{}, ErrNoPermission
	}
	return d, nil
}

func ownerRole(d AssetDetails) AccountID   { return d.Owner }
func adminRole(d AssetDetails) AccountID   { return d.Admin }
func freezerRole(d AssetDetails) AccountID { return d.Freezer }

// Freeze blocks debits from who's account. The signer must be the freezer.
func (l *Ledger) Freeze(origin Origin, id AssetID, who AccountID) error {
	return l.setAccountFrozen("freeze", origin, id, who, true)
}

// Thaw unblocks who's account. The signer must be the admin.
func (l *Ledger) Thaw(origin Origin, id AssetID, who AccountID) error {
	return l.setAccountFrozen("thaw", origin, id, who, false)
}

func (l *Ledger) setAccountFrozen(name string, origin Origin, id AssetID, who AccountID, frozen bool) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	role := adminRole
	if frozen {
		role = freezerRole
	}
	return l.apply(name, func(o *op) error {
		if _, err := o.withAsset(id, signer, role); err != nil {
			return err
		}
		account, exists, err := o.balance(id, who)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBalanceZero
		}
		account.IsFrozen = frozen
		o.putBalance(id, who, account)
		if frozen {
			o.emit(Frozen{Asset: id, Who: who})
		} else {
			o.emit(Thawed{Asset: id, Who: who})
		}
		return nil
	})
}

// FreezeAsset blocks every debit of id. The signer must be the freezer.
func (l *Ledger) FreezeAsset(origin Origin, id AssetID) error {
	return l.setAssetFrozen("freeze-asset", origin, id, true)
}

// ThawAsset unblocks id. The signer must be the admin.
func (l *Ledger) ThawAsset(origin Origin, id AssetID) error {
	return l.setAssetFrozen("thaw-asset", origin, id, false)
}

func (l *Ledger) setAssetFrozen(name string, origin Origin, id AssetID, frozen bool) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	role := adminRole
	if frozen {
		role = freezerRole
	}
	return l.apply(name, func(o *op) error {
		d, err := o.withAsset(id, signer, role)
		if err != nil {
			return err
		}
		d.IsFrozen = frozen
		o.putAsset(id, d)
		if frozen {
			o.emit(AssetFrozen{Asset: id})
		} else {
			o.emit(AssetThawed{Asset: id})
		}
		return nil
	})
}

// TransferOwnership makes owner the owner of id and moves the asset and
// metadata deposits to it. The signer must be the current owner.
func (l *Ledger) TransferOwnership(origin Origin, id AssetID, owner AccountID) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("transfer-ownership", func(o *op) error {
		d, err := o.withAsset(id, signer, ownerRole)
		if err != nil {
			return err
		}
		if d.Owner == owner {
			return nil
		}
		md, _, err := o.metadata(id)
		if err != nil {
			return err
		}
		if err := o.repatriate(d.Owner, owner, d.Deposit.saturatingAdd(md.Deposit)); err != nil {
			return err
		}
		d.Owner = owner
		o.putAsset(id, d)
		o.emit(OwnerChanged{Asset: id, Owner: owner})
		return nil
	})
}

// SetTeam reassigns the issuer, admin and freezer roles of id. The signer
// must be the owner.
func (l *Ledger) SetTeam(origin Origin, id AssetID, issuer, admin, freezer AccountID) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("set-team", func(o *op) error {
		d, err := o.withAsset(id, signer, ownerRole)
		if err != nil {
			return err
		}
		d.Issuer, d.Admin, d.Freezer = issuer, admin, freezer
		o.putAsset(id, d)
		o.emit(TeamChanged{Asset: id, Issuer: issuer, Admin: admin, Freezer: freezer})
		return nil
	})
}

// AssetStatus is the set of fields ForceAssetStatus overwrites.
type AssetStatus struct {
	Owner        AccountID `json:"owner"`
	Issuer       AccountID `json:"issuer"`
	Admin        AccountID `json:"admin"`
	Freezer      AccountID `json:"freezer"`
	MinBalance   Balance   `json:"minBalance"`
	IsSufficient bool      `json:"isSufficient"`
	IsFrozen     bool      `json:"isFrozen"`
}

// ForceAssetStatus overwrites the roles and policy of id.
//
// Existing holders keep the liveness reference they got when they joined:
// changing IsSufficient does not migrate them.
func (l *Ledger) ForceAssetStatus(origin Origin, id AssetID, s AssetStatus) error {
	if err := l.ensureForce(origin); err != nil {
		return err
	}
	return l.apply("force-asset-status", func(o *op) error {
		d, err := o.withAsset(id, "", nil)
		if err != nil {
			return err
		}
		d.Owner = s.Owner
		d.Issuer = s.Issuer
		d.Admin = s.Admin
		d.Freezer = s.Freezer
		d.MinBalance = s.MinBalance
		d.IsSufficient = s.IsSufficient
		d.IsFrozen = s.IsFrozen
		o.putAsset(id, d)
		o.emit(AssetStatusChanged{Asset: id})
		return nil
	})
}
