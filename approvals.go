package assets

// ApproveTransfer lets delegate spend amount more of the signer's balance
// of id. The first approval of a pair bonds Config.ApprovalDeposit from
// the signer.
func (l *Ledger) ApproveTransfer(origin Origin, id AssetID, delegate AccountID, amount Balance) error {
	owner, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("approve-transfer", func(o *op) error {
		d, err := o.withAsset(id, "", nil)
		if err != nil {
			return err
		}
		if d.IsFrozen {
			return ErrFrozen
		}
		a, exists, err := o.approval(id, owner, delegate)
		if err != nil {
			return err
		}
		if !exists {
			d.Approvals = saturatingIncU32(d.Approvals)
		}
		if required := l.cfg.ApprovalDeposit; a.Deposit < required {
			if err := o.reserve(owner, required-a.Deposit); err != nil {
				return err
			}
			a.Deposit = required
		}
		a.Amount = a.Amount.SaturatingAdd(amount)
		o.putApproval(id, owner, delegate, a)
		o.putAsset(id, d)
		o.emit(ApprovedTransfer{Asset: id, Source: owner, Delegate: delegate, Amount: amount})
		return nil
	})
}

// CancelApproval removes the approval of delegate over the signer's balance
// and releases its deposit.
func (l *Ledger) CancelApproval(origin Origin, id AssetID, delegate AccountID) error {
	owner, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("cancel-approval", func(o *op) error {
		d, err := o.withAsset(id, "", nil)
		if err != nil {
			return err
		}
		return o.cancelApproval(id, d, owner, delegate)
	})
}

// ForceCancelApproval is CancelApproval for any owner, called by the
// privileged origin or the admin of id.
func (l *Ledger) ForceCancelApproval(origin Origin, id AssetID, owner, delegate AccountID) error {
	return l.apply("force-cancel-approval", func(o *op) error {
		d, err := o.withAsset(id, "", nil)
		if err != nil {
			return err
		}
		admin, err := l.tryForce(origin)
		if err != nil {
			return err
		}
		if admin != nil && *admin != d.Admin {
			return ErrNoPermission
		}
		return o.cancelApproval(id, d, owner, delegate)
	})
}

func (o *op) cancelApproval(id AssetID, d AssetDetails, owner, delegate AccountID) error {
	a, exists, err := o.approval(id, owner, delegate)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknown
	}
	o.unreserve(owner, a.Deposit)
	o.deleteApproval(id, owner, delegate)
	d.Approvals = saturatingDecU32(d.Approvals)
	o.putAsset(id, d)
	o.emit(ApprovalCancelled{Asset: id, Owner: owner, Delegate: delegate})
	return nil
}

// TransferApproved spends amount of the allowance the signer holds over
// owner's balance of id, sending it to destination. A fully spent approval
// is removed and its deposit released.
func (l *Ledger) TransferApproved(origin Origin, id AssetID, owner, destination AccountID, amount Balance) error {
	delegate, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("transfer-approved", func(o *op) error {
		a, exists, err := o.approval(id, owner, delegate)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnapproved
		}
		remaining, ok := a.Amount.CheckedSub(amount)
		if !ok {
			return ErrUnapproved
		}
		credit, err := o.doTransfer(id, owner, destination, amount, nil, TransferFlags{})
		if err != nil {
			return err
		}
		if remaining == 0 {
			o.unreserve(owner, a.Deposit)
			o.deleteApproval(id, owner, delegate)
			d, ok, err := o.asset(id)
			if err != nil {
				return err
			}
			if ok {
				d.Approvals = saturatingDecU32(d.Approvals)
				o.putAsset(id, d)
			}
		} else {
			a.Amount = remaining
			o.putApproval(id, owner, delegate, a)
		}
		o.emit(TransferredApproved{Asset: id, Owner: owner, Delegate: delegate, Destination: destination, Amount: credit})
		return nil
	})
}
