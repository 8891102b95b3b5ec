package assets

func (l *Ledger) checkMetadata(name, symbol string) error {
	if len(name) > l.cfg.StringLimit || len(symbol) > l.cfg.StringLimit {
		return ErrBadMetadata
	}
	return nil
}

// SetMetadata describes id. The signer must be the owner and bonds a
// deposit sized by the lengths of name and symbol; a previous deposit is
// adjusted rather than bonded again.
func (l *Ledger) SetMetadata(origin Origin, id AssetID, name, symbol string, decimals uint8) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	if err := l.checkMetadata(name, symbol); err != nil {
		return err
	}
	return l.apply("set-metadata", func(o *op) error {
		if _, err := o.withAsset(id, signer, ownerRole); err != nil {
			return err
		}
		md, _, err := o.metadata(id)
		if err != nil {
			return err
		}
		if md.IsFrozen {
			return ErrNoPermission
		}
		oldDeposit := md.Deposit
		newDeposit := l.cfg.metadataDeposit(name, symbol)
		if newDeposit > oldDeposit {
			if err := o.reserve(signer, newDeposit-oldDeposit); err != nil {
				return err
			}
		} else {
			o.unreserve(signer, oldDeposit-newDeposit)
		}
		o.putMetadata(id, AssetMetadata{
			Deposit:  newDeposit,
			Name:     name,
			Symbol:   symbol,
			Decimals: decimals,
		})
		o.emit(MetadataSet{Asset: id, Name: name, Symbol: symbol, Decimals: decimals})
		return nil
	})
}

// ClearMetadata removes the metadata of id and releases its deposit to the
// owner, who must be the signer.
func (l *Ledger) ClearMetadata(origin Origin, id AssetID) error {
	signer, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	return l.apply("clear-metadata", func(o *op) error {
		d, err := o.withAsset(id, signer, ownerRole)
		if err != nil {
			return err
		}
		return o.clearMetadata(id, d)
	})
}

// ForceSetMetadata overwrites the metadata of id. The deposit already
// bonded is kept unchanged.
func (l *Ledger) ForceSetMetadata(origin Origin, id AssetID, name, symbol string, decimals uint8, isFrozen bool) error {
	if err := l.ensureForce(origin); err != nil {
		return err
	}
	if err := l.checkMetadata(name, symbol); err != nil {
		return err
	}
	return l.apply("force-set-metadata", func(o *op) error {
		if _, err := o.withAsset(id, "", nil); err != nil {
			return err
		}
		md, _, err := o.metadata(id)
		if err != nil {
			return err
		}
		o.putMetadata(id, AssetMetadata{
			Deposit:  md.Deposit,
			Name:     name,
			Symbol:   symbol,
			Decimals: decimals,
			IsFrozen: isFrozen,
		})
		o.emit(MetadataSet{Asset: id, Name: name, Symbol: symbol, Decimals: decimals, IsFrozen: isFrozen})
		return nil
	})
}

// ForceClearMetadata is ClearMetadata for the privileged origin.
func (l *Ledger) ForceClearMetadata(origin Origin, id AssetID) error {
	if err := l.ensureForce(origin); err != nil {
		return err
	}
	return l.apply("force-clear-metadata", func(o *op) error {
		d, err := o.withAsset(id, "", nil)
		if err != nil {
			return err
		}
		return o.clearMetadata(id, d)
	})
}

func (o *op) clearMetadata(id AssetID, d AssetDetails) error {
	md, exists, err := o.metadata(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknown
	}
	o.unreserve(d.Owner, md.Deposit)
	o.deleteMetadata(id)
	o.emit(MetadataCleared{Asset: id})
	return nil
}
