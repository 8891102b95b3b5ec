package assets

import (
	"errors"
	"fmt"
	"iter"
)

// AssetState is everything the ledger holds about one asset at a point in
// time.
type AssetState struct {
	ID        AssetID         `json:"id"`
	Details   AssetDetails    `json:"details"`
	Metadata  AssetMetadata   `json:"metadata"`
	Holders   []Holder        `json:"holders"`
	Approvals []ApprovalEntry `json:"approvals"`
}

// Snapshot is a consistent copy of the whole ledger state.
type Snapshot struct {
	Assets []AssetState `json:"assets"`
}

// Snapshot reads every table at once.
func (l *Ledger) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := l.view(func(o *op) error {
		return o.assets(func(id AssetID, d AssetDetails) error {
			st, err := o.assetState(id, d)
			if err != nil {
				return err
			}
			s.Assets = append(s.Assets, st)
			return nil
		})
	})
	return s, err
}

// State returns the state of one asset, or ErrUnknown.
func (l *Ledger) State(id AssetID) (AssetState, error) {
	var st AssetState
	err := l.view(func(o *op) error {
		d, ok, err := o.asset(id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnknown
		}
		st, err = o.assetState(id, d)
		return err
	})
	return st, err
}

func (o *op) assetState(id AssetID, d AssetDetails) (AssetState, error) {
	st := AssetState{ID: id, Details: d}
	var err error
	if st.Metadata, _, err = o.metadata(id); err != nil {
		return AssetState{}, err
	}
	err = o.balances(id, func(who AccountID, b AssetBalance) error {
		st.Holders = append(st.Holders, Holder{Account: who, AssetBalance: b})
		return nil
	})
	if err != nil {
		return AssetState{}, err
	}
	err = o.approvals(id, func(owner, delegate AccountID, a Approval) error {
		st.Approvals = append(st.Approvals, ApprovalEntry{Owner: owner, Delegate: delegate, Approval: a})
		return nil
	})
	if err != nil {
		return AssetState{}, err
	}
	return st, nil
}

// Frozen returns the holders whose account is frozen.
func (st AssetState) Frozen() iter.Seq[Holder] {
	return func(yield func(Holder) bool) {
		for _, h := range st.Holders {
			if h.IsFrozen && !yield(h) {
				return
			}
		}
	}
}

// Audit checks the bookkeeping of the asset against its records: the
// supply is the sum of balances, the counters match the records and no
// balance is below the minimum.
func (st AssetState) Audit() error {
	var errs []error
	var sum Balance
	var sufficients uint32
	for _, h := range st.Holders {
		var ok bool
		if sum, ok = sum.CheckedAdd(h.Balance); !ok {
			errs = append(errs, fmt.Errorf("asset %v: sum of balances overflows", st.ID))
		}
		if h.Sufficient {
			sufficients++
		}
		if h.Balance < st.Details.MinBalance {
			errs = append(errs, fmt.Errorf("asset %v: %s holds %d, below minimum %d", st.ID, h.Account, h.Balance, st.Details.MinBalance))
		}
	}
	if sum != st.Details.Supply {
		errs = append(errs, fmt.Errorf("asset %v: supply %d, balances sum to %d", st.ID, st.Details.Supply, sum))
	}
	if n := uint32(len(st.Holders)); n != st.Details.Accounts {
		errs = append(errs, fmt.Errorf("asset %v: %d accounts counted, %d records", st.ID, st.Details.Accounts, n))
	}
	if sufficients != st.Details.Sufficients {
		errs = append(errs, fmt.Errorf("asset %v: %d sufficients counted, %d records", st.ID, st.Details.Sufficients, sufficients))
	}
	if n := uint32(len(st.Approvals)); n != st.Details.Approvals {
		errs = append(errs, fmt.Errorf("asset %v: %d approvals counted, %d records", st.ID, st.Details.Approvals, n))
	}
	return errors.Join(errs...)
}

// Audit checks every asset of the snapshot.
func (s Snapshot) Audit() error {
	var errs []error
	for _, st := range s.Assets {
		errs = append(errs, st.Audit())
	}
	return errors.Join(errs...)
}
