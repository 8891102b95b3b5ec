package assets

import "bytes"

// Extra returns the side-car data of who's balance record of id, nil when
// there is no record.
func (l *Ledger) Extra(id AssetID, who AccountID) ([]byte, error) {
	b, _, err := l.Account(id, who)
	return b.Extra, err
}

// TryMutateExtra replaces the side-car data of who's balance record with
// what fn returns, or deletes it when fn says so. Data can only be written
// to an existing record (ErrNoProvider otherwise), and only the data of a
// missing record can be deleted (ErrConsumerRemaining otherwise).
//
// fn runs without holding the ledger, so it may query it. If the record
// changed while fn ran, fn is called again with the new data.
func (l *Ledger) TryMutateExtra(id AssetID, who AccountID, fn func(extra []byte) (updated []byte, remove bool, err error)) error {
	for {
		seen, existed, err := l.Account(id, who)
		if err != nil {
			return err
		}
		updated, remove, err := fn(bytes.Clone(seen.Extra))
		if err != nil {
			return err
		}
		stale := false
		err = l.apply("mutate-extra", func(o *op) error {
			account, exists, err := o.balance(id, who)
			if err != nil {
				return err
			}
			if exists != existed || !bytes.Equal(account.Extra, seen.Extra) {
				stale = true
				return nil
			}
			switch {
			case remove && exists:
				return ErrConsumerRemaining
			case remove:
				return nil
			case !exists:
				return ErrNoProvider
			}
			account.Extra = updated
			o.putBalance(id, who, account)
			return nil
		})
		if err != nil || !stale {
			return err
		}
	}
}

// ExtraMutator edits the side-car data of one balance record. Edits are
// buffered until Commit.
type ExtraMutator struct {
	l        *Ledger
	id       AssetID
	who      AccountID
	original []byte
	pending  []byte
	dirty    bool
}

// AdjustExtra returns a mutator over who's balance record of id, and false
// if there is no such record.
func (l *Ledger) AdjustExtra(id AssetID, who AccountID) (*ExtraMutator, bool, error) {
	b, ok, err := l.Account(id, who)
	if err != nil || !ok {
		return nil, false, err
	}
	return &ExtraMutator{l: l, id: id, who: who, original: b.Extra}, true, nil
}

// Get returns the pending value, or the value read when the mutator was
// created.
func (m *ExtraMutator) Get() []byte {
	if m.dirty {
		return bytes.Clone(m.pending)
	}
	return bytes.Clone(m.original)
}

// Set buffers a new value.
func (m *ExtraMutator) Set(extra []byte) {
	m.pending = bytes.Clone(extra)
	m.dirty = true
}

// Commit writes the pending value, if any. It fails with ErrAccountGone
// when the balance record was removed in the meantime.
func (m *ExtraMutator) Commit() error {
	if !m.dirty {
		return nil
	}
	extra := m.pending
	m.pending, m.dirty = nil, false
	return m.write(extra)
}

// Revert drops the pending value and restores the original one, undoing
// previous commits too.
func (m *ExtraMutator) Revert() error {
	m.pending, m.dirty = nil, false
	return m.write(m.original)
}

func (m *ExtraMutator) write(extra []byte) error {
	return m.l.apply("commit-extra", func(o *op) error {
		account, exists, err := o.balance(m.id, m.who)
		if err != nil {
			return err
		}
		if !exists {
			return ErrAccountGone
		}
		account.Extra = extra
		o.putBalance(m.id, m.who, account)
		return nil
	})
}
