// Package native is a reference implementation of the services the ledger
// depends on: a reservable native currency to bond deposits in, and the
// account reference counts that decide whether an account may exist.
//
// State is kept in a kv.Store, under its own prefix, so it can share the
// store of the ledger.
package native

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/etnz/assets"
	"github.com/etnz/assets/kv"
)

const (
	logModule     = "native"
	accountPrefix = "NA:"
)

var (
	// ErrInsufficientBalance means the free balance cannot cover a reserve.
	ErrInsufficientBalance = errors.New("insufficient free balance")
	// ErrInsufficientReserved means the reserved balance cannot cover a
	// repatriation.
	ErrInsufficientReserved = errors.New("insufficient reserved balance")
	// ErrNoProviders means a consumer reference was requested for an
	// account nothing provides for.
	ErrNoProviders = errors.New("account has no providers")
	// ErrTooManyConsumers means the consumer counter is saturated.
	ErrTooManyConsumers = errors.New("too many consumers")
)

// Account is the native state of an account.
type Account struct {
	Free        assets.DepositBalance `json:"free"`
	Reserved    assets.DepositBalance `json:"reserved"`
	Providers   uint32                `json:"providers"`
	Consumers   uint32                `json:"consumers"`
	Sufficients uint32                `json:"sufficients"`
}

func (a Account) isZero() bool { return a == Account{} }

// Bank implements assets.Currency and assets.AccountRefs.
//
// An account gets a provider reference from its first endowment, and keeps
// it while it holds free or reserved funds.
type Bank struct {
	mu    sync.Mutex
	store kv.Store
}

var (
	_ assets.Currency    = (*Bank)(nil)
	_ assets.AccountRefs = (*Bank)(nil)
)

// New returns a bank over store.
func New(store kv.Store) *Bank { return &Bank{store: store} }

func accountKey(who assets.AccountID) []byte { return append([]byte(accountPrefix), who...) }

func load(txn *kv.Txn, who assets.AccountID) (Account, error) {
	var a Account
	raw, err := txn.Get(accountKey(who))
	if errors.Is(err, kv.ErrNotFound) {
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("could not read account %q: %w", who, err)
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, fmt.Errorf("could not decode account %q: %w", who, err)
	}
	return a, nil
}

func save(txn *kv.Txn, who assets.AccountID, a Account) error {
	// funds are what provides for an account
	if a.Free == 0 && a.Reserved == 0 {
		a.Providers = 0
	} else if a.Providers == 0 {
		a.Providers = 1
	}
	if a.isZero() {
		txn.Delete(accountKey(who))
		return nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not encode account %q: %w", who, err)
	}
	txn.Set(accountKey(who), raw)
	return nil
}

// mutate applies fn to the accounts of who, in a single batch.
func (b *Bank) mutate(fn func(accounts []*Account) error, who ...assets.AccountID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	txn := kv.NewTxn(b.store)
	accounts := make([]*Account, len(who))
	for i, w := range who {
		a, err := load(txn, w)
		if err != nil {
			return err
		}
		accounts[i] = &a
	}
	if err := fn(accounts); err != nil {
		return err
	}
	for i, w := range who {
		if err := save(txn, w, *accounts[i]); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// Account returns the native state of who.
func (b *Bank) Account(who assets.AccountID) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return load(kv.NewTxn(b.store), who)
}

// Endow credits amount to the free balance of who.
func (b *Bank) Endow(who assets.AccountID, amount assets.DepositBalance) error {
	return b.mutate(func(a []*Account) error {
		if a[0].Free > math.MaxUint64-amount {
			return fmt.Errorf("endow %q: %w", who, assets.ErrOverflow)
		}
		a[0].Free += amount
		return nil
	}, who)
}

// Reserve implements assets.Currency.
func (b *Bank) Reserve(who assets.AccountID, amount assets.DepositBalance) error {
	if amount == 0 {
		return nil
	}
	return b.mutate(func(a []*Account) error {
		if a[0].Free < amount {
			return fmt.Errorf("reserve %d from %q: %w", amount, who, ErrInsufficientBalance)
		}
		a[0].Free -= amount
		a[0].Reserved += amount
		return nil
	}, who)
}

// Unreserve implements assets.Currency.
func (b *Bank) Unreserve(who assets.AccountID, amount assets.DepositBalance) assets.DepositBalance {
	if amount == 0 {
		return 0
	}
	var remaining assets.DepositBalance
	err := b.mutate(func(a []*Account) error {
		moved := min(amount, a[0].Reserved)
		a[0].Reserved -= moved
		a[0].Free += moved
		remaining = amount - moved
		return nil
	}, who)
	if err != nil {
		b.logError(err, who, "unreserve")
		return amount
	}
	return remaining
}

// RepatriateReserved implements assets.Currency.
func (b *Bank) RepatriateReserved(from, to assets.AccountID, amount assets.DepositBalance) error {
	if amount == 0 || from == to {
		return nil
	}
	return b.mutate(func(a []*Account) error {
		if a[0].Reserved < amount {
			return fmt.Errorf("repatriate %d from %q: %w", amount, from, ErrInsufficientReserved)
		}
		a[0].Reserved -= amount
		a[1].Reserved += amount
		return nil
	}, from, to)
}

// IncSufficients implements assets.AccountRefs.
func (b *Bank) IncSufficients(who assets.AccountID) {
	b.refs(who, "inc sufficients", func(a *Account) error {
		if a.Sufficients < math.MaxUint32 {
			a.Sufficients++
		}
		return nil
	})
}

// DecSufficients implements assets.AccountRefs.
func (b *Bank) DecSufficients(who assets.AccountID) {
	b.refs(who, "dec sufficients", func(a *Account) error {
		if a.Sufficients > 0 {
			a.Sufficients--
		}
		return nil
	})
}

// IncConsumers implements assets.AccountRefs.
func (b *Bank) IncConsumers(who assets.AccountID) error {
	return b.mutate(func(a []*Account) error {
		if a[0].Free == 0 && a[0].Reserved == 0 {
			return ErrNoProviders
		}
		if a[0].Consumers == math.MaxUint32 {
			return ErrTooManyConsumers
		}
		a[0].Consumers++
		return nil
	}, who)
}

// DecConsumers implements assets.AccountRefs.
func (b *Bank) DecConsumers(who assets.AccountID) {
	b.refs(who, "dec consumers", func(a *Account) error {
		if a.Consumers > 0 {
			a.Consumers--
		}
		return nil
	})
}

// Providers implements assets.AccountRefs.
func (b *Bank) Providers(who assets.AccountID) uint32 {
	a, err := b.Account(who)
	if err != nil {
		b.logError(err, who, "providers")
		return 0
	}
	return a.Providers
}

func (b *Bank) refs(who assets.AccountID, action string, fn func(a *Account) error) {
	err := b.mutate(func(a []*Account) error { return fn(a[0]) }, who)
	if err != nil {
		b.logError(err, who, action)
	}
}

func (b *Bank) logError(err error, who assets.AccountID, action string) {
	logrus.WithFields(logrus.Fields{"module": logModule, "account": who, "action": action}).WithError(err).Error("native account update failed")
}

// AccountEntry is an account with its id.
type AccountEntry struct {
	ID assets.AccountID `json:"id"`
	Account
}

// Accounts returns every account with native state, ordered by id.
func (b *Bank) Accounts() ([]AccountEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var entries []AccountEntry
	err := b.store.Iterate([]byte(accountPrefix), func(key, value []byte) error {
		var a Account
		if err := json.Unmarshal(value, &a); err != nil {
			return fmt.Errorf("could not decode %q: %w", key, err)
		}
		entries = append(entries, AccountEntry{ID: assets.AccountID(key[len(accountPrefix):]), Account: a})
		return nil
	})
	return entries, err
}
