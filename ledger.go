package assets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/etnz/assets/kv"
)

const logModule = "assets"

// Ledger is the multi-asset accounting engine.
//
// Operations are serialized. Each one reads and stages its writes in a
// write-set and commits them as a single batch, so a failed operation leaves
// the store untouched and emits no event.
type Ledger struct {
	mu          sync.Mutex
	store       kv.Store
	cfg         Config
	currency    Currency
	refs        AccountRefs
	freezer     Freezer
	sink        EventSink
	forceOrigin func(Origin) bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option { return func(l *Ledger) { l.cfg = cfg } }

// WithFreezer plugs a frozen balance oracle.
func WithFreezer(f Freezer) Option { return func(l *Ledger) { l.freezer = f } }

// WithEventSink sets where events of committed operations go.
func WithEventSink(s EventSink) Option { return func(l *Ledger) { l.sink = s } }

// WithForceOrigin sets the predicate of the privileged origin. The default
// accepts Root() only.
func WithForceOrigin(fn func(Origin) bool) Option {
	return func(l *Ledger) { l.forceOrigin = fn }
}

// NewLedger creates a ledger over store. Deposits are bonded in currency and
// account liveness is tracked by refs.
func NewLedger(store kv.Store, currency Currency, refs AccountRefs, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		cfg:         DefaultConfig(),
		currency:    currency,
		refs:        refs,
		freezer:     NoFreezer{},
		sink:        discardSink{},
		forceOrigin: Origin.IsRoot,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the ledger constants.
func (l *Ledger) Config() Config { return l.cfg }

// op is the state of one operation in flight.
type op struct {
	tables
	l *Ledger
	// undo compensates collaborator effects already applied, in case the
	// operation fails afterwards.
	undo []func()
	// after holds infallible collaborator effects run once committed.
	after  []func()
	events []Event
}

func (o *op) emit(ev Event)         { o.events = append(o.events, ev) }
func (o *op) onAbort(fn func())     { o.undo = append(o.undo, fn) }
func (o *op) afterCommit(fn func()) { o.after = append(o.after, fn) }

func (o *op) abort() {
	for i := len(o.undo) - 1; i >= 0; i-- {
		o.undo[i]()
	}
	o.txn.Discard()
}

// reserve bonds amount from who now, and releases it if the operation
// fails later.
func (o *op) reserve(who AccountID, amount DepositBalance) error {
	if err := o.l.currency.Reserve(who, amount); err != nil {
		return err
	}
	o.onAbort(func() { o.l.currency.Unreserve(who, amount) })
	return nil
}

// unreserve releases amount back to who once committed.
func (o *op) unreserve(who AccountID, amount DepositBalance) {
	if amount == 0 {
		return
	}
	o.afterCommit(func() {
		if rest := o.l.currency.Unreserve(who, amount); rest != 0 {
			logrus.WithFields(logrus.Fields{"module": logModule, "account": who, "amount": amount, "missing": rest}).Warn("deposit only partially unreserved")
		}
	})
}

func (o *op) repatriate(from, to AccountID, amount DepositBalance) error {
	if err := o.l.currency.RepatriateReserved(from, to, amount); err != nil {
		return err
	}
	o.onAbort(func() {
		if err := o.l.currency.RepatriateReserved(to, from, amount); err != nil {
			logrus.WithFields(logrus.Fields{"module": logModule, "from": to, "to": from}).WithError(err).Warn("could not revert repatriation")
		}
	})
	return nil
}

// apply runs fn as one operation and commits what it staged.
func (l *Ledger) apply(name string, fn func(o *op) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o := &op{tables: tables{txn: kv.NewTxn(l.store)}, l: l}
	log := logrus.WithFields(logrus.Fields{"module": logModule, "op": name})
	if err := fn(o); err != nil {
		o.abort()
		log.WithError(err).Debug("operation rejected")
		return err
	}
	if o.err != nil {
		o.abort()
		log.WithError(o.err).Error("could not stage operation")
		return fmt.Errorf("%s: %w", name, o.err)
	}
	writes := o.txn.Batch().Len()
	if err := o.txn.Commit(); err != nil {
		o.abort()
		log.WithError(err).Error("could not commit operation")
		return fmt.Errorf("%s: could not commit: %w", name, err)
	}
	for _, fn := range o.after {
		fn()
	}
	for _, ev := range o.events {
		l.sink.Emit(ev)
	}
	log.WithFields(logrus.Fields{"writes": writes, "events": len(o.events)}).Debug("operation committed")
	return nil
}

// view runs fn over the committed state. Nothing fn stages is kept.
func (l *Ledger) view(fn func(o *op) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := &op{tables: tables{txn: kv.NewTxn(l.store)}, l: l}
	return fn(o)
}

// Asset returns the details of id, or ErrUnknown.
func (l *Ledger) Asset(id AssetID) (AssetDetails, error) {
	var d AssetDetails
	err := l.view(func(o *op) error {
		var ok bool
		var err error
		d, ok, err = o.asset(id)
		if err == nil && !ok {
			err = ErrUnknown
		}
		return err
	})
	return d, err
}

// Account returns the balance record of who, and false if there is none.
func (l *Ledger) Account(id AssetID, who AccountID) (AssetBalance, bool, error) {
	var (
		b  AssetBalance
		ok bool
	)
	err := l.view(func(o *op) (err error) {
		b, ok, err = o.balance(id, who)
		return err
	})
	return b, ok, err
}

// Balance returns how much of id who holds.
func (l *Ledger) Balance(id AssetID, who AccountID) (Balance, error) {
	b, _, err := l.Account(id, who)
	return b.Balance, err
}

// TotalSupply returns the supply of id, zero for an unknown asset.
func (l *Ledger) TotalSupply(id AssetID) (Balance, error) {
	d, err := l.Asset(id)
	if errors.Is(err, ErrUnknown) {
		return 0, nil
	}
	return d.Supply, err
}

// Metadata returns the metadata of id, the zero value when there is none.
func (l *Ledger) Metadata(id AssetID) (AssetMetadata, error) {
	var m AssetMetadata
	err := l.view(func(o *op) (err error) {
		m, _, err = o.metadata(id)
		return err
	})
	return m, err
}

// Approval returns the allowance of delegate over owner's balance of id.
func (l *Ledger) Approval(id AssetID, owner, delegate AccountID) (Approval, bool, error) {
	var (
		a  Approval
		ok bool
	)
	err := l.view(func(o *op) (err error) {
		a, ok, err = o.approval(id, owner, delegate)
		return err
	})
	return a, ok, err
}

// Holder is a balance record with its account.
type Holder struct {
	Account AccountID `json:"account"`
	AssetBalance
}

// Holders returns the balance records of id ordered by account.
func (l *Ledger) Holders(id AssetID) ([]Holder, error) {
	var holders []Holder
	err := l.view(func(o *op) error {
		return o.balances(id, func(who AccountID, b AssetBalance) error {
			holders = append(holders, Holder{Account: who, AssetBalance: b})
			return nil
		})
	})
	return holders, err
}

// ApprovalEntry is an approval record with its key.
type ApprovalEntry struct {
	Owner    AccountID `json:"owner"`
	Delegate AccountID `json:"delegate"`
	Approval
}

// Approvals returns the approval records of id.
func (l *Ledger) Approvals(id AssetID) ([]ApprovalEntry, error) {
	var entries []ApprovalEntry
	err := l.view(func(o *op) error {
		return o.approvals(id, func(owner, delegate AccountID, a Approval) error {
			entries = append(entries, ApprovalEntry{Owner: owner, Delegate: delegate, Approval: a})
			return nil
		})
	})
	return entries, err
}

// Assets returns the registered asset ids in increasing order.
func (l *Ledger) Assets() ([]AssetID, error) {
	var ids []AssetID
	err := l.view(func(o *op) error {
		return o.assets(func(id AssetID, _ AssetDetails) error {
			ids = append(ids, id)
			return nil
		})
	})
	return ids, err
}
