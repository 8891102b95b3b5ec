package assets_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/etnz/assets"
	"github.com/etnz/assets/kv/leveldb"
	"github.com/etnz/assets/native"
)

const (
	alice = assets.AccountID("alice")
	bob   = assets.AccountID("bob")
	carol = assets.AccountID("carol")
	// dave is never endowed, so nothing provides for him.
	dave = assets.AccountID("dave")
)

// testLedger is a ledger over an in-memory store. alice, bob and carol
// are endowed with 1000 in the bank.
type testLedger struct {
	*assets.Ledger
	bank   *native.Bank
	events *assets.EventRecorder
}

func newTestLedger(t *testing.T, opts ...assets.Option) *testLedger {
	t.Helper()
	store, err := leveldb.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	bank := native.New(store)
	for _, who := range []assets.AccountID{alice, bob, carol} {
		if err := bank.Endow(who, 1000); err != nil {
			t.Fatalf("Endow(%q) returned error: %v", who, err)
		}
	}
	events := &assets.EventRecorder{}
	opts = append([]assets.Option{assets.WithEventSink(events)}, opts...)
	return &testLedger{
		Ledger: assets.NewLedger(store, bank, bank, opts...),
		bank:   bank,
		events: events,
	}
}

// must fails the test on err.
func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// step is one call of a scenario, with its expected outcome.
type step struct {
	name       string
	do         func(l *assets.Ledger) error
	wantErr    error
	wantEvents []assets.Event
}

// run plays steps in order. Each step must fail with wantErr and emit
// exactly wantEvents, and leave the bookkeeping consistent.
func (tl *testLedger) run(t *testing.T, steps []step) {
	t.Helper()
	for _, s := range steps {
		tl.events.Reset()
		err := s.do(tl.Ledger)
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("%s: got error %v, want %v", s.name, err, s.wantErr)
		}
		if diff := cmp.Diff(s.wantEvents, tl.events.Events); diff != "" {
			t.Errorf("%s: events mismatch (-want +got):\n%s", s.name, diff)
		}
		tl.audit(t)
	}
}

// audit fails the test if the bookkeeping of any asset is inconsistent.
func (tl *testLedger) audit(t *testing.T) {
	t.Helper()
	s, err := tl.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() returned error: %v", err)
	}
	if err := s.Audit(); err != nil {
		t.Errorf("Audit() = %v, want nil", err)
	}
}

func (tl *testLedger) account(t *testing.T, who assets.AccountID) native.Account {
	t.Helper()
	a, err := tl.bank.Account(who)
	if err != nil {
		t.Fatalf("Account(%q) returned error: %v", who, err)
	}
	return a
}

func (tl *testLedger) balance(t *testing.T, id assets.AssetID, who assets.AccountID) assets.Balance {
	t.Helper()
	b, err := tl.Balance(id, who)
	if err != nil {
		t.Fatalf("Balance(%v, %q) returned error: %v", id, who, err)
	}
	return b
}

func (tl *testLedger) details(t *testing.T, id assets.AssetID) assets.AssetDetails {
	t.Helper()
	d, err := tl.Asset(id)
	if err != nil {
		t.Fatalf("Asset(%v) returned error: %v", id, err)
	}
	return d
}

// signed is a shorthand for assets.Signed.
func signed(who assets.AccountID) assets.Origin { return assets.Signed(who) }
