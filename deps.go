package assets

// Currency is the reservable currency deposits are bonded in.
type Currency interface {
	// Reserve moves amount from the free to the reserved balance of who.
	Reserve(who AccountID, amount DepositBalance) error
	// Unreserve moves up to amount back to the free balance and returns the
	// part that could not be unreserved.
	Unreserve(who AccountID, amount DepositBalance) DepositBalance
	// RepatriateReserved moves amount of reserved balance from one account
	// to the reserved balance of another.
	RepatriateReserved(from, to AccountID, amount DepositBalance) error
}

// AccountRefs is the account liveness service. An account exists while it
// has any reference; consumers need at least one provider.
type AccountRefs interface {
	IncSufficients(who AccountID)
	DecSufficients(who AccountID)
	// IncConsumers fails when who has no provider reference.
	IncConsumers(who AccountID) error
	DecConsumers(who AccountID)
	Providers(who AccountID) uint32
}

// Freezer lets another component lock part of a holder's balance.
type Freezer interface {
	// FrozenBalance returns the amount of who's balance that must stay put,
	// on top of the minimum balance. false means nothing is frozen.
	FrozenBalance(id AssetID, who AccountID) (Balance, bool)
	// Died is called when who's balance record of id is removed.
	Died(id AssetID, who AccountID)
}

// EventSink receives the events of committed operations.
type EventSink interface {
	Emit(Event)
}

// NoFreezer freezes nothing.
type NoFreezer struct{}

func (NoFreezer) FrozenBalance(AssetID, AccountID) (Balance, bool) { return 0, false }
func (NoFreezer) Died(AssetID, AccountID)                          {}

// EventRecorder is an EventSink that keeps every event in memory.
type EventRecorder struct {
	Events []Event
}

// Emit implements EventSink.
func (r *EventRecorder) Emit(ev Event) { r.Events = append(r.Events, ev) }

// Reset forgets the recorded events.
func (r *EventRecorder) Reset() { r.Events = nil }

// MultiSink fans events out to several sinks.
type MultiSink []EventSink

// Emit implements EventSink.
func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
