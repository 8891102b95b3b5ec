package assets

import (
	"errors"
	"testing"

	"github.com/etnz/assets/kv"
	"github.com/etnz/assets/kv/leveldb"
)

func TestLedger_ApplyEncodeError(t *testing.T) {
	store, err := leveldb.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	var events EventRecorder
	l := NewLedger(store, nil, nil, WithEventSink(&events))

	undone := false
	err = l.apply("bad-record", func(o *op) error {
		o.onAbort(func() { undone = true })
		o.putAsset(1, AssetDetails{Owner: "alice", MinBalance: 1})
		o.store([]byte("AX:bad"), func() {})
		o.emit(Destroyed{Asset: 1})
		return nil
	})
	if err == nil {
		t.Fatalf("apply() with an unencodable record succeeded, want an error")
	}
	if !undone {
		t.Errorf("apply() did not run the abort compensations")
	}
	if _, err := store.Get(assetKey(1)); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("Get(asset 1) = %v, want %v", err, kv.ErrNotFound)
	}
	if len(events.Events) != 0 {
		t.Errorf("events = %v, want none", events.Events)
	}
}
