package assets_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/etnz/assets"
	"github.com/etnz/assets/native"
)

func TestOrigin(t *testing.T) {
	testCases := []struct {
		origin     assets.Origin
		wantSigner assets.AccountID
		wantOK     bool
		wantRoot   bool
		wantString string
	}{
		{assets.Signed(alice), alice, true, false, "signed(alice)"},
		{assets.Signed(""), "", false, false, "signed()"},
		{assets.Root(), "", false, true, "root"},
	}
	for _, tc := range testCases {
		t.Run(tc.wantString, func(t *testing.T) {
			who, ok := tc.origin.Signer()
			if who != tc.wantSigner || ok != tc.wantOK {
				t.Errorf("Signer() = %q, %v, want %q, %v", who, ok, tc.wantSigner, tc.wantOK)
			}
			if got := tc.origin.IsRoot(); got != tc.wantRoot {
				t.Errorf("IsRoot() = %v, want %v", got, tc.wantRoot)
			}
			if got := tc.origin.String(); got != tc.wantString {
				t.Errorf("String() = %q, want %q", got, tc.wantString)
			}
		})
	}
}

func TestLedger_Create(t *testing.T) {
	tl := newTestLedger(t)
	testCases := []struct {
		name    string
		origin  assets.Origin
		id      assets.AssetID
		min     assets.Balance
		wantErr error
	}{
		{"signed", signed(alice), 1, 1, nil},
		{"id in use", signed(bob), 1, 1, assets.ErrInUse},
		{"zero min balance", signed(bob), 2, 0, assets.ErrMinBalanceZero},
		{"root origin", assets.Root(), 3, 1, assets.ErrBadOrigin},
		{"no funds for the deposit", signed(dave), 4, 1, native.ErrInsufficientBalance},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tl.Create(tc.origin, tc.id, bob, tc.min)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Create() = %v, want %v", err, tc.wantErr)
			}
		})
	}

	want := assets.AssetDetails{Owner: alice, Issuer: bob, Admin: bob, Freezer: bob, Deposit: 100, MinBalance: 1}
	if diff := cmp.Diff(want, tl.details(t, 1)); diff != "" {
		t.Errorf("Asset(1) mismatch (-want +got):\n%s", diff)
	}
	ids, err := tl.Assets()
	must(t, err)
	if diff := cmp.Diff([]assets.AssetID{1}, ids); diff != "" {
		t.Errorf("Assets() mismatch (-want +got):\n%s", diff)
	}
	if got := tl.account(t, alice); got.Free != 900 || got.Reserved != 100 {
		t.Errorf("alice free, reserved = %d, %d, want 900, 100", got.Free, got.Reserved)
	}
	if got := tl.account(t, bob).Reserved; got != 0 {
		t.Errorf("bob reserved = %d, want 0", got)
	}
	if _, err := tl.Asset(4); !errors.Is(err, assets.ErrUnknown) {
		t.Errorf("Asset(4) = %v, want %v", err, assets.ErrUnknown)
	}
}

func TestLedger_MintAndTransfer(t *testing.T) {
	tl := newTestLedger(t)
	tl.run(t, []step{
		{
			name:       "create",
			do:         func(l *assets.Ledger) error { return l.Create(signed(alice), 1, alice, 10) },
			wantEvents: []assets.Event{assets.Created{Asset: 1, Creator: alice, Owner: alice}},
		},
		{
			name:       "mint",
			do:         func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, alice, 100) },
			wantEvents: []assets.Event{assets.Issued{Asset: 1, Owner: alice, Amount: 100}},
		},
		{
			name:    "mint by a non issuer",
			do:      func(l *assets.Ledger) error { return l.Mint(signed(bob), 1, bob, 100) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:    "mint below the minimum",
			do:      func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, bob, 5) },
			wantErr: assets.ErrBelowMinimum,
		},
		{
			name:    "mint to an account without provider",
			do:      func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, dave, 50) },
			wantErr: assets.ErrCannotCreate,
		},
		{
			name:    "mint unknown asset",
			do:      func(l *assets.Ledger) error { return l.Mint(signed(alice), 9, alice, 50) },
			wantErr: assets.ErrUnknown,
		},
		{
			name:       "transfer",
			do:         func(l *assets.Ledger) error { return l.Transfer(signed(alice), 1, bob, 60) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: alice, To: bob, Amount: 60}},
		},
		{
			name: "transfer sweeps the dust",
			do:   func(l *assets.Ledger) error { return l.Transfer(signed(alice), 1, bob, 35) },
			// alice would keep 5, below the minimum of 10
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: alice, To: bob, Amount: 40}},
		},
		{
			name:    "transfer more than the balance",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(bob), 1, carol, 101) },
			wantErr: assets.ErrBalanceLow,
		},
		{
			name:    "keep alive transfer into the minimum",
			do:      func(l *assets.Ledger) error { return l.TransferKeepAlive(signed(bob), 1, carol, 95) },
			wantErr: assets.ErrBalanceLow,
		},
		{
			name:       "keep alive transfer",
			do:         func(l *assets.Ledger) error { return l.TransferKeepAlive(signed(bob), 1, carol, 90) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: bob, To: carol, Amount: 90}},
		},
		{
			name:    "transfer creating an account below the minimum",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(carol), 1, alice, 5) },
			wantErr: assets.ErrBelowMinimum,
		},
		{
			name:    "transfer to an account without provider",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(carol), 1, dave, 20) },
			wantErr: assets.ErrCannotCreate,
		},
		{
			name:    "transfer from root",
			do:      func(l *assets.Ledger) error { return l.Transfer(assets.Root(), 1, dave, 20) },
			wantErr: assets.ErrBadOrigin,
		},
		{
			name:       "transfer nothing",
			do:         func(l *assets.Ledger) error { return l.Transfer(signed(carol), 1, bob, 0) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: carol, To: bob, Amount: 0}},
		},
	})

	holders, err := tl.Holders(1)
	must(t, err)
	want := []assets.Holder{
		{Account: bob, AssetBalance: assets.AssetBalance{Balance: 10}},
		{Account: carol, AssetBalance: assets.AssetBalance{Balance: 90}},
	}
	if diff := cmp.Diff(want, holders); diff != "" {
		t.Errorf("Holders(1) mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := tl.Account(1, alice); ok {
		t.Errorf("Account(1, alice) exists, want it removed")
	}
	if got := tl.details(t, 1); got.Supply != 100 || got.Accounts != 2 {
		t.Errorf("supply, accounts = %d, %d, want 100, 2", got.Supply, got.Accounts)
	}
	for who, want := range map[assets.AccountID]uint32{alice: 0, bob: 1, carol: 1} {
		if got := tl.account(t, who).Consumers; got != want {
			t.Errorf("%s consumers = %d, want %d", who, got, want)
		}
	}
}

func TestLedger_Burn(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 10))
	must(t, tl.Mint(signed(alice), 1, alice, 100))
	must(t, tl.Mint(signed(alice), 1, bob, 50))

	before, err := tl.Snapshot()
	must(t, err)
	accounts, err := tl.bank.Accounts()
	must(t, err)
	tl.run(t, []step{
		{
			name:       "mint nothing",
			do:         func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, bob, 0) },
			wantEvents: []assets.Event{assets.Issued{Asset: 1, Owner: bob, Amount: 0}},
		},
		{
			name:       "burn nothing",
			do:         func(l *assets.Ledger) error { return l.Burn(signed(alice), 1, bob, 0) },
			wantEvents: []assets.Event{assets.Burned{Asset: 1, Owner: bob, Balance: 0}},
		},
	})
	after, err := tl.Snapshot()
	must(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("zero mint and burn changed the ledger (-before +after):\n%s", diff)
	}
	gotAccounts, err := tl.bank.Accounts()
	must(t, err)
	if diff := cmp.Diff(accounts, gotAccounts); diff != "" {
		t.Errorf("zero mint and burn changed native accounts (-before +after):\n%s", diff)
	}

	tl.run(t, []step{
		{
			name:    "burn by a non admin",
			do:      func(l *assets.Ledger) error { return l.Burn(signed(bob), 1, alice, 30) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:       "burn",
			do:         func(l *assets.Ledger) error { return l.Burn(signed(alice), 1, alice, 30) },
			wantEvents: []assets.Event{assets.Burned{Asset: 1, Owner: alice, Balance: 30}},
		},
		{
			name:       "burn takes the dust",
			do:         func(l *assets.Ledger) error { return l.Burn(signed(alice), 1, alice, 65) },
			wantEvents: []assets.Event{assets.Burned{Asset: 1, Owner: alice, Balance: 70}},
		},
		{
			name:       "burn at most the balance",
			do:         func(l *assets.Ledger) error { return l.Burn(signed(alice), 1, bob, 500) },
			wantEvents: []assets.Event{assets.Burned{Asset: 1, Owner: bob, Balance: 50}},
		},
		{
			name:    "burn unknown asset",
			do:      func(l *assets.Ledger) error { return l.Burn(signed(alice), 9, bob, 5) },
			wantErr: assets.ErrUnknown,
		},
	})
	if got := tl.details(t, 1); got.Supply != 0 || got.Accounts != 0 {
		t.Errorf("supply, accounts = %d, %d, want 0, 0", got.Supply, got.Accounts)
	}
}

func TestLedger_ForceTransfer(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, carol, 1))
	must(t, tl.Mint(signed(carol), 1, bob, 50))
	tl.run(t, []step{
		{
			name:    "by a non admin",
			do:      func(l *assets.Ledger) error { return l.ForceTransfer(signed(alice), 1, bob, alice, 10) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:       "by the admin",
			do:         func(l *assets.Ledger) error { return l.ForceTransfer(signed(carol), 1, bob, alice, 10) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: bob, To: alice, Amount: 10}},
		},
	})
	if got := tl.balance(t, 1, alice); got != 10 {
		t.Errorf("Balance(1, alice) = %d, want 10", got)
	}
}

func TestLedger_Freeze(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 10))
	must(t, tl.Mint(signed(alice), 1, alice, 100))
	must(t, tl.Mint(signed(alice), 1, bob, 50))
	tl.run(t, []step{
		{
			name:    "freeze by a non freezer",
			do:      func(l *assets.Ledger) error { return l.Freeze(signed(bob), 1, alice) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:    "freeze an account without balance",
			do:      func(l *assets.Ledger) error { return l.Freeze(signed(alice), 1, dave) },
			wantErr: assets.ErrBalanceZero,
		},
		{
			name:       "freeze",
			do:         func(l *assets.Ledger) error { return l.Freeze(signed(alice), 1, alice) },
			wantEvents: []assets.Event{assets.Frozen{Asset: 1, Who: alice}},
		},
		{
			name:    "transfer from a frozen account",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(alice), 1, bob, 10) },
			wantErr: assets.ErrFrozen,
		},
		{
			name:       "transfer to a frozen account",
			do:         func(l *assets.Ledger) error { return l.Transfer(signed(bob), 1, alice, 10) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: bob, To: alice, Amount: 10}},
		},
		{
			name:       "thaw",
			do:         func(l *assets.Ledger) error { return l.Thaw(signed(alice), 1, alice) },
			wantEvents: []assets.Event{assets.Thawed{Asset: 1, Who: alice}},
		},
		{
			name:       "transfer once thawed",
			do:         func(l *assets.Ledger) error { return l.Transfer(signed(alice), 1, bob, 10) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: alice, To: bob, Amount: 10}},
		},
		{
			name:    "freeze asset by a non freezer",
			do:      func(l *assets.Ledger) error { return l.FreezeAsset(signed(bob), 1) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:       "freeze asset",
			do:         func(l *assets.Ledger) error { return l.FreezeAsset(signed(alice), 1) },
			wantEvents: []assets.Event{assets.AssetFrozen{Asset: 1}},
		},
		{
			name:    "transfer of a frozen asset",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(bob), 1, alice, 10) },
			wantErr: assets.ErrFrozen,
		},
		{
			name:    "approve a frozen asset",
			do:      func(l *assets.Ledger) error { return l.ApproveTransfer(signed(bob), 1, carol, 10) },
			wantErr: assets.ErrFrozen,
		},
		{
			name:       "mint a frozen asset",
			do:         func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, carol, 10) },
			wantEvents: []assets.Event{assets.Issued{Asset: 1, Owner: carol, Amount: 10}},
		},
		{
			name:       "thaw asset",
			do:         func(l *assets.Ledger) error { return l.ThawAsset(signed(alice), 1) },
			wantEvents: []assets.Event{assets.AssetThawed{Asset: 1}},
		},
		{
			name:       "transfer once the asset is thawed",
			do:         func(l *assets.Ledger) error { return l.Transfer(signed(bob), 1, alice, 10) },
			wantEvents: []assets.Event{assets.Transferred{Asset: 1, From: bob, To: alice, Amount: 10}},
		},
	})
}

func TestLedger_Approvals(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	must(t, tl.Mint(signed(alice), 1, alice, 20))
	tl.run(t, []step{
		{
			name:       "approve",
			do:         func(l *assets.Ledger) error { return l.ApproveTransfer(signed(alice), 1, bob, 5) },
			wantEvents: []assets.Event{assets.ApprovedTransfer{Asset: 1, Source: alice, Delegate: bob, Amount: 5}},
		},
		{
			name:       "approve more",
			do:         func(l *assets.Ledger) error { return l.ApproveTransfer(signed(alice), 1, bob, 3) },
			wantEvents: []assets.Event{assets.ApprovedTransfer{Asset: 1, Source: alice, Delegate: bob, Amount: 3}},
		},
		{
			name:    "spend more than approved",
			do:      func(l *assets.Ledger) error { return l.TransferApproved(signed(bob), 1, alice, carol, 9) },
			wantErr: assets.ErrUnapproved,
		},
		{
			name:    "spend without approval",
			do:      func(l *assets.Ledger) error { return l.TransferApproved(signed(carol), 1, alice, carol, 1) },
			wantErr: assets.ErrUnapproved,
		},
		{
			name: "spend part of the approval",
			do:   func(l *assets.Ledger) error { return l.TransferApproved(signed(bob), 1, alice, carol, 6) },
			wantEvents: []assets.Event{
				assets.Transferred{Asset: 1, From: alice, To: carol, Amount: 6},
				assets.TransferredApproved{Asset: 1, Owner: alice, Delegate: bob, Destination: carol, Amount: 6},
			},
		},
	})

	a, ok, err := tl.Approval(1, alice, bob)
	must(t, err)
	if !ok || a != (assets.Approval{Amount: 2, Deposit: 1}) {
		t.Errorf("Approval(1, alice, bob) = %+v, %v, want {Amount:2 Deposit:1}, true", a, ok)
	}
	if got := tl.account(t, alice).Reserved; got != 101 {
		t.Errorf("alice reserved = %d, want 101", got)
	}

	tl.run(t, []step{
		{
			name: "spend the rest of the approval",
			do:   func(l *assets.Ledger) error { return l.TransferApproved(signed(bob), 1, alice, bob, 2) },
			wantEvents: []assets.Event{
				assets.Transferred{Asset: 1, From: alice, To: bob, Amount: 2},
				assets.TransferredApproved{Asset: 1, Owner: alice, Delegate: bob, Destination: bob, Amount: 2},
			},
		},
		{
			name:    "cancel a spent approval",
			do:      func(l *assets.Ledger) error { return l.CancelApproval(signed(alice), 1, bob) },
			wantErr: assets.ErrUnknown,
		},
		{
			name:       "approve carol",
			do:         func(l *assets.Ledger) error { return l.ApproveTransfer(signed(alice), 1, carol, 4) },
			wantEvents: []assets.Event{assets.ApprovedTransfer{Asset: 1, Source: alice, Delegate: carol, Amount: 4}},
		},
		{
			name:       "cancel",
			do:         func(l *assets.Ledger) error { return l.CancelApproval(signed(alice), 1, carol) },
			wantEvents: []assets.Event{assets.ApprovalCancelled{Asset: 1, Owner: alice, Delegate: carol}},
		},
		{
			name:       "approve carol again",
			do:         func(l *assets.Ledger) error { return l.ApproveTransfer(signed(alice), 1, carol, 4) },
			wantEvents: []assets.Event{assets.ApprovedTransfer{Asset: 1, Source: alice, Delegate: carol, Amount: 4}},
		},
		{
			name:    "force cancel by a non admin",
			do:      func(l *assets.Ledger) error { return l.ForceCancelApproval(signed(bob), 1, alice, carol) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:    "force cancel on unknown asset",
			do:      func(l *assets.Ledger) error { return l.ForceCancelApproval(assets.Root(), 9, alice, carol) },
			wantErr: assets.ErrUnknown,
		},
		{
			name:       "force cancel",
			do:         func(l *assets.Ledger) error { return l.ForceCancelApproval(assets.Root(), 1, alice, carol) },
			wantEvents: []assets.Event{assets.ApprovalCancelled{Asset: 1, Owner: alice, Delegate: carol}},
		},
	})

	if got := tl.account(t, alice).Reserved; got != 100 {
		t.Errorf("alice reserved = %d, want 100", got)
	}
	if got := tl.details(t, 1).Approvals; got != 0 {
		t.Errorf("Approvals = %d, want 0", got)
	}
	if got := tl.balance(t, 1, alice); got != 12 {
		t.Errorf("Balance(1, alice) = %d, want 12", got)
	}
}

func TestLedger_Ownership(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	must(t, tl.SetMetadata(signed(alice), 1, "Gold", "GLD", 2))
	tl.run(t, []step{
		{
			name:    "transfer ownership by a non owner",
			do:      func(l *assets.Ledger) error { return l.TransferOwnership(signed(bob), 1, bob) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:       "transfer ownership",
			do:         func(l *assets.Ledger) error { return l.TransferOwnership(signed(alice), 1, bob) },
			wantEvents: []assets.Event{assets.OwnerChanged{Asset: 1, Owner: bob}},
		},
		{
			name: "transfer ownership to the owner",
			do:   func(l *assets.Ledger) error { return l.TransferOwnership(signed(bob), 1, bob) },
		},
		{
			name:    "former owner sets metadata",
			do:      func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, "Lead", "PB", 2) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:    "set team by a non owner",
			do:      func(l *assets.Ledger) error { return l.SetTeam(signed(alice), 1, carol, carol, carol) },
			wantErr: assets.ErrNoPermission,
		},
		{
			name:       "set team",
			do:         func(l *assets.Ledger) error { return l.SetTeam(signed(bob), 1, carol, carol, carol) },
			wantEvents: []assets.Event{assets.TeamChanged{Asset: 1, Issuer: carol, Admin: carol, Freezer: carol}},
		},
		{
			name:       "new issuer mints",
			do:         func(l *assets.Ledger) error { return l.Mint(signed(carol), 1, carol, 5) },
			wantEvents: []assets.Event{assets.Issued{Asset: 1, Owner: carol, Amount: 5}},
		},
	})
	// the asset and metadata deposits, 100 + 10 + 7, moved to bob
	if got := tl.account(t, alice).Reserved; got != 0 {
		t.Errorf("alice reserved = %d, want 0", got)
	}
	if got := tl.account(t, bob).Reserved; got != 117 {
		t.Errorf("bob reserved = %d, want 117", got)
	}
}

func TestLedger_Metadata(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	testCases := []struct {
		name        string
		do          func(l *assets.Ledger) error
		wantErr     error
		wantReserve assets.DepositBalance
	}{
		{
			name:        "name too long",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, string(make([]byte, 51)), "", 0) },
			wantErr:     assets.ErrBadMetadata,
			wantReserve: 100,
		},
		{
			name:        "by a non owner",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(bob), 1, "Gold", "GLD", 2) },
			wantErr:     assets.ErrNoPermission,
			wantReserve: 100,
		},
		{
			name:        "set",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, "Gold", "GLD", 2) },
			wantReserve: 117,
		},
		{
			name:        "set longer",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, "Gold Token", "GLD", 2) },
			wantReserve: 123,
		},
		{
			name:        "set shorter",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, "G", "", 0) },
			wantReserve: 111,
		},
		{
			name:        "force set by a signed origin",
			do:          func(l *assets.Ledger) error { return l.ForceSetMetadata(signed(alice), 1, "F", "F", 0, true) },
			wantErr:     assets.ErrBadOrigin,
			wantReserve: 111,
		},
		{
			name:        "force set keeps the deposit",
			do:          func(l *assets.Ledger) error { return l.ForceSetMetadata(assets.Root(), 1, "Frozen", "FRZ", 4, true) },
			wantReserve: 111,
		},
		{
			name:        "set frozen metadata",
			do:          func(l *assets.Ledger) error { return l.SetMetadata(signed(alice), 1, "Gold", "GLD", 2) },
			wantErr:     assets.ErrNoPermission,
			wantReserve: 111,
		},
		{
			name:        "clear",
			do:          func(l *assets.Ledger) error { return l.ClearMetadata(signed(alice), 1) },
			wantReserve: 100,
		},
		{
			name:        "clear again",
			do:          func(l *assets.Ledger) error { return l.ClearMetadata(signed(alice), 1) },
			wantErr:     assets.ErrUnknown,
			wantReserve: 100,
		},
		{
			name:        "force clear missing metadata",
			do:          func(l *assets.Ledger) error { return l.ForceClearMetadata(assets.Root(), 1) },
			wantErr:     assets.ErrUnknown,
			wantReserve: 100,
		},
		{
			name:        "force clear unknown asset",
			do:          func(l *assets.Ledger) error { return l.ForceClearMetadata(assets.Root(), 9) },
			wantErr:     assets.ErrUnknown,
			wantReserve: 100,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.do(tl.Ledger); !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
			if got := tl.account(t, alice).Reserved; got != tc.wantReserve {
				t.Errorf("alice reserved = %d, want %d", got, tc.wantReserve)
			}
		})
	}
}

func TestLedger_ForceSetMetadata(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	must(t, tl.SetMetadata(signed(alice), 1, "G", "", 0))
	must(t, tl.ForceSetMetadata(assets.Root(), 1, "Frozen", "FRZ", 4, true))
	got, err := tl.Metadata(1)
	must(t, err)
	want := assets.AssetMetadata{Deposit: 11, Name: "Frozen", Symbol: "FRZ", Decimals: 4, IsFrozen: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Metadata(1) mismatch (-want +got):\n%s", diff)
	}
	if got, err := tl.Metadata(9); err != nil || got != (assets.AssetMetadata{}) {
		t.Errorf("Metadata(9) = %+v, %v, want zero value", got, err)
	}
}

func TestLedger_Destroy(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	must(t, tl.SetMetadata(signed(alice), 1, "Gold", "GLD", 2))
	must(t, tl.Mint(signed(alice), 1, alice, 10))
	must(t, tl.Mint(signed(alice), 1, bob, 5))
	must(t, tl.ApproveTransfer(signed(bob), 1, carol, 3))
	witness := tl.details(t, 1).DestroyWitness()

	testCases := []struct {
		name        string
		origin      assets.Origin
		witness     assets.DestroyWitness
		wantErr     error
		wantDrained assets.DestroyWitness
	}{
		{"by a non owner", signed(bob), witness, assets.ErrNoPermission, assets.DestroyWitness{}},
		{"understated accounts", signed(alice), assets.DestroyWitness{Accounts: 1, Approvals: 1}, assets.ErrBadWitness, assets.DestroyWitness{}},
		{"understated approvals", signed(alice), assets.DestroyWitness{Accounts: 2, Approvals: 0}, assets.ErrBadWitness, assets.DestroyWitness{}},
		{"by the owner", signed(alice), witness, nil, assets.DestroyWitness{Accounts: 2, Approvals: 1}},
		{"destroyed asset", signed(alice), witness, assets.ErrUnknown, assets.DestroyWitness{}},
	}
	tl.events.Reset()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			drained, err := tl.Destroy(tc.origin, 1, tc.witness)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Destroy() = %v, want %v", err, tc.wantErr)
			}
			if drained != tc.wantDrained {
				t.Errorf("Destroy() drained %+v, want %+v", drained, tc.wantDrained)
			}
			if errors.Is(tc.wantErr, assets.ErrBadWitness) {
				if _, err := tl.Asset(1); err != nil {
					t.Errorf("Asset(1) after a rejected destroy = %v, want nil", err)
				}
			}
		})
	}

	if diff := cmp.Diff([]assets.Event{assets.Destroyed{Asset: 1}}, tl.events.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	for _, who := range []assets.AccountID{alice, bob} {
		if got := tl.account(t, who); got.Reserved != 0 || got.Consumers != 0 {
			t.Errorf("%s reserved, consumers = %d, %d, want 0, 0", who, got.Reserved, got.Consumers)
		}
	}
	holders, err := tl.Holders(1)
	must(t, err)
	if len(holders) != 0 {
		t.Errorf("Holders(1) = %v, want none", holders)
	}
	if md, _ := tl.Metadata(1); md != (assets.AssetMetadata{}) {
		t.Errorf("Metadata(1) = %+v, want zero value", md)
	}
}

func TestLedger_DestroySufficient(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.ForceCreate(assets.Root(), 1, alice, true, 1))
	must(t, tl.Mint(signed(alice), 1, dave, 5))
	tl.run(t, []step{
		{
			name: "understated sufficients",
			do: func(l *assets.Ledger) error {
				_, err := l.Destroy(signed(alice), 1, assets.DestroyWitness{Accounts: 1})
				return err
			},
			wantErr: assets.ErrBadWitness,
		},
	})
	if _, err := tl.Asset(1); err != nil {
		t.Fatalf("Asset(1) after a rejected destroy = %v, want nil", err)
	}

	drained, err := tl.Destroy(assets.Root(), 1, assets.DestroyWitness{Accounts: 1, Sufficients: 1})
	must(t, err)
	if want := (assets.DestroyWitness{Accounts: 1, Sufficients: 1}); drained != want {
		t.Errorf("Destroy() drained %+v, want %+v", drained, want)
	}
	if got := tl.account(t, dave); got.Sufficients != 0 {
		t.Errorf("dave sufficients = %d, want 0", got.Sufficients)
	}
}

func TestLedger_SufficientAsset(t *testing.T) {
	tl := newTestLedger(t)
	tl.run(t, []step{
		{
			name:    "force create by a signed origin",
			do:      func(l *assets.Ledger) error { return l.ForceCreate(signed(alice), 1, alice, true, 10) },
			wantErr: assets.ErrBadOrigin,
		},
		{
			name:       "force create",
			do:         func(l *assets.Ledger) error { return l.ForceCreate(assets.Root(), 1, alice, true, 10) },
			wantEvents: []assets.Event{assets.ForceCreated{Asset: 1, Owner: alice}},
		},
		{
			name:    "force create in use",
			do:      func(l *assets.Ledger) error { return l.ForceCreate(assets.Root(), 1, bob, false, 10) },
			wantErr: assets.ErrInUse,
		},
		{
			name:       "mint to an account without provider",
			do:         func(l *assets.Ledger) error { return l.Mint(signed(alice), 1, dave, 50) },
			wantEvents: []assets.Event{assets.Issued{Asset: 1, Owner: dave, Amount: 50}},
		},
	})
	if got := tl.account(t, dave); got.Sufficients != 1 || got.Providers != 0 {
		t.Errorf("dave sufficients, providers = %d, %d, want 1, 0", got.Sufficients, got.Providers)
	}
	b, _, err := tl.Account(1, dave)
	must(t, err)
	if !b.Sufficient {
		t.Errorf("Account(1, dave).Sufficient = false, want true")
	}

	must(t, tl.Transfer(signed(dave), 1, carol, 50))
	tl.audit(t)
	if got := tl.account(t, dave).Sufficients; got != 0 {
		t.Errorf("dave sufficients = %d, want 0", got)
	}
	if got := tl.account(t, carol); got.Sufficients != 1 || got.Consumers != 0 {
		t.Errorf("carol sufficients, consumers = %d, %d, want 1, 0", got.Sufficients, got.Consumers)
	}
	d := tl.details(t, 1)
	if d.Accounts != 1 || d.Sufficients != 1 || d.Deposit != 0 {
		t.Errorf("accounts, sufficients, deposit = %d, %d, %d, want 1, 1, 0", d.Accounts, d.Sufficients, d.Deposit)
	}

	drained, err := tl.Destroy(assets.Root(), 1, d.DestroyWitness())
	must(t, err)
	if want := (assets.DestroyWitness{Accounts: 1, Sufficients: 1}); drained != want {
		t.Errorf("Destroy() drained %+v, want %+v", drained, want)
	}
	if got := tl.account(t, carol).Sufficients; got != 0 {
		t.Errorf("carol sufficients = %d, want 0", got)
	}
}

func TestLedger_ForceAssetStatus(t *testing.T) {
	tl := newTestLedger(t)
	must(t, tl.Create(signed(alice), 1, alice, 1))
	must(t, tl.Mint(signed(alice), 1, alice, 50))
	status := assets.AssetStatus{Owner: bob, Issuer: carol, Admin: carol, Freezer: bob, MinBalance: 5, IsFrozen: true}
	tl.run(t, []step{
		{
			name:    "by a signed origin",
			do:      func(l *assets.Ledger) error { return l.ForceAssetStatus(signed(alice), 1, status) },
			wantErr: assets.ErrBadOrigin,
		},
		{
			name:    "unknown asset",
			do:      func(l *assets.Ledger) error { return l.ForceAssetStatus(assets.Root(), 9, status) },
			wantErr: assets.ErrUnknown,
		},
		{
			name:       "by root",
			do:         func(l *assets.Ledger) error { return l.ForceAssetStatus(assets.Root(), 1, status) },
			wantEvents: []assets.Event{assets.AssetStatusChanged{Asset: 1}},
		},
		{
			name:    "transfer of the now frozen asset",
			do:      func(l *assets.Ledger) error { return l.Transfer(signed(alice), 1, bob, 10) },
			wantErr: assets.ErrFrozen,
		},
	})
	want := assets.AssetDetails{
		Owner: bob, Issuer: carol, Admin: carol, Freezer: bob,
		Supply: 50, Deposit: 100, MinBalance: 5, Accounts: 1, IsFrozen: true,
	}
	if diff := cmp.Diff(want, tl.details(t, 1)); diff != "" {
		t.Errorf("Asset(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_WithForceOrigin(t *testing.T) {
	council := assets.AccountID("council")
	tl := newTestLedger(t, assets.WithForceOrigin(func(o assets.Origin) bool {
		who, ok := o.Signer()
		return ok && who == council
	}))
	if err := tl.ForceCreate(assets.Root(), 1, alice, false, 1); !errors.Is(err, assets.ErrBadOrigin) {
		t.Errorf("ForceCreate(root) = %v, want %v", err, assets.ErrBadOrigin)
	}
	must(t, tl.ForceCreate(signed(council), 1, alice, false, 1))
	must(t, tl.Mint(signed(alice), 1, bob, 5))
	// the council passes the ownership checks of destroy
	if _, err := tl.Destroy(signed(council), 1, tl.details(t, 1).DestroyWitness()); err != nil {
		t.Errorf("Destroy(council) = %v, want nil", err)
	}
}

// lockFreezer locks part of the balance of some accounts.
type lockFreezer struct {
	locked map[assets.AccountID]assets.Balance
	died   []assets.AccountID
}

func (f *lockFreezer) FrozenBalance(_ assets.AssetID, who assets.AccountID) (assets.Balance, bool) {
	b, ok := f.locked[who]
	return b, ok
}

func (f *lockFreezer) Died(_ assets.AssetID, who assets.AccountID) { f.died = append(f.died, who) }

func TestLedger_Freezer(t *testing.T) {
	freezer := &lockFreezer{locked: map[assets.AccountID]assets.Balance{alice: 50}}
	tl := newTestLedger(t, assets.WithFreezer(freezer))
	must(t, tl.Create(signed(alice), 1, alice, 10))
	must(t, tl.Mint(signed(alice), 1, alice, 100))

	// 50 locked on top of the minimum of 10
	got, err := tl.ReducibleBalance(1, alice, false)
	must(t, err)
	if got != 40 {
		t.Errorf("ReducibleBalance(1, alice) = %d, want 40", got)
	}
	if err := tl.Transfer(signed(alice), 1, bob, 41); !errors.Is(err, assets.ErrBalanceLow) {
		t.Errorf("Transfer(41) = %v, want %v", err, assets.ErrBalanceLow)
	}
	must(t, tl.Transfer(signed(alice), 1, bob, 40))
	c, err := tl.CanWithdraw(1, alice, 1)
	must(t, err)
	if c.Kind != assets.WithdrawFrozen {
		t.Errorf("CanWithdraw(1, alice, 1) = %v, want frozen", c)
	}

	must(t, tl.Burn(signed(alice), 1, bob, 40))
	if diff := cmp.Diff([]assets.AccountID{bob}, freezer.died); diff != "" {
		t.Errorf("died mismatch (-want +got):\n%s", diff)
	}
}
