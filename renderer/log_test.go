package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/assets"
	"github.com/etnz/assets/journal"
	"github.com/etnz/assets/native"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestDescribeEvent(t *testing.T) {
	testCases := []struct {
		event assets.Event
		want  string
	}{
		{assets.Issued{Asset: 1, Owner: "alice", Amount: 100}, "100 to alice"},
		{assets.Transferred{Asset: 1, From: "alice", To: "bob", Amount: 5}, "5 from alice to bob"},
		{assets.Burned{Asset: 1, Owner: "bob", Balance: 3}, "3 from bob"},
		{assets.Frozen{Asset: 1, Who: "bob"}, "bob"},
		{assets.MetadataSet{Asset: 1, Name: "Gold", Symbol: "GLD", Decimals: 2, IsFrozen: true}, `"Gold" (GLD), 2 decimals, frozen`},
		{assets.TransferredApproved{Asset: 1, Owner: "alice", Delegate: "dave", Destination: "erin", Amount: 8}, "dave moved 8 from alice to erin"},
		{assets.Destroyed{Asset: 1}, ""},
	}
	for _, tc := range testCases {
		t.Run(string(tc.event.Kind()), func(t *testing.T) {
			if got := DescribeEvent(tc.event); got != tc.want {
				t.Errorf("DescribeEvent() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLogMarkdown(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	entries := []journal.Entry{
		{Seq: 1, RecordedAt: at, Event: assets.Created{Asset: 7, Creator: "alice", Owner: "bob"}},
		{Seq: 2, RecordedAt: at, Event: assets.Issued{Asset: 7, Owner: "carol", Amount: 40}},
	}
	want := "# Events\n\n" +
		"| # | Recorded | Asset | Event | Details |\n" +
		"|---:|:---|---:|:---|:---|\n" +
		"| 1 | 2025-03-01 10:30:00 | 7 | created | created by alice, admin bob |\n" +
		"| 2 | 2025-03-01 10:30:00 | 7 | issued | 40 to carol |\n"
	if got := LogMarkdown(entries); got != want {
		t.Errorf("LogMarkdown() = %q, want %q", got, want)
	}
	if got, want := LogMarkdown(nil), "# Events\n\nNo events.\n"; got != want {
		t.Errorf("LogMarkdown(nil) = %q, want %q", got, want)
	}
}

func TestAccountsMarkdown(t *testing.T) {
	accounts := []native.AccountEntry{
		{ID: "alice", Account: native.Account{Free: 90, Reserved: 10, Providers: 1, Consumers: 1}},
	}
	want := "# Accounts\n\n" +
		"| Account | Free | Reserved | Providers | Consumers | Sufficients |\n" +
		"|:---|---:|---:|---:|---:|---:|\n" +
		"| alice | 90 | 10 | 1 | 1 | 0 |\n"
	if got := AccountsMarkdown(accounts); got != want {
		t.Errorf("AccountsMarkdown() = %q, want %q", got, want)
	}
}

func TestAssetsMarkdown(t *testing.T) {
	list := []*Asset{
		{ID: 1, Name: "Gold", Supply: Amount{Units: 1000, Decimals: 1}, Accounts: 2, Owner: "alice"},
		{ID: 2, Supply: Amount{Units: 0}, Owner: "bob", IsFrozen: true, IsSufficient: true},
	}
	want := "# Assets\n\n" +
		"| ID | Name | Supply | Holders | Owner | Status |\n" +
		"|---:|:---|---:|---:|:---|:---|\n" +
		"| 1 | Gold | 100.0 | 2 | alice | live |\n" +
		"| 2 | Asset 2 | 0 | 0 | bob | frozen, sufficient |\n"
	if got := AssetsMarkdown(list); got != want {
		t.Errorf("AssetsMarkdown() = %q, want %q", got, want)
	}
}
