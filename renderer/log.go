package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/assets"
	"github.com/etnz/assets/journal"
)

// LogMarkdown renders journal entries as a markdown table, oldest first.
func LogMarkdown(entries []journal.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Events\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| # | Recorded | Asset | Event | Details |")
		fmt.Fprintln(w, "|---:|:---|---:|:---|:---|")
		for _, e := range entries {
			fmt.Fprintf(w, "| %d | %s | %v | %s | %s |\n",
				e.Seq,
				e.RecordedAt.Format("2006-01-02 15:04:05"),
				e.Event.AssetID(),
				e.Event.Kind(),
				DescribeEvent(e.Event),
			)
		}
		return len(entries) > 0
	})
	if len(entries) == 0 {
		fmt.Fprintln(&b, "No events.")
	}
	return b.String()
}

// DescribeEvent is a one line, human readable account of ev.
func DescribeEvent(ev assets.Event) string {
	switch e := ev.(type) {
	case assets.Created:
		return fmt.Sprintf("created by %s, admin %s", e.Creator, e.Owner)
	case assets.ForceCreated:
		return fmt.Sprintf("created for %s", e.Owner)
	case assets.Issued:
		return fmt.Sprintf("%d to %s", e.Amount, e.Owner)
	case assets.Transferred:
		return fmt.Sprintf("%d from %s to %s", e.Amount, e.From, e.To)
	case assets.Burned:
		return fmt.Sprintf("%d from %s", e.Balance, e.Owner)
	case assets.TeamChanged:
		return fmt.Sprintf("issuer %s, admin %s, freezer %s", e.Issuer, e.Admin, e.Freezer)
	case assets.OwnerChanged:
		return fmt.Sprintf("owner %s", e.Owner)
	case assets.Frozen:
		return string(e.Who)
	case assets.Thawed:
		return string(e.Who)
	case assets.MetadataSet:
		s := fmt.Sprintf("%q (%s), %d decimals", e.Name, e.Symbol, e.Decimals)
		if e.IsFrozen {
			s += ", frozen"
		}
		return s
	case assets.ApprovedTransfer:
		return fmt.Sprintf("%s may spend %d of %s", e.Delegate, e.Amount, e.Source)
	case assets.ApprovalCancelled:
		return fmt.Sprintf("%s may no longer spend from %s", e.Delegate, e.Owner)
	case assets.TransferredApproved:
		return fmt.Sprintf("%s moved %d from %s to %s", e.Delegate, e.Amount, e.Owner, e.Destination)
	default:
		return ""
	}
}
