package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/assets/native"
)

// AssetsMarkdown renders the list of assets, one row per asset.
func AssetsMarkdown(list []*Asset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Assets\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| ID | Name | Supply | Holders | Owner | Status |")
		fmt.Fprintln(w, "|---:|:---|---:|---:|:---|:---|")
		for _, a := range list {
			fmt.Fprintf(w, "| %v | %s | %s | %d | %s | %s |\n",
				a.ID,
				a.Title(),
				a.Supply,
				a.Accounts,
				a.Owner,
				a.status(),
			)
		}
		return len(list) > 0
	})
	if len(list) == 0 {
		fmt.Fprintln(&b, "No assets.")
	}
	return b.String()
}

func (a *Asset) status() string {
	var s []string
	if a.IsFrozen {
		s = append(s, "frozen")
	}
	if a.IsSufficient {
		s = append(s, "sufficient")
	}
	if len(s) == 0 {
		return "live"
	}
	return strings.Join(s, ", ")
}

// AccountsMarkdown renders the native currency accounts.
func AccountsMarkdown(accounts []native.AccountEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Account | Free | Reserved | Providers | Consumers | Sufficients |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|")
		for _, a := range accounts {
			fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %d |\n",
				a.ID, a.Free, a.Reserved, a.Providers, a.Consumers, a.Sufficients)
		}
		return len(accounts) > 0
	})
	if len(accounts) == 0 {
		fmt.Fprintln(&b, "No accounts.")
	}
	return b.String()
}
