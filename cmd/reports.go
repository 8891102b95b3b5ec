package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/etnz/assets"
	"github.com/etnz/assets/journal"
	"github.com/etnz/assets/native"
	"github.com/etnz/assets/renderer"
)

type assetCmd struct {
	asset       assetFlag
	noHolders   bool
	noApprovals bool
	html        string
}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "display the report of an asset" }
func (*assetCmd) Usage() string {
	return `assetctl asset -asset <id> [-no-holders] [-no-approvals] [-html <file>]

  Displays the team, the supply, the holders and the approvals of an asset.
  With -html the report is written to <file> as an HTML page instead.
`
}

func (c *assetCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.BoolVar(&c.noHolders, "no-holders", false, "skip the holders table")
	f.BoolVar(&c.noApprovals, "no-approvals", false, "skip the approvals table")
	f.StringVar(&c.html, "html", "", "write the report as HTML to this file")
}

func (c *assetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "creating asset report", func(a *app) error {
		if err := c.asset.require(); err != nil {
			return err
		}
		st, err := a.ledger.State(c.asset.id)
		if err != nil {
			return err
		}
		md := renderer.RenderAsset(renderer.NewAsset(st), renderer.AssetRenderOptions{
			SkipHolders:   c.noHolders,
			SkipApprovals: c.noApprovals,
		})
		if c.html == "" {
			printMarkdown(md)
			return nil
		}
		return writeHTML(c.html, md)
	})
}

// writeHTML converts md to HTML and writes it to path.
func writeHTML(path, md string) error {
	var buf bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &buf); err != nil {
		return fmt.Errorf("could not convert report: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

type listCmd struct{}

func (*listCmd) Name() string     { return "assets" }
func (*listCmd) Synopsis() string { return "list every asset" }
func (*listCmd) Usage() string {
	return `assetctl assets
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "listing assets", func(a *app) error {
		s, err := a.ledger.Snapshot()
		if err != nil {
			return err
		}
		list := make([]*renderer.Asset, 0, len(s.Assets))
		for _, st := range s.Assets {
			list = append(list, renderer.NewAsset(st))
		}
		printMarkdown(renderer.AssetsMarkdown(list))
		return nil
	})
}

type balanceCmd struct {
	asset assetFlag
	units bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "print the balance of an account" }
func (*balanceCmd) Usage() string {
	return `assetctl balance -asset <id> [-u] <who>

  Prints the balance of <who> in whole units of the asset, or in raw units
  with -u.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.BoolVar(&c.units, "u", false, "print raw units")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "reading balance", func(a *app) error {
		if err := c.asset.require(); err != nil {
			return err
		}
		arg, err := args(f, 1, "<who>")
		if err != nil {
			return err
		}
		b, err := a.ledger.Balance(c.asset.id, assets.AccountID(arg[0]))
		if err != nil {
			return err
		}
		if c.units {
			fmt.Println(strconv.FormatUint(uint64(b), 10))
			return nil
		}
		md, err := a.ledger.Metadata(c.asset.id)
		if err != nil {
			return err
		}
		fmt.Println(assets.FormatAmount(b, md.Decimals))
		return nil
	})
}

type eventsCmd struct {
	asset assetFlag
	kind  string
	after int64
	limit int
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "display the journal of events" }
func (*eventsCmd) Usage() string {
	return `assetctl events [-asset <id>] [-kind <kind>] [-after <seq>] [-limit <n>]

  Displays the events recorded in the journal, oldest first.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "only events of this asset")
	f.StringVar(&c.kind, "kind", "", "only events of this kind, e.g. transferred")
	f.Int64Var(&c.after, "after", 0, "skip events up to this sequence number")
	f.IntVar(&c.limit, "limit", 0, "maximum number of events, 0 for all")
}

func (c *eventsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "listing events", func(a *app) error {
		if a.journal == nil {
			return errors.New("the journal is disabled")
		}
		filter := journal.Filter{Kind: assets.EventKind(c.kind), After: c.after, Limit: c.limit}
		if c.asset.set {
			filter.Asset = &c.asset.id
		}
		entries, err := a.journal.List(ctx, filter)
		if err != nil {
			return err
		}
		printMarkdown(renderer.LogMarkdown(entries))
		return nil
	})
}

// dump is the JSON document of snapshot and query.
type dump struct {
	assets.Snapshot
	Accounts []native.AccountEntry `json:"accounts"`
}

func (a *app) dump() (dump, error) {
	var d dump
	var err error
	if d.Snapshot, err = a.ledger.Snapshot(); err != nil {
		return d, err
	}
	d.Accounts, err = a.bank.Accounts()
	return d, err
}

type snapshotCmd struct{}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "print the whole state as JSON" }
func (*snapshotCmd) Usage() string {
	return `assetctl snapshot
`
}

func (*snapshotCmd) SetFlags(f *flag.FlagSet) {}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "creating snapshot", func(a *app) error {
		d, err := a.dump()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the snapshot" }
func (*queryCmd) Usage() string {
	return `assetctl query <jsonpath>

  Evaluates <jsonpath> over the document printed by snapshot, e.g.

  $ assetctl query '$.assets[0].details.supply'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "querying snapshot", func(a *app) error {
		arg, err := args(f, 1, "<jsonpath>")
		if err != nil {
			return err
		}
		d, err := a.dump()
		if err != nil {
			return err
		}
		v, err := query(d, arg[0])
		if err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	})
}

// query evaluates path over the JSON form of doc.
func query(doc any, path string) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate %q: %w", path, err)
	}
	// wildcards and slices answer a list, keep the single answer when there is one
	if list, ok := v.([]any); ok && len(list) == 1 {
		v = list[0]
	}
	return v, nil
}

type auditCmd struct{}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "check the bookkeeping of every asset" }
func (*auditCmd) Usage() string {
	return `assetctl audit

  Checks that supplies match the balances, that the counters match the
  records and that no balance is below its minimum.
`
}

func (*auditCmd) SetFlags(f *flag.FlagSet) {}

func (c *auditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "auditing ledger", func(a *app) error {
		s, err := a.ledger.Snapshot()
		if err != nil {
			return err
		}
		if err := s.Audit(); err != nil {
			return err
		}
		fmt.Printf("%d assets audited\n", len(s.Assets))
		return nil
	})
}
