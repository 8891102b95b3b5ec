package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
	"github.com/etnz/assets/renderer"
)

type endowCmd struct{}

func (*endowCmd) Name() string     { return "endow" }
func (*endowCmd) Synopsis() string { return "credit native currency to an account" }
func (*endowCmd) Usage() string {
	return `assetctl endow <who> <amount>

  Credits <amount> of the native currency, the one deposits are bonded in,
  to the free balance of <who>. An endowed account exists on its own.
`
}

func (*endowCmd) SetFlags(f *flag.FlagSet) {}

func (c *endowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "endowing account", func(a *app) error {
		arg, err := args(f, 2, "<who> <amount>")
		if err != nil {
			return err
		}
		amount, err := strconv.ParseUint(arg[1], 10, 64)
		if err != nil {
			return err
		}
		return a.bank.Endow(assets.AccountID(arg[0]), assets.DepositBalance(amount))
	})
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "display the native currency accounts" }
func (*accountsCmd) Usage() string {
	return `assetctl accounts

  Displays the free and reserved native balances of every account, with
  the reference counts that keep it alive.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, "listing accounts", func(a *app) error {
		accounts, err := a.bank.Accounts()
		if err != nil {
			return err
		}
		printMarkdown(renderer.AccountsMarkdown(accounts))
		return nil
	})
}
