package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
)

const amountHelp = `  Amounts are in whole units of the asset, according to its metadata
  decimals, unless suffixed with "u" for raw units: 12.5 or 1250u.
`

type mintCmd struct {
	asset assetFlag
}

func (*mintCmd) Name() string     { return "mint" }
func (*mintCmd) Synopsis() string { return "issue new units of an asset" }
func (*mintCmd) Usage() string {
	return `assetctl -as <issuer> mint -asset <id> <beneficiary> <amount>

` + amountHelp
}

func (c *mintCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *mintCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 2, "<beneficiary> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[1])
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdMint, Asset: c.asset.id, Who: assets.AccountID(arg[0]), Amount: amount}, nil
	})
}

type burnCmd struct {
	asset assetFlag
}

func (*burnCmd) Name() string     { return "burn" }
func (*burnCmd) Synopsis() string { return "remove units of an asset from an account" }
func (*burnCmd) Usage() string {
	return `assetctl -as <admin> burn -asset <id> <who> <amount>

  Burns up to <amount> from <who>. Burning more than the balance burns all
  of it, and may remove the account.

` + amountHelp
}

func (c *burnCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *burnCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 2, "<who> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[1])
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdBurn, Asset: c.asset.id, Who: assets.AccountID(arg[0]), Amount: amount}, nil
	})
}

// transferCmd is both transfer and transfer-keep-alive.
type transferCmd struct {
	asset     assetFlag
	keepAlive bool
}

func (c *transferCmd) Name() string {
	if c.keepAlive {
		return "transfer-keep-alive"
	}
	return "transfer"
}

func (c *transferCmd) Synopsis() string {
	if c.keepAlive {
		return "transfer units of an asset, keeping the source account alive"
	}
	return "transfer units of an asset to another account"
}

func (c *transferCmd) Usage() string {
	return `assetctl -as <source> ` + c.Name() + ` -asset <id> <target> <amount>

  Moves <amount> from the signer to <target>. If the signer would be left
  with less than the minimum balance, the dust goes to <target> too, unless
  the command is transfer-keep-alive, which then fails.

` + amountHelp
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *transferCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 2, "<target> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[1])
		if err != nil {
			return assets.Call{}, err
		}
		command := assets.CmdTransfer
		if c.keepAlive {
			command = assets.CmdTransferKeepAlive
		}
		return assets.Call{Command: command, Asset: c.asset.id, To: assets.AccountID(arg[0]), Amount: amount}, nil
	})
}

type forceTransferCmd struct {
	asset assetFlag
}

func (*forceTransferCmd) Name() string     { return "force-transfer" }
func (*forceTransferCmd) Synopsis() string { return "move units between any two accounts" }
func (*forceTransferCmd) Usage() string {
	return `assetctl -as <admin> force-transfer -asset <id> <source> <dest> <amount>

` + amountHelp
}

func (c *forceTransferCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *forceTransferCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 3, "<source> <dest> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[2])
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command: assets.CmdForceTransfer,
			Asset:   c.asset.id,
			From:    assets.AccountID(arg[0]),
			To:      assets.AccountID(arg[1]),
			Amount:  amount,
		}, nil
	})
}

type freezeCmd struct {
	asset assetFlag
}

func (*freezeCmd) Name() string     { return "freeze" }
func (*freezeCmd) Synopsis() string { return "block debits from an account" }
func (*freezeCmd) Usage() string {
	return `assetctl -as <freezer> freeze -asset <id> <who>
`
}

func (c *freezeCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *freezeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 1, "<who>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdFreeze, Asset: c.asset.id, Who: assets.AccountID(arg[0])}, nil
	})
}

type thawCmd struct {
	asset assetFlag
}

func (*thawCmd) Name() string     { return "thaw" }
func (*thawCmd) Synopsis() string { return "allow debits from a frozen account again" }
func (*thawCmd) Usage() string {
	return `assetctl -as <admin> thaw -asset <id> <who>
`
}

func (c *thawCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *thawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 1, "<who>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdThaw, Asset: c.asset.id, Who: assets.AccountID(arg[0])}, nil
	})
}
