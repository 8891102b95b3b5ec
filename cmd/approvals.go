package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
)

type approveCmd struct {
	asset assetFlag
}

func (*approveCmd) Name() string     { return "approve-transfer" }
func (*approveCmd) Synopsis() string { return "let a delegate spend from the signer's balance" }
func (*approveCmd) Usage() string {
	return `assetctl -as <owner> approve-transfer -asset <id> <delegate> <amount>

  Adds <amount> to the allowance of <delegate> over the signer's balance.
  The first approval of a delegate bonds the approval deposit.

` + amountHelp
}

func (c *approveCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *approveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 2, "<delegate> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[1])
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdApproveTransfer, Asset: c.asset.id, Delegate: assets.AccountID(arg[0]), Amount: amount}, nil
	})
}

// cancelApprovalCmd is cancel-approval, or force-cancel-approval that also
// takes the owner.
type cancelApprovalCmd struct {
	asset assetFlag
	force bool
}

func (c *cancelApprovalCmd) Name() string {
	if c.force {
		return "force-cancel-approval"
	}
	return "cancel-approval"
}

func (c *cancelApprovalCmd) Synopsis() string { return "revoke an allowance and return its deposit" }

func (c *cancelApprovalCmd) Usage() string {
	if c.force {
		return `assetctl -as <admin> force-cancel-approval -asset <id> <owner> <delegate>
`
	}
	return `assetctl -as <owner> cancel-approval -asset <id> <delegate>
`
}

func (c *cancelApprovalCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *cancelApprovalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		if !c.force {
			arg, err := args(f, 1, "<delegate>")
			if err != nil {
				return assets.Call{}, err
			}
			return assets.Call{Command: assets.CmdCancelApproval, Asset: c.asset.id, Delegate: assets.AccountID(arg[0])}, nil
		}
		arg, err := args(f, 2, "<owner> <delegate>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command:  assets.CmdForceCancelApproval,
			Asset:    c.asset.id,
			Owner:    assets.AccountID(arg[0]),
			Delegate: assets.AccountID(arg[1]),
		}, nil
	})
}

type transferApprovedCmd struct {
	asset assetFlag
}

func (*transferApprovedCmd) Name() string     { return "transfer-approved" }
func (*transferApprovedCmd) Synopsis() string { return "spend from an allowance" }
func (*transferApprovedCmd) Usage() string {
	return `assetctl -as <delegate> transfer-approved -asset <id> <owner> <destination> <amount>

  Moves <amount> from <owner> to <destination>, out of the allowance the
  owner gave to the signer.

` + amountHelp
}

func (c *transferApprovedCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *transferApprovedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 3, "<owner> <destination> <amount>")
		if err != nil {
			return assets.Call{}, err
		}
		amount, err := a.amount(c.asset.id, arg[2])
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command: assets.CmdTransferApproved,
			Asset:   c.asset.id,
			Owner:   assets.AccountID(arg[0]),
			To:      assets.AccountID(arg[1]),
			Amount:  amount,
		}, nil
	})
}
