package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
)

type createCmd struct {
	asset      assetFlag
	minBalance uint64
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new asset class" }
func (*createCmd) Usage() string {
	return `assetctl -as <owner> create -asset <id> [-min <units>] <admin>

  Creates the asset <id>, owned by the signer, who bonds the asset deposit.
  <admin> becomes the issuer, the admin and the freezer of the asset.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.Uint64Var(&c.minBalance, "min", 1, "minimum balance of holder accounts, in raw units")
}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 1, "<admin>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command:    assets.CmdCreate,
			Asset:      c.asset.id,
			Admin:      assets.AccountID(arg[0]),
			MinBalance: assets.Balance(c.minBalance),
		}, nil
	})
}

type forceCreateCmd struct {
	asset      assetFlag
	minBalance uint64
	sufficient bool
}

func (*forceCreateCmd) Name() string     { return "force-create" }
func (*forceCreateCmd) Synopsis() string { return "create an asset class without a deposit" }
func (*forceCreateCmd) Usage() string {
	return `assetctl -root force-create -asset <id> [-min <units>] [-sufficient] <owner>

  Creates the asset <id> with <owner> as its whole team. No deposit is
  bonded. A sufficient asset keeps its holders' accounts alive by itself.
`
}

func (c *forceCreateCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.Uint64Var(&c.minBalance, "min", 1, "minimum balance of holder accounts, in raw units")
	f.BoolVar(&c.sufficient, "sufficient", false, "holding the asset is enough for an account to exist")
}

func (c *forceCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 1, "<owner>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command:      assets.CmdForceCreate,
			Asset:        c.asset.id,
			Owner:        assets.AccountID(arg[0]),
			MinBalance:   assets.Balance(c.minBalance),
			IsSufficient: c.sufficient,
		}, nil
	})
}

type destroyCmd struct {
	asset       assetFlag
	accounts    uint
	sufficients uint
	approvals   uint
	exact       bool
}

func (*destroyCmd) Name() string     { return "destroy" }
func (*destroyCmd) Synopsis() string { return "destroy an asset class and all its records" }
func (*destroyCmd) Usage() string {
	return `assetctl -as <owner> destroy -asset <id> [-exact -accounts <n> -sufficients <n> -approvals <n>]

  Destroys the asset <id>, every balance and approval it has, and returns
  the deposits. The witness defaults to the current counters of the asset;
  use -exact to give it explicitly.
`
}

func (c *destroyCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.BoolVar(&c.exact, "exact", false, "use the witness given by flags")
	f.UintVar(&c.accounts, "accounts", 0, "upper bound of balance records")
	f.UintVar(&c.sufficients, "sufficients", 0, "upper bound of sufficient balance records")
	f.UintVar(&c.approvals, "approvals", 0, "upper bound of approval records")
}

func (c *destroyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var drained assets.DestroyWitness
	status := withApp(ctx, "destroying asset", func(a *app) error {
		if err := c.asset.require(); err != nil {
			return err
		}
		var w assets.DestroyWitness
		if c.exact {
			w = assets.DestroyWitness{Accounts: uint32(c.accounts), Sufficients: uint32(c.sufficients), Approvals: uint32(c.approvals)}
		} else {
			d, err := a.ledger.Asset(c.asset.id)
			if err != nil {
				return err
			}
			w = d.DestroyWitness()
		}
		var err error
		drained, err = a.ledger.Destroy(callOrigin(), c.asset.id, w)
		return err
	})
	if status == subcommands.ExitSuccess {
		fmt.Fprintf(os.Stdout, "destroyed asset %v: %d accounts, %d sufficients, %d approvals\n",
			c.asset.id, drained.Accounts, drained.Sufficients, drained.Approvals)
	}
	return status
}

type transferOwnershipCmd struct {
	asset assetFlag
}

func (*transferOwnershipCmd) Name() string     { return "transfer-ownership" }
func (*transferOwnershipCmd) Synopsis() string { return "give an asset to a new owner" }
func (*transferOwnershipCmd) Usage() string {
	return `assetctl -as <owner> transfer-ownership -asset <id> <new owner>

  Moves the ownership of the asset, and its deposits, to <new owner>.
`
}

func (c *transferOwnershipCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *transferOwnershipCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 1, "<new owner>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{Command: assets.CmdTransferOwnership, Asset: c.asset.id, Owner: assets.AccountID(arg[0])}, nil
	})
}

type setTeamCmd struct {
	asset assetFlag
}

func (*setTeamCmd) Name() string     { return "set-team" }
func (*setTeamCmd) Synopsis() string { return "change the issuer, admin and freezer of an asset" }
func (*setTeamCmd) Usage() string {
	return `assetctl -as <owner> set-team -asset <id> <issuer> <admin> <freezer>
`
}

func (c *setTeamCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *setTeamCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 3, "<issuer> <admin> <freezer>")
		if err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command: assets.CmdSetTeam,
			Asset:   c.asset.id,
			Issuer:  assets.AccountID(arg[0]),
			Admin:   assets.AccountID(arg[1]),
			Freezer: assets.AccountID(arg[2]),
		}, nil
	})
}

type forceAssetStatusCmd struct {
	asset      assetFlag
	owner      string
	issuer     string
	admin      string
	freezer    string
	minBalance uint64
	sufficient bool
	frozen     bool
}

func (*forceAssetStatusCmd) Name() string     { return "force-asset-status" }
func (*forceAssetStatusCmd) Synopsis() string { return "overwrite the team and parameters of an asset" }
func (*forceAssetStatusCmd) Usage() string {
	return `assetctl -root force-asset-status -asset <id> -owner <a> -issuer <a> -admin <a> -freezer <a> [-min <units>] [-sufficient] [-frozen]

  Overwrites the asset fields. Existing holders keep the kind of reference
  they were given, whatever -sufficient says.
`
}

func (c *forceAssetStatusCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.StringVar(&c.owner, "owner", "", "new owner")
	f.StringVar(&c.issuer, "issuer", "", "new issuer")
	f.StringVar(&c.admin, "admin", "", "new admin")
	f.StringVar(&c.freezer, "freezer", "", "new freezer")
	f.Uint64Var(&c.minBalance, "min", 1, "new minimum balance, in raw units")
	f.BoolVar(&c.sufficient, "sufficient", false, "new sufficient flag")
	f.BoolVar(&c.frozen, "frozen", false, "new frozen flag")
}

func (c *forceAssetStatusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		return assets.Call{
			Command:      assets.CmdForceAssetStatus,
			Asset:        c.asset.id,
			Owner:        assets.AccountID(c.owner),
			Issuer:       assets.AccountID(c.issuer),
			Admin:        assets.AccountID(c.admin),
			Freezer:      assets.AccountID(c.freezer),
			MinBalance:   assets.Balance(c.minBalance),
			IsSufficient: c.sufficient,
			IsFrozen:     c.frozen,
		}, nil
	})
}

type freezeAssetCmd struct {
	asset assetFlag
}

func (*freezeAssetCmd) Name() string     { return "freeze-asset" }
func (*freezeAssetCmd) Synopsis() string { return "block every debit of an asset" }
func (*freezeAssetCmd) Usage() string {
	return `assetctl -as <freezer> freeze-asset -asset <id>
`
}

func (c *freezeAssetCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *freezeAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		return assets.Call{Command: assets.CmdFreezeAsset, Asset: c.asset.id}, c.asset.require()
	})
}

type thawAssetCmd struct {
	asset assetFlag
}

func (*thawAssetCmd) Name() string     { return "thaw-asset" }
func (*thawAssetCmd) Synopsis() string { return "allow debits of a frozen asset again" }
func (*thawAssetCmd) Usage() string {
	return `assetctl -as <admin> thaw-asset -asset <id>
`
}

func (c *thawAssetCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *thawAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		return assets.Call{Command: assets.CmdThawAsset, Asset: c.asset.id}, c.asset.require()
	})
}
