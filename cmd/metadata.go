package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
)

// setMetadataCmd is set-metadata, or force-set-metadata for the privileged origin.
type setMetadataCmd struct {
	asset    assetFlag
	decimals uint
	frozen   bool
	force    bool
}

func (c *setMetadataCmd) Name() string {
	if c.force {
		return "force-set-metadata"
	}
	return "set-metadata"
}

func (c *setMetadataCmd) Synopsis() string {
	if c.force {
		return "set the metadata of an asset without a deposit"
	}
	return "set the name, symbol and decimals of an asset"
}

func (c *setMetadataCmd) Usage() string {
	if c.force {
		return `assetctl -root force-set-metadata -asset <id> [-decimals <n>] [-frozen] <name> <symbol>

  Sets the metadata, keeping any deposit already bonded. -frozen stops the
  owner from changing it afterwards.
`
	}
	return `assetctl -as <owner> set-metadata -asset <id> [-decimals <n>] <name> <symbol>

  Sets the metadata. The owner bonds a deposit growing with the length of
  the name and symbol.
`
}

func (c *setMetadataCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.asset, "asset", "asset id")
	f.UintVar(&c.decimals, "decimals", 0, "number of decimals of the asset")
	if c.force {
		f.BoolVar(&c.frozen, "frozen", false, "freeze the metadata")
	}
}

func (c *setMetadataCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		if err := c.asset.require(); err != nil {
			return assets.Call{}, err
		}
		arg, err := args(f, 2, "<name> <symbol>")
		if err != nil {
			return assets.Call{}, err
		}
		command := assets.CmdSetMetadata
		if c.force {
			command = assets.CmdForceSetMetadata
		}
		return assets.Call{
			Command:  command,
			Asset:    c.asset.id,
			Name:     arg[0],
			Symbol:   arg[1],
			Decimals: uint8(c.decimals),
			IsFrozen: c.frozen,
		}, nil
	})
}

// clearMetadataCmd is clear-metadata, or force-clear-metadata.
type clearMetadataCmd struct {
	asset assetFlag
	force bool
}

func (c *clearMetadataCmd) Name() string {
	if c.force {
		return "force-clear-metadata"
	}
	return "clear-metadata"
}

func (c *clearMetadataCmd) Synopsis() string {
	return "remove the metadata of an asset and return its deposit"
}

func (c *clearMetadataCmd) Usage() string {
	if c.force {
		return `assetctl -root force-clear-metadata -asset <id>
`
	}
	return `assetctl -as <owner> clear-metadata -asset <id>
`
}

func (c *clearMetadataCmd) SetFlags(f *flag.FlagSet) { f.Var(&c.asset, "asset", "asset id") }

func (c *clearMetadataCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runCall(ctx, func(a *app) (assets.Call, error) {
		command := assets.CmdClearMetadata
		if c.force {
			command = assets.CmdForceClearMetadata
		}
		return assets.Call{Command: command, Asset: c.asset.id}, c.asset.require()
	})
}
