package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/etnz/assets"
)

type applyCmd struct{}

func (*applyCmd) Name() string     { return "apply" }
func (*applyCmd) Synopsis() string { return "apply a script of calls" }
func (*applyCmd) Usage() string {
	return `assetctl apply [<script.jsonl>...]

  Applies the calls of the scripts, one JSON call per line, in order. It
  reads the standard input when no file is given. Each call carries its own
  origin ("as" or "root"). An "endow" call credits native currency. A
  "destroy" call without a witness uses the current counters of the asset.

  It stops at the first failing call. The calls before it stay applied.
`
}

func (*applyCmd) SetFlags(f *flag.FlagSet) {}

func (c *applyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var calls []assets.Call
	readScript := func(name string, r io.Reader) error {
		cs, err := assets.DecodeScript(r)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		calls = append(calls, cs...)
		return nil
	}
	if f.NArg() == 0 {
		if err := readScript("stdin", os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	for _, name := range f.Args() {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return subcommands.ExitFailure
		}
		err = readScript(name, file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var applied int
	status := withApp(ctx, "applying script", func(a *app) error {
		for i, call := range calls {
			if err := a.applyScriptCall(call); err != nil {
				return fmt.Errorf("call %d (%s): %w", i+1, call.Command, err)
			}
			applied++
		}
		return nil
	})
	logrus.WithFields(logrus.Fields{"module": "cmd", "applied": applied, "calls": len(calls)}).Info("script applied")
	if status == subcommands.ExitSuccess {
		fmt.Printf("applied %d calls\n", applied)
	}
	return status
}

func (a *app) applyScriptCall(call assets.Call) error {
	switch call.Command {
	case assets.CmdEndow:
		if call.Who == "" {
			return errors.New("endow needs a who")
		}
		return a.bank.Endow(call.Who, assets.DepositBalance(call.Amount))
	case assets.CmdDestroy:
		if call.Witness == nil {
			d, err := a.ledger.Asset(call.Asset)
			if err != nil {
				return err
			}
			w := d.DestroyWitness()
			call.Witness = &w
		}
	}
	return call.Apply(a.ledger)
}
