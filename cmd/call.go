package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/assets"
)

// runCall builds a call against the open ledger, then applies it with the
// origin of the global flags.
func runCall(ctx context.Context, build func(a *app) (assets.Call, error)) subcommands.ExitStatus {
	return withApp(ctx, "applying call", func(a *app) error {
		call, err := build(a)
		if err != nil {
			return err
		}
		origin(&call)
		if err := call.Apply(a.ledger); err != nil {
			return fmt.Errorf("%s: %w", call.Command, err)
		}
		return nil
	})
}

// args returns exactly n positional arguments.
func args(f *flag.FlagSet, n int, names string) ([]string, error) {
	if f.NArg() != n {
		return nil, fmt.Errorf("expected %s", names)
	}
	return f.Args(), nil
}
