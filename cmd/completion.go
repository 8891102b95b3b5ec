package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/assets/docs"
)

// Complete answers a shell completion request for the commands of c and
// exits, or returns if the process is not run for completion.
//
// Install it with "COMP_INSTALL=1 assetctl".
func Complete(c *subcommands.Commander, name string) {
	complete.Complete(name, completion(c, flag.CommandLine))
}

// completion describes the commands of c and the global flags in fs.
func completion(c *subcommands.Commander, fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(fs),
	}
	root.Flags["backend"] = predict.Set{"leveldb", "bolt"}
	root.Flags["log"] = predict.Set{"debug", "info", "warn", "error"}

	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		sub := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(sub)
		root.Sub[cmd.Name()] = &complete.Command{Flags: flagPredictors(sub)}
	})
	if apply, ok := root.Sub["apply"]; ok {
		apply.Args = predict.Files("*.jsonl")
	}
	if topic, ok := root.Sub["topic"]; ok {
		if topics, err := docs.GetAllTopics(); err == nil {
			topic.Args = predict.Set(topics)
		}
	}
	if asset, ok := root.Sub["asset"]; ok {
		asset.Flags["html"] = predict.Files("*.html")
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	preds := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			preds[f.Name] = predict.Nothing
			return
		}
		preds[f.Name] = predict.Something
	})
	return preds
}

// Known reports whether name is a command of c.
func Known(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
