package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/assets/docs"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show the assetctl documentation" }
func (*topicCmd) Usage() string {
	return `assetctl topic [-list] [<topic>...]

  Shows the documentation of each <topic>, or the readme with the list of
  topics. "*" shows all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "print the topic names only")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := c.document(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		fmt.Print(doc)
		return subcommands.ExitSuccess
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// document returns what topic prints for the given arguments.
func (c *topicCmd) document(topics []string) (string, error) {
	if c.list {
		all, err := docs.GetAllTopics()
		if err != nil {
			return "", err
		}
		return strings.Join(all, "\n") + "\n", nil
	}
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	return docs.GetTopics(topics...)
}
