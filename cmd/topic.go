package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/accounts/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show the trading desk documentation" }
func (*topicCmd) Usage() string {
	return `acct topic [-list] [<topic>...]

  Show documentation for the given topics, the overview otherwise.
  '*' shows all of them, -list only their names.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the topics instead of showing them.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := topicMarkdown(c.list, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicMarkdown returns the documentation of topics, or their list.
func topicMarkdown(list bool, topics []string) (string, error) {
	if !list {
		if len(topics) == 0 {
			topics = []string{"readme"}
		}
		return docs.GetTopics(topics...)
	}

	all, err := docs.GetAllTopics()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Topics\n\n")
	for _, topic := range all {
		fmt.Fprintf(&b, "- %s: `acct topic %s`\n", topic, topic)
	}
	return b.String(), nil
}
