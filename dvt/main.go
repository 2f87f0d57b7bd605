// Command dvt manages a dividend ledger and analyzes the income it records.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/dividends/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests, and exits, when invoked by the shell.
	cmd.Completion(flag.CommandLine).Complete("dvt")

	commander := subcommands.NewCommander(flag.CommandLine, "dvt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
