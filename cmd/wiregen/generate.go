package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vuuvv/wiregen"
)

type generateCmd struct {
	quiet bool
}

func init() {
	subcommandList = append(subcommandList, &generateCmd{})
}

func (*generateCmd) Name() string { return "generate" }

func (*generateCmd) Synopsis() string {
	return "Compiles the schema sources and writes the generated packages."
}

func (*generateCmd) Usage() string {
	return "wiregen [-config wiregen.yaml] generate [-quiet]\n"
}

func (cmd *generateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.quiet, "quiet", false, "do not list written and removed files")
}

func (cmd *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	report, err := wiregen.Generate(cfg)
	if err != nil {
		return fail(err)
	}
	if !cmd.quiet {
		for _, p := range report.Written {
			fmt.Println("write ", p)
		}
		for _, p := range report.Removed {
			fmt.Println("remove", p)
		}
	}
	return subcommands.ExitSuccess
}
