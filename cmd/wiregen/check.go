package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vuuvv/wiregen"
)

type checkCmd struct{}

func init() {
	subcommandList = append(subcommandList, &checkCmd{})
}

func (*checkCmd) Name() string { return "check" }

func (*checkCmd) Synopsis() string {
	return "Fails when the generated packages on disk are out of date."
}

func (*checkCmd) Usage() string {
	return "wiregen [-config wiregen.yaml] check\n"
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	report, err := wiregen.Check(cfg)
	if err != nil {
		return fail(err)
	}
	if report.Clean() {
		return subcommands.ExitSuccess
	}
	for _, p := range report.Written {
		fmt.Println("stale ", p)
	}
	for _, p := range report.Removed {
		fmt.Println("extra ", p)
	}
	return subcommands.ExitFailure
}
