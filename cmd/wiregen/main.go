package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/vuuvv/wiregen"
	"github.com/vuuvv/wiregen/log"
	"github.com/vuuvv/wiregen/utils"
	"go.uber.org/zap"
)

var (
	configPath     string
	level          string
	trace          bool
	subcommandList []subcommands.Command
)

func init() {
	flag.StringVar(&configPath, "config", "wiregen.yaml", "path of the YAML or TOML config")
	flag.StringVar(&level, "level", "", "log level, overrides log.level of the config")
	flag.BoolVar(&trace, "trace", false, "log every schema tag transition")

	subcommandList = append(subcommandList,
		subcommands.HelpCommand(),
		subcommands.FlagsCommand(),
	)
}

// loadConfig reads the config and installs its logger, flags win over the file.
func loadConfig() (*wiregen.Config, error) {
	cfg, err := wiregen.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if trace {
		cfg.Trace = true
		if cfg.Log.Level == "" {
			cfg.Log.Level = "debug"
		}
	}
	if err = wiregen.Setup(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fail(err error) subcommands.ExitStatus {
	log.Error(err, zap.String("config", configPath))
	return subcommands.ExitFailure
}

func main() {
	for _, cmd := range subcommandList {
		subcommands.Register(cmd, "")
	}

	flag.Parse()
	os.Exit(int(execute()))
}

func execute() (status subcommands.ExitStatus) {
	defer log.Sync()
	defer utils.Catch(func(any) {
		status = subcommands.ExitFailure
	})
	return subcommands.Execute(context.Background())
}
