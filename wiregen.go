package wiregen

import (
	"github.com/google/uuid"
	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/builder"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/emit"
	"github.com/vuuvv/wiregen/filter"
	"github.com/vuuvv/wiregen/log"
	"github.com/vuuvv/wiregen/output"
	"github.com/vuuvv/wiregen/resolve"
	"github.com/vuuvv/wiregen/tags"
	"go.uber.org/zap"
)

type Config = core.Config
type Report = output.Report
type Source = builder.Source

var LoadConfig = core.LoadConfig

// Setup installs the logger and registers the tag processors.
func Setup(cfg core.LogConfig) error {
	logger, err := log.New(cfg.Level, cfg.Development)
	if err != nil {
		return errors.WithStack(err)
	}
	log.SetLogger(logger)
	tags.Register()
	return nil
}

// Compile runs the whole pipeline in memory.
func Compile(cfg *Config, sources []Source) (*core.GeneratedCode, error) {
	schema, err := builder.Build(sources, builder.Options{Trace: cfg.Trace})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if schema, err = filter.Select(schema, cfg.Filter); err != nil {
		return nil, err
	}
	model, err := resolve.Build(schema)
	if err != nil {
		return nil, err
	}
	log.Info("schema resolved",
		zap.Int("types", len(schema.Types)),
		zap.Int("enums", len(schema.Enums)),
		zap.Int("structs", len(model.Structs)))
	return emit.Generate(model, emit.Options{Package: cfg.Package, Runtime: cfg.Runtime})
}

// Generate compiles the configured sources and writes the output directory.
func Generate(cfg *Config) (*Report, error) {
	return run(cfg, output.Write)
}

// Check compiles the configured sources and reports what Generate would
// change. The output directory is left alone.
func Check(cfg *Config) (*Report, error) {
	return run(cfg, output.Check)
}

func run(cfg *Config, apply func(*core.GeneratedCode, string) (*output.Report, error)) (*Report, error) {
	if err := cfg.Setup(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger := log.Logger().With(zap.String("run", runID))
	logger.Info("generation started", zap.Int("sources", len(cfg.Sources)), zap.String("output", cfg.Output))

	sources, err := builder.LoadSources(cfg.Sources)
	if err != nil {
		return nil, err
	}
	code, err := Compile(cfg, sources)
	if err != nil {
		return nil, err
	}
	report, err := apply(code, cfg.Output)
	if err != nil {
		return nil, err
	}
	logger.Info("generation finished",
		zap.Int("files", len(code.Files)),
		zap.Int("written", len(report.Written)),
		zap.Int("unchanged", len(report.Unchanged)),
		zap.Int("removed", len(report.Removed)))
	return report, nil
}
