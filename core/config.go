package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vuuvv/errors"
	"gopkg.in/yaml.v3"
)

const DefaultRuntime = "github.com/vuuvv/wiregen/wire"

type FilterConfig struct {
	Types []string `yaml:"types" toml:"types"` // 按名称选择
	Expr  string   `yaml:"expr" toml:"expr"`   // CEL 表达式
}

func (f FilterConfig) IsZero() bool {
	return len(f.Types) == 0 && f.Expr == ""
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

type Config struct {
	Sources []string     `yaml:"sources" toml:"sources"` // 第一个为基础协议, 其余为覆盖
	Output  string       `yaml:"output" toml:"output"`
	Package string       `yaml:"package" toml:"package"` // output 目录的 import path
	Runtime string       `yaml:"runtime" toml:"runtime"`
	Trace   bool         `yaml:"trace" toml:"trace"`
	Filter  FilterConfig `yaml:"filter" toml:"filter"`
	Log     LogConfig    `yaml:"log" toml:"log"`
}

// LoadConfig reads a YAML or TOML config chosen by file extension. Relative
// source and output paths are resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	default:
		return nil, errors.Errorf("unsupported config format: %s", path)
	}

	dir := filepath.Dir(path)
	for i, src := range cfg.Sources {
		if !filepath.IsAbs(src) {
			cfg.Sources[i] = filepath.Join(dir, src)
		}
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}

	if err = cfg.Setup(); err != nil {
		return nil, errors.WithStack(err)
	}
	return cfg, nil
}

// Setup fills defaults and validates the config.
func (this *Config) Setup() error {
	if len(this.Sources) == 0 {
		return errors.New("config: at least one source is required")
	}
	if this.Package == "" {
		return errors.New("config: package is required")
	}
	if this.Runtime == "" {
		this.Runtime = DefaultRuntime
	}
	if this.Output == "" {
		this.Output = "."
	}
	return nil
}
