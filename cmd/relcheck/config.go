package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings of a relcheck run. Values are layered: defaults,
// then the YAML config file, then RELCHECK_* environment variables, then flags.
type Config struct {
	// File is the config file the settings were read from, if any.
	File              string `mapstructure:"config"`
	Model             string `mapstructure:"model"`
	Dialect           string `mapstructure:"dialect"`
	CollectAll        bool   `mapstructure:"collect_all"`
	Concurrency       int    `mapstructure:"concurrency"`
	StrictInheritance bool   `mapstructure:"strict_inheritance"`
	NoAdvisories      bool   `mapstructure:"no_advisories"`
	DBDriver          string `mapstructure:"db_driver"`
	DSN               string `mapstructure:"dsn"`
	Watch             bool   `mapstructure:"watch"`
	LogFormat         string `mapstructure:"log_format"`
	LogLevel          string `mapstructure:"log_level"`
	Snapshot          string `mapstructure:"snapshot"`
}

// errUsage reports invalid command line or configuration input.
var errUsage = errors.New("usage error")

// defaults registers every config key, so that environment variables are
// seen by Unmarshal even when the key is not in the config file.
var defaults = map[string]any{
	"config":             "",
	"model":              "",
	"dialect":            "",
	"collect_all":        false,
	"concurrency":        0,
	"strict_inheritance": false,
	"no_advisories":      false,
	"db_driver":          "",
	"dsn":                "",
	"watch":              false,
	"log_format":         "text",
	"log_level":          "info",
	"snapshot":           "",
}

// flagKeys maps flag names whose config key is not the flag name with
// dashes replaced by underscores.
var flagKeys = map[string]string{
	"all": "collect_all",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("relcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: relcheck --model FILE [flags]")
		fs.PrintDefaults()
	}
	fs.String("config", "", "path to a YAML config file (or RELCHECK_CONFIG)")
	fs.String("model", "", "model description file (.yaml, .json, .msgpack)")
	fs.String("dialect", "", "database dialect overriding the model's (mysql, sqlite3, postgres)")
	fs.Bool("all", false, "report every fatal diagnostic instead of the first")
	fs.Int("concurrency", 0, "table groups validated in parallel with --all (0 means GOMAXPROCS)")
	fs.Bool("strict-inheritance", false, "require derived types to share their root's table")
	fs.Bool("no-advisories", false, "skip advisory checks")
	fs.String("db-driver", "", "dialect of the database to inspect for drift")
	fs.String("dsn", "", "data source name of the database to inspect for drift")
	fs.Bool("watch", false, "re-validate when the model file changes")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("snapshot", "", "write a msgpack snapshot of the model to this file")
	return fs
}

// parseConfig builds the run configuration from args, the environment and
// the config file. Flags only override the layers below when set explicitly.
func parseConfig(args []string, stderr io.Writer) (Config, error) {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix("RELCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		err = errors.Join(err, v.BindPFlag(key, f))
	})
	if err != nil {
		return Config{}, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read config: %w", errUsage, err)
		}
	}
	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Model == "":
		return fmt.Errorf("%w: --model is required", errUsage)
	case c.DSN != "" && c.DBDriver == "":
		return fmt.Errorf("%w: --dsn requires --db-driver", errUsage)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: --concurrency must not be negative", errUsage)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: unknown log format %q", errUsage, c.LogFormat)
	}
	return nil
}
