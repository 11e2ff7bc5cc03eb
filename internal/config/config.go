// Package config resolves settings from flags, ESTATEBOOK_* environment
// variables and an optional estatebook.yaml, in that order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyDataFile  = "data_file"
	KeyExportDir = "export_dir"
	KeyLogLevel  = "log_level"
	KeyLogFile   = "log_file"

	FlagConfig = "config"

	envPrefix  = "estatebook"
	configName = "estatebook"
)

type Config struct {
	DataFile  string
	ExportDir string
	LogLevel  string
	LogFile   string
}

var defaults = map[string]string{
	KeyDataFile:  "estatebook.ldb",
	KeyExportDir: ".",
	KeyLogLevel:  "info",
	KeyLogFile:   "",
}

var usage = map[string]string{
	KeyDataFile:  "path of the database file",
	KeyExportDir: "directory export files are written to",
	KeyLogLevel:  "log level (debug, info, warn, error)",
	KeyLogFile:   "write logs to this file instead of stderr",
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// RegisterFlags adds one flag per setting, plus --config, to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path of a config file (default ./estatebook.yaml)")
	for _, key := range []string{KeyDataFile, KeyExportDir, KeyLogLevel, KeyLogFile} {
		fs.String(flagName(key), defaults[key], usage[key])
	}
}

// Load resolves the settings. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, def := range defaults {
		v.SetDefault(key, def)
	}

	explicit := ""
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil {
			explicit = f.Value.String()
		}

		for key := range defaults {
			if f := fs.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "could not bind flag %s", f.Name)
				}
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/estatebook")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "could not read config file")
		}
	}

	return Config{
		DataFile:  v.GetString(KeyDataFile),
		ExportDir: v.GetString(KeyExportDir),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFile:   v.GetString(KeyLogFile),
	}, nil
}
