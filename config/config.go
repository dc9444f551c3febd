package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath        = "data-path"
	ConfigLexiconManifest = "lexicon-manifest"
	ConfigDefaultLanguage = "default-language"
	ConfigMaxWords        = "max-words"
	ConfigDebug           = "debug"
	ConfigLogLevel        = "log-level"
	ConfigNatsURL         = "nats-url"
	ConfigSolverSubject   = "solver-subject"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigCPUProfile      = "cpu-profile"
	ConfigMemProfile      = "mem-profile"
)

const envPrefix = "HANGMAN"

// Config wraps a viper instance. Values come from (in increasing priority)
// defaults, an optional config.yaml, HANGMAN_* environment variables and
// command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigLexiconManifest, "")
	v.SetDefault(ConfigDefaultLanguage, "de")
	v.SetDefault(ConfigMaxWords, 10)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigNatsURL, "nats://127.0.0.1:4222")
	v.SetDefault(ConfigSolverSubject, "hangman.solve")
	v.SetDefault(ConfigAutoplayThreads, 4)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a config holding only default values. It does not
// look at the environment or the command line; tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hangman", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data", "directory holding the lexica")
	fs.String(ConfigLexiconManifest, "", "YAML manifest listing the available languages")
	fs.String(ConfigDefaultLanguage, "de", "language used when none is given")
	fs.Int(ConfigMaxWords, 10, "maximum number of candidate words to return")
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigLogLevel, "info", "log level when debug is off")
	fs.String(ConfigNatsURL, "nats://127.0.0.1:4222", "address of the NATS server")
	fs.String(ConfigSolverSubject, "hangman.solve", "NATS subject the solver service listens on")
	fs.Int(ConfigAutoplayThreads, 4, "number of goroutines used by autoplay")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file on exit")
	return fs
}

// Load parses args and the environment. Arguments that are not flags are
// kept and returned by Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if home, err := os.UserConfigDir(); err == nil {
		c.AddConfigPath(filepath.Join(home, "hangman"))
	}
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Debug().Msg("no-config-file-found")
	}
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths resolves relative file paths against basePath when
// they do not exist relative to the working directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigLexiconManifest} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		adjusted := filepath.Join(basePath, p)
		log.Debug().Str("key", key).Str("path", adjusted).Msg("adjusted-path")
		c.Set(key, adjusted)
	}
}

// SanitizedSettings returns all settings with credentials stripped from the
// NATS URL, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if u, ok := settings[ConfigNatsURL].(string); ok {
		if at := strings.LastIndex(u, "@"); at != -1 {
			scheme := ""
			if i := strings.Index(u, "://"); i != -1 && i < at {
				scheme = u[:i+3]
			}
			settings[ConfigNatsURL] = scheme + "****" + u[at:]
		}
	}
	return settings
}
