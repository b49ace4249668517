// Package config centralizes every tunable behind viper keys.
// Values resolve in the usual order: flag > environment (TAGDRAW_*) >
// config file > default. A .env file is folded into the environment first.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Version is the tagdraw release version, also embedded in the default
// User-Agent so the API operator can identify the client.
const Version = "0.3.0"

// Keys for every setting. The sampling policy values are empirical tuning
// inherited from long use against the live API; they are exposed as settings
// rather than hardcoded, but the defaults are the known-good numbers.
var (
	KeyCollectorMode    = "collector.mode"
	KeyAPIBase          = "api.base"
	KeyAPIUserAgent     = "api.user_agent"
	KeyAPILogin         = "api.login"
	KeyAPIKey           = "api.key"
	KeyAPITimeout       = "api.timeout"
	KeyAPIRateInterval  = "api.rate_interval"
	KeyAPIPageLimit     = "api.page_limit"
	KeyMaxRequests      = "sampler.max_requests"
	KeyOversampleFactor = "sampler.oversample_factor"
	KeyOversampleBase   = "sampler.oversample_base"
	KeyLogFile          = "log.file"
)

// ApplyDefaults registers the default for every key. Safe to call more than
// once; viper keeps the last registration.
func ApplyDefaults() {
	viper.SetDefault(KeyCollectorMode, "danbooru")
	viper.SetDefault(KeyAPIBase, "https://danbooru.donmai.us")
	viper.SetDefault(KeyAPIUserAgent, "tagdraw/"+Version)
	viper.SetDefault(KeyAPILogin, "")
	viper.SetDefault(KeyAPIKey, "")
	viper.SetDefault(KeyAPITimeout, 15*time.Second)
	viper.SetDefault(KeyAPIRateInterval, time.Second)
	viper.SetDefault(KeyAPIPageLimit, 100)
	viper.SetDefault(KeyMaxRequests, 10)
	viper.SetDefault(KeyOversampleFactor, 3)
	viper.SetDefault(KeyOversampleBase, 20)
	viper.SetDefault(KeyLogFile, "")
}

// Load wires defaults, .env, TAGDRAW_* environment overrides and the
// optional config file into viper. Call once at startup before anything
// reads settings. cfgFile == "" searches $PWD and $HOME for .tagdraw.yaml.
func Load(cfgFile string) error {
	ApplyDefaults()

	// .env is a convenience for credentials; absence is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("tagdraw")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".tagdraw")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found is fine; a broken or explicitly named
		// missing one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func CollectorMode() string { return viper.GetString(KeyCollectorMode) }

func APIBase() string { return viper.GetString(KeyAPIBase) }

func UserAgent() string { return viper.GetString(KeyAPIUserAgent) }

// Credentials returns the optional API login and key. Both empty means
// anonymous access, which the API allows at a lower rate ceiling.
func Credentials() (login, key string) {
	return viper.GetString(KeyAPILogin), viper.GetString(KeyAPIKey)
}

func APITimeout() time.Duration { return viper.GetDuration(KeyAPITimeout) }

func RateInterval() time.Duration { return viper.GetDuration(KeyAPIRateInterval) }

func PageLimit() int { return viper.GetInt(KeyAPIPageLimit) }

func MaxRequests() int { return viper.GetInt(KeyMaxRequests) }

func OversampleFactor() int { return viper.GetInt(KeyOversampleFactor) }

func OversampleBase() int { return viper.GetInt(KeyOversampleBase) }

func LogFile() string { return viper.GetString(KeyLogFile) }
