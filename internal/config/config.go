package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"horoscopefetcher/internal/astropredict"
	"horoscopefetcher/internal/fetcher"
	"horoscopefetcher/internal/keystore"
	"horoscopefetcher/internal/ratelimit"
)

// Config holds all configuration for the horoscope fetcher.
type Config struct {
	// RapidAPIKey is the configured default credential. It may be empty;
	// a key given on the command line or stored with "key set" takes
	// precedence.
	RapidAPIKey string `mapstructure:"rapidapi_key"`

	// Upstream endpoint (configurable for testing)
	RapidAPIHost     string `mapstructure:"rapidapi_host"`
	HoroscopeBaseURL string `mapstructure:"horoscope_base_url"`

	RequestDelay   time.Duration `mapstructure:"request_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// KeyFile is where "key set" persists the credential.
	KeyFile string `mapstructure:"key_file"`
}

// Load reads configuration from defaults, an optional config file,
// environment variables and command-line flags, in increasing precedence.
// flags may be nil.
//
// Recognized environment variables:
//   - RAPIDAPI_KEY
//   - RAPIDAPI_HOST (optional, defaults to the AstroPredict host)
//   - HOROSCOPE_BASE_URL (optional, defaults to production)
//   - REQUEST_DELAY (optional, e.g. "1500ms", at least 1s)
//   - REQUEST_TIMEOUT (optional, e.g. "10s")
//   - LOG_LEVEL (debug, info, warn, error)
//   - LOG_FILE (optional)
//   - HOROSCOPE_KEY_FILE (optional)
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("rapidapi_host", astropredict.DefaultHost)
	v.SetDefault("horoscope_base_url", astropredict.DefaultBaseURL)
	v.SetDefault("request_delay", ratelimit.MinInterval)
	v.SetDefault("request_timeout", fetcher.DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("key_file", keystore.DefaultPath())

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.horoscopes")

		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	v.BindEnv("rapidapi_key", "RAPIDAPI_KEY")
	v.BindEnv("rapidapi_host", "RAPIDAPI_HOST")
	v.BindEnv("horoscope_base_url", "HOROSCOPE_BASE_URL")
	v.BindEnv("request_delay", "REQUEST_DELAY")
	v.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_file", "LOG_FILE")
	v.BindEnv("key_file", "HOROSCOPE_KEY_FILE")

	if flags != nil {
		for key, name := range map[string]string{
			"log_level": "log-level",
			"log_file":  "log-file",
			"key_file":  "key-file",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.RapidAPIKey = strings.TrimSpace(config.RapidAPIKey)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	var problems []string

	if c.RequestDelay < ratelimit.MinInterval {
		problems = append(problems, fmt.Sprintf("REQUEST_DELAY must be at least %s, got %s", ratelimit.MinInterval, c.RequestDelay))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if strings.TrimSpace(c.HoroscopeBaseURL) == "" {
		problems = append(problems, "HOROSCOPE_BASE_URL must not be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ParseLogLevel converts a level name into a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
