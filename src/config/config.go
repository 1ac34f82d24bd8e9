// Package config loads dashboard settings from defaults, an optional bikedash.yaml, a .env
// file, BIKEDASH_* environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BIKEDASH_DATA_DIR.
const EnvPrefix = "BIKEDASH"

type Config struct {
	Data        DataConfig        `mapstructure:"data"`
	Log         LogConfig         `mapstructure:"log"`
	Chart       ChartConfig       `mapstructure:"chart"`
	Server      ServerConfig      `mapstructure:"server"`
	Screenshots ScreenshotsConfig `mapstructure:"screenshots"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ChartConfig sizes rendered images. Height 0 derives it from Width.
type ChartConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	WeatherAgg string `mapstructure:"weather_agg"`
	Hints      bool   `mapstructure:"hints"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type ScreenshotsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Options control where Load looks for files. Zero values use the working directory.
type Options struct {
	ConfigFile string   // explicit YAML path; missing file is an error
	EnvFile    string   // defaults to .env; missing file is ignored
	Flags      *pflag.FlagSet
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":        "data.dir",
	"log-level":       "log.level",
	"width":           "chart.width",
	"height":          "chart.height",
	"weather-agg":     "chart.weather_agg",
	"hints":           "chart.hints",
	"addr":            "server.addr",
	"read-timeout":    "server.read_timeout",
	"write-timeout":   "server.write_timeout",
	"screenshots-dir": "screenshots.dir",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data")
	v.SetDefault("log.level", "info")
	v.SetDefault("chart.width", 1100)
	v.SetDefault("chart.height", 0)
	v.SetDefault("chart.weather_agg", "mean")
	v.SetDefault("chart.hints", false)
	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("screenshots.dir", "screenshots")
}

// RegisterFlags adds the shared flags to fs. Only flags the caller sets override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a bikedash.yaml config file")
	fs.String("data-dir", "data", "Directory containing day.csv and hour.csv (env: BIKEDASH_DATA_DIR)")
	fs.String("log-level", "info", "Log level: debug, info, warn, error (env: BIKEDASH_LOG_LEVEL)")
	fs.Int("width", 1100, "Chart width in pixels (env: BIKEDASH_CHART_WIDTH)")
	fs.Int("height", 0, "Chart height in pixels, 0 derives it from width (env: BIKEDASH_CHART_HEIGHT)")
	fs.String("weather-agg", "mean", "Weather chart aggregation: mean or sum (env: BIKEDASH_CHART_WEATHER_AGG)")
	fs.Bool("hints", false, "Draw hint overlays into charts (env: BIKEDASH_CHART_HINTS)")
	fs.String("addr", ":8501", "Web dashboard listen address (env: BIKEDASH_SERVER_ADDR)")
	fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout (env: BIKEDASH_SERVER_READ_TIMEOUT)")
	fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout (env: BIKEDASH_SERVER_WRITE_TIMEOUT)")
	fs.String("screenshots-dir", "screenshots", "Output directory for headless PNG export (env: BIKEDASH_SCREENSHOTS_DIR)")
}

// Load resolves the layered configuration and validates it.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	cfgFile := opts.ConfigFile
	if cfgFile == "" && opts.Flags != nil {
		if f := opts.Flags.Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("bikedash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Chart.Width <= 0 {
		return fmt.Errorf("chart.width must be positive, got %d", c.Chart.Width)
	}
	if c.Chart.Height < 0 {
		return fmt.Errorf("chart.height must not be negative, got %d", c.Chart.Height)
	}
	switch c.Chart.WeatherAgg {
	case "mean", "sum":
	default:
		return fmt.Errorf("chart.weather_agg must be mean or sum, got %q", c.Chart.WeatherAgg)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}
