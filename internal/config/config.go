package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "GLMAPVIZ"

type Config struct {
	Host                 string     `mapstructure:"host" json:"host,omitempty"`
	Port                 int        `mapstructure:"port" json:"port,omitempty"`
	Debug                bool       `mapstructure:"debug" json:"debug,omitempty"`
	LogFile              string     `mapstructure:"log_file" json:"log_file,omitempty"`
	UseCache             bool       `mapstructure:"use_cache" json:"use_cache,omitempty"`
	CacheLocation        string     `mapstructure:"cache_location" json:"cache_location,omitempty"`
	CachePollingInterval int        `mapstructure:"cache_polling_interval" json:"cache_polling_interval,omitempty"`
	CacheMaxBytes        int64      `mapstructure:"cache_max_bytes" json:"cache_max_bytes,omitempty"`
	APMEnabled           bool       `mapstructure:"apm_enabled" json:"apm_enabled,omitempty"`
	LocationDetails      []Location `mapstructure:"location_details" json:"location_details,omitempty"`
}

// Location is a named place join data can be read from: a directory on
// local disk ("localFile") or a minio bucket ("minio").
type Location struct {
	LocationName   string `mapstructure:"location_name" json:"location_name"`
	LocationType   string `mapstructure:"location_type" json:"location_type"`
	Path           string `mapstructure:"path" json:"path,omitempty"`
	MinioBucket    string `mapstructure:"minio_bucket" json:"minio_bucket,omitempty"`
	Location       string `mapstructure:"location" json:"location,omitempty"`
	MinioAccessKey string `mapstructure:"minio_access_key" json:"-"`
	MinioSecretKey string `mapstructure:"minio_secret_key" json:"-"`
	MinioSecure    bool   `mapstructure:"minio_secure" json:"minio_secure,omitempty"`
}

// FindLocation returns the configured location called name.
func (c *Config) FindLocation(name string) (Location, error) {
	for _, l := range c.LocationDetails {
		if l.LocationName == name {
			return l, nil
		}
	}
	return Location{}, errors.Errorf("couldn't find location %s", name)
}

// SetupFlags registers the server flags on fs. Every flag except --config
// is also a config file key, with hyphens read as underscores.
func SetupFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Location of glmapviz config file (yaml or json)")
	fs.StringP("host", "i", "0.0.0.0", "Host where the server will run")
	fs.IntP("port", "p", 5055, "Port where the server will run")
	fs.BoolP("debug", "d", false, "Whether or not to enable debug logging")
	fs.String("log-file", "", "Also write logs to this file")
	fs.BoolP("use-cache", "u", true, "Cache remote data files locally")
	fs.StringP("cache-location", "C", "./glmapvizcache/", "Where the cache will be stored")
	fs.IntP("cache-polling-interval", "P", 60, "How often to check the cache (in seconds)")
	fs.Int64P("cache-max-bytes", "m", 100000000, "How large to allow the cache to be")
	fs.Bool("apm-enabled", false, "Trace requests with Elastic APM")
}

// Load builds a Config from, in decreasing precedence, flags set on the
// command line, GLMAPVIZ_* environment variables, the --config file, and
// flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, errors.Wrap(bindErr, "binding flags")
	}

	configFile, _ := fs.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

// NewLogger sets up the zap.Logger structured logger.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	outputs := []string{"stdout"}
	if cfg.LogFile != "" {
		outputs = append(outputs, cfg.LogFile)
	}
	return zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}.Build()
}
