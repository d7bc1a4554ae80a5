// Package config loads ExpertMaker settings from defaults, an optional
// config file, and EXPERTMAKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/expertmaker/internal/rank"
)

// EnvPrefix is prepended to every environment variable, e.g. EXPERTMAKER_DB.
const EnvPrefix = "EXPERTMAKER"

// Config holds all application settings.
type Config struct {
	// DB is the SQLite database path. Empty means the XDG default.
	DB       string     `mapstructure:"db"`
	LogLevel string     `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Rank     RankConfig `mapstructure:"rank"`
	// Strict rejects unknown topic IDs at plan generation.
	Strict bool `mapstructure:"strict"`
}

// RankConfig seeds the rank rules used until the learner stores their own.
type RankConfig struct {
	PointsPerStripe int `mapstructure:"points_per_stripe" validate:"gt=0"`
	StripesPerBelt  int `mapstructure:"stripes_per_belt" validate:"gt=0"`
	PassPoints      int `mapstructure:"pass_points" validate:"gte=0"`
	FailPoints      int `mapstructure:"fail_points" validate:"gte=0"`
	PassScore       int `mapstructure:"pass_score" validate:"gte=0,lte=100"`
}

// Rules converts the settings into rank engine rules.
func (r RankConfig) Rules() rank.Config {
	return rank.Config{
		PointsPerStripe: r.PointsPerStripe,
		StripesPerBelt:  r.StripesPerBelt,
		PassPoints:      r.PassPoints,
		FailPoints:      r.FailPoints,
		PassScore:       r.PassScore,
	}
}

func setDefaults(v *viper.Viper) {
	d := rank.DefaultConfig()
	v.SetDefault("db", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("strict", false)
	v.SetDefault("rank.points_per_stripe", d.PointsPerStripe)
	v.SetDefault("rank.stripes_per_belt", d.StripesPerBelt)
	v.SetDefault("rank.pass_points", d.PassPoints)
	v.SetDefault("rank.fail_points", d.FailPoints)
	v.SetDefault("rank.pass_score", d.PassScore)
}

// Load reads configuration. If file is empty the default location
// ($XDG_CONFIG_HOME/expertmaker/config.yaml) is tried and may be absent.
// Environment variables override file values.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := file != ""
	if !explicit {
		if dir, err := configDir(); err == nil {
			file = filepath.Join(dir, "config.yaml")
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "expertmaker"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "expertmaker"), nil
}
