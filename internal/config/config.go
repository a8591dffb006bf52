package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/balkashynov/vaga/internal/models"
)

// Config is everything vaga reads from ~/.vaga/config.yaml, with
// VAGA_* environment overrides (VAGA_API_URL, VAGA_LOT_CAR_CAPACITY, ...).
type Config struct {
	APIURL string `mapstructure:"api_url"`

	Lot struct {
		CarCapacity  int     `mapstructure:"car_capacity"`
		MotoCapacity int     `mapstructure:"moto_capacity"`
		HourlyRate   float64 `mapstructure:"hourly_rate"`
	} `mapstructure:"lot"`

	RefreshSeconds int    `mapstructure:"refresh_seconds"`
	LogLevel       string `mapstructure:"log_level"`
}

// Dir returns the vaga data directory (~/.vaga), creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".vaga")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads configuration from dir/config.yaml. A missing file is
// fine: defaults plus environment cover everything.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("api_url", "https://estacionamentoapi2025.vercel.app")
	v.SetDefault("lot.car_capacity", 10)
	v.SetDefault("lot.moto_capacity", 5)
	v.SetDefault("lot.hourly_rate", 10.0)
	v.SetDefault("refresh_seconds", 30)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("VAGA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// LotConfig returns the configured capacities and current rate.
func (c Config) LotConfig() models.LotConfig {
	return models.LotConfig{
		CarCapacity:  c.Lot.CarCapacity,
		MotoCapacity: c.Lot.MotoCapacity,
		HourlyRate:   c.Lot.HourlyRate,
	}
}
