package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig
	Log     LogConfig
	Pricing PricingConfig
}

type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	MaxAttempts    int
}

type LogConfig struct {
	Path  string
	Debug bool
}

// PricingConfig is the seat pricing policy. The premium band and both rates are
// placeholder business rules observed in the current service, so they live in
// configuration rather than code.
type PricingConfig struct {
	StandardRate float64
	PremiumRate  float64
	PremiumFrom  int
	PremiumTo    int
}

// Load reads configuration from an optional lumiere.yaml in the working
// directory plus LUMIERE_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("lumiere")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("api.base_url", "https://seat-reservation-assessment-v1.onrender.com/api")
	v.SetDefault("api.timeout_seconds", 12)
	v.SetDefault("api.max_attempts", 3)
	v.SetDefault("log.path", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("pricing.standard_rate", 15)
	v.SetDefault("pricing.premium_rate", 25)
	v.SetDefault("pricing.premium_from", 5)
	v.SetDefault("pricing.premium_to", 8)

	v.SetEnvPrefix("LUMIERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config := &Config{
		API: APIConfig{
			BaseURL:        v.GetString("api.base_url"),
			TimeoutSeconds: v.GetInt("api.timeout_seconds"),
			MaxAttempts:    v.GetInt("api.max_attempts"),
		},
		Log: LogConfig{
			Path:  v.GetString("log.path"),
			Debug: v.GetBool("log.debug"),
		},
		Pricing: PricingConfig{
			StandardRate: v.GetFloat64("pricing.standard_rate"),
			PremiumRate:  v.GetFloat64("pricing.premium_rate"),
			PremiumFrom:  v.GetInt("pricing.premium_from"),
			PremiumTo:    v.GetInt("pricing.premium_to"),
		},
	}
	return config, nil
}
