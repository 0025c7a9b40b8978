package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"SERVER_PORT" envDefault:"5050"`

		// Path to the SQLite database file
		DatabasePath string `env:"DATABASE_PATH" envDefault:"aequitas.db"`
	}

	// External lookups
	Lookups struct {
		// Timeout for FEMA flood zone queries (in seconds)
		FloodTimeout int `env:"FLOOD_LOOKUP_TIMEOUT" envDefault:"15"`

		// Timeout for Census geocoder queries (in seconds)
		GeocoderTimeout int `env:"GEOCODER_TIMEOUT" envDefault:"10"`
	}

	// Return model configuration
	Returns struct {
		// Ceiling on the leverage multiplier LTV/(1-LTV)
		LeverageCap float64 `env:"LEVERAGE_CAP" envDefault:"9.0"`

		// Annual cost of debt used when a deal has no loan rate (percent)
		DefaultCostOfDebt float64 `env:"DEFAULT_COST_OF_DEBT" envDefault:"6.5"`

		// Down payment used when a deal has no financing terms (percent)
		DefaultDownPayment float64 `env:"DEFAULT_DOWN_PAYMENT" envDefault:"25.0"`

		// Property value used when a deal has no purchase price
		DefaultPropertyValue float64 `env:"DEFAULT_PROPERTY_VALUE" envDefault:"200000"`

		// Monthly rent used when the hedonic model fails and the deal
		// has no observed rent
		FallbackMonthlyRent float64 `env:"FALLBACK_MONTHLY_RENT" envDefault:"1000"`
	}

	// Deal comparison limits
	Comparison struct {
		MinDeals int `env:"COMPARISON_MIN_DEALS" envDefault:"2"`
		MaxDeals int `env:"COMPARISON_MAX_DEALS" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
