package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL == "" {
		t.Fatal("expected a default base URL")
	}
	if cfg.API.TimeoutSeconds != 12 {
		t.Fatalf("unexpected timeout: %d", cfg.API.TimeoutSeconds)
	}
	if cfg.API.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.API.MaxAttempts)
	}
	if cfg.Pricing.StandardRate != 15 || cfg.Pricing.PremiumRate != 25 {
		t.Fatalf("unexpected pricing: %+v", cfg.Pricing)
	}
	if cfg.Pricing.PremiumFrom != 5 || cfg.Pricing.PremiumTo != 8 {
		t.Fatalf("unexpected premium band: %+v", cfg.Pricing)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LUMIERE_API_BASE_URL", "http://localhost:8080/api")
	t.Setenv("LUMIERE_API_MAX_ATTEMPTS", "5")
	t.Setenv("LUMIERE_PRICING_PREMIUM_RATE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.MaxAttempts != 5 {
		t.Fatalf("unexpected max attempts: %d", cfg.API.MaxAttempts)
	}
	if cfg.Pricing.PremiumRate != 30 {
		t.Fatalf("unexpected premium rate: %v", cfg.Pricing.PremiumRate)
	}
}
