package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("SALON_AUTH_SECRET", "")
	t.Setenv("SALON_MANAGER_PIN", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty SALON_AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
	if cfg.ManagerPIN != "" {
		t.Fatalf("expected empty SALON_MANAGER_PIN when unset, got %q", cfg.ManagerPIN)
	}
}

func TestLoadFallsBackToDefaultTaxRate(t *testing.T) {
	t.Setenv("SALON_TAX_RATE", "")

	cfg := Load()
	if cfg.TaxRate != 0.08 {
		t.Fatalf("expected default tax rate 0.08, got %v", cfg.TaxRate)
	}

	t.Setenv("SALON_TAX_RATE", "not-a-rate")
	cfg = Load()
	if cfg.TaxRate != 0.08 {
		t.Fatalf("expected default tax rate 0.08 for invalid value, got %v", cfg.TaxRate)
	}

	t.Setenv("SALON_TAX_RATE", "0.095")
	cfg = Load()
	if cfg.TaxRate != 0.095 {
		t.Fatalf("expected tax rate 0.095, got %v", cfg.TaxRate)
	}
}
