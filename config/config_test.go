package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerPort != "3000" || cfg.APIURL != "http://localhost:8080/api" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ChapterTimeout != 10*time.Second || cfg.DBPort != 5432 || cfg.StorageDriver != "postgres" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CATALOG_TTL_MINUTES", "5")
	t.Setenv("DB_PORT", "6543")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StorageDriver != "memory" || cfg.CatalogTTL != 5*time.Minute || cfg.DBPort != 6543 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"bad driver", map[string]string{"JWT_SECRET": "x", "STORAGE_DRIVER": "mongo"}},
		{"bad number", map[string]string{"JWT_SECRET": "x", "CHAPTER_TIMEOUT_SECONDS": "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
