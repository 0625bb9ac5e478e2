package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "API_PORT", "PORT", "CORS_ALLOW_ORIGINS", "BACKUP_INTERVAL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("StoreDriver got %q want %q", cfg.StoreDriver, DriverSQLite)
	}
	if cfg.SQLitePath != "data/scout.db" {
		t.Errorf("SQLitePath got %q", cfg.SQLitePath)
	}
	if cfg.APIPort != 8000 {
		t.Errorf("APIPort got %d want 8000", cfg.APIPort)
	}
	if cfg.BackupInterval != 30*time.Minute {
		t.Errorf("BackupInterval got %v want 30m", cfg.BackupInterval)
	}
	if len(cfg.CORSAllowOrigins) != 3 {
		t.Errorf("CORSAllowOrigins got %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadDrivers(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		url     string
		wantErr bool
	}{
		{"memory", "memory", "", false},
		{"upper case", "SQLITE", "", false},
		{"postgres with url", "postgres", "postgres://localhost/scout", false},
		{"postgres without url", "postgres", "", true},
		{"unknown", "mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", tt.driver)
			t.Setenv("DATABASE_URL", tt.url)
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error got %v wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SCOUT_TEST_INT", "not-a-number")
	if got := envInt("SCOUT_TEST_INT", 7); got != 7 {
		t.Errorf("envInt fallback got %d want 7", got)
	}

	t.Setenv("SCOUT_TEST_BOOL", "true")
	if got := envBool("SCOUT_TEST_BOOL", false); !got {
		t.Errorf("envBool got false want true")
	}

	t.Setenv("SCOUT_TEST_LIST", " a, ,b ,")
	if got := envList("SCOUT_TEST_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("envList got %v want [a b]", got)
	}

	t.Setenv("SCOUT_TEST_LIST", " , ")
	if got := envList("SCOUT_TEST_LIST", []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("envList fallback got %v want [x]", got)
	}
}
