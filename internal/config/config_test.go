package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "judge.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"
port = 8081

[languages]
enabled = true
temp_dir = "/tmp/judge"
test_cases_dir = "./testcases"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.MaxThreads != defaultMaxThreads {
		t.Errorf("MaxThreads = %d, want default %d", cfg.Server.MaxThreads, defaultMaxThreads)
	}
	if cfg.Server.MaxQueue != 0 {
		t.Errorf("MaxQueue = %d, want 0", cfg.Server.MaxQueue)
	}
	if cfg.Addr() != "0.0.0.0:8081" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8081", cfg.Addr())
	}
}

func TestLoadMissingPortFails(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"

[languages]
enabled = false
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with no port should fail validation")
	}
}

func TestLoadMissingLanguageDirsFailsWhenEnabled(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8081

[languages]
enabled = true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with enabled languages but no dirs should fail validation")
	}
}

func TestLoadDisabledLanguagesSkipsDirValidation(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8081

[languages]
enabled = false
`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() should succeed when languages disabled: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Load() on missing file should fail")
	}
}
