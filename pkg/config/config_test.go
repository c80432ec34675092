package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, env := range []string{EnvSnapshotPath, EnvResultsDB, EnvListen, EnvTimezone} {
		t.Setenv(env, "")
	}
	return dir
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	c, err := LoadConfig(filepath.Join(dir, "nope", "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	wantStorage := filepath.Join(dir, "data", "hoi")
	if c.StorageDir != wantStorage {
		t.Fatalf("storage dir = %q, want %q", c.StorageDir, wantStorage)
	}
	if c.SnapshotPath != filepath.Join(wantStorage, "snapshot.json.zst") {
		t.Fatalf("snapshot path = %q", c.SnapshotPath)
	}
	if c.ResultsDB != filepath.Join(wantStorage, "results.db") {
		t.Fatalf("results db = %q", c.ResultsDB)
	}
	if c.ResultTTL.Duration != DefaultResultTTL {
		t.Fatalf("ttl = %v", c.ResultTTL)
	}
	if c.Server.Listen != DefaultListen || c.Server.PageSize != DefaultPageSize {
		t.Fatalf("server = %+v", c.Server)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	data := `
storage_dir = "/srv/hoi"
result_ttl = "90m"
timezone = "Asia/Ho_Chi_Minh"

[server]
listen = ":9000"
page_size = 20

[index]
root = "/srv/drive"
exclude = [".git", "*.tmp"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.StorageDir != "/srv/hoi" || c.SnapshotPath != "/srv/hoi/snapshot.json.zst" {
		t.Fatalf("paths = %q %q", c.StorageDir, c.SnapshotPath)
	}
	if c.ResultTTL.Duration != 90*time.Minute {
		t.Fatalf("ttl = %v", c.ResultTTL)
	}
	if c.Server.Listen != ":9000" || c.Server.PageSize != 20 {
		t.Fatalf("server = %+v", c.Server)
	}
	if c.Index.Root != "/srv/drive" || len(c.Index.Exclude) != 2 {
		t.Fatalf("index = %+v", c.Index)
	}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "Asia/Ho_Chi_Minh" {
		t.Fatalf("location = %v", loc)
	}
}

func TestDotEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`[server]
listen = "localhost:1"
`), 0644); err != nil {
		t.Fatal(err)
	}
	env := EnvListen + "=0.0.0.0:7000\n" + EnvSnapshotPath + "=/tmp/snap.json\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set.
	os.Unsetenv(EnvListen)
	os.Unsetenv(EnvSnapshotPath)
	t.Cleanup(func() {
		os.Unsetenv(EnvListen)
		os.Unsetenv(EnvSnapshotPath)
	})

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Server.Listen != "0.0.0.0:7000" {
		t.Fatalf("listen = %q", c.Server.Listen)
	}
	if c.SnapshotPath != "/tmp/snap.json" {
		t.Fatalf("snapshot path = %q", c.SnapshotPath)
	}
}

func TestInvalidTimezone(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`timezone = "Mars/Olympus"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	dir := isolate(t)
	c := &Config{StorageDir: "/var/lib/hoi"}
	path := filepath.Join(dir, "out", "config.toml")

	if err := c.SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.StorageDir != "/var/lib/hoi" {
		t.Fatalf("storage dir = %q", loaded.StorageDir)
	}
	if loaded.SnapshotPath != "/var/lib/hoi/snapshot.json.zst" {
		t.Fatalf("snapshot path = %q", loaded.SnapshotPath)
	}
	if len(loaded.Index.Exclude) != 3 {
		t.Fatalf("exclude = %v", loaded.Index.Exclude)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("2h30m")); err != nil {
		t.Fatal(err)
	}
	out, _ := d.MarshalText()
	if string(out) != "2h30m0s" {
		t.Fatalf("marshal = %q", out)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Fatal("expected parse error")
	}
}
