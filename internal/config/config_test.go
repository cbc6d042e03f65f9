package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "seed: 1337\nstream_radius: 3\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 1337 {
		t.Errorf("seed = %d, want 1337", cfg.Seed)
	}
	if cfg.StreamRadius != 3 {
		t.Errorf("stream_radius = %d, want 3", cfg.StreamRadius)
	}
	// Untouched fields keep their defaults.
	if cfg.EvictVertical != Default().EvictVertical {
		t.Errorf("evict_vertical = %d, want default %d", cfg.EvictVertical, Default().EvictVertical)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "seed: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml was accepted")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing config file was accepted")
	}
}

func TestValidateCatchesInconsistencies(t *testing.T) {
	cases := []string{
		"stream_radius: 0\n",
		"stream_radius: 8\nevict_horizontal: 4\n",
		"evict_vertical: 0\n",
		"min_chunk_y: 2\nmax_chunk_y: -2\n",
	}
	for _, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("config %q was accepted", body)
		}
	}
}
