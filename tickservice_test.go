package main

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/game-time/core/tick"
	"example.com/game-time/core/timeval"
)

func TestLoadConfig(t *testing.T) {
	raw := `
metrics_address = "127.0.0.1:9090"
rate = 0.5
poll_interval = "250ms"
run_for = "2s"
tick_frequencies = ["3 Hz", "441/10000000 Hz"]
`
	configFile := filepath.Join(t.TempDir(), "tickservice.toml")
	if err := os.WriteFile(configFile, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig(configFile)

	if cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Errorf("MetricsAddr == %q; want 127.0.0.1:9090", cfg.MetricsAddr)
	}
	if cfg.Rate != 0.5 {
		t.Errorf("Rate == %v; want 0.5", cfg.Rate)
	}
	if cfg.PollInterval != 250*timeval.Millisecond {
		t.Errorf("PollInterval == %v; want 250ms", cfg.PollInterval)
	}
	if cfg.RunFor != 2*timeval.Second {
		t.Errorf("RunFor == %v; want 2s", cfg.RunFor)
	}
	want := []tick.Frequency{tick.FromHz(3), tick.FromHz(44_100)}
	if len(cfg.TickFrequencies) != len(want) {
		t.Fatalf("got %d frequencies; want %d", len(cfg.TickFrequencies), len(want))
	}
	for i, f := range want {
		if cfg.TickFrequencies[i] != f {
			t.Errorf("frequency %d == %v; want %v", i, cfg.TickFrequencies[i], f)
		}
	}
}
