package config

import (
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"STAGE":                    "prod",
		"PORT":                     "7171",
		"AI_SEED":                  "42",
		"SESSION_CLEANUP_INTERVAL": "5m",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Stage != StageProd || cfg.Port != 7171 {
		t.Fatalf("unexpected stage/port: %s %d", cfg.Stage, cfg.Port)
	}
	if cfg.AiSeed == nil || *cfg.AiSeed != 42 {
		t.Fatalf("expected seed 42 got: %v", cfg.AiSeed)
	}
	if cfg.SessionCleanupInterval != time.Minute*5 {
		t.Fatalf("expected cleanup interval 5m got: %s", cfg.SessionCleanupInterval)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stage != StageDev || cfg.Port != defaultPort || cfg.AiSeed != nil || cfg.DatabaseUrl != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "stage", env: map[string]string{"STAGE": "staging"}},
		{name: "port not a number", env: map[string]string{"PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "seed", env: map[string]string{"AI_SEED": "-1"}},
		{name: "interval", env: map[string]string{"SESSION_CLEANUP_INTERVAL": "soon"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := FromEnv(envOf(test.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
