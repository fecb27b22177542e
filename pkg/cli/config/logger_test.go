package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hoard/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name  string
		level string
		json  bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: error", level: "error"},
		{name: "Unknown level falls back to info", level: "trace"},
		{name: "Empty level falls back to info", level: ""},
		{name: "JSON output", level: "info", json: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level, JSON: tt.json}
			logger, err := cfg.Configure()
			gt.NoError(t, err)
			gt.Value(t, logger != nil).Equal(true)
		})
	}
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.Value(t, len(flags)).Equal(2)
}

func TestFetch_Flags(t *testing.T) {
	cfg := &config.Fetch{}
	flags := cfg.Flags()
	gt.Value(t, len(flags)).Equal(3)
}
