package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).Named("jobs").With("module", "de.osca.jobs")

	log.Info("fetched job postings", "count", 5)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "jobs" {
		t.Errorf("logger name = %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["module"] != "de.osca.jobs" {
		t.Errorf("module field = %v", fields["module"])
	}
	if fields["count"] != int64(5) {
		t.Errorf("count field = %v (%T)", fields["count"], fields["count"])
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("ignored", "err", "boom")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}
