package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	log, f := setupLogging(t.TempDir(), "info", false)
	if f != nil {
		t.Error("expected nil log file when debug is off")
		f.Close()
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got level %s", log.GetLevel())
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	dir := t.TempDir()

	log, f := setupLogging(dir, "debug", true)
	if f == nil {
		t.Fatal("expected log file when debug is on")
	}
	defer f.Close()

	log.Info().Msg("test message")

	path := filepath.Join(dir, logFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to contain content")
	}
}

func TestSetupLoggingBadLevelFallsBack(t *testing.T) {
	log, f := setupLogging(t.TempDir(), "nonsense", true)
	if f == nil {
		t.Fatal("expected log file when debug is on")
	}
	defer f.Close()

	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %s, want info", log.GetLevel())
	}
}
