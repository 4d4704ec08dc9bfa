package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLogger_WritesToLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "gbm.log")

	closer, err := InitLogger(true, logFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Log.Infof("hello %s", "backup")
	if err := closer.Close(); err != nil {
		t.Fatalf("failed to close log file: %v", err)
	}
	Log.SetOutput(os.Stderr)

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", Log.GetLevel())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello backup") {
		t.Errorf("expected log file to contain message, got %q", string(data))
	}
}

func TestInitLogger_DefaultsToInfo(t *testing.T) {
	closer, err := InitLogger(false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", Log.GetLevel())
	}
}

func TestInitLogger_BadPath(t *testing.T) {
	_, err := InitLogger(false, filepath.Join(t.TempDir(), "missing", "dir", "gbm.log"))
	if err == nil {
		t.Fatal("expected error for unwritable log file path")
	}
}
