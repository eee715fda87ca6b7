package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLog(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("log file does not contain message, got: %s", data)
	}
}

func TestInit_AlreadyInitialized(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "first.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Second init is a no-op, not an error
	if err := Init(filepath.Join(t.TempDir(), "second.log")); err != nil {
		t.Errorf("second Init() error = %v, want nil", err)
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	defer Reset()

	err := Init("/nonexistent-dir/no/such/path.log")
	if err == nil {
		t.Error("Init() with unwritable path should return error")
	}
}

func TestDebugLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "level.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Default level is Info - debug messages are suppressed
	Debug("suppressed message")
	Info("visible message")

	SetDebug(true)
	Debug("now visible")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "suppressed message") {
		t.Error("debug message should be suppressed at info level")
	}
	if !strings.Contains(content, "visible message") {
		t.Error("info message should be logged")
	}
	if !strings.Contains(content, "now visible") {
		t.Error("debug message should be logged after SetDebug(true)")
	}
}

func TestComponentLogger(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "component.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	log := ComponentLogger("Registry")
	log.Info("organized buckets", "chats", 3)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "component=Registry") {
		t.Errorf("expected component attribute in output, got: %s", data)
	}
}

func TestWithSession(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "session.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	log := WithSession("sess-42")
	log.Info("history loaded")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "sessionID=sess-42") {
		t.Errorf("expected sessionID attribute in output, got: %s", data)
	}
}

func TestReset(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "reset.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Reset()

	// After reset, a new Init should succeed with a different path
	path2 := filepath.Join(t.TempDir(), "reset2.log")
	if err := Init(path2); err != nil {
		t.Errorf("Init() after Reset() error = %v", err)
	}
}
