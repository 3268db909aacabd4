package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_Disabled(t *testing.T) {
	resetForTest()

	if err := Init(false, ""); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if Enabled() {
		t.Error("Enabled() should return false when initialized with false")
	}

	// no-ops
	Log("test message")
	Logf("test %s", "formatted")
	Scope("parse").Logf("test %d", 1)
}

func TestInit_DefaultPath(t *testing.T) {
	resetForTest()

	tmpDir := t.TempDir()
	origGetLogPath := getLogPath
	getLogPath = func() (string, error) {
		return filepath.Join(tmpDir, LogDirName, LogFileName), nil
	}
	t.Cleanup(func() {
		getLogPath = origGetLogPath
		Close()
		resetForTest()
	})

	if err := Init(true, ""); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	if !Enabled() {
		t.Error("Enabled() should return true when initialized with true")
	}

	Log("test message")
	Logf("test %s %d", "formatted", 42)
	Scope("generate").Logf("variant %s", "moon")

	content, err := os.ReadFile(filepath.Join(tmpDir, LogDirName, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(content)
	for _, want := range []string{"debug log started", "test message", "test formatted 42", "[generate] variant moon"} {
		if !strings.Contains(got, want) {
			t.Errorf("log file missing %q:\n%s", want, got)
		}
	}
}

func TestInit_ExplicitPathTruncates(t *testing.T) {
	resetForTest()
	t.Cleanup(func() {
		Close()
		resetForTest()
	})

	logPath := filepath.Join(t.TempDir(), "nested", "build.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("old log content that should be truncated\n"), 0600); err != nil {
		t.Fatalf("write pre-existing log: %v", err)
	}

	if err := Init(true, logPath); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "old log content") {
		t.Error("log file should have been truncated")
	}
	if !strings.Contains(string(content), "debug log started") {
		t.Error("log file should contain the startup banner")
	}
}

func TestInitWriter(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	var buf bytes.Buffer
	InitWriter(&buf)
	Scope("parse").Logf("unknown token at %d", 7)

	if got := buf.String(); got != "[parse] unknown token at 7\n" {
		t.Errorf("got %q", got)
	}

	InitWriter(nil)
	if Enabled() {
		t.Error("InitWriter(nil) should disable logging")
	}
}

func TestClose(t *testing.T) {
	resetForTest()

	tmpDir := t.TempDir()
	t.Cleanup(resetForTest)

	if err := Init(true, filepath.Join(tmpDir, LogFileName)); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	Close()
	Close()
	Close()
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Errorf("GetLogPath() = %q, want suffix %q", path, filepath.Join(LogDirName, LogFileName))
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = false
	logger = nil
}
