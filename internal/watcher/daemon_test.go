package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestIsDaemonRunning_NoPIDFile(t *testing.T) {
	running, err := IsDaemonRunning(filepath.Join(t.TempDir(), "watch.pid"))
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Error("expected not running when PID file is missing")
	}
}

func TestIsDaemonRunning_InvalidPID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Error("expected not running for garbage PID file")
	}
}

func TestIsDaemonRunning_LiveProcess(t *testing.T) {
	// The test process itself is guaranteed to be alive.
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if !running {
		t.Error("expected running for live PID")
	}
}

func TestIsDaemonRunning_StalePIDFileRemoved(t *testing.T) {
	// PID 1 exists but we cannot signal it as an unprivileged user on
	// most systems, and an absurdly large PID is simply dead. Use the
	// latter to exercise the stale-file cleanup path.
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("4194304\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		t.Fatalf("IsDaemonRunning: %v", err)
	}
	if running {
		t.Error("expected not running for dead PID")
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("expected stale PID file to be removed")
	}
}

func TestStopDaemon_NoPIDFile(t *testing.T) {
	err := StopDaemon(filepath.Join(t.TempDir(), "watch.pid"))
	if err == nil {
		t.Fatal("expected error when PID file is missing")
	}
}

func TestStopDaemon_InvalidPID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "watch.pid")
	if err := os.WriteFile(pidFile, []byte("garbage\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}
	if err := StopDaemon(pidFile); err == nil {
		t.Fatal("expected error for invalid PID")
	}
}
