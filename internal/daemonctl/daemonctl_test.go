package daemonctl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePIDFileRejectsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antman.pid")

	if err := WritePIDFile(path); err != nil {
		t.Fatal(err)
	}
	if err := WritePIDFile(path); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestReadPIDRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antman.pid")

	if err := WritePIDFile(path); err != nil {
		t.Fatal(err)
	}

	pid, err := ReadPID(path)
	if err != nil {
		t.Fatal(err)
	}
	if pid != os.Getpid() {
		t.Fatalf("expected pid %d, got %d", os.Getpid(), pid)
	}
}

func TestRemovePIDFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antman.pid")

	if err := WritePIDFile(path); err != nil {
		t.Fatal(err)
	}
	if err := RemovePIDFile(path); err != nil {
		t.Fatal(err)
	}
	if err := RemovePIDFile(path); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
}

func TestWaitForShutdownNotDoneBeforeSignal(t *testing.T) {
	ctx, cancel := WaitForShutdown(context.Background())
	defer cancel()

	select {
	case <-ctx.Done():
		t.Fatalf("context should not be done before a signal or explicit cancel")
	default:
	}
}
