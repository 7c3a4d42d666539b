// Package daemonctl manages antman's PID file and signal-driven
// shutdown, replacing the original's fork/setsid daemonize() and its
// volatile sig_atomic_t done global with a context.Context cancelled
// from a signal handler.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned by WritePIDFile when path already
// exists, mirroring checkPID's refusal to start a second daemon.
var ErrAlreadyRunning = errors.New("daemonctl: pid file already exists")

// WritePIDFile creates path exclusively and writes the current
// process's PID to it. It fails if the file already exists, the same
// single-instance guard as the original's checkPID.
func WritePIDFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrAlreadyRunning
		}
		return fmt.Errorf("daemonctl: create pid file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("daemonctl: write pid file %s: %w", path, err)
	}
	return nil
}

// ReadPID reads and parses the PID recorded at path.
func ReadPID(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("daemonctl: read pid file %s: %w", path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("daemonctl: parse pid file %s: %w", path, err)
	}
	return pid, nil
}

// RemovePIDFile removes the PID file, ignoring a not-exist error so
// shutdown stays idempotent.
func RemovePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("daemonctl: remove pid file %s: %w", path, err)
	}
	return nil
}

// Stop sends SIGTERM to the process recorded in the PID file at path,
// the Go-native replacement for `antman --stop`.
func Stop(path string) error {
	pid, err := ReadPID(path)
	if err != nil {
		return err
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("daemonctl: find process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("daemonctl: signal process %d: %w", pid, err)
	}
	return nil
}
