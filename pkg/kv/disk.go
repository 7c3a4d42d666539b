package kv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrLocked is returned by OpenDisk when another handle already holds
// the store's lock file.
var ErrLocked = errors.New("kv: store is locked by another handle")

// Disk is a single append-only file per store. Each Put appends one
// CRC-framed record; Get is served from an in-memory offset index
// rebuilt by replaying the file at Open. This mirrors the teacher's
// segment manager (one active *os.File behind a mutex) for writes, and
// its WAL reader (sequential Decode until EOF) for the open-time
// replay.
type Disk struct {
	mu     sync.Mutex
	path   string
	lockPath string
	f      *os.File
	index  map[uint32]int64
	closed bool
}

// OpenDisk opens or creates the store file at path, replaying any
// existing records to rebuild its key→offset index, and takes an
// exclusive lock on that store file (a sibling path+".lock" file) for
// the lifetime of the handle. Other store files in the same directory
// are not locked by it.
func OpenDisk(path string) (*Disk, error) {
	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("kv: create lock file: %w", err)
	}
	_ = lockFile.Close()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("kv: open store file: %w", err)
	}

	d := &Disk{path: path, lockPath: lockPath, f: f, index: make(map[uint32]int64)}
	if err := d.replay(); err != nil {
		_ = f.Close()
		_ = os.Remove(lockPath)
		return nil, err
	}

	return d, nil
}

// replay scans the store file from the start, rebuilding the key→offset
// index. A record that fails its CRC check, or a stream that ends mid
// record, marks the tail of a crash-torn write: the scan stops there
// without treating it as fatal, the file is truncated at the last good
// offset (dropping the torn bytes), and the next Put appends from there.
func (d *Disk) replay() error {
	if _, err := d.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("kv: seek to start for replay: %w", err)
	}

	offset := int64(0)
	for {
		rec, err := decodeRecord(d.f)
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrCorrupt) {
			break
		}
		if err != nil {
			return fmt.Errorf("kv: replay: %w", err)
		}
		d.index[rec.key] = offset
		next, err := d.f.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("kv: replay seek: %w", err)
		}
		offset = next
	}

	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("kv: seek to append position: %w", err)
	}
	if err := d.f.Truncate(offset); err != nil {
		return fmt.Errorf("kv: truncate torn tail: %w", err)
	}
	return nil
}

func (d *Disk) Put(key uint32, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	offset, err := d.f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("kv: seek to append position: %w", err)
	}

	if err := encodeRecord(d.f, &record{key: key, value: value}); err != nil {
		return err
	}
	if err := d.f.Sync(); err != nil {
		return fmt.Errorf("kv: sync: %w", err)
	}

	d.index[key] = offset
	return nil
}

func (d *Disk) Get(key uint32) ([]byte, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, false, ErrClosed
	}

	offset, ok := d.index[key]
	if !ok {
		return nil, false, nil
	}

	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return nil, false, fmt.Errorf("kv: seek to record: %w", err)
	}
	rec, err := decodeRecord(d.f)
	if err != nil {
		return nil, false, fmt.Errorf("kv: read record: %w", err)
	}
	return rec.value, true, nil
}

func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.f.Sync(); err != nil {
		_ = d.f.Close()
		return fmt.Errorf("kv: sync on close: %w", err)
	}
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("kv: close store file: %w", err)
	}
	if err := os.Remove(d.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kv: release lock: %w", err)
	}
	return nil
}

// Dir ensures the parent directory of path exists, for callers that
// want to create a fresh index directory in one step.
func Dir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
