package kv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// invalidCRC marks a record slot that was never finished, the same
// sentinel the original WAL framing used to distinguish a torn write
// from a genuine end of file.
const invalidCRC = uint32(0xFFFFFFFF)

// maxValueSize bounds a single record so a corrupt length field can't
// make the replay scan try to allocate an unreasonable buffer.
const maxValueSize = 64 << 20

// ErrCorrupt is returned when a record's stored CRC does not match its
// payload, or its length field is out of bounds.
var ErrCorrupt = errors.New("kv: corrupt record")

// record is one (key, value) entry as persisted by Disk.
//
// Wire format, little-endian throughout:
//
//	CRC(4) | TOTAL_LEN(4) | KEY(4) | VAL_LEN(4) | VALUE
//
// CRC is computed over TOTAL_LEN and everything that follows it. It is
// written first and patched in after the fact (via seek), exactly as
// the teacher WAL encoder does, so a reader can validate a record
// before trusting its length-prefixed payload.
type record struct {
	key   uint32
	value []byte
}

func (rec *record) size() uint32 {
	return 4 + 4 + uint32(len(rec.value))
}

func encodeRecord(w io.WriteSeeker, rec *record) error {
	totalLen := rec.size()

	crc := crc32.NewIEEE()
	mw := io.MultiWriter(w, crc)

	if err := binary.Write(w, binary.LittleEndian, invalidCRC); err != nil {
		return fmt.Errorf("kv: write crc placeholder: %w", err)
	}
	if err := binary.Write(mw, binary.LittleEndian, totalLen); err != nil {
		return fmt.Errorf("kv: write record length: %w", err)
	}
	if err := binary.Write(mw, binary.LittleEndian, rec.key); err != nil {
		return fmt.Errorf("kv: write record key: %w", err)
	}
	if err := binary.Write(mw, binary.LittleEndian, uint32(len(rec.value))); err != nil {
		return fmt.Errorf("kv: write value length: %w", err)
	}
	if _, err := mw.Write(rec.value); err != nil {
		return fmt.Errorf("kv: write value: %w", err)
	}

	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("kv: seek to current: %w", err)
	}
	if _, err := w.Seek(pos-int64(totalLen)-8, io.SeekStart); err != nil {
		return fmt.Errorf("kv: seek to crc slot: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, crc.Sum32()); err != nil {
		return fmt.Errorf("kv: patch crc: %w", err)
	}
	if _, err := w.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("kv: seek past record: %w", err)
	}
	return nil
}

// decodeRecord reads one record from r. It returns io.EOF (wrapping
// io.ErrUnexpectedEOF too) when the stream ends cleanly or mid-record —
// the latter means a prior write was torn by a crash, and the caller
// should stop replaying rather than treat it as ErrCorrupt.
func decodeRecord(r io.Reader) (*record, error) {
	var storedCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &storedCRC); err != nil {
		return nil, cleanEOF(err)
	}
	if storedCRC == invalidCRC {
		return nil, io.EOF
	}

	var totalLen uint32
	if err := binary.Read(r, binary.LittleEndian, &totalLen); err != nil {
		return nil, cleanEOF(err)
	}
	if totalLen < 8 || totalLen > maxValueSize {
		return nil, ErrCorrupt
	}

	payload := make([]byte, totalLen+4)
	binary.LittleEndian.PutUint32(payload[0:4], totalLen)
	if _, err := io.ReadFull(r, payload[4:]); err != nil {
		return nil, cleanEOF(err)
	}

	if crc32.ChecksumIEEE(payload) != storedCRC {
		return nil, ErrCorrupt
	}

	key := binary.LittleEndian.Uint32(payload[4:8])
	valLen := binary.LittleEndian.Uint32(payload[8:12])
	if uint32(len(payload))-12 < valLen {
		return nil, ErrCorrupt
	}

	value := make([]byte, valLen)
	copy(value, payload[12:12+valLen])

	return &record{key: key, value: value}, nil
}

func cleanEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}
