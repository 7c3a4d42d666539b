package config

import (
	"path/filepath"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antman.toml")

	want := New(filepath.Join(dir, "watch"), dir)
	want.KSize = 11
	want.BloomFPRate = 0.005

	if err := Write(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadRejectsNonPositiveKSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antman.toml")

	bad := New(dir, dir)
	bad.KSize = 0
	if err := Write(path, bad); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for zero k_size")
	}
}

func TestNewPopulatesDefaults(t *testing.T) {
	c := New("/watch", "/work")
	if c.KSize != DefaultKSize {
		t.Fatalf("expected default k_size %d, got %d", DefaultKSize, c.KSize)
	}
	if c.SketchSize != DefaultSketchSize {
		t.Fatalf("expected default sketch_size %d, got %d", DefaultSketchSize, c.SketchSize)
	}
	if c.BloomFPRate != DefaultBloomFPRate {
		t.Fatalf("expected default bloom_fp_rate %v, got %v", DefaultBloomFPRate, c.BloomFPRate)
	}
	if c.BloomMaxElements != DefaultBloomMaxElements {
		t.Fatalf("expected default bloom_max_elements %d, got %d", DefaultBloomMaxElements, c.BloomMaxElements)
	}
}
