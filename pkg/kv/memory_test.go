package kv

import (
	"errors"
	"testing"
)

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory()

	if err := m.Put(1, []byte("a")); err != nil {
		t.Fatal(err)
	}

	v, ok, err := m.Get(1)
	if err != nil || !ok || string(v) != "a" {
		t.Fatalf("got (%s, %v, %v)", v, ok, err)
	}

	_, ok, _ = m.Get(2)
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestMemoryClosedAfterClose(t *testing.T) {
	m := NewMemory()
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Put(1, []byte("a")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
