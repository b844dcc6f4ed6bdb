package dedupe

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	key := bytes.Repeat([]byte{7}, chacha20poly1305.KeySize)
	return New(t.TempDir(), key)
}

func TestCreateThenExists(t *testing.T) {
	s := tempStore(t)

	if s.Exists("thread", "msg-1") {
		t.Fatal("fresh store should have no records")
	}
	if err := s.Create("thread", "msg-1"); err != nil {
		t.Fatal(err)
	}
	if !s.Exists("thread", "msg-1") {
		t.Fatal("record should exist after create")
	}
	if s.Exists("thread", "msg-2") {
		t.Fatal("different id should not match")
	}
	if s.Exists("other", "msg-1") {
		t.Fatal("different thread should not match")
	}
}

func TestNoCleartextOnDisk(t *testing.T) {
	key := bytes.Repeat([]byte{7}, chacha20poly1305.KeySize)
	root := t.TempDir()
	s := New(root, key)
	if err := s.Create("05secretthread", "secret-hash"); err != nil {
		t.Fatal(err)
	}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if filepath.Base(path) == filepath.Base(root) {
			return nil
		}
		name := filepath.Base(path)
		if name == "secret-hash" || name == "05secretthread" {
			t.Fatalf("identifier leaked into path: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateWithoutKeyFails(t *testing.T) {
	s := New(t.TempDir(), nil)
	err := s.Create("thread", "id")
	if !errors.Is(err, ErrNoEncryptionKey) {
		t.Fatalf("got %v, want ErrNoEncryptionKey", err)
	}
	if s.Exists("thread", "id") {
		t.Fatal("failed create must not leave a record")
	}
}

func TestRemove(t *testing.T) {
	s := tempStore(t)
	if err := s.Create("t", "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("t", "a"); err != nil {
		t.Fatal(err)
	}
	if s.Exists("t", "a") {
		t.Fatal("record should be gone")
	}
	// Removing a missing record is fine.
	if err := s.Remove("t", "a"); err != nil {
		t.Fatal(err)
	}
}

func TestClear(t *testing.T) {
	s := tempStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Create("t1", id); err != nil {
			t.Fatal(err)
		}
		if err := s.Create("t2", id); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if s.Exists("t1", id) || s.Exists("t2", id) {
			t.Fatal("clear should remove everything")
		}
	}
	// Clear on an empty store is harmless.
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
}
