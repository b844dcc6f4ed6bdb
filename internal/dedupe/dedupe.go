// Package dedupe persists presence markers for already-processed messages,
// keyed by (threadID, uniqueID). Identifiers never reach disk in cleartext:
// the path is built from salted hashes and the file body is an AEAD sealing
// of an empty payload, so enumeration leaks neither ids nor thread links.
package dedupe

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/opensesh/groupcore/internal/groupcrypto"
)

// ErrNoEncryptionKey means the marker encryption key is unavailable.
// Callers must treat this as a hard stop for the message being processed:
// no side effects, and not "already seen".
var ErrNoEncryptionKey = errors.New("dedupe: no encryption key available")

const (
	threadSalt = "dedupe.thread.v1"
	recordSalt = "dedupe.record.v1"
)

// Store is a file-backed dedupe record store rooted at one directory.
type Store struct {
	root string
	key  []byte
}

// New creates a store. key must be a 32-byte locally held secret; a store
// created with a bad key reports ErrNoEncryptionKey on every Create.
func New(root string, key []byte) *Store {
	return &Store{root: root, key: key}
}

// Ready reports whether markers can be written. Checked by the pipeline
// before applying any side effect for a message.
func (s *Store) Ready() error {
	if len(s.key) != chacha20poly1305.KeySize {
		return ErrNoEncryptionKey
	}
	return nil
}

func (s *Store) path(threadID, uniqueID string) string {
	dir := hex.EncodeToString(groupcrypto.Hash(threadSalt, []byte(threadID)))
	file := hex.EncodeToString(groupcrypto.Hash(recordSalt, []byte(uniqueID)))
	return filepath.Join(s.root, dir, file)
}

// Exists reports whether a marker is present. Pure lookup, never errors:
// anything unreadable counts as absent.
func (s *Store) Exists(threadID, uniqueID string) bool {
	_, err := os.Stat(s.path(threadID, uniqueID))
	return err == nil
}

// Create writes the marker for (threadID, uniqueID).
func (s *Store) Create(threadID, uniqueID string) error {
	if err := s.Ready(); err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return ErrNoEncryptionKey
	}
	nonce := groupcrypto.Hash("dedupe.nonce.v1", []byte(threadID), []byte(uniqueID))[:chacha20poly1305.NonceSizeX]
	body := aead.Seal(nil, nonce, nil, []byte(threadID+"/"+uniqueID))

	p := s.path(threadID, uniqueID)
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return fmt.Errorf("dedupe: create record dir: %w", err)
	}
	if err := os.WriteFile(p, append(nonce, body...), 0600); err != nil {
		return fmt.Errorf("dedupe: write record: %w", err)
	}
	return nil
}

// Remove deletes a marker. Missing markers are not an error; callers treat
// any failure here as non-fatal cleanup.
func (s *Store) Remove(threadID, uniqueID string) error {
	err := os.Remove(s.path(threadID, uniqueID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("dedupe: remove record: %w", err)
	}
	return nil
}

// Clear removes every marker. Used on full data wipe.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("dedupe: clear: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return fmt.Errorf("dedupe: clear: %w", err)
		}
	}
	return nil
}
