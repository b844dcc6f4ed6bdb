// Package groupcrypto provides the key generation, per-recipient sealing and
// hashing primitives used by the closed-group protocols. It is a thin layer
// over x/crypto; callers never touch nonces or curve points directly.
package groupcrypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/sha3"
)

const (
	// SessionIDPrefixStandard marks legacy closed-group and 1:1 ids.
	SessionIDPrefixStandard = "05"
	// SessionIDPrefixGroup marks updated-group ids.
	SessionIDPrefixGroup = "03"

	KeySize = 32
)

// KeyPair is an X25519 key pair. Secret material stays in process memory;
// persistence is the caller's concern.
type KeyPair struct {
	PublicKey []byte
	SecretKey []byte
}

// GenerateKeyPair creates a fresh X25519 key pair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("groupcrypto: generate key pair: %w", err)
	}
	return KeyPair{PublicKey: pub[:], SecretKey: priv[:]}, nil
}

// SessionID returns the prefixed hex id for a public key.
func SessionID(prefix string, publicKey []byte) string {
	return prefix + hex.EncodeToString(publicKey)
}

// PublicKeyFromSessionID strips the id prefix and decodes the X25519 public
// key. Both standard and group prefixes are accepted.
func PublicKeyFromSessionID(id string) ([]byte, error) {
	if !strings.HasPrefix(id, SessionIDPrefixStandard) && !strings.HasPrefix(id, SessionIDPrefixGroup) {
		return nil, fmt.Errorf("groupcrypto: session id %q has no known prefix", id)
	}
	raw, err := hex.DecodeString(id[len(SessionIDPrefixStandard):])
	if err != nil {
		return nil, fmt.Errorf("groupcrypto: decode session id: %w", err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("groupcrypto: session id key is %d bytes, want %d", len(raw), KeySize)
	}
	return raw, nil
}

// SealFor encrypts plaintext so that only the holder of the recipient's
// secret key can open it. The sender stays anonymous (ephemeral key inside).
func SealFor(recipientPublicKey, plaintext []byte) ([]byte, error) {
	if len(recipientPublicKey) != KeySize {
		return nil, fmt.Errorf("groupcrypto: recipient key is %d bytes, want %d", len(recipientPublicKey), KeySize)
	}
	var pub [KeySize]byte
	copy(pub[:], recipientPublicKey)
	sealed, err := box.SealAnonymous(nil, plaintext, &pub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("groupcrypto: seal: %w", err)
	}
	return sealed, nil
}

// OpenFrom decrypts a blob produced by SealFor with the recipient key pair.
func OpenFrom(recipient KeyPair, sealed []byte) ([]byte, error) {
	if len(recipient.PublicKey) != KeySize || len(recipient.SecretKey) != KeySize {
		return nil, fmt.Errorf("groupcrypto: recipient key pair has wrong size")
	}
	var pub, priv [KeySize]byte
	copy(pub[:], recipient.PublicKey)
	copy(priv[:], recipient.SecretKey)
	plain, ok := box.OpenAnonymous(nil, sealed, &pub, &priv)
	if !ok {
		return nil, fmt.Errorf("groupcrypto: sealed blob did not open")
	}
	return plain, nil
}

// Hash returns SHA3-256 over label followed by the parts, in order.
// The label keeps unrelated hash domains apart.
func Hash(label string, parts ...[]byte) []byte {
	h := sha3.New256()
	h.Write([]byte(label))
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
