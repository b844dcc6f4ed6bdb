package wire

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/opensesh/groupcore/internal/groupcrypto"
)

// KeyPairWrapper is one recipient's sealed copy of a rotated key pair.
// Only the holder of the matching secret key can open the blob.
type KeyPairWrapper struct {
	RecipientPublicKey   []byte
	EncryptedKeyPairBlob []byte
}

// keyPairBlob is the plaintext inside a wrapper blob. Hex keeps the
// encoding unambiguous across implementations.
type keyPairBlob struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

// EncodeKeyPair serializes a key pair into the wrapper plaintext form.
func EncodeKeyPair(pair groupcrypto.KeyPair) ([]byte, error) {
	return json.Marshal(keyPairBlob{
		PublicKey: hex.EncodeToString(pair.PublicKey),
		SecretKey: hex.EncodeToString(pair.SecretKey),
	})
}

// DecodeKeyPair parses the wrapper plaintext form.
func DecodeKeyPair(data []byte) (groupcrypto.KeyPair, error) {
	var blob keyPairBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return groupcrypto.KeyPair{}, fmt.Errorf("wire: decode key pair: %w", err)
	}
	pub, err := hex.DecodeString(blob.PublicKey)
	if err != nil {
		return groupcrypto.KeyPair{}, fmt.Errorf("wire: decode key pair public key: %w", err)
	}
	sec, err := hex.DecodeString(blob.SecretKey)
	if err != nil {
		return groupcrypto.KeyPair{}, fmt.Errorf("wire: decode key pair secret key: %w", err)
	}
	if len(pub) != groupcrypto.KeySize || len(sec) != groupcrypto.KeySize {
		return groupcrypto.KeyPair{}, fmt.Errorf("wire: key pair blob has wrong key sizes")
	}
	return groupcrypto.KeyPair{PublicKey: pub, SecretKey: sec}, nil
}

// WrapKeyPair seals pair once per recipient public key. No broadcast
// plaintext copy of the pair ever exists.
func WrapKeyPair(pair groupcrypto.KeyPair, recipientPublicKeys [][]byte) ([]KeyPairWrapper, error) {
	plain, err := EncodeKeyPair(pair)
	if err != nil {
		return nil, err
	}
	wrappers := make([]KeyPairWrapper, 0, len(recipientPublicKeys))
	for _, pub := range recipientPublicKeys {
		sealed, err := groupcrypto.SealFor(pub, plain)
		if err != nil {
			return nil, fmt.Errorf("wire: wrap key pair: %w", err)
		}
		wrappers = append(wrappers, KeyPairWrapper{
			RecipientPublicKey:   pub,
			EncryptedKeyPairBlob: sealed,
		})
	}
	return wrappers, nil
}

// UnwrapKeyPair finds the wrapper addressed to recipient and opens it.
// Returns false when no wrapper is addressed to the recipient.
func UnwrapKeyPair(wrappers []KeyPairWrapper, recipient groupcrypto.KeyPair) (groupcrypto.KeyPair, bool, error) {
	for _, w := range wrappers {
		if !bytes.Equal(w.RecipientPublicKey, recipient.PublicKey) {
			continue
		}
		plain, err := groupcrypto.OpenFrom(recipient, w.EncryptedKeyPairBlob)
		if err != nil {
			return groupcrypto.KeyPair{}, false, err
		}
		pair, err := DecodeKeyPair(plain)
		if err != nil {
			return groupcrypto.KeyPair{}, false, err
		}
		return pair, true, nil
	}
	return groupcrypto.KeyPair{}, false, nil
}
