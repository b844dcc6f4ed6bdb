package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	client "github.com/opensesh/groupcore"
	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/store"
)

// identity is the locally stored key material backing this device.
type identity struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

func identityPath() string {
	return filepath.Join(store.DefaultDataDir(), "identity.json")
}

func loadIdentity() (*identity, error) {
	data, err := os.ReadFile(identityPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no identity found (run 'grpctl init' first)")
		}
		return nil, err
	}
	var id identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parse %s: %w", identityPath(), err)
	}
	if _, err := hex.DecodeString(id.PublicKey); err != nil {
		return nil, fmt.Errorf("corrupt identity public key: %w", err)
	}
	if _, err := hex.DecodeString(id.SecretKey); err != nil {
		return nil, fmt.Errorf("corrupt identity secret key: %w", err)
	}
	return &id, nil
}

func (id *identity) KeyPair() client.KeyPair {
	pub, _ := hex.DecodeString(id.PublicKey)
	sec, _ := hex.DecodeString(id.SecretKey)
	return client.KeyPair{PublicKey: pub, SecretKey: sec}
}

func (id *identity) SessionID() string {
	pub, _ := hex.DecodeString(id.PublicKey)
	return client.SessionIDFor(pub)
}

// DedupeKey derives the duplicate-record encryption key from the identity
// secret, so records stay undecipherable without the identity file.
func (id *identity) DedupeKey() []byte {
	sec, _ := hex.DecodeString(id.SecretKey)
	return groupcrypto.Hash("grpctl.dedupe.key", sec)
}

type initCommand struct {
	Force bool `long:"force" description:"Overwrite an existing identity"`
}

func (cmd *initCommand) Execute(args []string) error {
	path := identityPath()
	if !cmd.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("identity already exists at %s (use --force to replace)", path)
		}
	}

	kp, err := client.GenerateKeyPair()
	if err != nil {
		return err
	}
	id := identity{
		PublicKey: hex.EncodeToString(kp.PublicKey),
		SecretKey: hex.EncodeToString(kp.SecretKey),
	}
	data, err := json.MarshalIndent(&id, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	fmt.Printf("Identity written to %s\n", path)
	fmt.Printf("Session ID: %s\n", id.SessionID())
	return nil
}
