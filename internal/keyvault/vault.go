// Package keyvault tracks a group's encryption key pairs: the committed
// history lives in the relational store, while key pairs that have been
// generated and sent but not yet persisted sit in an in-memory pending set.
// During rotation the pending set must be consulted before the committed
// latest, otherwise a retry would silently regenerate a key the rest of the
// group already received.
package keyvault

import (
	"bytes"
	"sync"

	"github.com/opensesh/groupcore/internal/store"
)

// Vault is owned by the composed client; there is no package-level state.
type Vault struct {
	store *store.Store

	mu      sync.Mutex
	pending map[string][]store.KeyPair // group id → in-flight pairs, oldest first
}

// New creates a vault over the given store.
func New(s *store.Store) *Vault {
	return &Vault{store: s, pending: make(map[string][]store.KeyPair)}
}

// Latest returns the most recent committed key pair for a group, or nil.
func (v *Vault) Latest(groupID string) (*store.KeyPair, error) {
	var pair *store.KeyPair
	err := v.store.Read(func(tx *store.Tx) error {
		var err error
		pair, err = tx.LatestKeyPair(groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// PendingLatest returns the most recently registered in-flight pair for the
// group, or nil if none is pending.
func (v *Vault) PendingLatest(groupID string) *store.KeyPair {
	v.mu.Lock()
	defer v.mu.Unlock()
	list := v.pending[groupID]
	if len(list) == 0 {
		return nil
	}
	p := list[len(list)-1]
	return &p
}

// RegisterPending marks a generated pair as in flight for its group.
func (v *Vault) RegisterPending(pair store.KeyPair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending[pair.GroupID] = append(v.pending[pair.GroupID], pair)
}

// ClearPending drops a pair from the in-flight set, matching by public key.
func (v *Vault) ClearPending(pair store.KeyPair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	list := v.pending[pair.GroupID]
	kept := list[:0]
	for _, p := range list {
		if !bytes.Equal(p.PublicKey, pair.PublicKey) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		delete(v.pending, pair.GroupID)
		return
	}
	v.pending[pair.GroupID] = kept
}

// Persist commits a pair to durable storage. Callers invoke this only after
// the corresponding distribution send has succeeded.
func (v *Vault) Persist(pair store.KeyPair) error {
	return v.store.Write(func(tx *store.Tx) error {
		return tx.AddKeyPair(pair)
	})
}

// Current returns the pair rotation should hand out right now: the pending
// latest when one is in flight, else the committed latest, else nil.
func (v *Vault) Current(groupID string) (*store.KeyPair, error) {
	if p := v.PendingLatest(groupID); p != nil {
		return p, nil
	}
	return v.Latest(groupID)
}
