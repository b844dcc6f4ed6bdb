package legacygroup

import (
	"context"
	"fmt"

	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/wire"
)

// A rotation moves through three stages. The commit to local storage
// deliberately trails the distribution send: a key pair the group may never
// have received must not become canonical. If the process dies between
// sent and persisted, the vault's pending set carries the pair across the
// restart and RetryPendingRotation resumes from the sent stage instead of
// generating a fresh pair.
type rotationStage int

const (
	rotationPrepared rotationStage = iota
	rotationSent
	rotationPersisted
)

type rotation struct {
	groupID string
	pair    store.KeyPair
	stage   rotationStage
}

func (r *rotation) markSent() error {
	if r.stage != rotationPrepared {
		return fmt.Errorf("legacygroup: rotation for %s already past prepared", r.groupID)
	}
	r.stage = rotationSent
	return nil
}

func (r *rotation) markPersisted() error {
	if r.stage != rotationSent {
		return fmt.Errorf("legacygroup: rotation for %s persisted before send", r.groupID)
	}
	r.stage = rotationPersisted
	return nil
}

// rotateKeyPair generates a new encryption key pair and distributes it to
// the remaining standard members, each copy sealed to its recipient. The
// pair is registered pending before the send and persisted only after the
// send succeeds.
func (p *Protocol) rotateKeyPair(ctx context.Context, groupID string) error {
	generated, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	rot := &rotation{
		groupID: groupID,
		pair: store.KeyPair{
			GroupID:    groupID,
			PublicKey:  generated.PublicKey,
			SecretKey:  generated.SecretKey,
			ReceivedAt: p.now(),
		},
	}
	p.vault.RegisterPending(rot.pair)

	if err := p.distribute(ctx, rot); err != nil {
		// The pair stays pending for a later retry; discarding it here
		// could orphan members that did receive it.
		return err
	}
	return p.commit(rot)
}

// RetryPendingRotation resumes a rotation whose distribution send never
// completed, typically after a restart. No-op when nothing is pending.
func (p *Protocol) RetryPendingRotation(ctx context.Context, groupID string) error {
	pending := p.vault.PendingLatest(groupID)
	if pending == nil {
		return nil
	}
	rot := &rotation{groupID: groupID, pair: *pending}
	if err := p.distribute(ctx, rot); err != nil {
		return err
	}
	return p.commit(rot)
}

func (p *Protocol) distribute(ctx context.Context, rot *rotation) error {
	recipients, err := p.rotationRecipients(rot.groupID)
	if err != nil {
		return err
	}
	wrappers, err := wire.WrapKeyPair(
		groupcrypto.KeyPair{PublicKey: rot.pair.PublicKey, SecretKey: rot.pair.SecretKey},
		recipients,
	)
	if err != nil {
		return err
	}
	if err := p.send(ctx, rot.groupID, rot.groupID, wire.EncryptionKeyPair{Wrappers: wrappers}); err != nil {
		return fmt.Errorf("legacygroup: distribute key pair: %w", err)
	}
	return rot.markSent()
}

func (p *Protocol) commit(rot *rotation) error {
	if err := p.vault.Persist(rot.pair); err != nil {
		return err
	}
	p.vault.ClearPending(rot.pair)
	return rot.markPersisted()
}

// rotationRecipients returns the public keys of every remaining standard
// member. The local admin persists the pair directly and zombies are by
// definition on their way out, so neither gets a sealed copy.
func (p *Protocol) rotationRecipients(groupID string) ([][]byte, error) {
	var keys [][]byte
	err := p.store.Read(func(tx *store.Tx) error {
		members, err := tx.AllMembers(groupID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.Role != store.RoleStandard || m.ProfileID == p.localID {
				continue
			}
			pub, err := groupcrypto.PublicKeyFromSessionID(m.ProfileID)
			if err != nil {
				p.logf("legacygroup: skipping recipient %s: %v", m.ProfileID, err)
				continue
			}
			keys = append(keys, pub)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
