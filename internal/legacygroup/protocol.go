// Package legacygroup implements the original closed-group design: a
// single shared encryption key pair per group, distributed at formation and
// rotated by the admin whenever membership shrinks. Messages narrating
// membership travel on the group channel; key material only ever travels
// sealed per recipient.
package legacygroup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opensesh/groupcore/internal/configsync"
	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/keyvault"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/transport"
	"github.com/opensesh/groupcore/internal/wire"
)

// PushUnsubscriber detaches push notifications for a group the local user
// no longer belongs to. Implementations are thin I/O wrappers; failures are
// logged, never propagated.
type PushUnsubscriber interface {
	Unsubscribe(groupID string)
}

// Config assembles a Protocol. Store, Vault, Sender, Bridge, LocalID and
// LocalKeyPair are required; the rest default sensibly.
type Config struct {
	Store        *store.Store
	Vault        *keyvault.Vault
	Sender       transport.Sender
	Bridge       configsync.Bridge
	Push         PushUnsubscriber
	Logger       *log.Logger
	LocalID      string
	LocalKeyPair groupcrypto.KeyPair
	Now          func() time.Time
	NewMessageID func() string
}

// Protocol is the legacy closed-group state machine.
type Protocol struct {
	store  *store.Store
	vault  *keyvault.Vault
	sender transport.Sender
	bridge configsync.Bridge
	push   PushUnsubscriber
	logger *log.Logger

	localID  string
	localKey groupcrypto.KeyPair
	now      func() time.Time
	newMsgID func() string
}

// New creates a Protocol from the config.
func New(cfg Config) *Protocol {
	p := &Protocol{
		store:    cfg.Store,
		vault:    cfg.Vault,
		sender:   cfg.Sender,
		bridge:   cfg.Bridge,
		push:     cfg.Push,
		logger:   cfg.Logger,
		localID:  cfg.LocalID,
		localKey: cfg.LocalKeyPair,
		now:      cfg.Now,
		newMsgID: cfg.NewMessageID,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newMsgID == nil {
		p.newMsgID = func() string { return uuid.NewString() }
	}
	return p
}

func (p *Protocol) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

func (p *Protocol) send(ctx context.Context, destination string, groupID string, payload wire.Payload) error {
	return p.sender.Send(ctx, transport.Prepared{
		ID:          p.newMsgID(),
		Destination: destination,
		Message: wire.ControlMessage{
			Sender:   p.localID,
			SentAtMs: uint64(p.now().UnixMilli()),
			GroupID:  groupID,
			Payload:  payload,
		},
	})
}

// Create forms a new closed group with the local user as admin and the
// given invitees as standard members. Each invitee is told over their 1:1
// channel, since the group channel has no history yet. A failed invite send
// does not roll the group back; that member simply never joins.
func (p *Protocol) Create(ctx context.Context, name string, memberIDs []string) (string, error) {
	groupKP, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		return "", err
	}
	encKP, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		return "", err
	}
	groupID := groupcrypto.SessionID(groupcrypto.SessionIDPrefixStandard, groupKP.PublicKey)
	formedAt := p.now()

	invitees := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != p.localID {
			invitees = append(invitees, id)
		}
	}
	allMembers := append([]string{p.localID}, invitees...)

	err = p.store.Write(func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: name, FormedAt: formedAt, IsActive: true}); err != nil {
			return err
		}
		if err := tx.AddKeyPair(store.KeyPair{
			GroupID:    groupID,
			PublicKey:  encKP.PublicKey,
			SecretKey:  encKP.SecretKey,
			ReceivedAt: formedAt,
		}); err != nil {
			return err
		}
		if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: p.localID, Role: store.RoleAdmin}); err != nil {
			return err
		}
		for _, id := range invitees {
			if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: id, Role: store.RoleStandard}); err != nil {
				return err
			}
		}
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  groupID,
			AuthorID:  p.localID,
			Variant:   store.VariantInfoGroupCreated,
			Body:      "Group created",
			Timestamp: formedAt,
		})
	})
	if err != nil {
		return "", err
	}

	announce := wire.NewGroup{
		Name:              name,
		EncryptionKeyPair: encKP,
		Members:           allMembers,
		Admins:            []string{p.localID},
		FormedAtMs:        uint64(formedAt.UnixMilli()),
	}

	// Independent per-member invites: parallel fan-out, AND-join, no
	// rollback on individual failure.
	var wg sync.WaitGroup
	for _, id := range invitees {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := p.send(ctx, id, groupID, announce); err != nil {
				p.logf("legacygroup: invite to %s failed: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	p.bridge.MarkDirty(groupID)
	return groupID, nil
}

// AddMembers invites additional members. The current latest key pair goes
// to each new member over their 1:1 channel; existing members only see the
// membership announcement. No rotation happens on add.
func (p *Protocol) AddMembers(ctx context.Context, groupID string, memberIDs []string) error {
	var (
		group    *store.Group
		newIDs   []string
		names    []string
		formedAt uint64
	)
	err := p.store.Read(func(tx *store.Tx) error {
		var err error
		group, err = tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return fmt.Errorf("legacygroup: add to %s: %w", groupID, protoerr.ErrNotFound)
		}
		if !group.IsActive {
			return fmt.Errorf("legacygroup: add to %s: %w", groupID, protoerr.ErrInvalidGroupUpdate)
		}
		for _, id := range memberIDs {
			ok, err := tx.IsMember(groupID, id)
			if err != nil {
				return err
			}
			if !ok {
				newIDs = append(newIDs, id)
				name, err := tx.DisplayName(id)
				if err != nil {
					return err
				}
				names = append(names, name)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(newIDs) == 0 {
		return nil
	}
	formedAt = uint64(group.FormedAt.UnixMilli())

	pair, err := p.vault.Current(groupID)
	if err != nil {
		return err
	}
	if pair == nil {
		return fmt.Errorf("legacygroup: add to %s: %w", groupID, protoerr.ErrNoKeyPair)
	}

	now := p.now()
	err = p.store.Write(func(tx *store.Tx) error {
		for _, id := range newIDs {
			if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: id, Role: store.RoleStandard}); err != nil {
				return err
			}
		}
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  groupID,
			AuthorID:  p.localID,
			Variant:   store.VariantInfoMembersAdded,
			Body:      "Added " + strings.Join(names, ", "),
			Timestamp: now,
		})
	})
	if err != nil {
		return err
	}

	if err := p.send(ctx, groupID, groupID, wire.MembersAdded{Members: newIDs}); err != nil {
		return fmt.Errorf("legacygroup: announce additions: %w", err)
	}

	var members []string
	var admins []string
	if err := p.store.Read(func(tx *store.Tx) error {
		rows, err := tx.AllMembers(groupID)
		if err != nil {
			return err
		}
		for _, m := range rows {
			if m.Role == store.RoleAdmin {
				admins = append(admins, m.ProfileID)
			}
			if m.Role != store.RoleZombie {
				members = append(members, m.ProfileID)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	announce := wire.NewGroup{
		Name:              group.Name,
		EncryptionKeyPair: groupcrypto.KeyPair{PublicKey: pair.PublicKey, SecretKey: pair.SecretKey},
		Members:           members,
		Admins:            admins,
		FormedAtMs:        formedAt,
	}
	for _, id := range newIDs {
		if err := p.send(ctx, id, groupID, announce); err != nil {
			p.logf("legacygroup: key delivery to new member %s failed: %v", id, err)
		}
	}

	p.bridge.MarkDirty(groupID)
	return nil
}

// RemoveMembers runs the admin-gated removal: purge the targeted
// standard/zombie rows, announce the removal on the group channel, then
// rotate the encryption key pair to the remaining members. Admins cannot be
// targeted, and an admin cannot remove themselves here (Leave disbands).
func (p *Protocol) RemoveMembers(ctx context.Context, groupID string, memberIDs []string) error {
	return p.removeMembers(ctx, groupID, memberIDs, false)
}

func (p *Protocol) removeMembers(ctx context.Context, groupID string, memberIDs []string, suppressInfo bool) error {
	var names []string
	var anyNonZombie bool

	err := p.store.Read(func(tx *store.Tx) error {
		ok, err := tx.IsAdmin(groupID, p.localID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("legacygroup: remove by non-admin %s: %w", p.localID, protoerr.ErrInvalidGroupUpdate)
		}
		for _, id := range memberIDs {
			if id == p.localID {
				return fmt.Errorf("legacygroup: admin self-removal: %w", protoerr.ErrInvalidGroupUpdate)
			}
			m, err := tx.GetMember(groupID, id)
			if err != nil {
				return err
			}
			if m == nil {
				continue
			}
			if m.Role == store.RoleAdmin {
				return fmt.Errorf("legacygroup: cannot remove admin %s: %w", id, protoerr.ErrInvalidGroupUpdate)
			}
			if m.Role != store.RoleZombie {
				anyNonZombie = true
				name, err := tx.DisplayName(id)
				if err != nil {
					return err
				}
				names = append(names, name)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	now := p.now()
	err = p.store.Write(func(tx *store.Tx) error {
		if err := tx.RemoveMembers(groupID, memberIDs, []store.Role{store.RoleStandard, store.RoleZombie}); err != nil {
			return err
		}
		// A pure zombie cleanup leaves no visible trace.
		if anyNonZombie && !suppressInfo {
			return tx.InsertInteraction(store.Interaction{
				ThreadID:  groupID,
				AuthorID:  p.localID,
				Variant:   store.VariantInfoMembersRemoved,
				Body:      "Removed " + strings.Join(names, ", "),
				Timestamp: now,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 1: the removal announcement. A failure here aborts the whole
	// operation before any new key exists.
	if err := p.send(ctx, groupID, groupID, wire.MembersRemoved{Members: memberIDs}); err != nil {
		return fmt.Errorf("legacygroup: announce removal: %w", err)
	}

	// Phase 2: rotate to the survivors.
	if err := p.rotateKeyPair(ctx, groupID); err != nil {
		return err
	}

	p.bridge.MarkDirty(groupID)
	return nil
}

// Leave removes the local user. An admin leaving disbands the whole group;
// there is no successor election. A standard member only deletes their own
// row. Either way local key material is purged after the announcement is
// out.
func (p *Protocol) Leave(ctx context.Context, groupID string) error {
	var isAdmin bool
	err := p.store.Read(func(tx *store.Tx) error {
		ok, err := tx.IsMember(groupID, p.localID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("legacygroup: leave %s: not a member: %w", groupID, protoerr.ErrInvalidGroupUpdate)
		}
		isAdmin, err = tx.IsAdmin(groupID, p.localID)
		return err
	})
	if err != nil {
		return err
	}

	now := p.now()
	if err := p.store.Write(func(tx *store.Tx) error {
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  groupID,
			AuthorID:  p.localID,
			Variant:   store.VariantInfoMemberLeft,
			Body:      "You left the group",
			Timestamp: now,
		})
	}); err != nil {
		return err
	}

	if err := p.send(ctx, groupID, groupID, wire.MemberLeft{}); err != nil {
		return fmt.Errorf("legacygroup: announce leave: %w", err)
	}

	if err := p.store.Write(func(tx *store.Tx) error {
		if isAdmin {
			if err := tx.RemoveAllMembers(groupID); err != nil {
				return err
			}
		} else if err := tx.RemoveMembers(groupID, []string{p.localID}, []store.Role{store.RoleStandard, store.RoleZombie}); err != nil {
			return err
		}
		if err := tx.SetGroupActive(groupID, false); err != nil {
			return err
		}
		return tx.PurgeKeyPairs(groupID)
	}); err != nil {
		return err
	}

	if p.push != nil {
		p.push.Unsubscribe(groupID)
	}
	p.bridge.MarkDirty(groupID)
	return nil
}

// SendLatestKeyPair re-sends the current key pair to one member over their
// 1:1 channel, for members that reconnect without it. Requests from ids
// that are not current members are refused silently.
func (p *Protocol) SendLatestKeyPair(ctx context.Context, groupID, memberID string) error {
	var isMember bool
	if err := p.store.Read(func(tx *store.Tx) error {
		m, err := tx.GetMember(groupID, memberID)
		if err != nil {
			return err
		}
		isMember = m != nil && m.Role != store.RoleZombie
		return nil
	}); err != nil {
		return err
	}
	if !isMember {
		p.logf("legacygroup: refusing key pair request from non-member %s for %s", memberID, groupID)
		return nil
	}

	pair, err := p.vault.Current(groupID)
	if err != nil {
		return err
	}
	if pair == nil {
		return fmt.Errorf("legacygroup: no key pair for %s: %w", groupID, protoerr.ErrNoKeyPair)
	}

	recipientKey, err := groupcrypto.PublicKeyFromSessionID(memberID)
	if err != nil {
		return err
	}
	wrappers, err := wire.WrapKeyPair(groupcrypto.KeyPair{PublicKey: pair.PublicKey, SecretKey: pair.SecretKey}, [][]byte{recipientKey})
	if err != nil {
		return err
	}
	return p.send(ctx, memberID, groupID, wire.EncryptionKeyPair{TargetGroupID: groupID, Wrappers: wrappers})
}
