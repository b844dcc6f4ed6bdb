package legacygroup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/wire"
)

func envelopeTime(msg wire.ControlMessage) (time.Time, error) {
	if msg.Sender == "" || msg.SentAtMs == 0 {
		return time.Time{}, fmt.Errorf("legacygroup: %s without sender or timestamp: %w", msg.Payload.Kind(), protoerr.ErrInvalidMessage)
	}
	return time.UnixMilli(int64(msg.SentAtMs)), nil
}

// HandleNewGroup applies a "new group" announcement received over a 1:1
// channel: the group record, its member set and the initial encryption key
// pair. Upserts keep a replayed or reordered announcement harmless.
func (p *Protocol) HandleNewGroup(ctx context.Context, msg wire.ControlMessage, payload wire.NewGroup) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}
	if len(payload.EncryptionKeyPair.PublicKey) != groupcrypto.KeySize {
		return fmt.Errorf("legacygroup: new group without key pair: %w", protoerr.ErrInvalidMessage)
	}

	admins := make(map[string]bool, len(payload.Admins))
	for _, id := range payload.Admins {
		admins[id] = true
	}

	err = p.store.Write(func(tx *store.Tx) error {
		existing, err := tx.GetGroup(msg.GroupID)
		if err != nil {
			return err
		}
		g := &store.Group{GroupID: msg.GroupID, Name: payload.Name, FormedAt: time.UnixMilli(int64(payload.FormedAtMs)), IsActive: true}
		if existing != nil {
			g.FormedAt = existing.FormedAt
		}
		if err := tx.SaveGroup(g); err != nil {
			return err
		}
		for _, id := range payload.Members {
			role := store.RoleStandard
			if admins[id] {
				role = store.RoleAdmin
			}
			if err := tx.UpsertMember(store.Member{GroupID: msg.GroupID, ProfileID: id, Role: role}); err != nil {
				return err
			}
		}
		if err := tx.AddKeyPair(store.KeyPair{
			GroupID:    msg.GroupID,
			PublicKey:  payload.EncryptionKeyPair.PublicKey,
			SecretKey:  payload.EncryptionKeyPair.SecretKey,
			ReceivedAt: sentAt,
		}); err != nil {
			return err
		}
		if existing == nil {
			return tx.InsertInteraction(store.Interaction{
				ThreadID:  msg.GroupID,
				AuthorID:  msg.Sender,
				Variant:   store.VariantInfoGroupCreated,
				Body:      "Group created",
				Timestamp: sentAt,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleMembersAdded applies an addition announced on the group channel.
// Any member may announce additions; unlike removal there is no admin check
// on receipt, matching the permissive invite model of the wire protocol.
func (p *Protocol) HandleMembersAdded(ctx context.Context, msg wire.ControlMessage, payload wire.MembersAdded) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	err = p.store.Write(func(tx *store.Tx) error {
		ok, err := tx.IsMember(msg.GroupID, msg.Sender)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("legacygroup: additions from non-member %s: %w", msg.Sender, protoerr.ErrInvalidGroupUpdate)
		}
		var added []string
		for _, id := range payload.Members {
			isMember, err := tx.IsMember(msg.GroupID, id)
			if err != nil {
				return err
			}
			if isMember {
				continue
			}
			if err := tx.UpsertMember(store.Member{GroupID: msg.GroupID, ProfileID: id, Role: store.RoleStandard}); err != nil {
				return err
			}
			name, err := tx.DisplayName(id)
			if err != nil {
				return err
			}
			added = append(added, name)
		}
		if len(added) == 0 {
			return nil
		}
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  msg.GroupID,
			AuthorID:  msg.Sender,
			Variant:   store.VariantInfoMembersAdded,
			Body:      "Added " + strings.Join(added, ", "),
			Timestamp: sentAt,
		})
	})
	if err != nil {
		return err
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleMembersRemoved applies a removal announced on the group channel.
// Removal is admin-gated on receipt: a non-admin sender changes nothing.
func (p *Protocol) HandleMembersRemoved(ctx context.Context, msg wire.ControlMessage, payload wire.MembersRemoved) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	var localRemoved bool
	err = p.store.Write(func(tx *store.Tx) error {
		ok, err := tx.IsAdmin(msg.GroupID, msg.Sender)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("legacygroup: removal from non-admin %s: %w", msg.Sender, protoerr.ErrInvalidGroupUpdate)
		}

		var removedNames []string
		for _, id := range payload.Members {
			m, err := tx.GetMember(msg.GroupID, id)
			if err != nil {
				return err
			}
			if m == nil || m.Role == store.RoleAdmin {
				continue
			}
			if m.Role != store.RoleZombie {
				name, err := tx.DisplayName(id)
				if err != nil {
					return err
				}
				removedNames = append(removedNames, name)
			}
			if id == p.localID {
				localRemoved = true
			}
		}
		if err := tx.RemoveMembers(msg.GroupID, payload.Members, []store.Role{store.RoleStandard, store.RoleZombie}); err != nil {
			return err
		}
		if localRemoved {
			if err := tx.SetGroupActive(msg.GroupID, false); err != nil {
				return err
			}
			if err := tx.PurgeKeyPairs(msg.GroupID); err != nil {
				return err
			}
		}
		if len(removedNames) == 0 {
			return nil
		}
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  msg.GroupID,
			AuthorID:  msg.Sender,
			Variant:   store.VariantInfoMembersRemoved,
			Body:      "Removed " + strings.Join(removedNames, ", "),
			Timestamp: sentAt,
		})
	})
	if err != nil {
		return err
	}
	if localRemoved && p.push != nil {
		p.push.Unsubscribe(msg.GroupID)
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleMemberLeft applies another member's leave announcement. A leaving
// admin disbands the group for everyone. A leaving standard member becomes
// a zombie; when the local user is an admin the zombie is processed right
// away, which triggers one key-rotation cycle for the survivors.
func (p *Protocol) HandleMemberLeft(ctx context.Context, msg wire.ControlMessage, _ wire.MemberLeft) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	var (
		senderWasAdmin bool
		senderStanding bool // sender held a non-zombie row
		localIsAdmin   bool
	)
	err = p.store.Write(func(tx *store.Tx) error {
		m, err := tx.GetMember(msg.GroupID, msg.Sender)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("legacygroup: leave from non-member %s: %w", msg.Sender, protoerr.ErrInvalidGroupUpdate)
		}
		senderWasAdmin = m.Role == store.RoleAdmin
		senderStanding = m.Role != store.RoleZombie
		localIsAdmin, err = tx.IsAdmin(msg.GroupID, p.localID)
		if err != nil {
			return err
		}

		if senderStanding {
			name, err := tx.DisplayName(msg.Sender)
			if err != nil {
				return err
			}
			if err := tx.InsertInteraction(store.Interaction{
				ThreadID:  msg.GroupID,
				AuthorID:  msg.Sender,
				Variant:   store.VariantInfoMemberLeft,
				Body:      name + " left the group",
				Timestamp: sentAt,
			}); err != nil {
				return err
			}
		}

		if senderWasAdmin {
			// No successor election: the group disbands.
			if err := tx.RemoveAllMembers(msg.GroupID); err != nil {
				return err
			}
			if err := tx.SetGroupActive(msg.GroupID, false); err != nil {
				return err
			}
			return tx.PurgeKeyPairs(msg.GroupID)
		}
		return tx.UpsertMember(store.Member{GroupID: msg.GroupID, ProfileID: msg.Sender, Role: store.RoleZombie})
	})
	if err != nil {
		return err
	}

	if senderWasAdmin {
		if p.push != nil {
			p.push.Unsubscribe(msg.GroupID)
		}
		p.bridge.MarkDirty(msg.GroupID)
		return nil
	}

	if localIsAdmin {
		// The member-left interaction above already recorded the event,
		// so the removal pass stays silent.
		if err := p.removeMembers(ctx, msg.GroupID, []string{msg.Sender}, true); err != nil {
			return err
		}
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleEncryptionKeyPair applies a rotated key pair. Only the wrapper
// addressed to the local user is considered; a message without one is not
// an error, just somebody else's copy.
func (p *Protocol) HandleEncryptionKeyPair(ctx context.Context, msg wire.ControlMessage, payload wire.EncryptionKeyPair) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	groupID := msg.GroupID
	if payload.TargetGroupID != "" {
		groupID = payload.TargetGroupID
	}

	var senderIsAdmin bool
	if err := p.store.Read(func(tx *store.Tx) error {
		g, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("legacygroup: key pair for unknown group %s: %w", groupID, protoerr.ErrInvalidGroupUpdate)
		}
		senderIsAdmin, err = tx.IsAdmin(groupID, msg.Sender)
		return err
	}); err != nil {
		return err
	}
	if !senderIsAdmin {
		return fmt.Errorf("legacygroup: key pair from non-admin %s: %w", msg.Sender, protoerr.ErrInvalidGroupUpdate)
	}

	pair, ok, err := wire.UnwrapKeyPair(payload.Wrappers, p.localKey)
	if err != nil {
		return fmt.Errorf("legacygroup: unwrap key pair: %w", err)
	}
	if !ok {
		p.logf("legacygroup: key pair message for %s carried no wrapper for us", groupID)
		return nil
	}

	return p.store.Write(func(tx *store.Tx) error {
		return tx.AddKeyPair(store.KeyPair{
			GroupID:    groupID,
			PublicKey:  pair.PublicKey,
			SecretKey:  pair.SecretKey,
			ReceivedAt: sentAt,
		})
	})
}
