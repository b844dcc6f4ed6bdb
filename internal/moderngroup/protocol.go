// Package moderngroup handles control messages for the updated group
// design. Authoritative membership and key state travels through the shared
// config sync channel; most messages here either narrate changes for the
// thread history or nudge the config view, so the handlers mutate far less
// local state than the legacy protocol does.
package moderngroup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opensesh/groupcore/internal/configsync"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/transport"
	"github.com/opensesh/groupcore/internal/wire"
)

// Config assembles a Protocol.
type Config struct {
	Store        *store.Store
	Sender       transport.Sender
	Bridge       configsync.Bridge
	Logger       *log.Logger
	LocalID      string
	Now          func() time.Time
	NewMessageID func() string
}

// Protocol handles the eight updated-group control-message kinds.
type Protocol struct {
	store  *store.Store
	sender transport.Sender
	bridge configsync.Bridge
	logger *log.Logger

	localID  string
	now      func() time.Time
	newMsgID func() string
}

// New creates a Protocol from the config.
func New(cfg Config) *Protocol {
	p := &Protocol{
		store:    cfg.Store,
		sender:   cfg.Sender,
		bridge:   cfg.Bridge,
		logger:   cfg.Logger,
		localID:  cfg.LocalID,
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

// envelopeTime enforces the malformed-message policy shared by every
// handler here: no sender or no timestamp means no state change at all.
func envelopeTime(msg wire.ControlMessage) (time.Time, error) {
	if msg.Sender == "" || msg.SentAtMs == 0 {
		return time.Time{}, fmt.Errorf("moderngroup: %s without sender or timestamp: %w", msg.Payload.Kind(), protoerr.ErrInvalidMessage)
	}
	return time.UnixMilli(int64(msg.SentAtMs)), nil
}

func (p *Protocol) upsertSenderProfile(tx *store.Tx, senderID string, profile *wire.Profile) error {
	if profile == nil {
		return nil
	}
	return tx.UpsertProfile(store.Profile{
		ProfileID:  senderID,
		Name:       profile.DisplayName,
		PictureURL: profile.PictureURL,
		ProfileKey: profile.ProfileKey,
	})
}

// HandleInvite creates the local record for a group the sender invited us
// to. Unless the inviter is an already-approved contact the conversation
// starts in the message-request state instead of being auto-joined.
func (p *Protocol) HandleInvite(ctx context.Context, msg wire.ControlMessage, payload wire.Invite) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	var invited bool
	err = p.store.Write(func(tx *store.Tx) error {
		if err := p.upsertSenderProfile(tx, msg.Sender, payload.Profile); err != nil {
			return err
		}
		senderProfile, err := tx.GetProfile(msg.Sender)
		if err != nil {
			return err
		}
		invited = senderProfile == nil || !senderProfile.IsApproved

		if err := tx.SaveGroup(&store.Group{
			GroupID:   msg.GroupID,
			Name:      payload.Name,
			FormedAt:  sentAt,
			IsActive:  true,
			IsInvited: invited,
		}); err != nil {
			return err
		}
		status := store.StatusPending
		if !invited {
			status = store.StatusAccepted
		}
		return tx.UpsertMember(store.Member{
			GroupID:    msg.GroupID,
			ProfileID:  p.localID,
			Role:       store.RoleStandard,
			RoleStatus: status,
		})
	})
	if err != nil {
		return err
	}

	if !invited {
		// Trusted inviter: run the same approval flow an accepted invite
		// would, so admins learn we are in.
		if err := p.send(ctx, msg.GroupID, msg.GroupID, wire.InviteResponse{IsApproved: true}); err != nil {
			p.logf("moderngroup: auto invite response for %s failed: %v", msg.GroupID, err)
		}
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleInviteResponse records an invite acceptance or decline. Only
// admins action this. A missing or already-admin sender row is not
// force-rewritten, since that would clobber admin-assigned state; only the
// config view's invited flag is nudged. A decline drops the sender's
// pending row instead.
func (p *Protocol) HandleInviteResponse(ctx context.Context, msg wire.ControlMessage, payload wire.InviteResponse) error {
	if _, err := envelopeTime(msg); err != nil {
		return err
	}

	var nudgeOnly bool
	err := p.store.Write(func(tx *store.Tx) error {
		if err := p.upsertSenderProfile(tx, msg.Sender, payload.Profile); err != nil {
			return err
		}
		isAdmin, err := tx.IsAdmin(msg.GroupID, p.localID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return fmt.Errorf("moderngroup: invite response without admin status: %w", protoerr.ErrInvalidGroupUpdate)
		}
		m, err := tx.GetMember(msg.GroupID, msg.Sender)
		if err != nil {
			return err
		}
		if m == nil || m.Role == store.RoleAdmin {
			nudgeOnly = true
			return nil
		}
		if !payload.IsApproved {
			return tx.RemoveMembers(msg.GroupID, []string{msg.Sender}, []store.Role{store.RoleStandard, store.RoleZombie})
		}
		m.RoleStatus = store.StatusAccepted
		return tx.UpsertMember(*m)
	})
	if err != nil {
		return err
	}

	if nudgeOnly {
		p.bridge.SetMemberInvited(msg.GroupID, msg.Sender, false)
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandlePromotion is only meaningful to the promoted member; everyone else
// learns about the promotion from the eventual PromotionResponse.
func (p *Protocol) HandlePromotion(ctx context.Context, msg wire.ControlMessage, payload wire.Promotion) error {
	if _, err := envelopeTime(msg); err != nil {
		return err
	}
	if payload.MemberID != p.localID {
		return nil
	}

	err := p.store.Write(func(tx *store.Tx) error {
		g, err := tx.GetGroup(msg.GroupID)
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("moderngroup: promotion for unknown group %s: %w", msg.GroupID, protoerr.ErrInvalidGroupUpdate)
		}
		g.AdminSecret = payload.AdminSecretKey
		if err := tx.SaveGroup(g); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{
			GroupID:    msg.GroupID,
			ProfileID:  p.localID,
			Role:       store.RoleAdmin,
			RoleStatus: store.StatusAccepted,
		})
	})
	if err != nil {
		return err
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandlePromotionResponse upserts the sender as an accepted admin. The
// promotion that led here was already admin-gated when sent, so accepting
// it is self-authorizing.
func (p *Protocol) HandlePromotionResponse(ctx context.Context, msg wire.ControlMessage, payload wire.PromotionResponse) error {
	if _, err := envelopeTime(msg); err != nil {
		return err
	}

	err := p.store.Write(func(tx *store.Tx) error {
		if err := p.upsertSenderProfile(tx, msg.Sender, payload.Profile); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{
			GroupID:    msg.GroupID,
			ProfileID:  msg.Sender,
			Role:       store.RoleAdmin,
			RoleStatus: store.StatusAccepted,
		})
	})
	if err != nil {
		return err
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleMemberLeft records a leave and, when the local user holds the
// group's admin key material, processes the removal right away. The change
// message is suppressed: the member-left record already tells the story.
func (p *Protocol) HandleMemberLeft(ctx context.Context, msg wire.ControlMessage, _ wire.GroupMemberLeft) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	err = p.store.Write(func(tx *store.Tx) error {
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

		g, err := tx.GetGroup(msg.GroupID)
		if err != nil {
			return err
		}
		if g != nil && len(g.AdminSecret) > 0 {
			return tx.RemoveMembers(msg.GroupID, []string{msg.Sender}, []store.Role{store.RoleStandard, store.RoleZombie})
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.bridge.MarkDirty(msg.GroupID)
	return nil
}

// HandleMemberChange is record-only: the membership mutation itself
// arrives via config sync. This resolves display names and writes one
// human-readable history record.
func (p *Protocol) HandleMemberChange(ctx context.Context, msg wire.ControlMessage, payload wire.MemberChange) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	return p.store.Write(func(tx *store.Tx) error {
		names := make([]string, 0, len(payload.Members))
		for _, id := range payload.Members {
			name, err := tx.DisplayName(id)
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		var body string
		switch payload.Type {
		case wire.ChangeAdded:
			body = strings.Join(names, ", ") + " joined the group"
		case wire.ChangeRemoved:
			body = strings.Join(names, ", ") + " was removed from the group"
		case wire.ChangePromoted:
			body = strings.Join(names, ", ") + " was promoted to admin"
		default:
			return fmt.Errorf("moderngroup: unknown member change %d: %w", payload.Type, protoerr.ErrInvalidMessage)
		}
		variant := store.VariantInfoGroupUpdated
		if payload.Type == wire.ChangePromoted {
			variant = store.VariantInfoPromoted
		}
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  msg.GroupID,
			AuthorID:  msg.Sender,
			Variant:   variant,
			Body:      body,
			Timestamp: sentAt,
		})
	})
}

// HandleInfoChange is record-only. For the disappearing-timer sub-case the
// duration is read just to build the text; the authoritative timer state
// comes from config sync and must not be persisted from here.
func (p *Protocol) HandleInfoChange(ctx context.Context, msg wire.ControlMessage, payload wire.InfoChange) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}

	var body string
	switch payload.Type {
	case wire.InfoChangeName:
		body = "Group name changed to " + payload.Name
	case wire.InfoChangeAvatar:
		body = "Group photo changed"
	case wire.InfoChangeDisappearing:
		if payload.DurationSeconds == 0 {
			body = "Disappearing messages turned off"
		} else {
			body = fmt.Sprintf("Disappearing messages set to %s", (time.Duration(payload.DurationSeconds) * time.Second).String())
		}
	default:
		return fmt.Errorf("moderngroup: unknown info change %d: %w", payload.Type, protoerr.ErrInvalidMessage)
	}

	return p.store.Write(func(tx *store.Tx) error {
		return tx.InsertInteraction(store.Interaction{
			ThreadID:  msg.GroupID,
			AuthorID:  msg.Sender,
			Variant:   store.VariantInfoGroupUpdated,
			Body:      body,
			Timestamp: sentAt,
		})
	})
}

// HandleDeleteMemberContent purges interactions authored by the named
// members strictly before the message timestamp.
func (p *Protocol) HandleDeleteMemberContent(ctx context.Context, msg wire.ControlMessage, payload wire.DeleteMemberContent) error {
	sentAt, err := envelopeTime(msg)
	if err != nil {
		return err
	}
	if len(payload.Members) == 0 {
		return fmt.Errorf("moderngroup: delete member content without targets: %w", protoerr.ErrInvalidMessage)
	}

	return p.store.Write(func(tx *store.Tx) error {
		n, err := tx.DeleteInteractionsBefore(msg.GroupID, payload.Members, sentAt)
		if err != nil {
			return err
		}
		p.logf("moderngroup: purged %d interactions in %s", n, msg.GroupID)
		return nil
	})
}

func (p *Protocol) send(ctx context.Context, destination, groupID string, payload wire.Payload) error {
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
