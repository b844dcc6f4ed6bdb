// Package dispatch routes decoded control messages to the right protocol
// and guards the whole pipeline with the duplicate-receive gate: a message
// seen before is dropped, and a duplicate record is written only after its
// handler succeeded, so transient failures stay retryable.
package dispatch

import (
	"context"
	"fmt"
	"log"

	"github.com/opensesh/groupcore/internal/dedupe"
	"github.com/opensesh/groupcore/internal/legacygroup"
	"github.com/opensesh/groupcore/internal/moderngroup"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/wire"
)

// Config assembles a Pipeline.
type Config struct {
	Dedupe *dedupe.Store
	Legacy *legacygroup.Protocol
	Modern *moderngroup.Protocol
	Logger *log.Logger
}

// Pipeline is the inbound control-message entry point.
type Pipeline struct {
	dedupe *dedupe.Store
	legacy *legacygroup.Protocol
	modern *moderngroup.Protocol
	logger *log.Logger
}

func New(cfg Config) *Pipeline {
	return &Pipeline{
		dedupe: cfg.Dedupe,
		legacy: cfg.Legacy,
		modern: cfg.Modern,
		logger: cfg.Logger,
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// uniqueID identifies one inbound message for deduplication. The server
// hash is preferred; without one the sender and timestamp stand in.
func uniqueID(msg wire.ControlMessage) string {
	if msg.ServerHash != "" {
		return msg.ServerHash
	}
	return fmt.Sprintf("%s/%d", msg.Sender, msg.SentAtMs)
}

// Handle processes one inbound control message. Duplicates return nil
// without side effects. An unavailable dedupe key is a hard stop: no
// handler runs when receipt cannot be recorded afterwards.
func (p *Pipeline) Handle(ctx context.Context, msg wire.ControlMessage) error {
	if msg.Payload == nil {
		return fmt.Errorf("dispatch: message without payload: %w", protoerr.ErrInvalidMessage)
	}
	if err := wire.ValidateTarget(msg); err != nil {
		return fmt.Errorf("dispatch: %w: %w", err, protoerr.ErrInvalidMessage)
	}
	if err := p.dedupe.Ready(); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	id := uniqueID(msg)
	if p.dedupe.Exists(msg.GroupID, id) {
		p.logf("dispatch: duplicate %s in %s dropped", msg.Payload.Kind(), msg.GroupID)
		return nil
	}

	if err := p.route(ctx, msg); err != nil {
		return err
	}
	if err := p.dedupe.Create(msg.GroupID, id); err != nil {
		// Handler state is already committed. A replay of this message
		// will re-run the handler, which is why every handler is written
		// to be idempotent.
		p.logf("dispatch: recording receipt of %s failed: %v", msg.Payload.Kind(), err)
	}
	return nil
}

func (p *Pipeline) route(ctx context.Context, msg wire.ControlMessage) error {
	switch payload := msg.Payload.(type) {
	case wire.NewGroup:
		return p.legacy.HandleNewGroup(ctx, msg, payload)
	case wire.MembersAdded:
		return p.legacy.HandleMembersAdded(ctx, msg, payload)
	case wire.MembersRemoved:
		return p.legacy.HandleMembersRemoved(ctx, msg, payload)
	case wire.MemberLeft:
		return p.legacy.HandleMemberLeft(ctx, msg, payload)
	case wire.EncryptionKeyPair:
		return p.legacy.HandleEncryptionKeyPair(ctx, msg, payload)
	case wire.Invite:
		return p.modern.HandleInvite(ctx, msg, payload)
	case wire.InviteResponse:
		return p.modern.HandleInviteResponse(ctx, msg, payload)
	case wire.Promotion:
		return p.modern.HandlePromotion(ctx, msg, payload)
	case wire.PromotionResponse:
		return p.modern.HandlePromotionResponse(ctx, msg, payload)
	case wire.GroupMemberLeft:
		return p.modern.HandleMemberLeft(ctx, msg, payload)
	case wire.MemberChange:
		return p.modern.HandleMemberChange(ctx, msg, payload)
	case wire.InfoChange:
		return p.modern.HandleInfoChange(ctx, msg, payload)
	case wire.DeleteMemberContent:
		return p.modern.HandleDeleteMemberContent(ctx, msg, payload)
	default:
		return fmt.Errorf("dispatch: unhandled payload %s: %w", msg.Payload.Kind(), protoerr.ErrInvalidMessage)
	}
}
