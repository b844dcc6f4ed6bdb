package moderngroup

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opensesh/groupcore/internal/configsync"
	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/transport"
	"github.com/opensesh/groupcore/internal/wire"
)

type fixture struct {
	store  *store.Store
	sender *transport.Mem
	bridge *configsync.MemBridge
	clock  *atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	clock := &atomic.Int64{}
	clock.Store(1_700_000_000_000)
	return &fixture{
		store:  s,
		sender: transport.NewMem(),
		bridge: configsync.NewMemBridge(),
		clock:  clock,
	}
}

func (f *fixture) protocolFor(id string) *Protocol {
	return New(Config{
		Store:   f.store,
		Sender:  f.sender,
		Bridge:  f.bridge,
		LocalID: id,
		Now: func() time.Time {
			return time.UnixMilli(f.clock.Add(1))
		},
	})
}

func newIdentity(t *testing.T) string {
	t.Helper()
	kp, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	return groupcrypto.SessionID(groupcrypto.SessionIDPrefixStandard, kp.PublicKey)
}

func newGroupID(t *testing.T) string {
	t.Helper()
	kp, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	return groupcrypto.SessionID(groupcrypto.SessionIDPrefixGroup, kp.PublicKey)
}

func msgFrom(sender, groupID string, at int64, payload wire.Payload) wire.ControlMessage {
	return wire.ControlMessage{
		Sender:   sender,
		SentAtMs: uint64(at),
		GroupID:  groupID,
		Payload:  payload,
	}
}

func (f *fixture) write(t *testing.T, fn func(tx *store.Tx) error) {
	t.Helper()
	if err := f.store.Write(fn); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) member(t *testing.T, groupID, profileID string) *store.Member {
	t.Helper()
	var out *store.Member
	if err := f.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.GetMember(groupID, profileID)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	return out
}

func (f *fixture) group(t *testing.T, groupID string) *store.Group {
	t.Helper()
	var out *store.Group
	if err := f.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.GetGroup(groupID)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	return out
}

func (f *fixture) interactions(t *testing.T, threadID string) []store.Interaction {
	t.Helper()
	var out []store.Interaction
	if err := f.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.Interactions(threadID)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestHandleInviteFromStrangerStartsInvited(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	inviterID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	msg := msgFrom(inviterID, groupID, 1000, wire.Invite{
		Name:    "book club",
		Profile: &wire.Profile{DisplayName: "Ines"},
	})
	if err := p.HandleInvite(context.Background(), msg, msg.Payload.(wire.Invite)); err != nil {
		t.Fatal(err)
	}

	g := f.group(t, groupID)
	if g == nil || !g.IsInvited {
		t.Fatalf("group = %+v, want invited", g)
	}
	m := f.member(t, groupID, localID)
	if m == nil || m.RoleStatus != store.StatusPending {
		t.Fatalf("local member = %+v, want pending", m)
	}
	if got := len(f.sender.Sent()); got != 0 {
		t.Fatalf("stranger invite sent %d messages, want 0", got)
	}
}

func TestHandleInviteFromApprovedContactAutoJoins(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	inviterID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.UpsertProfile(store.Profile{ProfileID: inviterID, Name: "Ines"}); err != nil {
			return err
		}
		return tx.SetProfileApproved(inviterID, true)
	})

	msg := msgFrom(inviterID, groupID, 1000, wire.Invite{Name: "book club"})
	if err := p.HandleInvite(context.Background(), msg, msg.Payload.(wire.Invite)); err != nil {
		t.Fatal(err)
	}

	if g := f.group(t, groupID); g == nil || g.IsInvited {
		t.Fatalf("group = %+v, want auto-joined", g)
	}
	if m := f.member(t, groupID, localID); m == nil || m.RoleStatus != store.StatusAccepted {
		t.Fatalf("local member = %+v, want accepted", m)
	}
	sent := f.sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1 invite response", len(sent))
	}
	resp, ok := sent[0].Message.Payload.(wire.InviteResponse)
	if !ok || !resp.IsApproved {
		t.Fatalf("payload = %+v, want approved InviteResponse", sent[0].Message.Payload)
	}
}

func TestHandleInviteResponseAcceptsPendingMember(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	joinerID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleAdmin, RoleStatus: store.StatusAccepted}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: joinerID, Role: store.RoleStandard, RoleStatus: store.StatusPending})
	})

	msg := msgFrom(joinerID, groupID, 1000, wire.InviteResponse{IsApproved: true})
	if err := p.HandleInviteResponse(context.Background(), msg, msg.Payload.(wire.InviteResponse)); err != nil {
		t.Fatal(err)
	}

	if m := f.member(t, groupID, joinerID); m == nil || m.RoleStatus != store.StatusAccepted {
		t.Fatalf("joiner = %+v, want accepted", m)
	}
	if _, pushed := f.bridge.Invited(groupID, joinerID); pushed {
		t.Fatal("known standard member should not trigger an invited-flag nudge")
	}
}

func TestHandleInviteResponseDeclineRemovesPendingRow(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	joinerID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleAdmin, RoleStatus: store.StatusAccepted}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: joinerID, Role: store.RoleStandard, RoleStatus: store.StatusPending})
	})

	msg := msgFrom(joinerID, groupID, 1000, wire.InviteResponse{IsApproved: false})
	if err := p.HandleInviteResponse(context.Background(), msg, msg.Payload.(wire.InviteResponse)); err != nil {
		t.Fatal(err)
	}

	if m := f.member(t, groupID, joinerID); m != nil {
		t.Fatalf("declined joiner still has row %+v", m)
	}
}

func TestHandleInviteResponseForUnknownMemberOnlyNudgesConfig(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	joinerID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleAdmin, RoleStatus: store.StatusAccepted})
	})

	msg := msgFrom(joinerID, groupID, 1000, wire.InviteResponse{IsApproved: true})
	if err := p.HandleInviteResponse(context.Background(), msg, msg.Payload.(wire.InviteResponse)); err != nil {
		t.Fatal(err)
	}

	if m := f.member(t, groupID, joinerID); m != nil {
		t.Fatalf("no row should be created for unknown responder, got %+v", m)
	}
	invited, pushed := f.bridge.Invited(groupID, joinerID)
	if !pushed || invited {
		t.Fatalf("invited nudge = (%v, %v), want pushed false flag", invited, pushed)
	}
}

func TestHandleInviteResponseRequiresLocalAdmin(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	joinerID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleStandard, RoleStatus: store.StatusAccepted})
	})

	msg := msgFrom(joinerID, groupID, 1000, wire.InviteResponse{IsApproved: true})
	err := p.HandleInviteResponse(context.Background(), msg, msg.Payload.(wire.InviteResponse))
	if !errors.Is(err, protoerr.ErrInvalidGroupUpdate) {
		t.Fatalf("err = %v, want ErrInvalidGroupUpdate", err)
	}
}

func TestHandlePromotionForSomeoneElseIsNoOp(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	otherID := newIdentity(t)
	adminID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	msg := msgFrom(adminID, groupID, 1000, wire.Promotion{MemberID: otherID, AdminSecretKey: []byte("secret")})
	if err := p.HandlePromotion(context.Background(), msg, msg.Payload.(wire.Promotion)); err != nil {
		t.Fatal(err)
	}
	if g := f.group(t, groupID); g != nil {
		t.Fatalf("promotion for someone else created group state: %+v", g)
	}
}

func TestHandlePromotionStoresAdminSecret(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	adminID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleStandard, RoleStatus: store.StatusAccepted})
	})

	msg := msgFrom(adminID, groupID, 1000, wire.Promotion{MemberID: localID, AdminSecretKey: []byte("secret")})
	if err := p.HandlePromotion(context.Background(), msg, msg.Payload.(wire.Promotion)); err != nil {
		t.Fatal(err)
	}

	g := f.group(t, groupID)
	if g == nil || string(g.AdminSecret) != "secret" {
		t.Fatalf("group = %+v, want stored admin secret", g)
	}
	if m := f.member(t, groupID, localID); m == nil || m.Role != store.RoleAdmin {
		t.Fatalf("local member = %+v, want admin", m)
	}
}

func TestHandlePromotionResponseUpgradesSender(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	promotedID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: promotedID, Role: store.RoleStandard, RoleStatus: store.StatusPending})
	})

	msg := msgFrom(promotedID, groupID, 1000, wire.PromotionResponse{Profile: &wire.Profile{DisplayName: "Pat"}})
	if err := p.HandlePromotionResponse(context.Background(), msg, msg.Payload.(wire.PromotionResponse)); err != nil {
		t.Fatal(err)
	}

	m := f.member(t, groupID, promotedID)
	if m == nil || m.Role != store.RoleAdmin || m.RoleStatus != store.StatusAccepted {
		t.Fatalf("promoted member = %+v, want accepted admin", m)
	}
}

func TestHandleMemberLeftAsAdminRemovesRow(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	leaverID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true, AdminSecret: []byte("secret")}); err != nil {
			return err
		}
		if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: localID, Role: store.RoleAdmin, RoleStatus: store.StatusAccepted}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: leaverID, Role: store.RoleStandard, RoleStatus: store.StatusAccepted})
	})

	msg := msgFrom(leaverID, groupID, 1000, wire.GroupMemberLeft{})
	if err := p.HandleMemberLeft(context.Background(), msg, wire.GroupMemberLeft{}); err != nil {
		t.Fatal(err)
	}

	if m := f.member(t, groupID, leaverID); m != nil {
		t.Fatalf("leaver row should be gone, got %+v", m)
	}
	history := f.interactions(t, groupID)
	if len(history) != 1 || history[0].Variant != store.VariantInfoMemberLeft {
		t.Fatalf("history = %+v, want exactly one member-left record", history)
	}
}

func TestHandleMemberLeftWithoutAdminSecretOnlyRecords(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	leaverID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "g", IsActive: true}); err != nil {
			return err
		}
		return tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: leaverID, Role: store.RoleStandard, RoleStatus: store.StatusAccepted})
	})

	msg := msgFrom(leaverID, groupID, 1000, wire.GroupMemberLeft{})
	if err := p.HandleMemberLeft(context.Background(), msg, wire.GroupMemberLeft{}); err != nil {
		t.Fatal(err)
	}

	if m := f.member(t, groupID, leaverID); m == nil {
		t.Fatal("non-admin client must not remove the membership row itself")
	}
	if history := f.interactions(t, groupID); len(history) != 1 {
		t.Fatalf("history = %+v, want one member-left record", history)
	}
}

func TestHandleMemberChangeWritesReadableRecord(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	adminID := newIdentity(t)
	joinerID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		return tx.UpsertProfile(store.Profile{ProfileID: joinerID, Name: "Jo"})
	})

	msg := msgFrom(adminID, groupID, 1000, wire.MemberChange{Type: wire.ChangeAdded, Members: []string{joinerID}})
	if err := p.HandleMemberChange(context.Background(), msg, msg.Payload.(wire.MemberChange)); err != nil {
		t.Fatal(err)
	}

	history := f.interactions(t, groupID)
	if len(history) != 1 {
		t.Fatalf("got %d records, want 1", len(history))
	}
	if history[0].Body != "Jo joined the group" {
		t.Fatalf("body = %q", history[0].Body)
	}
	if m := f.member(t, groupID, joinerID); m != nil {
		t.Fatal("member change records history only, membership comes from config sync")
	}
}

func TestHandleInfoChangeDisappearingIsNotPersisted(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	adminID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		return tx.SaveGroup(&store.Group{GroupID: groupID, Name: "before", IsActive: true})
	})

	msg := msgFrom(adminID, groupID, 1000, wire.InfoChange{Type: wire.InfoChangeDisappearing, DurationSeconds: 3600})
	if err := p.HandleInfoChange(context.Background(), msg, msg.Payload.(wire.InfoChange)); err != nil {
		t.Fatal(err)
	}

	history := f.interactions(t, groupID)
	if len(history) != 1 || history[0].Body != "Disappearing messages set to 1h0m0s" {
		t.Fatalf("history = %+v", history)
	}
	if g := f.group(t, groupID); g.Name != "before" {
		t.Fatalf("info change must not mutate group state, got %+v", g)
	}
}

func TestHandleInfoChangeRename(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	adminID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	msg := msgFrom(adminID, groupID, 1000, wire.InfoChange{Type: wire.InfoChangeName, Name: "new name"})
	if err := p.HandleInfoChange(context.Background(), msg, msg.Payload.(wire.InfoChange)); err != nil {
		t.Fatal(err)
	}
	history := f.interactions(t, groupID)
	if len(history) != 1 || history[0].Body != "Group name changed to new name" {
		t.Fatalf("history = %+v", history)
	}
}

func TestHandleDeleteMemberContentPurgesStrictlyBefore(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	adminID := newIdentity(t)
	targetID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	f.write(t, func(tx *store.Tx) error {
		for _, ts := range []int64{100, 200, 300} {
			if err := tx.InsertInteraction(store.Interaction{
				ThreadID:  groupID,
				AuthorID:  targetID,
				Variant:   store.VariantStandard,
				Body:      "m",
				Timestamp: time.UnixMilli(ts),
			}); err != nil {
				return err
			}
		}
		return nil
	})

	msg := msgFrom(adminID, groupID, 300, wire.DeleteMemberContent{Members: []string{targetID}})
	if err := p.HandleDeleteMemberContent(context.Background(), msg, msg.Payload.(wire.DeleteMemberContent)); err != nil {
		t.Fatal(err)
	}

	history := f.interactions(t, groupID)
	if len(history) != 1 || history[0].Timestamp.UnixMilli() != 300 {
		t.Fatalf("history = %+v, want only the boundary message kept", history)
	}
}

func TestHandlersRejectMissingEnvelope(t *testing.T) {
	f := newFixture(t)
	localID := newIdentity(t)
	groupID := newGroupID(t)
	p := f.protocolFor(localID)

	msg := wire.ControlMessage{GroupID: groupID, Payload: wire.GroupMemberLeft{}}
	if err := p.HandleMemberLeft(context.Background(), msg, wire.GroupMemberLeft{}); !errors.Is(err, protoerr.ErrInvalidMessage) {
		t.Fatalf("err = %v, want ErrInvalidMessage", err)
	}
	if history := f.interactions(t, groupID); len(history) != 0 {
		t.Fatalf("malformed message left state behind: %+v", history)
	}
}
