package legacygroup

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opensesh/groupcore/internal/configsync"
	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/keyvault"
	"github.com/opensesh/groupcore/internal/protoerr"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/transport"
	"github.com/opensesh/groupcore/internal/wire"
)

type fixture struct {
	store  *store.Store
	vault  *keyvault.Vault
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
		vault:  keyvault.New(s),
		sender: transport.NewMem(),
		bridge: configsync.NewMemBridge(),
		clock:  clock,
	}
}

// protocolFor builds a Protocol acting as the given identity over the
// shared fixture state. The clock ticks on every read so timestamps are
// strictly increasing.
func (f *fixture) protocolFor(id string, key groupcrypto.KeyPair) *Protocol {
	return New(Config{
		Store:        f.store,
		Vault:        f.vault,
		Sender:       f.sender,
		Bridge:       f.bridge,
		LocalID:      id,
		LocalKeyPair: key,
		Now: func() time.Time {
			return time.UnixMilli(f.clock.Add(1))
		},
	})
}

func newIdentity(t *testing.T) (string, groupcrypto.KeyPair) {
	t.Helper()
	kp, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	return groupcrypto.SessionID(groupcrypto.SessionIDPrefixStandard, kp.PublicKey), kp
}

func (f *fixture) members(t *testing.T, groupID string) []store.Member {
	t.Helper()
	var out []store.Member
	if err := f.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.AllMembers(groupID)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	return out
}

func (f *fixture) interactions(t *testing.T, threadID string, variant store.InteractionVariant) []store.Interaction {
	t.Helper()
	var out []store.Interaction
	if err := f.store.Read(func(tx *store.Tx) error {
		all, err := tx.Interactions(threadID)
		if err != nil {
			return err
		}
		for _, i := range all {
			if i.Variant == variant {
				out = append(out, i)
			}
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return out
}

func (f *fixture) sentKind(kind wire.Kind) []transport.Prepared {
	var out []transport.Prepared
	for _, p := range f.sender.Sent() {
		if p.Message.Payload.Kind() == kind {
			out = append(out, p)
		}
	}
	return out
}

func TestCreateFormsGroupAndFansOut(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	calID, _ := newIdentity(t)
	p := f.protocolFor(adminID, adminKey)

	groupID, err := p.Create(context.Background(), "pals", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}

	members := f.members(t, groupID)
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	adminCount := 0
	for _, m := range members {
		if m.Role == store.RoleAdmin {
			adminCount++
			if m.ProfileID != adminID {
				t.Fatalf("wrong admin %s", m.ProfileID)
			}
		}
	}
	if adminCount != 1 {
		t.Fatalf("got %d admins, want 1 (creator)", adminCount)
	}

	// Each invitee is told individually, never via the group channel.
	invites := f.sentKind(wire.KindNewGroup)
	if len(invites) != 2 {
		t.Fatalf("got %d invites, want 2", len(invites))
	}
	for _, inv := range invites {
		if inv.Destination == groupID {
			t.Fatal("invite went to the group channel")
		}
	}

	latest, err := f.vault.Latest(groupID)
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil {
		t.Fatal("formation should commit the first key pair")
	}
	if f.bridge.DirtyCount(groupID) == 0 {
		t.Fatal("config bridge should be marked dirty")
	}
}

func TestRemoveMembersRotatesToSurvivors(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	xID, _ := newIdentity(t)
	yID, yKey := newIdentity(t)
	zID, _ := newIdentity(t)
	p := f.protocolFor(adminID, adminKey)

	groupID, err := p.Create(context.Background(), "g", []string{xID, yID, zID})
	if err != nil {
		t.Fatal(err)
	}
	before, err := f.vault.Latest(groupID)
	if err != nil {
		t.Fatal(err)
	}
	f.sender.Reset()

	if err := p.RemoveMembers(context.Background(), groupID, []string{xID}); err != nil {
		t.Fatal(err)
	}

	// Phase 1: removal announcement on the group channel.
	removed := f.sentKind(wire.KindMembersRemoved)
	if len(removed) != 1 || removed[0].Destination != groupID {
		t.Fatalf("bad removal announcement: %+v", removed)
	}

	// Phase 2: exactly one wrapper per remaining standard member, none
	// for the removed id.
	keyMsgs := f.sentKind(wire.KindEncryptionKeyPair)
	if len(keyMsgs) != 1 {
		t.Fatalf("got %d key messages, want 1", len(keyMsgs))
	}
	payload := keyMsgs[0].Message.Payload.(wire.EncryptionKeyPair)
	if len(payload.Wrappers) != 2 {
		t.Fatalf("got %d wrappers, want 2", len(payload.Wrappers))
	}
	xKeyBytes, _ := groupcrypto.PublicKeyFromSessionID(xID)
	for _, w := range payload.Wrappers {
		if string(w.RecipientPublicKey) == string(xKeyBytes) {
			t.Fatal("removed member must not receive the new key")
		}
	}

	// Survivor can open their wrapper and it matches the new latest.
	after, err := f.vault.Latest(groupID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ReceivedAt.After(before.ReceivedAt) {
		t.Fatal("latest key timestamp should move forward")
	}
	got, ok, err := wire.UnwrapKeyPair(payload.Wrappers, yKey)
	if err != nil || !ok {
		t.Fatalf("survivor could not unwrap: ok=%v err=%v", ok, err)
	}
	if string(got.SecretKey) != string(after.SecretKey) {
		t.Fatal("distributed key differs from persisted latest")
	}

	if f.vault.PendingLatest(groupID) != nil {
		t.Fatal("pending set should be empty after a completed rotation")
	}
	for _, m := range f.members(t, groupID) {
		if m.ProfileID == xID {
			t.Fatal("removed member row should be gone")
		}
	}
}

func TestLatestKeyMonotonicAcrossRemovals(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	var ids []string
	for i := 0; i < 3; i++ {
		id, _ := newIdentity(t)
		ids = append(ids, id)
	}
	p := f.protocolFor(adminID, adminKey)
	groupID, err := p.Create(context.Background(), "g", ids)
	if err != nil {
		t.Fatal(err)
	}

	prev, _ := f.vault.Latest(groupID)
	for _, id := range ids[:2] {
		if err := p.RemoveMembers(context.Background(), groupID, []string{id}); err != nil {
			t.Fatal(err)
		}
		cur, err := f.vault.Latest(groupID)
		if err != nil {
			t.Fatal(err)
		}
		if !cur.ReceivedAt.After(prev.ReceivedAt) {
			t.Fatalf("latest went backwards: %v !> %v", cur.ReceivedAt, prev.ReceivedAt)
		}
		prev = cur
	}
}

func TestAddMembersToUnknownGroupReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)

	p := f.protocolFor(adminID, adminKey)
	err := p.AddMembers(context.Background(), "05deadbeef", []string{bobID})
	if !errors.Is(err, protoerr.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(f.sender.Sent()) != 0 {
		t.Fatal("unknown group must not send anything")
	}
}

func TestRemoveMembersRejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, bobKey := newIdentity(t)
	calID, _ := newIdentity(t)

	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}
	before := f.members(t, groupID)
	f.sender.Reset()

	bob := f.protocolFor(bobID, bobKey)
	err = bob.RemoveMembers(context.Background(), groupID, []string{calID})
	if !errors.Is(err, protoerr.ErrInvalidGroupUpdate) {
		t.Fatalf("got %v, want ErrInvalidGroupUpdate", err)
	}
	if len(f.sender.Sent()) != 0 {
		t.Fatal("rejected removal must not send anything")
	}
	if len(f.members(t, groupID)) != len(before) {
		t.Fatal("rejected removal must not change membership")
	}
}

func TestRemoveMembersRejectsSelfAndAdminTargets(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID})
	if err != nil {
		t.Fatal(err)
	}

	if err := admin.RemoveMembers(context.Background(), groupID, []string{adminID}); !errors.Is(err, protoerr.ErrInvalidGroupUpdate) {
		t.Fatalf("self-removal: got %v", err)
	}
	if len(f.members(t, groupID)) != 2 {
		t.Fatal("membership should be unchanged")
	}
}

func TestRemovePhase1FailureGeneratesNoKey(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	calID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}
	before, _ := f.vault.Latest(groupID)

	f.sender.FailMatching(func(p transport.Prepared) bool {
		return p.Message.Payload.Kind() == wire.KindMembersRemoved
	})
	if err := admin.RemoveMembers(context.Background(), groupID, []string{bobID}); err == nil {
		t.Fatal("expected send failure")
	}

	if f.vault.PendingLatest(groupID) != nil {
		t.Fatal("phase-1 failure must abort before generating a key")
	}
	after, _ := f.vault.Latest(groupID)
	if !after.ReceivedAt.Equal(before.ReceivedAt) {
		t.Fatal("latest key must be unchanged")
	}
}

func TestRemovePhase2FailureLeavesPendingAndRetries(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	calID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}
	before, _ := f.vault.Latest(groupID)

	f.sender.FailMatching(func(p transport.Prepared) bool {
		return p.Message.Payload.Kind() == wire.KindEncryptionKeyPair
	})
	if err := admin.RemoveMembers(context.Background(), groupID, []string{bobID}); err == nil {
		t.Fatal("expected key distribution failure")
	}

	pending := f.vault.PendingLatest(groupID)
	if pending == nil {
		t.Fatal("failed distribution must keep the pair pending")
	}
	after, _ := f.vault.Latest(groupID)
	if !after.ReceivedAt.Equal(before.ReceivedAt) {
		t.Fatal("unsent key must not be committed")
	}

	// On retry the same pending pair is distributed, not a fresh one.
	f.sender.FailMatching(nil)
	f.sender.Reset()
	if err := admin.RetryPendingRotation(context.Background(), groupID); err != nil {
		t.Fatal(err)
	}
	if f.vault.PendingLatest(groupID) != nil {
		t.Fatal("retry should clear the pending set")
	}
	latest, _ := f.vault.Latest(groupID)
	if string(latest.PublicKey) != string(pending.PublicKey) {
		t.Fatal("retry must commit the pending pair, not a regenerated one")
	}
	if len(f.sentKind(wire.KindEncryptionKeyPair)) != 1 {
		t.Fatal("retry should resend the key distribution exactly once")
	}
}

func TestLeaveAdminDisbands(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	calID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}

	if err := admin.Leave(context.Background(), groupID); err != nil {
		t.Fatal(err)
	}
	if n := len(f.members(t, groupID)); n != 0 {
		t.Fatalf("admin leave should disband, %d rows remain", n)
	}
	if latest, _ := f.vault.Latest(groupID); latest != nil {
		t.Fatal("local key pairs should be purged")
	}
}

func TestLeaveStandardMemberKeepsGroup(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, bobKey := newIdentity(t)
	calID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}

	bob := f.protocolFor(bobID, bobKey)
	if err := bob.Leave(context.Background(), groupID); err != nil {
		t.Fatal(err)
	}

	members := f.members(t, groupID)
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	for _, m := range members {
		if m.ProfileID == bobID {
			t.Fatal("self-leave deletes the leaver's own row, not a zombie")
		}
	}
}

func TestHandleMemberLeftAsAdminTriggersOneRotation(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	calID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID, calID})
	if err != nil {
		t.Fatal(err)
	}
	f.sender.Reset()

	msg := wire.ControlMessage{
		Sender:   bobID,
		SentAtMs: uint64(f.clock.Add(1)),
		GroupID:  groupID,
		Payload:  wire.MemberLeft{},
	}
	if err := admin.HandleMemberLeft(context.Background(), msg, wire.MemberLeft{}); err != nil {
		t.Fatal(err)
	}

	for _, m := range f.members(t, groupID) {
		if m.ProfileID == bobID {
			t.Fatal("leaver's row should be removed after admin processing")
		}
	}
	if got := f.interactions(t, groupID, store.VariantInfoMemberLeft); len(got) != 1 {
		t.Fatalf("got %d member-left interactions, want 1", len(got))
	}
	// The removal pass suppresses its own info record.
	if got := f.interactions(t, groupID, store.VariantInfoMembersRemoved); len(got) != 0 {
		t.Fatalf("got %d removal interactions, want 0", len(got))
	}
	if got := f.sentKind(wire.KindEncryptionKeyPair); len(got) != 1 {
		t.Fatalf("got %d rotation cycles, want exactly 1", len(got))
	}
}

func TestHandleMemberLeftFromAdminDisbandsLocally(t *testing.T) {
	f := newFixture(t)
	adminID, _ := newIdentity(t)
	bobID, bobKey := newIdentity(t)

	// Bob's view of a group admin'd by someone else.
	bob := f.protocolFor(bobID, bobKey)
	groupID := seedGroup(t, f, adminID, []string{bobID})

	msg := wire.ControlMessage{Sender: adminID, SentAtMs: 5, GroupID: groupID, Payload: wire.MemberLeft{}}
	if err := bob.HandleMemberLeft(context.Background(), msg, wire.MemberLeft{}); err != nil {
		t.Fatal(err)
	}
	if n := len(f.members(t, groupID)); n != 0 {
		t.Fatalf("admin departure should disband, %d rows remain", n)
	}
}

func TestHandleMembersRemovedRejectsNonAdminSender(t *testing.T) {
	f := newFixture(t)
	adminID, _ := newIdentity(t)
	bobID, bobKey := newIdentity(t)
	calID, _ := newIdentity(t)
	bob := f.protocolFor(bobID, bobKey)
	groupID := seedGroup(t, f, adminID, []string{bobID, calID})

	msg := wire.ControlMessage{Sender: calID, SentAtMs: 5, GroupID: groupID, Payload: wire.MembersRemoved{Members: []string{bobID}}}
	err := bob.HandleMembersRemoved(context.Background(), msg, wire.MembersRemoved{Members: []string{bobID}})
	if !errors.Is(err, protoerr.ErrInvalidGroupUpdate) {
		t.Fatalf("got %v, want ErrInvalidGroupUpdate", err)
	}
	if len(f.members(t, groupID)) != 3 {
		t.Fatal("membership must be unchanged")
	}
}

func TestHandleEncryptionKeyPairStoresOurCopy(t *testing.T) {
	f := newFixture(t)
	adminID, _ := newIdentity(t)
	bobID, bobKey := newIdentity(t)
	bob := f.protocolFor(bobID, bobKey)
	groupID := seedGroup(t, f, adminID, []string{bobID})

	rotated, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	wrappers, err := wire.WrapKeyPair(rotated, [][]byte{bobKey.PublicKey})
	if err != nil {
		t.Fatal(err)
	}
	msg := wire.ControlMessage{Sender: adminID, SentAtMs: 99, GroupID: groupID, Payload: wire.EncryptionKeyPair{Wrappers: wrappers}}
	if err := bob.HandleEncryptionKeyPair(context.Background(), msg, wire.EncryptionKeyPair{Wrappers: wrappers}); err != nil {
		t.Fatal(err)
	}

	latest, err := f.vault.Latest(groupID)
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || string(latest.PublicKey) != string(rotated.PublicKey) {
		t.Fatal("rotated pair should be the committed latest")
	}

	// The same message from a non-admin changes nothing.
	calID, _ := newIdentity(t)
	msg.Sender = calID
	if err := bob.HandleEncryptionKeyPair(context.Background(), msg, wire.EncryptionKeyPair{Wrappers: wrappers}); !errors.Is(err, protoerr.ErrInvalidGroupUpdate) {
		t.Fatalf("got %v, want ErrInvalidGroupUpdate", err)
	}
}

func TestSendLatestKeyPairRefusesNonMembers(t *testing.T) {
	f := newFixture(t)
	adminID, adminKey := newIdentity(t)
	bobID, _ := newIdentity(t)
	strangerID, _ := newIdentity(t)
	admin := f.protocolFor(adminID, adminKey)
	groupID, err := admin.Create(context.Background(), "g", []string{bobID})
	if err != nil {
		t.Fatal(err)
	}
	f.sender.Reset()

	if err := admin.SendLatestKeyPair(context.Background(), groupID, strangerID); err != nil {
		t.Fatalf("refusal should be silent, got %v", err)
	}
	if len(f.sender.Sent()) != 0 {
		t.Fatal("nothing may be sent to a non-member")
	}

	if err := admin.SendLatestKeyPair(context.Background(), groupID, bobID); err != nil {
		t.Fatal(err)
	}
	sent := f.sentKind(wire.KindEncryptionKeyPair)
	if len(sent) != 1 || sent[0].Destination != bobID {
		t.Fatalf("expected one 1:1 key send to bob, got %+v", sent)
	}
}

// seedGroup writes a group whose admin is someone other than any local
// protocol instance, for receiver-side tests.
func seedGroup(t *testing.T, f *fixture, adminID string, memberIDs []string) string {
	t.Helper()
	gpk, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	groupID := groupcrypto.SessionID(groupcrypto.SessionIDPrefixStandard, gpk.PublicKey)
	enc, err := groupcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.store.Write(func(tx *store.Tx) error {
		if err := tx.SaveGroup(&store.Group{GroupID: groupID, Name: "seeded", FormedAt: time.UnixMilli(1), IsActive: true}); err != nil {
			return err
		}
		if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: adminID, Role: store.RoleAdmin}); err != nil {
			return err
		}
		for _, id := range memberIDs {
			if err := tx.UpsertMember(store.Member{GroupID: groupID, ProfileID: id, Role: store.RoleStandard}); err != nil {
				return err
			}
		}
		return tx.AddKeyPair(store.KeyPair{GroupID: groupID, PublicKey: enc.PublicKey, SecretKey: enc.SecretKey, ReceivedAt: time.UnixMilli(1)})
	}); err != nil {
		t.Fatal(err)
	}
	return groupID
}
