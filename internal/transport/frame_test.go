package transport

import (
	"context"
	"reflect"
	"testing"

	"google.golang.org/protobuf/proto"

	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/transport/wirepb"
	"github.com/opensesh/groupcore/internal/wire"
)

func TestFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		payload wire.Payload
	}{
		{"newGroup", wire.NewGroup{
			Name:              "g",
			EncryptionKeyPair: groupcrypto.KeyPair{PublicKey: []byte{1, 2}, SecretKey: []byte{3, 4}},
			Members:           []string{"05a", "05b"},
			Admins:            []string{"05a"},
			FormedAtMs:        99,
		}},
		{"membersRemoved", wire.MembersRemoved{Members: []string{"05a", "05b"}}},
		{"memberLeft", wire.MemberLeft{}},
		{"encryptionKeyPair", wire.EncryptionKeyPair{
			TargetGroupID: "05group",
			Wrappers: []wire.KeyPairWrapper{
				{RecipientPublicKey: []byte{5}, EncryptedKeyPairBlob: []byte{6, 7}},
			},
		}},
		{"invite", wire.Invite{
			Name:           "g",
			MemberAuthData: []byte{8},
			Profile:        &wire.Profile{DisplayName: "Ann", ProfileKey: []byte{9}},
		}},
		{"inviteResponse", wire.InviteResponse{IsApproved: true}},
		{"memberChange", wire.MemberChange{Type: wire.ChangePromoted, Members: []string{"05a"}}},
		{"infoChange", wire.InfoChange{Type: wire.InfoChangeDisappearing, DurationSeconds: 600}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Prepared{
				ID:          "msg-1",
				Destination: "05dest",
				Message: wire.ControlMessage{
					Sender:     "05sender",
					SentAtMs:   1234,
					GroupID:    "05group",
					ServerHash: "hash",
					Payload:    tc.payload,
				},
			}
			data, err := EncodeFrame(p)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DecodeFrame(data)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, p) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, p)
			}
		})
	}
}

func TestDecodeFrameUnknownKind(t *testing.T) {
	data, err := proto.Marshal(&wirepb.Frame{Id: "msg-1", Kind: wirepb.Kind(99)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeFrame(data); err == nil {
		t.Fatal("unknown kind should fail to decode")
	}
}

func TestDecodeFrameRejectsGarbage(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("garbage should fail to decode")
	}
}

func TestMemSenderFailMatching(t *testing.T) {
	m := NewMem()
	ctx := context.Background()

	keyPairMsg := Prepared{Destination: "05g", Message: wire.ControlMessage{GroupID: "05g", Payload: wire.EncryptionKeyPair{}}}
	removedMsg := Prepared{Destination: "05g", Message: wire.ControlMessage{GroupID: "05g", Payload: wire.MembersRemoved{}}}

	m.FailMatching(func(p Prepared) bool {
		return p.Message.Payload.Kind() == wire.KindEncryptionKeyPair
	})

	if err := m.Send(ctx, removedMsg); err != nil {
		t.Fatal(err)
	}
	if err := m.Send(ctx, keyPairMsg); err == nil {
		t.Fatal("matching send should fail")
	}
	if len(m.Sent()) != 1 {
		t.Fatalf("got %d sent, want 1", len(m.Sent()))
	}

	m.FailMatching(nil)
	if err := m.Send(ctx, keyPairMsg); err != nil {
		t.Fatal(err)
	}
	if len(m.SentTo("05g")) != 2 {
		t.Fatal("expected two delivered messages")
	}
}

func TestMemReceiveDrainsInbox(t *testing.T) {
	m := NewMem()
	ctx := context.Background()

	first := Prepared{ID: "a", Destination: "05g", Message: wire.ControlMessage{GroupID: "05g", Payload: wire.MemberLeft{}}}
	second := Prepared{ID: "b", Destination: "05g", Message: wire.ControlMessage{GroupID: "05g", Payload: wire.MemberLeft{}}}
	m.Enqueue(first)
	m.Enqueue(second)

	got, err := m.Receive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "a" {
		t.Fatalf("got %q, want first enqueued message", got.ID)
	}
	if got, err = m.Receive(ctx); err != nil || got.ID != "b" {
		t.Fatalf("got %q, %v, want second enqueued message", got.ID, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.Receive(cancelled); err == nil {
		t.Fatal("receive on empty inbox must honor cancellation")
	}
}
