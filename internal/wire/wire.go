// Package wire models group control messages after envelope decryption.
// The outer transport encoding is not defined here; the transport hands
// over ControlMessage values and takes them back for sending.
//
// Payload kinds form a closed set: every payload type implements the
// unexported method on Payload, so the dispatcher can type-switch
// exhaustively and a new kind is a compile-visible change.
package wire

import (
	"fmt"
	"strings"

	"github.com/opensesh/groupcore/internal/groupcrypto"
)

// Kind identifies a control-message payload.
type Kind int

const (
	KindUnknown Kind = iota

	// Legacy closed-group kinds.
	KindNewGroup
	KindMembersAdded
	KindMembersRemoved
	KindMemberLeft
	KindEncryptionKeyPair

	// Updated-group kinds.
	KindInvite
	KindInviteResponse
	KindPromotion
	KindPromotionResponse
	KindGroupMemberLeft
	KindMemberChange
	KindInfoChange
	KindDeleteMemberContent
)

var kindNames = map[Kind]string{
	KindNewGroup:            "newGroup",
	KindMembersAdded:        "membersAdded",
	KindMembersRemoved:      "membersRemoved",
	KindMemberLeft:          "memberLeft",
	KindEncryptionKeyPair:   "encryptionKeyPair",
	KindInvite:              "invite",
	KindInviteResponse:      "inviteResponse",
	KindPromotion:           "promotion",
	KindPromotionResponse:   "promotionResponse",
	KindGroupMemberLeft:     "groupMemberLeft",
	KindMemberChange:        "memberChange",
	KindInfoChange:          "infoChange",
	KindDeleteMemberContent: "deleteMemberContent",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Legacy reports whether the kind belongs to the legacy closed-group
// protocol (target ids carry the standard prefix).
func (k Kind) Legacy() bool {
	return k >= KindNewGroup && k <= KindEncryptionKeyPair
}

// ControlMessage is one decoded inbound or outbound group control message.
// Sender and SentAtMs are zero when the transport could not supply them;
// handlers that require them fail closed.
type ControlMessage struct {
	Sender     string
	SentAtMs   uint64
	GroupID    string
	ServerHash string
	Payload    Payload
}

// Payload is the closed union of control-message bodies.
type Payload interface {
	Kind() Kind
	payload()
}

// Profile carries optional sender profile fields attached to a message.
type Profile struct {
	DisplayName string
	PictureURL  string
	ProfileKey  []byte
}

// NewGroup announces a freshly formed legacy group to one invitee over
// their 1:1 channel. Carries the current encryption key pair.
type NewGroup struct {
	Name              string
	EncryptionKeyPair groupcrypto.KeyPair
	Members           []string
	Admins            []string
	FormedAtMs        uint64
}

// MembersAdded is broadcast on the group channel after additions.
type MembersAdded struct {
	Members []string
}

// MembersRemoved is broadcast on the group channel before key rotation.
type MembersRemoved struct {
	Members []string
}

// MemberLeft is the legacy leave announcement. The sender is the leaver.
type MemberLeft struct{}

// EncryptionKeyPair distributes a rotated key pair, one sealed copy per
// remaining member. TargetGroupID is set when the message travels over a
// 1:1 channel instead of the group channel.
type EncryptionKeyPair struct {
	TargetGroupID string
	Wrappers      []KeyPairWrapper
}

// Invite asks the recipient to join an updated group.
type Invite struct {
	Name           string
	MemberAuthData []byte
	Profile        *Profile
}

// InviteResponse tells admins the sender accepted (or declined) an invite.
type InviteResponse struct {
	IsApproved bool
	Profile    *Profile
}

// Promotion hands admin key material to one member. Only meaningful to the
// named member; everyone else ignores it.
type Promotion struct {
	MemberID       string
	AdminSecretKey []byte
}

// PromotionResponse announces an accepted promotion to the group.
type PromotionResponse struct {
	Profile *Profile
}

// GroupMemberLeft is the updated-group leave announcement.
type GroupMemberLeft struct{}

// ChangeType enumerates MemberChange sub-kinds.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeRemoved
	ChangePromoted
)

// MemberChange narrates a membership change whose authoritative state
// arrives via config sync. Record-only.
type MemberChange struct {
	Type    ChangeType
	Members []string
}

// InfoChangeType enumerates InfoChange sub-kinds.
type InfoChangeType int

const (
	InfoChangeName InfoChangeType = iota
	InfoChangeAvatar
	InfoChangeDisappearing
)

// InfoChange narrates a group name/avatar/expiry change. Record-only; the
// disappearing duration is read transiently for message text and must not
// be persisted from here.
type InfoChange struct {
	Type            InfoChangeType
	Name            string
	DurationSeconds uint32
}

// DeleteMemberContent asks receivers to purge interactions authored by the
// named members before the message timestamp.
type DeleteMemberContent struct {
	Members []string
}

func (NewGroup) Kind() Kind            { return KindNewGroup }
func (MembersAdded) Kind() Kind        { return KindMembersAdded }
func (MembersRemoved) Kind() Kind      { return KindMembersRemoved }
func (MemberLeft) Kind() Kind          { return KindMemberLeft }
func (EncryptionKeyPair) Kind() Kind   { return KindEncryptionKeyPair }
func (Invite) Kind() Kind              { return KindInvite }
func (InviteResponse) Kind() Kind      { return KindInviteResponse }
func (Promotion) Kind() Kind           { return KindPromotion }
func (PromotionResponse) Kind() Kind   { return KindPromotionResponse }
func (GroupMemberLeft) Kind() Kind     { return KindGroupMemberLeft }
func (MemberChange) Kind() Kind        { return KindMemberChange }
func (InfoChange) Kind() Kind          { return KindInfoChange }
func (DeleteMemberContent) Kind() Kind { return KindDeleteMemberContent }

func (NewGroup) payload()            {}
func (MembersAdded) payload()        {}
func (MembersRemoved) payload()      {}
func (MemberLeft) payload()          {}
func (EncryptionKeyPair) payload()   {}
func (Invite) payload()              {}
func (InviteResponse) payload()      {}
func (Promotion) payload()           {}
func (PromotionResponse) payload()   {}
func (GroupMemberLeft) payload()     {}
func (MemberChange) payload()        {}
func (InfoChange) payload()          {}
func (DeleteMemberContent) payload() {}

// ValidateTarget checks that the payload kind may address the message's
// declared group id: legacy kinds require the standard prefix, updated
// kinds the group prefix.
func ValidateTarget(msg ControlMessage) error {
	wantPrefix := groupcrypto.SessionIDPrefixGroup
	if msg.Payload.Kind().Legacy() {
		wantPrefix = groupcrypto.SessionIDPrefixStandard
	}
	if !strings.HasPrefix(msg.GroupID, wantPrefix) {
		return fmt.Errorf("wire: %s message targets %q", msg.Payload.Kind(), msg.GroupID)
	}
	return nil
}
