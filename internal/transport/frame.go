package transport

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/transport/wirepb"
	"github.com/opensesh/groupcore/internal/wire"
)

// EncodeFrame serializes a prepared message for the websocket link. The
// envelope fields travel in the outer Frame; the payload body is a nested
// protobuf message picked by kind, the way Signal envelopes carry their
// content blob.
func EncodeFrame(p Prepared) ([]byte, error) {
	body, err := encodePayload(p.Message.Payload)
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(&wirepb.Frame{
		Id:          p.ID,
		Destination: p.Destination,
		Sender:      p.Message.Sender,
		SentAtMs:    p.Message.SentAtMs,
		GroupId:     p.Message.GroupID,
		ServerHash:  p.Message.ServerHash,
		Kind:        wirepb.Kind(p.Message.Payload.Kind()),
		Payload:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: encode frame: %w", err)
	}
	return data, nil
}

// DecodeFrame parses a websocket frame back into a prepared message.
func DecodeFrame(data []byte) (Prepared, error) {
	var f wirepb.Frame
	if err := proto.Unmarshal(data, &f); err != nil {
		return Prepared{}, fmt.Errorf("transport: decode frame: %w", err)
	}
	payload, err := decodePayload(f.GetKind(), f.GetPayload())
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{
		ID:          f.GetId(),
		Destination: f.GetDestination(),
		Message: wire.ControlMessage{
			Sender:     f.GetSender(),
			SentAtMs:   f.GetSentAtMs(),
			GroupID:    f.GetGroupId(),
			ServerHash: f.GetServerHash(),
			Payload:    payload,
		},
	}, nil
}

func encodePayload(p wire.Payload) ([]byte, error) {
	var m proto.Message
	switch v := p.(type) {
	case wire.NewGroup:
		m = &wirepb.NewGroup{
			Name:              v.Name,
			EncryptionKeyPair: keyPairToProto(v.EncryptionKeyPair),
			Members:           v.Members,
			Admins:            v.Admins,
			FormedAtMs:        v.FormedAtMs,
		}
	case wire.MembersAdded:
		m = &wirepb.MembersAdded{Members: v.Members}
	case wire.MembersRemoved:
		m = &wirepb.MembersRemoved{Members: v.Members}
	case wire.MemberLeft:
		m = &wirepb.MemberLeft{}
	case wire.EncryptionKeyPair:
		m = &wirepb.EncryptionKeyPair{
			TargetGroupId: v.TargetGroupID,
			Wrappers:      wrappersToProto(v.Wrappers),
		}
	case wire.Invite:
		m = &wirepb.Invite{
			Name:           v.Name,
			MemberAuthData: v.MemberAuthData,
			Profile:        profileToProto(v.Profile),
		}
	case wire.InviteResponse:
		m = &wirepb.InviteResponse{
			IsApproved: v.IsApproved,
			Profile:    profileToProto(v.Profile),
		}
	case wire.Promotion:
		m = &wirepb.Promotion{
			MemberId:       v.MemberID,
			AdminSecretKey: v.AdminSecretKey,
		}
	case wire.PromotionResponse:
		m = &wirepb.PromotionResponse{Profile: profileToProto(v.Profile)}
	case wire.GroupMemberLeft:
		m = &wirepb.GroupMemberLeft{}
	case wire.MemberChange:
		m = &wirepb.MemberChange{
			Type:    wirepb.ChangeType(v.Type),
			Members: v.Members,
		}
	case wire.InfoChange:
		m = &wirepb.InfoChange{
			Type:            wirepb.InfoChangeType(v.Type),
			Name:            v.Name,
			DurationSeconds: v.DurationSeconds,
		}
	case wire.DeleteMemberContent:
		m = &wirepb.DeleteMemberContent{Members: v.Members}
	default:
		return nil, fmt.Errorf("transport: encode payload: unknown kind %v", p.Kind())
	}
	data, err := proto.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("transport: encode %s payload: %w", p.Kind(), err)
	}
	return data, nil
}

// decodePayload returns the value form so the dispatcher's type switch sees
// the same concrete types whether a message came off the wire or was built
// locally.
func decodePayload(kind wirepb.Kind, body []byte) (wire.Payload, error) {
	unmarshal := func(m proto.Message) error {
		if err := proto.Unmarshal(body, m); err != nil {
			return fmt.Errorf("transport: decode %s payload: %w", wire.Kind(kind), err)
		}
		return nil
	}
	switch kind {
	case wirepb.Kind_KIND_NEW_GROUP:
		var m wirepb.NewGroup
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.NewGroup{
			Name:              m.GetName(),
			EncryptionKeyPair: keyPairFromProto(m.GetEncryptionKeyPair()),
			Members:           m.GetMembers(),
			Admins:            m.GetAdmins(),
			FormedAtMs:        m.GetFormedAtMs(),
		}, nil
	case wirepb.Kind_KIND_MEMBERS_ADDED:
		var m wirepb.MembersAdded
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.MembersAdded{Members: m.GetMembers()}, nil
	case wirepb.Kind_KIND_MEMBERS_REMOVED:
		var m wirepb.MembersRemoved
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.MembersRemoved{Members: m.GetMembers()}, nil
	case wirepb.Kind_KIND_MEMBER_LEFT:
		return wire.MemberLeft{}, nil
	case wirepb.Kind_KIND_ENCRYPTION_KEY_PAIR:
		var m wirepb.EncryptionKeyPair
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.EncryptionKeyPair{
			TargetGroupID: m.GetTargetGroupId(),
			Wrappers:      wrappersFromProto(m.GetWrappers()),
		}, nil
	case wirepb.Kind_KIND_INVITE:
		var m wirepb.Invite
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.Invite{
			Name:           m.GetName(),
			MemberAuthData: m.GetMemberAuthData(),
			Profile:        profileFromProto(m.GetProfile()),
		}, nil
	case wirepb.Kind_KIND_INVITE_RESPONSE:
		var m wirepb.InviteResponse
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.InviteResponse{
			IsApproved: m.GetIsApproved(),
			Profile:    profileFromProto(m.GetProfile()),
		}, nil
	case wirepb.Kind_KIND_PROMOTION:
		var m wirepb.Promotion
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.Promotion{
			MemberID:       m.GetMemberId(),
			AdminSecretKey: m.GetAdminSecretKey(),
		}, nil
	case wirepb.Kind_KIND_PROMOTION_RESPONSE:
		var m wirepb.PromotionResponse
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.PromotionResponse{Profile: profileFromProto(m.GetProfile())}, nil
	case wirepb.Kind_KIND_GROUP_MEMBER_LEFT:
		return wire.GroupMemberLeft{}, nil
	case wirepb.Kind_KIND_MEMBER_CHANGE:
		var m wirepb.MemberChange
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.MemberChange{
			Type:    wire.ChangeType(m.GetType()),
			Members: m.GetMembers(),
		}, nil
	case wirepb.Kind_KIND_INFO_CHANGE:
		var m wirepb.InfoChange
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.InfoChange{
			Type:            wire.InfoChangeType(m.GetType()),
			Name:            m.GetName(),
			DurationSeconds: m.GetDurationSeconds(),
		}, nil
	case wirepb.Kind_KIND_DELETE_MEMBER_CONTENT:
		var m wirepb.DeleteMemberContent
		if err := unmarshal(&m); err != nil {
			return nil, err
		}
		return wire.DeleteMemberContent{Members: m.GetMembers()}, nil
	}
	return nil, fmt.Errorf("transport: unknown kind %d", kind)
}

func keyPairToProto(k groupcrypto.KeyPair) *wirepb.KeyPair {
	return &wirepb.KeyPair{PublicKey: k.PublicKey, SecretKey: k.SecretKey}
}

func keyPairFromProto(k *wirepb.KeyPair) groupcrypto.KeyPair {
	if k == nil {
		return groupcrypto.KeyPair{}
	}
	return groupcrypto.KeyPair{PublicKey: k.GetPublicKey(), SecretKey: k.GetSecretKey()}
}

func profileToProto(p *wire.Profile) *wirepb.Profile {
	if p == nil {
		return nil
	}
	return &wirepb.Profile{
		DisplayName: p.DisplayName,
		PictureUrl:  p.PictureURL,
		ProfileKey:  p.ProfileKey,
	}
}

func profileFromProto(p *wirepb.Profile) *wire.Profile {
	if p == nil {
		return nil
	}
	return &wire.Profile{
		DisplayName: p.GetDisplayName(),
		PictureURL:  p.GetPictureUrl(),
		ProfileKey:  p.GetProfileKey(),
	}
}

func wrappersToProto(ws []wire.KeyPairWrapper) []*wirepb.KeyPairWrapper {
	out := make([]*wirepb.KeyPairWrapper, len(ws))
	for i, w := range ws {
		out[i] = &wirepb.KeyPairWrapper{
			RecipientPublicKey:   w.RecipientPublicKey,
			EncryptedKeyPairBlob: w.EncryptedKeyPairBlob,
		}
	}
	return out
}

func wrappersFromProto(ws []*wirepb.KeyPairWrapper) []wire.KeyPairWrapper {
	if len(ws) == 0 {
		return nil
	}
	out := make([]wire.KeyPairWrapper, len(ws))
	for i, w := range ws {
		out[i] = wire.KeyPairWrapper{
			RecipientPublicKey:   w.GetRecipientPublicKey(),
			EncryptedKeyPairBlob: w.GetEncryptedKeyPairBlob(),
		}
	}
	return out
}
