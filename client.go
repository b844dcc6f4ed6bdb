// Package groupcore implements closed-group membership and encryption-key
// management for both the legacy closed-group protocol and the updated
// group design, plus the duplicate-receive guard that keeps reprocessed
// messages from mutating state twice.
package groupcore

import (
	"context"
	"fmt"
	"iter"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/opensesh/groupcore/internal/configsync"
	"github.com/opensesh/groupcore/internal/dedupe"
	"github.com/opensesh/groupcore/internal/dispatch"
	"github.com/opensesh/groupcore/internal/groupcrypto"
	"github.com/opensesh/groupcore/internal/keyvault"
	"github.com/opensesh/groupcore/internal/legacygroup"
	"github.com/opensesh/groupcore/internal/moderngroup"
	"github.com/opensesh/groupcore/internal/store"
	"github.com/opensesh/groupcore/internal/transport"
	"github.com/opensesh/groupcore/internal/wire"
)

// KeyPair is an X25519 key pair.
type KeyPair = groupcrypto.KeyPair

// Group is a closed group stored locally.
type Group = store.Group

// Member is one membership row of a group.
type Member = store.Member

// GroupKeyPair is one stored group encryption key pair.
type GroupKeyPair = store.KeyPair

// ControlMessage is one decoded group control message.
type ControlMessage = wire.ControlMessage

// Sender delivers prepared control messages.
type Sender = transport.Sender

// Receiver yields inbound control messages from the network.
type Receiver = transport.Receiver

// Bridge receives config-sync nudges from the protocol handlers.
type Bridge = configsync.Bridge

// GenerateKeyPair creates a fresh X25519 key pair for a local identity.
func GenerateKeyPair() (KeyPair, error) {
	return groupcrypto.GenerateKeyPair()
}

// SessionIDFor derives the session id for an identity public key.
func SessionIDFor(publicKey []byte) string {
	return groupcrypto.SessionID(groupcrypto.SessionIDPrefixStandard, publicKey)
}

// Client is the main entry point. It owns the relational store, the key
// vault, the duplicate-receive records and both protocol engines.
type Client struct {
	dbPath    string
	dedupeDir string
	dedupeKey []byte
	logger    *log.Logger
	sender    Sender
	bridge    Bridge
	push      legacygroup.PushUnsubscriber

	localID      string
	localKeyPair KeyPair

	store    *store.Store
	vault    *keyvault.Vault
	dedupe   *dedupe.Store
	legacy   *legacygroup.Protocol
	modern   *moderngroup.Protocol
	pipeline *dispatch.Pipeline
}

// Option configures a Client.
type Option func(*Client)

// WithDBPath overrides the database path for persistent storage.
// If not set, defaults to $XDG_DATA_HOME/groupcore/<session id>.db.
func WithDBPath(path string) Option {
	return func(c *Client) { c.dbPath = path }
}

// WithDedupeDir overrides the directory holding duplicate-receive records.
// If not set, defaults to a "dedupe" directory next to the database.
func WithDedupeDir(path string) Option {
	return func(c *Client) { c.dedupeDir = path }
}

// WithDedupeKey sets the key encrypting duplicate-receive records. Without
// a usable key, inbound handling refuses to run rather than process
// messages whose receipt it cannot record.
func WithDedupeKey(key []byte) Option {
	return func(c *Client) { c.dedupeKey = key }
}

// WithLogger sets the logger for verbose output.
// If not set, logging is disabled.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSender sets the transport used for outbound control messages.
func WithSender(s Sender) Option {
	return func(c *Client) { c.sender = s }
}

// WithBridge attaches a config-sync bridge. If not set, an in-memory
// no-op bridge is used.
func WithBridge(b Bridge) Option {
	return func(c *Client) { c.bridge = b }
}

// WithPushUnsubscriber attaches a hook that detaches push notifications
// when the local user leaves or is removed from a group.
func WithPushUnsubscriber(p legacygroup.PushUnsubscriber) Option {
	return func(c *Client) { c.push = p }
}

// Open creates a Client for the given local identity and opens its
// persistent state.
func Open(localID string, localKey KeyPair, opts ...Option) (*Client, error) {
	c := &Client{
		localID:      localID,
		localKeyPair: localKey,
	}
	for _, o := range opts {
		o(c)
	}
	if c.sender == nil {
		return nil, fmt.Errorf("groupcore: no sender configured")
	}
	if c.bridge == nil {
		c.bridge = configsync.NewMemBridge()
	}
	if c.dbPath == "" {
		c.dbPath = filepath.Join(store.DefaultDataDir(), localID+".db")
	}
	if c.dedupeDir == "" {
		c.dedupeDir = filepath.Join(filepath.Dir(c.dbPath), "dedupe")
	}

	s, err := store.Open(c.dbPath)
	if err != nil {
		return nil, fmt.Errorf("groupcore: open store %s: %w", c.dbPath, err)
	}
	c.store = s
	c.vault = keyvault.New(s)
	c.dedupe = dedupe.New(c.dedupeDir, c.dedupeKey)

	c.legacy = legacygroup.New(legacygroup.Config{
		Store:        c.store,
		Vault:        c.vault,
		Sender:       c.sender,
		Bridge:       c.bridge,
		Push:         c.push,
		Logger:       c.logger,
		LocalID:      c.localID,
		LocalKeyPair: c.localKeyPair,
		NewMessageID: uuid.NewString,
	})
	c.modern = moderngroup.New(moderngroup.Config{
		Store:        c.store,
		Sender:       c.sender,
		Bridge:       c.bridge,
		Logger:       c.logger,
		LocalID:      c.localID,
		NewMessageID: uuid.NewString,
	})
	c.pipeline = dispatch.New(dispatch.Config{
		Dedupe: c.dedupe,
		Legacy: c.legacy,
		Modern: c.modern,
		Logger: c.logger,
	})
	return c, nil
}

// Close closes the client's database connection.
func (c *Client) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// CreateGroup forms a new legacy closed group with the local user as admin
// and invites the given members. Returns the new group's session id.
func (c *Client) CreateGroup(ctx context.Context, name string, memberIDs []string) (string, error) {
	return c.legacy.Create(ctx, name, memberIDs)
}

// AddMembers invites additional members to an existing group, sharing the
// current encryption key with each of them.
func (c *Client) AddMembers(ctx context.Context, groupID string, memberIDs []string) error {
	return c.legacy.AddMembers(ctx, groupID, memberIDs)
}

// RemoveMembers removes members from a group the local user administers
// and rotates the encryption key for the survivors.
func (c *Client) RemoveMembers(ctx context.Context, groupID string, memberIDs []string) error {
	return c.legacy.RemoveMembers(ctx, groupID, memberIDs)
}

// LeaveGroup announces the local user's departure. An admin leaving
// disbands the group locally.
func (c *Client) LeaveGroup(ctx context.Context, groupID string) error {
	return c.legacy.Leave(ctx, groupID)
}

// ResendKeyPair sends the latest group encryption key to one member over
// their 1:1 channel.
func (c *Client) ResendKeyPair(ctx context.Context, groupID, memberID string) error {
	return c.legacy.SendLatestKeyPair(ctx, groupID, memberID)
}

// RetryPendingRotation resumes a key rotation whose persistence step did
// not complete, for example after a crash between sending and committing.
func (c *Client) RetryPendingRotation(ctx context.Context, groupID string) error {
	return c.legacy.RetryPendingRotation(ctx, groupID)
}

// HandleIncoming processes one decoded inbound control message through the
// duplicate-receive gate and the matching protocol handler. Processing the
// same message twice leaves state unchanged.
func (c *Client) HandleIncoming(ctx context.Context, msg ControlMessage) error {
	return c.pipeline.Handle(ctx, msg)
}

// Receive returns an iterator that reads inbound control messages from the
// transport and runs each through HandleIncoming before yielding it. A
// message whose handler fails is yielded with the error and iteration
// continues; the message stays retryable because no receipt was recorded.
// The iterator ends when the context is cancelled or the link fails.
func (c *Client) Receive(ctx context.Context) iter.Seq2[ControlMessage, error] {
	r, ok := c.sender.(Receiver)
	if !ok {
		return func(yield func(ControlMessage, error) bool) {
			yield(ControlMessage{}, fmt.Errorf("groupcore: transport cannot receive"))
		}
	}
	return func(yield func(ControlMessage, error) bool) {
		for {
			p, err := r.Receive(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if !yield(ControlMessage{}, fmt.Errorf("groupcore: receive: %w", err)) {
					return
				}
				continue
			}
			msg := p.Message
			if msg.ServerHash == "" {
				msg.ServerHash = p.ID
			}
			if err := c.pipeline.Handle(ctx, msg); err != nil {
				if !yield(msg, err) {
					return
				}
				continue
			}
			if !yield(msg, nil) {
				return
			}
		}
	}
}

// Groups returns all groups this client knows about.
func (c *Client) Groups() ([]*Group, error) {
	var out []*Group
	err := c.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.AllGroups()
		return err
	})
	return out, err
}

// GetGroup returns one group by session id, or nil if unknown.
func (c *Client) GetGroup(groupID string) (*Group, error) {
	var out *Group
	err := c.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.GetGroup(groupID)
		return err
	})
	return out, err
}

// Members returns the membership rows of a group.
func (c *Client) Members(groupID string) ([]Member, error) {
	var out []Member
	err := c.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.AllMembers(groupID)
		return err
	})
	return out, err
}

// GroupKeyPairs returns a group's stored encryption key pairs, oldest
// first. The last entry is the one used for new messages.
func (c *Client) GroupKeyPairs(groupID string) ([]GroupKeyPair, error) {
	var out []GroupKeyPair
	err := c.store.Read(func(tx *store.Tx) error {
		var err error
		out, err = tx.KeyPairs(groupID)
		return err
	})
	return out, err
}

// PurgeGroup deletes all local state for a group: the group row, its
// members, its key pairs and its thread history.
func (c *Client) PurgeGroup(groupID string) error {
	return c.store.Write(func(tx *store.Tx) error {
		if err := tx.DeleteThreadInteractions(groupID); err != nil {
			return err
		}
		if err := tx.PurgeKeyPairs(groupID); err != nil {
			return err
		}
		if err := tx.RemoveAllMembers(groupID); err != nil {
			return err
		}
		return tx.DeleteGroup(groupID)
	})
}

// PurgeDedupe deletes all duplicate-receive records. Previously handled
// messages will be reprocessed if redelivered.
func (c *Client) PurgeDedupe() error {
	return c.dedupe.Clear()
}
