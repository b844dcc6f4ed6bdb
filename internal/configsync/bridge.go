// Package configsync is the contract by which protocol handlers push
// confirmed membership and key changes toward the shared, syncable config
// representation. The config store itself lives outside this module; the
// handlers only mark state dirty and nudge per-member flags.
package configsync

import "sync"

// Bridge is consumed by both group protocols.
type Bridge interface {
	// MarkDirty flags a group's config as needing a sync push.
	MarkDirty(groupID string)
	// SetMemberInvited corrects the invited flag on the remote config view
	// of one membership without touching local relational rows.
	SetMemberInvited(groupID, memberID string, invited bool)
}

// MemBridge is an in-memory Bridge for composition roots that have no
// config-sync layer attached, and for tests.
type MemBridge struct {
	mu      sync.Mutex
	dirty   map[string]int
	invited map[string]bool // groupID+"/"+memberID
}

var _ Bridge = (*MemBridge)(nil)

func NewMemBridge() *MemBridge {
	return &MemBridge{dirty: make(map[string]int), invited: make(map[string]bool)}
}

func (b *MemBridge) MarkDirty(groupID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty[groupID]++
}

func (b *MemBridge) SetMemberInvited(groupID, memberID string, invited bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invited[groupID+"/"+memberID] = invited
}

// DirtyCount reports how often a group was marked dirty.
func (b *MemBridge) DirtyCount(groupID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty[groupID]
}

// Invited returns the last invited flag pushed for a member, and whether
// one was pushed at all.
func (b *MemBridge) Invited(groupID, memberID string) (bool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.invited[groupID+"/"+memberID]
	return v, ok
}
