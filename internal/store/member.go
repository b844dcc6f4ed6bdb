package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Role is a member's role within a group.
type Role int

const (
	RoleStandard Role = iota
	RoleAdmin
	// RoleZombie marks a member who left but has not been purged by an
	// admin yet; kept so the admin can still process the removal and
	// rotate keys.
	RoleZombie
)

func (r Role) String() string {
	switch r {
	case RoleStandard:
		return "standard"
	case RoleAdmin:
		return "admin"
	case RoleZombie:
		return "zombie"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// RoleStatus tracks the invite flow for updated groups. Legacy members are
// always accepted.
type RoleStatus int

const (
	StatusAccepted RoleStatus = iota
	StatusPending
)

func (s RoleStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusPending:
		return "pending"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Member is one (groupID, profileID) membership row.
type Member struct {
	GroupID    string
	ProfileID  string
	Role       Role
	RoleStatus RoleStatus
	IsHidden   bool
}

// AllMembers returns every membership row for a group.
func (t *Tx) AllMembers(groupID string) ([]Member, error) {
	rows, err := t.tx.Query(
		"SELECT group_id, profile_id, role, role_status, is_hidden FROM group_member WHERE group_id = ? ORDER BY profile_id",
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.GroupID, &m.ProfileID, &m.Role, &m.RoleStatus, &m.IsHidden); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetMember returns one membership row, or nil if absent.
func (t *Tx) GetMember(groupID, profileID string) (*Member, error) {
	var m Member
	err := t.tx.QueryRow(
		"SELECT group_id, profile_id, role, role_status, is_hidden FROM group_member WHERE group_id = ? AND profile_id = ?",
		groupID, profileID,
	).Scan(&m.GroupID, &m.ProfileID, &m.Role, &m.RoleStatus, &m.IsHidden)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// UpsertMember inserts or replaces a membership row by (groupID, profileID).
func (t *Tx) UpsertMember(m Member) error {
	_, err := t.tx.Exec(
		`INSERT OR REPLACE INTO group_member (group_id, profile_id, role, role_status, is_hidden)
		 VALUES (?, ?, ?, ?, ?)`,
		m.GroupID, m.ProfileID, m.Role, m.RoleStatus, m.IsHidden,
	)
	return err
}

// RemoveMembers deletes the rows for the given profile ids whose role is in
// roles. Rows with other roles survive, so admins cannot be deleted through
// a standard/zombie purge.
func (t *Tx) RemoveMembers(groupID string, profileIDs []string, roles []Role) error {
	for _, id := range profileIDs {
		for _, role := range roles {
			if _, err := t.tx.Exec(
				"DELETE FROM group_member WHERE group_id = ? AND profile_id = ? AND role = ?",
				groupID, id, role,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveAllMembers deletes every membership row of a group (disband).
func (t *Tx) RemoveAllMembers(groupID string) error {
	_, err := t.tx.Exec("DELETE FROM group_member WHERE group_id = ?", groupID)
	return err
}

// IsAdmin reports whether the profile holds an admin row in the group.
func (t *Tx) IsAdmin(groupID, profileID string) (bool, error) {
	m, err := t.GetMember(groupID, profileID)
	if err != nil {
		return false, err
	}
	return m != nil && m.Role == RoleAdmin, nil
}

// IsMember reports whether the profile holds any row in the group.
func (t *Tx) IsMember(groupID, profileID string) (bool, error) {
	m, err := t.GetMember(groupID, profileID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}
