package store

import (
	"database/sql"
	"time"
)

// Group is one closed-group conversation record.
type Group struct {
	GroupID     string
	Name        string
	FormedAt    time.Time
	IsActive    bool   // false once disbanded or left
	IsInvited   bool   // updated groups only: still in the message-request state
	AdminSecret []byte // updated groups only: admin key material, nil for non-admins
}

// SaveGroup stores or updates a group record.
func (t *Tx) SaveGroup(g *Group) error {
	_, err := t.tx.Exec(
		`INSERT OR REPLACE INTO closed_group (group_id, name, formed_at_ms, is_active, is_invited, admin_secret)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.GroupID, g.Name, g.FormedAt.UnixMilli(), g.IsActive, g.IsInvited, g.AdminSecret,
	)
	return err
}

// GetGroup retrieves a group by id. Returns nil if unknown.
func (t *Tx) GetGroup(groupID string) (*Group, error) {
	var g Group
	var formedAt int64
	err := t.tx.QueryRow(
		"SELECT group_id, name, formed_at_ms, is_active, is_invited, admin_secret FROM closed_group WHERE group_id = ?",
		groupID,
	).Scan(&g.GroupID, &g.Name, &formedAt, &g.IsActive, &g.IsInvited, &g.AdminSecret)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	g.FormedAt = time.UnixMilli(formedAt)
	return &g, nil
}

// AllGroups retrieves all stored groups.
func (t *Tx) AllGroups() ([]*Group, error) {
	rows, err := t.tx.Query(
		"SELECT group_id, name, formed_at_ms, is_active, is_invited, admin_secret FROM closed_group ORDER BY name, group_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		var g Group
		var formedAt int64
		if err := rows.Scan(&g.GroupID, &g.Name, &formedAt, &g.IsActive, &g.IsInvited, &g.AdminSecret); err != nil {
			return nil, err
		}
		g.FormedAt = time.UnixMilli(formedAt)
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

// SetGroupActive flips the active flag.
func (t *Tx) SetGroupActive(groupID string, active bool) error {
	_, err := t.tx.Exec(
		"UPDATE closed_group SET is_active = ? WHERE group_id = ?",
		active, groupID,
	)
	return err
}

// DeleteGroup removes the group record itself. Used only on full purge.
func (t *Tx) DeleteGroup(groupID string) error {
	_, err := t.tx.Exec("DELETE FROM closed_group WHERE group_id = ?", groupID)
	return err
}
