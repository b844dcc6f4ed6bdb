package store

import (
	"database/sql"
	"time"
)

// KeyPair is one entry in a group's encryption key-pair history. Rotation
// always inserts a new row; rows are never edited, and only a full purge
// deletes them.
type KeyPair struct {
	GroupID    string
	PublicKey  []byte
	SecretKey  []byte
	ReceivedAt time.Time
}

// AddKeyPair appends a key pair to the group's history.
func (t *Tx) AddKeyPair(p KeyPair) error {
	_, err := t.tx.Exec(
		`INSERT INTO group_key_pair (group_id, public_key, secret_key, received_at_ms)
		 VALUES (?, ?, ?, ?)`,
		p.GroupID, p.PublicKey, p.SecretKey, p.ReceivedAt.UnixMilli(),
	)
	return err
}

// LatestKeyPair returns the most recent key pair for a group, or nil if the
// group has none. Ties on received_at_ms fall back to insertion order.
func (t *Tx) LatestKeyPair(groupID string) (*KeyPair, error) {
	var p KeyPair
	var receivedAt int64
	err := t.tx.QueryRow(
		`SELECT group_id, public_key, secret_key, received_at_ms FROM group_key_pair
		 WHERE group_id = ? ORDER BY received_at_ms DESC, id DESC LIMIT 1`,
		groupID,
	).Scan(&p.GroupID, &p.PublicKey, &p.SecretKey, &receivedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.ReceivedAt = time.UnixMilli(receivedAt)
	return &p, nil
}

// KeyPairs returns the full rotation history for a group, oldest first.
func (t *Tx) KeyPairs(groupID string) ([]KeyPair, error) {
	rows, err := t.tx.Query(
		`SELECT group_id, public_key, secret_key, received_at_ms FROM group_key_pair
		 WHERE group_id = ? ORDER BY received_at_ms, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []KeyPair
	for rows.Next() {
		var p KeyPair
		var receivedAt int64
		if err := rows.Scan(&p.GroupID, &p.PublicKey, &p.SecretKey, &receivedAt); err != nil {
			return nil, err
		}
		p.ReceivedAt = time.UnixMilli(receivedAt)
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// PurgeKeyPairs deletes the whole key-pair history for a group.
func (t *Tx) PurgeKeyPairs(groupID string) error {
	_, err := t.tx.Exec("DELETE FROM group_key_pair WHERE group_id = ?", groupID)
	return err
}
