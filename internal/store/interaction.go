package store

import "time"

// InteractionVariant distinguishes user messages from the info records the
// protocol inserts into a thread's history.
type InteractionVariant int

const (
	VariantStandard InteractionVariant = iota
	VariantInfoGroupCreated
	VariantInfoMembersAdded
	VariantInfoMembersRemoved
	VariantInfoMemberLeft
	VariantInfoGroupUpdated
	VariantInfoPromoted
)

// Interaction is one message or info record in a thread.
type Interaction struct {
	ID        int64
	ThreadID  string
	AuthorID  string
	Variant   InteractionVariant
	Body      string
	Timestamp time.Time
}

// InsertInteraction appends an interaction to a thread.
func (t *Tx) InsertInteraction(i Interaction) error {
	_, err := t.tx.Exec(
		`INSERT INTO interaction (thread_id, author_id, variant, body, timestamp_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		i.ThreadID, i.AuthorID, i.Variant, i.Body, i.Timestamp.UnixMilli(),
	)
	return err
}

// Interactions returns a thread's interactions ordered by timestamp.
func (t *Tx) Interactions(threadID string) ([]Interaction, error) {
	rows, err := t.tx.Query(
		`SELECT id, thread_id, author_id, variant, body, timestamp_ms FROM interaction
		 WHERE thread_id = ? ORDER BY timestamp_ms, id`,
		threadID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var i Interaction
		var ts int64
		if err := rows.Scan(&i.ID, &i.ThreadID, &i.AuthorID, &i.Variant, &i.Body, &ts); err != nil {
			return nil, err
		}
		i.Timestamp = time.UnixMilli(ts)
		out = append(out, i)
	}
	return out, rows.Err()
}

// DeleteInteractionsBefore removes every interaction in the thread authored
// by one of authorIDs with a timestamp strictly before beforeMs. Returns the
// number of rows deleted.
func (t *Tx) DeleteInteractionsBefore(threadID string, authorIDs []string, before time.Time) (int64, error) {
	var total int64
	for _, author := range authorIDs {
		res, err := t.tx.Exec(
			"DELETE FROM interaction WHERE thread_id = ? AND author_id = ? AND timestamp_ms < ?",
			threadID, author, before.UnixMilli(),
		)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DeleteThreadInteractions removes every interaction in a thread.
func (t *Tx) DeleteThreadInteractions(threadID string) error {
	_, err := t.tx.Exec("DELETE FROM interaction WHERE thread_id = ?", threadID)
	return err
}
