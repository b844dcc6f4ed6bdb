package store

import "database/sql"

// Profile is a cached view of another user's profile. IsApproved marks a
// trusted 1:1 contact; invites from approved contacts skip the
// message-request state.
type Profile struct {
	ProfileID  string
	Name       string
	PictureURL string
	ProfileKey []byte
	IsApproved bool
}

// UpsertProfile inserts or updates a profile row, preserving the approved
// flag when the incoming record does not set it.
func (t *Tx) UpsertProfile(p Profile) error {
	existing, err := t.GetProfile(p.ProfileID)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsApproved {
		p.IsApproved = true
	}
	_, err = t.tx.Exec(
		`INSERT OR REPLACE INTO profile (profile_id, name, picture_url, profile_key, is_approved)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ProfileID, p.Name, p.PictureURL, p.ProfileKey, p.IsApproved,
	)
	return err
}

// SetProfileApproved updates the trusted-contact flag for a profile.
func (t *Tx) SetProfileApproved(profileID string, approved bool) error {
	_, err := t.tx.Exec("UPDATE profile SET is_approved = ? WHERE profile_id = ?", approved, profileID)
	return err
}

// GetProfile returns a profile row, or nil if unknown.
func (t *Tx) GetProfile(profileID string) (*Profile, error) {
	var p Profile
	err := t.tx.QueryRow(
		"SELECT profile_id, name, picture_url, profile_key, is_approved FROM profile WHERE profile_id = ?",
		profileID,
	).Scan(&p.ProfileID, &p.Name, &p.PictureURL, &p.ProfileKey, &p.IsApproved)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// DisplayName resolves a profile id to a human-readable name, falling back
// to a shortened id when no profile is cached.
func (t *Tx) DisplayName(profileID string) (string, error) {
	p, err := t.GetProfile(profileID)
	if err != nil {
		return "", err
	}
	if p != nil && p.Name != "" {
		return p.Name, nil
	}
	if len(profileID) > 8 {
		return profileID[:8] + "…", nil
	}
	return profileID, nil
}
