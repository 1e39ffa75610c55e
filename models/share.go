package models

import "time"

// ShareKind distinguishes a private (user-to-user) share from a public
// (token-addressable) share.
type ShareKind string

const (
	SharePrivate ShareKind = "private"
	SharePublic  ShareKind = "public"
)

// Share grants access to a File, either to a specific recipient user
// (SharePrivate) or to anyone holding the share's Token (SharePublic).
type Share struct {
	ID      int64 `json:"id"`
	FileID  int64 `json:"file_id"`
	OwnerID int64 `json:"owner_id"`

	Kind ShareKind `json:"kind"`

	// RecipientID is set only for SharePrivate shares.
	RecipientID *int64 `json:"recipient_id,omitempty"`

	// Token is the 16-byte, hex-encoded, 128-bit-entropy identifier used to
	// address a SharePublic share. Empty for private shares.
	Token string `json:"token,omitempty"`

	// PasswordHash is the bcrypt digest of an optional public-share
	// password. Empty when the share has no password. Never exposed as
	// the plaintext password.
	PasswordHash string `json:"-"`

	// ExpiresAt is the optional expiry; nil means the share never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with the
// Share model.
func (s Share) TableName() string {
	return "shares"
}

// HasExpired reports whether the share's expiry has passed as of now.
func (s Share) HasExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// HasPassword reports whether the public share requires a password.
func (s Share) HasPassword() bool {
	return s.PasswordHash != ""
}
