package models

import "time"

// Role identifies a user's position in the owner > admin > user hierarchy.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Outranks reports whether r has strictly more privilege than other.
func (r Role) Outranks(other Role) bool {
	return roleRank(r) > roleRank(other)
}

func roleRank(r Role) int {
	switch r {
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// User represents an account entity used for authentication and
// authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// DisplayName is the non-sensitive name shown in the UI.
	DisplayName string `json:"display_name"`

	// AvatarURL is an optional cosmetic avatar link, surfaced only on
	// /auth/me.
	AvatarURL string `json:"avatar_url,omitempty"`

	// PasswordHash is the bcrypt digest of the user's password. Never
	// exposed via JSON.
	PasswordHash string `json:"-"`

	// Role is the user's position in the owner/admin/user hierarchy.
	Role Role `json:"role"`

	// QuotaBytes is the user's storage ceiling; 0 means unlimited.
	QuotaBytes int64 `json:"quota_bytes"`

	// UsedBytes is the authoritative total of bytes the user currently
	// occupies across all non-deduplicated blobs they own.
	UsedBytes int64 `json:"used_bytes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks a soft-deleted account. Nil for active users.
	DeletedAt *time.Time `json:"-"`
}

// TableName returns the name of the database table associated with the User
// model.
func (u User) TableName() string {
	return "users"
}
