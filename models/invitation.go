package models

import "time"

// Invitation gates new-user registration when public registration is
// disabled. A single-use token is minted by an admin/owner and redeemed by
// exactly one registrant.
type Invitation struct {
	ID          int64  `json:"id"`
	Token       string `json:"token"`
	InvitedByID int64  `json:"invited_by_id"`

	// Email, when set, restricts redemption to that address.
	Email string `json:"email,omitempty"`

	// Role is the role granted to the user created from this invitation.
	Role Role `json:"role"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// RedeemedAt is set once the invitation has been used; nil while open.
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`

	// RedeemedByID identifies the user account created from this
	// invitation, once redeemed.
	RedeemedByID *int64 `json:"redeemed_by_id,omitempty"`
}

// TableName returns the name of the database table associated with the
// Invitation model.
func (i Invitation) TableName() string {
	return "invitations"
}

// IsRedeemable reports whether the invitation can still be used: not
// already redeemed and not expired as of now.
func (i Invitation) IsRedeemable(now time.Time) bool {
	return i.RedeemedAt == nil && now.Before(i.ExpiresAt)
}
