package models

import "time"

// Well-known setting keys. Settings are a flat key/value bag so new
// admin-configurable values can be added without a migration.
const (
	SettingPublicRegistration    = "auth.public_registration"
	SettingDefaultQuotaBytes     = "quota.default_bytes"
	SettingMaxFreeSpaceWarnBytes = "storage.max_free_space_warn_bytes"
	SettingInviteTokenTTLHours   = "invite.token_ttl_hours"

	SettingSMTPEnabled  = "smtp.enabled"
	SettingSMTPHost     = "smtp.host"
	SettingSMTPPort     = "smtp.port"
	SettingSMTPUsername = "smtp.username"
	SettingSMTPPassword = "smtp.password"
	SettingSMTPFrom     = "smtp.from"
)

// Setting is a single admin-configurable key/value row. Value is stored as
// text; callers parse it to the type appropriate for the key.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy int64     `json:"updated_by"`
}

// TableName returns the name of the database table associated with the
// Setting model.
func (s Setting) TableName() string {
	return "settings"
}
