package validators

import "errors"

var (
	// ErrUnsupportedType is returned when a value of an unsupported type
	// is passed to a validator that cannot handle it.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownField is returned when a field name provided for validation
	// does not match any known or expected field.
	ErrUnknownField = errors.New("unknown field for validation")

	// ErrInvalidEmail is returned when an email field is empty or does not
	// contain an "@" separator.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPassword is returned when a password field is shorter than
	// the minimum required length.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")

	// ErrInvalidName is returned when a file, folder, or display name is
	// empty or contains a path separator.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidParentID is returned when a parent folder ID is zero or
	// negative.
	ErrInvalidParentID = errors.New("invalid parent id")

	// ErrEmptyIDs is returned when an operation requires a non-empty list
	// of record IDs but an empty slice is provided.
	ErrEmptyIDs = errors.New("IDs list cannot be empty")

	// ErrInvalidShareKind is returned when a share request's kind is
	// neither "private" nor "public".
	ErrInvalidShareKind = errors.New("share kind must be \"private\" or \"public\"")

	// ErrInvalidRecipientEmail is returned when a private share request
	// omits the recipient's email address.
	ErrInvalidRecipientEmail = errors.New("recipient_email is required for a private share")

	// ErrInvalidMimeType is returned when a declared MIME type does not
	// fall under any of the application's allowed upload categories.
	ErrInvalidMimeType = errors.New("mime type is not allowed")
)
