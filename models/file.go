package models

import "time"

// File represents a single stored object: either a regular file with an
// encrypted blob behind it, or a folder (IsFolder=true) which groups other
// files/folders under ParentID and has no blob of its own.
type File struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	ParentID *int64 `json:"parent_id,omitempty"`

	Name     string `json:"name"`
	IsFolder bool   `json:"is_folder"`

	// SizeBytes is the plaintext content size; zero for folders.
	SizeBytes int64 `json:"size_bytes"`

	// MimeType is the client-reported content type at upload time.
	MimeType string `json:"mime_type,omitempty"`

	// ContentHash is the SHA-256 hex digest of the plaintext content, used
	// for deduplication within the same owner and extension.
	ContentHash string `json:"content_hash,omitempty"`

	// StoragePath identifies the blob on disk (relative to the owner's
	// blob directory). Multiple File rows may share a StoragePath when
	// deduplicated.
	StoragePath string `json:"-"`

	// WrappedDEK is the file's data-encryption key, wrapped under the
	// process-wide KEK. Never exposed via JSON.
	WrappedDEK []byte `json:"-"`

	// IV is the AES-GCM nonce used to encrypt the blob body.
	IV []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks the file as trashed; nil while live.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// TableName returns the name of the database table associated with the File
// model.
func (f File) TableName() string {
	return "files"
}

// IsTrashed reports whether the file currently sits in the owner's trash.
func (f File) IsTrashed() bool {
	return f.DeletedAt != nil
}
