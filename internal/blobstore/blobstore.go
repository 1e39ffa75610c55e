// Package blobstore provides a filesystem-backed store for encrypted file
// blobs, organized per owner with a trash subdirectory for soft-deleted
// content.
//
// Layout, rooted at the configured BinaryDataDir:
//
//	<root>/<owner-id>/<storage-path>.enc         live blob
//	<root>/<owner-id>/.trash/<storage-path>.enc  trashed blob
//
// Writes go through a temp-file-then-rename sequence so a reader never
// observes a partially written blob, and the temp file is fsynced before
// the rename to survive a crash between write and directory entry update.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/filevault/filevault/internal/logger"
)

// Store is a filesystem-backed blob store scoped under root.
type Store struct {
	root   string
	logger *logger.Logger
}

// New constructs a Store rooted at root. The directory is created if it
// does not already exist.
func New(root string, logger *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("error creating blob store root: %w", err)
	}
	return &Store{root: root, logger: logger}, nil
}

func (s *Store) livePath(ownerID int64, storagePath string) string {
	return filepath.Join(s.root, fmt.Sprintf("%d", ownerID), storagePath+".enc")
}

func (s *Store) trashPath(ownerID int64, storagePath string) string {
	return filepath.Join(s.root, fmt.Sprintf("%d", ownerID), ".trash", storagePath+".enc")
}

// Put streams src into the live blob at (ownerID, storagePath) via a
// temp-file-then-rename sequence and returns the number of bytes written.
// writer is called with the temp file as its destination; it is expected to
// encrypt src into that destination (see [crypto.KeyChainService.EncryptStream]).
func (s *Store) Put(ctx context.Context, ownerID int64, storagePath string, writer func(dst io.Writer) (int64, error)) (int64, error) {
	dest := s.livePath(ownerID, storagePath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return 0, fmt.Errorf("error creating owner blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("error creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, writeErr := writer(tmp)
	if writeErr != nil {
		tmp.Close()
		return 0, fmt.Errorf("error writing blob: %w", writeErr)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("error syncing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return 0, fmt.Errorf("error finalizing blob: %w", err)
	}

	return n, nil
}

// Get opens the live blob at (ownerID, storagePath) for reading. The
// caller must Close the returned reader.
func (s *Store) Get(ctx context.Context, ownerID int64, storagePath string) (io.ReadCloser, error) {
	f, err := os.Open(s.livePath(ownerID, storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening blob: %w", err)
	}
	return f, nil
}

// MoveToTrash relocates the live blob to the owner's trash directory.
func (s *Store) MoveToTrash(ctx context.Context, ownerID int64, storagePath string) error {
	dest := s.trashPath(ownerID, storagePath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("error creating trash dir: %w", err)
	}
	if err := os.Rename(s.livePath(ownerID, storagePath), dest); err != nil {
		return fmt.Errorf("error moving blob to trash: %w", err)
	}
	return nil
}

// RestoreFromTrash relocates a trashed blob back to the live directory.
func (s *Store) RestoreFromTrash(ctx context.Context, ownerID int64, storagePath string) error {
	dest := s.livePath(ownerID, storagePath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("error creating owner blob dir: %w", err)
	}
	if err := os.Rename(s.trashPath(ownerID, storagePath), dest); err != nil {
		return fmt.Errorf("error restoring blob from trash: %w", err)
	}
	return nil
}

// Delete permanently removes a blob, whether it currently sits in the
// owner's live directory or their trash directory. It is a no-op if the
// file is already gone from both.
func (s *Store) Delete(ctx context.Context, ownerID int64, storagePath string) error {
	if err := os.Remove(s.trashPath(ownerID, storagePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error deleting blob: %w", err)
	}
	if err := os.Remove(s.livePath(ownerID, storagePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error deleting blob: %w", err)
	}
	return nil
}
