package service

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/filevault/filevault/internal/blobstore"
	"github.com/filevault/filevault/internal/crypto"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/quota"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/models"
)

// dedupExtensions restricts upload deduplication to content types where
// collisions are common and verifying a hash match is meaningful.
var dedupExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".txt": true, ".md": true, ".csv": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".svg": true, ".bmp": true,
}

// contentHashPattern matches a lowercase hex-encoded SHA-256 digest.
var contentHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// maxDuplicateMatches bounds how many existing records a duplicate-content
// conflict response carries.
const maxDuplicateMatches = 10

type fileService struct {
	logger  *logger.Logger
	files   store.FileRepository
	users   store.UserRepository
	blobs   *blobstore.Store
	keys    crypto.KeyChainService
	quota   *quota.Checker
	uuidGen *utils.UUIDGenerator
	kek     []byte
}

// NewFileService constructs a [FileService] wired to a file repository, a
// user repository (for quota accounting), a blob store, an envelope-encryption
// key chain, and a quota checker. kek is the process-wide key-encryption key
// used to wrap/unwrap every file's per-file DEK.
func NewFileService(logger *logger.Logger, files store.FileRepository, users store.UserRepository, blobs *blobstore.Store, keys crypto.KeyChainService, quotaChecker *quota.Checker, kek []byte) FileService {
	logger.Debug().Msg("creating file service")
	return &fileService{
		logger:  logger,
		files:   files,
		users:   users,
		blobs:   blobs,
		keys:    keys,
		quota:   quotaChecker,
		uuidGen: utils.NewUUIDGenerator(),
		kek:     kek,
	}
}

func (s *fileService) CreateFolder(ctx context.Context, ownerID int64, parentID *int64, name string) (models.File, error) {
	if name == "" {
		return models.File{}, ErrInvalidDataProvided
	}

	folder := models.File{
		OwnerID:  ownerID,
		ParentID: parentID,
		Name:     name,
		IsFolder: true,
	}

	created, err := s.files.CreateFile(ctx, folder)
	if err != nil {
		if errors.Is(err, store.ErrFileNameConflict) {
			return models.File{}, store.ErrFileNameConflict
		}
		return models.File{}, fmt.Errorf("error creating folder: %w", err)
	}

	return created, nil
}

// isDedupEligible reports whether name's extension is one of the types the
// duplicate-content check applies to. Extensions outside this set (or files
// with none) are always created as fresh rows, even when content_hash is
// supplied.
func isDedupEligible(name string) bool {
	return dedupExtensions[strings.ToLower(filepath.Ext(name))]
}

// CreateFile creates a pending-upload row for a regular file (no blob, no
// crypto material yet) or, for a folder, a complete row in one step. For a
// regular file with a well-formed content_hash on a dedup-eligible
// extension, existing matches are surfaced as a conflict unless
// skipDuplicateCheck is set, in which case a usable match is linked in
// place rather than waiting for a separate upload.
func (s *fileService) CreateFile(ctx context.Context, ownerID int64, parentID *int64, name, mimeType string, isFolder bool, contentHash string, skipDuplicateCheck bool) (models.File, error) {
	if name == "" {
		return models.File{}, ErrInvalidDataProvided
	}

	if isFolder {
		return s.CreateFolder(ctx, ownerID, parentID, name)
	}

	if contentHash != "" && isDedupEligible(name) && contentHashPattern.MatchString(contentHash) {
		matches, err := s.files.FindMatchesByContentHash(ctx, ownerID, contentHash, maxDuplicateMatches)
		if err != nil {
			return models.File{}, fmt.Errorf("error checking for duplicate content: %w", err)
		}

		if len(matches) > 0 {
			if !skipDuplicateCheck {
				return models.File{}, &DuplicateContentError{Matches: matches}
			}

			for _, existing := range matches {
				if existing.StoragePath == "" {
					continue
				}

				linked := models.File{
					OwnerID:     ownerID,
					ParentID:    parentID,
					Name:        name,
					IsFolder:    false,
					SizeBytes:   existing.SizeBytes,
					MimeType:    mimeType,
					ContentHash: contentHash,
					StoragePath: existing.StoragePath,
					WrappedDEK:  existing.WrappedDEK,
					IV:          existing.IV,
				}

				created, err := s.files.CreateFile(ctx, linked)
				if err != nil {
					if errors.Is(err, store.ErrFileNameConflict) {
						return models.File{}, store.ErrFileNameConflict
					}
					return models.File{}, fmt.Errorf("error creating linked file row: %w", err)
				}
				return created, nil
			}
		}
	}

	pending := models.File{
		OwnerID:     ownerID,
		ParentID:    parentID,
		Name:        name,
		IsFolder:    false,
		MimeType:    mimeType,
		ContentHash: contentHash,
	}

	created, err := s.files.CreateFile(ctx, pending)
	if err != nil {
		if errors.Is(err, store.ErrFileNameConflict) {
			return models.File{}, store.ErrFileNameConflict
		}
		return models.File{}, fmt.Errorf("error creating pending file row: %w", err)
	}

	return created, nil
}

// FindDuplicate looks up a live file already owned by ownerID with the given
// content hash, for a client to probe before attempting a create.
func (s *fileService) FindDuplicate(ctx context.Context, ownerID int64, contentHash string) (models.File, bool, error) {
	existing, err := s.files.FindByContentHash(ctx, ownerID, contentHash)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return models.File{}, false, nil
		}
		return models.File{}, false, fmt.Errorf("error checking for duplicate content: %w", err)
	}
	return existing, true, nil
}

// UploadContent fills in the blob and crypto fields of a pending-upload row
// created by CreateFile. Returns [ErrAlreadyUploaded] if the row already has
// content.
func (s *fileService) UploadContent(ctx context.Context, ownerID, fileID int64, content io.Reader) (models.File, error) {
	log := logger.FromContext(ctx)

	file, err := s.files.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return models.File{}, s.mapFileError(err)
	}
	if file.IsFolder {
		return models.File{}, ErrNotAFolder
	}
	if file.StoragePath != "" {
		return models.File{}, ErrAlreadyUploaded
	}

	user, err := s.users.FindUserByID(ctx, ownerID)
	if err != nil {
		return models.File{}, fmt.Errorf("error loading owner for quota check: %w", err)
	}

	buf, err := io.ReadAll(content)
	if err != nil {
		return models.File{}, fmt.Errorf("error reading upload content: %w", err)
	}
	size := int64(len(buf))

	if err := s.quota.Admit(ctx, ownerID, user.Role, size); err != nil {
		if errors.Is(err, quota.ErrQuotaExceeded) {
			return models.File{}, ErrQuotaExceeded
		}
		if errors.Is(err, quota.ErrInsufficientStorage) {
			return models.File{}, ErrInsufficientStorage
		}
		return models.File{}, fmt.Errorf("error checking quota: %w", err)
	}

	sum := sha256.Sum256(buf)
	contentHash := hex.EncodeToString(sum[:])

	dek, err := s.keys.GenerateDEK()
	if err != nil {
		return models.File{}, fmt.Errorf("error generating DEK: %w", err)
	}
	iv, err := s.keys.GenerateIV()
	if err != nil {
		return models.File{}, fmt.Errorf("error generating IV: %w", err)
	}
	wrappedDEK, err := s.keys.WrapDEK(dek, s.kek)
	if err != nil {
		return models.File{}, fmt.Errorf("error wrapping DEK: %w", err)
	}

	storagePath := s.uuidGen.Generate()

	_, err = s.blobs.Put(ctx, ownerID, storagePath, func(dst io.Writer) (int64, error) {
		return s.keys.EncryptStream(dst, bytes.NewReader(buf), dek, iv)
	})
	if err != nil {
		return models.File{}, fmt.Errorf("error writing blob: %w", err)
	}

	updated, err := s.files.CompleteUpload(ctx, ownerID, fileID, size, contentHash, storagePath, wrappedDEK, iv)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Int64("file_id", fileID).Msg("error completing upload after blob write")
		return models.File{}, s.mapFileError(err)
	}

	if _, err := s.users.AdjustUsedBytes(ctx, ownerID, size); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("error adjusting used bytes after upload")
	}

	return updated, nil
}

func (s *fileService) DownloadFile(ctx context.Context, ownerID, fileID int64, dst io.Writer) (models.File, error) {
	file, err := s.files.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return models.File{}, s.mapFileError(err)
	}
	if file.IsFolder {
		return models.File{}, ErrNotAFolder
	}

	if err := s.streamDecrypted(ctx, file, dst); err != nil {
		return models.File{}, err
	}

	return file, nil
}

func (s *fileService) streamDecrypted(ctx context.Context, file models.File, dst io.Writer) error {
	blob, err := s.blobs.Get(ctx, file.OwnerID, file.StoragePath)
	if err != nil {
		return fmt.Errorf("error opening blob: %w", err)
	}
	defer blob.Close()

	dek, err := s.keys.UnwrapDEK(file.WrappedDEK, s.kek)
	if err != nil {
		return fmt.Errorf("error unwrapping DEK: %w", err)
	}

	if err := s.keys.DecryptStream(dst, blob, dek, file.IV); err != nil {
		return fmt.Errorf("error decrypting blob: %w", err)
	}

	return nil
}

func (s *fileService) DownloadFolderArchive(ctx context.Context, ownerID, folderID int64, dst io.Writer) error {
	root, err := s.files.GetFile(ctx, ownerID, folderID)
	if err != nil {
		return s.mapFileError(err)
	}
	if !root.IsFolder {
		return ErrNotAFolder
	}

	zw := zip.NewWriter(dst)
	if err := s.addFolderToArchive(ctx, ownerID, zw, &folderID, ""); err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

func (s *fileService) addFolderToArchive(ctx context.Context, ownerID int64, zw *zip.Writer, parentID *int64, prefix string) error {
	children, err := s.files.ListChildren(ctx, ownerID, parentID)
	if err != nil {
		return fmt.Errorf("error listing folder contents: %w", err)
	}

	for _, child := range children {
		path := prefix + child.Name
		if child.IsFolder {
			if err := s.addFolderToArchive(ctx, ownerID, zw, &child.ID, path+"/"); err != nil {
				return err
			}
			continue
		}

		w, err := zw.Create(path)
		if err != nil {
			return fmt.Errorf("error adding %s to archive: %w", path, err)
		}
		if err := s.streamDecrypted(ctx, child, w); err != nil {
			return fmt.Errorf("error streaming %s into archive: %w", path, err)
		}
	}

	return nil
}

func (s *fileService) GetFile(ctx context.Context, ownerID, fileID int64) (models.File, error) {
	file, err := s.files.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return models.File{}, s.mapFileError(err)
	}
	return file, nil
}

func (s *fileService) ListFolder(ctx context.Context, req models.FileListRequest) ([]models.File, error) {
	if req.IncludeTrashed {
		return s.files.ListTrashed(ctx, req.UserID)
	}
	return s.files.ListChildren(ctx, req.UserID, req.ParentID)
}

func (s *fileService) ListTrash(ctx context.Context, ownerID int64) ([]models.File, error) {
	return s.files.ListTrashed(ctx, ownerID)
}

func (s *fileService) RenameFile(ctx context.Context, ownerID, fileID int64, newName string) (models.File, error) {
	if newName == "" {
		return models.File{}, ErrInvalidDataProvided
	}
	if err := s.files.RenameFile(ctx, ownerID, fileID, newName); err != nil {
		return models.File{}, s.mapFileError(err)
	}
	return s.files.GetFile(ctx, ownerID, fileID)
}

func (s *fileService) MoveFile(ctx context.Context, ownerID, fileID int64, newParentID *int64) (models.File, error) {
	if newParentID != nil {
		if *newParentID == fileID {
			return models.File{}, ErrCannotMoveIntoSelf
		}
		isDescendant, err := s.isDescendant(ctx, ownerID, fileID, *newParentID)
		if err != nil {
			return models.File{}, err
		}
		if isDescendant {
			return models.File{}, ErrCannotMoveIntoSelf
		}
	}

	if err := s.files.MoveFile(ctx, ownerID, fileID, newParentID); err != nil {
		return models.File{}, s.mapFileError(err)
	}
	return s.files.GetFile(ctx, ownerID, fileID)
}

// isDescendant walks up from candidateID's parent to see whether ancestorID
// is one of its ancestors, used to reject moves that would create a cycle.
// candidateID itself is not compared with ancestorID.
func (s *fileService) isDescendant(ctx context.Context, ownerID, ancestorID, candidateID int64) (bool, error) {
	current := candidateID
	for {
		file, err := s.files.GetFile(ctx, ownerID, current)
		if err != nil {
			return false, s.mapFileError(err)
		}
		if file.ParentID == nil {
			return false, nil
		}
		if *file.ParentID == ancestorID {
			return true, nil
		}
		current = *file.ParentID
	}
}

func (s *fileService) TrashFile(ctx context.Context, ownerID, fileID int64) error {
	file, err := s.files.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return s.mapFileError(err)
	}

	if file.IsFolder {
		children, err := s.files.ListChildren(ctx, ownerID, &fileID)
		if err != nil {
			return fmt.Errorf("error listing folder contents: %w", err)
		}
		for _, child := range children {
			if err := s.TrashFile(ctx, ownerID, child.ID); err != nil {
				return err
			}
		}
	}

	if err := s.files.TrashFile(ctx, ownerID, fileID); err != nil {
		return s.mapFileError(err)
	}

	return nil
}

func (s *fileService) RestoreFile(ctx context.Context, ownerID, fileID int64) error {
	if err := s.files.RestoreFile(ctx, ownerID, fileID); err != nil {
		return s.mapFileError(err)
	}
	return nil
}

func (s *fileService) DeleteFilePermanently(ctx context.Context, ownerID, fileID int64) error {
	file, err := s.files.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return s.mapFileError(err)
	}

	if err := s.files.DeleteFilePermanently(ctx, ownerID, fileID); err != nil {
		return s.mapFileError(err)
	}

	if file.IsFolder || file.StoragePath == "" {
		return nil
	}

	refs, err := s.files.CountReferencesToStoragePath(ctx, file.StoragePath)
	if err != nil {
		s.logger.Error().Err(err).Str("storage_path", file.StoragePath).Msg("error counting storage path references")
		return nil
	}
	if refs == 0 {
		if err := s.blobs.Delete(ctx, ownerID, file.StoragePath); err != nil {
			s.logger.Error().Err(err).Str("storage_path", file.StoragePath).Msg("error deleting orphaned blob")
		}
	}

	if _, err := s.users.AdjustUsedBytes(ctx, ownerID, -file.SizeBytes); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("error adjusting used bytes after permanent delete")
	}

	return nil
}

func (s *fileService) BatchDelete(ctx context.Context, req models.BatchDeleteRequest) error {
	var firstErr error
	for _, id := range req.IDs {
		if err := s.TrashFile(ctx, req.UserID, id); err != nil {
			s.logger.Error().Err(err).Int64("file_id", id).Msg("error trashing file in batch")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *fileService) mapFileError(err error) error {
	if errors.Is(err, store.ErrFileNotFound) {
		return store.ErrFileNotFound
	}
	if errors.Is(err, store.ErrFileNameConflict) {
		return store.ErrFileNameConflict
	}
	if errors.Is(err, store.ErrFolderNotEmpty) {
		return store.ErrFolderNotEmpty
	}
	return fmt.Errorf("error accessing file: %w", err)
}
