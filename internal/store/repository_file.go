package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/models"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of
// [FileRepository]. It executes all file/folder CRUD operations directly
// against the "files" table using the embedded [*DB] connection.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{db: db, logger: logger}
}

func scanFile(row interface {
	Scan(dest ...any) error
}) (models.File, error) {
	var f models.File
	err := row.Scan(&f.ID, &f.OwnerID, &f.ParentID, &f.Name, &f.IsFolder, &f.SizeBytes,
		&f.MimeType, &f.ContentHash, &f.StoragePath, &f.WrappedDEK, &f.IV,
		&f.CreatedAt, &f.UpdatedAt, &f.DeletedAt)
	return f, err
}

// CreateFile inserts a new file or folder row and returns it with
// server-assigned fields populated. Returns [ErrFileNameConflict] if a live
// sibling with the same name already exists under the same parent.
func (r *fileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	query, args, err := buildCreateFileQuery(ctx, file)
	if err != nil {
		return models.File{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	created, err := scanFile(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.File{}, ErrFileNameConflict
		}
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetFile retrieves a single file/folder by ID, scoped to ownerID. Returns
// [ErrFileNotFound] if it does not exist or is not owned by ownerID.
func (r *fileRepository) GetFile(ctx context.Context, ownerID, fileID int64) (models.File, error) {
	query, args, err := buildGetFileQuery(ctx, ownerID, fileID)
	if err != nil {
		return models.File{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return file, nil
}

// ListChildren returns the live children of parentID owned by ownerID.
func (r *fileRepository) ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]models.File, error) {
	query, args, err := buildListChildrenQuery(ctx, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	return r.queryFiles(ctx, query, args...)
}

// ListTrashed returns every trashed file/folder owned by ownerID.
func (r *fileRepository) ListTrashed(ctx context.Context, ownerID int64) ([]models.File, error) {
	query, args, err := buildListTrashedQuery(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return r.queryFiles(ctx, query, args...)
}

// FindByContentHash looks up a live file owned by ownerID with a matching
// content hash, for upload deduplication.
func (r *fileRepository) FindByContentHash(ctx context.Context, ownerID int64, contentHash string) (models.File, error) {
	query, args, err := buildFindByContentHashQuery(ctx, ownerID, contentHash)
	if err != nil {
		return models.File{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return file, nil
}

// FindMatchesByContentHash returns up to limit live files owned by ownerID
// with a matching content hash, for surfacing a duplicate-content conflict.
func (r *fileRepository) FindMatchesByContentHash(ctx context.Context, ownerID int64, contentHash string, limit uint64) ([]models.File, error) {
	query, args, err := buildFindMatchesByContentHashQuery(ctx, ownerID, contentHash, limit)
	if err != nil {
		return nil, err
	}
	return r.queryFiles(ctx, query, args...)
}

// CompleteUpload fills in the blob and crypto fields of a pending-upload
// row identified by fileID, owned by ownerID.
func (r *fileRepository) CompleteUpload(ctx context.Context, ownerID, fileID int64, sizeBytes int64, contentHash, storagePath string, wrappedDEK, iv []byte) (models.File, error) {
	query, args, err := buildCompleteUploadQuery(ctx, ownerID, fileID, sizeBytes, contentHash, storagePath, wrappedDEK, iv)
	if err != nil {
		return models.File{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return file, nil
}

// RenameFile updates the Name of fileID, owned by ownerID.
func (r *fileRepository) RenameFile(ctx context.Context, ownerID, fileID int64, name string) error {
	const query = `
		UPDATE files SET name = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL;`

	return r.exec(ctx, query, fileID, ownerID, name)
}

// MoveFile updates the ParentID of fileID, owned by ownerID.
func (r *fileRepository) MoveFile(ctx context.Context, ownerID, fileID int64, newParentID *int64) error {
	const query = `
		UPDATE files SET parent_id = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL;`

	return r.exec(ctx, query, fileID, ownerID, newParentID)
}

// TrashFile soft-deletes fileID by setting DeletedAt to now.
func (r *fileRepository) TrashFile(ctx context.Context, ownerID, fileID int64) error {
	const query = `
		UPDATE files SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL;`

	return r.exec(ctx, query, fileID, ownerID)
}

// RestoreFile clears DeletedAt on fileID, returning it to its former
// parent. Returns [ErrFileNameConflict] if a live sibling now occupies the
// same name.
func (r *fileRepository) RestoreFile(ctx context.Context, ownerID, fileID int64) error {
	const query = `
		UPDATE files SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NOT NULL;`

	res, err := r.db.ExecContext(ctx, query, fileID, ownerID)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrFileNameConflict
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// DeleteFilePermanently removes the row entirely. Returns
// [ErrFolderNotEmpty] if fileID is a folder with remaining children.
func (r *fileRepository) DeleteFilePermanently(ctx context.Context, ownerID, fileID int64) error {
	const query = `DELETE FROM files WHERE id = $1 AND owner_id = $2;`

	res, err := r.db.ExecContext(ctx, query, fileID, ownerID)
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrFolderNotEmpty
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// CountReferencesToStoragePath counts how many live file rows still
// reference storagePath.
func (r *fileRepository) CountReferencesToStoragePath(ctx context.Context, storagePath string) (int64, error) {
	query, args, err := buildCountStoragePathRefsQuery(ctx, storagePath)
	if err != nil {
		return 0, err
	}

	var count int64
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

func (r *fileRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrFileNameConflict
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

func (r *fileRepository) queryFiles(ctx context.Context, query string, args ...any) ([]models.File, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}
