package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/models"
	"github.com/jackc/pgerrcode"
)

// shareRepository is the PostgreSQL-backed implementation of
// [ShareRepository]. It executes all share CRUD operations against the
// "shares" table.
type shareRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewShareRepository constructs a [ShareRepository] backed by the provided
// database connection and logger.
func NewShareRepository(db *DB, logger *logger.Logger) ShareRepository {
	logger.Debug().Msg("creating share repository")
	return &shareRepository{db: db, logger: logger}
}

func scanShare(row interface {
	Scan(dest ...any) error
}) (models.Share, error) {
	var s models.Share
	err := row.Scan(&s.ID, &s.FileID, &s.OwnerID, &s.Kind, &s.RecipientID, &s.Token,
		&s.PasswordHash, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateShare inserts a new share row and returns it with server-assigned
// fields populated. Returns [ErrShareTokenConflict] on the astronomically
// unlikely event of a token collision.
func (r *shareRepository) CreateShare(ctx context.Context, share models.Share) (models.Share, error) {
	query, args, err := buildCreateShareQuery(ctx, share)
	if err != nil {
		return models.Share{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	created, err := scanShare(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Share{}, ErrShareTokenConflict
		}
		return models.Share{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetShareByID retrieves a share by its primary key, scoped to ownerID.
func (r *shareRepository) GetShareByID(ctx context.Context, ownerID, shareID int64) (models.Share, error) {
	query, args, err := buildGetShareByIDQuery(ctx, ownerID, shareID)
	if err != nil {
		return models.Share{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Share{}, ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return share, nil
}

// GetShareByToken retrieves a public share by its token, regardless of
// owner.
func (r *shareRepository) GetShareByToken(ctx context.Context, token string) (models.Share, error) {
	query, args, err := buildGetShareByTokenQuery(ctx, token)
	if err != nil {
		return models.Share{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Share{}, ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return share, nil
}

// ListSharesForFile returns every share attached to fileID, owned by
// ownerID.
func (r *shareRepository) ListSharesForFile(ctx context.Context, ownerID, fileID int64) ([]models.Share, error) {
	query, args, err := buildListSharesForFileQuery(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}
	return r.queryShares(ctx, query, args...)
}

// ListSharesReceivedBy returns every private share whose RecipientID is
// recipientID.
func (r *shareRepository) ListSharesReceivedBy(ctx context.Context, recipientID int64) ([]models.Share, error) {
	query, args, err := buildListSharesReceivedByQuery(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return r.queryShares(ctx, query, args...)
}

// GetShareForRecipient retrieves a private share by its primary key, scoped
// to the recipient it was granted to.
func (r *shareRepository) GetShareForRecipient(ctx context.Context, recipientID, shareID int64) (models.Share, error) {
	query, args, err := buildGetShareForRecipientQuery(ctx, recipientID, shareID)
	if err != nil {
		return models.Share{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Share{}, ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return share, nil
}

// ListSharesByOwnerAndKind returns every share of the given kind owned by
// ownerID, across all of their files.
func (r *shareRepository) ListSharesByOwnerAndKind(ctx context.Context, ownerID int64, kind models.ShareKind) ([]models.Share, error) {
	query, args, err := buildListSharesByOwnerAndKindQuery(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	return r.queryShares(ctx, query, args...)
}

// UpdateSharePublicSettings overwrites the password hash and expiry of a
// public share identified by shareID, owned by ownerID.
func (r *shareRepository) UpdateSharePublicSettings(ctx context.Context, ownerID, shareID int64, passwordHash string, expiresAt *time.Time) (models.Share, error) {
	query, args, err := buildUpdateSharePublicSettingsQuery(ctx, ownerID, shareID, passwordHash, expiresAt)
	if err != nil {
		return models.Share{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Share{}, ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return share, nil
}

// RevokeShare deletes the share row identified by shareID, owned by
// ownerID.
func (r *shareRepository) RevokeShare(ctx context.Context, ownerID, shareID int64) error {
	const query = `DELETE FROM shares WHERE id = $1 AND owner_id = $2;`

	res, err := r.db.ExecContext(ctx, query, shareID, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrShareNotFound
	}

	return nil
}

func (r *shareRepository) queryShares(ctx context.Context, query string, args ...any) ([]models.Share, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return shares, nil
}
