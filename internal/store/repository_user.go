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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and quota bookkeeping against
// the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Email, &u.DisplayName, &u.AvatarURL, &u.PasswordHash,
		&u.Role, &u.QuotaBytes, &u.UsedBytes, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.DisplayName, user.AvatarURL,
		user.PasswordHash, user.Role, user.QuotaBytes)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves a user record by email. Returns
// [ErrUserNotFound] if no matching, non-deleted record exists.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByEmail, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByID retrieves a user record by its primary key. Returns
// [ErrUserNotFound] if no matching, non-deleted record exists.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ListUsers returns every non-deleted user account, ordered by ID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := buildListUsersQuery(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser persists mutable fields of user (display name, avatar, role,
// quota) identified by UserID.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users
		SET display_name = $2, avatar_url = $3, role = $4, quota_bytes = $5, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL;`

	res, err := r.db.ExecContext(ctx, query, user.UserID, user.DisplayName, user.AvatarURL, user.Role, user.QuotaBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword overwrites the stored password hash for userID.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updatePassword, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// AdjustUsedBytes atomically adds delta to the user's UsedBytes counter and
// returns the resulting total. Relies on the database to perform the
// addition so concurrent uploads/deletes cannot race each other.
func (r *userRepository) AdjustUsedBytes(ctx context.Context, userID int64, delta int64) (int64, error) {
	row := r.db.QueryRowContext(ctx, adjustUsedBytes, userID, delta)

	var usedBytes int64
	if err := row.Scan(&usedBytes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return usedBytes, nil
}

// DeleteUser soft-deletes the user account identified by userID.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
