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

// invitationRepository is the PostgreSQL-backed implementation of
// [InvitationRepository]. It executes all invitation CRUD operations
// against the "invitations" table.
type invitationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewInvitationRepository constructs an [InvitationRepository] backed by
// the provided database connection and logger.
func NewInvitationRepository(db *DB, logger *logger.Logger) InvitationRepository {
	logger.Debug().Msg("creating invitation repository")
	return &invitationRepository{db: db, logger: logger}
}

func scanInvitation(row interface {
	Scan(dest ...any) error
}) (models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.Token, &inv.InvitedByID, &inv.Email, &inv.Role,
		&inv.ExpiresAt, &inv.CreatedAt, &inv.RedeemedAt, &inv.RedeemedByID)
	return inv, err
}

// CreateInvitation inserts a new invitation row and returns it with
// server-assigned fields populated.
func (r *invitationRepository) CreateInvitation(ctx context.Context, invitation models.Invitation) (models.Invitation, error) {
	query, args, err := buildCreateInvitationQuery(ctx, invitation)
	if err != nil {
		return models.Invitation{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	created, err := scanInvitation(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Invitation{}, fmt.Errorf("invitation token collision: %w", err)
		}
		return models.Invitation{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetInvitationByToken retrieves an invitation by its token.
func (r *invitationRepository) GetInvitationByToken(ctx context.Context, token string) (models.Invitation, error) {
	query, args, err := buildGetInvitationByTokenQuery(ctx, token)
	if err != nil {
		return models.Invitation{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invitation{}, ErrInvitationNotFound
		}
		return models.Invitation{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return inv, nil
}

// ListInvitations returns every invitation, most recent first.
func (r *invitationRepository) ListInvitations(ctx context.Context) ([]models.Invitation, error) {
	query, args, err := buildListInvitationsQuery(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return invitations, nil
}

// RedeemInvitation marks the invitation identified by token as redeemed by
// redeemedByID. The WHERE clause requires redeemed_at IS NULL so a
// concurrent double-redemption attempt affects zero rows instead of
// overwriting the first redeemer.
func (r *invitationRepository) RedeemInvitation(ctx context.Context, token string, redeemedByID int64) error {
	const query = `
		UPDATE invitations
		SET redeemed_at = NOW(), redeemed_by_id = $2
		WHERE token = $1 AND redeemed_at IS NULL;`

	res, err := r.db.ExecContext(ctx, query, token, redeemedByID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		// Distinguish "doesn't exist" from "already redeemed" for a better
		// error message back to the caller.
		if _, err := r.GetInvitationByToken(ctx, token); err != nil {
			return ErrInvitationNotFound
		}
		return ErrInvitationAlreadyRedeemed
	}

	return nil
}

// RevokeInvitation deletes the unredeemed invitation identified by id. The
// WHERE clause requires redeemed_at IS NULL so an invitation that has
// already been used cannot be revoked out from under its new account.
func (r *invitationRepository) RevokeInvitation(ctx context.Context, id int64) error {
	query, args, err := buildRevokeInvitationQuery(ctx, id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}
