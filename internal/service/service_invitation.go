package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mail"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
)

type invitationService struct {
	logger        *logger.Logger
	invitations   store.InvitationRepository
	users         store.UserRepository
	tokenTTLHours int
	mailer        mail.EmailTransport
}

// NewInvitationService constructs an [InvitationService] backed by an
// invitation repository and a user repository (for the inviter's role),
// minting tokens with a lifetime of cfg.TokenTTLHours and notifying
// invitees through mailer.
func NewInvitationService(logger *logger.Logger, invitations store.InvitationRepository, users store.UserRepository, cfg config.Invite, mailer mail.EmailTransport) InvitationService {
	logger.Debug().Msg("creating invitation service")
	ttl := cfg.TokenTTLHours
	if ttl <= 0 {
		ttl = 72
	}
	return &invitationService{logger: logger, invitations: invitations, users: users, tokenTTLHours: ttl, mailer: mailer}
}

// CreateInvitation mints a new invitation on behalf of invitedByID. Returns
// [ErrRoleCannotInviteAbove] if role outranks the inviter's own role.
func (s *invitationService) CreateInvitation(ctx context.Context, invitedByID int64, email string, role models.Role) (models.Invitation, error) {
	inviter, err := s.users.FindUserByID(ctx, invitedByID)
	if err != nil {
		return models.Invitation{}, fmt.Errorf("error looking up inviter: %w", err)
	}
	if role.Outranks(inviter.Role) {
		return models.Invitation{}, ErrRoleCannotInviteAbove
	}

	token, err := generateInvitationToken()
	if err != nil {
		return models.Invitation{}, fmt.Errorf("error generating invitation token: %w", err)
	}

	invitation := models.Invitation{
		Token:       token,
		InvitedByID: invitedByID,
		Email:       email,
		Role:        role,
		ExpiresAt:   time.Now().Add(time.Duration(s.tokenTTLHours) * time.Hour),
	}

	created, err := s.invitations.CreateInvitation(ctx, invitation)
	if err != nil {
		return models.Invitation{}, err
	}

	if email != "" {
		body := fmt.Sprintf("You have been invited to join filevault. Use this invitation token to register: %s", token)
		if err := s.mailer.Send(ctx, email, "You're invited to filevault", body); err != nil {
			logger.FromContext(ctx).Err(err).Str("email", email).Msg("error sending invitation email")
		}
	}

	return created, nil
}

// generateInvitationToken mints a 16-byte (128-bit entropy) hex-encoded
// token, matching the entropy of a public-share token.
func generateInvitationToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func (s *invitationService) ListInvitations(ctx context.Context) ([]models.Invitation, error) {
	return s.invitations.ListInvitations(ctx)
}

// ValidateInvitation reports whether token names an invitation that is
// currently redeemable (exists, unexpired, unredeemed).
func (s *invitationService) ValidateInvitation(ctx context.Context, token string) (models.Invitation, bool, error) {
	invitation, err := s.invitations.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrInvitationNotFound) {
			return models.Invitation{}, false, nil
		}
		return models.Invitation{}, false, fmt.Errorf("error looking up invitation: %w", err)
	}
	return invitation, invitation.IsRedeemable(time.Now()), nil
}

func (s *invitationService) RevokeInvitation(ctx context.Context, id int64) error {
	return s.invitations.RevokeInvitation(ctx, id)
}
