package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mail"
	"github.com/filevault/filevault/internal/quota"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every password hash produced by
// this package (user login passwords and public-share passwords alike).
const bcryptCost = 12

// authService is the concrete implementation of AuthService. It hashes
// passwords with bcrypt and signs session tokens as HS256 JWTs.
type authService struct {
	logger      *logger.Logger
	users       store.UserRepository
	invitations store.InvitationRepository
	settings    store.SettingRepository
	cfg         config.App
	mailer      mail.EmailTransport
	disk        quota.FreeSpaceReporter
	resetTokens *resetTokenStore
}

// NewAuthService constructs an AuthService backed by users, invitations, and
// settings repositories, signing tokens with cfg's JWT secret/issuer and
// sending password-reset email through mailer. disk is consulted when
// validating an admin-set quota against the backing volume's free space.
func NewAuthService(logger *logger.Logger, users store.UserRepository, invitations store.InvitationRepository, settings store.SettingRepository, cfg config.App, mailer mail.EmailTransport, disk quota.FreeSpaceReporter) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		logger:      logger,
		users:       users,
		invitations: invitations,
		settings:    settings,
		cfg:         cfg,
		mailer:      mailer,
		disk:        disk,
		resetTokens: newResetTokenStore(),
	}
}

// RegisterUser creates a new account for email/password.
//
// If no account exists yet, the caller becomes the owner unconditionally —
// no invitation or public-registration setting is consulted. Otherwise,
// when inviteToken is empty, registration only proceeds if public
// registration is enabled; when inviteToken is set, it must name an
// unredeemed, unexpired invitation (optionally scoped to email), and the
// new account inherits the invitation's role.
func (a *authService) RegisterUser(ctx context.Context, email, password, inviteToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	bootstrap, err := a.needsOwnerBootstrap(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("error checking for existing users: %w", err)
	}

	role := models.RoleUser

	switch {
	case bootstrap:
		role = models.RoleOwner
	case inviteToken == "":
		if !a.cfg.PublicRegistration {
			return models.User{}, ErrRegistrationDisabled
		}
	default:
		invitation, err := a.invitations.GetInvitationByToken(ctx, inviteToken)
		if err != nil {
			if errors.Is(err, store.ErrInvitationNotFound) {
				return models.User{}, ErrInvitationInvalid
			}
			return models.User{}, fmt.Errorf("error looking up invitation: %w", err)
		}
		if !invitation.IsRedeemable(time.Now()) {
			return models.User{}, ErrInvitationInvalid
		}
		if invitation.Email != "" && invitation.Email != email {
			return models.User{}, ErrInvitationInvalid
		}
		role = invitation.Role
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		QuotaBytes:   a.defaultQuotaBytes(ctx),
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, store.ErrEmailAlreadyExists
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if !bootstrap && inviteToken != "" {
		if err := a.invitations.RedeemInvitation(ctx, inviteToken, created.UserID); err != nil {
			log.Err(err).Int64("user_id", created.UserID).Msg("error redeeming invitation after registration")
		}
	}

	return created, nil
}

// needsOwnerBootstrap reports whether no account exists yet, meaning the
// next registration should create the owner account unconditionally.
func (a *authService) needsOwnerBootstrap(ctx context.Context) (bool, error) {
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	return len(users) == 0, nil
}

// NeedsSetup reports whether the application has no accounts yet, i.e.
// whether the next registration will bootstrap the owner account.
func (a *authService) NeedsSetup(ctx context.Context) (bool, error) {
	return a.needsOwnerBootstrap(ctx)
}

// defaultQuotaBytes reads quota.default_bytes from the settings bag,
// returning 0 (unlimited) if unset or unparsable.
func (a *authService) defaultQuotaBytes(ctx context.Context) int64 {
	setting, err := a.settings.GetSetting(ctx, models.SettingDefaultQuotaBytes)
	if err != nil {
		return 0
	}
	var quota int64
	if _, err := fmt.Sscanf(setting.Value, "%d", &quota); err != nil {
		return 0
	}
	return quota
}

// Login verifies email/password and returns the matching account.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrWrongPassword
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}

// ChangePassword verifies oldPassword then replaces the stored hash.
func (a *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return a.users.UpdatePassword(ctx, userID, string(hash))
}

// GetUser returns the account identified by userID.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return a.users.FindUserByID(ctx, userID)
}

// ListUsers returns every account, ordered by ID.
func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return a.users.ListUsers(ctx)
}

// SetUserQuota overwrites the storage quota ceiling of userID. A quota of 0
// means unlimited. Returns [ErrQuotaBelowUsage] if quotaBytes would sit
// below the user's current usage, or [ErrQuotaExceedsFreeSpace] if it would
// sit above what the backing volume could ever satisfy.
func (a *authService) SetUserQuota(ctx context.Context, userID, quotaBytes int64) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	if quotaBytes > 0 {
		if quotaBytes < user.UsedBytes {
			return models.User{}, ErrQuotaBelowUsage
		}

		free, err := a.disk.FreeBytes()
		if err != nil {
			a.logger.Error().Err(err).Msg("error reading free disk space, skipping quota ceiling check")
		} else if quotaBytes > user.UsedBytes+int64(free) {
			return models.User{}, ErrQuotaExceedsFreeSpace
		}
	}

	user.QuotaBytes = quotaBytes
	if err := a.users.UpdateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("error updating user quota: %w", err)
	}

	return user, nil
}

// UpdateUserRole overwrites the role of userID.
func (a *authService) UpdateUserRole(ctx context.Context, userID int64, role models.Role) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	user.Role = role
	if err := a.users.UpdateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("error updating user role: %w", err)
	}

	return user, nil
}

// DeleteUser soft-deletes the account identified by userID by setting its
// deleted_at timestamp.
func (a *authService) DeleteUser(ctx context.Context, userID int64) error {
	return a.users.DeleteUser(ctx, userID)
}

// UpdateProfile overwrites displayName and avatarURL on the account
// identified by userID and returns the updated record.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	user.DisplayName = displayName
	user.AvatarURL = avatarURL

	if err := a.users.UpdateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("error updating user profile: %w", err)
	}

	return user, nil
}

// RequestPasswordReset issues a reset token for email and emails it, if the
// account exists. Lookup failures are swallowed (logged, not returned) so
// the caller cannot distinguish "no such account" from "email sent".
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("email", email).Msg("error looking up user for password reset")
		}
		return nil
	}

	token, err := a.resetTokens.issue(user.UserID)
	if err != nil {
		return fmt.Errorf("error issuing reset token: %w", err)
	}

	body := fmt.Sprintf("Use this token to reset your password: %s\nIt expires in 1 hour.", token)
	if err := a.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		log.Err(err).Str("email", email).Msg("error sending password reset email")
	}

	return nil
}

// ResetPassword consumes token and, if valid, replaces the bound account's
// password hash.
func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok := a.resetTokens.consume(token)
	if !ok {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return a.users.UpdatePassword(ctx, userID, string(hash))
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.cfg.TokenIssuer, user.UserID, a.cfg.TokenDuration, a.cfg.JWTSecret)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string, normalizing any
// failure (expired, wrong issuer, malformed, bad signature) to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.cfg.JWTSecret, a.cfg.TokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
