package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
	"golang.org/x/crypto/bcrypt"
)

type shareService struct {
	logger  *logger.Logger
	shares  store.ShareRepository
	files   store.FileRepository
	users   store.UserRepository
	fileSvc FileService
}

// NewShareService constructs a [ShareService] backed by share, file, and
// user repositories, plus a [FileService] used to stream decrypted content
// to private-share holders.
func NewShareService(logger *logger.Logger, shares store.ShareRepository, files store.FileRepository, users store.UserRepository, fileSvc FileService) ShareService {
	logger.Debug().Msg("creating share service")
	return &shareService{logger: logger, shares: shares, files: files, users: users, fileSvc: fileSvc}
}

func (s *shareService) CreatePrivateShare(ctx context.Context, ownerID, fileID int64, recipientEmail string) (models.Share, error) {
	if _, err := s.files.GetFile(ctx, ownerID, fileID); err != nil {
		return models.Share{}, s.mapFileError(err)
	}

	recipient, err := s.users.FindUserByEmail(ctx, recipientEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Share{}, store.ErrUserNotFound
		}
		return models.Share{}, fmt.Errorf("error looking up recipient: %w", err)
	}

	share := models.Share{
		FileID:      fileID,
		OwnerID:     ownerID,
		Kind:        models.SharePrivate,
		RecipientID: &recipient.UserID,
	}

	return s.shares.CreateShare(ctx, share)
}

func (s *shareService) CreatePublicShare(ctx context.Context, ownerID, fileID int64, password string, expiresAt *time.Time) (models.Share, error) {
	if _, err := s.files.GetFile(ctx, ownerID, fileID); err != nil {
		return models.Share{}, s.mapFileError(err)
	}

	token, err := generateShareToken()
	if err != nil {
		return models.Share{}, fmt.Errorf("error generating share token: %w", err)
	}

	var passwordHash string
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return models.Share{}, fmt.Errorf("error hashing share password: %w", err)
		}
		passwordHash = string(hash)
	}

	share := models.Share{
		FileID:       fileID,
		OwnerID:      ownerID,
		Kind:         models.SharePublic,
		Token:        token,
		PasswordHash: passwordHash,
		ExpiresAt:    expiresAt,
	}

	return s.shares.CreateShare(ctx, share)
}

// generateShareToken mints a 16-byte (128-bit entropy) hex-encoded token.
func generateShareToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func (s *shareService) ResolvePublicShare(ctx context.Context, token, password string) (models.Share, models.File, error) {
	share, err := s.shares.GetShareByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.Share{}, models.File{}, store.ErrShareNotFound
		}
		return models.Share{}, models.File{}, fmt.Errorf("error looking up share: %w", err)
	}

	if share.HasExpired(time.Now()) {
		return models.Share{}, models.File{}, ErrShareExpired
	}

	if share.HasPassword() {
		if password == "" {
			return models.Share{}, models.File{}, ErrSharePasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(share.PasswordHash), []byte(password)); err != nil {
			return models.Share{}, models.File{}, ErrShareWrongPassword
		}
	}

	file, err := s.files.GetFile(ctx, share.OwnerID, share.FileID)
	if err != nil {
		return models.Share{}, models.File{}, s.mapFileError(err)
	}

	return share, file, nil
}

func (s *shareService) ListSharesForFile(ctx context.Context, ownerID, fileID int64) ([]models.Share, error) {
	return s.shares.ListSharesForFile(ctx, ownerID, fileID)
}

func (s *shareService) ListSharesReceived(ctx context.Context, recipientID int64) ([]models.Share, error) {
	return s.shares.ListSharesReceivedBy(ctx, recipientID)
}

func (s *shareService) ListPublicShares(ctx context.Context, ownerID int64) ([]models.Share, error) {
	return s.shares.ListSharesByOwnerAndKind(ctx, ownerID, models.SharePublic)
}

func (s *shareService) ListPrivateShares(ctx context.Context, ownerID int64) ([]models.Share, error) {
	return s.shares.ListSharesByOwnerAndKind(ctx, ownerID, models.SharePrivate)
}

func (s *shareService) UpdatePublicShareSettings(ctx context.Context, ownerID, shareID int64, password *string, clearPassword bool, expiresAt *time.Time, clearExpiry bool) (models.Share, error) {
	share, err := s.shares.GetShareByID(ctx, ownerID, shareID)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.Share{}, store.ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("error looking up share: %w", err)
	}
	if share.Kind != models.SharePublic {
		return models.Share{}, ErrShareNotPublic
	}

	passwordHash := share.PasswordHash
	switch {
	case clearPassword:
		passwordHash = ""
	case password != nil && *password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
		if err != nil {
			return models.Share{}, fmt.Errorf("error hashing share password: %w", err)
		}
		passwordHash = string(hash)
	}

	newExpiresAt := share.ExpiresAt
	switch {
	case clearExpiry:
		newExpiresAt = nil
	case expiresAt != nil:
		newExpiresAt = expiresAt
	}

	updated, err := s.shares.UpdateSharePublicSettings(ctx, ownerID, shareID, passwordHash, newExpiresAt)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.Share{}, store.ErrShareNotFound
		}
		return models.Share{}, fmt.Errorf("error updating share settings: %w", err)
	}

	return updated, nil
}

func (s *shareService) GetPrivateShareFile(ctx context.Context, recipientID, shareID int64) (models.File, error) {
	share, err := s.shares.GetShareForRecipient(ctx, recipientID, shareID)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.File{}, store.ErrShareNotFound
		}
		return models.File{}, fmt.Errorf("error looking up share: %w", err)
	}

	return s.fileSvc.GetFile(ctx, share.OwnerID, share.FileID)
}

func (s *shareService) DownloadPrivateShare(ctx context.Context, recipientID, shareID int64, dst io.Writer) (models.File, error) {
	share, err := s.shares.GetShareForRecipient(ctx, recipientID, shareID)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.File{}, store.ErrShareNotFound
		}
		return models.File{}, fmt.Errorf("error looking up share: %w", err)
	}

	return s.fileSvc.DownloadFile(ctx, share.OwnerID, share.FileID, dst)
}

func (s *shareService) RevokeShare(ctx context.Context, ownerID, shareID int64) error {
	if err := s.shares.RevokeShare(ctx, ownerID, shareID); err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return store.ErrShareNotFound
		}
		return fmt.Errorf("error revoking share: %w", err)
	}
	return nil
}

func (s *shareService) mapFileError(err error) error {
	if errors.Is(err, store.ErrFileNotFound) {
		return store.ErrFileNotFound
	}
	return fmt.Errorf("error accessing file: %w", err)
}
