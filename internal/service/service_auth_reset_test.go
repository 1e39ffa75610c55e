package service

import (
	"context"
	"testing"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mock"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// newTestAuthService builds an authService backed by gomock doubles for its
// user repository and mail transport.
func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository, *mock.MockEmailTransport) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	mailer := mock.NewMockEmailTransport(ctrl)
	svc := NewAuthService(logger.Nop(), users, nil, nil, config.App{}, mailer, nil)
	return svc, users, mailer
}

// singleIssuedToken extracts the lone outstanding reset token from svc's
// store, assuming exactly one has been issued.
func singleIssuedToken(t *testing.T, svc AuthService) string {
	t.Helper()
	tokens := svc.(*authService).resetTokens.tokens
	require.Len(t, tokens, 1)
	for tok := range tokens {
		return tok
	}
	return ""
}

// ─────────────────────────────────────────────
// RequestPasswordReset
// ─────────────────────────────────────────────

func TestRequestPasswordReset_ExistingAccount_SendsEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, mailer := newTestAuthService(t, ctrl)
	user := models.User{UserID: 1, Email: "[email protected]", PasswordHash: "old"}

	users.EXPECT().FindUserByEmail(gomock.Any(), "[email protected]").Return(user, nil)
	mailer.EXPECT().Send(gomock.Any(), "[email protected]", gomock.Any(), gomock.Any()).Return(nil)

	err := svc.RequestPasswordReset(context.Background(), "[email protected]")

	require.NoError(t, err)
}

func TestRequestPasswordReset_UnknownAccount_DoesNotLeakExistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestAuthService(t, ctrl)

	users.EXPECT().FindUserByEmail(gomock.Any(), "[email protected]").Return(models.User{}, store.ErrUserNotFound)
	// mailer.Send is intentionally never expected: no account means no mail.

	err := svc.RequestPasswordReset(context.Background(), "[email protected]")

	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// ResetPassword
// ─────────────────────────────────────────────

func TestResetPassword_ValidToken_UpdatesPasswordHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, mailer := newTestAuthService(t, ctrl)
	user := models.User{UserID: 1, Email: "[email protected]", PasswordHash: "old"}

	users.EXPECT().FindUserByEmail(gomock.Any(), "[email protected]").Return(user, nil)
	mailer.EXPECT().Send(gomock.Any(), "[email protected]", gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "[email protected]"))

	token := singleIssuedToken(t, svc)

	var capturedHash string
	users.EXPECT().UpdatePassword(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(ctx context.Context, userID int64, hash string) error {
			capturedHash = hash
			return nil
		})

	err := svc.ResetPassword(context.Background(), token, "newpassword123")

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(capturedHash), []byte("newpassword123")))
}

func TestResetPassword_UnknownToken_ReturnsErrResetTokenInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	err := svc.ResetPassword(context.Background(), "does-not-exist", "newpassword123")

	require.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, mailer := newTestAuthService(t, ctrl)
	user := models.User{UserID: 1, Email: "[email protected]", PasswordHash: "old"}

	users.EXPECT().FindUserByEmail(gomock.Any(), "[email protected]").Return(user, nil)
	mailer.EXPECT().Send(gomock.Any(), "[email protected]", gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "[email protected]"))

	token := singleIssuedToken(t, svc)

	users.EXPECT().UpdatePassword(gomock.Any(), int64(1), gomock.Any()).Return(nil)
	require.NoError(t, svc.ResetPassword(context.Background(), token, "newpassword123"))

	err := svc.ResetPassword(context.Background(), token, "anotherpassword456")

	require.ErrorIs(t, err, ErrResetTokenInvalid)
}
