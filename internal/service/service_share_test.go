package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/filevault/filevault/internal/blobstore"
	"github.com/filevault/filevault/internal/crypto"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mock"
	"github.com/filevault/filevault/internal/quota"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
)

// newTestShareService builds a shareService wired to gomock share/file/user
// repositories and a real fileService sharing the same file/user mocks, so a
// single GetFile expectation on `files` satisfies both the share service's
// own lookups and the file service calls it delegates to (GetPrivateShareFile,
// DownloadPrivateShare).
func newTestShareService(t *testing.T, ctrl *gomock.Controller) (ShareService, *mock.MockShareRepository, *mock.MockFileRepository, *mock.MockUserRepository) {
	t.Helper()

	shares := mock.NewMockShareRepository(ctrl)
	files := mock.NewMockFileRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	blobs, err := blobstore.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	keys := crypto.NewKeyChainService()
	checker := quota.New(logger.Nop(), fakeDisk{free: 1 << 30}, fakeUsage{}, 0)
	kek := bytes.Repeat([]byte{0x24}, 32)
	fileSvc := NewFileService(logger.Nop(), files, users, blobs, keys, checker, kek)

	svc := NewShareService(logger.Nop(), shares, files, users, fileSvc)
	return svc, shares, files, users
}

func TestCreatePrivateShare_Happy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, files, users := newTestShareService(t, ctrl)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1}, nil)
	users.EXPECT().FindUserByEmail(gomock.Any(), "friend@example.com").Return(models.User{UserID: 2, Email: "friend@example.com"}, nil)
	shares.EXPECT().CreateShare(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, share models.Share) (models.Share, error) {
			assert.Equal(t, models.SharePrivate, share.Kind)
			require.NotNil(t, share.RecipientID)
			assert.Equal(t, int64(2), *share.RecipientID)
			share.ID = 100
			return share, nil
		})

	created, err := svc.CreatePrivateShare(context.Background(), 1, 5, "friend@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
}

func TestCreatePrivateShare_UnknownRecipient_ReturnsErrUserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, files, users := newTestShareService(t, ctrl)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1}, nil)
	users.EXPECT().FindUserByEmail(gomock.Any(), "nobody@example.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.CreatePrivateShare(context.Background(), 1, 5, "nobody@example.com")

	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestCreatePublicShare_WithPassword_HashesIt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, files, _ := newTestShareService(t, ctrl)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1}, nil)
	shares.EXPECT().CreateShare(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, share models.Share) (models.Share, error) {
			assert.Equal(t, models.SharePublic, share.Kind)
			assert.NotEmpty(t, share.Token)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(share.PasswordHash), []byte("secret")))
			share.ID = 200
			return share, nil
		})

	created, err := svc.CreatePublicShare(context.Background(), 1, 5, "secret", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(200), created.ID)
}

func TestResolvePublicShare_Expired_ReturnsErrShareExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	past := time.Now().Add(-time.Hour)
	shares.EXPECT().GetShareByToken(gomock.Any(), "tok").Return(models.Share{ID: 1, Kind: models.SharePublic, ExpiresAt: &past}, nil)

	_, _, err := svc.ResolvePublicShare(context.Background(), "tok", "")

	require.ErrorIs(t, err, ErrShareExpired)
}

func TestResolvePublicShare_PasswordRequiredButMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcryptCost)
	require.NoError(t, err)

	shares.EXPECT().GetShareByToken(gomock.Any(), "tok").Return(models.Share{ID: 1, Kind: models.SharePublic, PasswordHash: string(hash)}, nil)

	_, _, err = svc.ResolvePublicShare(context.Background(), "tok", "")

	require.ErrorIs(t, err, ErrSharePasswordRequired)
}

func TestResolvePublicShare_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcryptCost)
	require.NoError(t, err)

	shares.EXPECT().GetShareByToken(gomock.Any(), "tok").Return(models.Share{ID: 1, Kind: models.SharePublic, PasswordHash: string(hash)}, nil)

	_, _, err = svc.ResolvePublicShare(context.Background(), "tok", "wrong")

	require.ErrorIs(t, err, ErrShareWrongPassword)
}

func TestResolvePublicShare_Happy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, files, _ := newTestShareService(t, ctrl)

	shares.EXPECT().GetShareByToken(gomock.Any(), "tok").Return(models.Share{ID: 1, OwnerID: 1, FileID: 9, Kind: models.SharePublic}, nil)
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(9)).Return(models.File{ID: 9, OwnerID: 1, Name: "report.pdf"}, nil)

	share, file, err := svc.ResolvePublicShare(context.Background(), "tok", "")

	require.NoError(t, err)
	assert.Equal(t, int64(1), share.ID)
	assert.Equal(t, "report.pdf", file.Name)
}

func TestUpdatePublicShareSettings_OnPrivateShare_ReturnsErrShareNotPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().GetShareByID(gomock.Any(), int64(1), int64(3)).Return(models.Share{ID: 3, Kind: models.SharePrivate}, nil)

	_, err := svc.UpdatePublicShareSettings(context.Background(), 1, 3, nil, false, nil, false)

	require.ErrorIs(t, err, ErrShareNotPublic)
}

func TestUpdatePublicShareSettings_ClearPasswordAndExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	expiry := time.Now().Add(24 * time.Hour)
	existing := models.Share{ID: 3, Kind: models.SharePublic, PasswordHash: "old-hash", ExpiresAt: &expiry}
	shares.EXPECT().GetShareByID(gomock.Any(), int64(1), int64(3)).Return(existing, nil)
	shares.EXPECT().UpdateSharePublicSettings(gomock.Any(), int64(1), int64(3), "", (*time.Time)(nil)).Return(models.Share{ID: 3, Kind: models.SharePublic}, nil)

	updated, err := svc.UpdatePublicShareSettings(context.Background(), 1, 3, nil, true, nil, true)

	require.NoError(t, err)
	assert.Empty(t, updated.PasswordHash)
}

func TestUpdatePublicShareSettings_SetsNewPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	existing := models.Share{ID: 3, Kind: models.SharePublic}
	shares.EXPECT().GetShareByID(gomock.Any(), int64(1), int64(3)).Return(existing, nil)
	shares.EXPECT().UpdateSharePublicSettings(gomock.Any(), int64(1), int64(3), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, ownerID, shareID int64, passwordHash string, expiresAt *time.Time) (models.Share, error) {
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("newpass")))
			return models.Share{ID: 3, Kind: models.SharePublic, PasswordHash: passwordHash}, nil
		})

	newPassword := "newpass"
	_, err := svc.UpdatePublicShareSettings(context.Background(), 1, 3, &newPassword, false, nil, false)

	require.NoError(t, err)
}

func TestListPublicShares_DelegatesWithPublicKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().ListSharesByOwnerAndKind(gomock.Any(), int64(1), models.SharePublic).Return([]models.Share{{ID: 1}}, nil)

	result, err := svc.ListPublicShares(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestListPrivateShares_DelegatesWithPrivateKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().ListSharesByOwnerAndKind(gomock.Any(), int64(1), models.SharePrivate).Return([]models.Share{{ID: 2}}, nil)

	result, err := svc.ListPrivateShares(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGetPrivateShareFile_NotGrantedToRecipient_ReturnsErrShareNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().GetShareForRecipient(gomock.Any(), int64(9), int64(3)).Return(models.Share{}, store.ErrShareNotFound)

	_, err := svc.GetPrivateShareFile(context.Background(), 9, 3)

	require.ErrorIs(t, err, store.ErrShareNotFound)
}

func TestGetPrivateShareFile_ReturnsFileMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, files, _ := newTestShareService(t, ctrl)

	shares.EXPECT().GetShareForRecipient(gomock.Any(), int64(9), int64(3)).Return(models.Share{ID: 3, OwnerID: 1, FileID: 5}, nil)
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, Name: "shared.pdf"}, nil)

	file, err := svc.GetPrivateShareFile(context.Background(), 9, 3)

	require.NoError(t, err)
	assert.Equal(t, "shared.pdf", file.Name)
}

func TestRevokeShare_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().RevokeShare(gomock.Any(), int64(1), int64(3)).Return(store.ErrShareNotFound)

	err := svc.RevokeShare(context.Background(), 1, 3)

	require.ErrorIs(t, err, store.ErrShareNotFound)
}

func TestRevokeShare_Happy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, shares, _, _ := newTestShareService(t, ctrl)

	shares.EXPECT().RevokeShare(gomock.Any(), int64(1), int64(3)).Return(nil)

	err := svc.RevokeShare(context.Background(), 1, 3)

	require.NoError(t, err)
}
