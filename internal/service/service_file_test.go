package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/filevault/filevault/internal/blobstore"
	"github.com/filevault/filevault/internal/crypto"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mock"
	"github.com/filevault/filevault/internal/quota"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
)

// fakeDisk is a stub [quota.FreeSpaceReporter] that reports a fixed amount
// of free space, used so tests don't depend on the host's actual volume.
type fakeDisk struct{ free uint64 }

func (d fakeDisk) FreeBytes() (uint64, error) { return d.free, nil }

// fakeUsage is a stub [quota.UsageLookup] backed by a single in-memory user.
type fakeUsage struct {
	quotaBytes int64
	usedBytes  int64
}

func (u fakeUsage) QuotaAndUsage(ctx context.Context, userID int64) (int64, int64, error) {
	return u.quotaBytes, u.usedBytes, nil
}

// newTestFileService builds a fileService backed by a gomock file repository,
// a gomock user repository, a real key chain, and a real blob store rooted
// at a temp directory.
func newTestFileService(t *testing.T, ctrl *gomock.Controller) (FileService, *mock.MockFileRepository, *mock.MockUserRepository, *blobstore.Store) {
	t.Helper()

	files := mock.NewMockFileRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	blobs, err := blobstore.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	keys := crypto.NewKeyChainService()
	checker := quota.New(logger.Nop(), fakeDisk{free: 1 << 30}, fakeUsage{}, 0)
	kek := bytes.Repeat([]byte{0x42}, 32)

	svc := NewFileService(logger.Nop(), files, users, blobs, keys, checker, kek)
	return svc, files, users, blobs
}

// ─────────────────────────────────────────────
// CreateFile
// ─────────────────────────────────────────────

func TestCreateFile_Folder_DelegatesToCreateFolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, f models.File) (models.File, error) {
			assert.True(t, f.IsFolder)
			f.ID = 1
			return f, nil
		})

	created, err := svc.CreateFile(context.Background(), 1, nil, "Documents", "", true, "", false)

	require.NoError(t, err)
	assert.True(t, created.IsFolder)
}

func TestCreateFile_EmptyName_ReturnsErrInvalidDataProvided(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestFileService(t, ctrl)

	_, err := svc.CreateFile(context.Background(), 1, nil, "", "", false, "", false)

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCreateFile_RegularFile_CreatesPendingRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, f models.File) (models.File, error) {
			assert.False(t, f.IsFolder)
			assert.Empty(t, f.StoragePath)
			assert.Nil(t, f.WrappedDEK)
			f.ID = 2
			return f, nil
		})

	created, err := svc.CreateFile(context.Background(), 1, nil, "report.pdf", "application/pdf", false, "", false)

	require.NoError(t, err)
	assert.Empty(t, created.StoragePath)
}

func TestCreateFile_NonDedupExtension_IgnoresContentHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	// FindMatchesByContentHash must never be called for an extension
	// outside the dedup set.
	files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).Return(models.File{ID: 3}, nil)

	hash := "abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234"
	_, err := svc.CreateFile(context.Background(), 1, nil, "binary.dat", "", false, hash, false)

	require.NoError(t, err)
}

func TestCreateFile_MalformedHash_SkipsDuplicateLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).Return(models.File{ID: 4}, nil)

	_, err := svc.CreateFile(context.Background(), 1, nil, "photo.png", "image/png", false, "not-a-valid-hash", false)

	require.NoError(t, err)
}

func TestCreateFile_DuplicateFound_SkipDuplicateCheckFalse_ReturnsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	hash := "abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234"
	existing := []models.File{{ID: 10, Name: "other.pdf", ContentHash: hash, StoragePath: "blob-1"}}

	files.EXPECT().FindMatchesByContentHash(gomock.Any(), int64(1), hash, uint64(maxDuplicateMatches)).Return(existing, nil)

	_, err := svc.CreateFile(context.Background(), 1, nil, "report.pdf", "application/pdf", false, hash, false)

	var dup *DuplicateContentError
	require.True(t, errors.As(err, &dup))
	assert.Len(t, dup.Matches, 1)
}

func TestCreateFile_DuplicateFound_SkipDuplicateCheckTrue_LinksExistingBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	hash := "abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234abcd1234"
	existing := []models.File{{ID: 10, Name: "other.pdf", ContentHash: hash, StoragePath: "blob-1", SizeBytes: 512, WrappedDEK: []byte("wrapped"), IV: []byte("iv")}}

	files.EXPECT().FindMatchesByContentHash(gomock.Any(), int64(1), hash, uint64(maxDuplicateMatches)).Return(existing, nil)
	files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, f models.File) (models.File, error) {
			assert.Equal(t, "blob-1", f.StoragePath)
			assert.Equal(t, int64(512), f.SizeBytes)
			f.ID = 11
			return f, nil
		})

	created, err := svc.CreateFile(context.Background(), 1, nil, "report-copy.pdf", "application/pdf", false, hash, true)

	require.NoError(t, err)
	assert.Equal(t, "blob-1", created.StoragePath)
}

// ─────────────────────────────────────────────
// FindDuplicate
// ─────────────────────────────────────────────

func TestFindDuplicate_NoMatch_ReturnsFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().FindByContentHash(gomock.Any(), int64(1), "deadbeef").Return(models.File{}, store.ErrFileNotFound)

	_, found, err := svc.FindDuplicate(context.Background(), 1, "deadbeef")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindDuplicate_Match_ReturnsFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().FindByContentHash(gomock.Any(), int64(1), "deadbeef").Return(models.File{ID: 7}, nil)

	existing, found, err := svc.FindDuplicate(context.Background(), 1, "deadbeef")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(7), existing.ID)
}

// ─────────────────────────────────────────────
// UploadContent
// ─────────────────────────────────────────────

func TestUploadContent_PendingRow_WritesBlobAndCompletesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, users, blobs := newTestFileService(t, ctrl)

	pending := models.File{ID: 5, OwnerID: 1, Name: "report.pdf"}
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(pending, nil)
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{UserID: 1, Role: models.RoleUser}, nil)

	var capturedPath string
	files.EXPECT().CompleteUpload(gomock.Any(), int64(1), int64(5), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, ownerID, fileID int64, size int64, contentHash, storagePath string, wrappedDEK, iv []byte) (models.File, error) {
			capturedPath = storagePath
			pending.SizeBytes = size
			pending.ContentHash = contentHash
			pending.StoragePath = storagePath
			pending.WrappedDEK = wrappedDEK
			pending.IV = iv
			return pending, nil
		})
	users.EXPECT().AdjustUsedBytes(gomock.Any(), int64(1), int64(11)).Return(int64(11), nil)

	updated, err := svc.UploadContent(context.Background(), 1, 5, bytes.NewBufferString("hello world"))

	require.NoError(t, err)
	assert.Equal(t, capturedPath, updated.StoragePath)
	assert.NotEmpty(t, updated.WrappedDEK)

	_, err = blobs.Get(context.Background(), 1, capturedPath)
	require.NoError(t, err)
}

func TestUploadContent_AlreadyUploaded_ReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1, StoragePath: "already-there"}, nil)

	_, err := svc.UploadContent(context.Background(), 1, 5, bytes.NewBufferString("hello"))

	require.ErrorIs(t, err, ErrAlreadyUploaded)
}

func TestUploadContent_Folder_ReturnsErrNotAFolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1, IsFolder: true}, nil)

	_, err := svc.UploadContent(context.Background(), 1, 5, bytes.NewBufferString("hello"))

	require.ErrorIs(t, err, ErrNotAFolder)
}

func TestUploadContent_QuotaExceeded_ReturnsErrQuotaExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := mock.NewMockFileRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	blobs, err := blobstore.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	keys := crypto.NewKeyChainService()
	checker := quota.New(logger.Nop(), fakeDisk{free: 1 << 30}, fakeUsage{quotaBytes: 10, usedBytes: 5}, 0)
	kek := bytes.Repeat([]byte{0x42}, 32)
	svc := NewFileService(logger.Nop(), files, users, blobs, keys, checker, kek)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1}, nil)
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{UserID: 1, Role: models.RoleUser}, nil)

	_, err = svc.UploadContent(context.Background(), 1, 5, bytes.NewBufferString("this content is too big for the quota"))

	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestUploadContent_OwnerBypassesQuota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := mock.NewMockFileRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	blobs, err := blobstore.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	keys := crypto.NewKeyChainService()
	checker := quota.New(logger.Nop(), fakeDisk{free: 1 << 30}, fakeUsage{quotaBytes: 1, usedBytes: 1}, 0)
	kek := bytes.Repeat([]byte{0x42}, 32)
	svc := NewFileService(logger.Nop(), files, users, blobs, keys, checker, kek)

	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(5)).Return(models.File{ID: 5, OwnerID: 1}, nil)
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{UserID: 1, Role: models.RoleOwner}, nil)
	files.EXPECT().CompleteUpload(gomock.Any(), int64(1), int64(5), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.File{ID: 5}, nil)
	users.EXPECT().AdjustUsedBytes(gomock.Any(), int64(1), gomock.Any()).Return(int64(0), nil)

	_, err = svc.UploadContent(context.Background(), 1, 5, bytes.NewBufferString("well over the tiny per-user quota"))

	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// DeleteFilePermanently (trash → permanent-delete round trip)
// ─────────────────────────────────────────────

func TestDeleteFilePermanently_TrashedFile_DeletesBlobFromTrash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, users, blobs := newTestFileService(t, ctrl)
	ctx := context.Background()

	_, err := blobs.Put(ctx, 1, "storage-path-1", func(dst io.Writer) (int64, error) {
		n, err := dst.Write([]byte("encrypted bytes"))
		return int64(n), err
	})
	require.NoError(t, err)

	require.NoError(t, blobs.MoveToTrash(ctx, 1, "storage-path-1"))

	file := models.File{ID: 9, OwnerID: 1, StoragePath: "storage-path-1", SizeBytes: 15}
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(9)).Return(file, nil)
	files.EXPECT().DeleteFilePermanently(gomock.Any(), int64(1), int64(9)).Return(nil)
	files.EXPECT().CountReferencesToStoragePath(gomock.Any(), "storage-path-1").Return(int64(0), nil)
	users.EXPECT().AdjustUsedBytes(gomock.Any(), int64(1), int64(-15)).Return(int64(0), nil)

	err = svc.DeleteFilePermanently(ctx, 1, 9)
	require.NoError(t, err)

	_, err = blobs.Get(ctx, 1, "storage-path-1")
	require.Error(t, err, "blob must no longer be reachable from either the active or trash path")
}

func TestDeleteFilePermanently_StillReferenced_KeepsBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, users, blobs := newTestFileService(t, ctrl)
	ctx := context.Background()

	_, err := blobs.Put(ctx, 1, "storage-path-2", func(dst io.Writer) (int64, error) {
		n, err := dst.Write([]byte("shared bytes"))
		return int64(n), err
	})
	require.NoError(t, err)
	require.NoError(t, blobs.MoveToTrash(ctx, 1, "storage-path-2"))

	file := models.File{ID: 12, OwnerID: 1, StoragePath: "storage-path-2", SizeBytes: 12}
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(12)).Return(file, nil)
	files.EXPECT().DeleteFilePermanently(gomock.Any(), int64(1), int64(12)).Return(nil)
	files.EXPECT().CountReferencesToStoragePath(gomock.Any(), "storage-path-2").Return(int64(1), nil)
	users.EXPECT().AdjustUsedBytes(gomock.Any(), int64(1), int64(-12)).Return(int64(0), nil)

	err = svc.DeleteFilePermanently(ctx, 1, 12)
	require.NoError(t, err)

	_, err = blobs.Get(ctx, 1, "storage-path-2")
	require.NoError(t, err, "blob must stay on disk while another live row still references it")
}

func TestDeleteFilePermanently_PendingUploadRow_SkipsBlobDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	file := models.File{ID: 20, OwnerID: 1, StoragePath: ""}
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(20)).Return(file, nil)
	files.EXPECT().DeleteFilePermanently(gomock.Any(), int64(1), int64(20)).Return(nil)
	// CountReferencesToStoragePath and AdjustUsedBytes must never be called
	// for a pending row with no storage path: there is no blob to refcount
	// and no used-byte accounting was ever made for it.

	err := svc.DeleteFilePermanently(context.Background(), 1, 20)
	require.NoError(t, err)
}

func TestDeleteFilePermanently_Folder_SkipsBlobCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	folder := models.File{ID: 30, OwnerID: 1, IsFolder: true}
	files.EXPECT().GetFile(gomock.Any(), int64(1), int64(30)).Return(folder, nil)
	files.EXPECT().DeleteFilePermanently(gomock.Any(), int64(1), int64(30)).Return(nil)

	err := svc.DeleteFilePermanently(context.Background(), 1, 30)
	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// MoveFile cycle protection
// ─────────────────────────────────────────────

func TestMoveFile_IntoOwnDescendant_ReturnsErrCannotMoveIntoSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, files, _, _ := newTestFileService(t, ctrl)

	childID := int64(2)
	parentID := int64(1)
	files.EXPECT().GetFile(gomock.Any(), int64(1), childID).Return(models.File{ID: childID, OwnerID: 1, ParentID: &parentID}, nil)

	_, err := svc.MoveFile(context.Background(), 1, parentID, &childID)

	require.ErrorIs(t, err, ErrCannotMoveIntoSelf)
}
