package store

import (
	"context"
	"fmt"
	"time"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `
		INSERT INTO users (email, display_name, avatar_url, password_hash, role, quota_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, email, display_name, avatar_url, password_hash, role, quota_bytes, used_bytes, created_at, updated_at;`

	findUserByEmail = `
		SELECT user_id, email, display_name, avatar_url, password_hash, role, quota_bytes, used_bytes, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL;`

	findUserByID = `
		SELECT user_id, email, display_name, avatar_url, password_hash, role, quota_bytes, used_bytes, created_at, updated_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;`

	adjustUsedBytes = `
		UPDATE users
		SET used_bytes = used_bytes + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING used_bytes;`

	updatePassword = `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1;`

	deleteUser = `
		UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"user_id", "email", "display_name", "avatar_url", "password_hash",
	"role", "quota_bytes", "used_bytes", "created_at", "updated_at",
}

var fileColumns = []string{
	"id", "owner_id", "parent_id", "name", "is_folder", "size_bytes",
	"mime_type", "content_hash", "storage_path", "wrapped_dek", "iv",
	"created_at", "updated_at", "deleted_at",
}

var shareColumns = []string{
	"id", "file_id", "owner_id", "kind", "recipient_id", "token",
	"password_hash", "expires_at", "created_at", "updated_at",
}

var invitationColumns = []string{
	"id", "token", "invited_by_id", "email", "role", "expires_at",
	"created_at", "redeemed_at", "redeemed_by_id",
}

var settingColumns = []string{"key", "value", "updated_at", "updated_by"}

func buildListUsersQuery(ctx context.Context) (string, []any, error) {
	qb := psql.Select(userColumns...).From("users").Where(sq.Eq{"deleted_at": nil}).OrderBy("user_id")
	return logBuild(ctx, "list users", qb)
}

func buildCreateFileQuery(ctx context.Context, f models.File) (string, []any, error) {
	qb := psql.Insert("files").
		Columns("owner_id", "parent_id", "name", "is_folder", "size_bytes", "mime_type", "content_hash", "storage_path", "wrapped_dek", "iv").
		Values(f.OwnerID, f.ParentID, f.Name, f.IsFolder, f.SizeBytes, f.MimeType, f.ContentHash, f.StoragePath, f.WrappedDEK, f.IV).
		Suffix("RETURNING " + columnList(fileColumns))
	return logBuild(ctx, "create file", qb)
}

func buildGetFileQuery(ctx context.Context, ownerID, fileID int64) (string, []any, error) {
	qb := psql.Select(fileColumns...).From("files").
		Where(sq.Eq{"id": fileID, "owner_id": ownerID})
	return logBuild(ctx, "get file", qb)
}

func buildListChildrenQuery(ctx context.Context, ownerID int64, parentID *int64) (string, []any, error) {
	qb := psql.Select(fileColumns...).From("files").
		Where(sq.Eq{"owner_id": ownerID, "deleted_at": nil}).
		OrderBy("is_folder DESC", "name")

	if parentID == nil {
		qb = qb.Where("parent_id IS NULL")
	} else {
		qb = qb.Where(sq.Eq{"parent_id": *parentID})
	}
	return logBuild(ctx, "list children", qb)
}

func buildListTrashedQuery(ctx context.Context, ownerID int64) (string, []any, error) {
	qb := psql.Select(fileColumns...).From("files").
		Where(sq.Eq{"owner_id": ownerID}).
		Where("deleted_at IS NOT NULL").
		OrderBy("deleted_at DESC")
	return logBuild(ctx, "list trashed", qb)
}

func buildFindByContentHashQuery(ctx context.Context, ownerID int64, contentHash string) (string, []any, error) {
	qb := psql.Select(fileColumns...).From("files").
		Where(sq.Eq{"owner_id": ownerID, "content_hash": contentHash, "deleted_at": nil}).
		Limit(1)
	return logBuild(ctx, "find by content hash", qb)
}

func buildFindMatchesByContentHashQuery(ctx context.Context, ownerID int64, contentHash string, limit uint64) (string, []any, error) {
	qb := psql.Select(fileColumns...).From("files").
		Where(sq.Eq{"owner_id": ownerID, "content_hash": contentHash, "deleted_at": nil}).
		OrderBy("created_at DESC").
		Limit(limit)
	return logBuild(ctx, "find matches by content hash", qb)
}

func buildCompleteUploadQuery(ctx context.Context, ownerID, fileID, sizeBytes int64, contentHash, storagePath string, wrappedDEK, iv []byte) (string, []any, error) {
	qb := psql.Update("files").
		Set("size_bytes", sizeBytes).
		Set("content_hash", contentHash).
		Set("storage_path", storagePath).
		Set("wrapped_dek", wrappedDEK).
		Set("iv", iv).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": fileID, "owner_id": ownerID, "storage_path": "", "deleted_at": nil}).
		Suffix("RETURNING " + columnList(fileColumns))
	return logBuild(ctx, "complete upload", qb)
}

func buildCountStoragePathRefsQuery(ctx context.Context, storagePath string) (string, []any, error) {
	qb := psql.Select("COUNT(*)").From("files").
		Where(sq.Eq{"storage_path": storagePath, "deleted_at": nil})
	return logBuild(ctx, "count storage path refs", qb)
}

func buildCreateShareQuery(ctx context.Context, s models.Share) (string, []any, error) {
	qb := psql.Insert("shares").
		Columns("file_id", "owner_id", "kind", "recipient_id", "token", "password_hash", "expires_at").
		Values(s.FileID, s.OwnerID, s.Kind, s.RecipientID, s.Token, s.PasswordHash, s.ExpiresAt).
		Suffix("RETURNING " + columnList(shareColumns))
	return logBuild(ctx, "create share", qb)
}

func buildGetShareByIDQuery(ctx context.Context, ownerID, shareID int64) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").Where(sq.Eq{"id": shareID, "owner_id": ownerID})
	return logBuild(ctx, "get share by id", qb)
}

func buildGetShareByTokenQuery(ctx context.Context, token string) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").Where(sq.Eq{"token": token})
	return logBuild(ctx, "get share by token", qb)
}

func buildListSharesForFileQuery(ctx context.Context, ownerID, fileID int64) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").
		Where(sq.Eq{"owner_id": ownerID, "file_id": fileID}).
		OrderBy("created_at DESC")
	return logBuild(ctx, "list shares for file", qb)
}

func buildListSharesReceivedByQuery(ctx context.Context, recipientID int64) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC")
	return logBuild(ctx, "list shares received by", qb)
}

func buildGetShareForRecipientQuery(ctx context.Context, recipientID, shareID int64) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").
		Where(sq.Eq{"id": shareID, "recipient_id": recipientID, "kind": models.SharePrivate})
	return logBuild(ctx, "get share for recipient", qb)
}

func buildListSharesByOwnerAndKindQuery(ctx context.Context, ownerID int64, kind models.ShareKind) (string, []any, error) {
	qb := psql.Select(shareColumns...).From("shares").
		Where(sq.Eq{"owner_id": ownerID, "kind": kind}).
		OrderBy("created_at DESC")
	return logBuild(ctx, "list shares by owner and kind", qb)
}

func buildUpdateSharePublicSettingsQuery(ctx context.Context, ownerID, shareID int64, passwordHash string, expiresAt *time.Time) (string, []any, error) {
	qb := psql.Update("shares").
		Set("password_hash", passwordHash).
		Set("expires_at", expiresAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": shareID, "owner_id": ownerID, "kind": models.SharePublic}).
		Suffix("RETURNING " + columnList(shareColumns))
	return logBuild(ctx, "update share public settings", qb)
}

func buildCreateInvitationQuery(ctx context.Context, inv models.Invitation) (string, []any, error) {
	qb := psql.Insert("invitations").
		Columns("token", "invited_by_id", "email", "role", "expires_at").
		Values(inv.Token, inv.InvitedByID, inv.Email, inv.Role, inv.ExpiresAt).
		Suffix("RETURNING " + columnList(invitationColumns))
	return logBuild(ctx, "create invitation", qb)
}

func buildGetInvitationByTokenQuery(ctx context.Context, token string) (string, []any, error) {
	qb := psql.Select(invitationColumns...).From("invitations").Where(sq.Eq{"token": token})
	return logBuild(ctx, "get invitation by token", qb)
}

func buildListInvitationsQuery(ctx context.Context) (string, []any, error) {
	qb := psql.Select(invitationColumns...).From("invitations").OrderBy("created_at DESC")
	return logBuild(ctx, "list invitations", qb)
}

func buildRevokeInvitationQuery(ctx context.Context, id int64) (string, []any, error) {
	qb := psql.Delete("invitations").Where(sq.Eq{"id": id, "redeemed_at": nil})
	return logBuild(ctx, "revoke invitation", qb)
}

func buildUpsertSettingQuery(ctx context.Context, s models.Setting) (string, []any, error) {
	qb := psql.Insert("settings").
		Columns("key", "value", "updated_by").
		Values(s.Key, s.Value, s.UpdatedBy).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), updated_by = EXCLUDED.updated_by")
	return logBuild(ctx, "upsert setting", qb)
}

func buildGetSettingQuery(ctx context.Context, key string) (string, []any, error) {
	qb := psql.Select(settingColumns...).From("settings").Where(sq.Eq{"key": key})
	return logBuild(ctx, "get setting", qb)
}

func buildListSettingsQuery(ctx context.Context) (string, []any, error) {
	qb := psql.Select(settingColumns...).From("settings").OrderBy("key")
	return logBuild(ctx, "list settings", qb)
}

// columnList joins column names with ", " for use in a RETURNING clause.
func columnList(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}

func logBuild(ctx context.Context, label string, qb interface{ ToSql() (string, []any, error) }) (string, []any, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("error building %s query: %w", label, err)
	}
	logger.FromContext(ctx).Debug().Str("query", query).Any("args", args).Msg("built " + label + " query")
	return query, args, nil
}
