// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service defines the core business logic interfaces and service
// implementations for the filevault application.
package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/filevault/filevault/internal/blobstore"
	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/crypto"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mail"
	"github.com/filevault/filevault/internal/quota"
	"github.com/filevault/filevault/internal/store"
)

// Services is the top-level container that groups all application service
// implementations. It is constructed once at startup and injected into the
// HTTP handler layer.
type Services struct {
	// AppInfoService exposes application metadata such as the current version.
	AppInfoService AppInfoService

	// AuthService handles user registration, login, and JWT token lifecycle.
	AuthService AuthService

	// FileService manages encrypted files and folders: upload, download,
	// rename, move, trash/restore, and permanent delete.
	FileService FileService

	// ShareService manages private and public shares of files.
	ShareService ShareService

	// InvitationService mints and lists registration invitations.
	InvitationService InvitationService

	// SettingService reads and writes the admin-configurable settings bag.
	SettingService SettingService

	// Blobs is the filesystem-backed encrypted blob store, exposed for
	// health checks and the admin storage-usage surface.
	Blobs *blobstore.Store
}

// userUsageAdapter bridges store.UserRepository to quota.UsageLookup.
type userUsageAdapter struct {
	users store.UserRepository
}

func (a *userUsageAdapter) QuotaAndUsage(ctx context.Context, userID int64) (int64, int64, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return user.QuotaBytes, user.UsedBytes, nil
}

// NewServices constructs and wires all application services from the
// provided storage layer, full structured configuration, and logger.
//
// Initialization order:
//  1. AppInfoService — validated first; returns an error immediately if
//     cfg.App.Version is empty (fail-fast at startup).
//  2. The KEK is decoded from cfg.App.FileEncryptionMasterKey and the
//     filesystem blob store is opened at cfg.Storage.Files.BinaryDataDir.
//  3. The remaining domain services are constructed on top of those.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	appService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	kek, err := base64.StdEncoding.DecodeString(cfg.App.FileEncryptionMasterKey)
	if err != nil || len(kek) != 32 {
		return nil, fmt.Errorf("APP_FILE_ENCRYPTION_MASTER_KEY must be a base64-encoded 32-byte key: %w", err)
	}

	blobs, err := blobstore.New(cfg.Storage.Files.BinaryDataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating blob store: %w", err)
	}

	keys := crypto.NewKeyChainService()

	quotaChecker := quota.New(logger, blobs, &userUsageAdapter{users: storages.UserRepository}, 0)

	mailer := mail.NewTransport(cfg.Mail, logger)

	fileService := NewFileService(logger, storages.FileRepository, storages.UserRepository, blobs, keys, quotaChecker, kek)

	return &Services{
		AppInfoService:    appService,
		AuthService:       NewAuthService(logger, storages.UserRepository, storages.InvitationRepository, storages.SettingRepository, cfg.App, mailer, blobs),
		FileService:       fileService,
		ShareService:      NewShareService(logger, storages.ShareRepository, storages.FileRepository, storages.UserRepository, fileService),
		InvitationService: NewInvitationService(logger, storages.InvitationRepository, storages.UserRepository, cfg.Invite, mailer),
		SettingService:    NewSettingService(logger, storages.SettingRepository, mailer, cfg.Mail),
		Blobs:             blobs,
	}, nil
}
