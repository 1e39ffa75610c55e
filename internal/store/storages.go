package store

import (
	"context"
	"fmt"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
)

// Storages is the top-level container that groups all repository
// implementations. It is constructed once at startup and injected into the
// service layer.
type Storages struct {
	UserRepository       UserRepository
	FileRepository       FileRepository
	ShareRepository      ShareRepository
	InvitationRepository InvitationRepository
	SettingRepository    SettingRepository
	DB                   *DB
}

// NewStorages opens the PostgreSQL connection described by cfg, runs
// pending migrations, and wires every repository on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		FileRepository:       NewFileRepository(db, log),
		ShareRepository:      NewShareRepository(db, log),
		InvitationRepository: NewInvitationRepository(db, log),
		SettingRepository:    NewSettingRepository(db, log),
		DB:                   db,
	}, nil
}
