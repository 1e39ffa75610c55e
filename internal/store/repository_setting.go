package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/models"
)

// settingRepository is the PostgreSQL-backed implementation of
// [SettingRepository]. It executes all operations against the flat
// "settings" key/value table.
type settingRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSettingRepository constructs a [SettingRepository] backed by the
// provided database connection and logger.
func NewSettingRepository(db *DB, logger *logger.Logger) SettingRepository {
	logger.Debug().Msg("creating setting repository")
	return &settingRepository{db: db, logger: logger}
}

// GetSetting retrieves a single setting by key.
func (r *settingRepository) GetSetting(ctx context.Context, key string) (models.Setting, error) {
	query, args, err := buildGetSettingQuery(ctx, key)
	if err != nil {
		return models.Setting{}, err
	}

	var s models.Setting
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Setting{}, ErrSettingNotFound
		}
		return models.Setting{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return s, nil
}

// ListSettings returns every stored setting.
func (r *settingRepository) ListSettings(ctx context.Context) ([]models.Setting, error) {
	query, args, err := buildListSettingsQuery(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return settings, nil
}

// UpsertSetting creates or overwrites the value of setting.Key.
func (r *settingRepository) UpsertSetting(ctx context.Context, setting models.Setting) error {
	query, args, err := buildUpsertSettingQuery(ctx, setting)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
