package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/mail"
	"github.com/filevault/filevault/internal/store"
	"github.com/filevault/filevault/models"
)

type settingService struct {
	logger   *logger.Logger
	settings store.SettingRepository
	mailer   mail.EmailTransport
	baseMail config.Mail
}

// NewSettingService constructs a [SettingService] backed by a setting
// repository. mailer is reconfigured live whenever an admin updates the
// SMTP section; baseMail supplies the startup defaults for any field never
// overridden through the settings bag.
func NewSettingService(logger *logger.Logger, settings store.SettingRepository, mailer mail.EmailTransport, baseMail config.Mail) SettingService {
	logger.Debug().Msg("creating setting service")
	return &settingService{logger: logger, settings: settings, mailer: mailer, baseMail: baseMail}
}

func (s *settingService) GetSetting(ctx context.Context, key, defaultValue string) string {
	setting, err := s.settings.GetSetting(ctx, key)
	if err != nil {
		return defaultValue
	}
	return setting.Value
}

func (s *settingService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return s.settings.ListSettings(ctx)
}

func (s *settingService) SetSetting(ctx context.Context, key, value string, updatedBy int64) error {
	return s.settings.UpsertSetting(ctx, models.Setting{Key: key, Value: value, UpdatedBy: updatedBy})
}

// GetSMTPSettings assembles the current SMTP configuration from the
// settings bag, falling back to s.baseMail for any key that has never been
// overridden.
func (s *settingService) GetSMTPSettings(ctx context.Context) config.Mail {
	cfg := s.baseMail

	if v := s.GetSetting(ctx, models.SettingSMTPEnabled, ""); v != "" {
		cfg.Enabled = v == "true"
	}
	if v := s.GetSetting(ctx, models.SettingSMTPHost, ""); v != "" {
		cfg.Host = v
	}
	if v := s.GetSetting(ctx, models.SettingSMTPPort, ""); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := s.GetSetting(ctx, models.SettingSMTPUsername, ""); v != "" {
		cfg.Username = v
	}
	if v := s.GetSetting(ctx, models.SettingSMTPPassword, ""); v != "" {
		cfg.Password = v
	}
	if v := s.GetSetting(ctx, models.SettingSMTPFrom, ""); v != "" {
		cfg.From = v
	}

	return cfg
}

// SetSMTPSettings persists cfg's fields into the settings bag on behalf of
// updatedBy and reconfigures the live mail transport to use them
// immediately.
func (s *settingService) SetSMTPSettings(ctx context.Context, cfg config.Mail, updatedBy int64) error {
	entries := map[string]string{
		models.SettingSMTPEnabled:  strconv.FormatBool(cfg.Enabled),
		models.SettingSMTPHost:     cfg.Host,
		models.SettingSMTPPort:     strconv.Itoa(cfg.Port),
		models.SettingSMTPUsername: cfg.Username,
		models.SettingSMTPPassword: cfg.Password,
		models.SettingSMTPFrom:     cfg.From,
	}

	for key, value := range entries {
		if err := s.SetSetting(ctx, key, value, updatedBy); err != nil {
			return fmt.Errorf("error persisting %s: %w", key, err)
		}
	}

	s.mailer.Reconfigure(cfg)

	return nil
}

// TestSMTPSettings sends a test email to "to" using the currently
// configured SMTP transport.
func (s *settingService) TestSMTPSettings(ctx context.Context, to string) error {
	return s.mailer.Send(ctx, to, "filevault SMTP test", "This is a test email confirming your SMTP settings work.")
}
