// Package quota enforces per-user storage ceilings and global free-disk-space
// guarantees ahead of an upload being admitted.
package quota

import (
	"context"
	"fmt"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/models"
)

// FreeSpaceReporter reports bytes currently free on the blob store's
// backing filesystem.
type FreeSpaceReporter interface {
	FreeBytes() (uint64, error)
}

// UsageLookup resolves a user's current quota ceiling and usage.
type UsageLookup interface {
	QuotaAndUsage(ctx context.Context, userID int64) (quotaBytes, usedBytes int64, err error)
}

// Checker admits or rejects uploads based on per-user quota and disk free
// space.
type Checker struct {
	logger        *logger.Logger
	disk          FreeSpaceReporter
	usage         UsageLookup
	minFreeOnDisk int64
}

// New constructs a Checker. minFreeOnDisk is the floor of free bytes the
// backing volume must retain after admitting an upload of the requested
// size.
func New(logger *logger.Logger, disk FreeSpaceReporter, usage UsageLookup, minFreeOnDisk int64) *Checker {
	return &Checker{logger: logger, disk: disk, usage: usage, minFreeOnDisk: minFreeOnDisk}
}

// ErrQuotaExceeded is returned when admitting size would push the user past
// their quota.
var ErrQuotaExceeded = fmt.Errorf("storage quota exceeded")

// ErrInsufficientStorage is returned when the backing volume lacks enough
// free space to safely accept the upload.
var ErrInsufficientStorage = fmt.Errorf("insufficient free storage space")

// Admit checks whether an upload of size bytes by a user holding role may
// proceed. QuotaBytes of 0 means unlimited for that user. An owner bypasses
// the per-user quota check entirely (but is still subject to the disk
// free-space floor).
func (c *Checker) Admit(ctx context.Context, userID int64, role models.Role, size int64) error {
	if role != models.RoleOwner {
		quotaBytes, usedBytes, err := c.usage.QuotaAndUsage(ctx, userID)
		if err != nil {
			return fmt.Errorf("error reading user usage: %w", err)
		}

		if quotaBytes > 0 && usedBytes+size > quotaBytes {
			return ErrQuotaExceeded
		}
	}

	free, err := c.disk.FreeBytes()
	if err != nil {
		c.logger.Error().Err(err).Msg("error reading free disk space, admitting upload without a disk check")
		return nil
	}

	if int64(free)-size < c.minFreeOnDisk {
		return ErrInsufficientStorage
	}

	return nil
}
