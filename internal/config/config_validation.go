// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "encoding/base64"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the rest of the application relies on at startup: a signing
// secret of adequate length and a well-formed 32-byte master key.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.JWTSecret) < 32 {
		return ErrMissingJWTSecret
	}

	key, err := base64.StdEncoding.DecodeString(cfg.App.FileEncryptionMasterKey)
	if err != nil || len(key) != 32 {
		return ErrMissingFileEncryptionMasterKey
	}

	return nil
}
