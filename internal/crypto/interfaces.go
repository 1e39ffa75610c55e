// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the server-side envelope encryption used to
// protect every stored file.
//
// # Key hierarchy
//
// The package follows a two-level key hierarchy:
//
//  1. KEK (key-encryption key) — a 256-bit secret supplied at process boot
//     from APP_FILE_ENCRYPTION_MASTER_KEY. It never changes per request and
//     is held only in memory.
//
//  2. DEK (data-encryption key) — a fresh random 256-bit key generated for
//     every file. It encrypts that file's content with AES-256-GCM and is
//     itself wrapped under the KEK before being persisted alongside the
//     file's metadata row.
//
// # Upload flow
//
//  1. [KeyChainService.GenerateDEK] and [KeyChainService.GenerateIV]
//  2. [KeyChainService.WrapDEK](DEK, KEK) → stored in the files table
//  3. [KeyChainService.EncryptStream](dst, src, DEK, IV) → written to the blob store
//
// # Download flow
//
//  1. [KeyChainService.UnwrapDEK](wrappedDEK, KEK) → recovers the DEK
//  2. [KeyChainService.DecryptStream](dst, src, DEK, IV) → streamed to the caller
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

import "io"

// KeyChainService is responsible for all server-side envelope-encryption
// cryptography: generating and wrapping per-file keys, and streaming
// encrypted content without buffering whole files in memory.
type KeyChainService interface {
	// GenerateDEK generates a cryptographically random 32-byte (256-bit)
	// data-encryption key for a new file.
	GenerateDEK() ([]byte, error)

	// GenerateIV generates a cryptographically random 8-byte base IV for use
	// with AES-256-GCM streaming; each chunk's 12-byte nonce is derived from
	// it and the chunk index.
	GenerateIV() ([]byte, error)

	// WrapDEK wraps DEK with KEK using AES-256-GCM. The returned blob has
	// the format: nonce (12 bytes) ‖ ciphertext ‖ tag. It is safe to
	// persist in the metadata store — without the KEK it is
	// indistinguishable from random bytes.
	WrapDEK(DEK, KEK []byte) ([]byte, error)

	// UnwrapDEK reverses [KeyChainService.WrapDEK]. Returns an error if KEK
	// is wrong or the blob has been tampered with (authentication tag
	// mismatch).
	UnwrapDEK(wrappedDEK, KEK []byte) ([]byte, error)

	// EncryptStream reads plaintext from src in fixed-size chunks, seals
	// each chunk independently with AES-256-GCM under DEK (deriving a
	// per-chunk nonce from IV and the chunk index), and writes the sealed
	// chunks to dst. Returns the number of plaintext bytes consumed.
	//
	// Chunking lets large files be encrypted and written without ever
	// holding the full plaintext or ciphertext in memory.
	EncryptStream(dst io.Writer, src io.Reader, DEK, IV []byte) (int64, error)

	// DecryptStream reverses [KeyChainService.EncryptStream]: it reads
	// sealed chunks from src, opens each one under DEK/IV, and writes the
	// recovered plaintext to dst. Returns an error if any chunk fails
	// authentication (wrong key or corrupted blob).
	DecryptStream(dst io.Writer, src io.Reader, DEK, IV []byte) error
}
