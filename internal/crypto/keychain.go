// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// chunkSize is the plaintext size sealed under each AES-256-GCM chunk nonce.
// Chunking bounds peak memory usage regardless of file size.
const chunkSize = 64 * 1024

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct{}

// NewKeyChainService constructs a [KeyChainService] backed by AES-256-GCM.
func NewKeyChainService() KeyChainService {
	return &keyChainService{}
}

// GenerateDEK implements [KeyChainService]. It reads 32 random bytes from
// the OS CSPRNG and returns them as the data-encryption key. Returns an
// error if the random read fails.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	dek := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, fmt.Errorf("generate dek: %w", err)
	}
	return dek, nil
}

// GenerateIV implements [KeyChainService]. It reads 8 random bytes from the
// OS CSPRNG and returns them as the base nonce for stream encryption.
func (k *keyChainService) GenerateIV() ([]byte, error) {
	iv := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}
	return iv, nil
}

// WrapDEK implements [KeyChainService]. It encrypts DEK with KEK using
// AES-256-GCM. A random 12-byte nonce is prepended to the ciphertext so the
// unwrap side can locate it: blob = nonce ‖ ciphertext ‖ tag. Returns an
// error if cipher creation or the random nonce read fails.
func (k *keyChainService) WrapDEK(DEK, KEK []byte) ([]byte, error) {
	gcm, err := newGCM(KEK)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	wrapped := gcm.Seal(nonce, nonce, DEK, nil)
	return wrapped, nil
}

// UnwrapDEK implements [KeyChainService]. It reverses [keyChainService.WrapDEK]
// using KEK and AES-256-GCM. Returns an error if the blob is too short, KEK
// is wrong, or the ciphertext has been tampered with.
func (k *keyChainService) UnwrapDEK(wrappedDEK, KEK []byte) ([]byte, error) {
	gcm, err := newGCM(KEK)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(wrappedDEK) < nonceSize {
		return nil, fmt.Errorf("wrapped dek too short")
	}

	nonce, ciphertext := wrappedDEK[:nonceSize], wrappedDEK[nonceSize:]

	dek, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unwrap dek: %w", err)
	}

	return dek, nil
}

// chunkHeaderSize is the per-chunk frame: a 4-byte big-endian sealed-length
// prefix followed by a 1-byte final-chunk flag.
const chunkHeaderSize = 5

// EncryptStream implements [KeyChainService]. It reads src in chunkSize
// plaintext chunks, seals each one under DEK with a nonce derived from IV
// and the chunk's index, and writes a length-prefixed, final-flagged frame
// for each sealed chunk to dst. Framing lets the decrypt side recover exact
// chunk boundaries and know when the final chunk has arrived, without ever
// holding the whole file in memory.
func (k *keyChainService) EncryptStream(dst io.Writer, src io.Reader, DEK, IV []byte) (int64, error) {
	gcm, err := newGCM(DEK)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, chunkSize)
	var total int64
	var index uint32
	wroteAny := false

	for {
		n, readErr := io.ReadFull(src, buf)
		eof := readErr == io.EOF || readErr == io.ErrUnexpectedEOF
		if readErr != nil && !eof {
			return total, fmt.Errorf("read plaintext: %w", readErr)
		}

		if n > 0 || !wroteAny {
			last := eof
			nonce := chunkNonce(IV, index)
			sealed := gcm.Seal(nil, nonce, buf[:n], nil)
			if err := writeChunk(dst, sealed, last); err != nil {
				return total, err
			}
			total += int64(n)
			index++
			wroteAny = true
		}

		if eof {
			return total, nil
		}
	}
}

// DecryptStream implements [KeyChainService]. It reads the framed chunk
// stream produced by [keyChainService.EncryptStream] from src, opens each
// chunk under DEK/IV, and writes the recovered plaintext to dst in order.
// Returns an error if any chunk fails authentication or the stream ends
// before its final-flagged chunk.
func (k *keyChainService) DecryptStream(dst io.Writer, src io.Reader, DEK, IV []byte) error {
	gcm, err := newGCM(DEK)
	if err != nil {
		return err
	}

	var index uint32
	for {
		sealed, last, err := readChunk(src)
		if err != nil {
			return err
		}

		nonce := chunkNonce(IV, index)
		plaintext, err := gcm.Open(nil, nonce, sealed, nil)
		if err != nil {
			return fmt.Errorf("open chunk %d: %w", index, err)
		}

		if len(plaintext) > 0 {
			if _, err := dst.Write(plaintext); err != nil {
				return fmt.Errorf("write plaintext: %w", err)
			}
		}

		if last {
			return nil
		}
		index++
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

// chunkNonce derives a 12-byte per-chunk nonce from the file's 8-byte base
// IV and a 32-bit big-endian chunk index, guaranteeing every chunk of every
// file uses a distinct nonce under the same DEK — which AES-GCM requires
// for its confidentiality guarantee to hold.
func chunkNonce(IV []byte, index uint32) []byte {
	nonce := make([]byte, 12)
	copy(nonce, IV[:8])
	binary.BigEndian.PutUint32(nonce[8:], index)
	return nonce
}

// writeChunk frames a sealed chunk on dst as a 4-byte big-endian length
// prefix, a 1-byte final-chunk flag, then the chunk bytes.
func writeChunk(dst io.Writer, sealed []byte, last bool) error {
	var header [chunkHeaderSize]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(sealed)))
	if last {
		header[4] = 1
	}
	if _, err := dst.Write(header[:]); err != nil {
		return fmt.Errorf("write chunk header: %w", err)
	}
	if _, err := dst.Write(sealed); err != nil {
		return fmt.Errorf("write chunk body: %w", err)
	}
	return nil
}

// readChunk reads one framed chunk from src, returning its sealed bytes and
// whether it is flagged as the stream's final chunk.
func readChunk(src io.Reader) ([]byte, bool, error) {
	var header [chunkHeaderSize]byte
	if _, err := io.ReadFull(src, header[:]); err != nil {
		return nil, false, fmt.Errorf("read chunk header: %w", err)
	}

	n := binary.BigEndian.Uint32(header[:4])
	last := header[4] == 1

	sealed := make([]byte, n)
	if _, err := io.ReadFull(src, sealed); err != nil {
		return nil, false, fmt.Errorf("read chunk body: %w", err)
	}

	return sealed, last, nil
}
