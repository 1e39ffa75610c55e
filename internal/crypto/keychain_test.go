package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"testing"
)

func TestGenerateDEK_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	d1, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}
	d2, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}

	if len(d1) != 32 {
		t.Fatalf("DEK length = %d, want 32", len(d1))
	}
	if len(d2) != 32 {
		t.Fatalf("DEK length = %d, want 32", len(d2))
	}
	if bytes.Equal(d1, d2) {
		t.Fatalf("expected DEKs to differ, but they are equal")
	}
}

func TestGenerateIV_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	iv1, err := svc.GenerateIV()
	if err != nil {
		t.Fatalf("GenerateIV error: %v", err)
	}
	iv2, err := svc.GenerateIV()
	if err != nil {
		t.Fatalf("GenerateIV error: %v", err)
	}

	if len(iv1) != 8 {
		t.Fatalf("IV length = %d, want 8", len(iv1))
	}
	if bytes.Equal(iv1, iv2) {
		t.Fatalf("expected IVs to differ, but they are equal")
	}
}

func TestWrapDEK_UnwrapRoundTrip(t *testing.T) {
	svc := NewKeyChainService()

	dek := bytes.Repeat([]byte{0xDD}, 32)
	kek := bytes.Repeat([]byte{0x2A}, 32) // valid AES-256 key length

	blob, err := svc.WrapDEK(dek, kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	// Reconstruct AES-GCM and decrypt to verify the blob layout independently.
	block, err := aes.NewCipher(kek)
	if err != nil {
		t.Fatalf("aes.NewCipher error: %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("cipher.NewGCM error: %v", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) <= nonceSize {
		t.Fatalf("blob too short: got %d, want > %d", len(blob), nonceSize)
	}

	nonce, ct := blob[:nonceSize], blob[nonceSize:]
	plain, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		t.Fatalf("gcm.Open error: %v", err)
	}
	if !bytes.Equal(plain, dek) {
		t.Fatalf("decrypted DEK mismatch")
	}

	unwrapped, err := svc.UnwrapDEK(blob, kek)
	if err != nil {
		t.Fatalf("UnwrapDEK error: %v", err)
	}
	if !bytes.Equal(unwrapped, dek) {
		t.Fatalf("UnwrapDEK mismatch")
	}
}

func TestWrapDEK_NonceRandomness(t *testing.T) {
	svc := NewKeyChainService()

	dek := bytes.Repeat([]byte{0xDD}, 32)
	kek := bytes.Repeat([]byte{0x2A}, 32)

	blob1, err := svc.WrapDEK(dek, kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}
	blob2, err := svc.WrapDEK(dek, kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	if bytes.Equal(blob1, blob2) {
		t.Fatalf("expected different ciphertext blobs for two encryptions")
	}
}

func TestUnwrapDEK_WrongKEKFails(t *testing.T) {
	svc := NewKeyChainService()

	dek := bytes.Repeat([]byte{0xDD}, 32)
	kek := bytes.Repeat([]byte{0x2A}, 32)
	otherKEK := bytes.Repeat([]byte{0x2B}, 32)

	blob, err := svc.WrapDEK(dek, kek)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	if _, err := svc.UnwrapDEK(blob, otherKEK); err == nil {
		t.Fatalf("expected UnwrapDEK to fail with wrong KEK")
	}
}

func TestEncryptStream_DecryptRoundTrip_SmallPlaintext(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	iv, _ := svc.GenerateIV()
	plaintext := []byte("hello, filevault")

	var ciphertext bytes.Buffer
	n, err := svc.EncryptStream(&ciphertext, bytes.NewReader(plaintext), dek, iv)
	if err != nil {
		t.Fatalf("EncryptStream error: %v", err)
	}
	if n != int64(len(plaintext)) {
		t.Fatalf("EncryptStream n = %d, want %d", n, len(plaintext))
	}

	var recovered bytes.Buffer
	if err := svc.DecryptStream(&recovered, &ciphertext, dek, iv); err != nil {
		t.Fatalf("DecryptStream error: %v", err)
	}

	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", recovered.Bytes(), plaintext)
	}
}

func TestEncryptStream_DecryptRoundTrip_MultiChunk(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	iv, _ := svc.GenerateIV()

	plaintext := make([]byte, chunkSize*3+517)
	if _, err := io.ReadFull(rand.Reader, plaintext); err != nil {
		t.Fatalf("generate plaintext: %v", err)
	}

	var ciphertext bytes.Buffer
	n, err := svc.EncryptStream(&ciphertext, bytes.NewReader(plaintext), dek, iv)
	if err != nil {
		t.Fatalf("EncryptStream error: %v", err)
	}
	if n != int64(len(plaintext)) {
		t.Fatalf("EncryptStream n = %d, want %d", n, len(plaintext))
	}

	var recovered bytes.Buffer
	if err := svc.DecryptStream(&recovered, &ciphertext, dek, iv); err != nil {
		t.Fatalf("DecryptStream error: %v", err)
	}

	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch for multi-chunk plaintext")
	}
}

func TestEncryptStream_DecryptRoundTrip_EmptyPlaintext(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	iv, _ := svc.GenerateIV()

	var ciphertext bytes.Buffer
	n, err := svc.EncryptStream(&ciphertext, bytes.NewReader(nil), dek, iv)
	if err != nil {
		t.Fatalf("EncryptStream error: %v", err)
	}
	if n != 0 {
		t.Fatalf("EncryptStream n = %d, want 0", n)
	}

	var recovered bytes.Buffer
	if err := svc.DecryptStream(&recovered, &ciphertext, dek, iv); err != nil {
		t.Fatalf("DecryptStream error: %v", err)
	}
	if recovered.Len() != 0 {
		t.Fatalf("expected empty recovered plaintext, got %d bytes", recovered.Len())
	}
}

func TestDecryptStream_WrongDEKFails(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	otherDEK, _ := svc.GenerateDEK()
	iv, _ := svc.GenerateIV()

	var ciphertext bytes.Buffer
	if _, err := svc.EncryptStream(&ciphertext, bytes.NewReader([]byte("secret bytes")), dek, iv); err != nil {
		t.Fatalf("EncryptStream error: %v", err)
	}

	var recovered bytes.Buffer
	if err := svc.DecryptStream(&recovered, &ciphertext, otherDEK, iv); err == nil {
		t.Fatalf("expected DecryptStream to fail with wrong DEK")
	}
}

func TestDecryptStream_TamperedChunkFails(t *testing.T) {
	svc := NewKeyChainService()

	dek, _ := svc.GenerateDEK()
	iv, _ := svc.GenerateIV()

	var ciphertext bytes.Buffer
	if _, err := svc.EncryptStream(&ciphertext, bytes.NewReader([]byte("secret bytes")), dek, iv); err != nil {
		t.Fatalf("EncryptStream error: %v", err)
	}

	tampered := ciphertext.Bytes()
	tampered[len(tampered)-1] ^= 0xFF

	var recovered bytes.Buffer
	if err := svc.DecryptStream(&recovered, bytes.NewReader(tampered), dek, iv); err == nil {
		t.Fatalf("expected DecryptStream to fail on tampered ciphertext")
	}
}
