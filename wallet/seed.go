// Package wallet manages the deployer wallet: a TON mnemonic kept encrypted
// on disk and the wallet contract that signs outgoing messages.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"

	tonwallet "github.com/xssnick/tonutils-go/ton/wallet"
	"golang.org/x/crypto/argon2"
)

const (
	// MnemonicWords is the length of a TON mnemonic.
	MnemonicWords = 24

	// Argon2id parameters for mnemonic encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

// NewMnemonic generates a fresh 24-word TON mnemonic.
func NewMnemonic() []string {
	return tonwallet.NewSeed()
}

// ParseMnemonic splits a space separated phrase and checks it can derive a wallet key.
func ParseMnemonic(phrase string) ([]string, error) {
	words := strings.Fields(phrase)
	if len(words) != MnemonicWords {
		return nil, fmt.Errorf("%w: expected %d words, got %d", ErrInvalidMnemonic, MnemonicWords, len(words))
	}
	if _, err := tonwallet.FromSeed(nil, words, tonwallet.V4R2); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	return words, nil
}

// EncryptMnemonic encrypts the mnemonic words for storage in wallet.enc.
func EncryptMnemonic(words []string, password string) ([]byte, error) {
	return EncryptSeed([]byte(strings.Join(words, " ")), password)
}

// DecryptMnemonic reverses EncryptMnemonic.
func DecryptMnemonic(encrypted []byte, password string) ([]string, error) {
	plain, err := DecryptSeed(encrypted, password)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(plain)), nil
}

// EncryptSeed encrypts seed material with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, seed||checksum)
//
// The checksum is SHA256(seed)[:4] for verifying correct decryption.
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate salt: %w", err)
	}

	gcm, err := newCipher(password, salt)
	if err != nil {
		return nil, err
	}

	seedHash := sha256.Sum256(seed)
	plaintext := make([]byte, 0, len(seed)+ChecksumLen)
	plaintext = append(plaintext, seed...)
	plaintext = append(plaintext, seedHash[:ChecksumLen]...)

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate nonce: %w", err)
	}

	result := make([]byte, 0, SaltLen+NonceLen+len(plaintext)+gcm.Overhead())
	result = append(result, salt...)
	result = append(result, nonce...)
	return gcm.Seal(result, nonce, plaintext, nil), nil
}

// DecryptSeed decrypts data produced by EncryptSeed and verifies its checksum.
func DecryptSeed(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]
	ciphertext := encrypted[SaltLen+NonceLen:]

	gcm, err := newCipher(password, salt)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil || len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-ChecksumLen]
	seedHash := sha256.Sum256(seed)
	if subtle.ConstantTimeCompare(plaintext[len(seed):], seedHash[:ChecksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return seed, nil
}

func newCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM creation failed: %w", err)
	}
	return gcm, nil
}
