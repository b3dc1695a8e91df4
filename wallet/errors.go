package wallet

import "errors"

var (
	// ErrInvalidMnemonic indicates the words do not form a valid TON mnemonic.
	ErrInvalidMnemonic = errors.New("wallet: invalid TON mnemonic")

	// ErrDecryptionFailed indicates wrong password or corrupted wallet data.
	ErrDecryptionFailed = errors.New("wallet: mnemonic decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates the mnemonic checksum failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: mnemonic checksum mismatch")

	// ErrInvalidSeed indicates the plaintext to encrypt is empty.
	ErrInvalidSeed = errors.New("wallet: invalid seed")

	// ErrUnknownVersion indicates an unsupported wallet contract version name.
	ErrUnknownVersion = errors.New("wallet: unknown wallet version (must be \"v3r2\" or \"v4r2\")")
)
