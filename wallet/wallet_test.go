package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mnemonic tests ---

func TestNewMnemonic(t *testing.T) {
	words := NewMnemonic()
	assert.Len(t, words, MnemonicWords)

	parsed, err := ParseMnemonic(strings.Join(words, " "))
	require.NoError(t, err)
	assert.Equal(t, words, parsed)
}

func TestNewMnemonic_Unique(t *testing.T) {
	assert.NotEqual(t, NewMnemonic(), NewMnemonic())
}

func TestParseMnemonic_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
	}{
		{"empty", ""},
		{"too short", "abandon abandon"},
		{"unknown words", strings.Repeat("notaword ", MnemonicWords)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMnemonic(tt.phrase)
			assert.ErrorIs(t, err, ErrInvalidMnemonic)
		})
	}
}

func TestParseMnemonic_ExtraWhitespace(t *testing.T) {
	words := NewMnemonic()
	parsed, err := ParseMnemonic("  " + strings.Join(words, "   ") + "\n")
	require.NoError(t, err)
	assert.Equal(t, words, parsed)
}

// --- Encryption tests ---

func TestEncryptDecryptMnemonic_RoundTrip(t *testing.T) {
	words := NewMnemonic()
	encrypted, err := EncryptMnemonic(words, "correct horse")
	require.NoError(t, err)

	decrypted, err := DecryptMnemonic(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, words, decrypted)
}

func TestDecryptSeed_WrongPassword(t *testing.T) {
	encrypted, err := EncryptSeed([]byte("seed material"), "right")
	require.NoError(t, err)

	_, err = DecryptSeed(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptSeed_EmptySeed(t *testing.T) {
	_, err := EncryptSeed(nil, "pw")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestDecryptSeed_TooShort(t *testing.T) {
	_, err := DecryptSeed([]byte{0x01, 0x02}, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptSeed_Format(t *testing.T) {
	seed := []byte("seed material")
	a, err := EncryptSeed(seed, "pw")
	require.NoError(t, err)
	b, err := EncryptSeed(seed, "pw")
	require.NoError(t, err)

	// salt + nonce + seed + checksum + GCM tag
	assert.Len(t, a, SaltLen+NonceLen+len(seed)+ChecksumLen+16)
	assert.NotEqual(t, a, b, "random salt and nonce must differ between encryptions")
}

// --- Version tests ---

func TestParseVersion(t *testing.T) {
	for _, name := range []string{"v3r2", "v4r2", "V4R2", " v4r2 "} {
		_, err := ParseVersion(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseVersion("v1r1")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestAddress_DependsOnVersion(t *testing.T) {
	words := NewMnemonic()

	v4, err := Address(words, "v4r2")
	require.NoError(t, err)
	again, err := Address(words, "v4r2")
	require.NoError(t, err)
	v3, err := Address(words, "v3r2")
	require.NoError(t, err)

	assert.Equal(t, v4.String(), again.String())
	assert.NotEqual(t, v4.String(), v3.String())
	assert.Equal(t, int32(0), v4.Workchain())
}

func TestAddress_InvalidMnemonic(t *testing.T) {
	_, err := Address([]string{"nope"}, "v4r2")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)

	_, err = Address(NewMnemonic(), "v9")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}
