// Package secrets encrypts provider credentials stored in the setting
// table. Values are fernet tokens, so a leaked database file does not leak
// API keys.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Codec encrypts and decrypts strings with a single fernet key.
type Codec struct {
	key *fernet.Key
}

// NewCodec builds a Codec from a base64-encoded fernet key, as produced by
// `fernet.Key.Encode`.
func NewCodec(encodedKey string) (*Codec, error) {
	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Codec{key: keys[0]}, nil
}

// Encrypt returns the fernet token for a plaintext value.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens never expire; the
// stored credentials stay valid until replaced.
func (c *Codec) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt value: invalid token or key")
	}
	return string(plaintext), nil
}
