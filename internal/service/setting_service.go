package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
	"github.com/edersonsgoncalves/acoes-backend/internal/secrets"
)

// ErrEncryptionUnavailable is returned when an encrypted setting is stored
// or read without a fernet key configured.
var ErrEncryptionUnavailable = errors.New("no encryption key configured")

// SettingKeyBrapiToken is the setting under which the quote provider token
// may be stored instead of the environment.
const SettingKeyBrapiToken = "brapi_api_key"

// RedactedValue replaces encrypted setting values on read; secrets are
// write-only through the API.
const RedactedValue = "********"

// SettingValue is a stored setting as exposed by the API. Encrypted values
// are redacted.
type SettingValue struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Encrypted bool   `json:"encrypted"`
}

// SettingService handles the key/value settings store. Values marked for
// encryption are fernet-encrypted before they reach the database.
type SettingService struct {
	settingRepo *repository.SettingRepository
	codec       *secrets.Codec
}

// NewSettingService creates a new SettingService. codec may be nil when no
// fernet key is configured; storing encrypted values then fails.
func NewSettingService(settingRepo *repository.SettingRepository, codec *secrets.Codec) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		codec:       codec,
	}
}

// PutSetting stores a value, encrypting it first when requested.
func (s *SettingService) PutSetting(ctx context.Context, key, value string, encrypt bool) error {
	if encrypt {
		if s.codec == nil {
			return fmt.Errorf("cannot store encrypted setting %s: %w", key, ErrEncryptionUnavailable)
		}
		encrypted, err := s.codec.Encrypt(value)
		if err != nil {
			return err
		}
		value = encrypted
	}

	return s.settingRepo.UpsertSetting(ctx, key, value, encrypt)
}

// GetSetting returns a stored setting with encrypted values redacted.
func (s *SettingService) GetSetting(key string) (SettingValue, error) {
	value, encrypted, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return SettingValue{}, err
	}

	if encrypted {
		value = RedactedValue
	}

	return SettingValue{Key: key, Value: value, Encrypted: encrypted}, nil
}

// PlainValue returns the decrypted value of a setting, for internal
// consumers such as provider clients resolving their credentials.
func (s *SettingService) PlainValue(key string) (string, error) {
	value, encrypted, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return "", err
	}

	if !encrypted {
		return value, nil
	}

	if s.codec == nil {
		return "", fmt.Errorf("cannot decrypt setting %s: %w", key, ErrEncryptionUnavailable)
	}

	return s.codec.Decrypt(value)
}
