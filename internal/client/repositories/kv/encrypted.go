package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinicsite/internal/common"
	"github.com/dmitrijs2005/clinicsite/internal/cryptox"
)

// SaltKey is reserved in the wrapped store for the key-derivation salt.
const SaltKey = "__kv_salt"

const saltSize = 16

var ErrReservedKey = errors.New("reserved key")

// EncryptedStore seals every value with AES-GCM before handing it to the
// wrapped store.
type EncryptedStore struct {
	inner Store
	key   []byte
}

// NewEncrypted derives the sealing key from passphrase and the salt kept in
// inner, creating the salt on first use.
func NewEncrypted(ctx context.Context, inner Store, passphrase []byte) (*EncryptedStore, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("empty passphrase: %w", common.ErrInvalidConfig)
	}

	salt, err := loadSalt(ctx, inner)
	if err != nil {
		return nil, err
	}

	return &EncryptedStore{inner: inner, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func loadSalt(ctx context.Context, inner Store) ([]byte, error) {
	fresh := common.GenerateRandByteArray(saltSize)

	if init, ok := inner.(Initializer); ok {
		salt, err := init.SetIfAbsent(ctx, SaltKey, fresh)
		if err != nil {
			return nil, fmt.Errorf("init salt: %w", err)
		}
		return salt, nil
	}

	salt, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	if salt != nil {
		return salt, nil
	}
	if err := inner.Set(ctx, SaltKey, fresh); err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return fresh, nil
}

func (e *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == SaltKey {
		return nil, ErrReservedKey
	}
	sealed, err := e.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := cryptox.Open(sealed, e.key)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", key, err)
	}
	return plain, nil
}

func (e *EncryptedStore) Set(ctx context.Context, key string, value []byte) error {
	if key == SaltKey {
		return ErrReservedKey
	}
	sealed, err := cryptox.Seal(value, e.key)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return e.inner.Set(ctx, key, sealed)
}

func (e *EncryptedStore) Delete(ctx context.Context, key string) error {
	if key == SaltKey {
		return ErrReservedKey
	}
	return e.inner.Delete(ctx, key)
}
