// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeychainBackendPriority ranks the keychain below environment overrides.
	KeychainBackendPriority = 50

	// KeychainService is the keychain service that holds routekit's keys.
	// Each provider key is one entry whose account is the provider name,
	// so "routekit config set-key ors" shows up as routekit/ors.
	KeychainService = "routekit"

	// keychainCheckAccount is read once at startup to detect a missing or
	// locked keyring.
	keychainCheckAccount = "routekit-availability-check"
)

// keychainUnavailableHints are fragments of keyring errors that mean the
// service cannot be used, as opposed to a missing entry.
var keychainUnavailableHints = []string{
	"locked",
	"cannot access",
	"permission denied",
	"failed to unlock",
	"user interaction required",
	"secret service",
	"dbus",
	"user canceled",
}

// KeychainBackend stores provider API keys in the OS keychain (macOS
// Keychain, Linux Secret Service, Windows Credential Manager).
type KeychainBackend struct {
	available bool
}

// NewKeychainBackend returns a keychain backend. A keyring that cannot be
// reached makes the backend unavailable, and the resolver drops it.
func NewKeychainBackend() *KeychainBackend {
	_, err := keyring.Get(KeychainService, keychainCheckAccount)
	return &KeychainBackend{available: err == nil || errors.Is(err, keyring.ErrNotFound)}
}

func (k *KeychainBackend) Name() string {
	return "keychain"
}

// Get returns the key stored for the provider named in key.
func (k *KeychainBackend) Get(ctx context.Context, key string) (string, error) {
	if err := k.check(); err != nil {
		return "", err
	}
	value, err := keyring.Get(KeychainService, storageAccount(key))
	if err != nil {
		return "", keychainError(key, err)
	}
	return value, nil
}

// Set replaces any existing entry.
func (k *KeychainBackend) Set(ctx context.Context, key string, value string) error {
	if err := k.check(); err != nil {
		return err
	}
	return keychainError(key, keyring.Set(KeychainService, storageAccount(key), value))
}

func (k *KeychainBackend) Delete(ctx context.Context, key string) error {
	if err := k.check(); err != nil {
		return err
	}
	return keychainError(key, keyring.Delete(KeychainService, storageAccount(key)))
}

func (k *KeychainBackend) Available() bool {
	return k.available
}

func (k *KeychainBackend) Priority() int {
	return KeychainBackendPriority
}

func (k *KeychainBackend) check() error {
	if !k.available {
		return fmt.Errorf("%w: no OS keychain service", ErrBackendUnavailable)
	}
	return nil
}

// keychainError maps keyring errors onto the package sentinels.
func keychainError(key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	case isKeychainUnavailableError(err):
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	default:
		return fmt.Errorf("keychain %s: %w", storageAccount(key), err)
	}
}

func isKeychainUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range keychainUnavailableHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
