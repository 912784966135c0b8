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
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	// FileBackendPriority ranks the encrypted file below the keychain, so it
	// only receives keys on machines without a keychain service.
	FileBackendPriority = 25

	// CredentialsFile is the encrypted key store inside the config directory.
	CredentialsFile = "credentials.enc"

	// MasterKeyFile holds the master key when ROUTEKIT_MASTER_KEY is unset.
	// It must not be readable by group or others.
	MasterKeyFile = "master.key"

	// MasterKeyEnv names the environment variable holding the master key.
	MasterKeyEnv = "ROUTEKIT_MASTER_KEY"
)

// Argon2id parameters for deriving the AES-256 key from the master key.
const (
	kdfTime    = 3
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	kdfKeyLen  = 32
	kdfSaltLen = 16
)

// sealedStore is the on-disk form of the credentials file. Data is the
// AES-256-GCM encrypted JSON object mapping storage accounts to keys.
type sealedStore struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// FileBackend keeps provider API keys in an encrypted file next to the
// configuration. It is the fallback store for "routekit config set-key" on
// hosts without an OS keychain (containers, CI runners, headless servers).
type FileBackend struct {
	path      string
	masterKey []byte
	mu        sync.Mutex
}

// NewFileBackend returns a backend storing keys in dir/credentials.enc.
// The master key is masterKey if non-empty, then $ROUTEKIT_MASTER_KEY, then
// the contents of dir/master.key. Without a master key the backend is
// unavailable.
func NewFileBackend(dir, masterKey string) *FileBackend {
	f := &FileBackend{}
	if dir == "" {
		return f
	}
	f.path = filepath.Join(dir, CredentialsFile)
	f.masterKey = loadMasterKey(dir, masterKey)
	return f
}

func (f *FileBackend) Name() string {
	return "file"
}

// Path returns the credentials file location.
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Get(ctx context.Context, key string) (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	store, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := store[storageAccount(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

func (f *FileBackend) Set(ctx context.Context, key string, value string) error {
	return f.update(func(store map[string]string) error {
		store[storageAccount(key)] = value
		return nil
	})
}

func (f *FileBackend) Delete(ctx context.Context, key string) error {
	return f.update(func(store map[string]string) error {
		account := storageAccount(key)
		if _, ok := store[account]; !ok {
			return fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		delete(store, account)
		return nil
	})
}

func (f *FileBackend) Available() bool {
	return f.path != "" && len(f.masterKey) > 0
}

func (f *FileBackend) Priority() int {
	return FileBackendPriority
}

func (f *FileBackend) check() error {
	if !f.Available() {
		return fmt.Errorf("%w: set %s to use the encrypted credentials file", ErrBackendUnavailable, MasterKeyEnv)
	}
	return nil
}

// update applies fn to the decrypted store and writes it back.
func (f *FileBackend) update(fn func(map[string]string) error) error {
	if err := f.check(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	store, err := f.read()
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	return f.write(store)
}

// read decrypts the credentials file. A missing file is an empty store.
func (f *FileBackend) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var sealed sealedStore
	if err := json.Unmarshal(raw, &sealed); err != nil {
		return nil, fmt.Errorf("credentials file %s is corrupt: %w", f.path, err)
	}
	plaintext, err := open(f.masterKey, sealed)
	if err != nil {
		return nil, err
	}
	defer zero(plaintext)

	store := map[string]string{}
	if err := json.Unmarshal(plaintext, &store); err != nil {
		return nil, fmt.Errorf("credentials file %s is corrupt: %w", f.path, err)
	}
	return store, nil
}

// write encrypts store with a fresh salt and nonce and replaces the file
// atomically.
func (f *FileBackend) write(store map[string]string) error {
	plaintext, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	defer zero(plaintext)

	sealed, err := seal(f.masterKey, plaintext)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func seal(masterKey, plaintext []byte) (sealedStore, error) {
	salt := make([]byte, kdfSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return sealedStore{}, fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := newGCM(masterKey, salt)
	if err != nil {
		return sealedStore{}, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return sealedStore{}, fmt.Errorf("generate nonce: %w", err)
	}
	return sealedStore{Salt: salt, Nonce: nonce, Data: gcm.Seal(nil, nonce, plaintext, nil)}, nil
}

func open(masterKey []byte, sealed sealedStore) ([]byte, error) {
	gcm, err := newGCM(masterKey, sealed.Salt)
	if err != nil {
		return nil, err
	}
	if len(sealed.Nonce) != gcm.NonceSize() {
		return nil, errors.New("credentials file has an invalid nonce")
	}
	plaintext, err := gcm.Open(nil, sealed.Nonce, sealed.Data, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials (wrong %s?): %w", MasterKeyEnv, err)
	}
	return plaintext, nil
}

func newGCM(masterKey, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(masterKey, salt, kdfTime, kdfMemory, kdfThreads, kdfKeyLen)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// loadMasterKey returns the first master key found, or nil.
func loadMasterKey(dir, explicit string) []byte {
	if explicit != "" {
		return []byte(explicit)
	}
	if env := os.Getenv(MasterKeyEnv); env != "" {
		return []byte(env)
	}

	path := filepath.Join(dir, MasterKeyFile)
	info, err := os.Stat(path)
	if err != nil || info.Mode().Perm()&0077 != 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return bytes.TrimSpace(data)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
