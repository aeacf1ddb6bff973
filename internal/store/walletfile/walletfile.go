// Package walletfile persists the wallet map as a single JSON snapshot
// file, rewritten whole on every save.
package walletfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"b3vision/internal/model"
)

// Store satisfies model.WalletStore with a whole-file JSON snapshot. Writes
// go through a temp file plus rename so a crash mid-write never corrupts
// the previous snapshot.
type Store struct {
	path string
}

// New creates a file store at path, creating parent directories as needed.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("walletfile: mkdir %s: %w", dir, err)
		}
	}
	return &Store{path: path}, nil
}

// LoadAll reads the snapshot. A missing file yields an empty map.
func (s *Store) LoadAll() (map[string]*model.Wallet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]*model.Wallet), nil
	}
	if err != nil {
		return nil, fmt.Errorf("walletfile: read %s: %w", s.path, err)
	}
	wallets := make(map[string]*model.Wallet)
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("walletfile: decode %s: %w", s.path, err)
	}
	return wallets, nil
}

// SaveAll rewrites the full snapshot durably.
func (s *Store) SaveAll(wallets map[string]*model.Wallet) error {
	data, err := json.MarshalIndent(wallets, "", "  ")
	if err != nil {
		return fmt.Errorf("walletfile: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("walletfile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("walletfile: rename %s: %w", tmp, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *Store) Close() error { return nil }
