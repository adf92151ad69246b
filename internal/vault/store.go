// Package vault persists the wordbook document under a single key of a
// key/value slot and runs every mutation as one read-modify-write.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/models"
)

// Key is the slot key the vault document lives under.
const Key = "KD_VAULT_V2"

// Slot is the key/value persistence the store writes to.
// kv.SQLiteRepository and MemorySlot implement it.
type Slot interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update atomically replaces the value of key with fn(old).
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
}

// Store loads, validates and saves the Vault.
type Store struct {
	slot Slot
	mu   sync.Mutex
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Load returns an independent copy of the persisted vault. An absent
// document yields an empty vault; a malformed one fails with
// common.ErrCorruptStorage.
func (s *Store) Load(ctx context.Context) (*models.Vault, error) {
	raw, err := s.slot.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	return decodeStored(raw)
}

// Save validates v and replaces the persisted document with it.
func (s *Store) Save(ctx context.Context, v *models.Vault) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

// Update loads the vault, hands it to fn and saves the result. If fn returns
// an error nothing is written and the error is returned as is. Updates in
// one process are serialized.
func (s *Store) Update(ctx context.Context, fn func(v *models.Vault) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slot.Update(ctx, Key, func(old []byte) ([]byte, error) {
		v, err := decodeStored(old)
		if err != nil {
			return nil, err
		}
		if err := fn(v); err != nil {
			return nil, err
		}
		return Encode(v)
	})
}

// Reset removes the document; the next Load returns an empty vault.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to reset vault: %w", err)
	}
	return nil
}

// Encode serializes v after checking that it is a version 2 document with
// a days list. Nil child lists are written as empty arrays.
func Encode(v *models.Vault) ([]byte, error) {
	if !v.Valid() {
		return nil, common.ErrInvalidDocument
	}
	c := v.Clone()
	c.Normalize()
	return json.Marshal(c)
}

var (
	errBadVersion = errors.New("version must be 2")
	errBadDays    = errors.New("days must be an array")
)

// Decode parses a vault document. It rejects anything that is not a JSON
// object with version 2 and a days array.
func Decode(raw []byte) (*models.Vault, error) {
	var head struct {
		Version any `json:"version"`
		Days    any `json:"days"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if n, ok := head.Version.(float64); !ok || n != models.Version {
		return nil, errBadVersion
	}
	if _, ok := head.Days.([]any); !ok {
		return nil, errBadDays
	}

	var v models.Vault
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	v.Normalize()
	return &v, nil
}

func decodeStored(raw []byte) (*models.Vault, error) {
	if len(raw) == 0 {
		return models.NewVault(), nil
	}
	v, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptStorage, err)
	}
	return v, nil
}
