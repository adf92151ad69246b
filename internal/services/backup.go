package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wordbook/internal/backup"
	"github.com/dmitrijs2005/wordbook/internal/vault"
)

type BackupService interface {
	// Export writes the current vault to the destination and returns the
	// reference to import it from.
	Export(ctx context.Context, label, passphrase string) (string, error)
	// Import validates a backup and replaces the whole vault with it.
	Import(ctx context.Context, ref, passphrase string) error
	// Sealed reports whether the backup at ref needs a passphrase.
	Sealed(ctx context.Context, ref string) (bool, error)
}

type backupService struct {
	store *vault.Store
	dest  backup.Destination
	opts  options
}

func NewBackupService(store *vault.Store, dest backup.Destination, opts ...Option) BackupService {
	return &backupService{store: store, dest: dest, opts: buildOptions(opts)}
}

func (s *backupService) Export(ctx context.Context, label, passphrase string) (string, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	data, err := backup.Encode(v, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	ref, err := s.dest.Put(ctx, backup.FileName(s.opts.now(), label), data)
	if err != nil {
		return "", err
	}

	s.opts.log.Info(ctx, "vault exported", "ref", ref, "sealed", passphrase != "", "days", len(v.Days))
	return ref, nil
}

func (s *backupService) Sealed(ctx context.Context, ref string) (bool, error) {
	data, err := s.dest.Get(ctx, ref)
	if err != nil {
		return false, err
	}
	return backup.Sealed(data), nil
}

func (s *backupService) Import(ctx context.Context, ref, passphrase string) error {
	data, err := s.dest.Get(ctx, ref)
	if err != nil {
		return err
	}

	v, err := backup.Decode(data, passphrase)
	if err != nil {
		s.opts.log.Warn(ctx, "backup rejected", "ref", ref, "err", err)
		return err
	}

	if err := s.store.Save(ctx, v); err != nil {
		return err
	}

	s.opts.log.Info(ctx, "vault imported", "ref", ref, "days", len(v.Days))
	return nil
}
