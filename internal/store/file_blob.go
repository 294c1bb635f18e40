package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bidhouse/internal/config"
	"bidhouse/internal/logger"
)

// fileBlobStore keeps image bytes as plain files in a configured
// directory, addressed by the filename reference stored on the owning
// database row.
type fileBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStore constructs a [BlobStore] rooted at cfg.Dir, creating
// the directory if it does not exist yet.
func NewFileBlobStore(cfg config.Images, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %q: %w", cfg.Dir, err)
	}

	logger.Debug().Str("dir", cfg.Dir).Msg("creating file blob store")
	return &fileBlobStore{
		dir:    cfg.Dir,
		logger: logger,
	}, nil
}

// path resolves a key inside the store directory. Keys are always
// server-derived filenames ("auction_42.png"), but path separators are
// rejected anyway so no key can ever escape the directory.
func (s *fileBlobStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *fileBlobStore) Write(ctx context.Context, key string, data []byte) error {
	log := logger.FromContext(ctx)

	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(p, data, 0o644); err != nil {
		log.Err(err).Str("func", "*fileBlobStore.Write").Str("key", key).Msg("failed to write blob")
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}

	return nil
}

func (s *fileBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrAttachmentNotFound
		}
		log.Err(err).Str("func", "*fileBlobStore.Read").Str("key", key).Msg("failed to read blob")
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}

	return data, nil
}

func (s *fileBlobStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrAttachmentNotFound
		}
		log.Err(err).Str("func", "*fileBlobStore.Delete").Str("key", key).Msg("failed to delete blob")
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}

	return nil
}

func (s *fileBlobStore) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Err(err).Str("func", "*fileBlobStore.Keys").Msg("failed to list blob directory")
		return nil, fmt.Errorf("failed to list blob directory %q: %w", s.dir, err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, entry.Name())
	}

	return keys, nil
}

func (s *fileBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob %q: %w", key, err)
	}

	return true, nil
}
