// Package filestore keeps each key in its own JSON file inside a directory.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

var (
	keyRegex = regexp.MustCompile(`^[\w.-]+$`)

	errInvalidKey = errors.New("invalid key")
)

type Store struct {
	dir string
}

var _ core.KVStore = (*Store)(nil)

// Open creates dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating store directory %s", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !keyRegex.MatchString(key) || key == "." || key == ".." {
		return "", errors.Wrapf(errInvalidKey, "%q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	fp, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", fp)
	}
	return data, nil
}

// Set writes to a temp file renamed over the previous one, so readers never see a partial value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	fp, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), fp); err != nil {
		return errors.Wrapf(err, "replacing %s", fp)
	}
	return nil
}

func (s *Store) Close() error { return nil }
