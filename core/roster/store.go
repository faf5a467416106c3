package roster

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

// Store reads and writes the groups snapshot under a single key of a core.KVStore.
// It only (de)serializes: field semantics are the Service's business.
type Store struct {
	kv     core.KVStore
	key    string
	logger core.Logger
}

func NewStore(kv core.KVStore, key string, logger core.Logger) *Store {
	return &Store{kv: kv, key: key, logger: logger}
}

// Load returns the stored snapshot and true, or an empty snapshot and false when nothing usable is stored.
// Malformed data is logged and ignored.
func (s *Store) Load(ctx context.Context) (Snapshot, bool) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Cause(err) != core.ErrKeyNotFound {
			s.logger.Error("roster.Store.Load: reading snapshot", errors.Wrapf(err, "key %q", s.key))
		}
		return Snapshot{}, false
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("roster.Store.Load: discarding malformed snapshot", errors.Wrapf(err, "key %q", s.key))
		return Snapshot{}, false
	}
	return snap, true
}

// Save writes the whole snapshot, an empty one included.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return errors.Wrapf(err, "writing snapshot to key %q", s.key)
	}
	return nil
}

// EncodeSnapshot serializes snap as a versioned envelope.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Groups == nil {
		snap.Groups = []Group{}
	}
	snap.Version = SchemaVersion
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return data, nil
}

// DecodeSnapshot accepts the versioned envelope as well as the legacy bare array of groups.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Snapshot{}, errors.New("empty snapshot")
	}

	var snap Snapshot
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &snap.Groups); err != nil {
			return Snapshot{}, errors.Wrap(err, "decoding legacy snapshot")
		}
		snap.Version = 1
	case '{':
		if err := json.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, errors.Wrap(err, "decoding snapshot")
		}
		if snap.Version < 1 {
			return Snapshot{}, errors.Errorf("invalid snapshot version %d", snap.Version)
		}
		if snap.Version > SchemaVersion {
			return Snapshot{}, errors.Errorf("snapshot version %d is newer than supported version %d", snap.Version, SchemaVersion)
		}
	default:
		return Snapshot{}, errors.New("snapshot is neither an object nor an array")
	}
	return snap, nil
}
