package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps all slots in a single JSON document on disk. Every
// mutation is a read-modify-write under one mutex followed by an atomic
// replace (write temp file, fsync, rename), so a crash mid-write never
// leaves a half-written store behind.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  *slog.Logger
}

func NewFileStore(path string, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := slots[key]
	return v, ok, nil
}

func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	slots[key] = json.RawMessage(value)
	return s.save(slots)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)
	return s.save(slots)
}

func (s *FileStore) Close() error { return nil }

// load reads the whole store. A missing file is an empty store; an
// unparsable file is also treated as empty (fail-open) so a corrupted
// document cannot brick every caller, but it is logged loudly.
func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, errors.Wrap(err, "read store file")
	}

	slots := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &slots); err != nil {
		s.log.Warn("store file is corrupt, starting from empty",
			slog.String("path", s.path), slog.Any("err", err))
		return map[string]json.RawMessage{}, nil
	}
	return slots, nil
}

func (s *FileStore) save(slots map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal store")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp store file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "write temp store file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "sync temp store file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "close temp store file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "replace store file")
	}
	return nil
}
