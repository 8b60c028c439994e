// Path: internal/storage/file_storage.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"music-server/internal/domain"
)

// ErrCorruptStore is returned when the song file cannot be decoded.
var ErrCorruptStore = errors.New("song file is not valid JSON")

// songFile is the on-disk layout of the song collection.
type songFile struct {
	Songs []domain.Song `json:"songs"`
}

// FileSongStorage keeps the song collection in a single JSON file.
type FileSongStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileSongStorage creates a storage adapter for the JSON file at path.
// The file does not need to exist yet.
func NewFileSongStorage(path string) *FileSongStorage {
	return &FileSongStorage{path: filepath.Clean(path)}
}

// ReadAll implements the SongStorage interface. A missing file is an empty collection.
func (s *FileSongStorage) ReadAll(ctx context.Context) ([]domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Song{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc songFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.path, ErrCorruptStore, err)
	}
	if doc.Songs == nil {
		doc.Songs = []domain.Song{}
	}
	return doc.Songs, nil
}

// WriteAll implements the SongStorage interface.
// The new content is written to a temporary file that then replaces the old one,
// so readers never see a partially written collection.
func (s *FileSongStorage) WriteAll(ctx context.Context, songs []domain.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if songs == nil {
		songs = []domain.Song{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(songFile{Songs: songs}); err != nil {
		return fmt.Errorf("encoding songs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".songs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
