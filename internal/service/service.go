// Path: internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"music-server/internal/domain"
	"music-server/internal/events"
)

// maxSongID bounds generated IDs to [1, maxSongID].
const maxSongID = 1_000_000

// ErrInvalidSong is returned when a create payload lacks a required field.
var ErrInvalidSong = errors.New("invalid song data")

// Service is the song API's business logic on top of a SongStorage.
type Service struct {
	storage SongStorage
	broker  *events.Broker
	logger  *slog.Logger

	// mu serializes read-modify-write cycles within this process.
	mu     sync.Mutex
	nextID func() int
}

// NewService creates a new song service.
func NewService(storage SongStorage, broker *events.Broker, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		broker:  broker,
		logger:  logger,
		nextID:  func() int { return rand.IntN(maxSongID) + 1 },
	}
}

// ListSongs returns the songs that match every filter that is set.
func (s *Service) ListSongs(ctx context.Context, filter domain.SongFilter) ([]domain.Song, error) {
	songs, err := s.storage.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading songs: %w", err)
	}

	matched := make([]domain.Song, 0, len(songs))
	for _, song := range songs {
		if filter.Matches(song) {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

// GetSong returns the song with the given ID, or nil, nil if there is none.
func (s *Service) GetSong(ctx context.Context, id int) (*domain.Song, error) {
	songs, err := s.storage.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading songs: %w", err)
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, nil
	}
	return &songs[i], nil
}

// CreateSong validates the payload, assigns an unused random ID and appends the song.
func (s *Service) CreateSong(ctx context.Context, in domain.NewSong) (domain.Song, error) {
	if !in.Complete() {
		return domain.Song{}, ErrInvalidSong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	songs, err := s.storage.ReadAll(ctx)
	if err != nil {
		return domain.Song{}, fmt.Errorf("reading songs: %w", err)
	}

	id := s.nextID()
	for indexOf(songs, id) >= 0 {
		id = s.nextID()
	}

	song := domain.Song{
		ID:     id,
		Title:  *in.Title,
		Artist: *in.Artist,
		Album:  *in.Album,
		Year:   *in.Year,
		Genre:  *in.Genre,
	}
	if err := s.storage.WriteAll(ctx, append(songs, song)); err != nil {
		return domain.Song{}, fmt.Errorf("writing songs: %w", err)
	}

	s.logger.Debug("song created", "id", song.ID, "title", song.Title)
	s.broker.Publish(events.TopicSongCreated, song)
	return song, nil
}

// UpdateSong merges the patch into the song with the given ID.
// It returns nil, nil if there is no such song.
func (s *Service) UpdateSong(ctx context.Context, id int, patch domain.SongPatch) (*domain.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs, err := s.storage.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading songs: %w", err)
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, nil
	}

	updated := patch.Apply(songs[i])
	songs[i] = updated
	if err := s.storage.WriteAll(ctx, songs); err != nil {
		return nil, fmt.Errorf("writing songs: %w", err)
	}

	s.logger.Debug("song updated", "id", id)
	s.broker.Publish(events.TopicSongUpdated, updated)
	return &updated, nil
}

// DeleteSong removes the song with the given ID and reports whether it existed.
func (s *Service) DeleteSong(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs, err := s.storage.ReadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("reading songs: %w", err)
	}

	i := indexOf(songs, id)
	if i < 0 {
		return false, nil
	}

	removed := songs[i]
	if err := s.storage.WriteAll(ctx, slices.Delete(songs, i, i+1)); err != nil {
		return false, fmt.Errorf("writing songs: %w", err)
	}

	s.logger.Debug("song deleted", "id", id)
	s.broker.Publish(events.TopicSongDeleted, removed)
	return true, nil
}

func indexOf(songs []domain.Song, id int) int {
	return slices.IndexFunc(songs, func(s domain.Song) bool { return s.ID == id })
}
