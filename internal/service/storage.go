// Path: internal/service/storage.go
package service

import (
	"context"

	"music-server/internal/domain"
)

// SongStorage defines the interface for persisting the song collection.
// The collection is read and written as a whole, in order.
type SongStorage interface {
	// ReadAll returns every stored song in collection order.
	ReadAll(ctx context.Context) ([]domain.Song, error)

	// WriteAll replaces the stored collection with songs.
	WriteAll(ctx context.Context, songs []domain.Song) error
}
