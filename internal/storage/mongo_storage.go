// Path: internal/storage/mongo_storage.go
package storage

import (
	"context"
	"fmt"

	"music-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// songDocument is a song as stored in MongoDB. Pos keeps collection order.
type songDocument struct {
	ID     int    `bson:"_id"`
	Pos    int    `bson:"pos"`
	Title  string `bson:"title"`
	Artist string `bson:"artist"`
	Album  string `bson:"album"`
	Year   int    `bson:"year"`
	Genre  string `bson:"genre"`
}

// MongoSongStorage is the MongoDB implementation of the SongStorage interface.
type MongoSongStorage struct {
	collection *mongo.Collection
}

// NewMongoSongStorage creates a new storage adapter for songs.
func NewMongoSongStorage(db *mongo.Database, collectionName string) *MongoSongStorage {
	return &MongoSongStorage{
		collection: db.Collection(collectionName),
	}
}

// ReadAll implements the SongStorage interface.
func (s *MongoSongStorage) ReadAll(ctx context.Context) ([]domain.Song, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pos", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding songs: %w", err)
	}

	var docs []songDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding songs: %w", err)
	}

	songs := make([]domain.Song, len(docs))
	for i, d := range docs {
		songs[i] = domain.Song{ID: d.ID, Title: d.Title, Artist: d.Artist, Album: d.Album, Year: d.Year, Genre: d.Genre}
	}
	return songs, nil
}

// WriteAll implements the SongStorage interface.
// The collection is cleared and refilled; the two steps are not atomic.
func (s *MongoSongStorage) WriteAll(ctx context.Context, songs []domain.Song) error {
	if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing songs: %w", err)
	}
	if len(songs) == 0 {
		return nil
	}

	docs := make([]interface{}, len(songs))
	for i, song := range songs {
		docs[i] = songDocument{
			ID:     song.ID,
			Pos:    i,
			Title:  song.Title,
			Artist: song.Artist,
			Album:  song.Album,
			Year:   song.Year,
			Genre:  song.Genre,
		}
	}

	// Ordered so a duplicate ID stops the insert at a well-defined point.
	opts := options.InsertMany().SetOrdered(true)
	if _, err := s.collection.InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("inserting songs: %w", err)
	}
	return nil
}
