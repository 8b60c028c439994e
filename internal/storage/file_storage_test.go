package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"music-server/internal/domain"
)

func TestFileStorageMissingFileIsEmpty(t *testing.T) {
	s := NewFileSongStorage(filepath.Join(t.TempDir(), "songs.json"))

	songs, err := s.ReadAll(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if songs == nil || len(songs) != 0 {
		t.Errorf("ReadAll() = %#v, want an empty non-nil slice", songs)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	s := NewFileSongStorage(path)

	want := []domain.Song{
		{ID: 10, Title: "Yesterday", Artist: "The Beatles", Album: "Help!", Year: 1965, Genre: "Pop"},
		{ID: 3, Title: "Hurt", Artist: "Johnny Cash", Album: "American IV", Year: 2002, Genre: "Country"},
	}
	if err := s.WriteAll(t.Context(), want); err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}

	got, err := s.ReadAll(t.Context())
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d songs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("song %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "{\n  \"songs\": [") {
		t.Errorf("unexpected file layout:\n%s", raw)
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only songs.json", len(entries))
	}
}

func TestFileStorageReadsExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	doc := `{"songs":[{"id":1,"title":"Imagine","artist":"John Lennon","album":"Imagine","year":1971,"genre":"Rock"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	songs, err := NewFileSongStorage(path).ReadAll(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 1 || songs[0].Title != "Imagine" || songs[0].Year != 1971 {
		t.Errorf("ReadAll() = %+v", songs)
	}
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileSongStorage(path).ReadAll(t.Context())
	if !errors.Is(err, ErrCorruptStore) {
		t.Errorf("err = %v, want ErrCorruptStore", err)
	}
}

func TestFileStorageWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	s := NewFileSongStorage(path)

	if err := s.WriteAll(t.Context(), nil); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(raw)) != "{\n  \"songs\": []\n}" {
		t.Errorf("file = %q", raw)
	}
}
