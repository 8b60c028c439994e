// Path: internal/delivery/rest/handlers.go
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"music-server/internal/domain"
	"music-server/internal/service"
)

// maxBodyBytes caps request bodies of the write endpoints.
const maxBodyBytes = 1 << 20

// songService defines the interface required by the handlers from the core service.
// This keeps the delivery layer decoupled from the full service implementation.
type songService interface {
	ListSongs(ctx context.Context, filter domain.SongFilter) ([]domain.Song, error)
	GetSong(ctx context.Context, id int) (*domain.Song, error)
	CreateSong(ctx context.Context, in domain.NewSong) (domain.Song, error)
	UpdateSong(ctx context.Context, id int, patch domain.SongPatch) (*domain.Song, error)
	DeleteSong(ctx context.Context, id int) (bool, error)
}

// SongHandlers holds dependencies for song-related HTTP handlers.
type SongHandlers struct {
	service songService
	logger  *slog.Logger
}

// NewSongHandlers creates a new handler struct.
func NewSongHandlers(s songService, logger *slog.Logger) *SongHandlers {
	return &SongHandlers{service: s, logger: logger}
}

// RegisterRoutes registers the song API on mux, each route wrapped by wrap.
func (h *SongHandlers) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, wrap(fn))
	}

	handle("GET /api", h.Welcome)
	handle("GET /api/songs", h.ListSongs)
	handle("POST /api/songs", h.CreateSong)
	handle("GET /api/song/{id}", h.GetSong)
	handle("PATCH /api/song/{id}", h.UpdateSong)
	handle("PUT /api/song/{id}", h.UpdateSong)
	handle("DELETE /api/song/{id}", h.DeleteSong)

	// Anything else under the API prefix.
	handle("/api/", RouteNotFound)
}

// Welcome handles GET /api.
func (h *SongHandlers) Welcome(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Welcome to the Music API!")
}

// ListSongs handles GET /api/songs with optional title, artist, album, year and genre filters.
func (h *SongHandlers) ListSongs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SongFilter{
		Title:  q.Get("title"),
		Artist: q.Get("artist"),
		Album:  q.Get("album"),
		Genre:  q.Get("genre"),
	}
	if q.Has("year") {
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, domain.Envelope{OK: false, Message: "year must be a number"})
			return
		}
		filter.Year = &year
	}

	songs, err := h.service.ListSongs(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if len(songs) == 0 {
		writeJSON(w, http.StatusNotFound, domain.Envelope{OK: false, Message: "no song matches the given filters"})
		return
	}
	writeJSON(w, http.StatusOK, domain.Envelope{OK: true, Data: songs})
}

// GetSong handles GET /api/song/{id}.
func (h *SongHandlers) GetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := songID(w, r)
	if !ok {
		return
	}

	song, err := h.service.GetSong(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if song == nil {
		writeJSON(w, http.StatusNotFound, domain.Envelope{OK: false, Message: "song not found"})
		return
	}
	writeJSON(w, http.StatusOK, domain.Envelope{OK: true, Data: song})
}

// CreateSong handles POST /api/songs.
func (h *SongHandlers) CreateSong(w http.ResponseWriter, r *http.Request) {
	var in domain.NewSong
	if err := decodeBody(w, r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Envelope{OK: false, Message: "could not process the request data"})
		return
	}

	song, err := h.service.CreateSong(r.Context(), in)
	if errors.Is(err, service.ErrInvalidSong) {
		writeJSON(w, http.StatusBadRequest, domain.Envelope{OK: false, Message: "invalid song data"})
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain.Envelope{OK: true, Message: "song created successfully", Data: song})
}

// UpdateSong handles PATCH and PUT /api/song/{id}. Both merge the given fields.
func (h *SongHandlers) UpdateSong(w http.ResponseWriter, r *http.Request) {
	id, ok := songID(w, r)
	if !ok {
		return
	}

	// A missing song is reported before the body is looked at.
	existing, err := h.service.GetSong(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, domain.Envelope{OK: false, Message: "song not found"})
		return
	}

	var patch domain.SongPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Envelope{OK: false, Message: "could not process the request data"})
		return
	}

	song, err := h.service.UpdateSong(r.Context(), id, patch)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if song == nil {
		writeJSON(w, http.StatusNotFound, domain.Envelope{OK: false, Message: "song not found"})
		return
	}
	writeJSON(w, http.StatusOK, domain.Envelope{OK: true, Data: song})
}

// DeleteSong handles DELETE /api/song/{id}.
func (h *SongHandlers) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := songID(w, r)
	if !ok {
		return
	}

	found, err := h.service.DeleteSong(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, domain.Envelope{OK: false, Message: "song not found"})
		return
	}
	writeJSON(w, http.StatusOK, domain.Envelope{OK: true, Message: "song deleted successfully"})
}

// RouteNotFound answers paths that match no API route.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, domain.RouteError{Error: true, Message: "route not found"})
}

func (h *SongHandlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("song api failure", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusInternalServerError, domain.Envelope{OK: false, Message: "internal server error"})
}

// songID parses the {id} path value, answering 400 when it is not a number.
func songID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Envelope{OK: false, Message: "invalid song id"})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing data after the JSON value is malformed input too.
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
