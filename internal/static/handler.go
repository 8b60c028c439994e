// Path: internal/static/handler.go

// Package static serves files from a public root directory. Files up to a
// size threshold are sent whole; larger files are streamed and accept
// single-window Range requests.
package static

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"music-server/internal/config"
)

const indexFile = "index.html"

var (
	errOutsideRoot = errors.New("path escapes the public root")
	errBadPath     = errors.New("malformed path")
)

// Handler resolves request paths under the public root and writes the file response.
type Handler struct {
	root         string
	threshold    int64
	notFoundPage string
	faultPattern string
	logger       *slog.Logger
}

// NewHandler creates a static file handler. The public root is made absolute
// once, so later changes of the working directory do not affect it.
func NewHandler(cfg config.StaticConfig, logger *slog.Logger) (*Handler, error) {
	if cfg.StreamingThresholdBytes <= 0 {
		return nil, fmt.Errorf("streaming threshold must be positive, got %d", cfg.StreamingThresholdBytes)
	}
	root, err := filepath.Abs(cfg.PublicRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving public root %q: %w", cfg.PublicRoot, err)
	}
	return &Handler{
		root:         root,
		threshold:    cfg.StreamingThresholdBytes,
		notFoundPage: cfg.NotFoundPage,
		faultPattern: cfg.FaultPattern,
		logger:       logger,
	}, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	w := &trackingWriter{ResponseWriter: rw}

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writePlain(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	filePath, rel, err := h.resolve(r.URL.Path)
	switch {
	case errors.Is(err, errOutsideRoot):
		h.logger.Warn("path traversal rejected", "path", r.URL.Path)
		writePlain(w, http.StatusForbidden, "403 Forbidden")
		return
	case err != nil:
		writePlain(w, http.StatusBadRequest, "400 Bad Request")
		return
	}

	if h.faultPattern != "" && strings.Contains(rel, h.faultPattern) {
		h.serverError(w, "Intentional Server Error")
		return
	}

	info, err := os.Stat(filePath)
	if err != nil {
		h.notFound(w)
		return
	}

	if info.IsDir() {
		filePath = filepath.Join(filePath, indexFile)
		if info, err = os.Stat(filePath); err != nil {
			h.notFound(w)
			return
		}
	}

	if !info.Mode().IsRegular() {
		h.notFound(w)
		return
	}

	if info.Size() > h.threshold {
		h.serveLarge(w, r, filePath)
	} else {
		h.serveSmall(w, filePath)
	}
}

// resolve joins the URL path onto the public root. It returns the absolute
// file path and the same path relative to the root.
func (h *Handler) resolve(urlPath string) (string, string, error) {
	if strings.IndexByte(urlPath, 0) >= 0 {
		return "", "", errBadPath
	}

	full := filepath.Join(h.root, filepath.FromSlash(urlPath))
	rel, err := filepath.Rel(h.root, full)
	if err != nil {
		return "", "", errBadPath
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", errOutsideRoot
	}
	return full, rel, nil
}
