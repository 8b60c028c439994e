// Path: internal/static/responder.go
package static

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	headerContentType        = "Content-Type"
	headerContentLength      = "Content-Length"
	headerContentRange       = "Content-Range"
	headerContentDisposition = "Content-Disposition"
	headerAcceptRanges       = "Accept-Ranges"
	headerRange              = "Range"
)

// serveSmall reads the whole file into memory and writes it in one response.
func (h *Handler) serveSmall(w *trackingWriter, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		h.serverError(w, err.Error())
		return
	}

	hdr := w.Header()
	hdr.Set(headerContentType, ContentType(path))
	hdr.Set(headerContentLength, strconv.Itoa(len(content)))
	if !rendersInline(path) {
		hdr.Set(headerContentDisposition, attachment(filepath.Base(path)))
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Debug("writing file aborted", "path", path, "error", err)
	}
}

// serveLarge streams the file, honoring a single-window Range header.
func (h *Handler) serveLarge(w *trackingWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		h.serverError(w, err.Error())
		return
	}
	// Closed on every exit, including a client that disconnects mid-stream.
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.serverError(w, err.Error())
		return
	}
	size := info.Size()

	rng, partial, err := parseRange(r.Header.Get(headerRange), size)
	if err != nil {
		h.logger.Info("unsatisfiable range", "path", path, "range", r.Header.Get(headerRange), "size", size)
		hdr := w.Header()
		hdr.Set(headerContentRange, "bytes */"+strconv.FormatInt(size, 10))
		hdr.Set(headerContentType, "text/plain")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		io.WriteString(w, "416 Range Not Satisfiable")
		return
	}

	status := http.StatusOK
	if !partial {
		rng = byteRange{start: 0, end: size - 1}
	} else {
		status = http.StatusPartialContent
		if _, err := f.Seek(rng.start, io.SeekStart); err != nil {
			h.serverError(w, err.Error())
			return
		}
	}

	hdr := w.Header()
	hdr.Set(headerContentType, ContentType(path))
	hdr.Set(headerAcceptRanges, "bytes")
	hdr.Set(headerContentLength, strconv.FormatInt(rng.length(), 10))
	if partial {
		hdr.Set(headerContentRange, rng.contentRange(size))
	}

	w.WriteHeader(status)
	n, err := io.CopyN(w, f, rng.length())
	if err != nil {
		h.logger.Debug("stream aborted", "path", path, "sent", n, "want", rng.length(), "error", err)
	}
}

// notFound answers 404 with the configured page, or plain text if it cannot be read.
func (h *Handler) notFound(w *trackingWriter) {
	if w.started {
		h.logger.Warn("attempted to send 404, but headers already sent")
		return
	}

	if h.notFoundPage != "" {
		page, err := os.ReadFile(filepath.Join(h.root, h.notFoundPage))
		if err == nil {
			w.Header().Set(headerContentType, "text/html")
			w.Header().Set(headerContentLength, strconv.Itoa(len(page)))
			w.WriteHeader(http.StatusNotFound)
			w.Write(page)
			return
		}
	}
	writePlain(w, http.StatusNotFound, "404 Not Found")
}

// serverError answers 500 with a JSON body carrying message.
func (h *Handler) serverError(w *trackingWriter, message string) {
	if w.started {
		h.logger.Warn("attempted to send server error, but headers already sent", "message", message)
		return
	}

	body, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{message})
	w.Header().Set(headerContentType, "application/json")
	w.Header().Set(headerContentLength, strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(body)
}

func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set(headerContentType, "text/plain")
	w.Header().Set(headerContentLength, strconv.Itoa(len(body)))
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// attachment builds a Content-Disposition value with a quoted filename.
func attachment(name string) string {
	name = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
	return `attachment; filename="` + name + `"`
}
