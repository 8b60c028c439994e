// Path: internal/static/byterange.go
package static

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUnsatisfiable = errors.New("range not satisfiable")

// byteRange is an end-inclusive window into a file.
type byteRange struct {
	start int64
	end   int64
}

func (r byteRange) length() int64 {
	return r.end - r.start + 1
}

func (r byteRange) contentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.start, r.end, size)
}

// parseRange interprets a Range header against a file of the given size.
// It reports ok=false when the header is absent or should be ignored (another
// unit, or several ranges), and errUnsatisfiable when the window is malformed
// or lies outside the file. An end past the last byte is clamped.
func parseRange(header string, size int64) (r byteRange, ok bool, err error) {
	if header == "" {
		return byteRange{}, false, nil
	}
	rangeSet, found := strings.CutPrefix(header, "bytes=")
	if !found {
		return byteRange{}, false, nil
	}
	rangeSet = strings.TrimSpace(rangeSet)
	if strings.Contains(rangeSet, ",") {
		return byteRange{}, false, nil
	}

	startStr, endStr, found := strings.Cut(rangeSet, "-")
	if !found {
		return byteRange{}, false, errUnsatisfiable
	}
	startStr, endStr = strings.TrimSpace(startStr), strings.TrimSpace(endStr)

	// bytes=-N selects the last N bytes.
	if startStr == "" {
		n, err := parseOffset(endStr)
		if err != nil || n == 0 || size == 0 {
			return byteRange{}, false, errUnsatisfiable
		}
		n = min(n, size)
		return byteRange{start: size - n, end: size - 1}, true, nil
	}

	start, err := parseOffset(startStr)
	if err != nil || start >= size {
		return byteRange{}, false, errUnsatisfiable
	}

	end := size - 1
	if endStr != "" {
		end, err = parseOffset(endStr)
		if err != nil || end < start {
			return byteRange{}, false, errUnsatisfiable
		}
		end = min(end, size-1)
	}
	return byteRange{start: start, end: end}, true, nil
}

// parseOffset accepts only unsigned decimal digits.
func parseOffset(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
