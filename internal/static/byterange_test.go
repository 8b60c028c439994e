package static

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	const size = 1000

	testCases := []struct {
		name    string
		header  string
		want    byteRange
		ok      bool
		wantErr bool
	}{
		{name: "absent", header: ""},
		{name: "other unit", header: "items=0-5"},
		{name: "multiple ranges", header: "bytes=0-1,5-6"},
		{name: "closed", header: "bytes=0-99", want: byteRange{0, 99}, ok: true},
		{name: "single byte", header: "bytes=5-5", want: byteRange{5, 5}, ok: true},
		{name: "open ended", header: "bytes=900-", want: byteRange{900, 999}, ok: true},
		{name: "end clamped", header: "bytes=990-5000", want: byteRange{990, 999}, ok: true},
		{name: "suffix", header: "bytes=-100", want: byteRange{900, 999}, ok: true},
		{name: "suffix larger than file", header: "bytes=-5000", want: byteRange{0, 999}, ok: true},
		{name: "spaces", header: "bytes= 10 - 20 ", want: byteRange{10, 20}, ok: true},
		{name: "start past end of file", header: "bytes=1000-", wantErr: true},
		{name: "start after end", header: "bytes=50-10", wantErr: true},
		{name: "non numeric", header: "bytes=abc-def", wantErr: true},
		{name: "signed start", header: "bytes=+5-10", wantErr: true},
		{name: "missing dash", header: "bytes=100", wantErr: true},
		{name: "empty suffix", header: "bytes=-", wantErr: true},
		{name: "zero suffix", header: "bytes=-0", wantErr: true},
		{name: "overflow", header: "bytes=99999999999999999999-", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := parseRange(tc.header, size)
			if tc.wantErr {
				if !errors.Is(err, errUnsatisfiable) {
					t.Fatalf("err = %v, want errUnsatisfiable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("range = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestByteRangeHeaders(t *testing.T) {
	r := byteRange{start: 0, end: 99}
	if r.length() != 100 {
		t.Errorf("length() = %d, want 100", r.length())
	}
	if got := r.contentRange(5000); got != "bytes 0-99/5000" {
		t.Errorf("contentRange() = %q", got)
	}
}
