package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// streamResponse copies a byte stream to the client.
type streamResponse struct {
	body    io.ReadCloser
	status  int
	size    int64
	headers http.Header
}

// StreamOption configures a stream response.
type StreamOption func(*streamResponse)

// WithContentType sets the Content-Type header. Defaults to application/octet-stream.
func WithContentType(contentType string) StreamOption {
	return func(s *streamResponse) {
		if contentType != "" {
			s.headers.Set("Content-Type", contentType)
		}
	}
}

// WithContentLength sets Content-Length when size is known (non-negative).
func WithContentLength(size int64) StreamOption {
	return func(s *streamResponse) {
		s.size = size
	}
}

// WithInlineFilename sets an RFC 5987 encoded inline Content-Disposition.
func WithInlineFilename(filename string) StreamOption {
	return func(s *streamResponse) {
		s.headers.Set("Content-Disposition", ContentDisposition("inline", filename))
	}
}

// WithHeader sets an arbitrary response header. Empty values are ignored.
func WithHeader(key, value string) StreamOption {
	return func(s *streamResponse) {
		if value != "" {
			s.headers.Set(key, value)
		}
	}
}

// Stream creates a response that copies body to the client and closes it.
//
// Headers are flushed before the first byte is copied, so a read error midway
// cannot be reported as a JSON error anymore. In that case Render panics with
// http.ErrAbortHandler and the server drops the connection instead of sending a
// truncated body that looks complete.
func Stream(body io.ReadCloser, opts ...StreamOption) Response {
	s := &streamResponse{
		body:    body,
		status:  http.StatusOK,
		size:    -1,
		headers: make(http.Header),
	}
	s.headers.Set("Content-Type", "application/octet-stream")

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	defer s.body.Close()

	for key, values := range s.headers {
		for _, v := range values {
			w.Header().Set(key, v)
		}
	}
	if s.size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(s.size, 10))
	}
	w.WriteHeader(s.status)

	if r.Method == http.MethodHead {
		return nil
	}

	if _, err := io.Copy(w, s.body); err != nil {
		panic(http.ErrAbortHandler)
	}

	return nil
}

// ContentDisposition formats a Content-Disposition value carrying both a plain
// ASCII filename fallback and an RFC 5987 filename* parameter, so non-ASCII
// names survive.
func ContentDisposition(disposition, filename string) string {
	if filename == "" {
		return disposition
	}

	var fallback strings.Builder
	for _, r := range filename {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			fallback.WriteByte('_')
			continue
		}
		fallback.WriteRune(r)
	}

	return fmt.Sprintf(`%s; filename="%s"; filename*=UTF-8''%s`, disposition, fallback.String(), encodeRFC5987(filename))
}

// encodeRFC5987 percent-encodes every byte outside the attr-char set.
func encodeRFC5987(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
