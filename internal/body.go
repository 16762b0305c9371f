package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// maxReadChunk caps a single read from the request body.
const maxReadChunk = 32 * 1024

var (
	errBodyTooLarge = errors.New("body exceeds limit")
	errBodyAborted  = errors.New("body read aborted")
)

// wantsBody reports whether the request body must be ingested.
// A declared length of zero skips ingestion; unknown length (chunked) does not.
func wantsBody(r *http.Request) bool {
	return hasBody(r.Method) && r.ContentLength != 0 && r.Body != nil && r.Body != http.NoBody
}

// bodyIngester reads and parses request bodies for one App.
type bodyIngester struct {
	cfg *Config
}

// ingest gates, reads and parses the body of r for route entry. The raw
// bytes and parsed value are returned for the context. Errors are either an
// *HTTPError to be written as-is or errBodyAborted when the client went away.
func (b bodyIngester) ingest(r *http.Request, entry *routeEntry) ([]byte, any, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType := normalizeMediaType(contentType)

	allowed := entry.allowedContentTypes(b.cfg.AllowedContentTypes)
	if !slices.Contains(allowed, mediaType) {
		return nil, nil, ErrUnsupportedMediaType(unsupportedMediaTypeMessage(r.Method, allowed, contentType))
	}

	limit := entry.effectiveMaxBodySize(b.cfg.MaxBodySize)
	if r.ContentLength > limit {
		return nil, nil, ErrPayloadTooLarge(fmt.Sprintf("%d exceeds maximum size for requests", r.ContentLength))
	}

	raw, err := readLimited(r.Context(), r.Body, limit)
	switch {
	case errors.Is(err, errBodyTooLarge):
		return nil, nil, ErrPayloadTooLarge("Payload size exceeds maximum body length", WithError(err))
	case errors.Is(err, errBodyAborted):
		return nil, nil, err
	case err != nil:
		return nil, nil, ErrBadRequest("Could not read request body", WithError(err))
	}

	if len(raw) == 0 {
		return nil, nil, nil
	}

	parse, ok := b.cfg.Parsers[mediaType]
	if !ok {
		return raw, raw, nil
	}
	var body any
	if err := parse(raw, &body); err != nil {
		return nil, nil, ErrMalformedPayload(mediaType, WithError(err))
	}
	return raw, body, nil
}

// readLimited consumes body chunk by chunk into a private buffer. Reading
// stops at the first chunk that would push the total past limit, so at most
// one chunk beyond the limit is ever pulled from the connection.
func readLimited(ctx context.Context, body io.Reader, limit int64) ([]byte, error) {
	size := int64(maxReadChunk)
	if limit+1 < size {
		size = limit + 1
	}
	chunk := make([]byte, size)

	var buf bytes.Buffer
	for {
		if ctx.Err() != nil {
			return nil, errBodyAborted
		}

		n, err := body.Read(chunk)
		if n > 0 {
			if int64(n) > limit || int64(buf.Len())+int64(n) > limit {
				return nil, errBodyTooLarge
			}
			buf.Write(chunk[:n])
		}

		switch {
		case errors.Is(err, io.EOF):
			return buf.Bytes(), nil
		case err != nil && ctx.Err() != nil:
			return nil, errBodyAborted
		case err != nil:
			return nil, err
		}
	}
}

// unsupportedMediaTypeMessage names the offending content type.
func unsupportedMediaTypeMessage(method string, allowed []string, got string) string {
	if got == "" {
		got = "undefined"
	}
	return fmt.Sprintf("%s requests must be %s not %s", method, strings.Join(allowed, " or "), got)
}
