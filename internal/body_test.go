package internal

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

// countingReader records how many bytes were pulled from the wire.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestReadLimited(t *testing.T) {
	t.Parallel()

	t.Run("reads a body at the limit", func(t *testing.T) {
		t.Parallel()

		raw, err := readLimited(context.Background(), strings.NewReader("12345"), 5)
		require.NoError(t, err)
		require.Equal(t, "12345", string(raw))
	})

	t.Run("stops one chunk past the limit", func(t *testing.T) {
		t.Parallel()

		src := &countingReader{r: strings.NewReader(strings.Repeat("x", 4*maxReadChunk))}
		_, err := readLimited(context.Background(), src, maxReadChunk+10)
		require.ErrorIs(t, err, errBodyTooLarge)
		require.LessOrEqual(t, src.n, 2*maxReadChunk)
	})

	t.Run("zero limit rejects any byte", func(t *testing.T) {
		t.Parallel()

		_, err := readLimited(context.Background(), strings.NewReader("a"), 0)
		require.ErrorIs(t, err, errBodyTooLarge)

		raw, err := readLimited(context.Background(), strings.NewReader(""), 0)
		require.NoError(t, err)
		require.Empty(t, raw)
	})

	t.Run("small chunks accumulate", func(t *testing.T) {
		t.Parallel()

		raw, err := readLimited(context.Background(), iotest.OneByteReader(strings.NewReader("chunked")), 100)
		require.NoError(t, err)
		require.Equal(t, "chunked", string(raw))
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := readLimited(ctx, strings.NewReader("data"), 100)
		require.ErrorIs(t, err, errBodyAborted)
	})

	t.Run("read errors surface", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection reset")
		_, err := readLimited(context.Background(), iotest.ErrReader(boom), 100)
		require.ErrorIs(t, err, boom)
	})
}

func TestUnsupportedMediaTypeMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"PATCH requests must be application/json not undefined",
		unsupportedMediaTypeMessage("PATCH", []string{"application/json"}, ""),
	)
	require.Equal(t,
		"POST requests must be application/json or application/yaml not text/html; charset=utf-8",
		unsupportedMediaTypeMessage("POST", []string{"application/json", "application/yaml"}, "text/html; charset=utf-8"),
	)
}
