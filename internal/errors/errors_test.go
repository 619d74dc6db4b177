package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstream(t *testing.T) {
	err := Upstream("disk full")

	assert.Equal(t, ErrUpstream, err.Kind)
	assert.Equal(t, "disk full", err.Message)
	assert.Nil(t, err.Err)
	assert.Equal(t, "disk full", err.Error())
}

func TestTransport(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport(cause)

	assert.Equal(t, ErrTransport, err.Kind)
	assert.Equal(t, "failed to reach scores API: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestTransportf(t *testing.T) {
	err := Transportf("scores API returned status %d", 502)

	assert.Equal(t, ErrTransport, err.Kind)
	assert.Equal(t, "scores API returned status 502", err.Error())
}

func TestDecode(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Decode(cause)

	assert.Equal(t, ErrDecode, err.Kind)
	assert.Equal(t, "invalid response body: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "response missing data", Decodef("response missing %s", "data").Error())
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInputf("unknown page %q", "admin")

	assert.Equal(t, ErrInvalidInput, err.Kind)
	assert.Equal(t, `unknown page "admin"`, err.Message)
}

func TestInternal(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)

	assert.Equal(t, ErrInternal, err.Kind)
	assert.Equal(t, "internal error: boom", err.Error())
	assert.Equal(t, "template missing", Internalf("template %s", "missing").Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("eof")
	err := Wrap(cause, ErrDecode, "reading body")

	assert.Equal(t, ErrDecode, err.Kind)
	assert.Equal(t, "reading body: eof", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", Upstream("db down"))

	assert.Equal(t, ErrUpstream, KindOf(wrapped))
	assert.Equal(t, ErrInternal, KindOf(errors.New("plain")))
	assert.True(t, IsUpstream(wrapped))
	assert.False(t, IsUpstream(nil))
	assert.False(t, IsUpstream(Transport(errors.New("x"))))
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "db down", UserMessage(fmt.Errorf("ctx: %w", Upstream("db down"))))
	require.Equal(t, "failed to reach scores API: refused", UserMessage(Transport(errors.New("refused"))))
	require.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		ErrInternal:     "internal",
		ErrUpstream:     "upstream",
		ErrTransport:    "transport",
		ErrDecode:       "decode",
		ErrInvalidInput: "invalid_input",
	}
	for kind, expected := range tests {
		assert.Equal(t, expected, kind.String())
	}
}
