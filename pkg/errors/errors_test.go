package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	t.Run("with code", func(t *testing.T) {
		err := &Error{Type: ErrorTypeAuth, Message: "invalid token", Code: 401}
		assert.Equal(t, "auth error (code 401): invalid token", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := Wrap(fs.ErrPermission, ErrorTypeFilesystem, "failed to write ig/posts.json")
		assert.Equal(t, "filesystem error: failed to write ig/posts.json: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, fs.ErrPermission))
	})
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeFilesystem, "nothing"))
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", New(ErrorTypeConfig, "account id is required"))

	assert.Equal(t, ErrorTypeConfig, TypeOf(wrapped))
	assert.True(t, IsType(wrapped, ErrorTypeConfig))
	assert.False(t, IsType(wrapped, ErrorTypeNetwork))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("plain")))
}

func TestIsTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", New(ErrorTypeNetwork, "timeout"), true},
		{"auth", &Error{Type: ErrorTypeAuth, Code: 401}, true},
		{"server", &Error{Type: ErrorTypeServerError, Code: 502}, true},
		{"unexpected status", &Error{Type: ErrorTypeUnknown, Code: 418}, true},
		{"parsing", New(ErrorTypeParsing, "bad json"), false},
		{"filesystem", New(ErrorTypeFilesystem, "disk full"), false},
		{"config", New(ErrorTypeConfig, "missing token"), false},
		{"plain", stderrors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransport(tt.err))
		})
	}
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, ErrorTypeAuth, TypeForStatus(401))
	assert.Equal(t, ErrorTypeAuth, TypeForStatus(403))
	assert.Equal(t, ErrorTypeNotFound, TypeForStatus(404))
	assert.Equal(t, ErrorTypeRateLimit, TypeForStatus(429))
	assert.Equal(t, ErrorTypeServerError, TypeForStatus(503))
	assert.Equal(t, ErrorTypeUnknown, TypeForStatus(400))
}
