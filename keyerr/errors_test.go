package keyerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

func TestKeyErrorMessage(t *testing.T) {
	err := keyerr.New(keyerr.InvalidChecksum, "checksum mismatch")
	assert.Equal(t, "INVALID_CHECKSUM: checksum mismatch", err.Error())
}

func TestKeyErrorWrap(t *testing.T) {
	cause := errors.New("boom")
	err := keyerr.Wrap(keyerr.EntropyUnavailable, cause, "no entropy")
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestKeyErrorIs(t *testing.T) {
	err := keyerr.New(keyerr.InvalidPath, "bad path")
	assert.True(t, keyerr.Is(err, keyerr.InvalidPath))
	assert.False(t, keyerr.Is(err, keyerr.InvalidPoint))

	var wrapped error = keyerr.Wrap(keyerr.InvalidPath, errors.New("x"), "bad path")
	assert.True(t, errors.Is(wrapped, keyerr.New(keyerr.InvalidPath, "")))
}
