package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

func TestCheckEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	s := encoding.CheckEncode(payload)
	decoded, err := encoding.CheckDecode(s)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCheckDecodeInvalidChecksum(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	s := encoding.CheckEncode(payload)
	tampered := []byte(s)
	// Flip a middle character to something else in the alphabet.
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err := encoding.CheckDecode(string(tampered))
	require.Error(t, err)
	assert.True(t, keyerr.Is(err, keyerr.InvalidChecksum))
}

func TestCheckDecodeInvalidCharacter(t *testing.T) {
	_, err := encoding.CheckDecode("0OIl")
	require.Error(t, err)
	assert.True(t, keyerr.Is(err, keyerr.UnrecognizedFormat))
}

func TestCheckDecodeEmpty(t *testing.T) {
	_, err := encoding.CheckDecode("")
	require.Error(t, err)
	assert.True(t, keyerr.Is(err, keyerr.UnrecognizedFormat))
}

func TestLeadingZeroPreserved(t *testing.T) {
	payload := []byte{0x00, 0x00, 0xAB, 0xCD}
	s := encoding.CheckEncode(payload)
	assert.Equal(t, byte('1'), s[0])
	assert.Equal(t, byte('1'), s[1])

	decoded, err := encoding.CheckDecode(s)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}
