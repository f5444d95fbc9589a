package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, HeaderLength)
	h := Header{Fragmented: false, SequenceNumber: 42, SSRC: 0xdeadbeef}
	EncodeHeader(buf, h)

	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderFragmentedFlag(t *testing.T) {
	buf := make([]byte, HeaderLength)
	EncodeHeader(buf, Header{Fragmented: true, SequenceNumber: 1, SSRC: 1})
	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.True(t, got.Fragmented)
}

func TestDecodeHeaderBadMagicCookie(t *testing.T) {
	buf := make([]byte, HeaderLength)
	EncodeHeader(buf, Header{SequenceNumber: 1, SSRC: 1})
	buf[4] ^= 0xff
	_, err := DecodeHeader(buf)
	assert.Error(t, err)
}

func TestDecodeHeaderBadPreamble(t *testing.T) {
	buf := make([]byte, HeaderLength)
	EncodeHeader(buf, Header{SequenceNumber: 1, SSRC: 1})
	buf[0] = 0x00
	_, err := DecodeHeader(buf)
	assert.Error(t, err)
}

func TestCRCRoundTrip(t *testing.T) {
	packet := make([]byte, HeaderLength)
	EncodeHeader(packet, Header{SequenceNumber: 1, SSRC: 7})
	full := AppendCRC(packet)
	assert.True(t, VerifyCRC(full))

	full[5] ^= 0xff // corrupt a header byte after CRC is appended
	assert.False(t, VerifyCRC(full))
}

func TestSetSequenceNumberPreservesBody(t *testing.T) {
	packet := make([]byte, HeaderLength)
	EncodeHeader(packet, Header{SequenceNumber: 1, SSRC: 7})
	body := []byte{1, 2, 3, 4}
	packet = append(packet, body...)
	full := AppendCRC(packet)

	require.NoError(t, SetSequenceNumber(full, 99))
	assert.True(t, VerifyCRC(full))

	got, err := DecodeHeader(full)
	require.NoError(t, err)
	assert.EqualValues(t, 99, got.SequenceNumber)
	assert.Equal(t, body, full[HeaderLength:HeaderLength+len(body)])
}
