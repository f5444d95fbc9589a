package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFragmentsReassemble(t *testing.T) {
	message := make([]byte, 500)
	for i := range message {
		message[i] = byte(i)
	}
	header := Header{SSRC: 42}

	fragments, err := BuildFragments(7, message, header, 150)
	require.NoError(t, err)
	require.Greater(t, len(fragments), 1)

	var r Reassembler
	var got []byte
	for _, packet := range fragments {
		require.True(t, VerifyCRC(packet))
		h, err := DecodeHeader(packet)
		require.NoError(t, err)
		require.True(t, h.Fragmented)

		body := packet[HeaderLength : len(packet)-CRCLength]
		fh, payload, err := DecodeFragment(body)
		require.NoError(t, err)

		complete, err := r.Add(fh, payload)
		require.NoError(t, err)
		if complete != nil {
			got = complete
		}
	}
	assert.Equal(t, message, got)
}

func TestReassemblerOutOfOrderFragments(t *testing.T) {
	message := make([]byte, 300)
	for i := range message {
		message[i] = byte(i)
	}
	fragments, err := BuildFragments(1, message, Header{SSRC: 1}, 120)
	require.NoError(t, err)
	require.Greater(t, len(fragments), 2)

	// Feed fragments in reverse order.
	var r Reassembler
	var got []byte
	for i := len(fragments) - 1; i >= 0; i-- {
		body := fragments[i][HeaderLength : len(fragments[i])-CRCLength]
		fh, payload, err := DecodeFragment(body)
		require.NoError(t, err)
		complete, err := r.Add(fh, payload)
		require.NoError(t, err)
		if complete != nil {
			got = complete
		}
	}
	assert.Equal(t, message, got)
}

func TestReassemblerHigherMessageIDDiscardsPrior(t *testing.T) {
	var r Reassembler
	_, err := r.Add(FragmentHeader{MessageID: 1, Offset: 0, FragmentLen: 2, TotalLength: 4}, []byte{1, 2})
	require.NoError(t, err)

	// A higher message id arrives before the first finished; it should win.
	complete, err := r.Add(FragmentHeader{MessageID: 2, Offset: 0, FragmentLen: 4, TotalLength: 4}, []byte{9, 9, 9, 9})
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9, 9}, complete)
}

func TestReassemblerRejectsStaleMessageID(t *testing.T) {
	var r Reassembler
	_, err := r.Add(FragmentHeader{MessageID: 5, Offset: 0, FragmentLen: 2, TotalLength: 4}, []byte{1, 2})
	require.NoError(t, err)

	_, err = r.Add(FragmentHeader{MessageID: 4, Offset: 0, FragmentLen: 2, TotalLength: 2}, []byte{1, 2})
	assert.Error(t, err)
}

func TestBuildFragmentsRejectsTinyMTU(t *testing.T) {
	_, err := BuildFragments(1, []byte{1, 2, 3}, Header{}, 10)
	assert.Error(t, err)
}
