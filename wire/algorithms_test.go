package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagFromStringPadsAndRoundTrips(t *testing.T) {
	tag := TagFromString("AES1")
	assert.Equal(t, "AES1", tag.String())
	assert.Equal(t, TagAES1, tag)
}

func TestTagFromStringTruncatesOverlong(t *testing.T) {
	tag := TagFromString("TOOLONG")
	assert.Len(t, tag, 4)
}

func TestMessageTypePadsWithSpaces(t *testing.T) {
	assert.Equal(t, "Hello   ", MsgHello.String())
	assert.Equal(t, "Commit  ", MsgCommit.String())
	assert.Equal(t, "Conf2ACK", MsgConf2ACK.String())
}

func TestMessageTypesAreDistinct(t *testing.T) {
	all := []MessageType{
		MsgHello, MsgHelloACK, MsgCommit, MsgDHPart1, MsgDHPart2,
		MsgConfirm1, MsgConfirm2, MsgConf2ACK, MsgError, MsgErrorACK,
		MsgGoClear, MsgClearACK, MsgPing, MsgPingACK, MsgSASrelay,
	}
	seen := make(map[MessageType]bool)
	for _, m := range all {
		assert.False(t, seen[m], "duplicate message type %q", m)
		seen[m] = true
	}
}
