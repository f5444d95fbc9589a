package keyschedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	zcrypto "github.com/lanikai/gozrtp/crypto"
	"github.com/lanikai/gozrtp/wire"
)

func TestSASHashAndValueDeterministic(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	s0 := []byte("s0-material")
	ctx := []byte("ctx")

	h1 := SASHash(mac, s0, ctx)
	h2 := SASHash(mac, s0, ctx)
	assert.Equal(t, h1, h2)
	assert.Equal(t, SASValue(h1), SASValue(h2))
}

func TestRenderBase32FourChars(t *testing.T) {
	s := RenderBase32(0x12345678)
	assert.Len(t, s, 4)
	for _, c := range s {
		assert.Contains(t, base32Alphabet, string(c))
	}
}

func TestRenderBase256TwoWords(t *testing.T) {
	s := RenderBase256(0x00010002)
	assert.Equal(t, pgpWordsEven[1]+" "+pgpWordsOdd[2], s)
}

func TestRenderSASDispatchesByAlgo(t *testing.T) {
	assert.Len(t, RenderSAS(wire.TagB32, 1), 4)
	assert.Contains(t, RenderSAS(wire.TagB256, 1), " ")
}
