package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256HasherSizeAndDeterminism(t *testing.T) {
	var h SHA256Hasher
	assert.Equal(t, 32, h.Size())

	a := h.Sum([]byte("zrtp"))
	b := h.Sum([]byte("zrtp"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, h.Sum([]byte("zrtq")))
}

func TestSHA384HasherSizeAndDeterminism(t *testing.T) {
	var h SHA384Hasher
	assert.Equal(t, 48, h.Size())

	a := h.Sum([]byte("zrtp"))
	b := h.Sum([]byte("zrtp"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 48)
}

func TestHMACMacVariesByKey(t *testing.T) {
	mac := NewHMACSHA256()
	data := []byte("confirm mac input")

	a := mac.Sum([]byte("key-one"), data)
	b := mac.Sum([]byte("key-two"), data)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32)
}

func TestHMACSHA384LongerOutput(t *testing.T) {
	mac := NewHMACSHA384()
	sum := mac.Sum([]byte("key"), []byte("data"))
	assert.Len(t, sum, 48)
}
