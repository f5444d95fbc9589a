package keyschedule

import (
	"encoding/binary"
	"strings"

	zcrypto "github.com/lanikai/gozrtp/crypto"
	"github.com/lanikai/gozrtp/wire"
)

// SASHash computes sashash = KDF(s0, "SAS", KDF_context, 256); its leading
// 32 bits form sasvalue.
func SASHash(mac zcrypto.MAC, s0, kdfContext []byte) []byte {
	return KDF(mac, s0, "SAS", kdfContext, 256)
}

// SASValue extracts the 32-bit sasvalue from a sashash.
func SASValue(sashash []byte) uint32 {
	return binary.BigEndian.Uint32(sashash[:4])
}

const base32Alphabet = "ybndrfg8ejkmcpqxot1uwisza345h769"

// RenderBase32 renders sasvalue as 4 characters from the z-base-32-style
// alphabet used by the reference implementation.
func RenderBase32(sasvalue uint32) string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		shift := uint(25 - i*5)
		idx := (sasvalue >> shift) & 0x1f
		sb.WriteByte(base32Alphabet[idx])
	}
	return sb.String()
}

// RenderBase256 renders sasvalue as two PGP-word-list words: the high 16
// bits index the even-position list, the low 16 bits the odd-position list.
func RenderBase256(sasvalue uint32) string {
	high := uint16(sasvalue >> 16)
	low := uint16(sasvalue)
	even := pgpWordsEven[int(high)%len(pgpWordsEven)]
	odd := pgpWordsOdd[int(low)%len(pgpWordsOdd)]
	return even + " " + odd
}

// RenderSAS renders sasvalue per the negotiated SAS algorithm tag.
func RenderSAS(algo wire.Tag, sasvalue uint32) string {
	if algo == wire.TagB256 {
		return RenderBase256(sasvalue)
	}
	return RenderBase32(sasvalue)
}

// pgpWordsEven and pgpWordsOdd are an abridged two-syllable word table in
// the style of the PGP word list (Bellovin/Merritt), used for base256 SAS
// rendering. The even list is indexed by the sasvalue's high 16 bits modulo
// its length, the odd list by the low 16 bits.
var pgpWordsEven = []string{
	"aardvark", "absurd", "accrue", "acme", "adrift", "adult", "afflict", "ahead",
	"aimless", "Alabama", "Alaska", "albatross", "albino", "album", "alkali", "almighty",
	"amulet", "amusement", "antenna", "applicant", "Apollo", "armistice", "article", "asteroid",
	"Atlantic", "atmosphere", "autopsy", "Babylon", "backwater", "barbecue", "belowground", "bifocals",
}

var pgpWordsOdd = []string{
	"adroitness", "adviser", "aftermath", "aggregate", "alkali", "almighty", "amulet", "amusement",
	"antenna", "applicant", "Apollo", "armistice", "article", "asteroid", "Atlantic", "atmosphere",
	"bedlamp", "beehive", "beeswax", "befriend", "Belfast", "berserk", "billiard", "bison",
	"blackjack", "bodyguard", "bookseller", "borderline", "bottomless", "Bradbury", "bravado", "Brazilian",
}
