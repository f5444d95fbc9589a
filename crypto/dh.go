package crypto

import (
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/curve25519"
)

// FiniteFieldDH implements classic Diffie-Hellman over one of the RFC 3526
// MODP groups (DH-3072, DH-4096), the mandatory ZRTP key-agreement
// category.
type FiniteFieldDH struct {
	p       *big.Int
	g       *big.Int
	byteLen int
}

// NewDH3072 returns the RFC 3526 3072-bit MODP group (group 15).
func NewDH3072() *FiniteFieldDH { return newFiniteFieldDH(modp3072Hex, 2) }

// NewDH4096 returns the RFC 3526 4096-bit MODP group (group 16).
func NewDH4096() *FiniteFieldDH { return newFiniteFieldDH(modp4096Hex, 2) }

func newFiniteFieldDH(pHex string, g int64) *FiniteFieldDH {
	p, ok := new(big.Int).SetString(pHex, 16)
	if !ok {
		panic("crypto: invalid MODP prime literal")
	}
	return &FiniteFieldDH{p: p, g: big.NewInt(g), byteLen: (p.BitLen() + 7) / 8}
}

func (dh *FiniteFieldDH) PublicValueLength() int { return dh.byteLen }

func (dh *FiniteFieldDH) GenerateKeyPair(rng io.Reader) (private, public []byte, err error) {
	// Private exponent: random value in [2, p-2], sized the same as p.
	buf := make([]byte, dh.byteLen)
	if _, err = io.ReadFull(rng, buf); err != nil {
		return nil, nil, err
	}
	x := new(big.Int).SetBytes(buf)
	x.Mod(x, new(big.Int).Sub(dh.p, big.NewInt(3)))
	x.Add(x, big.NewInt(2))

	y := new(big.Int).Exp(dh.g, x, dh.p)

	private = x.FillBytes(make([]byte, dh.byteLen))
	public = y.FillBytes(make([]byte, dh.byteLen))
	return private, public, nil
}

func (dh *FiniteFieldDH) SharedSecret(private, peerPublic []byte) ([]byte, error) {
	if dh.IsWeak(peerPublic) {
		return nil, fmt.Errorf("crypto: peer DH public value is weak (1 or p-1)")
	}
	x := new(big.Int).SetBytes(private)
	y := new(big.Int).SetBytes(peerPublic)
	z := new(big.Int).Exp(y, x, dh.p)
	return z.FillBytes(make([]byte, dh.byteLen)), nil
}

// IsWeak rejects the two public values that collapse the shared secret to a
// fixed point: 1 and p-1. The reference implementation omits this check
// (spec.md §9); RFC 6189 requires it.
func (dh *FiniteFieldDH) IsWeak(peerPublic []byte) bool {
	y := new(big.Int).SetBytes(peerPublic)
	if y.Cmp(big.NewInt(1)) == 0 {
		return true
	}
	pMinus1 := new(big.Int).Sub(dh.p, big.NewInt(1))
	return y.Cmp(pMinus1) == 0
}

// ECDH25519 implements Curve25519-based ECDH (ZRTP's EC25 category) using
// golang.org/x/crypto/curve25519, which the teacher's go.mod already pulls
// in transitively (golang.org/x/crypto) but never calls.
type ECDH25519 struct{}

func (ECDH25519) PublicValueLength() int { return 32 }

func (ECDH25519) GenerateKeyPair(rng io.Reader) (private, public []byte, err error) {
	private = make([]byte, curve25519.ScalarSize)
	if _, err = io.ReadFull(rng, private); err != nil {
		return nil, nil, err
	}
	public, err = curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return nil, nil, err
	}
	return private, public, nil
}

func (ECDH25519) SharedSecret(private, peerPublic []byte) ([]byte, error) {
	if (ECDH25519{}).IsWeak(peerPublic) {
		return nil, fmt.Errorf("crypto: peer ECDH25519 public value is low-order")
	}
	return curve25519.X25519(private, peerPublic)
}

// IsWeak rejects the all-zero low-order point, the curve25519 analog of
// finite-field DH's 1/p-1 check (spec.md §9's missing-check note).
func (ECDH25519) IsWeak(peerPublic []byte) bool {
	var zero [32]byte
	if len(peerPublic) != 32 {
		return true
	}
	allZero := true
	for i, b := range peerPublic {
		if b != zero[i] {
			allZero = false
			break
		}
	}
	return allZero
}

// RFC 3526 group 15 (3072-bit MODP).
const modp3072Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"

// RFC 3526 group 16 (4096-bit MODP).
const modp4096Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E208E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D788719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA993B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199FFFFFFFFFFFFFFFF"
