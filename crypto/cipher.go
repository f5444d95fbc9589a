package crypto

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/twofish"

	"github.com/lanikai/gozrtp/internal/aes"
)

// AESCipher wraps the teacher's internal/aes block-cipher constructor
// (crypto/aes under the hood) in CFB mode, as used to encrypt the ZRTP
// Confirm message body.
type AESCipher struct {
	keySize int
}

// NewAES128Cipher returns an AES-128-CFB BlockCipher.
func NewAES128Cipher() *AESCipher { return &AESCipher{keySize: 16} }

// NewAES256Cipher returns an AES-256-CFB BlockCipher.
func NewAES256Cipher() *AESCipher { return &AESCipher{keySize: 32} }

func (c *AESCipher) KeySize() int   { return c.keySize }
func (c *AESCipher) BlockSize() int { return aes.BlockSize }

func (c *AESCipher) EncryptCFB(dst, src, key, iv []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("aes: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("aes: invalid IV length %d", len(iv))
	}
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(dst, src)
	return nil
}

func (c *AESCipher) DecryptCFB(dst, src, key, iv []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("aes: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("aes: invalid IV length %d", len(iv))
	}
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(dst, src)
	return nil
}

// TwoFishCipher implements the RFC 6189 TwoFish cipher option via
// golang.org/x/crypto/twofish, the CFB-mode block cipher the teacher's
// go.mod pulls in under golang.org/x/crypto but never calls.
type TwoFishCipher struct {
	keySize int
}

func NewTwoFish128Cipher() *TwoFishCipher { return &TwoFishCipher{keySize: 16} }
func NewTwoFish256Cipher() *TwoFishCipher { return &TwoFishCipher{keySize: 32} }

func (c *TwoFishCipher) KeySize() int   { return c.keySize }
func (c *TwoFishCipher) BlockSize() int { return twofish.BlockSize }

func (c *TwoFishCipher) EncryptCFB(dst, src, key, iv []byte) error {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return fmt.Errorf("twofish: %w", err)
	}
	if len(iv) != twofish.BlockSize {
		return fmt.Errorf("twofish: invalid IV length %d", len(iv))
	}
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(dst, src)
	return nil
}

func (c *TwoFishCipher) DecryptCFB(dst, src, key, iv []byte) error {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return fmt.Errorf("twofish: %w", err)
	}
	if len(iv) != twofish.BlockSize {
		return fmt.Errorf("twofish: invalid IV length %d", len(iv))
	}
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(dst, src)
	return nil
}
