package crypto

// AlgoTag mirrors wire.Tag's underlying representation without importing
// the wire package, so crypto stays a leaf dependency.
type AlgoTag [4]byte

var (
	tagDH3k = AlgoTag{'D', 'H', '3', 'k'}
	tagDH4k = AlgoTag{'D', 'H', '4', 'k'}
	tagEC25 = AlgoTag{'E', 'C', '2', '5'}
	tagAES1 = AlgoTag{'A', 'E', 'S', '1'}
	tagAES3 = AlgoTag{'A', 'E', 'S', '3'}
	tag2FS1 = AlgoTag{'2', 'F', 'S', '1'}
	tag2FS3 = AlgoTag{'2', 'F', 'S', '3'}
)

// KeyAgreementFor returns the KeyAgreement implementation for a negotiated
// DH/EC algorithm tag. Any other tag, including Multi/Preshared (which skip
// key agreement entirely), yields DH-3072; the result is never nil.
func KeyAgreementFor(tag AlgoTag) KeyAgreement {
	switch tag {
	case tagDH4k:
		return NewDH4096()
	case tagEC25:
		return ECDH25519{}
	case tagDH3k:
		return NewDH3072()
	default:
		return NewDH3072()
	}
}

// CipherFor returns the BlockCipher implementation for a negotiated cipher
// tag.
func CipherFor(tag AlgoTag) BlockCipher {
	switch tag {
	case tagAES3:
		return NewAES256Cipher()
	case tag2FS1:
		return NewTwoFish128Cipher()
	case tag2FS3:
		return NewTwoFish256Cipher()
	default:
		return NewAES128Cipher()
	}
}
