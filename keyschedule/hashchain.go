package keyschedule

import (
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
)

// HashChain holds one channel's self-generated H0..H3 commitment chain.
// H(x) is always SHA-256 regardless of the negotiated hash algorithm,
// per spec.md §4.2.
type HashChain struct {
	H0, H1, H2, H3 [32]byte
}

// NewHashChain draws H0 from rng and derives H1=H(H0), H2=H(H1), H3=H(H2).
func NewHashChain(rng io.Reader) (*HashChain, error) {
	c := &HashChain{}
	if _, err := io.ReadFull(rng, c.H0[:]); err != nil {
		return nil, errors.Wrap(err, "keyschedule: drawing H0")
	}
	c.H1 = sha256.Sum256(c.H0[:])
	c.H2 = sha256.Sum256(c.H1[:])
	c.H3 = sha256.Sum256(c.H2[:])
	return c, nil
}

// PeerChain tracks the peer's hash images as they are progressively
// revealed across Hello/Commit/DHPart/Confirm.
type PeerChain struct {
	H0, H1, H2, H3 [32]byte
	haveH0, haveH1, haveH2, haveH3 bool
}

// RevealH3 records the peer's H3, sent in Hello.
func (p *PeerChain) RevealH3(h3 [32]byte) {
	p.H3 = h3
	p.haveH3 = true
}

// Reveal checks that hashing image forward reaches the nearest
// higher-numbered image already confirmed, then records image at its own
// step. step is 2 for a Commit's H2, 1 for a DHPart's H1, 0 for a Confirm's
// H0. A party that never sends the message carrying an intermediate step
// (a responder's Commit in DH mode, or a Multi/Preshared mode's DHPart)
// simply never reveals it; the next reveal hashes forward however many
// steps are needed to reach the last confirmed image, per spec.md §3's
// deterministic chain (H3=H(H2)=H(H(H1))=H(H(H(H0)))).
func (p *PeerChain) Reveal(step int, image [32]byte) error {
	var fromStep int
	var want [32]byte
	switch step {
	case 2:
		if !p.haveH3 {
			return errors.New("keyschedule: no H3 known before revealing H2")
		}
		fromStep, want = 3, p.H3
	case 1:
		switch {
		case p.haveH2:
			fromStep, want = 2, p.H2
		case p.haveH3:
			fromStep, want = 3, p.H3
		default:
			return errors.New("keyschedule: no higher hash-chain image known before revealing H1")
		}
	case 0:
		switch {
		case p.haveH1:
			fromStep, want = 1, p.H1
		case p.haveH2:
			fromStep, want = 2, p.H2
		case p.haveH3:
			fromStep, want = 3, p.H3
		default:
			return errors.New("keyschedule: no higher hash-chain image known before revealing H0")
		}
	default:
		return errors.Errorf("keyschedule: invalid hash-chain step %d", step)
	}

	got := image
	for i := 0; i < fromStep-step; i++ {
		got = sha256.Sum256(got[:])
	}
	if got != want {
		return errors.Errorf("keyschedule: H%d does not hash forward to stored H%d", step, fromStep)
	}

	switch step {
	case 2:
		p.H2, p.haveH2 = image, true
	case 1:
		p.H1, p.haveH1 = image, true
	case 0:
		p.H0, p.haveH0 = image, true
	}
	return nil
}
