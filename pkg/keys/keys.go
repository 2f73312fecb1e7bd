// Package keys handles secp256k1 key material: parsing, generation and
// public key serialization.
package keys

import (
	"crypto/subtle"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

const (
	// PrivateKeySize is the length of a serialized private scalar.
	PrivateKeySize = 32
	// CompressedSize is the length of a compressed public key.
	CompressedSize = btcec.PubKeyBytesLenCompressed
	// UncompressedSize is the length of an uncompressed public key.
	UncompressedSize = 65

	markerEven         = 0x02
	markerOdd          = 0x03
	markerUncompressed = 0x04
)

// PrivateKey is a secp256k1 scalar in the range [1, n).
type PrivateKey struct {
	key *btcec.PrivateKey
}

// PublicKey is a point on the secp256k1 curve.
type PublicKey struct {
	key *btcec.PublicKey
}

// ParsePrivateKey parses a fixed-width 32-byte big-endian scalar.
func ParsePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	return privateKeyFromScalar(b)
}

// privateKeyFromScalar accepts a big-endian scalar of at most 32 bytes,
// left-padding shorter encodings.
func privateKeyFromScalar(b []byte) (*PrivateKey, error) {
	if len(b) > PrivateKeySize {
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "private scalar too long: %d bytes", len(b))
	}

	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "private scalar is not below the curve order")
	}
	if s.IsZero() {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "private scalar is zero")
	}

	var padded [PrivateKeySize]byte
	copy(padded[PrivateKeySize-len(b):], b)
	priv, _ := btcec.PrivKeyFromBytes(padded[:])
	zero(padded[:])

	return &PrivateKey{key: priv}, nil
}

// Generate draws a private key from r, resampling until the scalar lies in
// [1, n). Callers pass crypto/rand.Reader.
func Generate(r io.Reader) (*PrivateKey, error) {
	var buf [PrivateKeySize]byte
	defer zero(buf[:])

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "read entropy")
		}

		var s btcec.ModNScalar
		if overflow := s.SetBytes(&buf); overflow != 0 || s.IsZero() {
			continue
		}

		priv, _ := btcec.PrivKeyFromBytes(buf[:])
		return &PrivateKey{key: priv}, nil
	}
}

// PubKey derives the public key by multiplying the generator by the scalar.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{key: k.key.PubKey()}
}

// Serialize returns the 32-byte big-endian scalar.
func (k *PrivateKey) Serialize() []byte {
	return k.key.Serialize()
}

// Equal reports whether both keys hold the same scalar, in constant time.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	a, b := k.Serialize(), other.Serialize()
	defer zero(a)
	defer zero(b)
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero clears the scalar. The key must not be used afterwards.
func (k *PrivateKey) Zero() {
	k.key.Zero()
}

// BTCEC exposes the underlying btcec key to the signing code.
func (k *PrivateKey) BTCEC() *btcec.PrivateKey {
	return k.key
}

// ParsePublicKey parses a compressed (33-byte, 0x02/0x03) or uncompressed
// (65-byte, 0x04) public key and checks that the point is on the curve.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "empty public key")
	}

	switch b[0] {
	case markerEven, markerOdd:
		if len(b) != CompressedSize {
			return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "compressed public key must be %d bytes, got %d", CompressedSize, len(b))
		}
	case markerUncompressed:
		if len(b) != UncompressedSize {
			return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "uncompressed public key must be %d bytes, got %d", UncompressedSize, len(b))
		}
	default:
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "unknown public key marker 0x%02x", b[0])
	}

	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, err.Error())
	}
	return &PublicKey{key: pub}, nil
}

// SerializeCompressed returns the 33-byte compressed encoding.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65-byte uncompressed encoding.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Equal reports whether both keys are the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && p.key.IsEqual(other.key)
}

// BTCEC exposes the underlying btcec point.
func (p *PublicKey) BTCEC() *btcec.PublicKey {
	return p.key
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
