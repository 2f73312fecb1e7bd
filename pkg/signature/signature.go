// Package signature produces and checks deterministic ECDSA signatures over
// 32-byte digests on secp256k1.
package signature

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/keys"
)

const (
	// DigestSize is the only digest length Sign accepts.
	DigestSize = 32
	// CompactSize is the length of the r || s encoding.
	CompactSize = 64

	scalarSize  = 32
	derSequence = 0x30
)

// Signature is an (r, s) pair with both components in [1, n).
type Signature struct {
	r, s btcec.ModNScalar
}

// Sign signs digest with an RFC 6979 nonce. The result is low-S.
func Sign(priv *keys.PrivateKey, digest []byte) (*Signature, error) {
	if priv == nil || priv.BTCEC().Key.IsZero() {
		return nil, errors.Wrap(cryptoerr.ErrSigning, "missing private key")
	}
	if len(digest) != DigestSize {
		return nil, errors.Wrapf(cryptoerr.ErrSigning, "digest must be %d bytes, got %d", DigestSize, len(digest))
	}

	// SignCompact shares the RFC 6979 nonce with Sign and exposes r and s.
	compact := ecdsa.SignCompact(priv.BTCEC(), digest, true)
	return parseCompact(compact[1:])
}

// Serialize returns the strict DER encoding.
func (sig *Signature) Serialize() []byte {
	return sig.toBTCEC().Serialize()
}

// SerializeCompact returns r || s, each as a 32-byte big-endian integer.
func (sig *Signature) SerializeCompact() []byte {
	out := make([]byte, 0, CompactSize)
	r, s := sig.r.Bytes(), sig.s.Bytes()
	out = append(out, r[:]...)
	return append(out, s[:]...)
}

func (sig *Signature) toBTCEC() *ecdsa.Signature {
	return ecdsa.NewSignature(&sig.r, &sig.s)
}

// Parse accepts a DER signature or a 64-byte compact one. A 64-byte input
// that starts with a SEQUENCE tag is tried as DER first.
func Parse(b []byte) (*Signature, error) {
	if len(b) != CompactSize {
		return parseDER(b)
	}
	if b[0] == derSequence {
		if sig, err := parseDER(b); err == nil {
			return sig, nil
		}
	}
	return parseCompact(b)
}

func parseCompact(b []byte) (*Signature, error) {
	if len(b) != CompactSize {
		return nil, errors.Wrapf(cryptoerr.ErrSignatureFormat, "compact signature must be %d bytes, got %d", CompactSize, len(b))
	}
	var sig Signature
	if err := setScalar(&sig.r, b[:scalarSize], "R"); err != nil {
		return nil, err
	}
	if err := setScalar(&sig.s, b[scalarSize:], "S"); err != nil {
		return nil, err
	}
	return &sig, nil
}

func parseDER(b []byte) (*Signature, error) {
	// ParseDERSignature enforces minimal encodings and range limits.
	if _, err := ecdsa.ParseDERSignature(b); err != nil {
		return nil, errors.Wrap(cryptoerr.ErrSignatureFormat, err.Error())
	}

	input := cryptobyte.String(b)
	var seq, r, s cryptobyte.String
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) ||
		!seq.ReadASN1(&r, cryptobyte_asn1.INTEGER) ||
		!seq.ReadASN1(&s, cryptobyte_asn1.INTEGER) ||
		!seq.Empty() || !input.Empty() {
		return nil, errors.Wrap(cryptoerr.ErrSignatureFormat, "malformed DER signature")
	}

	var sig Signature
	if err := setScalar(&sig.r, trimInteger(r), "R"); err != nil {
		return nil, err
	}
	if err := setScalar(&sig.s, trimInteger(s), "S"); err != nil {
		return nil, err
	}
	return &sig, nil
}

// trimInteger drops the sign padding byte of a positive DER integer.
func trimInteger(b []byte) []byte {
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

func setScalar(v *btcec.ModNScalar, b []byte, name string) error {
	if len(b) > scalarSize {
		return errors.Wrapf(cryptoerr.ErrSignatureFormat, "signature %s is too long", name)
	}
	if overflow := v.SetByteSlice(b); overflow {
		return errors.Wrapf(cryptoerr.ErrSignatureFormat, "signature %s is not below the curve order", name)
	}
	if v.IsZero() {
		return errors.Wrapf(cryptoerr.ErrSignatureFormat, "signature %s is zero", name)
	}
	return nil
}

// Verify reports whether sig is a valid signature of digest under pub. A
// well-formed signature that does not match yields false and no error.
func Verify(pub *keys.PublicKey, digest, sig []byte) (bool, error) {
	if pub == nil {
		return false, errors.Wrap(cryptoerr.ErrSignatureFormat, "missing public key")
	}
	parsed, err := Parse(sig)
	if err != nil {
		return false, err
	}
	return parsed.Verify(pub, digest), nil
}

// VerifyBytes is Verify with an encoded public key.
func VerifyBytes(pubKey, digest, sig []byte) (bool, error) {
	pub, err := keys.ParsePublicKey(pubKey)
	if err != nil {
		return false, errors.Wrap(cryptoerr.ErrSignatureFormat, err.Error())
	}
	return Verify(pub, digest, sig)
}

// Verify checks sig against digest and pub.
func (sig *Signature) Verify(pub *keys.PublicKey, digest []byte) bool {
	return sig.toBTCEC().Verify(digest, pub.BTCEC())
}
