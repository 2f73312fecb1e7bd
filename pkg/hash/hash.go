// Package hash provides the two digest pipelines used across hexkey:
// HASH160 = RIPEMD160(SHA256(data)) for address commitments and
// HASH256 = SHA256(SHA256(data)) for message digests and checksums.
package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by P2PKH
)

const (
	// Size160 is the length of a HASH160 digest.
	Size160 = ripemd160.Size
	// Size256 is the length of a HASH256 digest.
	Size256 = sha256.Size
	// ChecksumSize is the length of a Base58Check checksum.
	ChecksumSize = 4
)

// Digest160 is a HASH160 digest.
type Digest160 [Size160]byte

// Bytes returns a copy of the digest as a slice.
func (d Digest160) Bytes() []byte {
	b := make([]byte, Size160)
	copy(b, d[:])
	return b
}

// String returns the lowercase hex encoding of the digest.
func (d Digest160) String() string {
	return hex.EncodeToString(d[:])
}

// Digest256 is a HASH256 digest.
type Digest256 [Size256]byte

// Bytes returns a copy of the digest as a slice.
func (d Digest256) Bytes() []byte {
	b := make([]byte, Size256)
	copy(b, d[:])
	return b
}

// String returns the lowercase hex encoding of the digest.
func (d Digest256) String() string {
	return hex.EncodeToString(d[:])
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) Digest160 {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])

	var d Digest160
	h.Sum(d[:0])
	return d
}

// Hash256 computes SHA256(SHA256(data)).
func Hash256(data []byte) Digest256 {
	first := sha256.Sum256(data)
	return Digest256(sha256.Sum256(first[:]))
}

// Checksum returns the first four bytes of Hash256(data), the checksum
// appended by Base58Check.
func Checksum(data []byte) [ChecksumSize]byte {
	d := Hash256(data)
	var c [ChecksumSize]byte
	copy(c[:], d[:ChecksumSize])
	return c
}

// TaggedHash computes the BIP-340 tagged hash
// SHA256(SHA256(tag) || SHA256(tag) || msgs...).
func TaggedHash(tag string, msgs ...[]byte) Digest256 {
	return Digest256(*chainhash.TaggedHash([]byte(tag), msgs...))
}
